package validators

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitraternak/kandang-backend/pkg/config"
	pkgerrors "github.com/mitraternak/kandang-backend/pkg/errors"
)

func multipartRequest(t *testing.T, files map[string][]byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, data := range files {
		part, err := writer.CreateFormFile("image", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestParseMultipartFormCollectsFilesAndFields(t *testing.T) {
	req := multipartRequest(t,
		map[string][]byte{"a.jpg": []byte("aaa")},
		map[string]string{"name": " Pakan ", "stock": "7"},
	)

	files, err := ParseMultipartForm(req, "image", config.MediaConfig{MaxUploadMB: 1, MaxFileCount: 5})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a.jpg", files[0].Name)
	assert.Equal(t, []byte("aaa"), files[0].Data)

	assert.Equal(t, "Pakan", FormValue(req, "name"))
	stock, err := FormInt(req, "stock", 0)
	require.NoError(t, err)
	assert.Equal(t, 7, stock)
}

func TestParseMultipartFormEnforcesFileCount(t *testing.T) {
	req := multipartRequest(t,
		map[string][]byte{"a.jpg": []byte("a"), "b.jpg": []byte("b")},
		nil,
	)

	_, err := ParseMultipartForm(req, "image", config.MediaConfig{MaxUploadMB: 1, MaxFileCount: 1})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestFormIntRejectsNonNumeric(t *testing.T) {
	req := multipartRequest(t, nil, map[string]string{"stock": "abc"})
	_, err := ParseMultipartForm(req, "image", config.MediaConfig{MaxUploadMB: 1, MaxFileCount: 5})
	require.NoError(t, err)

	_, err = FormInt(req, "stock", 0)
	require.Error(t, err)

	missing, err := FormInt(req, "absent", 42)
	require.NoError(t, err)
	assert.Equal(t, 42, missing)
}
