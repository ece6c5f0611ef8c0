package validators

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/mitraternak/kandang-backend/pkg/config"
	pkgerrors "github.com/mitraternak/kandang-backend/pkg/errors"
)

// UploadedFile is one file part read fully into memory.
type UploadedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ParseMultipartForm reads the request as a multipart form, enforcing the
// configured size and file count limits. File parts are collected from the
// named field.
func ParseMultipartForm(r *http.Request, field string, cfg config.MediaConfig) ([]UploadedFile, error) {
	maxBytes := int64(cfg.MaxUploadMB) << 20
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) > cfg.MaxFileCount {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("at most %d files are allowed", cfg.MaxFileCount))
	}

	files := make([]UploadedFile, 0, len(headers))
	for _, header := range headers {
		file, err := readFilePart(header, maxBytes)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func readFilePart(header *multipart.FileHeader, maxBytes int64) (UploadedFile, error) {
	part, err := header.Open()
	if err != nil {
		return UploadedFile{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable file part")
	}
	defer part.Close()

	data, err := io.ReadAll(io.LimitReader(part, maxBytes+1))
	if err != nil {
		return UploadedFile{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable file part")
	}
	if int64(len(data)) > maxBytes {
		return UploadedFile{}, pkgerrors.New(pkgerrors.CodeValidation, "file exceeds the upload size limit")
	}
	return UploadedFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// FormValue returns a trimmed form field value.
func FormValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// FormInt parses a numeric form field. Empty values return the default.
func FormInt(r *http.Request, key string, defaultVal int) (int, error) {
	raw := FormValue(r, key)
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "form field must be numeric").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}
