package spaces

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitraternak/kandang-backend/pkg/config"
)

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "inventory/a.jpg", ObjectKey("a.jpg", "inventory"))
	assert.Equal(t, "inventory/a.jpg", ObjectKey("/a.jpg", "/inventory/"))
	assert.Equal(t, "a.jpg", ObjectKey("a.jpg", ""))
}

func TestKeyFromURL(t *testing.T) {
	assert.Equal(t, "Inventory-1700000000000-a.jpg",
		KeyFromURL("https://farm-media.sgp1.digitaloceanspaces.com/inventory/Inventory-1700000000000-a.jpg"))
	assert.Equal(t, "a.jpg", KeyFromURL("a.jpg"))
	assert.Equal(t, "", KeyFromURL("  "))
}

func TestPublicBaseURL(t *testing.T) {
	cfg := config.SpacesConfig{Bucket: "farm-media"}

	assert.Equal(t,
		"https://farm-media.sgp1.digitaloceanspaces.com",
		publicBaseURL(cfg, "https://sgp1.digitaloceanspaces.com"))

	cfg.ForcePathStyle = true
	assert.Equal(t,
		"https://sgp1.digitaloceanspaces.com/farm-media",
		publicBaseURL(cfg, "https://sgp1.digitaloceanspaces.com"))

	cfg.PublicBaseURL = "https://cdn.mitraternak.id/"
	assert.Equal(t, "https://cdn.mitraternak.id", publicBaseURL(cfg, "https://sgp1.digitaloceanspaces.com"))
}
