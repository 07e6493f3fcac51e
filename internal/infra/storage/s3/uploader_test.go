package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9000/photos/properties/1/a.jpg", ObjectURL("http://localhost:9000/", "photos", "/properties/1/a.jpg"))
}

func TestNormalizeContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", normalizeContentType("image/JPG"))
	assert.Equal(t, "image/png", normalizeContentType("image/png; charset=binary"))
}

func TestHostOf(t *testing.T) {
	assert.Equal(t, "minio:9000", hostOf("http://minio:9000"))
	assert.Equal(t, "minio:9000", hostOf("minio:9000"))
}

func TestNewImageStoreRequiresBucket(t *testing.T) {
	_, err := NewImageStore(Config{Endpoint: "http://localhost:9000"}, nil)
	assert.Error(t, err)
}
