package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectStorageType(t *testing.T) {
	assert.Equal(t, StorageTypeR2, detectStorageType("https://acct.r2.cloudflarestorage.com"))
	assert.Equal(t, StorageTypeS3, detectStorageType("s3.us-west-2.amazonaws.com"))
	assert.Equal(t, StorageTypeS3, detectStorageType(""))
	assert.Equal(t, StorageTypeS3Compatible, detectStorageType("localhost:9000"))
}

func TestNormalizeEndpoint(t *testing.T) {
	assert.Equal(t, "localhost:9000", normalizeEndpoint("http://localhost:9000/some/path"))
	assert.Equal(t, "minio.internal", normalizeEndpoint("https://minio.internal"))
	assert.Empty(t, normalizeEndpoint(""))
}

func TestNewStorageValidation(t *testing.T) {
	_, err := NewStorage(nil)
	assert.Error(t, err)

	_, err = NewStorage(&S3Config{Endpoint: "localhost:9000"})
	assert.Error(t, err)
}

func TestNewStorageURLs(t *testing.T) {
	s, err := NewStorage(&S3Config{
		Endpoint:  "http://localhost:9000",
		AccessKey: "ak",
		SecretKey: "sk",
		Bucket:    "photos",
		Prefix:    "images/",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://localhost:9000/photos/images/abc", s.GetURL("abc"))

	s, err = NewStorage(&S3Config{
		Endpoint:  "acct.r2.cloudflarestorage.com",
		Bucket:    "photos",
		PublicURL: "https://cdn.example.com/",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/abc", s.GetURL("abc"))
}
