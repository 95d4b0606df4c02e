package storage

import (
	"fmt"
	"strings"
)

type StorageType uint8

const (
	StorageTypeFile  StorageType = 0
	StorageTypeS3    StorageType = 1
	StorageTypeMinio StorageType = 2
)

// Bucket describes where objects live. All keys handed to a StorageAPI are relative to it
type Bucket struct {
	Name        string
	StorageType StorageType
	Path        string // Path on a drive or a prefix in a S3/MinIO bucket
	Endpoint    string // MinIO host:port, or a custom S3 endpoint URL
	Region      string
	S3Key       string
	S3Secret    string
	UseSSL      bool
	PublicURL   string // Base for public object URLs, optional for S3/MinIO
}

func ParseStorageType(s string) (StorageType, error) {
	switch strings.ToLower(s) {
	case "", "disk", "file":
		return StorageTypeFile, nil
	case "s3":
		return StorageTypeS3, nil
	case "minio":
		return StorageTypeMinio, nil
	}
	return 0, fmt.Errorf("unknown storage type %q, must be one of 'disk', 's3' or 'minio'", s)
}

func (t StorageType) String() string {
	switch t {
	case StorageTypeFile:
		return "disk"
	case StorageTypeS3:
		return "s3"
	case StorageTypeMinio:
		return "minio"
	}
	return "unknown"
}

// GetRemotePath prefixes the key with the bucket path (if any)
func (b *Bucket) GetRemotePath(path string) string {
	prefix := strings.Trim(b.Path, "/")
	if prefix == "" {
		return path
	}
	return prefix + "/" + path
}

// publicBase returns PublicURL without the trailing slash
func (b *Bucket) publicBase() string {
	return strings.TrimRight(b.PublicURL, "/")
}
