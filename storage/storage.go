package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ErrObjectExists is returned by Upload when the key is taken and Upsert is off
var ErrObjectExists = errors.New("The resource already exists")

type UploadOptions struct {
	ContentType  string
	CacheControl string // max-age in seconds, e.g. "3600"
	Upsert       bool   // Replace an existing object instead of failing
}

// cacheControlHeader turns "3600" into "max-age=3600" and leaves full header values alone
func (o UploadOptions) cacheControlHeader() string {
	if o.CacheControl == "" || strings.Contains(o.CacheControl, "=") {
		return o.CacheControl
	}
	return "max-age=" + o.CacheControl
}

type StorageAPI interface {
	Upload(ctx context.Context, path string, reader io.Reader, size int64, opts UploadOptions) error
	// Remove deletes all objects in one call and fails on the first one that cannot be removed
	Remove(ctx context.Context, paths []string) error
	// PublicURL is derived from the key only, it does not check the object exists
	PublicURL(path string) string
	GetBucket() *Bucket
}

func NewStorage(bucket *Bucket) (StorageAPI, error) {
	var (
		result StorageAPI
		err    error
	)
	switch bucket.StorageType {
	case StorageTypeFile:
		result, err = NewDiskStorage(bucket)
	case StorageTypeS3:
		result, err = NewS3Storage(bucket)
	case StorageTypeMinio:
		result, err = NewMinioStorage(bucket)
	default:
		return nil, fmt.Errorf("storage type unavailable for bucket %q", bucket.Name)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// validKey rejects keys that could escape the bucket
func validKey(path string) error {
	if path == "" || strings.HasPrefix(path, "/") || strings.Contains(path, "..") || strings.Contains(path, "\\") {
		return fmt.Errorf("invalid object key %q", path)
	}
	return nil
}
