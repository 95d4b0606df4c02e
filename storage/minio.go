package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

type MinioStorage struct {
	Bucket Bucket
	client *minio.Client
}

func NewMinioStorage(bucket *Bucket) (*MinioStorage, error) {
	if bucket.Endpoint == "" {
		return nil, errors.New("minio storage needs an endpoint")
	}
	client, err := minio.New(bucket.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(bucket.S3Key, bucket.S3Secret, ""),
		Secure: bucket.UseSSL,
		Region: bucket.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return &MinioStorage{
		Bucket: *bucket,
		client: client,
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet
func (s *MinioStorage) EnsureBucket(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := s.client.BucketExists(ctx, s.Bucket.Name)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	err = s.client.MakeBucket(ctx, s.Bucket.Name, minio.MakeBucketOptions{Region: s.Bucket.Region})
	if err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

func (s *MinioStorage) Upload(ctx context.Context, path string, reader io.Reader, size int64, opts UploadOptions) error {
	if err := validKey(path); err != nil {
		return err
	}
	key := s.Bucket.GetRemotePath(path)
	if !opts.Upsert {
		_, err := s.client.StatObject(ctx, s.Bucket.Name, key, minio.StatObjectOptions{})
		if err == nil {
			return ErrObjectExists
		}
		if minio.ToErrorResponse(err).Code != "NoSuchKey" {
			return errors.WithStack(err)
		}
	}
	if size <= 0 {
		size = -1 // unknown, streamed in parts
	}
	_, err := s.client.PutObject(ctx, s.Bucket.Name, key, reader, size, minio.PutObjectOptions{
		ContentType:  opts.ContentType,
		CacheControl: opts.cacheControlHeader(),
	})
	return errors.WithStack(err)
}

func (s *MinioStorage) Remove(ctx context.Context, paths []string) error {
	for _, path := range paths {
		if err := validKey(path); err != nil {
			return err
		}
	}
	objectsCh := make(chan minio.ObjectInfo, len(paths))
	go func() {
		defer close(objectsCh)
		for _, path := range paths {
			objectsCh <- minio.ObjectInfo{Key: s.Bucket.GetRemotePath(path)}
		}
	}()

	var firstErr error
	for rmErr := range s.client.RemoveObjects(ctx, s.Bucket.Name, objectsCh, minio.RemoveObjectsOptions{}) {
		if rmErr.Err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", rmErr.ObjectName, rmErr.Err)
		}
	}
	return firstErr
}

func (s *MinioStorage) PublicURL(path string) string {
	if s.Bucket.PublicURL != "" {
		return s.Bucket.publicBase() + "/" + s.Bucket.GetRemotePath(path)
	}
	endpoint := s.client.EndpointURL()
	return endpoint.Scheme + "://" + endpoint.Host + "/" + s.Bucket.Name + "/" + s.Bucket.GetRemotePath(path)
}

func (s *MinioStorage) GetBucket() *Bucket {
	return &s.Bucket
}
