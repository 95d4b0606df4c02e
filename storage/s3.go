package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
)

// S3 accepts at most this many keys per DeleteObjects request
const s3MaxDeleteKeys = 1000

type S3Storage struct {
	Bucket   Bucket
	s3Client *s3.S3
}

func NewS3Storage(bucket *Bucket) (*S3Storage, error) {
	if bucket.S3Key == "" || bucket.S3Secret == "" {
		return nil, errors.New("'S3 Key' and 'S3 Secret' must be provided")
	}
	config := &aws.Config{
		Region:      aws.String(bucket.Region),
		Credentials: credentials.NewStaticCredentials(bucket.S3Key, bucket.S3Secret, ""),
	}
	if bucket.Endpoint != "" {
		config.Endpoint = aws.String(bucket.Endpoint)
		config.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(config)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &S3Storage{
		Bucket:   *bucket,
		s3Client: s3.New(sess),
	}, nil
}

func isS3NotFound(err error) bool {
	if reqErr, ok := err.(awserr.RequestFailure); ok && reqErr.StatusCode() == http.StatusNotFound {
		return true
	}
	if awsErr, ok := err.(awserr.Error); ok {
		return awsErr.Code() == "NotFound" || awsErr.Code() == s3.ErrCodeNoSuchKey
	}
	return false
}

func (s *S3Storage) Upload(ctx context.Context, path string, reader io.Reader, size int64, opts UploadOptions) error {
	if err := validKey(path); err != nil {
		return err
	}
	key := aws.String(s.Bucket.GetRemotePath(path))
	if !opts.Upsert {
		_, err := s.s3Client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
			Bucket: &s.Bucket.Name,
			Key:    key,
		})
		if err == nil {
			return ErrObjectExists
		}
		if !isS3NotFound(err) {
			return errors.WithStack(err)
		}
	}
	input := s3manager.UploadInput{
		Bucket: &s.Bucket.Name,
		Key:    key,
		Body:   reader,
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}
	if cc := opts.cacheControlHeader(); cc != "" {
		input.CacheControl = aws.String(cc)
	}
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	_, err := uploader.UploadWithContext(ctx, &input)
	return errors.WithStack(err)
}

func (s *S3Storage) Remove(ctx context.Context, paths []string) error {
	for start := 0; start < len(paths); start += s3MaxDeleteKeys {
		end := start + s3MaxDeleteKeys
		if end > len(paths) {
			end = len(paths)
		}
		objects := make([]*s3.ObjectIdentifier, 0, end-start)
		for _, path := range paths[start:end] {
			if err := validKey(path); err != nil {
				return err
			}
			objects = append(objects, &s3.ObjectIdentifier{Key: aws.String(s.Bucket.GetRemotePath(path))})
		}
		out, err := s.s3Client.DeleteObjectsWithContext(ctx, &s3.DeleteObjectsInput{
			Bucket: &s.Bucket.Name,
			Delete: &s3.Delete{Objects: objects, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return errors.WithStack(err)
		}
		if len(out.Errors) > 0 {
			e := out.Errors[0]
			return fmt.Errorf("%s: %s", aws.StringValue(e.Key), aws.StringValue(e.Message))
		}
	}
	return nil
}

func (s *S3Storage) PublicURL(path string) string {
	if s.Bucket.PublicURL != "" {
		return s.Bucket.publicBase() + "/" + s.Bucket.GetRemotePath(path)
	}
	if s.Bucket.Endpoint != "" {
		return strings.TrimRight(s.Bucket.Endpoint, "/") + "/" + s.Bucket.Name + "/" + s.Bucket.GetRemotePath(path)
	}
	return "https://" + s.Bucket.Name + ".s3." + s.Bucket.Region + ".amazonaws.com/" + s.Bucket.GetRemotePath(path)
}

func (s *S3Storage) GetBucket() *Bucket {
	return &s.Bucket
}
