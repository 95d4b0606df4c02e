package storage

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

type DiskStorage struct {
	Bucket Bucket
	// BasePath is a directory (usually mount point of a disk) that is writable by the current process
	BasePath  string
	dirs      map[string]bool
	dirsMutex sync.Mutex
}

func NewDiskStorage(bucket *Bucket) (*DiskStorage, error) {
	if bucket.Path == "" {
		return nil, errors.New("disk storage needs a path")
	}
	if err := os.MkdirAll(bucket.Path, 0755); err != nil {
		return nil, errors.WithStack(err)
	}
	return &DiskStorage{
		Bucket:   *bucket,
		BasePath: bucket.Path,
		dirs:     make(map[string]bool, 10),
	}, nil
}

func (s *DiskStorage) createDir(dir string) error {
	s.dirsMutex.Lock()
	defer s.dirsMutex.Unlock()

	if ok := s.dirs[dir]; ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	s.dirs[dir] = true
	return nil
}

func (s *DiskStorage) getFullPath(path string) string {
	return filepath.Join(s.BasePath, filepath.FromSlash(path))
}

func (s *DiskStorage) Upload(ctx context.Context, path string, reader io.Reader, size int64, opts UploadOptions) error {
	if err := validKey(path); err != nil {
		return err
	}
	fileName := s.getFullPath(path)
	if err := s.createDir(filepath.Dir(fileName)); err != nil {
		return errors.WithStack(err)
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !opts.Upsert {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	file, err := os.OpenFile(fileName, flags, 0644)
	if os.IsExist(err) {
		return ErrObjectExists
	}
	if err != nil {
		return errors.WithStack(err)
	}
	_, err = io.Copy(file, reader)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// Do not leave half written objects behind
		_ = os.Remove(fileName)
		return errors.WithStack(err)
	}
	return nil
}

func (s *DiskStorage) Remove(ctx context.Context, paths []string) error {
	for _, path := range paths {
		if err := validKey(path); err != nil {
			return err
		}
		if err := os.Remove(s.getFullPath(path)); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

func (s *DiskStorage) PublicURL(path string) string {
	return s.Bucket.publicBase() + "/storage/" + path
}

func (s *DiskStorage) GetBucket() *Bucket {
	return &s.Bucket
}

// Serve writes the object to the response, 404 for unknown or invalid keys
func (s *DiskStorage) Serve(path string, request *http.Request, writer http.ResponseWriter) {
	if validKey(path) != nil {
		http.NotFound(writer, request)
		return
	}
	fileName := s.getFullPath(path)
	if fi, err := os.Stat(fileName); err != nil || fi.IsDir() {
		http.NotFound(writer, request)
		return
	}
	http.ServeFile(writer, request, fileName)
}

func (s *DiskStorage) statfs() (unix.Statfs_t, error) {
	var stat unix.Statfs_t
	err := unix.Statfs(s.BasePath, &stat)
	return stat, err
}

// GetTotalSpace returns the size of the underlying filesystem in bytes (0 if unknown)
func (s *DiskStorage) GetTotalSpace() uint64 {
	stat, err := s.statfs()
	if err != nil {
		return 0
	}
	return stat.Blocks * uint64(stat.Bsize)
}

// GetFreeSpace returns the bytes available to this process (0 if unknown)
func (s *DiskStorage) GetFreeSpace() uint64 {
	stat, err := s.statfs()
	if err != nil {
		return 0
	}
	return stat.Bavail * uint64(stat.Bsize)
}
