// Package gallery runs the admin workflows that keep album and photo rows in
// step with the objects in storage. Every workflow is a fixed sequence of
// remote calls that stops at the first failure and never rolls back.
package gallery

import (
	"context"
	"io"
	"strings"

	"keepsake/models"
	"keepsake/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AlbumStore interface {
	List(ctx context.Context) ([]models.Album, error)
	Get(ctx context.Context, id uint64) (models.Album, error)
	Insert(ctx context.Context, album *models.Album) error
	SetCover(ctx context.Context, id uint64, path string) error
	Delete(ctx context.Context, id uint64) error
}

type PhotoStore interface {
	ListByAlbum(ctx context.Context, albumID uint64) ([]models.Photo, error)
	Get(ctx context.Context, id uint64) (models.Photo, error)
	InsertBatch(ctx context.Context, photos []models.Photo) error
	Delete(ctx context.Context, id uint64) error
	DeleteByAlbum(ctx context.Context, albumID uint64) error
}

// Blobs is the part of storage.StorageAPI the workflows need
type Blobs interface {
	Upload(ctx context.Context, path string, reader io.Reader, size int64, opts storage.UploadOptions) error
	Remove(ctx context.Context, paths []string) error
}

type Option func(*Manager)

func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithIDGenerator replaces the random part of new object keys
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) {
		m.newID = newID
	}
}

// WithCacheControl sets the max-age (seconds) stored with uploaded objects
func WithCacheControl(maxAge string) Option {
	return func(m *Manager) {
		m.cacheControl = maxAge
	}
}

type Manager struct {
	albums AlbumStore
	photos PhotoStore
	blobs  Blobs

	log          *zap.Logger
	newID        func() string
	cacheControl string

	cache AlbumCache
	view  PhotoView
}

func NewManager(albums AlbumStore, photos PhotoStore, blobs Blobs, opts ...Option) *Manager {
	m := &Manager{
		albums:       albums,
		photos:       photos,
		blobs:        blobs,
		log:          zap.NewNop(),
		newID:        uuid.NewString,
		cacheControl: "3600",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) upload(ctx context.Context, key string, f File) error {
	return m.blobs.Upload(ctx, key, f.Body, f.Size, storage.UploadOptions{
		ContentType:  f.ContentType,
		CacheControl: m.cacheControl,
	})
}

// Albums is the album list as of the last successful Refresh
func (m *Manager) Albums() []models.Album {
	return m.cache.List()
}

// Refresh reloads the album list, newest first
func (m *Manager) Refresh(ctx context.Context) error {
	albums, err := m.albums.List(ctx)
	if err != nil {
		return &StageError{Stage: StageRefresh, Err: err}
	}
	m.cache.set(albums)
	return nil
}

// Album looks the row up remotely, the cache may be stale
func (m *Manager) Album(ctx context.Context, id uint64) (models.Album, error) {
	return m.albums.Get(ctx, id)
}

func (m *Manager) Photo(ctx context.Context, id uint64) (models.Photo, error) {
	return m.photos.Get(ctx, id)
}

// CreateAlbum inserts the album, then uploads and links the optional cover.
// A failure after the insert leaves the album in place without a cover.
func (m *Manager) CreateAlbum(ctx context.Context, title, subtitle string, cover *File) (models.Album, error) {
	title = strings.TrimSpace(title)
	if err := validate(title, "Title is required."); err != nil {
		return models.Album{}, err
	}
	album := models.Album{Title: title}
	if subtitle = strings.TrimSpace(subtitle); subtitle != "" {
		album.Subtitle = &subtitle
	}
	if err := m.albums.Insert(ctx, &album); err != nil {
		return models.Album{}, &StageError{Stage: StageAlbumInsert, Err: err}
	}
	m.log.Info("album created", zap.Uint64("album", album.ID), zap.String("title", title))

	if cover != nil {
		key := objectKey(coversDir, album.ID, m.newID(), *cover)
		if err := m.upload(ctx, key, *cover); err != nil {
			return album, &StageError{Stage: StageCoverUpload, Err: err}
		}
		if err := m.albums.SetCover(ctx, album.ID, key); err != nil {
			m.log.Warn("cover not linked", zap.Uint64("album", album.ID), zap.String("key", key), zap.Error(err))
			return album, &StageError{Stage: StageCoverSave, Err: err, Orphaned: []string{key}}
		}
		album.CoverPath = &key
	}
	return album, m.Refresh(ctx)
}

// UploadPhotos stores every file, then inserts all rows with one call.
// The first failed upload stops the batch, earlier objects stay behind.
func (m *Manager) UploadPhotos(ctx context.Context, albumID uint64, files []File, note string) ([]models.Photo, error) {
	if err := validate(albumID, "Select an album first."); err != nil {
		return nil, err
	}
	if err := validate(files, "Choose photo files first."); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(files))
	for _, f := range files {
		key := objectKey(photosDir, albumID, m.newID(), f)
		if err := m.upload(ctx, key, f); err != nil {
			if len(keys) > 0 {
				m.log.Warn("upload batch stopped", zap.Uint64("album", albumID), zap.Strings("orphaned", keys), zap.Error(err))
			}
			return nil, &StageError{Stage: StagePhotoUpload, Err: err, Orphaned: keys}
		}
		keys = append(keys, key)
	}

	var notePtr *string
	if note = strings.TrimSpace(note); note != "" {
		notePtr = &note
	}
	rows := make([]models.Photo, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, models.Photo{AlbumID: albumID, StoragePath: key, Note: notePtr})
	}
	if err := m.photos.InsertBatch(ctx, rows); err != nil {
		m.log.Warn("photo rows not inserted", zap.Uint64("album", albumID), zap.Strings("orphaned", keys), zap.Error(err))
		return nil, &StageError{Stage: StagePhotoInsert, Err: err, Orphaned: keys}
	}
	m.log.Info("photos uploaded", zap.Uint64("album", albumID), zap.Int("count", len(rows)))
	return rows, m.Refresh(ctx)
}

// LoadPhotos opens the "manage photos" view on one album. albumID 0 closes it
func (m *Manager) LoadPhotos(ctx context.Context, albumID uint64) ([]models.Photo, error) {
	if albumID == 0 {
		m.view.set(0, nil)
		return []models.Photo{}, nil
	}
	photos, err := m.photos.ListByAlbum(ctx, albumID)
	if err != nil {
		m.view.set(albumID, nil)
		return []models.Photo{}, &StageError{Stage: StageManagedReload, Err: err}
	}
	m.view.set(albumID, photos)
	return photos, nil
}

// ManagedPhotos is the photo list shown by the "manage photos" view
func (m *Manager) ManagedPhotos() (albumID uint64, photos []models.Photo) {
	return m.view.AlbumID(), m.view.Photos()
}

// DeletePhoto removes the object first and the row second
func (m *Manager) DeletePhoto(ctx context.Context, photo models.Photo, confirmed bool) error {
	if err := validate(confirmed, "Confirmation required."); err != nil {
		return err
	}
	if err := m.blobs.Remove(ctx, []string{photo.StoragePath}); err != nil {
		return &StageError{Stage: StageStorageDelete, Err: err}
	}
	if err := m.photos.Delete(ctx, photo.ID); err != nil {
		m.log.Warn("photo row left without object", zap.Uint64("photo", photo.ID), zap.Error(err))
		return &StageError{Stage: StagePhotoDelete, Err: err}
	}
	m.log.Info("photo deleted", zap.Uint64("photo", photo.ID), zap.Uint64("album", photo.AlbumID))

	if managed := m.view.AlbumID(); managed != 0 {
		if _, err := m.LoadPhotos(ctx, managed); err != nil {
			return err
		}
	}
	return m.Refresh(ctx)
}

// DeleteAlbum removes every object of the album (photos and cover) in one call,
// then the photo rows, then the album row.
func (m *Manager) DeleteAlbum(ctx context.Context, album models.Album, confirmed bool) error {
	if err := validate(confirmed, "Confirmation required."); err != nil {
		return err
	}
	photos, err := m.photos.ListByAlbum(ctx, album.ID)
	if err != nil {
		return &StageError{Stage: StageLoadPhotos, Err: err}
	}

	keys := make([]string, 0, len(photos)+1)
	for _, p := range photos {
		if p.StoragePath != "" {
			keys = append(keys, p.StoragePath)
		}
	}
	if album.CoverPath != nil && *album.CoverPath != "" {
		keys = append(keys, *album.CoverPath)
	}
	if len(keys) > 0 {
		if err := m.blobs.Remove(ctx, keys); err != nil {
			return &StageError{Stage: StageStorageDelete, Err: err}
		}
	}

	if err := m.photos.DeleteByAlbum(ctx, album.ID); err != nil {
		m.log.Warn("album rows left without objects", zap.Uint64("album", album.ID), zap.Error(err))
		return &StageError{Stage: StagePhotosDelete, Err: err}
	}
	if err := m.albums.Delete(ctx, album.ID); err != nil {
		return &StageError{Stage: StageAlbumDelete, Err: err}
	}
	m.log.Info("album deleted", zap.Uint64("album", album.ID), zap.Int("objects", len(keys)))

	if m.view.AlbumID() == album.ID {
		m.view.set(0, nil)
	}
	return m.Refresh(ctx)
}
