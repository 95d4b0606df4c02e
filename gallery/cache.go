package gallery

import (
	"sync"

	"keepsake/models"
)

// AlbumCache mirrors the albums table. It is reloaded after every mutation and never written to directly
type AlbumCache struct {
	mu     sync.RWMutex
	albums []models.Album
}

func (c *AlbumCache) set(albums []models.Album) {
	c.mu.Lock()
	c.albums = albums
	c.mu.Unlock()
}

func (c *AlbumCache) List() []models.Album {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Album{}, c.albums...)
}

func (c *AlbumCache) Find(id uint64) (models.Album, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, a := range c.albums {
		if a.ID == id {
			return a, true
		}
	}
	return models.Album{}, false
}

// PhotoView mirrors the photos of the one album opened in the "manage photos" panel
type PhotoView struct {
	mu      sync.RWMutex
	albumID uint64
	photos  []models.Photo
}

func (v *PhotoView) set(albumID uint64, photos []models.Photo) {
	v.mu.Lock()
	v.albumID = albumID
	v.photos = photos
	v.mu.Unlock()
}

func (v *PhotoView) AlbumID() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.albumID
}

func (v *PhotoView) Photos() []models.Photo {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]models.Photo{}, v.photos...)
}
