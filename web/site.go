// Package web serves the public, read-only side of the gallery
package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"keepsake/handlers"
	"keepsake/logger"
	"keepsake/models"
	"keepsake/storage"
	"keepsake/sweet"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const homeAlbums = 3

type AlbumSource interface {
	Summaries(ctx context.Context, limit int) ([]models.AlbumSummary, error)
	Get(ctx context.Context, id uint64) (models.Album, error)
}

type PhotoSource interface {
	ListByAlbum(ctx context.Context, albumID uint64) ([]models.Photo, error)
}

type Site struct {
	Albums   AlbumSource
	Photos   PhotoSource
	Messages sweet.ActiveSource
	Storage  storage.StorageAPI
	Picker   *sweet.Picker
	// The daily note changes at midnight here
	Location *time.Location
	Now      func() time.Time
}

type AlbumCard struct {
	ID         uint64  `json:"id"`
	Title      string  `json:"title"`
	Subtitle   *string `json:"subtitle"`
	CoverURL   *string `json:"cover_url"`
	PhotoCount int64   `json:"photo_count"`
}

type PhotoItem struct {
	ID   uint64  `json:"id"`
	URL  string  `json:"url"`
	Note *string `json:"note"`
}

type Note struct {
	Message string `json:"message"`
	Day     string `json:"day,omitempty"`
	// Set when the messages could not be loaded and the built-in lines were used
	Error string `json:"error,omitempty"`
}

func (s *Site) now() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

func (s *Site) coverURL(path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	url := s.Storage.PublicURL(*path)
	return &url
}

func (s *Site) cards(summaries []models.AlbumSummary) []AlbumCard {
	result := make([]AlbumCard, 0, len(summaries))
	for _, a := range summaries {
		result = append(result, AlbumCard{
			ID:         a.ID,
			Title:      a.Title,
			Subtitle:   a.Subtitle,
			CoverURL:   s.coverURL(a.CoverPath),
			PhotoCount: a.PhotoCount,
		})
	}
	return result
}

func (s *Site) pool(ctx context.Context) ([]string, string) {
	pool, err := sweet.Pool(ctx, s.Messages)
	if err != nil {
		logger.Warn("sweet messages not loaded", logger.ErrorField(err))
		return pool, "Sweet messages load error: " + err.Error()
	}
	return pool, ""
}

func (s *Site) todayNote(ctx context.Context) Note {
	pool, loadErr := s.pool(ctx)
	today := s.now()
	return Note{Message: sweet.Daily(pool, today), Day: sweet.DayKey(today), Error: loadErr}
}

// Home is the landing page: the newest albums and today's note
func (s *Site) Home(c *gin.Context) {
	summaries, err := s.Albums.Summaries(c.Request.Context(), homeAlbums)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handlers.Response{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"error":  "",
		"albums": s.cards(summaries),
		"note":   s.todayNote(c.Request.Context()),
	})
}

func (s *Site) AlbumList(c *gin.Context) {
	summaries, err := s.Albums.Summaries(c.Request.Context(), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handlers.Response{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "albums": s.cards(summaries)})
}

func (s *Site) AlbumView(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, handlers.AlbumNotFoundResponse)
		return
	}
	album, err := s.Albums.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, handlers.AlbumNotFoundResponse)
		} else {
			c.JSON(http.StatusInternalServerError, handlers.Response{Error: err.Error()})
		}
		return
	}
	photos, err := s.Photos.ListByAlbum(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handlers.Response{Error: "Failed to load photos: " + err.Error()})
		return
	}
	items := make([]PhotoItem, 0, len(photos))
	for _, p := range photos {
		items = append(items, PhotoItem{ID: p.ID, URL: s.Storage.PublicURL(p.StoragePath), Note: p.Note})
	}
	c.JSON(http.StatusOK, gin.H{
		"error": "",
		"album": AlbumCard{
			ID:         album.ID,
			Title:      album.Title,
			Subtitle:   album.Subtitle,
			CoverURL:   s.coverURL(album.CoverPath),
			PhotoCount: int64(len(items)),
		},
		"photos": items,
	})
}

// NoteToday is stable for the whole calendar day
func (s *Site) NoteToday(c *gin.Context) {
	c.JSON(http.StatusOK, s.todayNote(c.Request.Context()))
}

// NoteSurprise picks a random active message on every call
func (s *Site) NoteSurprise(c *gin.Context) {
	pool, loadErr := s.pool(c.Request.Context())
	c.JSON(http.StatusOK, Note{Message: s.Picker.Pick(pool), Error: loadErr})
}
