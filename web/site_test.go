package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"keepsake/models"
	"keepsake/storage"
	"keepsake/sweet"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAlbums struct {
	summaries []models.AlbumSummary
	albums    map[uint64]models.Album
	limits    []int
}

func (f *fakeAlbums) Summaries(ctx context.Context, limit int) ([]models.AlbumSummary, error) {
	f.limits = append(f.limits, limit)
	if limit > 0 && limit < len(f.summaries) {
		return f.summaries[:limit], nil
	}
	return f.summaries, nil
}

func (f *fakeAlbums) Get(ctx context.Context, id uint64) (models.Album, error) {
	album, ok := f.albums[id]
	if !ok {
		return models.Album{}, gorm.ErrRecordNotFound
	}
	return album, nil
}

type fakePhotos map[uint64][]models.Photo

func (f fakePhotos) ListByAlbum(ctx context.Context, albumID uint64) ([]models.Photo, error) {
	return f[albumID], nil
}

type fakeMessages struct {
	rows []models.SweetMessage
	err  error
}

func (f fakeMessages) ListActive(ctx context.Context) ([]models.SweetMessage, error) {
	return f.rows, f.err
}

func strPtr(s string) *string {
	return &s
}

var newYear = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

func testSite(t *testing.T) (*Site, *storage.DiskStorage) {
	disk, err := storage.NewDiskStorage(&storage.Bucket{Name: "albums", Path: t.TempDir()})
	require.NoError(t, err)
	albums := &fakeAlbums{
		summaries: []models.AlbumSummary{
			{ID: 4, Title: "Four", CoverPath: strPtr("covers/4/c.jpg"), PhotoCount: 2},
			{ID: 3, Title: "Three", Subtitle: strPtr("sub")},
			{ID: 2, Title: "Two"},
			{ID: 1, Title: "One", PhotoCount: 1},
		},
		albums: map[uint64]models.Album{
			4: {ID: 4, Title: "Four", CoverPath: strPtr("covers/4/c.jpg")},
		},
	}
	photos := fakePhotos{4: {
		{ID: 9, AlbumID: 4, StoragePath: "photos/4/new.jpg", Note: strPtr("hi")},
		{ID: 8, AlbumID: 4, StoragePath: "photos/4/old.jpg"},
	}}
	messages := fakeMessages{rows: []models.SweetMessage{
		{ID: 3, Message: "A", IsActive: true},
		{ID: 2, Message: "B", IsActive: true},
		{ID: 1, Message: "C", IsActive: true},
	}}
	return &Site{
		Albums:   albums,
		Photos:   photos,
		Messages: messages,
		Storage:  disk,
		Picker:   sweet.NewPicker(),
		Location: time.UTC,
		Now:      func() time.Time { return newYear },
	}, disk
}

func testRouter(s *Site, disk *storage.DiskStorage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	s.Register(router)
	router.GET("/storage/*path", ServeStorage(disk))
	return router
}

func get(t *testing.T, router *gin.Engine, path string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w
}

func TestHome(t *testing.T) {
	site, disk := testSite(t)
	router := testRouter(site, disk)

	var result struct {
		Albums []AlbumCard `json:"albums"`
		Note   Note        `json:"note"`
	}
	w := get(t, router, "/api/home", &result)
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, result.Albums, 3)
	assert.Equal(t, uint64(4), result.Albums[0].ID)
	assert.Equal(t, "/storage/covers/4/c.jpg", *result.Albums[0].CoverURL)
	assert.Equal(t, int64(2), result.Albums[0].PhotoCount)
	assert.Nil(t, result.Albums[1].CoverURL)
	assert.Equal(t, []int{3}, site.Albums.(*fakeAlbums).limits)

	// 2024-01-01 picks index 1 of a three line pool
	assert.Equal(t, Note{Message: "B", Day: "2024-01-01"}, result.Note)
}

func TestNoteTodayFallsBack(t *testing.T) {
	site, disk := testSite(t)
	site.Messages = fakeMessages{err: errors.New("offline")}
	router := testRouter(site, disk)

	var note Note
	get(t, router, "/api/note/today", &note)
	assert.Equal(t, sweet.Daily(sweet.DefaultPool, newYear), note.Message)
	assert.Equal(t, "Sweet messages load error: offline", note.Error)

	site.Messages = fakeMessages{}
	note = Note{}
	get(t, router, "/api/note/today", &note)
	assert.Contains(t, sweet.DefaultPool, note.Message)
	assert.Empty(t, note.Error)
}

func TestNoteTodayFollowsLocation(t *testing.T) {
	site, disk := testSite(t)
	site.Location = time.FixedZone("UTC-10", -10*3600)
	router := testRouter(site, disk)

	var note Note
	get(t, router, "/api/note/today", &note)
	assert.Equal(t, "2023-12-31", note.Day)
}

func TestNoteSurprise(t *testing.T) {
	site, disk := testSite(t)
	router := testRouter(site, disk)
	for i := 0; i < 20; i++ {
		var note Note
		get(t, router, "/api/note/surprise", &note)
		assert.Contains(t, []string{"A", "B", "C"}, note.Message)
	}
}

func TestAlbumList(t *testing.T) {
	site, disk := testSite(t)
	router := testRouter(site, disk)

	var result struct {
		Albums []AlbumCard `json:"albums"`
	}
	get(t, router, "/api/albums", &result)
	assert.Len(t, result.Albums, 4)
	assert.Equal(t, []int{0}, site.Albums.(*fakeAlbums).limits)
}

func TestAlbumView(t *testing.T) {
	site, disk := testSite(t)
	router := testRouter(site, disk)

	var result struct {
		Album  AlbumCard   `json:"album"`
		Photos []PhotoItem `json:"photos"`
	}
	w := get(t, router, "/api/albums/4", &result)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Four", result.Album.Title)
	assert.Equal(t, int64(2), result.Album.PhotoCount)
	require.Len(t, result.Photos, 2)
	assert.Equal(t, "/storage/photos/4/new.jpg", result.Photos[0].URL)
	assert.Equal(t, "hi", *result.Photos[0].Note)
	assert.Nil(t, result.Photos[1].Note)

	for _, path := range []string{"/api/albums/99", "/api/albums/abc"} {
		w = get(t, router, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestServeStorageAndRobots(t *testing.T) {
	site, disk := testSite(t)
	router := testRouter(site, disk)
	require.NoError(t, disk.Upload(context.Background(), "photos/4/new.jpg", strings.NewReader("jpeg bytes"), 10, storage.UploadOptions{}))

	w := get(t, router, "/storage/photos/4/new.jpg", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg bytes", w.Body.String())

	w = get(t, router, "/storage/photos/4/missing.jpg", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(t, router, "/robots.txt", nil)
	assert.Contains(t, w.Body.String(), "Disallow: /admin/")
}
