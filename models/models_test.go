package models

import (
	"context"
	"testing"

	"keepsake/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := db.Open("", ":memory:", false)
	require.NoError(t, err)
	require.NoError(t, Migrate(database))
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return database
}

func strPtr(s string) *string {
	return &s
}

func TestAlbumTable(t *testing.T) {
	ctx := context.Background()
	albums := AlbumTable{DB: openTestDB(t)}

	first := Album{Title: "Us", Subtitle: strPtr("Little snapshots of big love")}
	require.NoError(t, albums.Insert(ctx, &first))
	second := Album{Title: "Family"}
	require.NoError(t, albums.Insert(ctx, &second))
	assert.NotZero(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Nil(t, second.CoverPath)

	require.NoError(t, albums.SetCover(ctx, first.ID, "covers/1/abc.jpg"))
	got, err := albums.Get(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CoverPath)
	assert.Equal(t, "covers/1/abc.jpg", *got.CoverPath)

	list, err := albums.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Family", list[0].Title, "newest first")
	assert.Equal(t, "Us", list[1].Title)

	require.NoError(t, albums.Delete(ctx, second.ID))
	_, err = albums.Get(ctx, second.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAlbumSummaries(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	albums := AlbumTable{DB: database}
	photos := PhotoTable{DB: database}

	ids := []uint64{}
	for _, title := range []string{"Us", "Family", "Random Smiles", "Trips"} {
		a := Album{Title: title}
		require.NoError(t, albums.Insert(ctx, &a))
		ids = append(ids, a.ID)
	}
	require.NoError(t, photos.InsertBatch(ctx, []Photo{
		{AlbumID: ids[0], StoragePath: "photos/1/a.jpg"},
		{AlbumID: ids[0], StoragePath: "photos/1/b.jpg"},
		{AlbumID: ids[2], StoragePath: "photos/3/c.jpg"},
	}))

	all, err := albums.Summaries(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	counts := map[string]int64{}
	for _, s := range all {
		counts[s.Title] = s.PhotoCount
	}
	assert.Equal(t, map[string]int64{"Us": 2, "Family": 0, "Random Smiles": 1, "Trips": 0}, counts)

	top, err := albums.Summaries(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "Trips", top[0].Title)
}

func TestPhotoTable(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	albums := AlbumTable{DB: database}
	photos := PhotoTable{DB: database}

	album := Album{Title: "Us"}
	require.NoError(t, albums.Insert(ctx, &album))

	rows := []Photo{
		{AlbumID: album.ID, StoragePath: "photos/1/a.jpg", Note: strPtr("I love this moment.")},
		{AlbumID: album.ID, StoragePath: "photos/1/b.jpg"},
	}
	require.NoError(t, photos.InsertBatch(ctx, rows))
	assert.NotZero(t, rows[0].ID)
	assert.NotZero(t, rows[1].ID)

	list, err := photos.ListByAlbum(ctx, album.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "photos/1/b.jpg", list[0].StoragePath)

	require.NoError(t, photos.Delete(ctx, list[0].ID))
	list, err = photos.ListByAlbum(ctx, album.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, photos.DeleteByAlbum(ctx, album.ID))
	list, err = photos.ListByAlbum(ctx, album.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPhotoRequiresExistingAlbum(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	photos := PhotoTable{DB: database}
	albums := AlbumTable{DB: database}

	err := photos.InsertBatch(ctx, []Photo{{AlbumID: 999, StoragePath: "photos/999/x.jpg"}})
	assert.Error(t, err)

	album := Album{Title: "Us"}
	require.NoError(t, albums.Insert(ctx, &album))
	require.NoError(t, photos.InsertBatch(ctx, []Photo{{AlbumID: album.ID, StoragePath: "photos/1/x.jpg"}}))
	assert.Error(t, albums.Delete(ctx, album.ID), "album with photos cannot be deleted first")
}

func TestSweetMessageTable(t *testing.T) {
	ctx := context.Background()
	messages := SweetMessageTable{DB: openTestDB(t)}

	a, err := messages.Insert(ctx, "You make ordinary days feel like magic.")
	require.NoError(t, err)
	assert.True(t, a.IsActive)
	b, err := messages.Insert(ctx, "Thank you for being you.")
	require.NoError(t, err)

	require.NoError(t, messages.SetActive(ctx, a.ID, false))

	all, err := messages.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, b.ID, all[0].ID)
	assert.False(t, all[1].IsActive)

	active, err := messages.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, b.ID, active[0].ID)

	require.NoError(t, messages.Delete(ctx, b.ID))
	count, err := messages.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUserLogin(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	_, err := UserCreate(ctx, database, "Admin", " Admin@Example.com ", "secret")
	require.NoError(t, err)

	u, err := UserLogin(ctx, database, "admin@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", u.Email)
	assert.NotEqual(t, "secret", u.Password)

	_, err = UserLogin(ctx, database, "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidLogin)

	_, err = UserLogin(ctx, database, "nobody@example.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidLogin)
}
