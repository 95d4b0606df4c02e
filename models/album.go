package models

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Album struct {
	ID        uint64  `gorm:"primaryKey" json:"id"`
	CreatedAt int64   `gorm:"index:album_created" json:"created_at"`
	Title     string  `gorm:"type:varchar(300);not null" json:"title"`
	Subtitle  *string `gorm:"type:varchar(300)" json:"subtitle"`
	CoverPath *string `gorm:"type:varchar(500)" json:"cover_path"` // Object key in storage, set once the cover is uploaded
}

// AlbumSummary is an album row as shown in public listings
type AlbumSummary struct {
	ID         uint64  `json:"id"`
	CreatedAt  int64   `json:"created_at"`
	Title      string  `json:"title"`
	Subtitle   *string `json:"subtitle"`
	CoverPath  *string `json:"cover_path"`
	PhotoCount int64   `json:"photo_count"`
}

const newestFirst = "created_at DESC, id DESC"

// AlbumTable is the `albums` table
type AlbumTable struct {
	DB *gorm.DB
}

func (t AlbumTable) List(ctx context.Context) ([]Album, error) {
	albums := []Album{}
	err := t.DB.WithContext(ctx).Order(newestFirst).Find(&albums).Error
	return albums, errors.WithStack(err)
}

// Summaries lists albums with their photo counts, newest first. limit <= 0 means all of them
func (t AlbumTable) Summaries(ctx context.Context, limit int) ([]AlbumSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	result := []AlbumSummary{}
	err := t.DB.WithContext(ctx).
		Table("albums").
		Select("albums.id, albums.created_at, albums.title, albums.subtitle, albums.cover_path, count(photos.id) as photo_count").
		Joins("left join photos on photos.album_id = albums.id").
		Group("albums.id, albums.created_at, albums.title, albums.subtitle, albums.cover_path").
		Order("albums.created_at DESC, albums.id DESC").
		Limit(limit).
		Scan(&result).Error
	return result, errors.WithStack(err)
}

func (t AlbumTable) Get(ctx context.Context, id uint64) (album Album, err error) {
	err = t.DB.WithContext(ctx).First(&album, id).Error
	return album, errors.WithStack(err)
}

func (t AlbumTable) Insert(ctx context.Context, album *Album) error {
	return errors.WithStack(t.DB.WithContext(ctx).Create(album).Error)
}

func (t AlbumTable) SetCover(ctx context.Context, id uint64, path string) error {
	err := t.DB.WithContext(ctx).Model(&Album{}).Where("id = ?", id).Update("cover_path", path).Error
	return errors.WithStack(err)
}

func (t AlbumTable) Delete(ctx context.Context, id uint64) error {
	return errors.WithStack(t.DB.WithContext(ctx).Delete(&Album{}, id).Error)
}
