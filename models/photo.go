package models

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Photo struct {
	ID          uint64  `gorm:"primaryKey" json:"id"`
	CreatedAt   int64   `gorm:"index:album_photo_created,priority:2" json:"created_at"`
	AlbumID     uint64  `gorm:"not null;index:album_photo_created,priority:1" json:"album_id"`
	Album       Album   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	StoragePath string  `gorm:"type:varchar(500);not null" json:"storage_path"`
	Note        *string `gorm:"type:varchar(1000)" json:"note"`
}

// PhotoTable is the `photos` table
type PhotoTable struct {
	DB *gorm.DB
}

func (t PhotoTable) ListByAlbum(ctx context.Context, albumID uint64) ([]Photo, error) {
	photos := []Photo{}
	err := t.DB.WithContext(ctx).Where("album_id = ?", albumID).Order(newestFirst).Find(&photos).Error
	return photos, errors.WithStack(err)
}

// InsertBatch inserts all rows with a single statement
func (t PhotoTable) InsertBatch(ctx context.Context, photos []Photo) error {
	if len(photos) == 0 {
		return nil
	}
	return errors.WithStack(t.DB.WithContext(ctx).Omit("Album").Create(&photos).Error)
}

func (t PhotoTable) Delete(ctx context.Context, id uint64) error {
	return errors.WithStack(t.DB.WithContext(ctx).Delete(&Photo{}, id).Error)
}

func (t PhotoTable) DeleteByAlbum(ctx context.Context, albumID uint64) error {
	err := t.DB.WithContext(ctx).Where("album_id = ?", albumID).Delete(&Photo{}).Error
	return errors.WithStack(err)
}

func (t PhotoTable) Get(ctx context.Context, id uint64) (photo Photo, err error) {
	err = t.DB.WithContext(ctx).First(&photo, id).Error
	return photo, errors.WithStack(err)
}
