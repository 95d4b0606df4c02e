package models

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type SweetMessage struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	CreatedAt int64  `gorm:"index:sweet_message_created" json:"created_at"`
	Message   string `gorm:"type:varchar(1000);not null" json:"message"`
	IsActive  bool   `gorm:"not null" json:"is_active"` // Only active messages are shown on the public pages
}

// SweetMessageTable is the `sweet_messages` table
type SweetMessageTable struct {
	DB *gorm.DB
}

func (t SweetMessageTable) List(ctx context.Context) ([]SweetMessage, error) {
	rows := []SweetMessage{}
	err := t.DB.WithContext(ctx).Order(newestFirst).Find(&rows).Error
	return rows, errors.WithStack(err)
}

func (t SweetMessageTable) ListActive(ctx context.Context) ([]SweetMessage, error) {
	rows := []SweetMessage{}
	err := t.DB.WithContext(ctx).Where("is_active = ?", true).Order(newestFirst).Find(&rows).Error
	return rows, errors.WithStack(err)
}

// Insert stores a new active message and returns the stored row
func (t SweetMessageTable) Insert(ctx context.Context, message string) (SweetMessage, error) {
	row := SweetMessage{Message: message, IsActive: true}
	err := t.DB.WithContext(ctx).Create(&row).Error
	return row, errors.WithStack(err)
}

func (t SweetMessageTable) SetActive(ctx context.Context, id uint64, active bool) error {
	err := t.DB.WithContext(ctx).Model(&SweetMessage{}).Where("id = ?", id).Update("is_active", active).Error
	return errors.WithStack(err)
}

func (t SweetMessageTable) Delete(ctx context.Context, id uint64) error {
	return errors.WithStack(t.DB.WithContext(ctx).Delete(&SweetMessage{}, id).Error)
}

// Count is used when seeding the default messages
func (t SweetMessageTable) Count(ctx context.Context) (count int64, err error) {
	err = t.DB.WithContext(ctx).Model(&SweetMessage{}).Count(&count).Error
	return count, errors.WithStack(err)
}
