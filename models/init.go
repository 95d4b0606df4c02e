package models

import "gorm.io/gorm"

// Migrate creates or updates all tables. Albums go first, photos reference them
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Album{}, &Photo{}, &SweetMessage{})
}
