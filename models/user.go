package models

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidLogin is returned for unknown emails and wrong passwords alike
var ErrInvalidLogin = errors.New("Invalid login credentials")

type User struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"-"`
	Name      string `gorm:"type:varchar(100)" json:"name"`
	Email     string `gorm:"type:varchar(150);index:uniq_email,unique" json:"email"`
	Password  string `gorm:"type:varchar(100)" json:"-"` // bcrypt hash
}

func (u *User) SetPassword(plainTextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

func (u *User) CheckPassword(plainTextPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plainTextPassword)) == nil
}

func UserCreate(ctx context.Context, db *gorm.DB, name, email, plainTextPassword string) (u User, err error) {
	u.Name = name
	u.Email = strings.ToLower(strings.TrimSpace(email))
	if err = u.SetPassword(plainTextPassword); err != nil {
		return u, err
	}
	return u, errors.WithStack(db.WithContext(ctx).Create(&u).Error)
}

func UserLogin(ctx context.Context, db *gorm.DB, email, plainTextPassword string) (u User, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	result := db.WithContext(ctx).Where("email = ?", email).Limit(1).Find(&u)
	if result.Error != nil {
		return User{}, errors.WithStack(result.Error)
	}
	if result.RowsAffected != 1 || !u.CheckPassword(plainTextPassword) {
		return User{}, ErrInvalidLogin
	}
	return u, nil
}
