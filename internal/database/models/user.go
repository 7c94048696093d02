package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the persisted account record. Username is unique across active and
// soft-deleted rows alike: the plain (non-partial) unique index keeps a
// deleted user's name reserved.
type User struct {
	ID        uint           `gorm:"primarykey"`
	Username  string         `gorm:"size:64;not null;uniqueIndex:idx_users_username"`
	Password  string         `gorm:"size:255;not null"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index:idx_users_deleted_at"`

	Notes []Note `gorm:"foreignKey:UserID"`
}
