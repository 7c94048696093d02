package models

import (
	"time"

	"gorm.io/gorm"
)

// Note references its author without owning it: deleting a user leaves the
// user's notes untouched.
type Note struct {
	ID        uint           `gorm:"primarykey"`
	Title     string         `gorm:"size:200;not null"`
	Content   string         `gorm:"not null"`
	UserID    uint           `gorm:"not null;index:idx_notes_user_id"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index:idx_notes_deleted_at"`

	Author *User `gorm:"foreignKey:UserID"`
}
