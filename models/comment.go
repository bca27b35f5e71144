package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a reply to a blog, written by a user.
type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	UserID    string    `gorm:"size:36;index;not null" json:"user_id"`
	BlogID    string    `gorm:"size:36;index;not null" json:"blog_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
}

// BeforeCreate assigns a fresh UUID when not provided.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
