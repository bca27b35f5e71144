package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like marks that a user liked a blog. The composite unique index is
// the idempotency guard: concurrent likers race on a single atomic
// insert instead of a check-then-act pair in application code.
type Like struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_likes_user_blog" json:"user_id"`
	BlogID    string    `gorm:"size:36;not null;uniqueIndex:idx_likes_user_blog" json:"blog_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a fresh UUID when not provided.
func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
