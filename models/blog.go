package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tags is an ordered list of tag strings persisted as a single
// comma-separated column.
type Tags []string

// Value serializes tags for storage.
func (t Tags) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "", nil
	}
	return strings.Join(t, ","), nil
}

// Scan restores tags from their stored form.
func (t *Tags) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		*t = nil
		return nil
	default:
		return fmt.Errorf("unsupported tags column type %T", src)
	}
	if s == "" {
		*t = nil
		return nil
	}
	*t = strings.Split(s, ",")
	return nil
}

// Blog is a post authored by exactly one user.
type Blog struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Tags      Tags      `gorm:"type:text" json:"tags"`
	AuthorID  string    `gorm:"size:36;index;not null" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Comments  []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments"`
	Likes     []Like    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"likes"`
}

// BeforeCreate assigns a fresh UUID when not provided.
func (b *Blog) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
