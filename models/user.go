package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role governs what a user is allowed to do. Only the two enumerated
// values are valid.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents a registered account. Passwords are stored as bcrypt
// hashes only and never leave the server.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Username     string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         Role      `gorm:"size:16;not null;default:'user'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Blogs        []Blog    `gorm:"foreignKey:AuthorID" json:"-"`
	Comments     []Comment `json:"-"`
	Likes        []Like    `json:"-"`
}

// BeforeCreate assigns a fresh UUID and default role when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}
