package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/avelkov/bloghub/models"
	"github.com/avelkov/bloghub/utils"
)

// UserService implements account management: signup, signin, profile,
// promotion and deletion.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a UserService bound to the given database handle.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// SignupInput carries the fields required to register an account.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// UpdateUserInput carries the optional profile fields. Empty fields are
// left untouched.
type UpdateUserInput struct {
	Username string
	Email    string
}

// Signup hashes the password with bcrypt and persists a new user with
// the default role. A duplicate username fails with ErrUsernameTaken.
func (s *UserService) Signup(in SignupInput) (*models.User, error) {
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return &user, nil
}

// Signin looks up the user by email and verifies the password against
// the stored hash. An unknown email fails with ErrNotFound, a mismatch
// with ErrInvalidCredentials.
func (s *UserService) Signin(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GetAllUsers returns every user, unfiltered and unpaginated.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// PromoteUser grants the admin role. Promoting an admin is a no-op write.
func (s *UserService) PromoteUser(id string) (*models.User, error) {
	return s.setRole(id, models.RoleAdmin)
}

// DemoteUser reverts the user to the default role.
func (s *UserService) DemoteUser(id string) (*models.User, error) {
	return s.setRole(id, models.RoleUser)
}

func (s *UserService) setRole(id string, role models.Role) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	user.Role = role
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes the user together with their blogs, comments and
// likes. Deleting an unknown id is not an error.
//
// The cascade runs inside a single transaction so a partially deleted
// account can never be observed.
func (s *UserService) DeleteUser(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var blogIDs []string
		if err := tx.Model(&models.Blog{}).Where("author_id = ?", id).Pluck("id", &blogIDs).Error; err != nil {
			return err
		}
		if len(blogIDs) > 0 {
			if err := tx.Where("blog_id IN ?", blogIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("blog_id IN ?", blogIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("author_id = ?", id).Delete(&models.Blog{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.User{}).Error
	})
}

// ViewProfile returns the user with the given id.
func (s *UserService) ViewProfile(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial profile update: only non-empty fields
// are written.
func (s *UserService) UpdateUser(id string, in UpdateUserInput) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if v := strings.TrimSpace(in.Username); v != "" {
		user.Username = v
	}
	if v := strings.TrimSpace(in.Email); v != "" {
		user.Email = v
	}
	if err := s.db.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return &user, nil
}
