package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/avelkov/bloghub/models"
)

// BlogService implements blog CRUD, search and the like/unlike pair.
type BlogService struct {
	db *gorm.DB
}

// NewBlogService creates a BlogService bound to the given database handle.
func NewBlogService(db *gorm.DB) *BlogService {
	return &BlogService{db: db}
}

// CreateBlogInput carries the fields required to author a blog.
type CreateBlogInput struct {
	Title    string
	Content  string
	Tags     []string
	AuthorID string
}

// BlogPage is one page of blogs with pagination metadata.
type BlogPage struct {
	Items []models.Blog `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// CreateBlog persists a blog for an existing author. A missing author
// fails with ErrNotFound and persists nothing.
func (s *BlogService) CreateBlog(in CreateBlogInput) (*models.Blog, error) {
	var author models.User
	if err := s.db.First(&author, "id = ?", in.AuthorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	blog := models.Blog{
		Title:    in.Title,
		Content:  in.Content,
		Tags:     in.Tags,
		AuthorID: author.ID,
	}
	if err := s.db.Create(&blog).Error; err != nil {
		return nil, err
	}
	blog.Author = author
	return &blog, nil
}

// GetAllBlogs returns one page of blogs with author, comments and likes
// attached. Pages are 1-indexed. A non-empty search term matches blogs
// whose title, content or tags contain it, case-insensitively.
func (s *BlogService) GetAllBlogs(page, limit int, search string) (*BlogPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	filter := func(tx *gorm.DB) *gorm.DB {
		q := strings.ToLower(strings.TrimSpace(search))
		if q == "" {
			return tx
		}
		pattern := "%" + q + "%"
		return tx.Where(
			"LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(tags) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := filter(s.db.Model(&models.Blog{})).Count(&total).Error; err != nil {
		return nil, err
	}

	var blogs []models.Blog
	err := filter(s.db).
		Preload("Author").
		Preload("Comments").
		Preload("Comments.User").
		Preload("Likes").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}

	return &BlogPage{Items: blogs, Total: total, Page: page, Limit: limit}, nil
}

// GetBlog returns a single blog with author, comments and likes attached.
func (s *BlogService) GetBlog(id string) (*models.Blog, error) {
	var blog models.Blog
	err := s.db.
		Preload("Author").
		Preload("Comments").
		Preload("Comments.User").
		Preload("Likes").
		First(&blog, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &blog, nil
}

// UpdateBlog overwrites title and content in full. Only the author or
// an admin may update; anyone else fails with ErrForbidden.
func (s *BlogService) UpdateBlog(id, title, content, callerID string, callerRole models.Role) (*models.Blog, error) {
	var blog models.Blog
	if err := s.db.First(&blog, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if blog.AuthorID != callerID && callerRole != models.RoleAdmin {
		return nil, ErrForbidden
	}

	blog.Title = title
	blog.Content = content
	if err := s.db.Save(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

// DeleteBlog removes the blog together with its comments and likes.
// The same owner-or-admin rule as UpdateBlog applies.
func (s *BlogService) DeleteBlog(id, callerID string, callerRole models.Role) error {
	var blog models.Blog
	if err := s.db.First(&blog, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if blog.AuthorID != callerID && callerRole != models.RoleAdmin {
		return ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", blog.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", blog.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&blog).Error
	})
}

// LikeBlog registers a like for the (caller, blog) pair. The unique
// index on likes makes the insert the only arbiter under concurrency;
// a duplicate fails with ErrAlreadyLiked.
func (s *BlogService) LikeBlog(blogID, callerID string) error {
	if err := s.requireBlogAndUser(blogID, callerID); err != nil {
		return err
	}
	like := models.Like{UserID: callerID, BlogID: blogID}
	if err := s.db.Create(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyLiked
		}
		return err
	}
	return nil
}

// UnlikeBlog removes the like for the (caller, blog) pair. A missing
// like fails with ErrNotLiked.
func (s *BlogService) UnlikeBlog(blogID, callerID string) error {
	if err := s.requireBlogAndUser(blogID, callerID); err != nil {
		return err
	}
	res := s.db.Where("blog_id = ? AND user_id = ?", blogID, callerID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotLiked
	}
	return nil
}

func (s *BlogService) requireBlogAndUser(blogID, userID string) error {
	var n int64
	if err := s.db.Model(&models.Blog{}).Where("id = ?", blogID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
