package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/avelkov/bloghub/models"
)

// CommentService implements comments scoped to a blog.
//
// Unlike blogs, comment update and delete have no admin override: only
// the comment's own author may touch it.
type CommentService struct {
	db *gorm.DB
}

// NewCommentService creates a CommentService bound to the given database handle.
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// CreateComment persists a comment for an existing user on an existing
// blog and returns it with the author attached.
func (s *CommentService) CreateComment(content, userID, blogID string) (*models.Comment, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var n int64
	if err := s.db.Model(&models.Blog{}).Where("id = ?", blogID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	comment := models.Comment{
		Content: content,
		UserID:  user.ID,
		BlogID:  blogID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	comment.User = user
	return &comment, nil
}

// GetAllComments returns every comment on a blog with the authoring
// user attached, in insertion order.
func (s *CommentService) GetAllComments(blogID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.
		Preload("User").
		Where("blog_id = ?", blogID).
		Order("created_at").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateComment overwrites the content. Only the comment's author may
// update it; admins get no override here.
func (s *CommentService) UpdateComment(commentID, content, callerID string) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if comment.UserID != callerID {
		return nil, ErrForbidden
	}

	if err := s.db.Model(&comment).Update("content", content).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("User").First(&comment, "id = ?", commentID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes the comment under the same owner-only rule as
// UpdateComment.
func (s *CommentService) DeleteComment(commentID, callerID string) error {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if comment.UserID != callerID {
		return ErrForbidden
	}
	return s.db.Delete(&comment).Error
}
