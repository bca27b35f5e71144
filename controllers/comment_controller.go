package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/avelkov/bloghub/middleware"
	"github.com/avelkov/bloghub/services"
	"github.com/avelkov/bloghub/utils"
)

// CommentController manages comments scoped to a blog.
type CommentController struct {
	comments *services.CommentService
}

// NewCommentController creates a CommentController.
func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{comments: services.NewCommentService(db)}
}

// CreateComment adds the caller's comment to a blog.
func (c *CommentController) CreateComment(ctx *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	content := utils.Sanitize(req.Content)
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40031, "content cannot be empty")
		return
	}

	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "unauthorized")
		return
	}

	blogID := ctx.Param("id")
	comment, err := c.comments.CreateComment(content, callerID, blogID)
	if err != nil {
		serviceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:blogs:list:")
	utils.InvalidateByPrefix("cache:blog:detail:" + blogID)
	utils.Created(ctx, gin.H{"comment": comment})
}

// ListComments returns every comment on a blog with its author attached.
func (c *CommentController) ListComments(ctx *gin.Context) {
	comments, err := c.comments.GetAllComments(ctx.Param("id"))
	if err != nil {
		serviceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"comments": comments})
}

// UpdateComment overwrites the comment content. Owner only, no admin
// override.
func (c *CommentController) UpdateComment(ctx *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40032, "invalid request payload")
		return
	}

	content := utils.Sanitize(req.Content)
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40031, "content cannot be empty")
		return
	}

	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "unauthorized")
		return
	}

	comment, err := c.comments.UpdateComment(ctx.Param("commentId"), content, callerID)
	if err != nil {
		serviceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:blogs:list:")
	utils.InvalidateByPrefix("cache:blog:detail:" + comment.BlogID)
	utils.Success(ctx, gin.H{"comment": comment})
}

// DeleteComment removes the comment. Owner only, no admin override.
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "unauthorized")
		return
	}

	if err := c.comments.DeleteComment(ctx.Param("commentId"), callerID); err != nil {
		serviceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:blogs:list:")
	utils.NoContent(ctx)
}
