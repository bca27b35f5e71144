package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/avelkov/bloghub/middleware"
	"github.com/avelkov/bloghub/services"
	"github.com/avelkov/bloghub/utils"
)

// BlogController manages blog CRUD, search and likes.
type BlogController struct {
	blogs *services.BlogService
}

// NewBlogController creates a BlogController.
func NewBlogController(db *gorm.DB) *BlogController {
	return &BlogController{blogs: services.NewBlogService(db)}
}

// CreateBlog creates a blog authored by the caller.
func (b *BlogController) CreateBlog(ctx *gin.Context) {
	var req struct {
		Title   string   `json:"title" binding:"required,min=1"`
		Content string   `json:"content" binding:"required"`
		Tags    []string `json:"tags"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "title cannot be empty")
		return
	}
	content := utils.Sanitize(req.Content)

	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "unauthorized")
		return
	}

	blog, err := b.blogs.CreateBlog(services.CreateBlogInput{
		Title:    title,
		Content:  content,
		Tags:     req.Tags,
		AuthorID: callerID,
	})
	if err != nil {
		serviceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:blogs:list:")
	utils.Created(ctx, gin.H{"blog": blog})
}

// ListBlogs returns one page of blogs with author, comments and likes
// attached. Supports an optional case-insensitive search term matched
// against title, content and tags.
func (b *BlogController) ListBlogs(ctx *gin.Context) {
	page, limit := parsePagination(ctx.Query("page"), ctx.Query("limit"))
	search := strings.TrimSpace(ctx.Query("search"))

	// Cache only unsearched pages to avoid cache key explosion.
	cacheKey := fmt.Sprintf("cache:blogs:list:page=%d:limit=%d", page, limit)
	if search == "" {
		if cached, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(http.StatusOK, "application/json", cached)
			return
		}
	}

	result, err := b.blogs.GetAllBlogs(page, limit, search)
	if err != nil {
		serviceError(ctx, err)
		return
	}

	if search == "" {
		utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: result}, time.Hour)
	}
	utils.Success(ctx, result)
}

// GetBlog returns a single blog with author, comments and likes attached.
func (b *BlogController) GetBlog(ctx *gin.Context) {
	blogID := ctx.Param("id")

	cacheKey := "cache:blog:detail:" + blogID
	if cached, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", cached)
		return
	}

	blog, err := b.blogs.GetBlog(blogID)
	if err != nil {
		serviceError(ctx, err)
		return
	}

	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: gin.H{"blog": blog}}, time.Hour)
	utils.Success(ctx, gin.H{"blog": blog})
}

// UpdateBlog overwrites title and content. Author or admin only.
func (b *BlogController) UpdateBlog(ctx *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required,min=1"`
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "title cannot be empty")
		return
	}
	content := utils.Sanitize(req.Content)

	callerID, ok := middleware.CallerID(ctx)
	role, okRole := middleware.CallerRole(ctx)
	if !ok || !okRole {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "unauthorized")
		return
	}

	blogID := ctx.Param("id")
	blog, err := b.blogs.UpdateBlog(blogID, title, content, callerID, role)
	if err != nil {
		serviceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:blogs:list:")
	utils.InvalidateByPrefix("cache:blog:detail:" + blogID)
	utils.Success(ctx, gin.H{"blog": blog})
}

// DeleteBlog removes a blog and its comments and likes. Author or
// admin only.
func (b *BlogController) DeleteBlog(ctx *gin.Context) {
	callerID, ok := middleware.CallerID(ctx)
	role, okRole := middleware.CallerRole(ctx)
	if !ok || !okRole {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "unauthorized")
		return
	}

	blogID := ctx.Param("id")
	if err := b.blogs.DeleteBlog(blogID, callerID, role); err != nil {
		serviceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:blogs:list:")
	utils.InvalidateByPrefix("cache:blog:detail:" + blogID)
	utils.NoContent(ctx)
}

// LikeBlog registers the caller's like. Liking twice is a conflict.
func (b *BlogController) LikeBlog(ctx *gin.Context) {
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "unauthorized")
		return
	}

	blogID := ctx.Param("id")
	if err := b.blogs.LikeBlog(blogID, callerID); err != nil {
		serviceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:blogs:list:")
	utils.InvalidateByPrefix("cache:blog:detail:" + blogID)
	utils.Success(ctx, gin.H{"message": "blog liked"})
}

// UnlikeBlog removes the caller's like. Unliking without a like is a
// conflict.
func (b *BlogController) UnlikeBlog(ctx *gin.Context) {
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "unauthorized")
		return
	}

	blogID := ctx.Param("id")
	if err := b.blogs.UnlikeBlog(blogID, callerID); err != nil {
		serviceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:blogs:list:")
	utils.InvalidateByPrefix("cache:blog:detail:" + blogID)
	utils.Success(ctx, gin.H{"message": "blog unliked"})
}

func parsePagination(pageStr, limitStr string) (int, int) {
	page := 1
	limit := 10
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	return page, limit
}
