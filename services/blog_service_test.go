package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelkov/bloghub/models"
)

func TestCreateBlogUnknownAuthor(t *testing.T) {
	db := newTestDB(t)
	s := NewBlogService(db)

	_, err := s.CreateBlog(CreateBlogInput{Title: "t", Content: "c", AuthorID: "missing-id"})
	assert.ErrorIs(t, err, ErrNotFound)

	var n int64
	require.NoError(t, db.Model(&models.Blog{}).Count(&n).Error)
	assert.Zero(t, n, "nothing should be persisted")
}

func TestCreateBlog(t *testing.T) {
	db := newTestDB(t)
	s := NewBlogService(db)
	alice := createTestUser(t, db, "alice", models.RoleUser)

	blog, err := s.CreateBlog(CreateBlogInput{
		Title:    "Hello",
		Content:  "World",
		Tags:     []string{"go", "web"},
		AuthorID: alice.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, blog.ID)
	assert.Equal(t, alice.ID, blog.AuthorID)
	assert.Equal(t, "alice", blog.Author.Username)

	got, err := s.GetBlog(blog.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Tags{"go", "web"}, got.Tags)

	// Tags are optional and default to empty.
	untagged, err := s.CreateBlog(CreateBlogInput{Title: "No tags", Content: "c", AuthorID: alice.ID})
	require.NoError(t, err)
	got, err = s.GetBlog(untagged.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)
}

func TestGetAllBlogsPagination(t *testing.T) {
	db := newTestDB(t)
	s := NewBlogService(db)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	bob := createTestUser(t, db, "bob", models.RoleUser)

	first := createTestBlog(t, db, alice, "First")
	createTestBlog(t, db, alice, "Second")
	createTestBlog(t, db, alice, "Third")

	_, err := NewCommentService(db).CreateComment("nice", bob.ID, first.ID)
	require.NoError(t, err)
	require.NoError(t, s.LikeBlog(first.ID, bob.ID))

	page, err := s.GetAllBlogs(1, 2, "")
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.EqualValues(t, 3, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.Limit)

	page, err = s.GetAllBlogs(2, 2, "")
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.EqualValues(t, 3, page.Total)

	// Author, comments and likes come eagerly attached.
	all, err := s.GetAllBlogs(1, 10, "")
	require.NoError(t, err)
	for _, b := range all.Items {
		assert.Equal(t, "alice", b.Author.Username)
		if b.ID == first.ID {
			require.Len(t, b.Comments, 1)
			assert.Equal(t, "bob", b.Comments[0].User.Username)
			require.Len(t, b.Likes, 1)
			assert.Equal(t, bob.ID, b.Likes[0].UserID)
		}
	}
}

func TestGetAllBlogsSearch(t *testing.T) {
	db := newTestDB(t)
	s := NewBlogService(db)
	alice := createTestUser(t, db, "alice", models.RoleUser)

	_, err := s.CreateBlog(CreateBlogInput{Title: "Test Blog", Content: "something", AuthorID: alice.ID})
	require.NoError(t, err)
	_, err = s.CreateBlog(CreateBlogInput{Title: "Other", Content: "this mentions TESTING inside", AuthorID: alice.ID})
	require.NoError(t, err)
	_, err = s.CreateBlog(CreateBlogInput{Title: "Tagged", Content: "c", Tags: []string{"latest", "news"}, AuthorID: alice.ID})
	require.NoError(t, err)
	_, err = s.CreateBlog(CreateBlogInput{Title: "Unrelated", Content: "nothing here", AuthorID: alice.ID})
	require.NoError(t, err)

	page, err := s.GetAllBlogs(1, 10, "test")
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total, "title, content and tag matches, case-insensitively")

	titles := make([]string, 0, len(page.Items))
	for _, b := range page.Items {
		titles = append(titles, b.Title)
	}
	assert.ElementsMatch(t, []string{"Test Blog", "Other", "Tagged"}, titles)

	page, err = s.GetAllBlogs(1, 10, "no-such-term")
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)
	assert.Empty(t, page.Items)
}

func TestUpdateBlogOwnership(t *testing.T) {
	db := newTestDB(t)
	s := NewBlogService(db)
	u1 := createTestUser(t, db, "u1", models.RoleUser)
	u2 := createTestUser(t, db, "u2", models.RoleUser)
	admin := createTestUser(t, db, "boss", models.RoleAdmin)

	blog := createTestBlog(t, db, u1, "B1")

	_, err := s.UpdateBlog(blog.ID, "x", "y", u2.ID, models.RoleUser)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := s.UpdateBlog(blog.ID, "by author", "new content", u1.ID, models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "by author", updated.Title)
	assert.Equal(t, "new content", updated.Content)

	updated, err = s.UpdateBlog(blog.ID, "by admin", "admin content", admin.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "by admin", updated.Title)

	_, err = s.UpdateBlog("missing-id", "x", "y", u1.ID, models.RoleUser)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteBlogOwnershipAndCascade(t *testing.T) {
	db := newTestDB(t)
	s := NewBlogService(db)
	u1 := createTestUser(t, db, "u1", models.RoleUser)
	u2 := createTestUser(t, db, "u2", models.RoleUser)
	admin := createTestUser(t, db, "boss", models.RoleAdmin)

	blog := createTestBlog(t, db, u1, "B1")
	_, err := NewCommentService(db).CreateComment("hi", u2.ID, blog.ID)
	require.NoError(t, err)
	require.NoError(t, s.LikeBlog(blog.ID, u2.ID))

	err = s.DeleteBlog(blog.ID, u2.ID, models.RoleUser)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, s.DeleteBlog(blog.ID, u1.ID, models.RoleUser))

	var n int64
	require.NoError(t, db.Model(&models.Comment{}).Where("blog_id = ?", blog.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&models.Like{}).Where("blog_id = ?", blog.ID).Count(&n).Error)
	assert.Zero(t, n)

	// Admin may delete someone else's blog.
	other := createTestBlog(t, db, u1, "B2")
	require.NoError(t, s.DeleteBlog(other.ID, admin.ID, models.RoleAdmin))

	assert.ErrorIs(t, s.DeleteBlog("missing-id", u1.ID, models.RoleUser), ErrNotFound)
}

func TestLikeUnlikeCycle(t *testing.T) {
	db := newTestDB(t)
	s := NewBlogService(db)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	bob := createTestUser(t, db, "bob", models.RoleUser)
	blog := createTestBlog(t, db, alice, "B1")

	require.NoError(t, s.LikeBlog(blog.ID, bob.ID))
	assert.ErrorIs(t, s.LikeBlog(blog.ID, bob.ID), ErrAlreadyLiked)

	// A second user may still like the same blog.
	require.NoError(t, s.LikeBlog(blog.ID, alice.ID))

	require.NoError(t, s.UnlikeBlog(blog.ID, bob.ID))
	assert.ErrorIs(t, s.UnlikeBlog(blog.ID, bob.ID), ErrNotLiked)

	// After unlike, liking again succeeds.
	require.NoError(t, s.LikeBlog(blog.ID, bob.ID))

	assert.ErrorIs(t, s.LikeBlog("missing-id", bob.ID), ErrNotFound)
	assert.ErrorIs(t, s.LikeBlog(blog.ID, "missing-id"), ErrNotFound)
	assert.ErrorIs(t, s.UnlikeBlog("missing-id", bob.ID), ErrNotFound)
	assert.ErrorIs(t, s.UnlikeBlog(blog.ID, "missing-id"), ErrNotFound)
}
