package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelkov/bloghub/models"
)

func TestCreateComment(t *testing.T) {
	db := newTestDB(t)
	s := NewCommentService(db)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	blog := createTestBlog(t, db, alice, "B1")

	comment, err := s.CreateComment("first!", alice.ID, blog.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, comment.ID)
	assert.Equal(t, blog.ID, comment.BlogID)
	assert.Equal(t, "alice", comment.User.Username)

	_, err = s.CreateComment("x", "missing-id", blog.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.CreateComment("x", alice.ID, "missing-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAllComments(t *testing.T) {
	db := newTestDB(t)
	s := NewCommentService(db)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	bob := createTestUser(t, db, "bob", models.RoleUser)
	blog := createTestBlog(t, db, alice, "B1")
	other := createTestBlog(t, db, alice, "B2")

	_, err := s.CreateComment("one", alice.ID, blog.ID)
	require.NoError(t, err)
	_, err = s.CreateComment("two", bob.ID, blog.ID)
	require.NoError(t, err)
	_, err = s.CreateComment("elsewhere", bob.ID, other.ID)
	require.NoError(t, err)

	comments, err := s.GetAllComments(blog.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "one", comments[0].Content)
	assert.Equal(t, "alice", comments[0].User.Username)
	assert.Equal(t, "two", comments[1].Content)
	assert.Equal(t, "bob", comments[1].User.Username)
}

func TestUpdateCommentOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	s := NewCommentService(db)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	bob := createTestUser(t, db, "bob", models.RoleUser)
	admin := createTestUser(t, db, "boss", models.RoleAdmin)
	blog := createTestBlog(t, db, alice, "B1")

	comment, err := s.CreateComment("original", bob.ID, blog.ID)
	require.NoError(t, err)

	updated, err := s.UpdateComment(comment.ID, "edited", bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.Equal(t, "bob", updated.User.Username)

	_, err = s.UpdateComment(comment.ID, "hijack", alice.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// Comments have no admin override, unlike blogs.
	_, err = s.UpdateComment(comment.ID, "admin edit", admin.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = s.UpdateComment("missing-id", "x", bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCommentOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	s := NewCommentService(db)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	bob := createTestUser(t, db, "bob", models.RoleUser)
	admin := createTestUser(t, db, "boss", models.RoleAdmin)
	blog := createTestBlog(t, db, alice, "B1")

	comment, err := s.CreateComment("to delete", bob.ID, blog.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteComment(comment.ID, alice.ID), ErrForbidden)
	assert.ErrorIs(t, s.DeleteComment(comment.ID, admin.ID), ErrForbidden)

	require.NoError(t, s.DeleteComment(comment.ID, bob.ID))
	assert.ErrorIs(t, s.DeleteComment(comment.ID, bob.ID), ErrNotFound)
}
