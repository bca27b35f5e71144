package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avelkov/bloghub/models"
)

// newTestDB opens an isolated in-memory database with the same
// auto-migrated schema the server uses.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Blog{}, &models.Comment{}, &models.Like{}))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()

	user, err := NewUserService(db).Signup(SignupInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret-pass",
	})
	require.NoError(t, err)

	if role != models.RoleUser {
		user.Role = role
		require.NoError(t, db.Save(user).Error)
	}
	return user
}

func createTestBlog(t *testing.T, db *gorm.DB, author *models.User, title string) *models.Blog {
	t.Helper()

	blog, err := NewBlogService(db).CreateBlog(CreateBlogInput{
		Title:    title,
		Content:  "content of " + title,
		AuthorID: author.ID,
	})
	require.NoError(t, err)
	return blog
}
