package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rafabene/avantpro-blog/internal/domain/entities"
	"github.com/rafabene/avantpro-blog/internal/domain/valueobjects"
)

// newTestDB abre um SQLite em memória isolado por teste
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func newTestUserEntity(t *testing.T, email string) *entities.User {
	t.Helper()

	addr, err := valueobjects.NewEmail(email)
	require.NoError(t, err)

	return &entities.User{Email: addr, Name: "Wahid", PasswordHash: "hash"}
}

func newTestUser(t *testing.T, repo *UserRepository, email string) *entities.User {
	t.Helper()

	user := newTestUserEntity(t, email)
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func newTestPost(authorID, slug string, createdAt time.Time) *entities.Post {
	return &entities.Post{
		AuthorID:  authorID,
		Title:     "Title " + slug,
		Body:      "Body",
		Slug:      slug,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}
