package contact

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/whyideas/whyideas/internal/contact"
	"github.com/whyideas/whyideas/internal/db/models"
)

// setupTestDB creates a SQLite database in a temp directory for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err, "failed to create test database")

	require.NoError(t, db.AutoMigrate(&models.Contact{}), "failed to migrate test database")

	return db
}

func TestStore_Insert(t *testing.T) {
	store := NewStore(setupTestDB(t))
	before := time.Now().Add(-time.Second)

	rec, err := store.Insert(context.Background(), domain.Submission{
		Name:    "Jo",
		Email:   "a@b.com",
		Message: "1234567890",
	})
	require.NoError(t, err)

	_, err = uuid.Parse(rec.ID)
	require.NoError(t, err, "id must be a uuid")
	assert.True(t, rec.CreatedAt.After(before), "createdAt must be set by the store")
	assert.Equal(t, "Jo", rec.Name)
	assert.Equal(t, "a@b.com", rec.Email)
	assert.Equal(t, "1234567890", rec.Message)
}

func TestStore_FindByID(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	rec, err := store.Insert(ctx, domain.Submission{Name: "Jo", Email: "a@b.com", Message: "1234567890"})
	require.NoError(t, err)

	got, err := store.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Message, got.Message)
	assert.WithinDuration(t, rec.CreatedAt, got.CreatedAt, time.Millisecond)

	_, err = store.FindByID(ctx, uuid.NewString())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ListAllDescending(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	empty, err := store.ListAllDescending(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second", "third"} {
		require.NoError(t, db.Create(&models.Contact{
			Name:      name,
			Email:     name + "@example.com",
			Message:   "hello from " + name,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	got, err := store.ListAllDescending(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "third", got[0].Name)
	assert.Equal(t, "second", got[1].Name)
	assert.Equal(t, "first", got[2].Name)
}

func TestStore_NilDB(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	_, err := store.Insert(ctx, domain.Submission{})
	require.ErrorIs(t, err, ErrDBNil)

	_, err = store.ListAllDescending(ctx)
	require.ErrorIs(t, err, ErrDBNil)

	_, err = store.FindByID(ctx, "x")
	require.ErrorIs(t, err, ErrDBNil)
}
