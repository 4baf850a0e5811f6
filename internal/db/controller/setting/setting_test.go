package setting

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/whyideas/whyideas/internal/db/models"
)

// setupTestDB creates a SQLite database in a temp directory for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Setting{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&models.Setting{Name: "site_name", Value: []byte("Why Ideas")}).Error)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		settingName   string
		expectedError error
		expectedValue []byte
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			settingName:   "test",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty name",
			dbParam:       db,
			settingName:   "",
			expectedError: ErrSettingNameEmpty,
		},
		{
			name:          "setting not found",
			dbParam:       db,
			settingName:   "nonexistent",
			expectedError: ErrSettingNotFound,
		},
		{
			name:          "successful get",
			dbParam:       db,
			settingName:   "site_name",
			expectedValue: []byte("Why Ideas"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Get(tc.dbParam, tc.settingName)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedValue, got.Value)
		})
	}
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	created, err := Create(db, "theme:abc", []byte("light"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = Create(db, "theme:abc", []byte("dark"))
	require.ErrorIs(t, err, ErrSettingAlreadyExists)

	_, err = Create(db, "", []byte("dark"))
	require.ErrorIs(t, err, ErrSettingNameEmpty)

	_, err = Create(nil, "theme:abc", nil)
	require.ErrorIs(t, err, ErrDBNil)
}

func TestSet(t *testing.T) {
	db := setupTestDB(t)

	first, err := Set(db, "theme:abc", []byte("dark"))
	require.NoError(t, err)

	second, err := Set(db, "theme:abc", []byte("light"))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "set must update the existing row")

	got, err := Get(db, "theme:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("light"), got.Value)

	var count int64
	require.NoError(t, db.Model(&models.Setting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = Set(db, "", []byte("light"))
	require.ErrorIs(t, err, ErrSettingNameEmpty)
}
