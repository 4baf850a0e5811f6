package visitor

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/whyideas/whyideas/internal/db/controller/setting"
	"github.com/whyideas/whyideas/internal/db/models"
	"github.com/whyideas/whyideas/internal/theme"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Setting{}))

	return db
}

func TestGenerateID(t *testing.T) {
	a, err := GenerateID()
	require.NoError(t, err)
	b, err := GenerateID()
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.True(t, ValidID(a))
	assert.NotEqual(t, a, b)
}

func TestValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"0123456789abcdef0123456789abcdef", true},
		{"0123456789abcdef", false},
		{"zz23456789abcdef0123456789abcdef", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidID(tt.id))
		})
	}
}

func TestID(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		id, err := ID(c)
		if err != nil {
			return err
		}

		return c.SendString(id)
	})

	// no cookie: a new id is issued
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	issued := string(body)
	require.True(t, ValidID(issued))

	var cookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == CookieName {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, issued, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	// known cookie: id is kept and no new cookie is set
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: issued})

	resp, err = app.Test(req)
	require.NoError(t, err)

	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, issued, string(body))
	assert.Empty(t, resp.Cookies())

	// malformed cookie: replaced
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-an-id"})

	resp, err = app.Test(req)
	require.NoError(t, err)

	body, _ = io.ReadAll(resp.Body)
	assert.NotEqual(t, "not-an-id", string(body))
	assert.True(t, ValidID(string(body)))
}

func TestPreferenceStorage(t *testing.T) {
	db := newTestDB(t)
	s := NewPreferenceStorage(db, "0123456789abcdef0123456789abcdef")

	_, err := s.Get(theme.StorageKey)
	require.ErrorIs(t, err, theme.ErrNotStored)

	require.NoError(t, s.Set(theme.StorageKey, "light"))
	v, err := s.Get(theme.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "light", v)

	require.NoError(t, s.Set(theme.StorageKey, "dark"))
	v, err = s.Get(theme.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	row, err := setting.Get(db, "theme:0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, []byte("dark"), row.Value)

	other := NewPreferenceStorage(db, "fedcba9876543210fedcba9876543210")
	_, err = other.Get(theme.StorageKey)
	require.ErrorIs(t, err, theme.ErrNotStored, "visitors must not share preferences")
}

func TestTheme(t *testing.T) {
	db := newTestDB(t)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		ctrl, err := Theme(c, db)
		if err != nil {
			return err
		}

		return c.SendString(ctrl.Class())
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "dark", string(body))

	var count int64
	require.NoError(t, db.Model(&models.Setting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "default mode must be written back")
}
