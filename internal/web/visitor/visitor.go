// Package visitor identifies anonymous visitors by cookie and keeps their
// theme preference in the settings table.
package visitor

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/whyideas/whyideas/internal/db/controller/setting"
	"github.com/whyideas/whyideas/internal/theme"
)

const (
	// CookieName holds the visitor id.
	CookieName = "whyideas_visitor"

	idBytes        = 16
	cookieLifetime = 365 * 24 * time.Hour
)

// GenerateID returns a new random visitor id.
func GenerateID() (string, error) {
	b := make([]byte, idBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// ValidID reports whether id looks like an id issued by GenerateID.
func ValidID(id string) bool {
	if len(id) != 2*idBytes {
		return false
	}

	_, err := hex.DecodeString(id)

	return err == nil
}

// ID returns the visitor id of the request, issuing a new cookie if the
// request carries none or a malformed one.
func ID(c *fiber.Ctx) (string, error) {
	if id := c.Cookies(CookieName); ValidID(id) {
		return id, nil
	}

	id, err := GenerateID()
	if err != nil {
		return "", err
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(cookieLifetime),
		HTTPOnly: true,
		Secure:   c.Protocol() == "https",
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return id, nil
}

// PreferenceStorage is a theme.Storage keeping one visitor's values in the
// settings table under "<key>:<visitor id>".
type PreferenceStorage struct {
	db        *gorm.DB
	visitorID string
}

var _ theme.Storage = (*PreferenceStorage)(nil)

// NewPreferenceStorage returns the storage of visitorID.
func NewPreferenceStorage(db *gorm.DB, visitorID string) *PreferenceStorage {
	return &PreferenceStorage{db: db, visitorID: visitorID}
}

func (s *PreferenceStorage) name(key string) string {
	return key + ":" + s.visitorID
}

// Get implements theme.Storage.
func (s *PreferenceStorage) Get(key string) (string, error) {
	row, err := setting.Get(s.db, s.name(key))
	if errors.Is(err, setting.ErrSettingNotFound) {
		return "", theme.ErrNotStored
	}
	if err != nil {
		return "", err
	}

	return string(row.Value), nil
}

// Set implements theme.Storage.
func (s *PreferenceStorage) Set(key, value string) error {
	_, err := setting.Set(s.db, s.name(key), []byte(value))

	return err
}

// Theme returns the initialized theme controller of the requesting visitor.
// A failed read or a failed write of the default mode is logged, the
// controller still holds the default.
func Theme(c *fiber.Ctx, db *gorm.DB) (*theme.Controller, error) {
	id, err := ID(c)
	if err != nil {
		return nil, err
	}

	ctrl := theme.New(NewPreferenceStorage(db.WithContext(c.UserContext()), id))
	if err := ctrl.Initialize(); err != nil {
		log.Warn().Err(err).Str("visitor", id).Msg("can't initialize theme")
	}

	return ctrl, nil
}
