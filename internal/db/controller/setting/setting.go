// Package setting provides storage operations for named settings.
package setting

import (
	"errors"

	"gorm.io/gorm"

	"github.com/whyideas/whyideas/internal/db/models"
)

const (
	nameQueryPattern = "name = ?"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingNameEmpty is returned when attempting to create/update a setting with an empty name.
	ErrSettingNameEmpty = errors.New("setting name cannot be empty")
	// ErrSettingAlreadyExists is returned when attempting to create a setting that already exists.
	ErrSettingAlreadyExists = errors.New("setting already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a setting by its name.
func Get(db *gorm.DB, name string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	var setting models.Setting
	result := db.Where(nameQueryPattern, name).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, result.Error
	}

	return &setting, nil
}

// Create creates a new setting in the database.
func Create(db *gorm.DB, name string, value []byte) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	_, err := Get(db, name)
	if err == nil {
		return nil, ErrSettingAlreadyExists
	}
	if !errors.Is(err, ErrSettingNotFound) {
		return nil, err
	}

	setting := &models.Setting{
		Name:  name,
		Value: value,
	}

	if result := db.Create(setting); result.Error != nil {
		return nil, result.Error
	}

	return setting, nil
}

// Set creates or updates a setting by name (upsert operation).
func Set(db *gorm.DB, name string, value []byte) (*models.Setting, error) {
	setting, err := Get(db, name)
	if errors.Is(err, ErrSettingNotFound) {
		return Create(db, name, value)
	}
	if err != nil {
		return nil, err
	}

	setting.Value = value
	if result := db.Save(setting); result.Error != nil {
		return nil, result.Error
	}

	return setting, nil
}
