// Package contact stores contact submissions with gorm.
package contact

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	domain "github.com/whyideas/whyideas/internal/contact"
	"github.com/whyideas/whyideas/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// Store implements contact.Store on a gorm database.
type Store struct {
	db *gorm.DB
}

var _ domain.Store = (*Store)(nil)

// NewStore returns a Store using db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Insert stores s. The id and creation time are assigned on insert.
func (s *Store) Insert(ctx context.Context, sub domain.Submission) (domain.Record, error) {
	if s.db == nil {
		return domain.Record{}, ErrDBNil
	}

	row := &models.Contact{
		Name:    sub.Name,
		Email:   sub.Email,
		Message: sub.Message,
	}

	if result := s.db.WithContext(ctx).Create(row); result.Error != nil {
		return domain.Record{}, pkgerrors.Wrap(result.Error, "insert contact")
	}

	return toRecord(row), nil
}

// ListAllDescending returns all contacts ordered by creation time, newest first.
func (s *Store) ListAllDescending(ctx context.Context) ([]domain.Record, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	var rows []models.Contact
	if result := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&rows); result.Error != nil {
		return nil, pkgerrors.Wrap(result.Error, "list contacts")
	}

	records := make([]domain.Record, len(rows))
	for i := range rows {
		records[i] = toRecord(&rows[i])
	}

	return records, nil
}

// FindByID returns the contact with the given id or contact.ErrNotFound.
func (s *Store) FindByID(ctx context.Context, id string) (domain.Record, error) {
	if s.db == nil {
		return domain.Record{}, ErrDBNil
	}

	var row models.Contact
	result := s.db.WithContext(ctx).Where("id = ?", id).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return domain.Record{}, domain.ErrNotFound
		}
		return domain.Record{}, pkgerrors.Wrap(result.Error, "find contact")
	}

	return toRecord(&row), nil
}

func toRecord(c *models.Contact) domain.Record {
	return domain.Record{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
}
