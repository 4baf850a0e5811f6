// Package models contains database model definitions.
package models

// Setting is a named value stored in the database. Visitor preferences are
// stored here under keys like "theme:<visitor id>".
type Setting struct {
	ID    uint64 `gorm:"primaryKey"`
	Name  string `gorm:"uniqueIndex;size:191;not null"`
	Value []byte
}
