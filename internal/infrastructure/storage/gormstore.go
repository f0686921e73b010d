package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// EntryModel is the persistence model for key-value entries.
type EntryModel struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (EntryModel) TableName() string {
	return "kv_entries"
}

// GormStore is a KeyValueStore backed by a local SQLite database.
type GormStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (or creates) the SQLite database at path and
// migrates the key-value table.
func NewSQLiteStore(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if err := db.AutoMigrate(&EntryModel{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite store: %w", err)
	}
	return &GormStore{db: db}, nil
}

// NewGormStore wraps an existing gorm DB handle.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&EntryModel{}); err != nil {
		return nil, fmt.Errorf("migrate store: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Get returns the raw value for key, or ErrKeyNotFound.
func (s *GormStore) Get(key string) ([]byte, error) {
	var entry EntryModel
	if err := s.db.First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return entry.Value, nil
}

// Set stores the raw value for key, overwriting any previous value.
func (s *GormStore) Set(key string, value []byte) error {
	entry := EntryModel{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	if err := s.db.Save(&entry).Error; err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Delete removes the key. Deleting a missing key is not an error.
func (s *GormStore) Delete(key string) error {
	if err := s.db.Delete(&EntryModel{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
