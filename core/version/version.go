package version

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// Counter kinds. Catalog fingerprints the product+category dataset, Stats
// fingerprints the derived aggregates; they are bumped independently.
const (
	CatalogKind = "catalog_version"
	StatsKind   = "stats_version"
)

// Counter is the durable backing row for one monotonic counter.
type Counter struct {
	Name  string `gorm:"column:name;primaryKey;size:64"`
	Value int64  `gorm:"column:value;not null"`
}

// TableName sets the table name for Counter.
func (Counter) TableName() string {
	return "counters"
}

// Service reads and writes the durable version counters. Updates are
// serialized per key so concurrent read-then-write cycles cannot lose
// increments.
type Service struct {
	db   *gorm.DB
	mu   sync.Mutex
	keys map[string]*sync.Mutex
}

// NewService creates a counter service over the given database.
func NewService(db *gorm.DB) *Service {
	return &Service{
		db:   db,
		keys: make(map[string]*sync.Mutex),
	}
}

// keyLock returns the mutex guarding one counter key.
func (s *Service) keyLock(kind string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.keys[kind]
	if !ok {
		m = &sync.Mutex{}
		s.keys[kind] = m
	}
	return m
}

// Get returns the current value of the counter, initializing it to 1 and
// persisting that default on first access.
func (s *Service) Get(ctx context.Context, kind string) (int64, error) {
	m := s.keyLock(kind)
	m.Lock()
	defer m.Unlock()
	return s.get(ctx, kind)
}

func (s *Service) get(ctx context.Context, kind string) (int64, error) {
	var c Counter
	err := s.db.WithContext(ctx).Where("name = ?", kind).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = Counter{Name: kind, Value: 1}
		if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
			return 0, fmt.Errorf("failed to initialize counter %s: %w", kind, err)
		}
		return c.Value, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counter %s: %w", kind, err)
	}
	return c.Value, nil
}

// Bump increments the counter by exactly 1 and returns the new value.
func (s *Service) Bump(ctx context.Context, kind string) (int64, error) {
	m := s.keyLock(kind)
	m.Lock()
	defer m.Unlock()

	// Ensure the row exists before the atomic increment.
	if _, err := s.get(ctx, kind); err != nil {
		return 0, err
	}

	err := s.db.WithContext(ctx).Model(&Counter{}).
		Where("name = ?", kind).
		UpdateColumn("value", gorm.Expr("value + ?", 1)).Error
	if err != nil {
		return 0, fmt.Errorf("failed to bump counter %s: %w", kind, err)
	}

	return s.get(ctx, kind)
}

// Set overwrites the counter with the given value.
func (s *Service) Set(ctx context.Context, kind string, v int64) error {
	m := s.keyLock(kind)
	m.Lock()
	defer m.Unlock()

	res := s.db.WithContext(ctx).Model(&Counter{}).
		Where("name = ?", kind).
		UpdateColumn("value", v)
	if res.Error != nil {
		return fmt.Errorf("failed to set counter %s: %w", kind, res.Error)
	}
	if res.RowsAffected == 0 {
		if err := s.db.WithContext(ctx).Create(&Counter{Name: kind, Value: v}).Error; err != nil {
			return fmt.Errorf("failed to set counter %s: %w", kind, err)
		}
	}
	return nil
}
