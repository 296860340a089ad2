package partition

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// Partition names are produced by the slug package plus the org_ prefix, so
// anything outside this alphabet is a programming error, not user input.
var validName = regexp.MustCompile(`^[a-z0-9_]+$`)

// NamePrefix marks the tables that belong to the partition namespace,
// separating them from the service's own metadata tables.
const NamePrefix = "org_"

// GormStore implements Store on top of a shared PostgreSQL database.
// Each partition is a dedicated table holding opaque JSONB records.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a partition store backed by the given database
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Exists(ctx context.Context, name string) (bool, error) {
	names, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true, nil
		}
	}
	return false, nil
}

func (s *GormStore) Create(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	stmt := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %q (id BIGSERIAL PRIMARY KEY, data JSONB NOT NULL, created_at TIMESTAMPTZ NOT NULL DEFAULT now())`,
		name,
	)
	return s.db.WithContext(ctx).Exec(stmt).Error
}

func (s *GormStore) CopyAll(ctx context.Context, src, dst string) error {
	if err := checkName(src); err != nil {
		return err
	}
	if err := checkName(dst); err != nil {
		return err
	}

	var records []map[string]interface{}
	if err := s.db.WithContext(ctx).Table(src).Find(&records).Error; err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Table(dst).Create(records).Error
}

func (s *GormStore) Drop(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	stmt := fmt.Sprintf(`DROP TABLE IF EXISTS %q`, name)
	return s.db.WithContext(ctx).Exec(stmt).Error
}

func (s *GormStore) List(ctx context.Context) ([]string, error) {
	var tables []string
	err := s.db.WithContext(ctx).
		Raw(`SELECT table_name FROM information_schema.tables WHERE table_schema = 'public'`).
		Scan(&tables).Error
	if err != nil {
		return nil, err
	}
	// Prefix filtering happens here rather than in SQL: in LIKE patterns the
	// underscore of the prefix would act as a wildcard.
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		if strings.HasPrefix(t, NamePrefix) {
			names = append(names, t)
		}
	}
	return names, nil
}

func checkName(name string) error {
	if name == "" || !validName.MatchString(name) {
		return fmt.Errorf("invalid partition name %q", name)
	}
	return nil
}
