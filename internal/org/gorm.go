package org

import (
	"context"
	"errors"

	"org-service/internal/model"

	"gorm.io/gorm"
)

// GormStore implements Store against PostgreSQL
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a metadata store backed by the given database
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) OrganizationByName(ctx context.Context, name string) (*model.Organization, error) {
	var organization model.Organization
	err := s.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&organization).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrganizationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &organization, nil
}

func (s *GormStore) OrganizationByID(ctx context.Context, id uint) (*model.Organization, error) {
	var organization model.Organization
	err := s.db.WithContext(ctx).First(&organization, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrganizationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &organization, nil
}

func (s *GormStore) CreateOrganization(ctx context.Context, organization *model.Organization) error {
	return s.db.WithContext(ctx).Create(organization).Error
}

func (s *GormStore) SaveOrganization(ctx context.Context, organization *model.Organization) error {
	return s.db.WithContext(ctx).Save(organization).Error
}

func (s *GormStore) DeleteOrganization(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&model.Organization{}, id).Error
}

func (s *GormStore) AdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	err := s.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *GormStore) AdminByID(ctx context.Context, id uint) (*model.Admin, error) {
	var admin model.Admin
	err := s.db.WithContext(ctx).First(&admin, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *GormStore) AdminByOrganization(ctx context.Context, organizationID uint) (*model.Admin, error) {
	var admin model.Admin
	err := s.db.WithContext(ctx).Where("organization_id = ?", organizationID).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *GormStore) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	return s.db.WithContext(ctx).Create(admin).Error
}

func (s *GormStore) SaveAdmin(ctx context.Context, admin *model.Admin) error {
	return s.db.WithContext(ctx).Save(admin).Error
}

func (s *GormStore) DeleteAdmin(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&model.Admin{}, id).Error
}
