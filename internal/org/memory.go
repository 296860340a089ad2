package org

import (
	"context"
	"strings"
	"sync"
	"time"

	"org-service/internal/model"
)

// MemStore is an in-memory Store implementation for tests and local
// development. It mirrors the database store's case-insensitive lookups.
type MemStore struct {
	mu            sync.Mutex
	organizations map[uint]*model.Organization
	admins        map[uint]*model.Admin
	nextOrgID     uint
	nextAdminID   uint
}

// NewMemStore creates an empty in-memory metadata store
func NewMemStore() *MemStore {
	return &MemStore{
		organizations: make(map[uint]*model.Organization),
		admins:        make(map[uint]*model.Admin),
		nextOrgID:     1,
		nextAdminID:   1,
	}
}

func (s *MemStore) OrganizationByName(ctx context.Context, name string) (*model.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, organization := range s.organizations {
		if strings.EqualFold(organization.Name, name) {
			return copyOrganization(organization), nil
		}
	}
	return nil, ErrOrganizationNotFound
}

func (s *MemStore) OrganizationByID(ctx context.Context, id uint) (*model.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	organization, ok := s.organizations[id]
	if !ok {
		return nil, ErrOrganizationNotFound
	}
	return copyOrganization(organization), nil
}

func (s *MemStore) CreateOrganization(ctx context.Context, organization *model.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	organization.ID = s.nextOrgID
	s.nextOrgID++
	now := time.Now()
	organization.CreatedAt = now
	organization.UpdatedAt = now
	s.organizations[organization.ID] = copyOrganization(organization)
	return nil
}

func (s *MemStore) SaveOrganization(ctx context.Context, organization *model.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	organization.UpdatedAt = time.Now()
	s.organizations[organization.ID] = copyOrganization(organization)
	return nil
}

func (s *MemStore) DeleteOrganization(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.organizations, id)
	return nil
}

func (s *MemStore) AdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, admin := range s.admins {
		if strings.EqualFold(admin.Email, email) {
			return copyAdmin(admin), nil
		}
	}
	return nil, ErrAdminNotFound
}

func (s *MemStore) AdminByID(ctx context.Context, id uint) (*model.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	admin, ok := s.admins[id]
	if !ok {
		return nil, ErrAdminNotFound
	}
	return copyAdmin(admin), nil
}

func (s *MemStore) AdminByOrganization(ctx context.Context, organizationID uint) (*model.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, admin := range s.admins {
		if admin.OrganizationID == organizationID {
			return copyAdmin(admin), nil
		}
	}
	return nil, ErrAdminNotFound
}

func (s *MemStore) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	admin.ID = s.nextAdminID
	s.nextAdminID++
	now := time.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	s.admins[admin.ID] = copyAdmin(admin)
	return nil
}

func (s *MemStore) SaveAdmin(ctx context.Context, admin *model.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	admin.UpdatedAt = time.Now()
	s.admins[admin.ID] = copyAdmin(admin)
	return nil
}

func (s *MemStore) DeleteAdmin(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.admins, id)
	return nil
}

func copyOrganization(organization *model.Organization) *model.Organization {
	c := *organization
	return &c
}

func copyAdmin(admin *model.Admin) *model.Admin {
	c := *admin
	return &c
}
