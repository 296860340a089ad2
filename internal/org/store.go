package org

import (
	"context"

	"org-service/internal/model"
)

// Store persists organization and admin metadata. Name and email lookups
// are case-insensitive. Lookups return ErrOrganizationNotFound or
// ErrAdminNotFound when no record matches.
type Store interface {
	OrganizationByName(ctx context.Context, name string) (*model.Organization, error)
	OrganizationByID(ctx context.Context, id uint) (*model.Organization, error)
	CreateOrganization(ctx context.Context, organization *model.Organization) error
	SaveOrganization(ctx context.Context, organization *model.Organization) error
	DeleteOrganization(ctx context.Context, id uint) error

	AdminByEmail(ctx context.Context, email string) (*model.Admin, error)
	AdminByID(ctx context.Context, id uint) (*model.Admin, error)
	AdminByOrganization(ctx context.Context, organizationID uint) (*model.Admin, error)
	CreateAdmin(ctx context.Context, admin *model.Admin) error
	SaveAdmin(ctx context.Context, admin *model.Admin) error
	DeleteAdmin(ctx context.Context, id uint) error
}
