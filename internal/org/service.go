// Package org implements the organization lifecycle: creating a tenant with
// its own storage partition and admin user, renaming it (migrating the
// partition), and deleting it. Uniqueness of organization names and admin
// emails is enforced here with case-insensitive checks before any storage
// side effect runs. The multi-step operations are sequential and not
// transactional; a failure part-way leaves the store in the intermediate
// state, with partition create/drop idempotent so a re-run can make progress.
package org

import (
	"context"
	"fmt"
	"strings"

	"org-service/internal/model"
	"org-service/internal/partition"
	"org-service/internal/slug"

	"golang.org/x/crypto/bcrypt"
)

// Identity is the authenticated caller attached to a request by the auth
// middleware: the resolved admin record and their current organization.
type Identity struct {
	Admin        *model.Admin
	Organization *model.Organization
}

// Service orchestrates organization lifecycle operations
type Service struct {
	store      Store
	partitions partition.Store
	bcryptCost int
}

// NewService creates a lifecycle service over the given stores.
// bcryptCost tunes the password hashing work factor.
func NewService(store Store, partitions partition.Store, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		store:      store,
		partitions: partitions,
		bcryptCost: bcryptCost,
	}
}

// PartitionName derives the storage partition name for a display name
func PartitionName(displayName string) string {
	return partition.NamePrefix + slug.Make(displayName)
}

// Create provisions a new organization: a dedicated storage partition, the
// organization record, and its admin user, in that order. A failure after
// the partition is created leaves an inert empty partition behind.
func (s *Service) Create(ctx context.Context, name, email, password string) (*model.Organization, *model.Admin, error) {
	if name == "" || email == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: organization_name, email and password are required", ErrValidation)
	}

	// Ensure the organization name is not already used
	if _, err := s.store.OrganizationByName(ctx, name); err == nil {
		return nil, nil, ErrDuplicateOrganization
	} else if err != ErrOrganizationNotFound {
		return nil, nil, err
	}

	// Ensure the admin email is not already used
	if _, err := s.store.AdminByEmail(ctx, email); err == nil {
		return nil, nil, ErrDuplicateAdmin
	} else if err != ErrAdminNotFound {
		return nil, nil, err
	}

	partitionName := PartitionName(name)
	if err := s.partitions.Create(ctx, partitionName); err != nil {
		return nil, nil, fmt.Errorf("create partition %s: %w", partitionName, err)
	}

	organization := &model.Organization{
		Name:          name,
		PartitionName: partitionName,
	}
	if err := s.store.CreateOrganization(ctx, organization); err != nil {
		return nil, nil, fmt.Errorf("create organization: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &model.Admin{
		Email:          email,
		PasswordHash:   string(hash),
		OrganizationID: organization.ID,
	}
	if err := s.store.CreateAdmin(ctx, admin); err != nil {
		return nil, nil, fmt.Errorf("create admin: %w", err)
	}

	return organization, admin, nil
}

// Get looks up an organization by display name, case-insensitively.
// The returned admin is nil if no admin record is linked.
func (s *Service) Get(ctx context.Context, name string) (*model.Organization, *model.Admin, error) {
	if name == "" {
		return nil, nil, fmt.Errorf("%w: organization_name is required", ErrValidation)
	}

	organization, err := s.store.OrganizationByName(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	admin, err := s.store.AdminByOrganization(ctx, organization.ID)
	if err == ErrAdminNotFound {
		// Should not occur under the normal lifecycle
		return organization, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	return organization, admin, nil
}

// Update renames an organization and updates its admin credentials. When the
// derived partition name changes, the partition contents are migrated via
// create-copy-drop before the organization record is updated. The supplied
// email and password act as the caller's re-authentication; no token is
// required for this operation.
func (s *Service) Update(ctx context.Context, name, email, password, newName string) (*model.Organization, *model.Admin, error) {
	if name == "" || email == "" || newName == "" {
		return nil, nil, fmt.Errorf("%w: organization_name, new_organization_name and email are required", ErrValidation)
	}

	organization, err := s.store.OrganizationByName(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	admin, err := s.store.AdminByOrganization(ctx, organization.ID)
	if err != nil {
		return nil, nil, err
	}

	// Ensure the new name is not taken by a different organization
	if other, err := s.store.OrganizationByName(ctx, newName); err == nil {
		if other.ID != organization.ID {
			return nil, nil, ErrDuplicateOrganization
		}
	} else if err != ErrOrganizationNotFound {
		return nil, nil, err
	}

	// Ensure the new email is not taken by a different admin
	if !strings.EqualFold(email, admin.Email) {
		if other, err := s.store.AdminByEmail(ctx, email); err == nil {
			if other.ID != admin.ID {
				return nil, nil, ErrDuplicateAdmin
			}
		} else if err != ErrAdminNotFound {
			return nil, nil, err
		}
	}

	admin.Email = email
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
		if err != nil {
			return nil, nil, fmt.Errorf("hash password: %w", err)
		}
		admin.PasswordHash = string(hash)
	}
	if err := s.store.SaveAdmin(ctx, admin); err != nil {
		return nil, nil, fmt.Errorf("save admin: %w", err)
	}

	// Migrate the partition when the derived name changes
	oldPartition := organization.PartitionName
	newPartition := PartitionName(newName)
	if oldPartition != newPartition {
		if err := s.partitions.Create(ctx, newPartition); err != nil {
			return nil, nil, fmt.Errorf("create partition %s: %w", newPartition, err)
		}
		if err := s.partitions.CopyAll(ctx, oldPartition, newPartition); err != nil {
			return nil, nil, fmt.Errorf("copy partition %s to %s: %w", oldPartition, newPartition, err)
		}
		if err := s.partitions.Drop(ctx, oldPartition); err != nil {
			return nil, nil, fmt.Errorf("drop partition %s: %w", oldPartition, err)
		}
		organization.PartitionName = newPartition
	}

	organization.Name = newName
	if err := s.store.SaveOrganization(ctx, organization); err != nil {
		return nil, nil, fmt.Errorf("save organization: %w", err)
	}

	return organization, admin, nil
}

// Delete removes an organization, its admin and its partition. Only the
// organization's own admin may delete it. The admin record and partition go
// first so that a crash mid-delete leaves at worst an inert organization
// record rather than an admin pointing at nothing.
func (s *Service) Delete(ctx context.Context, name string, caller *Identity) error {
	if name == "" {
		return fmt.Errorf("%w: organization_name is required", ErrValidation)
	}

	organization, err := s.store.OrganizationByName(ctx, name)
	if err != nil {
		return err
	}

	if caller == nil || caller.Admin == nil || caller.Organization == nil {
		return ErrUnauthorized
	}
	if caller.Organization.ID != organization.ID {
		return ErrForbidden
	}

	admin, err := s.store.AdminByOrganization(ctx, organization.ID)
	if err == nil {
		if err := s.store.DeleteAdmin(ctx, admin.ID); err != nil {
			return fmt.Errorf("delete admin: %w", err)
		}
	} else if err != ErrAdminNotFound {
		return err
	}

	if err := s.partitions.Drop(ctx, organization.PartitionName); err != nil {
		return fmt.Errorf("drop partition %s: %w", organization.PartitionName, err)
	}

	return s.store.DeleteOrganization(ctx, organization.ID)
}
