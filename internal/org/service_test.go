package org

import (
	"context"
	"testing"

	"org-service/internal/model"
	"org-service/internal/partition"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService() (*Service, *MemStore, *partition.MemStore) {
	store := NewMemStore()
	partitions := partition.NewMemStore()
	return NewService(store, partitions, bcrypt.MinCost), store, partitions
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc, _, partitions := newTestService()

	organization, admin, err := svc.Create(ctx, "Acme", "a@x.com", "p")
	require.NoError(t, err)
	require.Equal(t, "Acme", organization.Name)
	require.Equal(t, "org_acme", organization.PartitionName)
	require.NotZero(t, organization.ID)
	require.Equal(t, "a@x.com", admin.Email)
	require.Equal(t, organization.ID, admin.OrganizationID)

	t.Run("password is hashed", func(t *testing.T) {
		require.NotEqual(t, "p", admin.PasswordHash)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("p")))
	})

	t.Run("partition provisioned", func(t *testing.T) {
		exists, err := partitions.Exists(ctx, "org_acme")
		require.NoError(t, err)
		require.True(t, exists)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, _, err := svc.Create(ctx, "", "b@x.com", "p")
		require.ErrorIs(t, err, ErrValidation)
		_, _, err = svc.Create(ctx, "Beta", "", "p")
		require.ErrorIs(t, err, ErrValidation)
		_, _, err = svc.Create(ctx, "Beta", "b@x.com", "")
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestCreateDuplicateName(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, _, err := svc.Create(ctx, "Acme", "a@x.com", "p")
	require.NoError(t, err)

	_, _, err = svc.Create(ctx, "acme", "b@x.com", "p")
	require.ErrorIs(t, err, ErrDuplicateOrganization)

	_, _, err = svc.Create(ctx, "ACME", "c@x.com", "p")
	require.ErrorIs(t, err, ErrDuplicateOrganization)
}

func TestCreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, _, err := svc.Create(ctx, "Acme", "a@x.com", "p")
	require.NoError(t, err)

	_, _, err = svc.Create(ctx, "Beta", "A@X.COM", "p")
	require.ErrorIs(t, err, ErrDuplicateAdmin)
}

func TestCreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	created, createdAdmin, err := svc.Create(ctx, "Acme", "a@x.com", "p")
	require.NoError(t, err)

	organization, admin, err := svc.Get(ctx, "acme")
	require.NoError(t, err)
	require.Equal(t, created.ID, organization.ID)
	require.Equal(t, "Acme", organization.Name)
	require.NotNil(t, admin)
	require.Equal(t, createdAdmin.ID, admin.ID)
	require.Equal(t, "a@x.com", admin.Email)
}

func TestGetNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, _, err := svc.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrOrganizationNotFound)
}

func TestGetWithoutAdmin(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService()

	_, admin, err := svc.Create(ctx, "Acme", "a@x.com", "p")
	require.NoError(t, err)
	require.NoError(t, store.DeleteAdmin(ctx, admin.ID))

	organization, admin, err := svc.Get(ctx, "Acme")
	require.NoError(t, err)
	require.NotNil(t, organization)
	require.Nil(t, admin)
}

func TestUpdateRenameMigratesPartition(t *testing.T) {
	ctx := context.Background()
	svc, _, partitions := newTestService()

	_, _, err := svc.Create(ctx, "Acme", "a@x.com", "p")
	require.NoError(t, err)
	partitions.Insert("org_acme", map[string]interface{}{"id": 1})
	partitions.Insert("org_acme", map[string]interface{}{"id": 2})

	organization, admin, err := svc.Update(ctx, "Acme", "a@x.com", "", "Beta Corp")
	require.NoError(t, err)
	require.Equal(t, "Beta Corp", organization.Name)
	require.Equal(t, "org_beta_corp", organization.PartitionName)
	require.Equal(t, "a@x.com", admin.Email)

	require.Len(t, partitions.Records("org_beta_corp"), 2)

	exists, err := partitions.Exists(ctx, "org_acme")
	require.NoError(t, err)
	require.False(t, exists)

	t.Run("readable under new name", func(t *testing.T) {
		got, _, err := svc.Get(ctx, "beta corp")
		require.NoError(t, err)
		require.Equal(t, organization.ID, got.ID)
	})
}

func TestUpdateRenameSameSlugKeepsPartition(t *testing.T) {
	ctx := context.Background()
	svc, _, partitions := newTestService()

	_, _, err := svc.Create(ctx, "Acme", "a@x.com", "p")
	require.NoError(t, err)
	partitions.Insert("org_acme", map[string]interface{}{"id": 1})

	// "ACME " normalizes to the same partition name
	organization, _, err := svc.Update(ctx, "Acme", "a@x.com", "", "ACME ")
	require.NoError(t, err)
	require.Equal(t, "ACME ", organization.Name)
	require.Equal(t, "org_acme", organization.PartitionName)
	require.Len(t, partitions.Records("org_acme"), 1)
}

func TestUpdateChangesCredentials(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService()

	_, created, err := svc.Create(ctx, "Acme", "a@x.com", "old-pass")
	require.NoError(t, err)

	_, admin, err := svc.Update(ctx, "Acme", "new@x.com", "new-pass", "Acme")
	require.NoError(t, err)
	require.Equal(t, "new@x.com", admin.Email)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("new-pass")))

	t.Run("empty password keeps hash", func(t *testing.T) {
		before, err := store.AdminByID(ctx, created.ID)
		require.NoError(t, err)
		_, _, err = svc.Update(ctx, "Acme", "new@x.com", "", "Acme")
		require.NoError(t, err)
		after, err := store.AdminByID(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, before.PasswordHash, after.PasswordHash)
	})
}

func TestUpdateDuplicateChecks(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, _, err := svc.Create(ctx, "Acme", "a@x.com", "p")
	require.NoError(t, err)
	_, _, err = svc.Create(ctx, "Beta", "b@x.com", "p")
	require.NoError(t, err)

	t.Run("new name taken by other organization", func(t *testing.T) {
		_, _, err := svc.Update(ctx, "Acme", "a@x.com", "", "beta")
		require.ErrorIs(t, err, ErrDuplicateOrganization)
	})

	t.Run("rename to own name allowed", func(t *testing.T) {
		_, _, err := svc.Update(ctx, "Acme", "a@x.com", "", "ACME")
		require.NoError(t, err)
	})

	t.Run("email taken by other admin", func(t *testing.T) {
		_, _, err := svc.Update(ctx, "Beta", "a@x.com", "", "Beta")
		require.ErrorIs(t, err, ErrDuplicateAdmin)
	})

	t.Run("keeping own email allowed", func(t *testing.T) {
		_, _, err := svc.Update(ctx, "Beta", "B@X.com", "", "Beta")
		require.NoError(t, err)
	})
}

func TestUpdateNotFound(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService()

	_, _, err := svc.Update(ctx, "missing", "a@x.com", "", "Other")
	require.ErrorIs(t, err, ErrOrganizationNotFound)

	t.Run("admin missing", func(t *testing.T) {
		_, admin, err := svc.Create(ctx, "Acme", "a@x.com", "p")
		require.NoError(t, err)
		require.NoError(t, store.DeleteAdmin(ctx, admin.ID))

		_, _, err = svc.Update(ctx, "Acme", "a@x.com", "", "Other")
		require.ErrorIs(t, err, ErrAdminNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, store, partitions := newTestService()

	organization, admin, err := svc.Create(ctx, "Acme", "a@x.com", "p")
	require.NoError(t, err)

	caller := &Identity{Admin: admin, Organization: organization}
	require.NoError(t, svc.Delete(ctx, "Acme", caller))

	_, _, err = svc.Get(ctx, "Acme")
	require.ErrorIs(t, err, ErrOrganizationNotFound)

	exists, err := partitions.Exists(ctx, "org_acme")
	require.NoError(t, err)
	require.False(t, exists)

	_, err = store.AdminByID(ctx, admin.ID)
	require.ErrorIs(t, err, ErrAdminNotFound)
}

func TestDeleteAuthorization(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	orgA, adminA, err := svc.Create(ctx, "Org A", "a@x.com", "p")
	require.NoError(t, err)
	_, _, err = svc.Create(ctx, "Org B", "b@x.com", "p")
	require.NoError(t, err)

	t.Run("unauthenticated caller", func(t *testing.T) {
		err := svc.Delete(ctx, "Org B", nil)
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("caller from another organization", func(t *testing.T) {
		caller := &Identity{Admin: adminA, Organization: orgA}
		err := svc.Delete(ctx, "Org B", caller)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("target not found", func(t *testing.T) {
		caller := &Identity{Admin: adminA, Organization: orgA}
		err := svc.Delete(ctx, "missing", caller)
		require.ErrorIs(t, err, ErrOrganizationNotFound)
	})
}

func TestUniquenessAcrossOrganizations(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	names := []string{"Acme", "Beta Corp", "Gamma"}
	emails := []string{"a@x.com", "b@x.com", "c@x.com"}
	var created []*model.Organization
	for i := range names {
		organization, _, err := svc.Create(ctx, names[i], emails[i], "p")
		require.NoError(t, err)
		created = append(created, organization)
	}

	seen := map[string]bool{}
	for _, organization := range created {
		require.False(t, seen[organization.PartitionName])
		seen[organization.PartitionName] = true
	}
}
