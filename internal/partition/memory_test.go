package partition

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemStoreCreateAndExists(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	exists, err := s.Exists(ctx, "org_acme")
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, s.Create(ctx, "org_acme"))

	exists, err = s.Exists(ctx, "org_acme")
	require.NoError(t, err)
	require.True(t, exists)

	t.Run("case-insensitive", func(t *testing.T) {
		exists, err := s.Exists(ctx, "ORG_ACME")
		require.NoError(t, err)
		require.True(t, exists)
	})

	t.Run("create is idempotent", func(t *testing.T) {
		s.Insert("org_acme", map[string]interface{}{"k": "v"})
		require.NoError(t, s.Create(ctx, "org_acme"))
		require.Len(t, s.Records("org_acme"), 1)
	})
}

func TestMemStoreCopyAll(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	require.NoError(t, s.Create(ctx, "org_old"))
	s.Insert("org_old", map[string]interface{}{"id": 1})
	s.Insert("org_old", map[string]interface{}{"id": 2})
	require.NoError(t, s.Create(ctx, "org_new"))

	require.NoError(t, s.CopyAll(ctx, "org_old", "org_new"))
	require.Len(t, s.Records("org_new"), 2)

	t.Run("source untouched", func(t *testing.T) {
		require.Len(t, s.Records("org_old"), 2)
	})

	t.Run("empty source is a no-op", func(t *testing.T) {
		require.NoError(t, s.Create(ctx, "org_empty"))
		require.NoError(t, s.CopyAll(ctx, "org_empty", "org_new"))
		require.Len(t, s.Records("org_new"), 2)
	})

	t.Run("missing source is a no-op", func(t *testing.T) {
		require.NoError(t, s.CopyAll(ctx, "org_missing", "org_new"))
		require.Len(t, s.Records("org_new"), 2)
	})
}

func TestMemStoreDrop(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	require.NoError(t, s.Create(ctx, "org_acme"))
	s.Insert("org_acme", map[string]interface{}{"id": 1})

	require.NoError(t, s.Drop(ctx, "org_acme"))
	exists, err := s.Exists(ctx, "org_acme")
	require.NoError(t, err)
	require.False(t, exists)
	require.Nil(t, s.Records("org_acme"))

	t.Run("drop is idempotent", func(t *testing.T) {
		require.NoError(t, s.Drop(ctx, "org_acme"))
	})
}

func TestMemStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	require.NoError(t, s.Create(ctx, "org_a"))
	require.NoError(t, s.Create(ctx, "org_b"))

	names, err := s.List(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"org_a", "org_b"}, names)
}
