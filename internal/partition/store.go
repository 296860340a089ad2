// Package partition manages the per-organization record buckets in the
// shared store. Partitions are addressed by name and hold opaque records;
// the lifecycle of a partition is driven entirely by organization
// create/rename/delete operations.
package partition

import (
	"context"
)

// Store is the set of operations the organization lifecycle needs from the
// underlying store's partition namespace. Implementations do not cache
// listings; every call re-queries the store.
type Store interface {
	// Exists reports whether a partition with the given name exists,
	// compared case-insensitively against the current listing.
	Exists(ctx context.Context, name string) (bool, error)

	// Create provisions an empty partition. No-op if one already exists.
	Create(ctx context.Context, name string) error

	// CopyAll reads every record from src and bulk-inserts into dst.
	// No-op if src is empty. Not transactional; a failure mid-copy can
	// leave dst partially populated.
	CopyAll(ctx context.Context, src, dst string) error

	// Drop removes the partition and all its records. No-op if absent.
	Drop(ctx context.Context, name string) error

	// List returns the names of all partitions currently in the store.
	List(ctx context.Context) ([]string, error)
}
