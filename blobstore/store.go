// Package blobstore abstracts where netlist snapshots are kept.
//
// A snapshot is a small immutable blob written once and read whole, so
// the interface is deliberately coarse: Put/Get on complete byte slices.
// Backends exist for memory (tests), the local file system, and
// S3-compatible object stores.
package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations return an error satisfying errors.Is(err, ErrNotFound).
var ErrNotFound = errors.New("blobstore: blob not found")

// Store reads and writes whole immutable blobs by name.
type Store interface {
	// Put writes a blob atomically, replacing any existing blob of the
	// same name.
	Put(ctx context.Context, name string, data []byte) error

	// Get returns the blob's full contents.
	Get(ctx context.Context, name string) ([]byte, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the sorted names of all blobs with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
