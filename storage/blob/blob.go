// Package blobstore provides the durable snapshot store: an opaque blob of
// bytes written wholesale after every mutation and read back once at startup.
package blobstore

import "context"

// Store holds a single opaque blob.
type Store interface {
	// Save overwrites the stored blob.
	Save(ctx context.Context, data []byte) error
	// Load returns the stored blob, or nil when nothing has been saved yet.
	Load(ctx context.Context) ([]byte, error)
}
