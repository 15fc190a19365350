package storage

import "context"

// BlobStore is where media derivatives land. All article media shares one
// flat namespace; writing an existing name silently overwrites it.
type BlobStore interface {
	Write(ctx context.Context, name string, data []byte) error
	Remove(ctx context.Context, name string) error
}
