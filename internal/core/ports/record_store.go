package ports

import "context"

// RecordStore is the durable key-value persistence the core reads and writes
// through. Values are opaque byte payloads (JSON in practice).
type RecordStore interface {
	// Get returns the value stored under key, with found=false when absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
