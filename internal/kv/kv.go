// Package kv is the opaque blob store the task engine persists through.
// The engine never interprets keys or values here; durability, migration
// and quota concerns live behind this interface.
package kv

// Store is a synchronous key-value blob store.
type Store interface {
	// Get returns the blob for key, or ok=false if no blob exists.
	Get(key string) ([]byte, bool, error)
	// Put writes the blob for key, replacing any previous value.
	Put(key string, value []byte) error
	// Keys lists all stored keys.
	Keys() ([]string, error)
}
