// Package storage provides the persistence layer for binding snapshots.
package storage

// Store is a small key-value persistence surface. Get reports a found flag so
// callers can tell an absent key from an empty value.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}
