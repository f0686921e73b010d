// Package storage provides the device-local persistent key-value store
// used for the device id, trial token, usage snapshot and reaction counter.
// Values are JSON documents keyed by namespaced strings.
package storage

import "errors"

// ErrKeyNotFound is returned when a key has no stored value.
var ErrKeyNotFound = errors.New("storage: key not found")

// KeyValueStore is the persistence boundary for the trial gate. Storage
// failures are expected to degrade the caller to in-memory state rather
// than surface to the user.
type KeyValueStore interface {
	// Get returns the raw value for key, or ErrKeyNotFound.
	Get(key string) ([]byte, error)
	// Set stores the raw value for key, overwriting any previous value.
	Set(key string, value []byte) error
	// Delete removes the key. Deleting a missing key is not an error.
	Delete(key string) error
}
