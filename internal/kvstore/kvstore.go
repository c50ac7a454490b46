// Package kvstore provides the simple synchronous key-value store that backs
// the catalog when the embedded database is unavailable, and that held the
// catalog before the database existed.
//
// Stores are synchronous: calls never take a context and never suspend on
// anything but local file I/O.
package kvstore

import "errors"

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("kvstore: closed")

// Store is a string-keyed, string-valued store.
type Store interface {
	// Get returns the value for key. ok is false if the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	Close() error
}
