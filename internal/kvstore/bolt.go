package kvstore

import (
	"fmt"
	"log/slog"
	"time"

	"go.etcd.io/bbolt"
)

var bucketLocalStorage = []byte("localstorage")

// Bolt is a Store persisted in a single bbolt file.
type Bolt struct {
	db     *bbolt.DB
	path   string
	logger *slog.Logger
	noSync bool
}

// BoltOption configures a Bolt store.
type BoltOption func(*Bolt)

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) BoltOption {
	return func(b *Bolt) {
		b.logger = logger
	}
}

// WithNoSync disables fsync per transaction. For tests only.
func WithNoSync(noSync bool) BoltOption {
	return func(b *Bolt) {
		b.noSync = noSync
	}
}

// OpenBolt opens or creates the bbolt file at path.
func OpenBolt(path string, opts ...BoltOption) (*Bolt, error) {
	b := &Bolt{
		path:   path,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{
		Timeout: 1 * time.Second,
		NoSync:  b.noSync,
	})
	if err != nil {
		return nil, fmt.Errorf("open kvstore: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketLocalStorage)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket %s: %w", bucketLocalStorage, err)
	}

	b.db = db
	b.logger.Debug("opened kvstore", "path", path)
	return b, nil
}

// Get implements Store.
func (b *Bolt) Get(key string) (string, bool, error) {
	if b.db == nil {
		return "", false, ErrClosed
	}

	var (
		value string
		ok    bool
	)
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketLocalStorage).Get([]byte(key))
		if v == nil {
			return nil
		}
		// string() copies; v is only valid inside the transaction.
		value, ok = string(v), true
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, ok, nil
}

// Set implements Store.
func (b *Bolt) Set(key, value string) error {
	if b.db == nil {
		return ErrClosed
	}
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketLocalStorage).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Delete implements Store.
func (b *Bolt) Delete(key string) error {
	if b.db == nil {
		return ErrClosed
	}
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketLocalStorage).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying file. Safe to call more than once.
func (b *Bolt) Close() error {
	if b.db == nil {
		return nil
	}
	b.logger.Debug("closing kvstore", "path", b.path)
	err := b.db.Close()
	b.db = nil
	return err
}
