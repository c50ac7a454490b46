package store

import (
	"context"
	"errors"

	"github.com/roach88/appshelf/internal/catalog"
)

// tier is one storage strategy in the fallback chain.
type tier struct {
	name    string
	load    func(ctx context.Context) ([]catalog.Record, error)
	replace func(ctx context.Context, records []catalog.Record) error
}

// tiers returns the fallback chain, most capable first.
func (s *Store) tiers() []tier {
	return []tier{
		{name: "database", load: s.loadDatabase, replace: s.replaceDatabase},
		{name: "kvstore", load: s.loadKV, replace: s.replaceKV},
	}
}

// interrupted reports whether err comes from the caller giving up rather than
// from a tier. Such failures stop the fallback chain.
func interrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// loadKV reads the catalog blob from the key/value store. The store is
// synchronous, so ctx is not consulted.
func (s *Store) loadKV(_ context.Context) ([]catalog.Record, error) {
	value, ok, err := s.kv.Get(LegacyKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []catalog.Record{}, nil
	}
	return unmarshalRecords([]byte(value))
}

func (s *Store) replaceKV(_ context.Context, records []catalog.Record) error {
	blob, err := marshalRecords(records, "")
	if err != nil {
		return err
	}
	return s.kv.Set(LegacyKey, blob)
}
