package store

import (
	"context"
	"fmt"

	"github.com/roach88/appshelf/internal/catalog"
)

// ImportError reports a failed import. Its message always starts with
// "Failed to import data: ".
type ImportError struct {
	Err error
}

func (e *ImportError) Error() string {
	return "Failed to import data: " + e.Err.Error()
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// Export returns the whole catalog as a JSON array indented by two spaces.
// An empty catalog exports as "[]".
func (s *Store) Export(ctx context.Context) (string, error) {
	records, err := s.GetAll(ctx)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return marshalRecords(records, "  ")
}

// Import replaces the whole catalog with the records in data and returns
// them. It is not a merge.
//
// Input that is not JSON, or JSON that is not an array of records, fails with
// an *ImportError; a non-array value wraps ErrInvalidFormat. The catalog is
// untouched in both cases.
func (s *Store) Import(ctx context.Context, data string) ([]catalog.Record, error) {
	records, err := unmarshalRecords([]byte(data))
	if err != nil {
		return nil, &ImportError{Err: err}
	}

	if err := s.SaveAll(ctx, records); err != nil {
		return nil, &ImportError{Err: err}
	}

	s.logger.Info("catalog imported", "records", len(records))
	return records, nil
}
