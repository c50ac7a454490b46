package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/appshelf/internal/catalog"
)

// ErrInvalidFormat is returned when JSON that should hold a record array holds
// some other value.
//
//lint:ignore ST1005 the message is part of the import contract.
var ErrInvalidFormat = errors.New("Invalid data format")

// encodeJSON serializes v without HTML escaping, so data URIs and names read
// the same on disk as in the catalog. indent "" gives compact output.
func encodeJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Encoder adds a trailing newline, remove it
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// withCategories returns r with a nil category list replaced by an empty one,
// so every tier and export writes "category": [] rather than null.
func withCategories(r catalog.Record) catalog.Record {
	if r.Categories == nil {
		r.Categories = []string{}
	}
	return r
}

// marshalRecord converts a record to the JSON TEXT stored in records.data.
func marshalRecord(r catalog.Record) (string, error) {
	data, err := encodeJSON(withCategories(r), "")
	if err != nil {
		return "", fmt.Errorf("marshal record %q: %w", r.ID, err)
	}
	return string(data), nil
}

func unmarshalRecord(data string) (catalog.Record, error) {
	var r catalog.Record
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return catalog.Record{}, fmt.Errorf("unmarshal record: %w", err)
	}
	return withCategories(r), nil
}

// marshalRecords converts a whole collection to one JSON array, the shape
// shared by legacy_kv, the key/value store and exports.
func marshalRecords(records []catalog.Record, indent string) (string, error) {
	out := make([]catalog.Record, len(records))
	for i, r := range records {
		out[i] = withCategories(r)
	}
	data, err := encodeJSON(out, indent)
	if err != nil {
		return "", fmt.Errorf("marshal records: %w", err)
	}
	return string(data), nil
}

// unmarshalRecords parses a JSON array of records. Valid JSON that is not an
// array yields ErrInvalidFormat; syntax and element errors are returned as
// the json package reports them. The result is never nil on success.
func unmarshalRecords(data []byte) ([]catalog.Record, error) {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	if _, ok := probe.([]any); !ok {
		return nil, ErrInvalidFormat
	}

	records := []catalog.Record{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	for i := range records {
		records[i] = withCategories(records[i])
	}
	return records, nil
}

func marshalOrder(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("marshal order: %w", err)
	}
	return string(data), nil
}

func unmarshalOrder(data string) ([]string, error) {
	var ids []string
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}
	return ids, nil
}
