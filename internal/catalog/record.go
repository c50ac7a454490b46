package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Validation errors returned by Record.Validate.
var (
	ErrMissingName    = errors.New("name is required")
	ErrMissingPackage = errors.New("package identifier is required")
)

// Record is one tracked application.
//
// JSON field names match the records written by the original localStorage
// generation (packageName, category) so every storage tier and every export
// file share one shape. Icon is a pointer: nil means "no icon" and is omitted
// from JSON, while a pointer to "" round-trips as an empty string.
type Record struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	PackageIdentifier string   `json:"packageName"`
	Categories        []string `json:"category"`
	Description       string   `json:"description"`
	Icon              *string  `json:"icon,omitempty"`
}

// HasIcon reports whether the record carries an icon value.
func (r Record) HasIcon() bool {
	return r.Icon != nil && *r.Icon != ""
}

// Validate checks the fields a new or edited record must carry.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("record %q: %w", r.ID, ErrMissingName)
	}
	if strings.TrimSpace(r.PackageIdentifier) == "" {
		return fmt.Errorf("record %q: %w", r.ID, ErrMissingPackage)
	}
	return nil
}

// Clone returns a deep copy so callers can edit a record without aliasing
// the slice or icon of the original.
func (r Record) Clone() Record {
	out := r
	if r.Categories != nil {
		out.Categories = slices.Clone(r.Categories)
	}
	if r.Icon != nil {
		icon := *r.Icon
		out.Icon = &icon
	}
	return out
}

// IndexOf returns the position of the record with the given id, or -1.
func IndexOf(records []Record, id string) int {
	return slices.IndexFunc(records, func(r Record) bool { return r.ID == id })
}

// ExportFileName returns the dated file name used for catalog exports.
func ExportFileName(t time.Time) string {
	return "android-apps-" + t.Format(time.DateOnly) + ".json"
}

// StringPtr returns a pointer to s. Handy for building records with icons.
func StringPtr(s string) *string {
	return &s
}
