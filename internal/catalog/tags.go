package catalog

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// AllTags returns the unique tags used across records, sorted with the root
// collation so that case and accents do not push tags to the end of the list.
// Tags are compared in NFC form.
func AllTags(records []Record) []string {
	seen := make(map[string]struct{})
	tags := []string{}
	for _, r := range records {
		for _, tag := range r.Categories {
			key := norm.NFC.String(tag)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			tags = append(tags, key)
		}
	}

	collate.New(language.Und).SortStrings(tags)
	return tags
}

// FilterByTags returns the records that carry at least one of tags, in their
// original order. With no tags every record is returned.
func FilterByTags(records []Record, tags []string) []Record {
	if len(tags) == 0 {
		return records
	}

	wanted := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		wanted[norm.NFC.String(tag)] = struct{}{}
	}

	out := []Record{}
	for _, r := range records {
		for _, tag := range r.Categories {
			if _, ok := wanted[norm.NFC.String(tag)]; ok {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
