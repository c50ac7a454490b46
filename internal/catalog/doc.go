// Package catalog defines the tracked-application record and the helpers the
// front end uses around it: tag listing and filtering, share-title parsing,
// icon encoding.
//
// The store treats every field as opaque. Validation here is for callers that
// create or edit records; nothing in the persistence layer calls it.
package catalog
