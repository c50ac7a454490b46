// Package store provides durable, ordered storage for the application catalog.
//
// The store keeps the whole catalog as a set of records plus an order index
// and is always written as a unit: every save supplies the complete desired
// collection, and records missing from it are deleted.
//
// # Storage tiers
//
// Reads and writes go through an ordered chain of tiers, each with its own
// failure boundary:
//   - database: a SQLite file whose PRAGMA user_version is the schema
//     generation. Generation 1 holds a single untyped key/value table
//     (legacy_kv). Generation 2 adds records (one row per record, keyed by id)
//     and meta (the order index under the key "order").
//   - kvstore: the synchronous key/value store from package kvstore, holding
//     the whole catalog as one JSON array under LegacyKey.
//
// Every tier uses the same JSON record shape, so any tier can read what
// another wrote.
//
// # Migration
//
// Before the first read, data from older generations is copied forward once:
// the legacy_kv entry under LegacyKey wins over the kvstore entry. The copy
// and the removal of the legacy_kv entry commit in one transaction. Migration
// errors are logged and never returned; the read path has its own fallback.
//
// # Ordering
//
// The records table enumerates in id order, which says nothing about the
// user's ordering. Reads sort by position in the order index; records whose
// id is missing from the index come last in enumeration order.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - one pooled connection
package store
