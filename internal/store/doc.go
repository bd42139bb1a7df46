// Package store provides account persistence for the atelier backend.
//
// The Store interface exposes lookup-by-identity and insert operations
// over Account rows, keyed by the user's email address. Absence is a
// valid lookup outcome (ErrNotFound), and duplicate creation is detected
// by the database's UNIQUE constraint (ErrDuplicateAccount) rather than
// an application-level check-then-act sequence, so concurrent provisioning
// of the same identity is safe without locks.
//
// SQLiteStore is the production implementation, backed by
// modernc.org/sqlite with WAL mode and automatic schema creation.
package store
