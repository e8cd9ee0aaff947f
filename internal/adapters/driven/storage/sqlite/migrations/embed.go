// Package migrations ships the schema as .sql files compiled into the
// binary, so a fresh install needs no files besides the executable.
package migrations

import "embed"

// FS holds every versioned migration pair (NNN_name.up.sql / .down.sql).
//
//go:embed *.sql
var FS embed.FS
