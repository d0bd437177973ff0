package migrations

import "embed"

// FS holds the SQL migrations for the local libsql store.
//
//go:embed *.sql
var FS embed.FS
