package migrations

import "embed"

// FS contains embedded SQLite migrations for generation pools.
//
//go:embed *.sql
var FS embed.FS
