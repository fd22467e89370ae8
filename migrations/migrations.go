// Package migrations embeds the goose SQL migrations for PostgreSQL.
package migrations

import "embed"

// FS holds every numbered migration file.
//
//go:embed *.sql
var FS embed.FS
