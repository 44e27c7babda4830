// Package migrations embeds the SQL migration files.
package migrations

import "embed"

// FS contiene las migraciones de PostgreSQL, en orden lexicográfico.
//
//go:embed *.sql
var FS embed.FS
