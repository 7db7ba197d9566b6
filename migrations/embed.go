// Package migrations embeds the goose SQL migrations for the enforcement
// schema. Apply them with pg.MigrateFS.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
