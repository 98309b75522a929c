// Package migrations embeds the SQL schema migrations applied by goose
// at server startup when a Postgres backend is configured.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
