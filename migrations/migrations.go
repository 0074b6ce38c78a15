// Package migrations embeds the MongoDB schema migrations.
package migrations

import "embed"

// FS holds the JSON command migrations applied by golang-migrate.
//
//go:embed *.json
var FS embed.FS
