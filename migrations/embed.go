// Package migrations embeds the SQL files that define the character and chat
// message tables.
package migrations

import "embed"

// FS holds the embedded migration files, ordered by their numeric prefix.
//
//go:embed *.sql
var FS embed.FS
