// Package migrations embeds the schema migrations for every supported dialect.
// Each dialect keeps its own directory of goose SQL files.
package migrations

import "embed"

//go:embed mysql/*.sql postgres/*.sql sqlite/*.sql
var FS embed.FS
