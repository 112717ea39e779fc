// Package migrations embeds the goose schema migrations for every supported
// SQL dialect. Each dialect lives in its own directory.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
