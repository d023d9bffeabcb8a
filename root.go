package orderbot

import "embed"

// MigrationsFS embeds the SQL migrations so the binary can run them at startup.
//
//go:embed migrations
var MigrationsFS embed.FS
