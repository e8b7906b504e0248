package postgres

import "embed"

// migrationFS embeds the SQL migration files applied at startup.
//
//go:embed migrations/*.sql
var migrationFS embed.FS
