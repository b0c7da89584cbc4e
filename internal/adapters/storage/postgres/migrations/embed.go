package migrations

import "embed"

// FS contiene las migraciones Postgres, aplicadas en orden de nombre.
//
//go:embed *.sql
var FS embed.FS
