// Package sql embeds the schema migrations applied by `icd9build migrate`.
package sql

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
