// Package migrations embeds the raw SQL applied by cmd/migrate on
// deployments that predate AutoMigrate.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
