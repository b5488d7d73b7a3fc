// Package migrations holds the schema for quiz pools and stored placements.
package migrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()
