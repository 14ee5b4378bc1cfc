package migrations

import "embed"

// FS holds the goose SQL migrations of the strength_record schema.
//
//go:embed *.sql
var FS embed.FS
