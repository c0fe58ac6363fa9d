package migrations

import "embed"

// FS contains the build ledger schema.
//
//go:embed *.sql
var FS embed.FS
