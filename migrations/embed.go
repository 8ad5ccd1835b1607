// Package migrations ships the SQL schema files with the binaries.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
