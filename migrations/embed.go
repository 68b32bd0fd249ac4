// Package migrations embeds the SQL schema migrations. Both the server
// bootstrap and the integration-test TestMain run them through goose's
// programmatic API, so the schema always matches the binary.
package migrations

import "embed"

// FS contains every *.sql migration file.
//
//go:embed *.sql
var FS embed.FS
