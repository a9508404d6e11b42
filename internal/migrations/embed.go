package migrations

import "embed"

//go:embed sql/*.sql
var embedded embed.FS

// DefaultDir is where Generate writes new revision files so they are picked
// up by the embedded source on the next build.
const DefaultDir = "internal/migrations/sql"

// DefaultSource returns the migrations compiled into the binary.
func DefaultSource() Source {
	return NewFSSource(embedded, "sql")
}
