package sqliteutil

import (
	"database/sql"

	"autopreco-backend/lib/configutil/storage"

	_ "modernc.org/sqlite"
)

// OpenDB opens (creating if necessary) a local sqlite database and applies
// the given schema.
func OpenDB(schema, path string) (*sql.DB, error) {
	return storage.Struct{File: path}.OpenDB(schema)
}
