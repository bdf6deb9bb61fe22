package storage

import (
	"fmt"
	"strings"
)

const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
)

// Open picks the backend by driver name. path is the database file for
// sqlite and the JSON document for file.
func Open(driver, path string) (Repository, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSQLite, "":
		return OpenSQLite(path)
	case DriverFile:
		return NewFileRepository(path)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", driver)
	}
}
