package database

import (
	"database/sql"
	"regexp"
	"strconv"
)

// Dialect abstracts the differences between the supported databases so
// repositories can write one flavour of SQL with ? placeholders.
type Dialect interface {
	// DriverName returns the driver name for sql.Open
	DriverName() string

	// DSN builds the data source name from the dialect config
	DSN(config DialectConfig) string

	// RewriteQuery converts ? placeholders to the dialect's syntax
	RewriteQuery(query string) string

	// SupportsLastInsertId reports whether the driver implements LastInsertId
	SupportsLastInsertId() bool

	// ConfigureConnection applies pool settings and per-database pragmas
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir names the per-dialect migrations directory
	MigrationsSubdir() string

	// CreateMigrationsTableQuery returns the DDL for the migrations table
	CreateMigrationsTableQuery() string
}

// DialectConfig holds the connection settings a dialect needs
type DialectConfig struct {
	// Path is the database file, SQLite only
	Path string

	// URL is the connection string for PostgreSQL and MySQL
	URL string
}

var placeholderPattern = regexp.MustCompile(`\?`)

// numberPlaceholders converts ? placeholders to $1, $2, ... for PostgreSQL
func numberPlaceholders(query string) string {
	n := 0
	return placeholderPattern.ReplaceAllStringFunc(query, func(string) string {
		n++
		return "$" + strconv.Itoa(n)
	})
}
