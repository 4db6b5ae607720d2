package database

import "testing"

func TestNumberPlaceholders(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "no placeholders",
			query: "SELECT id FROM games",
			want:  "SELECT id FROM games",
		},
		{
			name:  "single placeholder",
			query: "SELECT id FROM games WHERE user_id = ?",
			want:  "SELECT id FROM games WHERE user_id = $1",
		},
		{
			name:  "multiple placeholders",
			query: "INSERT INTO questions (level, text) VALUES (?, ?)",
			want:  "INSERT INTO questions (level, text) VALUES ($1, $2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := numberPlaceholders(tt.query); got != tt.want {
				t.Errorf("numberPlaceholders() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDialectRewriteQuery(t *testing.T) {
	query := "SELECT id FROM games WHERE user_id = ? AND finished_at IS NULL"

	if got := NewSQLiteDialect().RewriteQuery(query); got != query {
		t.Errorf("sqlite rewrite changed the query: %q", got)
	}
	if got := NewMySQLDialect().RewriteQuery(query); got != query {
		t.Errorf("mysql rewrite changed the query: %q", got)
	}
	want := "SELECT id FROM games WHERE user_id = $1 AND finished_at IS NULL"
	if got := NewPostgresDialect().RewriteQuery(query); got != want {
		t.Errorf("postgres rewrite = %q, want %q", got, want)
	}
}

func TestDialectDriverNames(t *testing.T) {
	tests := []struct {
		dialect Dialect
		driver  string
		subdir  string
	}{
		{NewSQLiteDialect(), "sqlite3", "sqlite"},
		{NewPostgresDialect(), "postgres", "postgres"},
		{NewMySQLDialect(), "mysql", "mysql"},
	}

	for _, tt := range tests {
		if got := tt.dialect.DriverName(); got != tt.driver {
			t.Errorf("DriverName() = %q, want %q", got, tt.driver)
		}
		if got := tt.dialect.MigrationsSubdir(); got != tt.subdir {
			t.Errorf("MigrationsSubdir() = %q, want %q", got, tt.subdir)
		}
	}
}
