// Package migration applies embedded schema migrations at startup, before
// the HTTP server accepts traffic.
package migration

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
)

// RunMigrations applies every unapplied .up.sql file in lexical order.
// Applied versions are recorded in schema_migrations, so calling this on
// every boot (or from racing processes sharing the same database) is safe.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("migration database handle is required")
	}

	if _, err := db.Exec(
		`CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	entries, err := embeddedMigrations.ReadDir(migrationsDir)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		applied, err := isApplied(db, name)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		contents, err := embeddedMigrations.ReadFile(migrationsDir + "/" + name)
		if err != nil {
			return err
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		// One statement per Exec: the postgres extended protocol rejects
		// multi-statement strings.
		for _, statement := range splitStatements(string(contents)) {
			if _, err := tx.Exec(statement); err != nil {
				tx.Rollback()
				return fmt.Errorf("apply %s: %w", name, err)
			}
		}
		// A racing process may have applied the same version; the PK makes
		// the second insert fail and the loser rolls back its copy. Version
		// names come from the embedded FS, so inlining them keeps the
		// statement portable across placeholder syntaxes.
		if _, err := tx.Exec(
			fmt.Sprintf(`INSERT INTO schema_migrations (version) VALUES ('%s')`, name),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

// splitStatements breaks a migration file into individual statements. The
// embedded migrations never contain semicolons inside literals, so a plain
// split is enough.
func splitStatements(contents string) []string {
	parts := strings.Split(contents, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			statements = append(statements, trimmed)
		}
	}
	return statements
}

func isApplied(db *sql.DB, version string) (bool, error) {
	var count int
	if err := db.QueryRow(
		fmt.Sprintf(`SELECT COUNT(1) FROM schema_migrations WHERE version = '%s'`, version),
	).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
