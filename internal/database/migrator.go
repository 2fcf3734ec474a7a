package database

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// execer is the slice of pgxpool.Pool the migrator needs
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Migrator handles database schema migrations
type Migrator struct {
	pool execer
	fsys fs.FS
	dir  string

	applied func(ctx context.Context) (map[string]bool, error)
}

// NewMigratorWithFS creates a migration runner reading *.sql files from dir
// inside fsys (normally the embedded migrations package).
func NewMigratorWithFS(pool *pgxpool.Pool, fsys fs.FS, dir string) *Migrator {
	m := &Migrator{pool: pool, fsys: fsys, dir: dir}
	m.applied = func(ctx context.Context) (map[string]bool, error) {
		return getAppliedMigrations(ctx, pool)
	}
	return m
}

// RunMigrations executes all pending database migrations
//
// This function:
//  1. Creates a migrations tracking table if it doesn't exist
//  2. Reads all *.sql files from the migration filesystem
//  3. Skips migrations that have already been run
//  4. Executes new migrations in alphabetical order
//  5. Records successful migrations in the tracking table
func (m *Migrator) RunMigrations(ctx context.Context) error {
	log.Println("Starting database migrations...")

	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	appliedMigrations, err := m.applied(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	migrationFiles, err := m.pending(appliedMigrations)
	if err != nil {
		return err
	}

	for _, filename := range migrationFiles {
		content, err := fs.ReadFile(m.fsys, path.Join(m.dir, filename))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", filename, err)
		}

		log.Printf("  → Running: %s", filename)
		if _, err := m.pool.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", filename, err)
		}

		if err := m.recordMigration(ctx, filename); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", filename, err)
		}
	}

	if len(migrationFiles) > 0 {
		log.Printf("✓ Successfully ran %d new migration(s)", len(migrationFiles))
	} else {
		log.Println("✓ All migrations already applied - database is up to date")
	}
	return nil
}

// pending lists unapplied *.sql files in execution order
func (m *Migrator) pending(applied map[string]bool) ([]string, error) {
	entries, err := fs.ReadDir(m.fsys, m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		// Reset scripts are destructive and only run by hand
		if strings.Contains(name, "reset") {
			log.Printf("  ⊘ Skipping: %s (reset script)", name)
			continue
		}
		if applied[name] {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	_, err := m.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			filename VARCHAR(255) UNIQUE NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	return err
}

func getAppliedMigrations(ctx context.Context, pool *pgxpool.Pool) (map[string]bool, error) {
	applied := make(map[string]bool)

	rows, err := pool.Query(ctx, "SELECT filename FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var filename string
		if err := rows.Scan(&filename); err != nil {
			return nil, err
		}
		applied[filename] = true
	}
	return applied, rows.Err()
}

func (m *Migrator) recordMigration(ctx context.Context, filename string) error {
	_, err := m.pool.Exec(ctx, `
		INSERT INTO schema_migrations (filename)
		VALUES ($1)
		ON CONFLICT (filename) DO NOTHING
	`, filename)
	return err
}
