package adapters

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	_ "modernc.org/sqlite" // SQLite driver

	"debdepot/internal/adapters/migrations"
	"debdepot/internal/ports"
	"debdepot/internal/types"
)

// CacheStoreAdapter backs the cache on a single SQLite file. The file
// is opened lazily on first use so commands that fail before touching
// the cache never create it.
type CacheStoreAdapter struct {
	Path string
	db   *sql.DB
}

func NewCacheStoreAdapter(path string) *CacheStoreAdapter {
	return &CacheStoreAdapter{Path: path}
}

func (a *CacheStoreAdapter) open() (*sql.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	if dir := filepath.Dir(a.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, storeError("failed to create cache directory", err)
		}
	}
	db, err := sql.Open("sqlite", a.Path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, storeError("failed to open cache", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, storeError("failed to enable foreign keys", err)
	}
	if err := migrateSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	a.db = db
	return db, nil
}

func (a *CacheStoreAdapter) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *CacheStoreAdapter) UpsertRepository(ctx context.Context, repo types.Repository) (int64, error) {
	db, err := a.open()
	if err != nil {
		return 0, err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO repos (os, type, distro, component, url)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(os, type, distro, component, url) DO NOTHING
	`, repo.OS, string(repo.Type), repo.Distro, repo.Component, repo.URL)
	if err != nil {
		return 0, storeError("failed to insert repository", err)
	}
	var id int64
	err = db.QueryRowContext(ctx, `
		SELECT id FROM repos
		WHERE os = ? AND type = ? AND distro = ? AND component = ? AND url = ?
	`, repo.OS, string(repo.Type), repo.Distro, repo.Component, repo.URL).Scan(&id)
	if err != nil {
		return 0, storeError("failed to read repository id", err)
	}
	return id, nil
}

func (a *CacheStoreAdapter) InsertPackages(ctx context.Context, repoID int64, records []types.PackageRecord) (int64, error) {
	db, err := a.open()
	if err != nil {
		return 0, err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storeError("failed to begin transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO packages (repo_id, package, filename, version, arch, depends,
			pre_depends, description, section, priority, size)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(repo_id, package, version, arch) DO NOTHING
	`)
	if err != nil {
		return 0, storeError("failed to prepare package insert", err)
	}
	defer stmt.Close()

	var added int64
	for _, record := range records {
		result, err := stmt.ExecContext(ctx, repoID, record.Name, record.Filename, record.Version,
			record.Arch, record.Depends, record.PreDepends, record.Description, record.Section,
			record.Priority, record.Size)
		if err != nil {
			return 0, storeError("failed to insert package", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, storeError("failed to count package inserts", err)
		}
		added += n
	}
	if err := tx.Commit(); err != nil {
		return 0, storeError("failed to commit packages", err)
	}
	return added, nil
}

func (a *CacheStoreAdapter) InsertContents(ctx context.Context, repoID int64, entries []types.ContentEntry) (int64, error) {
	db, err := a.open()
	if err != nil {
		return 0, err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storeError("failed to begin transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO contents (repo_id, file, location, arch)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(repo_id, file, location, arch) DO NOTHING
	`)
	if err != nil {
		return 0, storeError("failed to prepare content insert", err)
	}
	defer stmt.Close()

	var added int64
	for _, entry := range entries {
		result, err := stmt.ExecContext(ctx, repoID, entry.File, entry.Location, entry.Arch)
		if err != nil {
			return 0, storeError("failed to insert content entry", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, storeError("failed to count content inserts", err)
		}
		added += n
	}
	if err := tx.Commit(); err != nil {
		return 0, storeError("failed to commit contents", err)
	}
	return added, nil
}

func (a *CacheStoreAdapter) FindPackages(ctx context.Context, profile types.Profile, names []string, mode types.MatchMode) ([]types.PackageRow, error) {
	// Exact match over no names can never produce rows; substring match
	// over no names means "everything in the profile".
	if len(names) == 0 && mode != types.MatchSubstring {
		return nil, nil
	}
	db, err := a.open()
	if err != nil {
		return nil, err
	}

	query := `
		SELECT p.package, p.filename, p.version, p.arch, p.depends, p.pre_depends,
			p.description, p.section, p.priority, p.size,
			r.type, r.distro, r.component, r.url
		FROM packages p
		JOIN repos r ON r.id = p.repo_id
		WHERE r.os = ? AND r.type = ? AND r.distro = ? AND r.component = ? AND p.arch = ?
	`
	args := []any{profile.OS, string(profile.Type), profile.Distro, profile.Component, profile.Arch}
	if mode == types.MatchSubstring {
		if len(names) > 0 {
			likes := make([]string, len(names))
			for i, name := range names {
				likes[i] = "p.package LIKE ?"
				args = append(args, "%"+name+"%")
			}
			query += " AND (" + strings.Join(likes, " OR ") + ")"
		}
	} else {
		placeholders := make([]string, len(names))
		for i, name := range names {
			placeholders[i] = "?"
			args = append(args, name)
		}
		query += " AND p.package IN (" + strings.Join(placeholders, ", ") + ")"
	}
	query += " ORDER BY p.package, p.version, p.arch"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError("failed to query packages", err)
	}
	defer rows.Close()

	var out []types.PackageRow //nolint:prealloc // size unknown from query
	for rows.Next() {
		var row types.PackageRow
		var repoType string
		if err := rows.Scan(&row.Name, &row.Filename, &row.Version, &row.Arch, &row.Depends,
			&row.PreDepends, &row.Description, &row.Section, &row.Priority, &row.Size,
			&repoType, &row.RepoDistro, &row.RepoComponent, &row.RepoURL); err != nil {
			return nil, storeError("failed to scan package row", err)
		}
		row.RepoType = types.PackageType(repoType)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("failed to iterate package rows", err)
	}
	return out, nil
}

func (a *CacheStoreAdapter) FindContents(ctx context.Context, profile types.Profile, fileSubstring string) ([]types.ContentEntry, error) {
	db, err := a.open()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `
		SELECT c.file, c.location, c.arch
		FROM contents c
		JOIN repos r ON r.id = c.repo_id
		WHERE r.os = ? AND r.type = ? AND r.distro = ? AND r.component = ? AND c.arch = ?
			AND c.file LIKE ?
		ORDER BY c.file, c.location
	`, profile.OS, string(profile.Type), profile.Distro, profile.Component, profile.Arch,
		"%"+fileSubstring+"%")
	if err != nil {
		return nil, storeError("failed to query contents", err)
	}
	defer rows.Close()

	var out []types.ContentEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var entry types.ContentEntry
		if err := rows.Scan(&entry.File, &entry.Location, &entry.Arch); err != nil {
			return nil, storeError("failed to scan content row", err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("failed to iterate content rows", err)
	}
	return out, nil
}

func (a *CacheStoreAdapter) ListRepositories(ctx context.Context, profile types.Profile) ([]types.RepositoryStatus, error) {
	db, err := a.open()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `
		SELECT r.id, r.os, r.type, r.distro, r.component, r.url,
			(SELECT COUNT(*) FROM packages p WHERE p.repo_id = r.id),
			(SELECT COUNT(*) FROM contents c WHERE c.repo_id = r.id)
		FROM repos r
		WHERE r.os = ? AND r.type = ? AND r.distro = ? AND r.component = ?
		ORDER BY r.url
	`, profile.OS, string(profile.Type), profile.Distro, profile.Component)
	if err != nil {
		return nil, storeError("failed to query repositories", err)
	}
	defer rows.Close()

	var out []types.RepositoryStatus //nolint:prealloc // size unknown from query
	for rows.Next() {
		var status types.RepositoryStatus
		var repoType string
		if err := rows.Scan(&status.ID, &status.OS, &repoType, &status.Distro, &status.Component,
			&status.URL, &status.PackageCount, &status.ContentCount); err != nil {
			return nil, storeError("failed to scan repository row", err)
		}
		status.Type = types.PackageType(repoType)
		out = append(out, status)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("failed to iterate repository rows", err)
	}
	return out, nil
}

func (a *CacheStoreAdapter) RecordUpdateRun(ctx context.Context, run types.UpdateRun) error {
	db, err := a.open()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO update_runs (id, started_at, finished_at, repos_updated, repos_skipped,
			repos_failed, packages_added, contents_added)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt.UTC(), run.FinishedAt.UTC(), run.ReposUpdated, run.ReposSkipped,
		run.ReposFailed, run.PackagesAdded, run.ContentsAdded)
	if err != nil {
		return storeError("failed to record update run", err)
	}
	return nil
}

func (a *CacheStoreAdapter) ListUpdateRuns(ctx context.Context, limit int) ([]types.UpdateRun, error) {
	db, err := a.open()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, repos_updated, repos_skipped,
			repos_failed, packages_added, contents_added
		FROM update_runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, storeError("failed to query update runs", err)
	}
	defer rows.Close()

	var out []types.UpdateRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		var run types.UpdateRun
		var startedAt, finishedAt sql.NullTime
		if err := rows.Scan(&run.ID, &startedAt, &finishedAt, &run.ReposUpdated, &run.ReposSkipped,
			&run.ReposFailed, &run.PackagesAdded, &run.ContentsAdded); err != nil {
			return nil, storeError("failed to scan update run", err)
		}
		if startedAt.Valid {
			run.StartedAt = startedAt.Time
		}
		if finishedAt.Valid {
			run.FinishedAt = finishedAt.Time
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("failed to iterate update runs", err)
	}
	return out, nil
}

// migrateSchema applies all pending migration files in version order.
func migrateSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return storeError("failed to create schema_migrations table", err)
	}

	var currentVersion int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion); err != nil {
		return storeError("failed to read schema version", err)
	}

	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return storeError("failed to read migrations", err)
	}
	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}
		content, err := fs.ReadFile(migrations.FS, name)
		if err != nil {
			return storeError("failed to read migration "+name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return storeError("failed to apply migration "+name, err)
		}
		if _, err := db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return storeError("failed to record migration "+name, err)
		}
	}
	return nil
}

func storeError(msg string, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(msg).
		WithCause(err)
}

var _ ports.CacheStorePort = (*CacheStoreAdapter)(nil)
