package source

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/ncruces/go-sqlite3"
	"github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/pressly/goose/v3"
	"golang.org/x/sync/errgroup"

	"github.com/vista-tui/vista/internal/csync"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// pageSize is the granularity of the store's read cache. Fetched pages are
// kept in a versioned map so readers can detect staleness after reseeding.
const pageSize = 128

// Store is a sqlite-backed row source.
type Store struct {
	db    *sql.DB
	pages *csync.VersionedMap[int, []Row]
}

// Open opens (or creates) the store at dataDir and applies migrations.
func Open(ctx context.Context, dataDir string) (*Store, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data dir is not set")
	}
	dbPath := filepath.Join(dataDir, "vista.db")

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA page_size = 4096;",
		"PRAGMA cache_size = -8000;",
		"PRAGMA synchronous = NORMAL;",
	}

	db, err := driver.Open(dbPath, func(c *sqlite3.Conn) error {
		for _, pragma := range pragmas {
			if err := c.Exec(pragma); err != nil {
				return fmt.Errorf("failed to set pragma `%s`: %w", pragma, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := gooseSetup(); err != nil {
		db.Close()
		return nil, err
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &Store{
		db:    db,
		pages: csync.NewVersionedMap[int, []Row](),
	}, nil
}

// goose configuration is process-global; set it exactly once.
var gooseSetup = sync.OnceValue(func() error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return nil
})

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Count reports the number of rows in the store.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rows`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return n, nil
}

// Slice returns the rows in [start, start+count), assembled from cached
// pages where possible.
func (s *Store) Slice(ctx context.Context, start, count int) ([]Row, error) {
	if start < 0 {
		count += start
		start = 0
	}
	if count <= 0 {
		return nil, nil
	}

	out := make([]Row, 0, count)
	for page := start / pageSize; page*pageSize < start+count; page++ {
		rows, err := s.page(ctx, page)
		if err != nil {
			return nil, err
		}
		for i, row := range rows {
			idx := page*pageSize + i
			if idx >= start && idx < start+count {
				out = append(out, row)
			}
		}
		if len(rows) < pageSize {
			break // past the end of the collection
		}
	}
	return out, nil
}

func (s *Store) page(ctx context.Context, page int) ([]Row, error) {
	if rows, ok := s.pages.Get(page); ok {
		return rows, nil
	}

	res, err := s.db.QueryContext(ctx,
		`SELECT id, kind, title, body FROM rows ORDER BY id LIMIT ? OFFSET ?`,
		pageSize, page*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer res.Close()

	rows := make([]Row, 0, pageSize)
	for res.Next() {
		var r Row
		if err := res.Scan(&r.ID, &r.Kind, &r.Title, &r.Body); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		rows = append(rows, r)
	}
	if err := res.Err(); err != nil {
		return nil, err
	}

	s.pages.Set(page, rows)
	return rows, nil
}

// CacheVersion exposes the read-cache version so callers can detect when
// cached pages were invalidated.
func (s *Store) CacheVersion() uint64 {
	return s.pages.Version()
}

// Seed fills an empty store with n generated rows. A store that already has
// rows is left alone.
func (s *Store) Seed(ctx context.Context, n int) error {
	existing, err := s.Count(ctx)
	if err != nil {
		return err
	}
	if existing > 0 {
		slog.Debug("store already seeded", "rows", existing)
		return nil
	}

	all := GenerateRows(n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for chunk := 0; chunk*pageSize < len(all); chunk++ {
		rows := all[chunk*pageSize : min((chunk+1)*pageSize, len(all))]
		g.Go(func() error {
			return s.insert(ctx, rows)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to seed store: %w", err)
	}
	s.pages.Clear()
	return nil
}

func (s *Store) insert(ctx context.Context, rows []Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO rows (id, kind, title, body) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.ID, r.Kind, r.Title, r.Body); err != nil {
			return err
		}
	}
	return tx.Commit()
}
