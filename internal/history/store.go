// Package history persists finished scrape runs to a local SQLite database.
//
// Persistence is best effort: when no database path is configured the store
// opens in disabled mode and every write becomes a logged no-op, so the CLI
// keeps working on machines that never asked for history.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/orbruno/web-scraper-cli/internal/history/migrations"

	_ "modernc.org/sqlite"
)

// Run statuses stored in the status column.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// defaultKeepRuns bounds the table; every Record prunes rows beyond it.
const defaultKeepRuns = 500

// createdAtLayout is fixed width so lexicographic order matches time order.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z"

// Record is one finished scrape attempt, successful or not.
type Record struct {
	ID         string `validate:"required"`
	URL        string `validate:"required"`
	Status     string `validate:"required,oneof=ok error"`
	Error      string
	Title      string
	Cards      int
	Files      int
	Images     int
	Links      int
	Downloaded bool
	DurationMS int64
	CreatedAt  time.Time
}

type Config struct {
	Path   string
	Logger *zap.SugaredLogger
}

type Store struct {
	db        *sqlx.DB
	logger    *zap.SugaredLogger
	validator *validator.Validate
	keepRuns  int
}

// Open opens (and migrates) the history database at cfg.Path, creating parent
// directories as needed. An empty path yields a disabled store.
func Open(cfg Config) (*Store, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &Store{
		logger:    logger,
		validator: validator.New(),
		keepRuns:  defaultKeepRuns,
	}

	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		logger.Infow("history_disabled")
		return s, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s.db = db
	return s, nil
}

func migrate(db *sqlx.DB) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.Up(db.DB, "."); err != nil {
		return fmt.Errorf("migrate history db: %w", err)
	}
	return nil
}

// Enabled reports whether runs are actually persisted.
func (s *Store) Enabled() bool { return s.db != nil }

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record upserts one run and prunes rows beyond the retention bound. On a
// disabled store it logs and returns nil.
func (s *Store) Record(ctx context.Context, rec Record) error {
	if s.db == nil {
		s.logger.Debugw("history_disabled_skip_record", "url", rec.URL)
		return nil
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	if err := s.validator.Struct(rec); err != nil {
		return fmt.Errorf("validate history record: %w", err)
	}

	errorCol := sql.NullString{}
	if rec.Error != "" {
		errorCol = sql.NullString{String: rec.Error, Valid: true}
	}

	_, err := Tx(ctx, s.db, func(tx *sqlx.Tx) (struct{}, error) {
		q := tx.Rebind(`
INSERT INTO scrape_runs (
  id, url, status, error, title,
  cards, files, images, links,
  downloaded, duration_ms, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  url = excluded.url,
  status = excluded.status,
  error = excluded.error,
  title = excluded.title,
  cards = excluded.cards,
  files = excluded.files,
  images = excluded.images,
  links = excluded.links,
  downloaded = excluded.downloaded,
  duration_ms = excluded.duration_ms
`)
		if _, err := tx.ExecContext(ctx, q,
			rec.ID, rec.URL, rec.Status, errorCol, rec.Title,
			rec.Cards, rec.Files, rec.Images, rec.Links,
			rec.Downloaded, rec.DurationMS, rec.CreatedAt.UTC().Format(createdAtLayout),
		); err != nil {
			return struct{}{}, fmt.Errorf("insert scrape run: %w", err)
		}

		prune := tx.Rebind(`
DELETE FROM scrape_runs
WHERE id NOT IN (
  SELECT id FROM scrape_runs ORDER BY created_at DESC LIMIT ?
)`)
		if _, err := tx.ExecContext(ctx, prune, s.keepRuns); err != nil {
			return struct{}{}, fmt.Errorf("prune scrape runs: %w", err)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return err
	}

	s.logger.Infow("scrape_run_recorded", "id", rec.ID, "status", rec.Status)
	return nil
}

type runRow struct {
	ID         string         `db:"id"`
	URL        string         `db:"url"`
	Status     string         `db:"status"`
	Error      sql.NullString `db:"error"`
	Title      string         `db:"title"`
	Cards      int            `db:"cards"`
	Files      int            `db:"files"`
	Images     int            `db:"images"`
	Links      int            `db:"links"`
	Downloaded bool           `db:"downloaded"`
	DurationMS int64          `db:"duration_ms"`
	CreatedAt  string         `db:"created_at"`
}

// Recent returns up to limit runs, newest first. A disabled store returns an
// empty list.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	q := s.db.Rebind(`
SELECT id, url, status, error, title,
       cards, files, images, links,
       downloaded, duration_ms, created_at
FROM scrape_runs
ORDER BY created_at DESC
LIMIT ?`)

	var rows []runRow
	if err := s.db.SelectContext(ctx, &rows, q, limit); err != nil {
		return nil, fmt.Errorf("select scrape runs: %w", err)
	}

	recs := make([]Record, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, r.toRecord())
	}
	return recs, nil
}

func (r runRow) toRecord() Record {
	created, _ := time.Parse(createdAtLayout, r.CreatedAt)
	return Record{
		ID:         r.ID,
		URL:        r.URL,
		Status:     r.Status,
		Error:      r.Error.String,
		Title:      r.Title,
		Cards:      r.Cards,
		Files:      r.Files,
		Images:     r.Images,
		Links:      r.Links,
		Downloaded: r.Downloaded,
		DurationMS: r.DurationMS,
		CreatedAt:  created,
	}
}
