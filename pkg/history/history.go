// Package history records package uploads in a local sqlite database so the
// CLI can answer "what have I published, and when" without asking the depot.
package history

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	logging "github.com/ipfs/go-log/v2"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/packhaus/depot/pkg/bus"
	"github.com/packhaus/depot/pkg/bus/events"
	"github.com/packhaus/depot/pkg/depot"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var log = logging.Logger("pkg/history")

const DefaultPreparedStmtCacheSize = 32

// Upload is one recorded package upload.
type Upload struct {
	ID        string    `db:"id"`
	Ident     string    `db:"ident"`
	Checksum  string    `db:"checksum"`
	Location  string    `db:"location"`
	CreatedAt time.Time `db:"created_at"`
}

// Store is the upload history database.
type Store struct {
	db            *sqlx.DB
	bus           bus.Publisher
	preparedStmts *lru.Cache[string, *sqlx.Stmt]
}

// Option is an option configuring a Store.
type Option func(s *Store)

// WithEventBus publishes an event on b for every recorded upload.
func WithEventBus(b bus.Bus) Option {
	return func(s *Store) {
		s.bus = b
	}
}

// Open opens (creating and migrating if necessary) the history database at
// path.
func Open(path string, options ...Option) (*Store, error) {
	db, err := sqlx.Open("sqlite", fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path))
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	cache, err := lru.NewWithEvict(DefaultPreparedStmtCacheSize, func(key string, stmt *sqlx.Stmt) {
		stmt.Close()
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db, bus: &bus.NoopBus{}, preparedStmts: cache}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

func migrate(db *sqlx.DB) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting migration dialect: %w", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		return fmt.Errorf("migrating history db: %w", err)
	}
	return nil
}

func (s *Store) prepareStmt(ctx context.Context, query string) (*sqlx.Stmt, error) {
	if stmt, ok := s.preparedStmts.Get(query); ok {
		return stmt, nil
	}
	stmt, err := s.db.PreparexContext(ctx, query)
	if err != nil {
		return nil, err
	}
	_ = s.preparedStmts.Add(query, stmt)
	return stmt, nil
}

// Record stores a completed upload and publishes it on the event bus.
func (s *Store) Record(ctx context.Context, ident depot.PackageIdent, checksum, location string) (Upload, error) {
	up := Upload{
		ID:        uuid.NewString(),
		Ident:     ident.String(),
		Checksum:  checksum,
		Location:  location,
		CreatedAt: time.Now().UTC(),
	}

	stmt, err := s.prepareStmt(ctx, `INSERT INTO uploads (id, ident, checksum, location, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return Upload{}, fmt.Errorf("recording upload: %w", err)
	}
	if _, err := stmt.ExecContext(ctx, up.ID, up.Ident, up.Checksum, up.Location, up.CreatedAt); err != nil {
		return Upload{}, fmt.Errorf("recording upload %q: %w", up.Ident, err)
	}

	log.Debugw("upload recorded", "ident", up.Ident, "id", up.ID)
	s.bus.Publish(events.TopicUpload(ident.Origin), events.UploadRecorded{
		Ident:    up.Ident,
		Checksum: up.Checksum,
		Location: up.Location,
		At:       up.CreatedAt,
	})
	return up, nil
}

// List returns the most recent uploads, newest first, up to limit. A limit
// of 0 returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Upload, error) {
	if limit <= 0 {
		limit = -1
	}
	stmt, err := s.prepareStmt(ctx, `SELECT id, ident, checksum, location, created_at FROM uploads ORDER BY created_at DESC, id LIMIT ?`)
	if err != nil {
		return nil, fmt.Errorf("listing uploads: %w", err)
	}

	uploads := []Upload{}
	if err := stmt.SelectContext(ctx, &uploads, limit); err != nil {
		return nil, fmt.Errorf("listing uploads: %w", err)
	}
	return uploads, nil
}

// ForOrigin returns all recorded uploads under an origin, newest first.
func (s *Store) ForOrigin(ctx context.Context, origin string) ([]Upload, error) {
	stmt, err := s.prepareStmt(ctx, `SELECT id, ident, checksum, location, created_at FROM uploads WHERE ident = ? OR ident LIKE ? ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing uploads for origin %q: %w", origin, err)
	}

	uploads := []Upload{}
	if err := stmt.SelectContext(ctx, &uploads, origin, origin+"/%"); err != nil {
		return nil, fmt.Errorf("listing uploads for origin %q: %w", origin, err)
	}
	return uploads, nil
}

// Close releases prepared statements and closes the database.
func (s *Store) Close() error {
	s.preparedStmts.Purge()
	return s.db.Close()
}
