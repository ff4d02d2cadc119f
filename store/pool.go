package store

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/zeebo/errs"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var (
	// Error is the class of errors returned by this package.
	Error = errs.Class("store")

	// ErrNotFound is the class of errors for missing deployments and
	// entries.
	ErrNotFound = errs.Class("not found")
)

// Config holds the parameters for opening a Store.
type Config struct {
	// Path is the SQLite database file. It is created if it does not
	// exist. ":memory:" requires a PoolSize of 1 since every in-memory
	// connection is its own database.
	Path string

	// PoolSize is the number of connections. Zero means
	// max(runtime.NumCPU(), 4).
	PoolSize int

	// Logger receives operational messages. Nil discards them.
	Logger *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS deployments (
	id           TEXT PRIMARY KEY,
	latest_block TEXT
);

CREATE TABLE IF NOT EXISTS entries (
	deployment TEXT NOT NULL REFERENCES deployments (id),
	hash       TEXT NOT NULL,
	id         TEXT NOT NULL,
	block      TEXT NOT NULL,
	amount     TEXT NOT NULL,
	payload    BLOB,
	PRIMARY KEY (deployment, hash)
);

CREATE INDEX IF NOT EXISTS entries_by_id ON entries (deployment, id);
`

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA foreign_keys=ON",
	"PRAGMA temp_store=MEMORY",
}

func prepare(conn *sqlite.Conn) (err error) {
	for _, pragma := range pragmas {
		err = sqlitex.ExecuteTransient(conn, pragma, nil)
		if err != nil {
			return Error.New("%s: %v", pragma, err)
		}
	}

	return Error.Wrap(sqlitex.ExecuteScript(conn, schema, nil))
}

func open(cfg Config) (pool *sqlitex.Pool, logger *slog.Logger, err error) {
	if cfg.Path == "" {
		return nil, nil, Error.New("path is required")
	}

	logger = cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	size := cfg.PoolSize
	if size <= 0 {
		size = max(runtime.NumCPU(), 4)
	}

	pool, err = sqlitex.NewPool(cfg.Path, sqlitex.PoolOptions{
		PoolSize:    size,
		PrepareConn: prepare,
	})
	if err != nil {
		return nil, nil, Error.New("opening %s: %v", cfg.Path, err)
	}

	logger.Info("store opened",
		"path", cfg.Path,
		"pool_size", size,
	)

	return pool, logger, nil
}

func (s *Store) take(ctx context.Context) (*sqlite.Conn, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, Error.Wrap(err)
	}

	return conn, nil
}
