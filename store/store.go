// Package store persists ledger entries in SQLite.
//
// Numeric columns hold canonical decimal text so values of any size round
// trip without loss. Entries are keyed by their crypto stable hash, which
// makes writing the same entry twice a no-op.
package store

import (
	"context"
	"log/slog"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/calebcase/ledgernum/decimal"
	"github.com/calebcase/ledgernum/hexbytes"
	"github.com/calebcase/ledgernum/integer"
	"github.com/calebcase/ledgernum/stablehash"
)

// Entry is a ledger record belonging to a deployment.
type Entry struct {
	ID      string          `json:"id"`
	Block   integer.Int     `json:"block"`
	Amount  decimal.Decimal `json:"amount"`
	Payload hexbytes.Bytes  `json:"payload"`
}

// StableHash implements stablehash.Hashable. Each field has its own child
// sequence number in declaration order.
func (e Entry) StableHash(seq *stablehash.SequenceNumber, h stablehash.Hasher) {
	stablehash.String(e.ID).StableHash(seq.NextChild(), h)
	e.Block.StableHash(seq.NextChild(), h)
	e.Amount.StableHash(seq.NextChild(), h)
	e.Payload.StableHash(seq.NextChild(), h)
}

var _ stablehash.Hashable = Entry{}

// Key returns the content key of e, the hex form of its 256 bit crypto
// stable hash. Distinct entries never share a key in practice, so a key
// already present means the entry is already stored.
func (e Entry) Key() string {
	sum := stablehash.CryptoSum(e)

	return hexbytes.New(sum[:]).String()
}

// Store is a SQLite backed entry store. It is safe for concurrent use.
type Store struct {
	pool   *sqlitex.Pool
	logger *slog.Logger
	path   string
}

// Open opens or creates the database described by cfg. The caller must call
// Close when done.
func Open(cfg Config) (*Store, error) {
	pool, logger, err := open(cfg)
	if err != nil {
		return nil, err
	}

	return &Store{
		pool:   pool,
		logger: logger,
		path:   cfg.Path,
	}, nil
}

// Close closes all connections. It blocks until borrowed connections are
// returned.
func (s *Store) Close() error {
	err := s.pool.Close()
	if err != nil {
		s.logger.Error("store close error",
			"path", s.path,
			"error", err,
		)

		return Error.Wrap(err)
	}

	s.logger.Info("store closed", "path", s.path)

	return nil
}

// CreateDeployment registers a deployment that has not processed any
// blocks.
func (s *Store) CreateDeployment(ctx context.Context, id string) (err error) {
	conn, err := s.take(ctx)
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn, `INSERT INTO deployments (id) VALUES (?)`, &sqlitex.ExecOptions{
		Args: []any{id},
	})
	if err != nil {
		return Error.New("create deployment %q: %v", id, err)
	}

	s.logger.Info("deployment created", "deployment", id)

	return nil
}

// Exists reports whether the deployment has been created.
func (s *Store) Exists(ctx context.Context, id string) (exists bool, err error) {
	conn, err := s.take(ctx)
	if err != nil {
		return false, err
	}
	defer s.pool.Put(conn)

	_, _, err = latestBlock(conn, id)
	if ErrNotFound.Has(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// LatestBlock returns the highest block the deployment has stored an entry
// for. ok is false if it has not processed any blocks.
func (s *Store) LatestBlock(ctx context.Context, id string) (block integer.Int, ok bool, err error) {
	conn, err := s.take(ctx)
	if err != nil {
		return block, false, err
	}
	defer s.pool.Put(conn)

	return latestBlock(conn, id)
}

func latestBlock(conn *sqlite.Conn, id string) (block integer.Int, ok bool, err error) {
	var found bool

	err = sqlitex.Execute(conn, `SELECT latest_block FROM deployments WHERE id = ?`, &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) (err error) {
			found = true

			if stmt.ColumnType(0) == sqlite.TypeNull {
				return nil
			}

			ok = true

			return block.Scan(stmt.ColumnText(0))
		},
	})
	if err != nil {
		return block, false, Error.Wrap(err)
	}

	if !found {
		return block, false, ErrNotFound.New("deployment %q", id)
	}

	return block, ok, nil
}

// Put stores e for the deployment and advances the deployment's block
// pointer to e.Block if it is ahead. inserted is false if an identical entry
// was already stored.
func (s *Store) Put(ctx context.Context, deployment string, e Entry) (inserted bool, err error) {
	if e.Block.Sign() < 0 {
		return false, Error.New("negative block %s", e.Block)
	}

	conn, err := s.take(ctx)
	if err != nil {
		return false, err
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return false, Error.Wrap(err)
	}
	defer endTransaction(&err)

	latest, ok, err := latestBlock(conn, deployment)
	if err != nil {
		return false, err
	}

	key := e.Key()

	err = sqlitex.Execute(conn, `
		INSERT OR IGNORE INTO entries (deployment, hash, id, block, amount, payload)
		VALUES (?, ?, ?, ?, ?, ?)`, &sqlitex.ExecOptions{
		Args: []any{
			deployment,
			key,
			e.ID,
			e.Block.String(),
			e.Amount.String(),
			e.Payload.Slice(),
		},
	})
	if err != nil {
		return false, Error.New("insert %s: %v", key, err)
	}

	inserted = conn.Changes() > 0

	if !ok || latest.Cmp(e.Block) < 0 {
		err = sqlitex.Execute(conn, `UPDATE deployments SET latest_block = ? WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{e.Block.String(), deployment},
		})
		if err != nil {
			return false, Error.New("advance %q: %v", deployment, err)
		}

		s.logger.Debug("block pointer advanced",
			"deployment", deployment,
			"block", e.Block.String(),
		)
	}

	return inserted, nil
}

// Get returns the most recently stored entry with the given id.
func (s *Store) Get(ctx context.Context, deployment, id string) (e Entry, err error) {
	conn, err := s.take(ctx)
	if err != nil {
		return e, err
	}
	defer s.pool.Put(conn)

	var found bool

	err = sqlitex.Execute(conn, `
		SELECT id, block, amount, payload FROM entries
		WHERE deployment = ? AND id = ?
		ORDER BY rowid DESC
		LIMIT 1`, &sqlitex.ExecOptions{
		Args: []any{deployment, id},
		ResultFunc: func(stmt *sqlite.Stmt) (err error) {
			found = true

			e, err = scanEntry(stmt)

			return err
		},
	})
	if err != nil {
		return Entry{}, Error.Wrap(err)
	}

	if !found {
		return Entry{}, ErrNotFound.New("entry %q in deployment %q", id, deployment)
	}

	return e, nil
}

func scanEntry(stmt *sqlite.Stmt) (e Entry, err error) {
	e.ID = stmt.ColumnText(0)

	err = e.Block.Scan(stmt.ColumnText(1))
	if err != nil {
		return e, err
	}

	err = e.Amount.Scan(stmt.ColumnText(2))
	if err != nil {
		return e, err
	}

	payload := make([]byte, stmt.ColumnLen(3))
	stmt.ColumnBytes(3, payload)

	e.Payload = hexbytes.New(payload)

	return e, nil
}
