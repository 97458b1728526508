package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"cblocks/attrs"
)

const schema = `CREATE TABLE IF NOT EXISTS blocks (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	document TEXT NOT NULL,
	revision INTEGER NOT NULL DEFAULT 1,
	updated INTEGER NOT NULL
);`

// SQLiteHost keeps block documents in a single sqlite database, one row per
// block instance. Every replacement bumps the row revision. Connection is not
// safe for concurrent use.
type SQLiteHost struct {
	conn *sqlite.Conn
	log  *zap.Logger
}

// OpenSQLite opens (creating when necessary) database at path. Use ":memory:"
// for transient database.
func OpenSQLite(path string, log *zap.Logger) (*SQLiteHost, error) {
	flags := []sqlite.OpenFlags{sqlite.OpenReadWrite, sqlite.OpenCreate, sqlite.OpenWAL}
	if path == ":memory:" {
		flags = []sqlite.OpenFlags{sqlite.OpenReadWrite, sqlite.OpenMemory}
	}
	conn, err := sqlite.OpenConn(path, flags...)
	if err != nil {
		return nil, fmt.Errorf("open attribute database: %w", err)
	}
	if err := sqlitex.ExecuteTransient(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("prepare attribute database: %w", err)
	}
	return &SQLiteHost{conn: conn, log: log.Named("sqlite")}, nil
}

func (h *SQLiteHost) Close() error {
	return h.conn.Close()
}

func (h *SQLiteHost) Load(ctx context.Context, id string) (*attrs.Document, error) {
	h.conn.SetInterrupt(ctx.Done())

	var (
		data  string
		found bool
	)
	err := sqlitex.Execute(h.conn, `SELECT document FROM blocks WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				data, found = stmt.ColumnText(0), true
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("read block %q: %w", id, err)
	}
	if !found {
		return nil, fmt.Errorf("block %q: %w", id, os.ErrNotExist)
	}
	return Decode([]byte(data))
}

func (h *SQLiteHost) Replace(ctx context.Context, doc *attrs.Document) (err error) {
	h.conn.SetInterrupt(ctx.Done())

	data, err := Encode(doc, FormatYAML)
	if err != nil {
		return err
	}

	defer sqlitex.Save(h.conn)(&err)

	err = sqlitex.Execute(h.conn, `INSERT INTO blocks (id, kind, document, updated) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET kind = excluded.kind, document = excluded.document,
	revision = revision + 1, updated = excluded.updated`,
		&sqlitex.ExecOptions{
			Args: []any{doc.ID, doc.Kind.String(), string(data), time.Now().Unix()},
		})
	if err != nil {
		return fmt.Errorf("replace block %q: %w", doc.ID, err)
	}
	h.log.Debug("Block document replaced", zap.String("block", doc.ID), zap.Int64("revision", h.Revision(doc.ID)))
	return nil
}

// Revision returns number of times block has been stored, 0 when unknown.
func (h *SQLiteHost) Revision(id string) int64 {
	var rev int64
	_ = sqlitex.Execute(h.conn, `SELECT revision FROM blocks WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				rev = stmt.ColumnInt64(0)
				return nil
			},
		})
	return rev
}

// IDs lists stored blocks in id order.
func (h *SQLiteHost) IDs() ([]string, error) {
	var ids []string
	err := sqlitex.Execute(h.conn, `SELECT id FROM blocks ORDER BY id`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				ids = append(ids, stmt.ColumnText(0))
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	return ids, nil
}
