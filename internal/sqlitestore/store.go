// Package sqlitestore exports a doubled arc-centric graph into SQLite so it
// can be queried without re-parsing the edge list.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"

	"arcdbg/internal/graph"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS nodes (
	id          INTEGER PRIMARY KEY,
	unitig_id   INTEGER NOT NULL,
	orientation TEXT    NOT NULL,
	length      INTEGER NOT NULL,
	abundance   REAL    NOT NULL
);
CREATE TABLE IF NOT EXISTS arcs (
	position          INTEGER PRIMARY KEY,
	from_id           INTEGER NOT NULL,
	to_id             INTEGER NOT NULL,
	weight            REAL    NOT NULL,
	mirror_from       INTEGER NOT NULL,
	mirror_to         INTEGER NOT NULL,
	sequence          TEXT    NOT NULL,
	self_complemental INTEGER NOT NULL,
	edge              INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS arcs_endpoints ON arcs (from_id, to_id);
`

// Store wraps the SQLite database connection.
type Store struct {
	conn *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Save replaces the stored graph with the doubled nodes of d and arcs, in one
// transaction. Arc positions follow emission order.
func (s *Store) Save(ctx context.Context, d *graph.Doubler, arcs []graph.Arc) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM arcs; DELETE FROM nodes;`); err != nil {
		return fmt.Errorf("clearing graph: %w", err)
	}

	nodeStmt, err := tx.PrepareContext(ctx, `INSERT INTO nodes (id, unitig_id, orientation, length, abundance) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing node insert: %w", err)
	}
	defer nodeStmt.Close()
	for i := 0; i < d.NodeCount(); i++ {
		id := graph.ID(i)
		n := d.Node(id)
		orientation := graph.Plus
		if !graph.IsForward(id) {
			orientation = graph.Minus
		}
		if _, err := nodeStmt.ExecContext(ctx, int64(id), int64(n.ID), orientation.String(), n.Length, n.Abundance); err != nil {
			return fmt.Errorf("inserting node %d: %w", id, err)
		}
	}

	arcStmt, err := tx.PrepareContext(ctx, `INSERT INTO arcs (position, from_id, to_id, weight, mirror_from, mirror_to, sequence, self_complemental, edge) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing arc insert: %w", err)
	}
	defer arcStmt.Close()
	for i, a := range arcs {
		self := 0
		if a.SelfComplemental {
			self = 1
		}
		if _, err := arcStmt.ExecContext(ctx, i, int64(a.From), int64(a.To), a.Weight, int64(a.MirrorFrom), int64(a.MirrorTo), a.Sequence, self, a.Edge); err != nil {
			return fmt.Errorf("inserting arc %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// ArcRow is an arc as read back from the database.
type ArcRow struct {
	From, To             int64
	Weight               float64
	MirrorFrom, MirrorTo int64
	Sequence             string
	SelfComplemental     bool
}

// Arcs returns all stored arcs in emission order.
func (s *Store) Arcs(ctx context.Context) ([]ArcRow, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT from_id, to_id, weight, mirror_from, mirror_to, sequence, self_complemental FROM arcs ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying arcs: %w", err)
	}
	defer rows.Close()
	var out []ArcRow
	for rows.Next() {
		var r ArcRow
		var self int
		if err := rows.Scan(&r.From, &r.To, &r.Weight, &r.MirrorFrom, &r.MirrorTo, &r.Sequence, &self); err != nil {
			return nil, fmt.Errorf("scanning arc: %w", err)
		}
		r.SelfComplemental = self != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// NodeCount returns the number of stored doubled nodes.
func (s *Store) NodeCount(ctx context.Context) (int, error) {
	var n int
	err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM nodes`).Scan(&n)
	return n, err
}
