package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matsen/dendro/internal/dendro"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectNodeFields contains the standard field list for SELECT queries.
const selectNodeFields = `id, type, cluster_id, x, y, label,
	edge_color, fill_color, radius, opacity, label_size, label_color,
	hover_json`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One connection: SQLite doesn't support concurrent writes, and every
	// connection to :memory: would see its own database.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- One row per reconstructed node, seq is emission order
		CREATE TABLE IF NOT EXISTS nodes (
			seq INTEGER PRIMARY KEY,
			id INTEGER NOT NULL,
			type TEXT NOT NULL,
			cluster_id INTEGER,
			x REAL NOT NULL,
			y REAL NOT NULL,
			label TEXT,
			edge_color TEXT NOT NULL,
			fill_color TEXT NOT NULL,
			radius REAL NOT NULL,
			opacity REAL NOT NULL,
			label_size REAL NOT NULL,
			label_color TEXT NOT NULL,
			hover_json TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_nodes_id ON nodes(id);
		CREATE INDEX IF NOT EXISTS idx_nodes_type ON nodes(type);
		CREATE INDEX IF NOT EXISTS idx_nodes_cluster ON nodes(cluster_id) WHERE cluster_id IS NOT NULL;

		-- Full-text search over node labels
		CREATE VIRTUAL TABLE IF NOT EXISTS nodes_fts USING fts5(
			seq UNINDEXED,
			label
		);
	`

	_, err := db.Exec(schema)
	return err
}

// IndexNodes replaces the indexed nodes with nodes, keeping their order.
func (d *DB) IndexNodes(nodes []dendro.Node) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM nodes"); err != nil {
		return 0, fmt.Errorf("clearing nodes table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM nodes_fts"); err != nil {
		return 0, fmt.Errorf("clearing nodes_fts table: %w", err)
	}

	nodesStmt, err := tx.Prepare(`
		INSERT INTO nodes (
			seq, id, type, cluster_id, x, y, label,
			edge_color, fill_color, radius, opacity, label_size, label_color,
			hover_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing nodes insert: %w", err)
	}
	defer nodesStmt.Close()

	ftsStmt, err := tx.Prepare(`INSERT INTO nodes_fts (seq, label) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for seq, n := range nodes {
		var hoverJSON []byte
		if len(n.HoverText) > 0 {
			hoverJSON, err = json.Marshal(n.HoverText)
			if err != nil {
				return 0, fmt.Errorf("marshaling hover text for node %d: %w", n.ID, err)
			}
		}

		_, err = nodesStmt.Exec(
			seq, n.ID, string(n.Type), nullableInt(n.ClusterID), n.X, n.Y, nullableStringValue(n.Label),
			n.EdgeColor, n.FillColor, n.Radius, n.Opacity, n.LabelSize, n.LabelColor,
			nullableString(hoverJSON),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting node %d: %w", n.ID, err)
		}

		if label := strings.TrimSpace(n.Label); label != "" {
			if _, err := ftsStmt.Exec(seq, label); err != nil {
				return 0, fmt.Errorf("inserting fts for node %d: %w", n.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing nodes: %w", err)
	}
	return len(nodes), nil
}

// GetByID retrieves the first node with the given id, or nil if none.
func (d *DB) GetByID(id int) (*dendro.Node, error) {
	row := d.db.QueryRow(`SELECT `+selectNodeFields+` FROM nodes WHERE id = ? ORDER BY seq LIMIT 1`, id)
	return scanNode(row)
}

// NodeFilters contains optional filters for QueryNodes. Zero values do not
// filter.
type NodeFilters struct {
	Types     []dendro.NodeType // Any of these types
	ClusterID *int              // Exact flat-cluster id
	MinHeight *float64          // Minimum merge height (inclusive)
	MaxHeight *float64          // Maximum merge height (inclusive)
	Label     string            // Full-text match on the label
}

// QueryNodes returns nodes matching ALL specified filters (AND logic) in
// emission order. limit <= 0 means no limit.
func (d *DB) QueryNodes(filters NodeFilters, limit int) ([]dendro.Node, error) {
	query := `SELECT ` + selectNodeFields + ` FROM nodes WHERE 1=1`
	var args []interface{}

	if len(filters.Types) > 0 {
		placeholders := make([]string, len(filters.Types))
		for i, t := range filters.Types {
			placeholders[i] = "?"
			args = append(args, string(t))
		}
		query += " AND type IN (" + strings.Join(placeholders, ", ") + ")"
	}
	if filters.ClusterID != nil {
		query += " AND cluster_id = ?"
		args = append(args, *filters.ClusterID)
	}
	if filters.MinHeight != nil {
		query += " AND y >= ?"
		args = append(args, *filters.MinHeight)
	}
	if filters.MaxHeight != nil {
		query += " AND y <= ?"
		args = append(args, *filters.MaxHeight)
	}
	if label := prepareFTSQuery(filters.Label); label != "" {
		query += " AND seq IN (SELECT seq FROM nodes_fts WHERE nodes_fts MATCH ?)"
		args = append(args, label)
	}

	query += " ORDER BY seq"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying nodes: %w", err)
	}
	defer rows.Close()

	return scanNodes(rows)
}

// Count returns the total number of indexed nodes.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM nodes").Scan(&count)
	return count, err
}

// CountByType returns how many indexed nodes have each type.
func (d *DB) CountByType() (map[dendro.NodeType]int, error) {
	rows, err := d.db.Query("SELECT type, COUNT(*) FROM nodes GROUP BY type")
	if err != nil {
		return nil, fmt.Errorf("counting nodes: %w", err)
	}
	defer rows.Close()

	counts := make(map[dendro.NodeType]int)
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		counts[dendro.NodeType(t)] = n
	}
	return counts, rows.Err()
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanNode(s scanner) (*dendro.Node, error) {
	var n dendro.Node
	var nodeType string
	var clusterID sql.NullInt64
	var label, hoverJSON sql.NullString

	err := s.Scan(
		&n.ID, &nodeType, &clusterID, &n.X, &n.Y, &label,
		&n.EdgeColor, &n.FillColor, &n.Radius, &n.Opacity, &n.LabelSize, &n.LabelColor,
		&hoverJSON,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	n.Type = dendro.NodeType(nodeType)
	n.Label = label.String
	if clusterID.Valid {
		c := int(clusterID.Int64)
		n.ClusterID = &c
	}

	n.HoverText = map[string]string{}
	if hoverJSON.Valid {
		if err := json.Unmarshal([]byte(hoverJSON.String), &n.HoverText); err != nil {
			return nil, fmt.Errorf("parsing hover text for node %d: %w", n.ID, err)
		}
	}

	return &n, nil
}

func scanNodes(rows *sql.Rows) ([]dendro.Node, error) {
	nodes := []dendro.Node{}
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		if n != nil {
			nodes = append(nodes, *n)
		}
	}
	return nodes, rows.Err()
}

func nullableString(b []byte) sql.NullString {
	if len(b) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	// FTS5 uses double quotes for phrase matching
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// If query contains special chars, quote it
	if strings.ContainsAny(query, "\"*+-:(){}[]^~") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
