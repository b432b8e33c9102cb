package dataio

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/dtwnn/series"
	_ "modernc.org/sqlite"
)

// Store keeps named datasets in a SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates a store at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS datasets (
			name TEXT PRIMARY KEY,
			length INTEGER NOT NULL,
			classes_json TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS series (
			dataset TEXT NOT NULL REFERENCES datasets(name) ON DELETE CASCADE,
			pos INTEGER NOT NULL,
			class INTEGER NOT NULL,
			vals BLOB NOT NULL,
			PRIMARY KEY (dataset, pos)
		);
	`
	_, err := db.Exec(schema)

	return err
}

// Save stores ds under name, replacing any dataset of that name.
func (s *Store) Save(ctx context.Context, name string, ds *series.Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}
	for i, sr := range ds.Series {
		if !series.IsFinite(sr) {
			return fmt.Errorf("%w: series %d", ErrNonFinite, i)
		}
	}
	classes, err := json.Marshal(ds.Classes)
	if err != nil {
		return fmt.Errorf("encoding classes: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM series WHERE dataset = ?", name); err != nil {
		return fmt.Errorf("clearing series: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO datasets (name, length, classes_json) VALUES (?, ?, ?)",
		name, ds.Length(), string(classes)); err != nil {
		return fmt.Errorf("inserting dataset: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO series (dataset, pos, class, vals) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing series insert: %w", err)
	}
	defer stmt.Close()

	for pos, sr := range ds.Series {
		if _, err := stmt.ExecContext(ctx, name, pos, sr.Class, encodeValues(sr.Values)); err != nil {
			return fmt.Errorf("inserting series %d: %w", pos, err)
		}
	}

	return tx.Commit()
}

// Load returns the dataset stored under name, or ErrNotFound.
func (s *Store) Load(ctx context.Context, name string) (*series.Dataset, error) {
	var (
		length  int
		classes string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT length, classes_json FROM datasets WHERE name = ?", name).Scan(&length, &classes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("querying dataset: %w", err)
	}

	ds := series.New()
	if err := json.Unmarshal([]byte(classes), &ds.Classes); err != nil {
		return nil, fmt.Errorf("decoding classes: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT class, vals FROM series WHERE dataset = ? ORDER BY pos", name)
	if err != nil {
		return nil, fmt.Errorf("querying series: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			class int
			blob  []byte
		)
		if err := rows.Scan(&class, &blob); err != nil {
			return nil, fmt.Errorf("scanning series: %w", err)
		}
		vals, err := decodeValues(blob, length)
		if err != nil {
			return nil, err
		}
		if err := ds.Add(series.Series{Values: vals, Class: class}); err != nil {
			return nil, fmt.Errorf("series %d: %w", ds.Len(), err)
		}
	}

	return ds, rows.Err()
}

// List returns the stored dataset names in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM datasets ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying datasets: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning dataset name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// Delete removes the dataset stored under name, or returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM series WHERE dataset = ?", name); err != nil {
		return fmt.Errorf("deleting series: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM datasets WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting dataset: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	return tx.Commit()
}

// encodeValues packs values as little-endian float64 bits.
func encodeValues(vals []float64) []byte {
	buf := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}

	return buf
}

func decodeValues(buf []byte, length int) ([]float64, error) {
	if len(buf) != 8*length {
		return nil, fmt.Errorf("%w: blob of %d bytes for length %d", ErrMalformedRow, len(buf), length)
	}
	vals := make([]float64, length)
	for i := range vals {
		vals[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[8*i:]))
	}

	return vals, nil
}
