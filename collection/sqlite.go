package collection

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

// FieldSeparator separates field values in the flds column.
const FieldSeparator = "\x1f"

// field number of sort_field_idx in the notetype config message
const sortFieldNumber protowire.Number = 2

// SQLite is an Anki collection file.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// DriverName is the database/sql driver the package was built with.
func DriverName() string {
	return driverName
}

// Open opens the collection at path. The file must exist; the drivers would
// otherwise create an empty database.
func Open(path string) (*SQLite, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &SQLite{db: db, now: time.Now}, nil
}

func (c *SQLite) Close() error {
	return c.db.Close()
}

// notetype names are declared with a custom collation, so compare bytes.
func (c *SQLite) notetypeID(ctx context.Context, name string) (int64, []byte, error) {
	var (
		id     int64
		config []byte
	)
	err := c.db.QueryRowContext(ctx,
		"SELECT id, config FROM notetypes WHERE name = ? COLLATE BINARY", name).Scan(&id, &config)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil, fmt.Errorf("%w: %s", ErrNotetypeNotFound, name)
	}
	return id, config, err
}

// sortFieldIndex reads sort_field_idx from an encoded notetype config. An
// absent field means the first one.
func sortFieldIndex(config []byte) (int, error) {
	for len(config) > 0 {
		num, typ, n := protowire.ConsumeTag(config)
		if n < 0 {
			return 0, protowire.ParseError(n)
		}
		config = config[n:]
		if num == sortFieldNumber && typ == protowire.VarintType {
			v, n := protowire.ConsumeVarint(config)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			return int(v), nil
		}
		n = protowire.ConsumeFieldValue(num, typ, config)
		if n < 0 {
			return 0, protowire.ParseError(n)
		}
		config = config[n:]
	}
	return 0, nil
}

func (c *SQLite) fieldNames(ctx context.Context, ntid int64) ([]string, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT name FROM fields WHERE ntid = ? ORDER BY ord", ntid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (c *SQLite) FindNotes(ctx context.Context, notetype string) ([]*Note, error) {
	ntid, config, err := c.notetypeID(ctx, notetype)
	if err != nil {
		return nil, err
	}
	names, err := c.fieldNames(ctx, ntid)
	if err != nil {
		return nil, err
	}
	sortIdx, err := sortFieldIndex(config)
	if err != nil {
		return nil, fmt.Errorf("%s: config: %w", notetype, err)
	}
	if sortIdx >= len(names) {
		sortIdx = 0
	}

	rows, err := c.db.QueryContext(ctx,
		"SELECT id, flds FROM notes WHERE mid = ? ORDER BY id", ntid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*Note
	for rows.Next() {
		var (
			id   int64
			flds string
		)
		if err := rows.Scan(&id, &flds); err != nil {
			return nil, err
		}
		n := NewNote(id, names, strings.Split(flds, FieldSeparator))
		n.sortIdx = sortIdx
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// UpdateNotes rewrites the fields of notes in a single transaction and
// marks them as modified locally so that the next sync uploads them. The
// sort field and first field checksum are recomputed from the new values.
func (c *SQLite) UpdateNotes(ctx context.Context, notes []*Note) error {
	if len(notes) == 0 {
		return nil
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"UPDATE notes SET flds = ?, sfld = ?, csum = ?, mod = ?, usn = -1 WHERE id = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()

	mod := c.now().Unix()
	for _, n := range notes {
		var first string
		if len(n.values) > 0 {
			first = n.values[0]
		}
		res, err := stmt.ExecContext(ctx,
			strings.Join(n.values, FieldSeparator), n.SortField(), FieldChecksum(first), mod, n.ID)
		if err != nil {
			return fmt.Errorf("note %d: %w", n.ID, err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return fmt.Errorf("note %d: no such note", n.ID)
		}
	}
	return tx.Commit()
}
