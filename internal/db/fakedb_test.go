package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
)

// fakeRow is one row of the words table. A nil weight is SQL NULL.
type fakeRow struct {
	word   string
	weight *float64
}

// fakeTable is an in-memory words table behind a database/sql driver. It
// understands only the statements WordRepository issues.
type fakeTable struct {
	mu       sync.Mutex
	rows     []fakeRow
	executed []string
	queryErr error
}

func newFakeDB(t *testing.T, rows ...fakeRow) (*sql.DB, *fakeTable) {
	t.Helper()
	table := &fakeTable{rows: rows}
	db := sql.OpenDB(fakeConnector{table})
	t.Cleanup(func() { db.Close() })
	return db, table
}

func (f *fakeTable) snapshot() []fakeRow {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fakeRow(nil), f.rows...)
}

// upsert mirrors INSERT ... ON DUPLICATE KEY UPDATE on the word column
func (f *fakeTable) upsert(pending []fakeRow) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range pending {
		replaced := false
		for i := range f.rows {
			if f.rows[i].word == p.word {
				f.rows[i].weight = p.weight
				replaced = true
				break
			}
		}
		if !replaced {
			f.rows = append(f.rows, p)
		}
	}
}

type fakeConnector struct{ table *fakeTable }

func (c fakeConnector) Connect(context.Context) (driver.Conn, error) {
	return &fakeConn{table: c.table}, nil
}

func (c fakeConnector) Driver() driver.Driver { return fakeDriver{c.table} }

type fakeDriver struct{ table *fakeTable }

func (d fakeDriver) Open(string) (driver.Conn, error) {
	return &fakeConn{table: d.table}, nil
}

type fakeConn struct {
	table *fakeTable
	tx    *fakeTx
}

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) {
	return &fakeStmt{conn: c, query: query}, nil
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) {
	if c.tx != nil {
		return nil, errors.New("transaction already open")
	}
	c.tx = &fakeTx{conn: c}
	return c.tx, nil
}

// fakeTx buffers inserts until Commit
type fakeTx struct {
	conn    *fakeConn
	pending []fakeRow
}

func (tx *fakeTx) Commit() error {
	tx.conn.table.upsert(tx.pending)
	tx.conn.tx = nil
	return nil
}

func (tx *fakeTx) Rollback() error {
	tx.conn.tx = nil
	return nil
}

type fakeStmt struct {
	conn  *fakeConn
	query string
}

func (s *fakeStmt) Close() error  { return nil }
func (s *fakeStmt) NumInput() int { return -1 }

func (s *fakeStmt) Exec(args []driver.Value) (driver.Result, error) {
	table := s.conn.table
	table.mu.Lock()
	table.executed = append(table.executed, strings.TrimSpace(s.query))
	table.mu.Unlock()

	if !strings.HasPrefix(s.query, "INSERT INTO") {
		return driver.RowsAffected(0), nil
	}
	if len(args) != 2 {
		return nil, fmt.Errorf("insert takes 2 arguments, got %d", len(args))
	}
	word, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("word argument is %T", args[0])
	}
	row := fakeRow{word: word}
	switch v := args[1].(type) {
	case nil:
	case float64:
		row.weight = &v
	default:
		return nil, fmt.Errorf("weight argument is %T", args[1])
	}

	if s.conn.tx != nil {
		s.conn.tx.pending = append(s.conn.tx.pending, row)
	} else {
		table.upsert([]fakeRow{row})
	}
	return driver.RowsAffected(1), nil
}

func (s *fakeStmt) Query([]driver.Value) (driver.Rows, error) {
	table := s.conn.table
	table.mu.Lock()
	err := table.queryErr
	table.mu.Unlock()
	if err != nil {
		return nil, err
	}

	withWeight := strings.HasPrefix(s.query, "SELECT word, weight FROM")
	nonNull := strings.Contains(s.query, "WHERE weight IS NOT NULL")

	result := &fakeRows{columns: []string{"word"}}
	if withWeight {
		result.columns = append(result.columns, "weight")
	}
	for _, r := range table.snapshot() {
		if nonNull && r.weight == nil {
			continue
		}
		values := []driver.Value{r.word}
		if withWeight {
			if r.weight == nil {
				values = append(values, nil)
			} else {
				values = append(values, *r.weight)
			}
		}
		result.values = append(result.values, values)
	}
	return result, nil
}

type fakeRows struct {
	columns []string
	values  [][]driver.Value
	next    int
}

func (r *fakeRows) Columns() []string { return r.columns }
func (r *fakeRows) Close() error      { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.next >= len(r.values) {
		return io.EOF
	}
	copy(dest, r.values[r.next])
	r.next++
	return nil
}

func weight(v float64) *float64 { return &v }
