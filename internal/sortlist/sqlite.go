// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sortlist

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

const (
	sqliteSchema = `CREATE TABLE sortlist (
	seq INTEGER NOT NULL,
	key_lower BLOB NOT NULL,
	key BLOB NOT NULL,
	value BLOB NOT NULL
)`
	sqliteIndex  = `CREATE INDEX IF NOT EXISTS sortlist_key ON sortlist (key_lower, key, seq)`
	sqliteInsert = `INSERT INTO sortlist (seq, key_lower, key, value) VALUES (?, ?, ?, ?)`
	sqliteSelect = `SELECT seq, key, value FROM sortlist ORDER BY key_lower, key, seq`
)

// SQLite is a List backed by a private SQLite database file. Items are
// inserted as they are appended and read back with an ordered scan, so only
// one item is held in memory at a time.
type SQLite struct {
	path string
	db   *sql.DB

	tx     *sql.Tx
	insert *sql.Stmt

	n int
}

// NewSQLite creates a new list stored in the database file at path. If a file
// already exists at path it is renamed to path + ".bak" first.
func NewSQLite(path string) (*SQLite, error) {
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, path+".bak"); err != nil {
			return nil, fmt.Errorf("moving aside %q: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("checking %q: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	// The list owns a single connection to its private file.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		"PRAGMA journal_mode=OFF",
		"PRAGMA synchronous=OFF",
		sqliteSchema,
	} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("initializing %q: %w", path, err)
		}
	}

	return &SQLite{
		path: path,
		db:   db,
	}, nil
}

// Append implements [List.Append]. The item is inserted immediately.
func (s *SQLite) Append(item Item) error {
	if s.tx == nil {
		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		stmt, err := tx.Prepare(sqliteInsert)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("preparing insert: %w", err)
		}
		s.tx = tx
		s.insert = stmt
	}

	_, err := s.insert.Exec(
		int64(s.n),
		nonNil(Lower(item.Key)),
		nonNil(item.Key),
		nonNil(item.Value),
	)
	if err != nil {
		return fmt.Errorf("inserting %q: %w", item.Key, err)
	}
	s.n++
	return nil
}

// Len implements [List.Len].
func (s *SQLite) Len() int {
	return s.n
}

// Sort implements [List.Sort]. It commits pending inserts and builds the
// index used by the ordered scan.
func (s *SQLite) Sort() error {
	if err := s.commit(); err != nil {
		return err
	}
	if _, err := s.db.Exec(sqliteIndex); err != nil {
		return fmt.Errorf("creating index: %w", err)
	}
	return nil
}

// Iter implements [List.Iter].
func (s *SQLite) Iter() (Iterator, error) {
	if err := s.Sort(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(sqliteSelect)
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", s.path, err)
	}
	return &sqliteIterator{rows: rows}, nil
}

// Close implements [List.Close]. The database file is removed.
func (s *SQLite) Close() error {
	var errs []error
	if s.insert != nil {
		errs = append(errs, s.insert.Close())
		s.insert = nil
	}
	if s.tx != nil {
		errs = append(errs, s.tx.Rollback())
		s.tx = nil
	}
	if s.db != nil {
		errs = append(errs, s.db.Close())
		s.db = nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("closing %q: %w", s.path, err)
	}
	return nil
}

func (s *SQLite) commit() error {
	if s.tx == nil {
		return nil
	}
	if err := s.insert.Close(); err != nil {
		return fmt.Errorf("closing insert: %w", err)
	}
	s.insert = nil
	tx := s.tx
	s.tx = nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

type sqliteIterator struct {
	rows *sql.Rows
	item Item
	err  error
}

func (it *sqliteIterator) Next() bool {
	if it.err != nil || !it.rows.Next() {
		return false
	}
	var seq int64
	var item Item
	if err := it.rows.Scan(&seq, &item.Key, &item.Value); err != nil {
		it.err = fmt.Errorf("scanning row: %w", err)
		return false
	}
	item.Seq = uint64(seq)
	it.item = item
	return true
}

func (it *sqliteIterator) Item() Item {
	return it.item
}

func (it *sqliteIterator) Err() error {
	if it.err != nil {
		return it.err
	}
	//nolint:wrapcheck // error should not be wrapped
	return it.rows.Err()
}

func (it *sqliteIterator) Close() error {
	//nolint:wrapcheck // error should not be wrapped
	return it.rows.Close()
}

// nonNil returns b or an empty slice so that the value is stored as an empty
// BLOB rather than NULL.
func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
