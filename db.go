package cpcimage

import (
	"database/sql"
	"fmt"

	"github.com/bodgit/cpcimage/ga"
	_ "github.com/mattn/go-sqlite3"
)

// Store caches converted images in an SQLite database, keyed by the SHA-1
// of the source file and the conversion settings.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the database in file.
func NewStore(file string) (*Store, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS source (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS conversion (source_id INTEGER NOT NULL, key TEXT NOT NULL, palette BLOB NOT NULL, data BLOB NOT NULL, UNIQUE(source_id, key), FOREIGN KEY(source_id) REFERENCES source(id))"); err != nil {
		return nil, err
	}

	return &Store{
		db: db,
	}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// StoredOutput is a conversion read back from a Store. Every pen of its
// palette is set, unset pens having been stored as ink 0.
type StoredOutput struct {
	palette ga.Palette
	data    []byte
}

// Palette implements Output.
func (o *StoredOutput) Palette() ga.Palette { return o.palette }

// Data implements Output.
func (o *StoredOutput) Data() []byte { return o.data }

func (s *Store) addSource(sha string) (int64, error) {
	var id int64
	switch err := s.db.QueryRow("SELECT id FROM source WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := s.db.Exec("INSERT INTO source (sha1) VALUES (?)", sha)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// Add records the conversion o of the source with checksum sha. An existing
// conversion with the same key is replaced.
func (s *Store) Add(sha, key string, o Output) error {
	id, err := s.addSource(sha)
	if err != nil {
		return err
	}

	palette, err := o.Palette().MarshalBinary()
	if err != nil {
		return err
	}

	if _, err := s.db.Exec("INSERT OR REPLACE INTO conversion (source_id, key, palette, data) VALUES (?, ?, ?, ?)", id, key, palette, o.Data()); err != nil {
		return err
	}
	return nil
}

// Find returns the conversion of the source with checksum sha made with
// settings key, or nil if there is none.
func (s *Store) Find(sha, key string) (Output, error) {
	var palette, data []byte
	switch err := s.db.QueryRow("SELECT c.palette, c.data FROM conversion AS c JOIN source AS s ON c.source_id = s.id WHERE s.sha1 = ? AND c.key = ?", sha, key).Scan(&palette, &data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		o := &StoredOutput{data: data}
		if err := o.palette.UnmarshalBinary(palette); err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, err
	}
}
