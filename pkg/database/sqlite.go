package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gorp/gorp/v3"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type Snapshot struct {
	Key       string    `db:"storage_key"`
	Payload   []byte    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Sqlite struct {
	db    *sql.DB
	dbmap *gorp.DbMap
}

func NewSqlite(file string) (Sqlite, error) {
	sqlite := Sqlite{}

	if dir := filepath.Dir(file); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return sqlite, errors.Wrap(err, "creating database directory")
		}
	}

	// Initialize the database connection
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return sqlite, errors.Wrap(err, "unable to connect to database")
	}
	sqlite.db = db

	// Initialize the database mapping, creating the table if it's our first run
	dbmap := &gorp.DbMap{Db: db, Dialect: gorp.SqliteDialect{}}
	dbmap.AddTableWithName(Snapshot{}, "snapshots").SetKeys(false, "Key")
	if err := dbmap.CreateTablesIfNotExists(); err != nil {
		_ = db.Close()
		return sqlite, errors.Wrap(err, "unable to create tables")
	}
	sqlite.dbmap = dbmap

	return sqlite, nil
}

func (s Sqlite) Get(key string) ([]byte, error) {
	obj, err := s.dbmap.Get(Snapshot{}, key)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", key)
	}
	if obj == nil {
		return nil, ErrNotFound
	}
	return obj.(*Snapshot).Payload, nil
}

func (s Sqlite) Put(key string, value []byte) error {
	tx, err := s.dbmap.Begin()
	if err != nil {
		return err
	}
	row := &Snapshot{Key: key, Payload: value, UpdatedAt: time.Now().UTC()}
	if err := tx.Insert(row); err != nil {
		// the key already exists: overwrite it
		var sqliteError sqlite3.Error
		if !errors.As(err, &sqliteError) || sqliteError.Code != sqlite3.ErrConstraint {
			_ = tx.Rollback()
			return errors.Wrapf(err, "writing %s", key)
		}
		if _, err := tx.Update(row); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "writing %s", key)
		}
	}
	return tx.Commit()
}

func (s Sqlite) Delete(keys ...string) error {
	tx, err := s.dbmap.Begin()
	if err != nil {
		return err
	}
	for _, key := range keys {
		if _, err := tx.Delete(&Snapshot{Key: key}); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "deleting %s", key)
		}
	}
	return tx.Commit()
}

func (s Sqlite) Close() error {
	return s.db.Close()
}
