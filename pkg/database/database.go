package database

import (
	"io"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("key not found")

// Database stores opaque snapshots under string keys. A Put overwrites any
// previous value stored under the same key.
type Database interface {
	io.Closer
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(keys ...string) error
}
