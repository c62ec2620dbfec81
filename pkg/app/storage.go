package app

import (
	"github.com/openswoop/cgpa/pkg/database"
	"github.com/openswoop/cgpa/pkg/session"
	"github.com/pkg/errors"
)

const (
	// StorageKey holds the serialized session.
	StorageKey = "cgpa_neon_v1"
	// LegacyStorageKey was written by an older release; reset clears it too.
	LegacyStorageKey = "cgpa_v2_data"
)

// LoadOutcome tells how the session was obtained at startup.
type LoadOutcome int

const (
	Restored LoadOutcome = iota
	DefaultAbsent
	DefaultCorrupt
	DefaultUnavailable
)

func (o LoadOutcome) String() string {
	switch o {
	case Restored:
		return "restored"
	case DefaultAbsent:
		return "default (no snapshot)"
	case DefaultCorrupt:
		return "default (corrupt snapshot)"
	case DefaultUnavailable:
		return "default (storage unavailable)"
	}
	return "unknown"
}

type LoadResult struct {
	Session session.Session
	Outcome LoadOutcome
	Err     error
}

// Load reads the persisted session. Any failure falls back to the default
// session; the outcome records why.
func Load(db database.Database) LoadResult {
	data, err := db.Get(StorageKey)
	if errors.Is(err, database.ErrNotFound) {
		return LoadResult{Session: session.Default(), Outcome: DefaultAbsent}
	}
	if err != nil {
		return LoadResult{Session: session.Default(), Outcome: DefaultUnavailable, Err: err}
	}

	s, err := session.Decode(data)
	if err != nil {
		return LoadResult{Session: session.Default(), Outcome: DefaultCorrupt, Err: err}
	}
	if s.IsEmpty() {
		return LoadResult{Session: session.Default(), Outcome: DefaultAbsent}
	}
	return LoadResult{Session: s, Outcome: Restored}
}

func save(db database.Database, s session.Session) error {
	data, err := session.Encode(s)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	return errors.Wrap(db.Put(StorageKey, data), "saving session")
}
