package app

import (
	"sync"

	"github.com/openswoop/cgpa/pkg/database"
	"github.com/openswoop/cgpa/pkg/report"
	"github.com/openswoop/cgpa/pkg/session"
	"go.uber.org/zap"
)

// Tracker owns the live session. Every action mutates the session, writes
// the snapshot and returns the recomputed summary. Snapshot write failures
// are logged and otherwise ignored.
type Tracker struct {
	mutex   sync.Mutex
	db      database.Database
	log     *zap.Logger
	session session.Session
}

func NewTracker(db database.Database, log *zap.Logger) (*Tracker, LoadResult) {
	res := Load(db)
	fields := []zap.Field{zap.Stringer("outcome", res.Outcome), zap.Int("semesters", len(res.Session.Semesters))}
	if res.Err != nil {
		log.Warn("Falling back to the default session", append(fields, zap.Error(res.Err))...)
	} else {
		log.Debug("Loaded session", fields...)
	}

	t := &Tracker{db: db, log: log, session: res.Session}
	t.persist()
	return t, res
}

func (t *Tracker) Session() session.Session {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.session
}

func (t *Tracker) Summary() report.Summary {
	return report.Summarize(t.Session())
}

func (t *Tracker) persist() {
	if err := save(t.db, t.session); err != nil {
		t.log.Warn("Unable to save session", zap.Error(err))
	}
}

func (t *Tracker) apply(action string, mutate func(session.Session) (session.Session, error)) (report.Summary, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	next, err := mutate(t.session)
	if err != nil {
		return report.Summarize(t.session), err
	}
	t.session = next
	t.persist()
	t.log.Debug("Applied action", zap.String("action", action))
	return report.Summarize(t.session), nil
}

func (t *Tracker) UpdateSubject(semesterID, subjectID int, field session.Field, value string) (report.Summary, error) {
	return t.apply("update subject", func(s session.Session) (session.Session, error) {
		return s.UpdateSubject(semesterID, subjectID, field, value)
	})
}

func (t *Tracker) AddSubject(semesterID int) (report.Summary, error) {
	return t.apply("add subject", func(s session.Session) (session.Session, error) {
		return s.AddSubject(semesterID)
	})
}

func (t *Tracker) RemoveSubject(semesterID, subjectID int) (report.Summary, error) {
	return t.apply("remove subject", func(s session.Session) (session.Session, error) {
		return s.RemoveSubject(semesterID, subjectID)
	})
}

func (t *Tracker) AddSemester() report.Summary {
	summary, _ := t.apply("add semester", func(s session.Session) (session.Session, error) {
		return s.AddSemester(), nil
	})
	return summary
}

func (t *Tracker) RemoveSemester(id int) (report.Summary, error) {
	return t.apply("remove semester", func(s session.Session) (session.Session, error) {
		return s.RemoveSemester(id)
	})
}

// Reset clears the stored snapshots and starts over from the default session.
func (t *Tracker) Reset() report.Summary {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if err := t.db.Delete(StorageKey, LegacyStorageKey); err != nil {
		t.log.Warn("Unable to clear stored session", zap.Error(err))
	}
	res := Load(t.db)
	t.session = res.Session
	t.persist()
	t.log.Info("Session reset")
	return report.Summarize(t.session)
}

// Import replaces the session with a backup produced by Export. The session
// is left untouched when the data cannot be parsed.
func (t *Tracker) Import(data []byte) (report.Summary, error) {
	return t.apply("import", func(session.Session) (session.Session, error) {
		return session.Decode(data)
	})
}

// Replace swaps in a session built elsewhere, such as from a CSV report or an
// HTML transcript.
func (t *Tracker) Replace(s session.Session) report.Summary {
	summary, _ := t.apply("replace", func(session.Session) (session.Session, error) {
		return session.New(s.Semesters), nil
	})
	return summary
}

func (t *Tracker) Export() ([]byte, error) {
	return session.Encode(t.Session())
}
