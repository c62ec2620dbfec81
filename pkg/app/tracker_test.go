package app

import (
	"sync"
	"testing"

	"github.com/openswoop/cgpa/pkg/database"
	"github.com/openswoop/cgpa/pkg/grade"
	"github.com/openswoop/cgpa/pkg/session"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errDisk = errors.New("disk on fire")

// brokenDB fails every read and/or write.
type brokenDB struct {
	*database.Memory
	failGet, failPut bool
}

func (b *brokenDB) Get(key string) ([]byte, error) {
	if b.failGet {
		return nil, errDisk
	}
	return b.Memory.Get(key)
}

func (b *brokenDB) Put(key string, value []byte) error {
	if b.failPut {
		return errDisk
	}
	return b.Memory.Put(key, value)
}

func newBroken(failGet, failPut bool) *brokenDB {
	return &brokenDB{Memory: database.NewMemory(), failGet: failGet, failPut: failPut}
}

func TestLoad(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		res := Load(database.NewMemory())
		assert.Equal(t, DefaultAbsent, res.Outcome)
		assert.NoError(t, res.Err)
		assert.Equal(t, session.Default().Semesters, res.Session.Semesters)
	})

	t.Run("empty array", func(t *testing.T) {
		db := database.NewMemory()
		require.NoError(t, db.Put(StorageKey, []byte(`[]`)))
		res := Load(db)
		assert.Equal(t, DefaultAbsent, res.Outcome)
		assert.Len(t, res.Session.Semesters, 1)
	})

	t.Run("corrupt", func(t *testing.T) {
		db := database.NewMemory()
		require.NoError(t, db.Put(StorageKey, []byte(`{{{`)))
		res := Load(db)
		assert.Equal(t, DefaultCorrupt, res.Outcome)
		assert.True(t, errors.Is(res.Err, session.ErrInvalidFile))
		assert.Equal(t, session.Default().Semesters, res.Session.Semesters)
	})

	t.Run("unavailable", func(t *testing.T) {
		res := Load(newBroken(true, false))
		assert.Equal(t, DefaultUnavailable, res.Outcome)
		assert.True(t, errors.Is(res.Err, errDisk))
	})

	t.Run("restored", func(t *testing.T) {
		db := database.NewMemory()
		require.NoError(t, db.Put(StorageKey, []byte(`[{"id": 5, "subjects": [{"id": 9, "name": "Art", "credits": 2, "grade": "A", "marks": "", "isFR": false}]}]`)))
		res := Load(db)
		require.Equal(t, Restored, res.Outcome)
		require.Len(t, res.Session.Semesters, 1)

		next := res.Session.AddSemester()
		assert.Equal(t, 6, next.Semesters[1].ID)
		assert.Equal(t, 10, next.Semesters[1].Subjects[0].ID)
	})
}

func TestNewTracker_SavesOnStartup(t *testing.T) {
	db := database.NewMemory()
	_, res := NewTracker(db, zap.NewNop())
	assert.Equal(t, DefaultAbsent, res.Outcome)

	data, err := db.Get(StorageKey)
	require.NoError(t, err)
	s, err := session.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, session.Default().Semesters, s.Semesters)
}

func TestTracker_ActionsPersist(t *testing.T) {
	db := database.NewMemory()
	tr, _ := NewTracker(db, zap.NewNop())

	summary, err := tr.UpdateSubject(1, 1, session.FieldGrade, "A")
	require.NoError(t, err)
	assert.Equal(t, 9.0, summary.Overall.CGPA)

	summary = tr.AddSemester()
	require.Len(t, summary.Semesters, 2)
	assert.Equal(t, 2, summary.Semesters[1].ID)

	summary, err = tr.AddSubject(2)
	require.NoError(t, err)
	assert.Len(t, summary.Semesters[1].Subjects, 3)

	summary, err = tr.RemoveSubject(2, 4)
	require.NoError(t, err)
	assert.Len(t, summary.Semesters[1].Subjects, 2)

	// a second tracker on the same store sees every change
	again, res := NewTracker(db, zap.NewNop())
	assert.Equal(t, Restored, res.Outcome)
	assert.Equal(t, tr.Session().Semesters, again.Session().Semesters)

	summary, err = tr.RemoveSemester(2)
	require.NoError(t, err)
	assert.Len(t, summary.Semesters, 1)
}

func TestTracker_Errors(t *testing.T) {
	tr, _ := NewTracker(database.NewMemory(), zap.NewNop())
	before := tr.Session()

	summary, err := tr.RemoveSemester(42)
	assert.True(t, errors.Is(err, session.ErrSemesterNotFound))
	assert.Len(t, summary.Semesters, 1)

	_, err = tr.UpdateSubject(1, 42, session.FieldName, "x")
	assert.True(t, errors.Is(err, session.ErrSubjectNotFound))

	assert.Equal(t, before.Semesters, tr.Session().Semesters)
}

func TestTracker_PersistFailureIsSwallowed(t *testing.T) {
	tr, _ := NewTracker(newBroken(false, true), zap.NewNop())

	summary, err := tr.UpdateSubject(1, 1, session.FieldMarks, "92")
	require.NoError(t, err)
	assert.Equal(t, 10.0, summary.Overall.CGPA)
	assert.Equal(t, grade.NewNumber(92), tr.Session().Semesters[0].Subjects[0].Marks)
}

func TestTracker_Reset(t *testing.T) {
	db := database.NewMemory()
	require.NoError(t, db.Put(LegacyStorageKey, []byte(`old`)))
	tr, _ := NewTracker(db, zap.NewNop())
	tr.AddSemester()
	tr.AddSemester()

	summary := tr.Reset()
	require.Len(t, summary.Semesters, 1)
	assert.Equal(t, []int{1, 2, 3}, []int{
		summary.Semesters[0].Subjects[0].ID,
		summary.Semesters[0].Subjects[1].ID,
		summary.Semesters[0].Subjects[2].ID,
	})

	_, err := db.Get(LegacyStorageKey)
	assert.True(t, errors.Is(err, database.ErrNotFound))
	data, err := db.Get(StorageKey)
	require.NoError(t, err)
	s, err := session.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, session.Default().Semesters, s.Semesters)
}

func TestTracker_ImportExport(t *testing.T) {
	tr, _ := NewTracker(database.NewMemory(), zap.NewNop())
	_, err := tr.UpdateSubject(1, 2, session.FieldName, "Logic")
	require.NoError(t, err)
	backup, err := tr.Export()
	require.NoError(t, err)

	other, _ := NewTracker(database.NewMemory(), zap.NewNop())
	other.AddSemester()

	summary, err := other.Import(backup)
	require.NoError(t, err)
	require.Len(t, summary.Semesters, 1)
	assert.Equal(t, "Logic", summary.Semesters[0].Subjects[1].Name)

	// counters follow the imported data
	summary = other.AddSemester()
	assert.Equal(t, 2, summary.Semesters[1].ID)
	assert.Equal(t, 4, summary.Semesters[1].Subjects[0].ID)

	before := other.Session()
	_, err = other.Import([]byte(`not json`))
	assert.True(t, errors.Is(err, session.ErrInvalidFile))
	assert.Equal(t, before.Semesters, other.Session().Semesters)
}

func TestTracker_Replace(t *testing.T) {
	tr, _ := NewTracker(database.NewMemory(), zap.NewNop())
	summary := tr.Replace(session.New([]session.Semester{{ID: 7, Subjects: []session.Subject{{ID: 30, Credits: grade.NewNumber(3), Grade: grade.B}}}}))
	assert.InDelta(t, 7.0, summary.Overall.CGPA, 1e-9)

	summary, err := tr.AddSubject(7)
	require.NoError(t, err)
	assert.Equal(t, 31, summary.Semesters[0].Subjects[1].ID)
}

func TestTracker_Concurrent(t *testing.T) {
	tr, _ := NewTracker(database.NewMemory(), zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.AddSemester()
		}()
	}
	wg.Wait()

	s := tr.Session()
	assert.Len(t, s.Semesters, 21)
	seen := make(map[int]bool)
	for _, sem := range s.Semesters {
		assert.False(t, seen[sem.ID], "semester id %d reused", sem.ID)
		seen[sem.ID] = true
	}
}
