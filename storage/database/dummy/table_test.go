package dummydb

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   int
	Key  string
	Note string
}

func newRecordTable() *table[record] {
	return newTable(func(r *record) *int { return &r.ID })
}

func TestTable_insertReusesMaxID(t *testing.T) {
	tbl := newRecordTable()

	first := tbl.insert(record{Key: "a"})
	second := tbl.insert(record{Key: "b"})
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("insert() ids = %d, %d; want 1, 2", first.ID, second.ID)
	}

	require.True(t, tbl.delete(2))
	if got := tbl.insert(record{Key: "c"}); got.ID != 2 {
		t.Errorf("insert() after deleting max id = %d; want 2", got.ID)
	}

	require.True(t, tbl.delete(1))
	if got := tbl.insert(record{Key: "d"}); got.ID != 3 {
		t.Errorf("insert() after deleting a lower id = %d; want 3", got.ID)
	}
}

func TestTable_keepsInsertionOrder(t *testing.T) {
	tbl := newRecordTable()
	for _, k := range []string{"x", "y", "z"} {
		tbl.insert(record{Key: k})
	}
	tbl.delete(2)
	tbl.insert(record{Key: "w"})

	var keys []string
	for _, r := range tbl.all() {
		keys = append(keys, r.Key)
	}
	assert.Equal(t, []string{"x", "z", "w"}, keys)
}

func TestTable_upsert(t *testing.T) {
	tbl := newRecordTable()
	sameKey := func(a, b record) bool { return a.Key == b.Key }

	a := tbl.upsert(record{Key: "a", Note: "v1"}, sameKey)
	tbl.upsert(record{Key: "b"}, sameKey)
	a2 := tbl.upsert(record{ID: 99, Key: "a", Note: "v2"}, sameKey)

	assert.Equal(t, a.ID, a2.ID)
	rows := tbl.all()
	require.Len(t, rows, 2)
	assert.Equal(t, "v2", rows[0].Note)
}

func TestTable_upsertWithoutPK(t *testing.T) {
	tbl := newTable[record](nil)
	sameKey := func(a, b record) bool { return a.Key == b.Key }

	tbl.upsert(record{Key: "a", Note: "v1"}, sameKey)
	tbl.upsert(record{Key: "a", Note: "v2"}, sameKey)
	tbl.upsert(record{Key: "b"}, sameKey)

	rows := tbl.all()
	require.Len(t, rows, 2)
	assert.Equal(t, record{Key: "a", Note: "v2"}, rows[0])
}

func TestTable_updateAndDeleteWhere(t *testing.T) {
	tbl := newRecordTable()
	for _, k := range []string{"a", "b", "a"} {
		tbl.insert(record{Key: k})
	}

	got, ok := tbl.update(2, func(r *record) { r.Note = "seen"; r.ID = 42 })
	require.True(t, ok)
	assert.Equal(t, record{ID: 2, Key: "b", Note: "seen"}, got)

	_, ok = tbl.update(7, func(r *record) {})
	assert.False(t, ok)

	n := tbl.updateWhere(func(r *record) bool {
		if r.Key != "a" {
			r.Note = "discarded"
			return false
		}
		r.Note = "kept"
		return true
	})
	assert.Equal(t, 2, n)
	b, _ := tbl.get(2)
	assert.Equal(t, "seen", b.Note)

	assert.Equal(t, 2, tbl.deleteWhere(func(r record) bool { return r.Key == "a" }))
	assert.Len(t, tbl.all(), 1)
	assert.False(t, tbl.delete(1))
}

func TestTable_modify(t *testing.T) {
	tbl := newRecordTable()
	tbl.insert(record{Key: "a", Note: "v1"})
	errStop := errors.New("stop")

	_, found, err := tbl.modify(1, func(r *record) error {
		r.Note = "dropped"
		return errStop
	})
	assert.True(t, found)
	assert.Equal(t, errStop, err)
	a, _ := tbl.get(1)
	assert.Equal(t, "v1", a.Note)

	got, found, err := tbl.modify(1, func(r *record) error { r.Note = "v2"; return nil })
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v2", got.Note)

	_, found, _ = tbl.modify(9, func(r *record) error { return nil })
	assert.False(t, found)
}

func TestTable_insertUnless(t *testing.T) {
	tbl := newRecordTable()
	sameKey := func(k string) func(record) bool { return func(r record) bool { return r.Key == k } }

	var wg sync.WaitGroup
	var mu sync.Mutex
	inserted := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := tbl.insertUnless(record{Key: "a"}, sameKey("a")); ok {
				mu.Lock()
				inserted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, inserted)
	assert.Len(t, tbl.all(), 1)

	existing, ok := tbl.insertUnless(record{Key: "a", Note: "again"}, sameKey("a"))
	assert.False(t, ok)
	assert.Equal(t, record{ID: 1, Key: "a"}, existing)
}

func TestTable_apply(t *testing.T) {
	tbl := newRecordTable()
	isA := func(r record) bool { return r.Key == "a" }
	appendX := func(r *record) error { r.Note += "x"; return nil }

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = tbl.apply(isA, record{Key: "a"}, appendX)
		}()
	}
	wg.Wait()

	rows := tbl.all()
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].ID)
	assert.Len(t, rows[0].Note, 50)

	_, err := tbl.apply(func(record) bool { return false }, record{Key: "b"}, func(*record) error { return errors.New("no") })
	assert.Error(t, err)
	assert.Len(t, tbl.all(), 1)
}

func TestSeed(t *testing.T) {
	db, err := Open()
	require.NoError(t, err)
	require.NoError(t, Seed(db))

	assert.NotEmpty(t, db.students.all())
	assert.Len(t, db.vehicles.all(), 4)
	for _, v := range db.vehicles.all() {
		assert.False(t, v.LastUpdated.IsZero(), "vehicle %d has no last update", v.ID)
	}
	p, ok := db.participants.get(5)
	require.True(t, ok)
	assert.Equal(t, []string{"Drama", "Group Dance"}, []string(p.Events))
}
