package dummydb

import (
	"sync"

	"github.com/trezcool/shule/core"
)

// table is an ordered in-memory collection. Rows keep insertion order.
// pk points at a row's integer ID; it is nil for rows keyed by their fields.
type table[T any] struct {
	sync.RWMutex
	rows []T
	pk   func(row *T) *int
}

func newTable[T any](pk func(row *T) *int) *table[T] {
	return &table[T]{pk: pk}
}

// nextID must be called with the write lock held.
func (t *table[T]) nextID() int {
	ids := make([]int, 0, len(t.rows))
	for i := range t.rows {
		ids = append(ids, *t.pk(&t.rows[i]))
	}
	return core.NextID(ids...)
}

func (t *table[T]) insert(row T) T {
	t.Lock()
	defer t.Unlock()

	if t.pk != nil {
		*t.pk(&row) = t.nextID()
	}
	t.rows = append(t.rows, row)
	return row
}

// upsert replaces the first row same reports true for, keeping its ID, or inserts row.
func (t *table[T]) upsert(row T, same func(a, b T) bool) T {
	t.Lock()
	defer t.Unlock()

	for i := range t.rows {
		if same(t.rows[i], row) {
			if t.pk != nil {
				*t.pk(&row) = *t.pk(&t.rows[i])
			}
			t.rows[i] = row
			return row
		}
	}
	if t.pk != nil {
		*t.pk(&row) = t.nextID()
	}
	t.rows = append(t.rows, row)
	return row
}

// insertUnless inserts row unless an existing row conflicts with it.
func (t *table[T]) insertUnless(row T, conflict func(T) bool) (T, bool) {
	t.Lock()
	defer t.Unlock()

	for _, r := range t.rows {
		if conflict(r) {
			return r, false
		}
	}
	if t.pk != nil {
		*t.pk(&row) = t.nextID()
	}
	t.rows = append(t.rows, row)
	return row, true
}

// apply runs fn on a copy of the first row match reports true for, or of init when there is none,
// then stores the result. Nothing is stored when fn fails. It all happens under the write lock.
func (t *table[T]) apply(match func(T) bool, init T, fn func(row *T) error) (T, error) {
	t.Lock()
	defer t.Unlock()

	i := -1
	row := init
	for j := range t.rows {
		if match(t.rows[j]) {
			i, row = j, t.rows[j]
			break
		}
	}
	if err := fn(&row); err != nil {
		var zero T
		return zero, err
	}

	if i >= 0 {
		if t.pk != nil {
			*t.pk(&row) = *t.pk(&t.rows[i])
		}
		t.rows[i] = row
		return row, nil
	}
	if t.pk != nil {
		*t.pk(&row) = t.nextID()
	}
	t.rows = append(t.rows, row)
	return row, nil
}

func (t *table[T]) all() []T {
	return t.filter(nil)
}

// filter returns copies of the rows matching keep, every row when keep is nil.
func (t *table[T]) filter(keep func(T) bool) []T {
	t.RLock()
	defer t.RUnlock()

	rows := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		if keep == nil || keep(row) {
			rows = append(rows, row)
		}
	}
	return rows
}

func (t *table[T]) find(match func(T) bool) (T, bool) {
	t.RLock()
	defer t.RUnlock()

	for _, row := range t.rows {
		if match(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

func (t *table[T]) get(id int) (T, bool) {
	t.RLock()
	defer t.RUnlock()

	if i := t.index(id); i >= 0 {
		return t.rows[i], true
	}
	var zero T
	return zero, false
}

// update applies fn to the row with id under the write lock.
func (t *table[T]) update(id int, fn func(row *T)) (T, bool) {
	row, ok, _ := t.modify(id, func(row *T) error {
		fn(row)
		return nil
	})
	return row, ok
}

// modify applies fn to a copy of the row with id under the write lock and keeps it unless fn fails.
func (t *table[T]) modify(id int, fn func(row *T) error) (T, bool, error) {
	t.Lock()
	defer t.Unlock()

	var zero T
	i := t.index(id)
	if i < 0 {
		return zero, false, nil
	}
	row := t.rows[i]
	if err := fn(&row); err != nil {
		return zero, true, err
	}
	*t.pk(&row) = id // the primary key is immutable
	t.rows[i] = row
	return row, true, nil
}

// updateWhere applies fn to every row under the write lock.
// Changes are kept only for rows fn returns true for.
func (t *table[T]) updateWhere(fn func(row *T) bool) int {
	t.Lock()
	defer t.Unlock()

	var n int
	for i := range t.rows {
		row := t.rows[i]
		if fn(&row) {
			t.rows[i] = row
			n++
		}
	}
	return n
}

func (t *table[T]) delete(id int) bool {
	t.Lock()
	defer t.Unlock()

	i := t.index(id)
	if i < 0 {
		return false
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return true
}

func (t *table[T]) deleteWhere(match func(T) bool) int {
	t.Lock()
	defer t.Unlock()

	kept := t.rows[:0]
	for _, row := range t.rows {
		if !match(row) {
			kept = append(kept, row)
		}
	}
	n := len(t.rows) - len(kept)
	var zero T
	for i := len(kept); i < len(t.rows); i++ {
		t.rows[i] = zero // release references held by the tail
	}
	t.rows = kept
	return n
}

// load replaces the table's rows as they are, IDs included.
func (t *table[T]) load(rows []T) {
	t.Lock()
	defer t.Unlock()
	t.rows = append([]T(nil), rows...)
}

// index must be called with a lock held.
func (t *table[T]) index(id int) int {
	for i := range t.rows {
		if *t.pk(&t.rows[i]) == id {
			return i
		}
	}
	return -1
}
