package sparse

import "testing"

func TestSetAndGet(t *testing.T) {
	M := NewIntMatrix(4, 5, DefaultNullValue)
	if old := M.Set(2, 3, 4711); old != DefaultNullValue {
		t.Errorf("expected null value for empty position, got %d", old)
	}
	if v := M.Value(2, 3); v != 4711 {
		t.Errorf("expected 4711 at (2,3), got %d", v)
	}
	if v := M.Value(3, 3); v != M.NullValue() {
		t.Errorf("expected null value at (3,3), got %d", v)
	}
}

func TestOverwriteReturnsPrevious(t *testing.T) {
	M := NewIntMatrix(2, 2, -1)
	M.Set(0, 1, 7)
	if old := M.Set(0, 1, 8); old != 7 {
		t.Errorf("expected overwritten value 7, got %d", old)
	}
	if M.ValueCount() != 1 {
		t.Errorf("expected 1 value, have %d", M.ValueCount())
	}
	M.Set(0, 1, -1)
	if M.ValueCount() != 0 || M.Value(0, 1) != -1 {
		t.Errorf("setting the null value should clear the position")
	}
}

func TestRowOrder(t *testing.T) {
	M := NewIntMatrix(1, 10, 0)
	for _, j := range []int{7, 2, 9, 0, 5} {
		M.Set(0, j, int32(j+100))
	}
	last := -1
	M.EachInRow(0, func(j int, v int32) {
		if j <= last {
			t.Errorf("columns out of order: %d after %d", j, last)
		}
		if v != int32(j+100) {
			t.Errorf("wrong value %d at column %d", v, j)
		}
		last = j
	})
	if M.RowCount(0) != 5 {
		t.Errorf("expected 5 entries in row 0, have %d", M.RowCount(0))
	}
}

func TestOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for index out of range")
		}
	}()
	M := NewIntMatrix(1, 1, 0)
	M.Value(1, 0)
}
