/*
Package sparse implements a simple type for sparse integer matrices.
It is used for parser tables (GOTO-table and ACTION-table).

Rows are stored separately, each as a slice of (column, value) entries
sorted by column. Parser tables are written once and read often, and
most rows hold only a handful of entries, so lookups are binary searches
over short slices.


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
)

// IntMatrix is a type for a sparse matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value, returns the null-value
//     v := M.Value(2, 3)             // returns 4711
//     old := M.Set(2, 3, 123)        // overwrite, returns 4711
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     v = M.Value(9, 9)              // returns -1, i.e. the null-value
//
// Setting a position to the null-value removes it.
type IntMatrix struct {
	rows    [][]entry
	colcnt  int
	count   int
	nullval int32
}

type entry struct {
	col   int
	value int32
}

// NewIntMatrix creates a new matrix for int32, size m x n. The 3rd argument is a
// null-value, indicating empty entries (use DefaultNullValue if you haven't any
// specific requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		rows:    make([][]entry, m),
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count.
func (m *IntMatrix) M() int {
	return len(m.rows)
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of non-null positions in the matrix.
func (m *IntMatrix) ValueCount() int {
	return m.count
}

// find returns the index of column j in row i, and whether it is present.
func (m *IntMatrix) find(i, j int) (int, bool) {
	row := m.rows[i]
	k := sort.Search(len(row), func(k int) bool { return row[k].col >= j })
	return k, k < len(row) && row[k].col == j
}

func (m *IntMatrix) check(i, j int) {
	if i < 0 || i >= len(m.rows) || j < 0 || j >= m.colcnt {
		panic(fmt.Sprintf("sparse: index (%d,%d) out of range %dx%d", i, j, len(m.rows), m.colcnt))
	}
}

// Value returns the value at position (i,j), or NullValue.
func (m *IntMatrix) Value(i, j int) int32 {
	m.check(i, j)
	if k, ok := m.find(i, j); ok {
		return m.rows[i][k].value
	}
	return m.nullval
}

// Set sets a value at position (i,j) and returns the value previously stored
// there (the null-value if the position was empty).
func (m *IntMatrix) Set(i, j int, value int32) int32 {
	m.check(i, j)
	k, ok := m.find(i, j)
	if ok {
		old := m.rows[i][k].value
		if value == m.nullval {
			m.rows[i] = append(m.rows[i][:k], m.rows[i][k+1:]...)
			m.count--
		} else {
			m.rows[i][k].value = value
		}
		return old
	}
	if value == m.nullval {
		return m.nullval
	}
	row := append(m.rows[i], entry{})
	copy(row[k+1:], row[k:])
	row[k] = entry{col: j, value: value}
	m.rows[i] = row
	m.count++
	return m.nullval
}

// EachInRow calls f for every non-null position of row i, in column order.
func (m *IntMatrix) EachInRow(i int, f func(j int, value int32)) {
	for _, e := range m.rows[i] {
		f(e.col, e.value)
	}
}

// RowCount returns the number of non-null positions in row i.
func (m *IntMatrix) RowCount(i int) int {
	return len(m.rows[i])
}
