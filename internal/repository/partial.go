package repository

import (
	"fmt"
	"strings"
)

// UpdateSet is an ordered collection of column assignments for a
// partial UPDATE. Columns compile to positional placeholders in the
// order they were added.
//
// UpdateSet performs no identifier sanitization: column names are
// emitted verbatim into SQL. Callers must restrict columns to a
// known-safe allow-list before adding them.
type UpdateSet struct {
	cols []string
	vals []any
}

// Set appends a column assignment. Setting the same column twice
// appends a second assignment; callers own key uniqueness.
func (u *UpdateSet) Set(col string, val any) *UpdateSet {
	u.cols = append(u.cols, col)
	u.vals = append(u.vals, val)
	return u
}

// Len reports the number of assignments.
func (u *UpdateSet) Len() int {
	return len(u.cols)
}

// Clause compiles the assignments into a SET fragment with contiguous
// 1-based placeholders, plus the value list matching them in order.
//
//	{name: "Aliya", age: 32} => "name=$1, age=$2", ["Aliya", 32]
//
// An empty set compiles to an empty fragment; rejecting empty updates
// is the caller's responsibility.
func (u *UpdateSet) Clause() (string, []any) {
	assignments := make([]string, len(u.cols))
	for i, col := range u.cols {
		assignments[i] = fmt.Sprintf("%s=$%d", col, i+1)
	}
	return strings.Join(assignments, ", "), u.vals
}

// Values returns the assignment values in insertion order.
func (u *UpdateSet) Values() []any {
	return u.vals
}
