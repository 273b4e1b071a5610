package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateSetClause(t *testing.T) {
	set := &UpdateSet{}
	set.Set("name", "Aliya").Set("age", 32)

	clause, values := set.Clause()

	assert.Equal(t, "name=$1, age=$2", clause)
	assert.Equal(t, []any{"Aliya", 32}, values)
}

func TestUpdateSetSingleColumn(t *testing.T) {
	set := &UpdateSet{}
	set.Set("title", "Engineer")

	clause, values := set.Clause()

	assert.Equal(t, "title=$1", clause)
	assert.Equal(t, []any{"Engineer"}, values)
}

func TestUpdateSetPlaceholderNumbering(t *testing.T) {
	// Placeholders must be contiguous, 1-based, and follow insertion
	// order for any number of columns.
	set := &UpdateSet{}
	want := make([]any, 0, 10)
	for i := 0; i < 10; i++ {
		set.Set(fmt.Sprintf("col%d", i), i)
		want = append(want, i)
	}

	clause, values := set.Clause()

	require.Equal(t, 10, set.Len())
	assert.Equal(t, want, values)
	for i := 0; i < 10; i++ {
		assert.Contains(t, clause, fmt.Sprintf("col%d=$%d", i, i+1))
	}
}

func TestUpdateSetEmpty(t *testing.T) {
	set := &UpdateSet{}

	clause, values := set.Clause()

	assert.Equal(t, 0, set.Len())
	assert.Empty(t, clause)
	assert.Empty(t, values)
}

func TestUpdateSetPreservesInsertionOrder(t *testing.T) {
	forward := &UpdateSet{}
	forward.Set("a", 1).Set("b", 2)

	reverse := &UpdateSet{}
	reverse.Set("b", 2).Set("a", 1)

	forwardClause, _ := forward.Clause()
	reverseClause, _ := reverse.Clause()

	assert.Equal(t, "a=$1, b=$2", forwardClause)
	assert.Equal(t, "b=$1, a=$2", reverseClause)
}

func TestUpdateSetValues(t *testing.T) {
	set := &UpdateSet{}
	set.Set("x", "one").Set("y", nil)

	assert.Equal(t, []any{"one", nil}, set.Values())
}
