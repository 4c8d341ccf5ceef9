package bulkops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_SelectionSet_Toggle(t *testing.T) {
	sel := NewSelectionSet()
	assert.Equal(t, 0, sel.Len())

	sel.Toggle("a")
	assert.True(t, sel.Has("a"))

	sel.Toggle("b")
	sel.Toggle("a") // toggling again deselects
	assert.False(t, sel.Has("a"))
	assert.Equal(t, []string{"b"}, sel.IDs())
}

func Test_SelectionSet_SelectAll(t *testing.T) {
	view := []string{"c", "a", "b"}

	sel := NewSelectionSet()
	sel.Toggle("a")

	// partial selection: select-all selects the whole view
	sel.SelectAll(view)
	assert.Equal(t, []string{"a", "b", "c"}, sel.IDs())

	// everything already selected: select-all clears
	sel.SelectAll(view)
	assert.Equal(t, 0, sel.Len())
}

func Test_SelectionSet_Prune(t *testing.T) {
	sel := NewSelectionSet()
	sel.Toggle("a")
	sel.Toggle("b")
	sel.Toggle("c")

	// the filtered view narrowed; selection follows
	sel.Prune([]string{"b", "c", "d"})
	assert.Equal(t, []string{"b", "c"}, sel.IDs())
}
