package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_Toggle(t *testing.T) {
	s := NewSelection()

	assert.True(t, s.Toggle(1))
	assert.True(t, s.Has(1))
	assert.Equal(t, 1, s.Count())

	assert.False(t, s.Toggle(1))
	assert.False(t, s.Has(1))
	assert.Equal(t, 0, s.Count())
}

func TestSelection_ToggleAll(t *testing.T) {
	s := NewSelection()
	filtered := []uint64{1, 2, 3}

	// nothing selected yet: select everything
	s.ToggleAll(filtered)
	assert.True(t, s.AllSelected(filtered))
	assert.Equal(t, 3, s.Count())

	// everything selected: deselect everything
	s.ToggleAll(filtered)
	assert.False(t, s.AllSelected(filtered))
	assert.Equal(t, 0, s.Count())
}

func TestSelection_ToggleAllPartial(t *testing.T) {
	s := NewSelection()
	filtered := []uint64{1, 2, 3}

	s.Toggle(2)

	// a partial selection completes instead of clearing
	s.ToggleAll(filtered)
	assert.True(t, s.AllSelected(filtered))
}

func TestSelection_ToggleAllLeavesOutsideIDsAlone(t *testing.T) {
	s := NewSelection()

	s.Toggle(99)
	s.ToggleAll([]uint64{1, 2})

	assert.True(t, s.Has(99))
	assert.Equal(t, 3, s.Count())

	s.ToggleAll([]uint64{1, 2})
	assert.True(t, s.Has(99))
	assert.Equal(t, 1, s.Count())
}

func TestSelection_AllSelectedEmptyFilter(t *testing.T) {
	s := NewSelection()
	assert.False(t, s.AllSelected(nil))
}

func TestSelection_Clear(t *testing.T) {
	s := NewSelection()
	s.Toggle(1)
	s.Toggle(2)

	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.False(t, s.Has(1))
}
