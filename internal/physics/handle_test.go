package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleDestroyOnce(t *testing.T) {
	b := NewRigidBody(BodyOptions{})
	h := NewHandle(b)
	require.True(t, h.Present())

	var seen []Body
	h.OnDestroy(func(last Body) { seen = append(seen, last) })

	assert.True(t, h.Destroy())
	assert.False(t, h.Destroy(), "second destroy is a no-op")
	assert.False(t, h.Present())
	require.Len(t, seen, 1)
	assert.Same(t, b, seen[0])
}

func TestHandleNilAndEmpty(t *testing.T) {
	var h *Handle
	assert.False(t, h.Present())
	assert.False(t, h.Destroy())

	assert.False(t, NewHandle(nil).Present())
	assert.False(t, EmptyHandle().Present())
}

func TestHandleGet(t *testing.T) {
	b := NewRigidBody(BodyOptions{})
	h := NewHandle(b)

	got := h.Get()
	require.True(t, h.Present())
	assert.Same(t, b, got.Value)
}
