package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingOwner struct {
	Hub
	calls []string
}

func (o *recordingOwner) HandleEvent(ev Event, args ...any) {
	o.calls = append(o.calls, "default:"+string(ev))
}

func TestHubDefaultHandlerRunsFirst(t *testing.T) {
	o := &recordingOwner{}
	o.Bind(o)

	o.On("ping", func(src any, args ...any) {
		o.calls = append(o.calls, "listener")
	})

	require.NoError(t, o.Emit("ping"))
	assert.Equal(t, []string{"default:ping", "listener"}, o.calls)
}

func TestHubListenersFireInRegistrationOrder(t *testing.T) {
	var h Hub
	var order []int

	for i := range 4 {
		h.On("tick", func(src any, args ...any) {
			order = append(order, i)
		})
	}

	require.NoError(t, h.Emit("tick"))
	assert.Equal(t, []int{0, 1, 2, 3}, order)
}

func TestHubPassesSourceAndArgs(t *testing.T) {
	o := &recordingOwner{}
	o.Bind(o)

	var gotSrc any
	var gotArgs []any
	o.On("score", func(src any, args ...any) {
		gotSrc = src
		gotArgs = args
	})

	require.NoError(t, o.Emit("score", 40, "wide"))
	assert.Same(t, o, gotSrc)
	assert.Equal(t, []any{40, "wide"}, gotArgs)
}

func TestHubDuplicateRegistrationsBothFire(t *testing.T) {
	var h Hub
	count := 0
	fn := func(src any, args ...any) { count++ }

	h.On("x", fn, "dup")
	h.On("x", fn, "dup")

	require.NoError(t, h.Emit("x"))
	assert.Equal(t, 2, count)
}

func TestHubOffByIdentifier(t *testing.T) {
	var h Hub
	fired := false

	h.On("delete", func(src any, args ...any) { fired = true }, "score-tracker")
	h.On("delete", func(src any, args ...any) { fired = true }, "score-tracker")
	h.Off("delete", "score-tracker")

	assert.Equal(t, 0, h.Count("delete"))
	assert.NotPanics(t, func() {
		require.NoError(t, h.Emit("delete"))
	})
	assert.False(t, fired)
}

func TestHubOffByHandle(t *testing.T) {
	var h Hub
	var fired []string

	keep := h.On("e", func(src any, args ...any) { fired = append(fired, "keep") })
	drop := h.On("e", func(src any, args ...any) { fired = append(fired, "drop") })
	assert.NotEqual(t, keep, drop)

	h.Off("e", drop)

	require.NoError(t, h.Emit("e"))
	assert.Equal(t, []string{"keep"}, fired)
}

func TestHubOffUnknownEventIsNoop(t *testing.T) {
	var h Hub
	assert.NotPanics(t, func() { h.Off("missing", "id") })
	assert.NotPanics(t, func() { h.Off("missing", []int{1}) })
}

func TestHubOffIgnoresUncomparableIdentifiers(t *testing.T) {
	var h Hub
	h.On("e", func(src any, args ...any) {}, "id")

	assert.NotPanics(t, func() { h.Off("e", map[string]int{}) })
	assert.Equal(t, 1, h.Count("e"))
}

func TestHubPanickingListenerAbortsRemaining(t *testing.T) {
	var h Hub
	var ran []string

	h.On("boom", func(src any, args ...any) { ran = append(ran, "first") })
	h.On("boom", func(src any, args ...any) { panic("listener failure") })
	h.On("boom", func(src any, args ...any) { ran = append(ran, "third") })

	err := h.Emit("boom")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrListenerPanic))
	assert.Equal(t, []string{"first"}, ran)

	// The hub stays usable after a failed emission
	h.Off("boom", nil)
	assert.Equal(t, 3, h.Count("boom"))
}

func TestHubListenerMayUnregisterDuringEmit(t *testing.T) {
	var h Hub
	count := 0

	h.On("once", func(src any, args ...any) {
		count++
		h.Off("once", "self")
	}, "self")

	require.NoError(t, h.Emit("once"))
	require.NoError(t, h.Emit("once"))
	assert.Equal(t, 1, count)
}
