package physics

import (
	opt "github.com/repeale/fp-go/option"
)

// Handle is the shared, destroyable reference to the player body.
// Every component that reads the player goes through the same Handle and
// checks presence once per tick; absence is the steady state after destruction.
type Handle struct {
	body      opt.Option[Body]
	onDestroy []func(last Body)
}

// NewHandle wraps a live body.
func NewHandle(b Body) *Handle {
	if b == nil {
		return EmptyHandle()
	}
	return &Handle{body: opt.Some[Body](b)}
}

// EmptyHandle returns a handle with no body.
func EmptyHandle() *Handle {
	return &Handle{body: opt.None[Body]()}
}

// Get returns the body, or None once destroyed. A nil handle is treated as absent.
func (h *Handle) Get() opt.Option[Body] {
	if h == nil {
		return opt.None[Body]()
	}
	return h.body
}

// Present reports whether the body is still alive.
func (h *Handle) Present() bool {
	return opt.IsSome(h.Get())
}

// OnDestroy registers a callback that receives the body as it is removed.
func (h *Handle) OnDestroy(fn func(last Body)) {
	if h == nil || fn == nil {
		return
	}
	h.onDestroy = append(h.onDestroy, fn)
}

// Destroy removes the body. Returns false if it was already absent, so
// callers can use the result to fire one-shot side effects.
func (h *Handle) Destroy() bool {
	if h == nil || opt.IsNone(h.body) {
		return false
	}
	last := h.body.Value
	h.body = opt.None[Body]()
	for _, fn := range h.onDestroy {
		fn(last)
	}
	return true
}
