package observer

// Handle is a relinkable indirection cell holding a shared reference to an
// underlying Observable. Every holder of the same *Handle sees the same
// underlying object; relinking swaps the reference for all of them at once.
//
// A Handle observes whatever it currently points to and is itself Observable,
// so subscribers of the handle are notified both when the pointee changes
// state and when the handle is re-pointed.
type Handle[T Observable] struct {
	Base
	link   T
	linked bool
}

// NewHandle returns a handle linked to obj. Pass the zero value of T (a nil
// interface or pointer) for an empty handle.
func NewHandle[T Observable](obj T) *Handle[T] {
	h := &Handle[T]{}
	h.LinkTo(obj)
	return h
}

// LinkTo re-points the handle at obj: it unsubscribes from the old underlying
// (if any), subscribes to the new one, and notifies the handle's observers
// exactly once. Relinking to an empty value is allowed and leaves the handle
// unlinked.
func (h *Handle[T]) LinkTo(obj T) {
	if h.linked {
		h.link.UnregisterObserver(h)
	}
	h.link = obj
	h.linked = !isNil(obj)
	if h.linked {
		h.link.RegisterObserver(h)
	}
	h.NotifyObservers()
}

// Link returns the current underlying object and whether the handle is linked.
func (h *Handle[T]) Link() (T, bool) {
	return h.link, h.linked
}

// IsLinked reports whether the handle currently points at an object.
func (h *Handle[T]) IsLinked() bool {
	return h.linked
}

// OnNotify forwards a pointee notification to the handle's own observers.
func (h *Handle[T]) OnNotify() {
	h.NotifyObservers()
}

func isNil[T Observable](obj T) bool {
	var zero T
	return any(obj) == any(zero)
}
