// Package observer implements the subscribe/notify primitive used for cache
// invalidation across quotes, handles and term structures. Notification is
// synchronous and depth-first: mutating an upstream object invalidates every
// dependent object reachable in the subscription graph before the mutator
// returns. The graph is expected to be acyclic; an accidental cycle is broken
// by a per-observable re-entrancy guard instead of recursing forever.
package observer

// Observer reacts to a state change in an Observable it is registered with.
type Observer interface {
	OnNotify()
}

// Observable is anything whose state change must propagate to observers.
type Observable interface {
	RegisterObserver(o Observer)
	UnregisterObserver(o Observer)
	NotifyObservers()
}

// Base is the canonical Observable implementation, meant to be embedded.
// The zero value is ready to use. Registration is a relation, not ownership:
// Base holds plain references and never outlives obligations to its observers.
type Base struct {
	observers map[Observer]struct{}
	notifying bool
}

// RegisterObserver subscribes o. Re-registering an already subscribed
// observer is a no-op.
func (b *Base) RegisterObserver(o Observer) {
	if o == nil {
		return
	}
	if b.observers == nil {
		b.observers = make(map[Observer]struct{})
	}
	b.observers[o] = struct{}{}
}

// UnregisterObserver unsubscribes o. Safe to call when o was never subscribed.
func (b *Base) UnregisterObserver(o Observer) {
	delete(b.observers, o)
}

// NotifyObservers synchronously invokes OnNotify on every current observer.
// No ordering is guaranteed. A notification that re-enters this observable
// (i.e. a cycle in the subscription graph) is skipped rather than cascaded.
func (b *Base) NotifyObservers() {
	if b.notifying {
		return
	}
	b.notifying = true
	defer func() { b.notifying = false }()

	for o := range b.observers {
		o.OnNotify()
	}
}

// RegisterWith subscribes obs to observable. Nil observables are ignored so
// callers can register against optional upstreams unconditionally.
func RegisterWith(obs Observer, observable Observable) {
	if observable == nil {
		return
	}
	observable.RegisterObserver(obs)
}

// UnregisterWith removes the subscription, if any.
func UnregisterWith(obs Observer, observable Observable) {
	if observable == nil {
		return
	}
	observable.UnregisterObserver(obs)
}
