package net

// Net is an electrical equipotential region formed by wired-together pins.
//
// A Net is owned by the Circuit Engine: callers never construct one
// directly outside the engine package, since the engine is the sole source
// of unique net IDs and the sole caller of Update at a scheduled time.
type Net struct {
	ID    uint64
	state State

	drivers   []Driver
	listeners []Listener

	// IsVCC and IsGND are informational flags set on the two power rails.
	// The engine and wiring graph use them only for diagnostics; the
	// resolver treats a rail net like any other.
	IsVCC bool
	IsGND bool
}

// New returns a fresh net in the Float state.
func New(id uint64) *Net {
	return &Net{ID: id, state: Float}
}

// State returns the net's last-resolved state. It is a pure accessor: it
// does not re-run the resolver. Call Update to recompute.
func (n *Net) State() State { return n.state }

// AddDriver attaches d to the net's driver set. The caller (the Circuit
// Engine) is responsible for scheduling an Update afterward so listeners
// observe the effect at delay 0, per spec.
func (n *Net) AddDriver(d Driver) {
	n.drivers = append(n.drivers, d)
}

// AddListener attaches l to the net's listener set.
func (n *Net) AddListener(l Listener) {
	n.listeners = append(n.listeners, l)
}

// Drivers returns the net's current driver set. Callers must not retain or
// mutate the returned slice beyond the current call.
func (n *Net) Drivers() []Driver { return n.drivers }

// Listeners returns the net's current listener set. Callers must not retain
// or mutate the returned slice beyond the current call.
func (n *Net) Listeners() []Listener { return n.listeners }

// Resolve is a pure query: it recomputes resolve(drivers) without touching
// the cached state or notifying listeners.
func (n *Net) Resolve() State {
	return Resolve(n.drivers)
}

// Update recomputes the resolved state; if it differs from the cached
// state, the new state is stored and every listener is notified, in the
// iteration order of the listener set at the moment of the transition. A
// listener added by another listener during this call is not notified for
// this transition — Go's range over a slice captures the length up front,
// so an append from within the loop body is naturally excluded.
//
// Update reports whether the state changed.
func (n *Net) Update() bool {
	next := n.Resolve()
	if next == n.state {
		return false
	}
	n.state = next
	for _, l := range n.listeners {
		l.Notify(next)
	}
	return true
}

// Merge moves other's drivers and listeners into n and clears other, so
// that n becomes the union. The caller (Circuit Engine) is responsible for
// re-resolving n afterward and for retiring other's ID.
func (n *Net) Merge(other *Net) {
	n.drivers = append(n.drivers, other.drivers...)
	n.listeners = append(n.listeners, other.listeners...)
	other.drivers = nil
	other.listeners = nil
}
