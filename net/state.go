// Package net implements the four-valued electrical net model: the
// resolver that reconciles concurrent drivers on one wire, and the
// listener notification contract that downstream consumers (the wiring
// graph, the chip framework) depend on.
package net

// State is a TTL-trainer logic level. The zero value is Float, matching
// an unconnected net's initial state.
type State uint8

const (
	// Float is high-impedance: no driver is imposing a level.
	Float State = iota
	// Low is a driven logic 0.
	Low
	// High is a driven logic 1.
	High
	// Error represents contention: two or more drivers disagree.
	Error
)

func (s State) String() string {
	switch s {
	case Low:
		return "LOW"
	case High:
		return "HIGH"
	case Float:
		return "FLOAT"
	case Error:
		return "ERROR"
	default:
		return "INVALID"
	}
}

// Driver is a source that can impose a logic level on a Net. Implementations
// may close over external state (a switch position, a chip's output
// register, a clock phase) — the resolver never inspects that state, only
// the value a call to Value returns.
type Driver interface {
	Value() State
}

// DriverFunc adapts a plain func() State into a Driver.
type DriverFunc func() State

// Value implements Driver.
func (f DriverFunc) Value() State { return f() }

// Listener is notified whenever a Net's resolved state transitions to a new
// value. It is never invoked for a call that leaves the state unchanged.
type Listener interface {
	Notify(State)
}

// ListenerFunc adapts a plain func(State) into a Listener.
type ListenerFunc func(State)

// Notify implements Listener.
func (f ListenerFunc) Notify(s State) { f(s) }

// Resolve collapses the values returned by a set of drivers to a single
// State, per the net-resolution rules:
//
//   - any Error, or both High and Low present -> Error (contention)
//   - else High present -> High
//   - else Low present -> Low
//   - else -> Float
//
// Resolve is commutative and associative: the order drivers are queried in
// never affects the result.
func Resolve(drivers []Driver) State {
	sawHigh, sawLow := false, false
	for _, d := range drivers {
		switch d.Value() {
		case Error:
			return Error
		case High:
			sawHigh = true
		case Low:
			sawLow = true
		}
	}
	switch {
	case sawHigh && sawLow:
		return Error
	case sawHigh:
		return High
	case sawLow:
		return Low
	default:
		return Float
	}
}
