// Package catalog implements the 16-part TTL catalogue (spec.md §4.6) on
// top of the chip framework: six combinational gate families, a decoder, a
// BCD-to-seven-segment driver, three multiplexers, a 4-bit adder, and four
// sequential parts (two flip-flops, two ripple counters).
package catalog

import (
	"github.com/advaitharyag/WebIC-Trainer/chip"
	netpkg "github.com/advaitharyag/WebIC-Trainer/net"
)

// binaryOp applies a two-input boolean function to TTL-coerced inputs. An
// ERROR on either input (from net contention, never from floating — Input
// already coerces Float to High) propagates to an ERROR output rather than
// being interpreted as a boolean value.
func binaryOp(a, b netpkg.State, f func(a, b bool) bool) netpkg.State {
	if a == netpkg.Error || b == netpkg.Error {
		return netpkg.Error
	}
	if f(a == netpkg.High, b == netpkg.High) {
		return netpkg.High
	}
	return netpkg.Low
}

// unaryOp is binaryOp's one-input counterpart, used by the inverter.
func unaryOp(a netpkg.State, f func(a bool) bool) netpkg.State {
	if a == netpkg.Error {
		return netpkg.Error
	}
	if f(a == netpkg.High) {
		return netpkg.High
	}
	return netpkg.Low
}

func nand(a, b bool) bool { return !(a && b) }
func and2(a, b bool) bool { return a && b }
func or2(a, b bool) bool  { return a || b }
func xor2(a, b bool) bool { return a != b }
func nor2(a, b bool) bool { return !(a || b) }
func not1(a bool) bool    { return !a }

func boolState(v bool) netpkg.State {
	if v {
		return netpkg.High
	}
	return netpkg.Low
}

// activeLow reports true when the input pin is asserted active-low (i.e.
// its TTL-coerced level is Low), for the many 74LS-series control pins
// named with a bar (CL̄R, PR̄, G1̄, ...).
func activeLow(s netpkg.State) bool {
	return s == netpkg.Low
}

// unpoweredFloat returns an explicit FLOAT proposal for every pin in
// outputs. Every catalogue Evaluate calls this as its first branch when
// c.Powered() is false: the output driver installed by the framework
// already floats an unpowered pin regardless of the register
// (chip.outputDriver.Value), but spec.md §4.5 requires the explicit
// proposal too, since trigger_evaluation only schedules a net update when a
// proposal differs from the cached register — without it, a register that
// happens to already read the post-power-loss TTL-coerced value (as in a
// cross-coupled latch with one input grounded) would never notify
// listeners that the net is now floating.
func unpoweredFloat(outputs ...int) []chip.Proposal {
	out := make([]chip.Proposal, len(outputs))
	for i, p := range outputs {
		out[i] = chip.Proposal{Pin: p, State: netpkg.Float}
	}
	return out
}
