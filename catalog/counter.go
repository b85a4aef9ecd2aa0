package catalog

import (
	"github.com/advaitharyag/WebIC-Trainer/chip"
	netpkg "github.com/advaitharyag/WebIC-Trainer/net"
	"github.com/advaitharyag/WebIC-Trainer/wiring"
)

// 74LS90: decade ripple counter. Two independent sections, each clocked by
// its own pin — CKA toggles QA (mod-2); CKB drives a mod-5 counter
// producing QB,QC,QD. A caller wanting BCD counting wires QA to CKB
// externally, exactly as on the real part. CKB=1,R0(1)=2,R0(2)=3,NC=4,
// VCC=5,R9(1)=6,R9(2)=7,QC=8,QB=9,GND=10,QD=11,QA=12,NC=13,CKA=14.
const (
	ls90CKB          = 1
	ls90R01, ls90R02 = 2, 3
	ls90R91, ls90R92 = 6, 7
	ls90QC, ls90QB   = 8, 9
	ls90QD, ls90QA   = 11, 12
	ls90CKA          = 14
)

type ls90Eval struct {
	a     bool
	mod5  int // 0..4, bit0=QB, bit1=QC, bit2=QD
}

func (e *ls90Eval) Evaluate(c *chip.Chip) []chip.Proposal {
	edgeA := c.ClockEdge(ls90CKA, false)
	edgeB := c.ClockEdge(ls90CKB, false)

	if !c.Powered() {
		return unpoweredFloat(ls90QA, ls90QB, ls90QC, ls90QD)
	}

	reset0 := c.Input(ls90R01) == netpkg.High && c.Input(ls90R02) == netpkg.High
	reset9 := c.Input(ls90R91) == netpkg.High && c.Input(ls90R92) == netpkg.High

	switch {
	case reset0: // reset has priority over set-9 when both asserted
		e.a = false
		e.mod5 = 0
	case reset9:
		e.a = true
		e.mod5 = 4
	default:
		if edgeA {
			e.a = !e.a
		}
		if edgeB {
			e.mod5 = (e.mod5 + 1) % 5
		}
	}

	return []chip.Proposal{
		{Pin: ls90QA, State: boolState(e.a)},
		{Pin: ls90QB, State: boolState(e.mod5&1 != 0)},
		{Pin: ls90QC, State: boolState(e.mod5&2 != 0)},
		{Pin: ls90QD, State: boolState(e.mod5&4 != 0)},
	}
}

func (e *ls90Eval) Reset() { e.a = false; e.mod5 = 0 }

func ls90PinTypes() map[int]wiring.PinType {
	return map[int]wiring.PinType{
		ls90CKB: wiring.Clock, ls90CKA: wiring.Clock,
		ls90R01: wiring.Input, ls90R02: wiring.Input,
		ls90R91: wiring.Input, ls90R92: wiring.Input,
		ls90QA: wiring.Output, ls90QB: wiring.Output, ls90QC: wiring.Output, ls90QD: wiring.Output,
		5: wiring.Power, 10: wiring.Power,
		4: wiring.NC, 13: wiring.NC,
	}
}

func newLS90(id string, eng Engine, log Logger) *chip.Chip {
	return chip.New(eng, log, chip.Config{
		ID:       id,
		Part:     "74LS90",
		PinCount: 14,
		PinTypes: ls90PinTypes(),
		VCCPin:   5,
		GNDPin:   10,
		Impl:     &ls90Eval{},
	})
}

// 74LS93: 4-bit ripple counter. CKA toggles QA (mod-2); CKB drives a mod-8
// binary ripple counter producing QB,QC,QD. No set-9 function.
// CKA=1,R0(1)=2,R0(2)=3,NC=4,VCC=5,NC=6,NC=7,QC=8,QB=9,GND=10,QD=11,QA=12,
// NC=13,CKB=14.
const (
	ls93CKA          = 1
	ls93R01, ls93R02 = 2, 3
	ls93QC, ls93QB   = 8, 9
	ls93QD, ls93QA   = 11, 12
	ls93CKB          = 14
)

type ls93Eval struct {
	a    bool
	mod8 int // bit0=QB, bit1=QC, bit2=QD
}

func (e *ls93Eval) Evaluate(c *chip.Chip) []chip.Proposal {
	edgeA := c.ClockEdge(ls93CKA, false)
	edgeB := c.ClockEdge(ls93CKB, false)

	if !c.Powered() {
		return unpoweredFloat(ls93QA, ls93QB, ls93QC, ls93QD)
	}

	reset := c.Input(ls93R01) == netpkg.High && c.Input(ls93R02) == netpkg.High

	if reset {
		e.a = false
		e.mod8 = 0
	} else {
		if edgeA {
			e.a = !e.a
		}
		if edgeB {
			e.mod8 = (e.mod8 + 1) % 8
		}
	}

	return []chip.Proposal{
		{Pin: ls93QA, State: boolState(e.a)},
		{Pin: ls93QB, State: boolState(e.mod8&1 != 0)},
		{Pin: ls93QC, State: boolState(e.mod8&2 != 0)},
		{Pin: ls93QD, State: boolState(e.mod8&4 != 0)},
	}
}

func (e *ls93Eval) Reset() { e.a = false; e.mod8 = 0 }

func ls93PinTypes() map[int]wiring.PinType {
	return map[int]wiring.PinType{
		ls93CKA: wiring.Clock, ls93CKB: wiring.Clock,
		ls93R01: wiring.Input, ls93R02: wiring.Input,
		ls93QA: wiring.Output, ls93QB: wiring.Output, ls93QC: wiring.Output, ls93QD: wiring.Output,
		5: wiring.Power, 10: wiring.Power,
		4: wiring.NC, 6: wiring.NC, 7: wiring.NC, 13: wiring.NC,
	}
}

func newLS93(id string, eng Engine, log Logger) *chip.Chip {
	return chip.New(eng, log, chip.Config{
		ID:       id,
		Part:     "74LS93",
		PinCount: 14,
		PinTypes: ls93PinTypes(),
		VCCPin:   5,
		GNDPin:   10,
		Impl:     &ls93Eval{},
	})
}
