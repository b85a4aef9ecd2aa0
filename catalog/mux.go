package catalog

import (
	"github.com/advaitharyag/WebIC-Trainer/chip"
	netpkg "github.com/advaitharyag/WebIC-Trainer/net"
	"github.com/advaitharyag/WebIC-Trainer/wiring"
)

// 74LS151: 8-to-1 data selector. D3=1,D2=2,D1=3,D0=4,Y=5,W=6,STROBE=7,GND=8,
// C=9,B=10,A=11,D7=12,D6=13,D5=14,D4=15,VCC=16. STROBE HIGH disables (per
// the real part's active-low enable, read here as a raw pin level).
var ls151Data = [8]int{4, 3, 2, 1, 15, 14, 13, 12} // D0..D7

const (
	ls151Y, ls151W           = 5, 6
	ls151Strobe              = 7
	ls151A, ls151B, ls151C   = 11, 10, 9
)

type ls151Eval struct{}

func (ls151Eval) Evaluate(c *chip.Chip) []chip.Proposal {
	if !c.Powered() {
		return unpoweredFloat(ls151Y, ls151W)
	}
	if c.Input(ls151Strobe) == netpkg.High {
		return []chip.Proposal{{Pin: ls151Y, State: netpkg.Low}, {Pin: ls151W, State: netpkg.High}}
	}
	sel := muxSelect3(c, ls151A, ls151B, ls151C)
	y := c.Input(ls151Data[sel])
	return []chip.Proposal{{Pin: ls151Y, State: y}, {Pin: ls151W, State: invertState(y)}}
}

func muxSelect3(c *chip.Chip, s0, s1, s2 int) int {
	return boolToInt(c.Input(s0) == netpkg.High) +
		boolToInt(c.Input(s1) == netpkg.High)*2 +
		boolToInt(c.Input(s2) == netpkg.High)*4
}

func invertState(s netpkg.State) netpkg.State {
	if s == netpkg.Error {
		return netpkg.Error
	}
	if s == netpkg.High {
		return netpkg.Low
	}
	return netpkg.High
}

func ls151PinTypes() map[int]wiring.PinType {
	pt := map[int]wiring.PinType{8: wiring.Power, 16: wiring.Power, ls151Y: wiring.Output, ls151W: wiring.Output}
	for _, p := range ls151Data {
		pt[p] = wiring.Input
	}
	for _, p := range []int{ls151A, ls151B, ls151C, ls151Strobe} {
		pt[p] = wiring.Input
	}
	return pt
}

func newLS151(id string, eng Engine, log Logger) *chip.Chip {
	return chip.New(eng, log, chip.Config{
		ID:       id,
		Part:     "74LS151",
		PinCount: 16,
		PinTypes: ls151PinTypes(),
		Impl:     ls151Eval{},
	})
}

// 74LS153: dual 4-to-1 data selector, shared select lines. G1̄=1,B=2,1C3=3,
// 1C2=4,1C1=5,1C0=6,1Y=7,GND=8,2Y=9,2C0=10,2C1=11,2C2=12,2C3=13,A=14,
// G2̄=15,VCC=16. A disabled half outputs LOW.
const (
	ls153G1, ls153B       = 1, 2
	ls153Half1Data0       = 6 // 1C0..1C3 = pins 6,5,4,3
	ls153Y1               = 7
	ls153Y2               = 9
	ls153Half2Data0       = 10 // 2C0..2C3 = pins 10,11,12,13
	ls153A, ls153G2       = 14, 15
)

var ls153Half1 = [4]int{6, 5, 4, 3}
var ls153Half2 = [4]int{10, 11, 12, 13}

type ls153Eval struct{}

func (ls153Eval) Evaluate(c *chip.Chip) []chip.Proposal {
	if !c.Powered() {
		return unpoweredFloat(ls153Y1, ls153Y2)
	}
	sel := boolToInt(c.Input(ls153A) == netpkg.High) + boolToInt(c.Input(ls153B) == netpkg.High)*2

	out := make([]chip.Proposal, 0, 2)
	if activeLow(c.Input(ls153G1)) {
		out = append(out, chip.Proposal{Pin: ls153Y1, State: c.Input(ls153Half1[sel])})
	} else {
		out = append(out, chip.Proposal{Pin: ls153Y1, State: netpkg.Low})
	}
	if activeLow(c.Input(ls153G2)) {
		out = append(out, chip.Proposal{Pin: ls153Y2, State: c.Input(ls153Half2[sel])})
	} else {
		out = append(out, chip.Proposal{Pin: ls153Y2, State: netpkg.Low})
	}
	return out
}

func ls153PinTypes() map[int]wiring.PinType {
	pt := map[int]wiring.PinType{8: wiring.Power, 16: wiring.Power, ls153Y1: wiring.Output, ls153Y2: wiring.Output}
	for _, p := range []int{ls153G1, ls153B, ls153A, ls153G2} {
		pt[p] = wiring.Input
	}
	for _, p := range ls153Half1 {
		pt[p] = wiring.Input
	}
	for _, p := range ls153Half2 {
		pt[p] = wiring.Input
	}
	return pt
}

func newLS153(id string, eng Engine, log Logger) *chip.Chip {
	return chip.New(eng, log, chip.Config{
		ID:       id,
		Part:     "74LS153",
		PinCount: 16,
		PinTypes: ls153PinTypes(),
		Impl:     ls153Eval{},
	})
}

// 74LS157: quad 2-to-1 data selector, shared select and strobe. SELECT=1,
// 1A=2,1B=3,1Y=4,2A=5,2B=6,2Y=7,GND=8,3Y=9,3B=10,3A=11,4Y=12,4B=13,4A=14,
// STROBE=15,VCC=16. STROBE HIGH forces all Y LOW.
var ls157Sections = [4][3]int{ // A, B, Y
	{2, 3, 4},
	{5, 6, 7},
	{11, 10, 9},
	{14, 13, 12},
}

const (
	ls157Select = 1
	ls157Strobe = 15
)

type ls157Eval struct{}

func (ls157Eval) Evaluate(c *chip.Chip) []chip.Proposal {
	if !c.Powered() {
		outputs := make([]int, len(ls157Sections))
		for i, s := range ls157Sections {
			outputs[i] = s[2]
		}
		return unpoweredFloat(outputs...)
	}
	out := make([]chip.Proposal, 0, 4)
	if c.Input(ls157Strobe) == netpkg.High {
		for _, s := range ls157Sections {
			out = append(out, chip.Proposal{Pin: s[2], State: netpkg.Low})
		}
		return out
	}
	sel := c.Input(ls157Select) == netpkg.High
	for _, s := range ls157Sections {
		if sel {
			out = append(out, chip.Proposal{Pin: s[2], State: c.Input(s[1])})
		} else {
			out = append(out, chip.Proposal{Pin: s[2], State: c.Input(s[0])})
		}
	}
	return out
}

func ls157PinTypes() map[int]wiring.PinType {
	pt := map[int]wiring.PinType{8: wiring.Power, 16: wiring.Power, ls157Select: wiring.Input, ls157Strobe: wiring.Input}
	for _, s := range ls157Sections {
		pt[s[0]] = wiring.Input
		pt[s[1]] = wiring.Input
		pt[s[2]] = wiring.Output
	}
	return pt
}

func newLS157(id string, eng Engine, log Logger) *chip.Chip {
	return chip.New(eng, log, chip.Config{
		ID:       id,
		Part:     "74LS157",
		PinCount: 16,
		PinTypes: ls157PinTypes(),
		Impl:     ls157Eval{},
	})
}
