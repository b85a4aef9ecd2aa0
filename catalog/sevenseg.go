package catalog

import (
	"github.com/advaitharyag/WebIC-Trainer/chip"
	netpkg "github.com/advaitharyag/WebIC-Trainer/net"
	"github.com/advaitharyag/WebIC-Trainer/wiring"
)

// 74LS47: BCD-to-seven-segment decoder/driver, active-LOW segment outputs.
// B=1,C=2,LT̄=3,BI/RBŌ=4,RBĪ=5,D=6,A=7,GND=8,e=9,d=10,c=11,b=12,a=13,g=14,
// f=15,VCC=16. This simulator treats the shared BI/RBO pin as an input
// only (blanking), per the spec's exclusion of bidirectional/open-collector
// pins — the ripple-blanking output half of the real part is not modeled.
const (
	ls47B, ls47C = 1, 2
	ls47LT       = 3
	ls47BI       = 4
	ls47RBI      = 5
	ls47D, ls47A = 6, 7
)

var ls47Segments = [7]int{13, 12, 11, 10, 9, 15, 14} // a,b,c,d,e,f,g

// segmentTable[n] lists which of a..g (index 0..6) are lit for BCD digit n.
// Digits 10-15 are out of the BCD range; the spec is silent on them and
// this simulator blanks the display rather than reproducing the
// datasheet's non-digit glyphs for those codes.
var segmentTable = [16][7]bool{
	0:  {true, true, true, true, true, true, false},
	1:  {false, true, true, false, false, false, false},
	2:  {true, true, false, true, true, false, true},
	3:  {true, true, true, true, false, false, true},
	4:  {false, true, true, false, false, true, true},
	5:  {true, false, true, true, false, true, true},
	6:  {true, false, true, true, true, true, true},
	7:  {true, true, true, false, false, false, false},
	8:  {true, true, true, true, true, true, true},
	9:  {true, true, true, true, false, true, true},
	10: {},
	11: {},
	12: {},
	13: {},
	14: {},
	15: {},
}

type ls47Eval struct{}

func (ls47Eval) Evaluate(c *chip.Chip) []chip.Proposal {
	if !c.Powered() {
		return unpoweredFloat(ls47Segments[:]...)
	}
	out := make([]chip.Proposal, 0, 7)

	lampTest := activeLow(c.Input(ls47LT))
	blank := activeLow(c.Input(ls47BI))

	a := c.Input(ls47A) == netpkg.High
	b := c.Input(ls47B) == netpkg.High
	cc := c.Input(ls47C) == netpkg.High
	d := c.Input(ls47D) == netpkg.High
	digit := boolToInt(a) + boolToInt(b)*2 + boolToInt(cc)*4 + boolToInt(d)*8

	rippleBlank := !lampTest && !blank && digit == 0 && activeLow(c.Input(ls47RBI))

	for i, pin := range ls47Segments {
		lit := lampTest
		if !lampTest {
			if blank || rippleBlank {
				lit = false
			} else {
				lit = segmentTable[digit][i]
			}
		}
		out = append(out, chip.Proposal{Pin: pin, State: boolState(!lit)}) // active-low
	}
	return out
}

func ls47PinTypes() map[int]wiring.PinType {
	pt := map[int]wiring.PinType{8: wiring.Power, 16: wiring.Power}
	for _, p := range []int{ls47A, ls47B, ls47C, ls47D, ls47LT, ls47BI, ls47RBI} {
		pt[p] = wiring.Input
	}
	for _, p := range ls47Segments {
		pt[p] = wiring.Output
	}
	return pt
}

func newLS47(id string, eng Engine, log Logger) *chip.Chip {
	return chip.New(eng, log, chip.Config{
		ID:       id,
		Part:     "74LS47",
		PinCount: 16,
		PinTypes: ls47PinTypes(),
		Impl:     ls47Eval{},
	})
}
