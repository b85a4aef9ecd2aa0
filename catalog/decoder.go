package catalog

import (
	"github.com/advaitharyag/WebIC-Trainer/chip"
	netpkg "github.com/advaitharyag/WebIC-Trainer/net"
	"github.com/advaitharyag/WebIC-Trainer/wiring"
)

// 74LS138: 3-to-8 line decoder. A=1,B=2,C=3,G2A̅=4,G2B̅=5,G1=6,Y7=7,GND=8,
// Y6=9,Y5=10,Y4=11,Y3=12,Y2=13,Y1=14,Y0=15,VCC=16.
const (
	ls138A, ls138B, ls138C = 1, 2, 3
	ls138G2A, ls138G2B     = 4, 5
	ls138G1                = 6
)

// ls138Y holds Y0..Y7's pin numbers, indexed by decoded value.
var ls138Y = [8]int{15, 14, 13, 12, 11, 10, 9, 7}

type ls138Eval struct{}

func (ls138Eval) Evaluate(c *chip.Chip) []chip.Proposal {
	if !c.Powered() {
		return unpoweredFloat(ls138Y[:]...)
	}
	enabled := c.Input(ls138G1) == netpkg.High &&
		activeLow(c.Input(ls138G2A)) &&
		activeLow(c.Input(ls138G2B))

	out := make([]chip.Proposal, 0, 8)
	if !enabled {
		for _, y := range ls138Y {
			out = append(out, chip.Proposal{Pin: y, State: netpkg.High})
		}
		return out
	}
	a := c.Input(ls138A) == netpkg.High
	b := c.Input(ls138B) == netpkg.High
	cc := c.Input(ls138C) == netpkg.High
	selected := boolToInt(a) + boolToInt(b)*2 + boolToInt(cc)*4
	for i, y := range ls138Y {
		if i == selected {
			out = append(out, chip.Proposal{Pin: y, State: netpkg.Low})
		} else {
			out = append(out, chip.Proposal{Pin: y, State: netpkg.High})
		}
	}
	return out
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func ls138PinTypes() map[int]wiring.PinType {
	pt := map[int]wiring.PinType{8: wiring.Power, 16: wiring.Power}
	for _, p := range []int{ls138A, ls138B, ls138C, ls138G2A, ls138G2B, ls138G1} {
		pt[p] = wiring.Input
	}
	for _, y := range ls138Y {
		pt[y] = wiring.Output
	}
	return pt
}

func newLS138(id string, eng Engine, log Logger) *chip.Chip {
	return chip.New(eng, log, chip.Config{
		ID:       id,
		Part:     "74LS138",
		PinCount: 16,
		PinTypes: ls138PinTypes(),
		Impl:     ls138Eval{},
	})
}
