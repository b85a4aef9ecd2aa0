package catalog

import (
	"github.com/advaitharyag/WebIC-Trainer/chip"
	netpkg "github.com/advaitharyag/WebIC-Trainer/net"
	"github.com/advaitharyag/WebIC-Trainer/wiring"
)

// 74LS283: 4-bit binary full adder. SUM2=1,B2=2,A2=3,SUM1=4,A1=5,B1=6,
// C0=7,GND=8,C4=9,SUM4=10,B4=11,A4=12,SUM3=13,A3=14,B3=15,VCC=16.
var ls283A = [4]int{5, 3, 14, 12}    // A1..A4
var ls283B = [4]int{6, 2, 15, 11}    // B1..B4
var ls283Sum = [4]int{4, 1, 13, 10}  // SUM1..SUM4

const (
	ls283C0 = 7
	ls283C4 = 9
)

type ls283Eval struct{}

func (ls283Eval) Evaluate(c *chip.Chip) []chip.Proposal {
	if !c.Powered() {
		return unpoweredFloat(append(append([]int{}, ls283Sum[:]...), ls283C4)...)
	}
	carry := c.Input(ls283C0)
	if carry == netpkg.Error {
		return errorAllOutputs()
	}
	cIn := carry == netpkg.High

	out := make([]chip.Proposal, 0, 5)
	for i := 0; i < 4; i++ {
		a := c.Input(ls283A[i])
		b := c.Input(ls283B[i])
		if a == netpkg.Error || b == netpkg.Error {
			return errorAllOutputs()
		}
		av, bv := a == netpkg.High, b == netpkg.High
		sum := av != bv != cIn
		carryOut := (av && bv) || (cIn && (av != bv))
		out = append(out, chip.Proposal{Pin: ls283Sum[i], State: boolState(sum)})
		cIn = carryOut
	}
	out = append(out, chip.Proposal{Pin: ls283C4, State: boolState(cIn)})
	return out
}

func errorAllOutputs() []chip.Proposal {
	out := make([]chip.Proposal, 0, 5)
	for _, p := range ls283Sum {
		out = append(out, chip.Proposal{Pin: p, State: netpkg.Error})
	}
	out = append(out, chip.Proposal{Pin: ls283C4, State: netpkg.Error})
	return out
}

func ls283PinTypes() map[int]wiring.PinType {
	pt := map[int]wiring.PinType{8: wiring.Power, 16: wiring.Power, ls283C0: wiring.Input, ls283C4: wiring.Output}
	for i := 0; i < 4; i++ {
		pt[ls283A[i]] = wiring.Input
		pt[ls283B[i]] = wiring.Input
		pt[ls283Sum[i]] = wiring.Output
	}
	return pt
}

func newLS283(id string, eng Engine, log Logger) *chip.Chip {
	return chip.New(eng, log, chip.Config{
		ID:       id,
		Part:     "74LS283",
		PinCount: 16,
		PinTypes: ls283PinTypes(),
		Impl:     ls283Eval{},
	})
}
