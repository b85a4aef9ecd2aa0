package catalog

import (
	"github.com/advaitharyag/WebIC-Trainer/chip"
	"github.com/advaitharyag/WebIC-Trainer/wiring"
)

// gatePins is the (A, B, Y) pin triple of one section of a quad 2-input
// gate package.
type gatePins struct{ a, b, y int }

// quad2InputPinout is the pin layout shared by 74LS00 (NAND), 74LS08 (AND),
// 74LS32 (OR), and 74LS86 (XOR): output-before-second-input on one half,
// output-after on the other, VCC=14, GND=7.
var quad2InputPinout = [4]gatePins{
	{a: 1, b: 2, y: 3},
	{a: 4, b: 5, y: 6},
	{a: 9, b: 10, y: 8},
	{a: 12, b: 13, y: 11},
}

// quad2InputNORPinout is 74LS02's layout: output-first on every section.
var quad2InputNORPinout = [4]gatePins{
	{a: 2, b: 3, y: 1},
	{a: 5, b: 6, y: 4},
	{a: 8, b: 9, y: 10},
	{a: 11, b: 12, y: 13},
}

func quad2InputPinTypes(layout [4]gatePins) map[int]wiring.PinType {
	pt := map[int]wiring.PinType{7: wiring.Power, 14: wiring.Power}
	for _, g := range layout {
		pt[g.a] = wiring.Input
		pt[g.b] = wiring.Input
		pt[g.y] = wiring.Output
	}
	return pt
}

// quadGate is the Evaluator shared by every quad 2-input gate family; only
// the boolean op and pin layout differ between them.
type quadGate struct {
	layout [4]gatePins
	op     func(a, b bool) bool
}

func (g quadGate) Evaluate(c *chip.Chip) []chip.Proposal {
	if !c.Powered() {
		outputs := make([]int, len(g.layout))
		for i, gp := range g.layout {
			outputs[i] = gp.y
		}
		return unpoweredFloat(outputs...)
	}
	out := make([]chip.Proposal, 0, 4)
	for _, gp := range g.layout {
		a := c.Input(gp.a)
		b := c.Input(gp.b)
		out = append(out, chip.Proposal{Pin: gp.y, State: binaryOp(a, b, g.op)})
	}
	return out
}

func newQuadGate(part string, layout [4]gatePins, op func(a, b bool) bool) Factory {
	return func(id string, eng Engine, log Logger) *chip.Chip {
		return chip.New(eng, log, chip.Config{
			ID:       id,
			Part:     part,
			PinCount: 14,
			PinTypes: quad2InputPinTypes(layout),
			Impl:     quadGate{layout: layout, op: op},
		})
	}
}

// 74LS04: hex inverter. 1A1,1Y2,2A3,2Y4,3A5,3Y6,GND7,4Y8,4A9,5Y10,5A11,6Y12,6A13,VCC14.
var hexInverterPinout = [6][2]int{
	{1, 2}, {3, 4}, {5, 6}, {9, 8}, {11, 10}, {13, 12},
}

type hexInverter struct{}

func (hexInverter) Evaluate(c *chip.Chip) []chip.Proposal {
	if !c.Powered() {
		outputs := make([]int, len(hexInverterPinout))
		for i, io := range hexInverterPinout {
			outputs[i] = io[1]
		}
		return unpoweredFloat(outputs...)
	}
	out := make([]chip.Proposal, 0, 6)
	for _, io := range hexInverterPinout {
		out = append(out, chip.Proposal{Pin: io[1], State: unaryOp(c.Input(io[0]), not1)})
	}
	return out
}

func hexInverterPinTypes() map[int]wiring.PinType {
	pt := map[int]wiring.PinType{7: wiring.Power, 14: wiring.Power}
	for _, io := range hexInverterPinout {
		pt[io[0]] = wiring.Input
		pt[io[1]] = wiring.Output
	}
	return pt
}

func newLS04(id string, eng Engine, log Logger) *chip.Chip {
	return chip.New(eng, log, chip.Config{
		ID:       id,
		Part:     "74LS04",
		PinCount: 14,
		PinTypes: hexInverterPinTypes(),
		Impl:     hexInverter{},
	})
}

func newLS00(id string, eng Engine, log Logger) *chip.Chip {
	return newQuadGate("74LS00", quad2InputPinout, nand)(id, eng, log)
}
func newLS02(id string, eng Engine, log Logger) *chip.Chip {
	return newQuadGate("74LS02", quad2InputNORPinout, nor2)(id, eng, log)
}
func newLS08(id string, eng Engine, log Logger) *chip.Chip {
	return newQuadGate("74LS08", quad2InputPinout, and2)(id, eng, log)
}
func newLS32(id string, eng Engine, log Logger) *chip.Chip {
	return newQuadGate("74LS32", quad2InputPinout, or2)(id, eng, log)
}
func newLS86(id string, eng Engine, log Logger) *chip.Chip {
	return newQuadGate("74LS86", quad2InputPinout, xor2)(id, eng, log)
}
