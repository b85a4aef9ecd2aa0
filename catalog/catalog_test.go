package catalog

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/advaitharyag/WebIC-Trainer/engine"
	netpkg "github.com/advaitharyag/WebIC-Trainer/net"
)

type pinBinder interface {
	SetPinNode(pin int, netID uint64)
	Setup()
}

// levelDriver is a net.Driver whose output can be mutated in place, so a
// test can model a single persistent signal source (a switch) rather than
// stacking a fresh, permanently-contending driver on every level change.
type levelDriver struct{ s netpkg.State }

func (d *levelDriver) Value() netpkg.State { return d.s }

// rig wires every pin of a freshly built chip to its own net, binds VCC/GND
// to the engine's rail nets, powers the engine, and tracks one mutable
// driver per pin so tests can drive a pin repeatedly across a sequence of
// levels.
type rig struct {
	t       *testing.T
	eng     *engine.Engine
	nets    map[int]uint64
	drivers map[uint64]*levelDriver
}

func buildChip(t *testing.T, part string, vccPin, gndPin, pinCount int) (*rig, pinBinder) {
	t.Helper()
	eng := engine.New()
	c, err := New(part, "u1", eng, zerolog.Nop())
	if err != nil {
		t.Fatalf("New(%q): %v", part, err)
	}
	r := &rig{t: t, eng: eng, nets: make(map[int]uint64, pinCount), drivers: make(map[uint64]*levelDriver)}
	for pin := 1; pin <= pinCount; pin++ {
		switch pin {
		case vccPin:
			r.nets[pin] = eng.VCC()
		case gndPin:
			r.nets[pin] = eng.GND()
		default:
			r.nets[pin] = eng.CreateNet()
		}
		c.SetPinNode(pin, r.nets[pin])
	}
	c.Setup()
	eng.SetPower(true)
	eng.Step(0)
	return r, c
}

// drive sets pin's driven level, installing its driver on first use and
// just mutating it (then re-resolving) on subsequent calls, and then
// advances time past the chip's default 10ns propagation delay so the
// outputs it caused are visible to read.
func (r *rig) drive(pin int, s netpkg.State) {
	r.t.Helper()
	netID := r.nets[pin]
	if d, ok := r.drivers[netID]; ok {
		d.s = s
		r.eng.ScheduleNodeUpdate(netID, 0)
	} else {
		d = &levelDriver{s: s}
		r.drivers[netID] = d
		r.eng.AddDriver(netID, d)
	}
	r.eng.Step(0)
	r.eng.Step(10)
}

func (r *rig) read(pin int) netpkg.State {
	r.t.Helper()
	n, ok := r.eng.Net(r.nets[pin])
	if !ok {
		r.t.Fatalf("unknown pin %d", pin)
	}
	return n.State()
}

func TestLS00_NANDTable(t *testing.T) {
	r, _ := buildChip(t, "74LS00", 14, 7, 14)

	cases := []struct{ a, b, want netpkg.State }{
		{netpkg.Low, netpkg.Low, netpkg.High},
		{netpkg.Low, netpkg.High, netpkg.High},
		{netpkg.High, netpkg.Low, netpkg.High},
		{netpkg.High, netpkg.High, netpkg.Low},
	}
	for _, tc := range cases {
		r.drive(1, tc.a)
		r.drive(2, tc.b)
		if got := r.read(3); got != tc.want {
			t.Fatalf("NAND(%s,%s) = %s, want %s", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestLS00_FloatingInputReadsHigh(t *testing.T) {
	r, _ := buildChip(t, "74LS00", 14, 7, 14)
	r.drive(1, netpkg.Low)
	// pin 2 left floating: NAND(LOW, HIGH) = HIGH.
	if got := r.read(3); got != netpkg.High {
		t.Fatalf("NAND with floating B = %s, want HIGH", got)
	}
}

func TestLS04_InverterTable(t *testing.T) {
	r, _ := buildChip(t, "74LS04", 14, 7, 14)
	r.drive(1, netpkg.Low)
	if got := r.read(2); got != netpkg.High {
		t.Fatalf("NOT(LOW) = %s, want HIGH", got)
	}
	r.drive(1, netpkg.High)
	if got := r.read(2); got != netpkg.Low {
		t.Fatalf("NOT(HIGH) = %s, want LOW", got)
	}
}

func TestLS04_UnpoweredOutputsFloat(t *testing.T) {
	eng := engine.New()
	c, err := New("74LS04", "u1", eng, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	a := eng.CreateNet()
	y := eng.CreateNet()
	c.SetPinNode(1, a)
	c.SetPinNode(2, y)
	c.SetPinNode(14, eng.VCC())
	c.SetPinNode(7, eng.GND())
	c.Setup() // power stays off

	n, _ := eng.Net(y)
	if n.State() != netpkg.Float {
		t.Fatalf("unpowered inverter output = %s, want FLOAT", n.State())
	}
}

func TestLS32_ORTable(t *testing.T) {
	r, _ := buildChip(t, "74LS32", 14, 7, 14)
	r.drive(1, netpkg.Low)
	r.drive(2, netpkg.Low)
	if got := r.read(3); got != netpkg.Low {
		t.Fatalf("OR(LOW,LOW) = %s, want LOW", got)
	}
	r.drive(2, netpkg.High)
	if got := r.read(3); got != netpkg.High {
		t.Fatalf("OR(LOW,HIGH) = %s, want HIGH", got)
	}
}

func TestLS138_ExactlyOneLowWhenEnabled(t *testing.T) {
	r, _ := buildChip(t, "74LS138", 16, 8, 16)
	r.drive(ls138G1, netpkg.High)
	r.drive(ls138G2A, netpkg.Low)
	r.drive(ls138G2B, netpkg.Low)
	r.drive(ls138A, netpkg.High)
	r.drive(ls138B, netpkg.Low)
	r.drive(ls138C, netpkg.Low)

	lowCount := 0
	var lowPin int
	for _, y := range ls138Y {
		if r.read(y) == netpkg.Low {
			lowCount++
			lowPin = y
		}
	}
	if lowCount != 1 {
		t.Fatalf("enabled decoder asserted %d outputs LOW, want exactly 1", lowCount)
	}
	if lowPin != ls138Y[1] { // selected = 1 (A=1,B=0,C=0)
		t.Fatalf("wrong output asserted: pin %d, want Y1 (pin %d)", lowPin, ls138Y[1])
	}
}

func TestLS138_DisabledAllHigh(t *testing.T) {
	r, _ := buildChip(t, "74LS138", 16, 8, 16)
	r.drive(ls138G1, netpkg.Low) // disabled
	for _, y := range ls138Y {
		if got := r.read(y); got != netpkg.High {
			t.Fatalf("disabled decoder pin %d = %s, want HIGH", y, got)
		}
	}
}

func TestLS151_SelectsAddressedInput(t *testing.T) {
	r, _ := buildChip(t, "74LS151", 16, 8, 16)
	r.drive(ls151Strobe, netpkg.Low)
	for _, d := range ls151Data {
		r.drive(d, netpkg.Low)
	}
	r.drive(ls151Data[3], netpkg.High)
	r.drive(ls151A, netpkg.High)
	r.drive(ls151B, netpkg.High)
	r.drive(ls151C, netpkg.Low) // select = 3
	if got := r.read(ls151Y); got != netpkg.High {
		t.Fatalf("Y = %s, want HIGH (D3 selected)", got)
	}
}

func TestLS283_AddsWithCarry(t *testing.T) {
	r, _ := buildChip(t, "74LS283", 16, 8, 16)
	// 1111 (15) + 0001 (1) + C0=1 = 17 -> SUM=0001, C4=1
	for _, p := range ls283A {
		r.drive(p, netpkg.High)
	}
	r.drive(ls283B[0], netpkg.High)
	for _, p := range ls283B[1:] {
		r.drive(p, netpkg.Low)
	}
	r.drive(ls283C0, netpkg.High)

	want := []netpkg.State{netpkg.High, netpkg.Low, netpkg.Low, netpkg.Low}
	for i, p := range ls283Sum {
		if got := r.read(p); got != want[i] {
			t.Fatalf("SUM%d = %s, want %s", i+1, got, want[i])
		}
	}
	if got := r.read(ls283C4); got != netpkg.High {
		t.Fatalf("C4 = %s, want HIGH", got)
	}
}

func TestLS74_RisingEdgeLatchesD(t *testing.T) {
	r, _ := buildChip(t, "74LS74", 14, 7, 14)
	h := ls74Halves[0]
	r.drive(h.pr, netpkg.High)
	r.drive(h.clr, netpkg.High)
	r.drive(h.clk, netpkg.Low)
	r.drive(h.d, netpkg.High)

	if got := r.read(h.q); got == netpkg.High {
		t.Fatal("Q changed before a rising edge")
	}
	r.drive(h.clk, netpkg.High)
	if got := r.read(h.q); got != netpkg.High {
		t.Fatalf("Q after rising edge with D=HIGH = %s, want HIGH", got)
	}
	if got := r.read(h.qn); got != netpkg.Low {
		t.Fatalf("Q̄ = %s, want LOW", got)
	}
}

func TestLS74_AsyncClearOverridesClock(t *testing.T) {
	r, _ := buildChip(t, "74LS74", 14, 7, 14)
	h := ls74Halves[0]
	r.drive(h.pr, netpkg.High)
	r.drive(h.clr, netpkg.High)
	r.drive(h.d, netpkg.High)
	r.drive(h.clk, netpkg.Low)
	r.drive(h.clk, netpkg.High) // Q -> HIGH
	r.drive(h.clr, netpkg.Low)  // async clear asserted
	if got := r.read(h.q); got != netpkg.Low {
		t.Fatalf("Q under async clear = %s, want LOW", got)
	}
}

func TestLS76_JKToggle(t *testing.T) {
	r, _ := buildChip(t, "74LS76", 5, 7, 16)
	h := ls76Halves[0]
	r.drive(h.pr, netpkg.High)
	r.drive(h.clr, netpkg.High)
	r.drive(h.j, netpkg.High)
	r.drive(h.k, netpkg.High)
	r.drive(h.clk, netpkg.High)

	before := r.read(h.q)
	r.drive(h.clk, netpkg.Low) // falling edge -> toggle
	after := r.read(h.q)
	if before == after {
		t.Fatalf("J=K=1 falling edge did not toggle Q (stayed %s)", after)
	}
}

func TestLS90_DecadeRollover(t *testing.T) {
	r, _ := buildChip(t, "74LS90", 5, 10, 14)
	// Release R9 before R0: while R0 is still asserted it wins, so the
	// count starts from 0 rather than from a set-9.
	r.drive(ls90R91, netpkg.Low)
	r.drive(ls90R92, netpkg.Low)
	r.drive(ls90R01, netpkg.Low)
	r.drive(ls90R02, netpkg.Low)
	r.drive(ls90CKA, netpkg.High)
	r.drive(ls90CKB, netpkg.High)

	// wire QA -> CKB externally by driving CKB in lockstep with QA's
	// falling edges, exactly as the BCD-decade wiring does in circuit.
	for i := 0; i < 10; i++ {
		r.drive(ls90CKA, netpkg.Low)
		if r.read(ls90QA) == netpkg.Low { // QA just fell
			r.drive(ls90CKB, netpkg.Low)
			r.drive(ls90CKB, netpkg.High)
		}
		r.drive(ls90CKA, netpkg.High)
	}
	if got := r.read(ls90QA); got != netpkg.Low {
		t.Fatalf("after 10 cycles QA = %s, want LOW (mod-10 rollover)", got)
	}
	if got := r.read(ls90QD); got != netpkg.Low {
		t.Fatalf("after 10 cycles QD = %s, want LOW", got)
	}
}

func TestLS93_Mod16Rollover(t *testing.T) {
	r, _ := buildChip(t, "74LS93", 5, 10, 14)
	r.drive(ls93R01, netpkg.Low)
	r.drive(ls93R02, netpkg.Low)
	r.drive(ls93CKA, netpkg.High)
	r.drive(ls93CKB, netpkg.High)

	// wire QA -> CKB externally, as the full 4-bit ripple count does in
	// circuit, so a single clock on CKA drives all 16 counts.
	for i := 0; i < 16; i++ {
		r.drive(ls93CKA, netpkg.Low)
		if r.read(ls93QA) == netpkg.Low { // QA just fell
			r.drive(ls93CKB, netpkg.Low)
			r.drive(ls93CKB, netpkg.High)
		}
		r.drive(ls93CKA, netpkg.High)
	}
	for _, p := range []int{ls93QA, ls93QB, ls93QC, ls93QD} {
		if got := r.read(p); got != netpkg.Low {
			t.Fatalf("after 16 cycles pin %d = %s, want LOW (mod-16 rollover)", p, got)
		}
	}
}

func TestRegistry_ListAndUnknownPart(t *testing.T) {
	parts := List()
	if len(parts) != 16 {
		t.Fatalf("List() returned %d parts, want 16", len(parts))
	}
	if _, err := New("NOT-A-PART", "u1", engine.New(), zerolog.Nop()); err == nil {
		t.Fatal("expected an error for an unknown part number")
	}
}
