package board

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	netpkg "github.com/advaitharyag/WebIC-Trainer/net"
	"github.com/advaitharyag/WebIC-Trainer/scheduler"
	"github.com/advaitharyag/WebIC-Trainer/sources"
)

// Scenario 1: NAND with floating inputs.
func TestScenario_NANDFloatingInputs(t *testing.T) {
	b := New(zerolog.Nop())
	if _, err := b.AddChip("74LS00", "u1"); err != nil {
		t.Fatalf("AddChip: %v", err)
	}
	if _, err := b.Wire("vcc", PinFor("u1", 14), ""); err != nil {
		t.Fatalf("wire VCC: %v", err)
	}
	if _, err := b.Wire("gnd", PinFor("u1", 7), ""); err != nil {
		t.Fatalf("wire GND: %v", err)
	}
	b.Power(true)
	b.Engine.Step(100)

	netID, _ := b.Wiring.Net(PinFor("u1", 3))
	n, _ := b.Engine.Net(netID)
	if got := n.State(); got != netpkg.Low {
		t.Fatalf("pin 3 = %v, want Low (both inputs float High, NAND=Low)", got)
	}
}

// Scenario 2: divide-by-two via LS74.
func TestScenario_DivideByTwoLS74(t *testing.T) {
	b := New(zerolog.Nop())
	if _, err := b.AddChip("74LS74", "u1"); err != nil {
		t.Fatalf("AddChip: %v", err)
	}
	must := func(_ uint64, err error) {
		if err != nil {
			t.Fatalf("wire: %v", err)
		}
	}
	must(b.Wire("vcc", PinFor("u1", 14), ""))
	must(b.Wire("gnd", PinFor("u1", 7), ""))
	must(b.Wire(PinFor("u1", 2), PinFor("u1", 6), "")) // D1 <- Q1-bar
	must(b.Wire("vcc", PinFor("u1", 1), ""))           // CLR-bar tied high
	must(b.Wire("vcc", PinFor("u1", 4), ""))           // PR-bar tied high
	b.Power(true)
	b.Engine.Step(0)

	clkNet, _ := b.Wiring.Net(PinFor("u1", 3))
	clk := sources.NewClock(b.Engine, clkNet, 1) // 1 Hz
	clk.Start()

	qNet, _ := b.Wiring.Net(PinFor("u1", 5))
	n, _ := b.Engine.Net(qNet)

	toggles := 0
	last := n.State()
	halfPeriod := scheduler.Time(500 * time.Millisecond)
	for i := 0; i < 20; i++ { // ten full clock periods = 20 half-periods
		b.Engine.Step(halfPeriod)
		if n.State() != last {
			toggles++
			last = n.State()
		}
	}
	if toggles != 10 {
		t.Fatalf("Q1 toggled %d times over ten rising edges, want 10", toggles)
	}
}

// Scenario 3: short circuit between two LS04 outputs, observed by an LED.
func TestScenario_ShortCircuitFaultLED(t *testing.T) {
	b := New(zerolog.Nop())
	if _, err := b.AddChip("74LS04", "u1"); err != nil {
		t.Fatalf("AddChip u1: %v", err)
	}
	if _, err := b.AddChip("74LS04", "u2"); err != nil {
		t.Fatalf("AddChip u2: %v", err)
	}
	must := func(_ uint64, err error) {
		if err != nil {
			t.Fatalf("wire: %v", err)
		}
	}
	must(b.Wire("vcc", PinFor("u1", 14), ""))
	must(b.Wire("gnd", PinFor("u1", 7), ""))
	must(b.Wire("vcc", PinFor("u2", 14), ""))
	must(b.Wire("gnd", PinFor("u2", 7), ""))
	must(b.Wire("gnd", PinFor("u1", 1), ""))  // u1 input grounded -> output High
	must(b.Wire("vcc", PinFor("u2", 1), ""))  // u2 input tied High -> output Low
	// Two outputs cannot be wired directly (OUTPUT_OUTPUT), so both are
	// joined through u1's unused input pin 3 onto one shared net.
	must(b.Wire(PinFor("u1", 2), PinFor("u1", 3), ""))
	must(b.Wire(PinFor("u2", 2), PinFor("u1", 3), ""))
	b.Power(true)
	b.Engine.Step(100)

	led, err := b.AddLED(PinFor("u1", 2))
	if err != nil {
		t.Fatalf("AddLED: %v", err)
	}
	b.Engine.Step(100)

	if led.State() != sources.LEDFault {
		t.Fatalf("LED state = %v, want Fault", led.State())
	}
}

// Scenario 4: removing a wire splits the net; the downstream input floats
// high independent of the switch.
func TestScenario_WireRemovalSplitsNet(t *testing.T) {
	b := New(zerolog.Nop())
	if _, err := b.AddChip("74LS04", "u1"); err != nil {
		t.Fatalf("AddChip u1: %v", err)
	}
	if _, err := b.AddChip("74LS32", "u2"); err != nil {
		t.Fatalf("AddChip u2: %v", err)
	}
	sw, swPin := b.AddSwitch()

	must := func(id uint64, err error) uint64 {
		if err != nil {
			t.Fatalf("wire: %v", err)
		}
		return id
	}
	must(b.Wire("vcc", PinFor("u1", 14), ""))
	must(b.Wire("gnd", PinFor("u1", 7), ""))
	must(b.Wire("vcc", PinFor("u2", 14), ""))
	must(b.Wire("gnd", PinFor("u2", 7), ""))
	must(b.Wire(swPin, PinFor("u1", 1), ""))
	midWire := must(b.Wire(PinFor("u1", 2), PinFor("u2", 1), ""))
	b.Power(true)
	b.Engine.Step(100)

	if err := b.Unwire(midWire); err != nil {
		t.Fatalf("Unwire: %v", err)
	}
	b.Engine.Step(100)

	sw.Set(true)
	b.Engine.Step(100)

	netID, _ := b.Wiring.Net(PinFor("u2", 1))
	n, _ := b.Engine.Net(netID)
	if got := n.State(); got != netpkg.Float {
		t.Fatalf("u2 pin 1 net state = %v, want Float (orphaned by wire removal)", got)
	}
}

// Scenario 5: power cycling a cross-coupled NAND latch.
func TestScenario_PowerCycleLatch(t *testing.T) {
	b := New(zerolog.Nop())
	if _, err := b.AddChip("74LS00", "u1"); err != nil {
		t.Fatalf("AddChip: %v", err)
	}
	must := func(_ uint64, err error) {
		if err != nil {
			t.Fatalf("wire: %v", err)
		}
	}
	must(b.Wire("vcc", PinFor("u1", 14), ""))
	must(b.Wire("gnd", PinFor("u1", 7), ""))
	must(b.Wire(PinFor("u1", 3), PinFor("u1", 4), "")) // gate1.Y -> gate2.A
	must(b.Wire(PinFor("u1", 6), PinFor("u1", 1), "")) // gate2.Y -> gate1.A
	must(b.Wire("gnd", PinFor("u1", 2), ""))           // force a defined state
	b.Power(true)
	b.Engine.Step(100)

	b.Power(false)
	b.Engine.Step(0)
	b.Engine.Step(10) // propagation delay

	yNet, _ := b.Wiring.Net(PinFor("u1", 3))
	n, _ := b.Engine.Net(yNet)
	if got := n.State(); got != netpkg.Float {
		t.Fatalf("during power-off, Y1 = %v, want Float", got)
	}

	b.Power(true)
	b.Engine.Step(0)
	b.Engine.Step(10)
	if got := n.State(); got == netpkg.Float || got == netpkg.Error {
		t.Fatalf("after power restoration, Y1 = %v, want a resolved state", got)
	}
}

// Scenario 6: ripple adder.
func TestScenario_RippleAdder(t *testing.T) {
	b := New(zerolog.Nop())
	if _, err := b.AddChip("74LS283", "u1"); err != nil {
		t.Fatalf("AddChip: %v", err)
	}
	must := func(_ uint64, err error) {
		if err != nil {
			t.Fatalf("wire: %v", err)
		}
	}
	must(b.Wire("vcc", PinFor("u1", 16), ""))
	must(b.Wire("gnd", PinFor("u1", 8), ""))

	// A=0101 on pins 5,3,14,12 ; B=0011 on pins 6,2,15,11 ; C0=gnd on pin 7.
	aBits := []struct {
		pin  int
		high bool
	}{{5, true}, {3, false}, {14, true}, {12, false}}
	bBits := []struct {
		pin  int
		high bool
	}{{6, true}, {2, true}, {15, false}, {11, false}}
	for _, bit := range aBits {
		rail := "gnd"
		if bit.high {
			rail = "vcc"
		}
		must(b.Wire(rail, PinFor("u1", bit.pin), ""))
	}
	for _, bit := range bBits {
		rail := "gnd"
		if bit.high {
			rail = "vcc"
		}
		must(b.Wire(rail, PinFor("u1", bit.pin), ""))
	}
	must(b.Wire("gnd", PinFor("u1", 7), ""))
	b.Power(true)
	b.Engine.Step(11)

	sumPins := []int{4, 1, 13, 10} // S0..S3
	want := []bool{false, false, false, true} // 1000 binary, LSB first
	for i, pin := range sumPins {
		netID, _ := b.Wiring.Net(PinFor("u1", pin))
		n, _ := b.Engine.Net(netID)
		got := n.State() == netpkg.High
		if got != want[i] {
			t.Fatalf("SUM bit %d = %v, want %v", i, got, want[i])
		}
	}
	c4Net, _ := b.Wiring.Net(PinFor("u1", 9))
	n, _ := b.Engine.Net(c4Net)
	if n.State() != netpkg.Low {
		t.Fatalf("C4 = %v, want Low", n.State())
	}
}
