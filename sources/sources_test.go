package sources

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/advaitharyag/WebIC-Trainer/engine"
	netpkg "github.com/advaitharyag/WebIC-Trainer/net"
	"github.com/advaitharyag/WebIC-Trainer/scheduler"
)

func TestSwitch_FollowsPositionWhenPowered(t *testing.T) {
	eng := engine.New()
	netID := eng.CreateNet()
	sw := NewSwitch(eng, netID)
	eng.SetPower(true)
	eng.Step(0)

	n, _ := eng.Net(netID)
	if got := n.State(); got != netpkg.Low {
		t.Fatalf("initial state = %v, want Low", got)
	}

	sw.Set(true)
	eng.Step(0)
	if got := n.State(); got != netpkg.High {
		t.Fatalf("after Set(true) = %v, want High", got)
	}
}

func TestSwitch_FloatsWhenUnpowered(t *testing.T) {
	eng := engine.New()
	netID := eng.CreateNet()
	NewSwitch(eng, netID)
	eng.Step(0)

	n, _ := eng.Net(netID)
	if got := n.State(); got != netpkg.Float {
		t.Fatalf("unpowered state = %v, want Float", got)
	}
}

func TestClock_TogglesAtHalfPeriod(t *testing.T) {
	eng := engine.New()
	netID := eng.CreateNet()
	c := NewClock(eng, netID, 1000) // 1kHz -> halfPeriod 500us
	eng.SetPower(true)
	eng.Step(0)
	c.Start()

	n, _ := eng.Net(netID)
	if got := n.State(); got != netpkg.Low {
		t.Fatalf("initial state = %v, want Low", got)
	}

	eng.Step(c.halfPeriod)
	if got := n.State(); got != netpkg.High {
		t.Fatalf("after one half period = %v, want High", got)
	}

	eng.Step(c.halfPeriod)
	if got := n.State(); got != netpkg.Low {
		t.Fatalf("after two half periods = %v, want Low", got)
	}
}

func TestClock_StopHaltsToggling(t *testing.T) {
	eng := engine.New()
	netID := eng.CreateNet()
	c := NewClock(eng, netID, 1000)
	eng.SetPower(true)
	eng.Step(0)
	c.Start()

	eng.Step(c.halfPeriod)
	c.Stop()
	eng.Step(c.halfPeriod * 4)

	n, _ := eng.Net(netID)
	if got := n.State(); got != netpkg.High {
		t.Fatalf("after stop, state drifted to %v, want High (frozen)", got)
	}
}

func TestButton_PulsesThenReleases(t *testing.T) {
	eng := engine.New()
	netID := eng.CreateNet()
	b := NewButton(eng, netID, 100*time.Millisecond)
	eng.SetPower(true)
	eng.Step(0)

	n, _ := eng.Net(netID)
	if got := n.State(); got != netpkg.Low {
		t.Fatalf("idle state = %v, want Low", got)
	}

	b.Press()
	eng.Step(0)
	if got := n.State(); got != netpkg.High {
		t.Fatalf("during pulse = %v, want High", got)
	}

	eng.Step(scheduler.Time(100 * time.Millisecond))
	if got := n.State(); got != netpkg.Low {
		t.Fatalf("after pulse window = %v, want Low", got)
	}
}

func TestButton_NoRetriggerDuringActiveWindow(t *testing.T) {
	eng := engine.New()
	netID := eng.CreateNet()
	b := NewButton(eng, netID, 100*time.Millisecond)
	eng.SetPower(true)
	eng.Step(0)

	b.Press()
	eng.Step(scheduler.Time(50 * time.Millisecond))
	b.Press() // within window: ignored, must not extend the pulse
	eng.Step(scheduler.Time(60 * time.Millisecond))

	n, _ := eng.Net(netID)
	if got := n.State(); got != netpkg.Low {
		t.Fatalf("state at t=110ms = %v, want Low (original window should have elapsed)", got)
	}
}

func TestLED_ReflectsNetState(t *testing.T) {
	eng := engine.New()
	netID := eng.CreateNet()
	led := NewLED(eng, netID, zerolog.Nop())

	if led.State() != LEDOff {
		t.Fatalf("initial LED state = %v, want Off", led.State())
	}

	_ = eng.AddDriver(netID, netpkg.DriverFunc(func() netpkg.State { return netpkg.High }))
	eng.Step(0)
	if led.State() != LEDOn {
		t.Fatalf("LED state = %v, want On", led.State())
	}

	_ = eng.AddDriver(netID, netpkg.DriverFunc(func() netpkg.State { return netpkg.Low }))
	eng.Step(0)
	if led.State() != LEDFault {
		t.Fatalf("LED state = %v, want Fault (two conflicting drivers)", led.State())
	}
}

func TestLED_OnChangeFires(t *testing.T) {
	eng := engine.New()
	netID := eng.CreateNet()
	led := NewLED(eng, netID, zerolog.Nop())

	var seen []LEDState
	led.OnChange = func(s LEDState) { seen = append(seen, s) }

	_ = eng.AddDriver(netID, netpkg.DriverFunc(func() netpkg.State { return netpkg.High }))
	eng.Step(0)

	if len(seen) != 1 || seen[0] != LEDOn {
		t.Fatalf("OnChange history = %v, want [On]", seen)
	}
}
