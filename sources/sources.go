// Package sources implements the external signal sources of spec.md §4.7:
// the toggle switch, periodic clock generator, mono-pulse button, and LED
// sink that drive or observe nets from outside the chip catalogue.
package sources

import (
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/rs/zerolog"

	"github.com/advaitharyag/WebIC-Trainer/engine"
	netpkg "github.com/advaitharyag/WebIC-Trainer/net"
	"github.com/advaitharyag/WebIC-Trainer/scheduler"
)

// Switch is a toggle switch: it owns a net and a boolean position. Its
// driver reads HIGH/LOW from the position while the engine is powered, and
// FLOAT otherwise.
type Switch struct {
	eng *engine.Engine
	net uint64
	on  bool
}

// NewSwitch creates a switch bound to eng's netID, initially in the off
// (LOW) position.
func NewSwitch(eng *engine.Engine, netID uint64) *Switch {
	s := &Switch{eng: eng, net: netID}
	_ = eng.AddDriver(netID, s)
	return s
}

// Value implements net.Driver.
func (s *Switch) Value() netpkg.State {
	if !s.eng.Powered() {
		return netpkg.Float
	}
	if s.on {
		return netpkg.High
	}
	return netpkg.Low
}

// Set changes the switch position and re-resolves its net at delay 0.
func (s *Switch) Set(on bool) {
	if on == s.on {
		return
	}
	s.on = on
	_ = s.eng.ScheduleNodeUpdate(s.net, 0)
}

// On reports the switch's current position.
func (s *Switch) On() bool { return s.on }

// Clock is a periodic square-wave generator. It schedules its own toggle at
// halfPeriod = 500ms / frequency_hz worth of logical nanoseconds, and can
// be stopped (the retained interval handle is simply a boolean flag,
// checked before each re-schedule, since the kernel has no real interval
// timer to cancel — only the logical scheduler).
type Clock struct {
	eng        *engine.Engine
	net        uint64
	halfPeriod scheduler.Time
	high       bool
	running    bool
}

// NewClock creates a clock bound to eng's netID at frequencyHz, initially
// stopped.
func NewClock(eng *engine.Engine, netID uint64, frequencyHz float64) *Clock {
	c := &Clock{
		eng:        eng,
		net:        netID,
		halfPeriod: scheduler.Time(float64(500*time.Millisecond) / frequencyHz),
	}
	_ = eng.AddDriver(netID, c)
	return c
}

// Value implements net.Driver.
func (c *Clock) Value() netpkg.State {
	if !c.eng.Powered() {
		return netpkg.Float
	}
	if c.high {
		return netpkg.High
	}
	return netpkg.Low
}

// Start begins toggling at halfPeriod intervals.
func (c *Clock) Start() {
	if c.running {
		return
	}
	c.running = true
	c.scheduleNext()
}

// Stop halts future toggles. The in-flight tick (if one is already queued)
// still fires, but re-checks running and declines to reschedule.
func (c *Clock) Stop() { c.running = false }

func (c *Clock) scheduleNext() {
	c.eng.Schedule(c.halfPeriod, func() {
		if !c.running {
			return
		}
		c.high = !c.high
		_ = c.eng.ScheduleNodeUpdate(c.net, 0)
		c.scheduleNext()
	})
}

// Button is a mono-pulse push button: pressing it drives the net HIGH for a
// fixed window, after which it reverts to LOW. A press during the active
// window does not extend or restart it.
//
// The no-retrigger rule is implemented with go-catrate's sliding-window
// Limiter rather than a hand-rolled timestamp comparison — the same
// library the wiring graph uses to throttle diagnostic noise, here put to
// its more natural use of "at most one triggering event per window".
type Button struct {
	eng     *engine.Engine
	net     uint64
	window  scheduler.Time
	active  bool
	limiter *catrate.Limiter
}

// NewButton creates a mono-pulse button bound to eng's netID, with the
// pulse staying HIGH for window nanoseconds after a press.
func NewButton(eng *engine.Engine, netID uint64, window time.Duration) *Button {
	b := &Button{
		eng:     eng,
		net:     netID,
		window:  scheduler.Time(window),
		limiter: catrate.NewLimiter(map[time.Duration]int{window: 1}),
	}
	_ = eng.AddDriver(netID, b)
	return b
}

// Value implements net.Driver.
func (b *Button) Value() netpkg.State {
	if !b.eng.Powered() {
		return netpkg.Float
	}
	if b.active {
		return netpkg.High
	}
	return netpkg.Low
}

// Press drives the net HIGH for the configured window, unless a press is
// already active.
func (b *Button) Press() {
	if _, allowed := b.limiter.Allow("press"); !allowed {
		return
	}
	b.active = true
	_ = b.eng.ScheduleNodeUpdate(b.net, 0)
	b.eng.Schedule(b.window, func() {
		b.active = false
		_ = b.eng.ScheduleNodeUpdate(b.net, 0)
	})
}

// LEDState mirrors a net's state as a widget-facing tri-state indicator.
type LEDState uint8

const (
	LEDOff LEDState = iota
	LEDOn
	LEDFault
)

func (s LEDState) String() string {
	switch s {
	case LEDOn:
		return "ON"
	case LEDFault:
		return "FAULT"
	default:
		return "OFF"
	}
}

// LED attaches a listener to a net and reflects its state as ON, OFF, or a
// fault indicator.
type LED struct {
	state LEDState
	log   zerolog.Logger
	// OnChange, if set, fires whenever the reflected state changes.
	OnChange func(LEDState)
}

// NewLED attaches an LED to eng's netID.
func NewLED(eng *engine.Engine, netID uint64, log zerolog.Logger) *LED {
	l := &LED{log: log}
	_ = eng.AddListener(netID, l)
	return l
}

// Notify implements net.Listener.
func (l *LED) Notify(s netpkg.State) {
	next := LEDOff
	switch s {
	case netpkg.High:
		next = LEDOn
	case netpkg.Error:
		next = LEDFault
	}
	if next == l.state {
		return
	}
	l.state = next
	if l.state == LEDFault {
		l.log.Warn().Msg("led observed a contended net")
	}
	if l.OnChange != nil {
		l.OnChange(l.state)
	}
}

// State returns the LED's current indicator.
func (l *LED) State() LEDState { return l.state }
