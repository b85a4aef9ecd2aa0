// Package chip implements the TTL Chip Framework: the abstract chip that
// exposes pin typing, power validation, TTL input coercion, re-entrant
// evaluation, and delayed output propagation on top of the net model. The
// 16-part catalogue built on this framework lives in package catalog.
//
// Per-part behavior is supplied through Evaluator, a single-method
// interface, following the pack's closest domain analogue, db47h/hwsim
// (other_examples), which models every part in a circuit as an interface
// with one method. This package has no func-typed Evaluator adapter.
package chip

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/advaitharyag/WebIC-Trainer/engine"
	netpkg "github.com/advaitharyag/WebIC-Trainer/net"
	"github.com/advaitharyag/WebIC-Trainer/scheduler"
	"github.com/advaitharyag/WebIC-Trainer/wiring"
)

// Proposal is one (pin, new level) entry an Evaluator returns for an OUTPUT
// pin.
type Proposal struct {
	Pin   int
	State netpkg.State
}

// Evaluator is the chip-specific combinational or sequential logic. It is
// implemented once per catalogue part (package catalog) and reads inputs
// back through the Chip it is attached to.
type Evaluator interface {
	Evaluate(c *Chip) []Proposal
}

// DefaultPowerPins returns the conventional VCC/GND pin numbers for a part
// of the given pin count, absent an override.
func DefaultPowerPins(pinCount int) (vcc, gnd int) {
	if pinCount == 16 {
		return 16, 8
	}
	return 14, 7
}

// outputDriver is the net.Driver installed on each OUTPUT pin's net. It is
// allocated once per pin and reused across net rebinds, so that re-adding
// it to a new net after a wiring rebuild or merge is always the same
// pointer-identity value.
type outputDriver struct {
	c   *Chip
	pin int
}

func (d *outputDriver) Value() netpkg.State {
	if !d.c.Powered() {
		return netpkg.Float
	}
	return d.c.outputRegister[d.pin]
}

// evalListener is the shared net.Listener installed on every INPUT, CLOCK,
// and POWER (VCC/GND) pin. A single instance suffices: it carries no
// per-pin state, it only ever calls back into Chip.triggerEvaluation.
type evalListener struct{ c *Chip }

func (l *evalListener) Notify(netpkg.State) { l.c.triggerEvaluation() }

// Chip is the abstract TTL part: pin typing and net bindings, power
// validation, TTL input coercion, the output register, propagation delay,
// and the re-entrancy guard described in spec.md §4.5. Chip-specific
// behavior is supplied by an Evaluator.
type Chip struct {
	ID       string
	Part     string
	PinCount int

	pinType map[int]wiring.PinType
	pinNet  map[int]uint64
	vccPin  int
	gndPin  int

	outputRegister map[int]netpkg.State
	outputDrivers  map[int]*outputDriver
	lastClock      map[int]netpkg.State

	propagationDelay scheduler.Time
	evaluating       bool

	eng      *engine.Engine
	log      zerolog.Logger
	impl     Evaluator
	listener *evalListener
}

// Config describes a chip's static shape at construction time.
type Config struct {
	ID               string
	Part             string
	PinCount         int
	PinTypes         map[int]wiring.PinType
	VCCPin, GNDPin   int // 0 means "use DefaultPowerPins(PinCount)"
	PropagationDelay scheduler.Time // 0 means the spec default of 10ns
	Impl             Evaluator
}

// New constructs a Chip from cfg, bound to eng. Pin nets must be bound with
// SetPinNode for every pin before calling Setup.
func New(eng *engine.Engine, log zerolog.Logger, cfg Config) *Chip {
	vcc, gnd := cfg.VCCPin, cfg.GNDPin
	if vcc == 0 || gnd == 0 {
		vcc, gnd = DefaultPowerPins(cfg.PinCount)
	}
	delay := cfg.PropagationDelay
	if delay == 0 {
		delay = 10
	}
	c := &Chip{
		ID:               cfg.ID,
		Part:             cfg.Part,
		PinCount:         cfg.PinCount,
		pinType:          cfg.PinTypes,
		pinNet:           make(map[int]uint64, cfg.PinCount),
		vccPin:           vcc,
		gndPin:           gnd,
		outputRegister:   make(map[int]netpkg.State),
		outputDrivers:    make(map[int]*outputDriver),
		lastClock:        make(map[int]netpkg.State),
		propagationDelay: delay,
		eng:              eng,
		log:              log,
		impl:             cfg.Impl,
	}
	c.listener = &evalListener{c: c}
	return c
}

// PinID returns the conventional pin identifier string for pin n of this
// chip, e.g. "ic-3-pin-5". See spec.md §6's pin identifier convention.
func (c *Chip) PinID(n int) string {
	return fmt.Sprintf("%s-pin-%d", c.ID, n)
}

// SetPinNode records which net pin n is currently bound to. It installs no
// drivers or listeners by itself — call Setup once every pin is bound.
func (c *Chip) SetPinNode(pin int, netID uint64) {
	c.pinNet[pin] = netID
}

// PinType returns the declared type of pin n.
func (c *Chip) PinType(pin int) wiring.PinType { return c.pinType[pin] }

// Setup runs the chip's one-time setup protocol (spec.md §4.5):
//  1. for each OUTPUT pin, install a driver and initialize its register to
//     Float;
//  2. for each INPUT/CLOCK pin, install the shared evaluation listener;
//  3. install the shared listener on VCC and GND too;
//  4. fire an initial evaluation.
func (c *Chip) Setup() {
	for pin := 1; pin <= c.PinCount; pin++ {
		switch c.pinType[pin] {
		case wiring.Output:
			c.outputRegister[pin] = netpkg.Float
			d := &outputDriver{c: c, pin: pin}
			c.outputDrivers[pin] = d
			if netID, ok := c.pinNet[pin]; ok {
				_ = c.eng.AddDriver(netID, d)
			}
		case wiring.Input, wiring.Clock, wiring.Power:
			if netID, ok := c.pinNet[pin]; ok {
				_ = c.eng.AddListener(netID, c.listener)
			}
		}
	}
	c.triggerEvaluation()
}

// Powered reports whether the chip currently has valid power: VCC net HIGH
// and GND net LOW. Any other combination (including either rail floating)
// is unpowered.
func (c *Chip) Powered() bool {
	vcc, ok := c.eng.Net(c.pinNet[c.vccPin])
	if !ok {
		return false
	}
	gnd, ok := c.eng.Net(c.pinNet[c.gndPin])
	if !ok {
		return false
	}
	return vcc.State() == netpkg.High && gnd.State() == netpkg.Low
}

// Input reads pin's net state with TTL floating-input coercion: a Float
// input reads as High. Error and driven values pass through unchanged.
func (c *Chip) Input(pin int) netpkg.State {
	n, ok := c.eng.Net(c.pinNet[pin])
	if !ok {
		return netpkg.High
	}
	if s := n.State(); s != netpkg.Float {
		return s
	}
	return netpkg.High
}

// ClockEdge implements the universal edge-detection rule of spec.md §4.6: it
// always updates pin's last-seen level (even when it reports no edge, and
// even when an evaluator ends up ignoring the result because an async
// override is active), and reports whether the transition from the
// previously stored level to the current one matches the requested
// polarity.
func (c *Chip) ClockEdge(pin int, rising bool) bool {
	cur := c.Input(pin)
	prev, had := c.lastClock[pin]
	c.lastClock[pin] = cur
	if !had {
		return false
	}
	if rising {
		return prev == netpkg.Low && cur == netpkg.High
	}
	return prev == netpkg.High && cur == netpkg.Low
}

// Snapshot is a read-only debug view of a chip's current output register
// and per-clock-pin last-seen level, for UI inspector panels and tests. It
// is an addition beyond spec.md, implied by §3's "internal state record".
type Snapshot struct {
	Part      string
	ID        string
	Powered   bool
	Outputs   map[int]netpkg.State
	LastClock map[int]netpkg.State
}

// Snapshot returns a copy of the chip's externally-visible state.
func (c *Chip) Snapshot() Snapshot {
	outs := make(map[int]netpkg.State, len(c.outputRegister))
	for k, v := range c.outputRegister {
		outs[k] = v
	}
	clocks := make(map[int]netpkg.State, len(c.lastClock))
	for k, v := range c.lastClock {
		clocks[k] = v
	}
	return Snapshot{Part: c.Part, ID: c.ID, Powered: c.Powered(), Outputs: outs, LastClock: clocks}
}

// triggerEvaluation is re-entrancy-guarded: a nested trigger (e.g. from a
// listener the chip itself installs on a power pin, firing synchronously
// while evaluate() is still on the stack) is dropped, so the outer
// evaluation's proposals are authoritative. The guard does not, and must
// not, suppress legitimate scheduled re-evaluation across simulated time —
// only synchronous re-entry within one call.
func (c *Chip) triggerEvaluation() {
	if c.evaluating {
		return
	}
	c.evaluating = true
	defer func() { c.evaluating = false }()

	proposals := c.safeEvaluate()
	for _, p := range proposals {
		if c.outputRegister[p.Pin] == p.State {
			continue
		}
		c.outputRegister[p.Pin] = p.State
		netID, ok := c.pinNet[p.Pin]
		if !ok {
			continue
		}
		_ = c.eng.ScheduleNodeUpdate(netID, c.propagationDelay)
	}
}

// TriggerEvaluation is the exported form, for UI-driven manual re-evaluation
// (spec.md §6: chip.trigger_evaluation()).
func (c *Chip) TriggerEvaluation() { c.triggerEvaluation() }

func (c *Chip) safeEvaluate() (proposals []Proposal) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Warn().Str("chip", c.ID).Str("part", c.Part).Interface("recovered", r).
				Msg("chip evaluator panicked; outputs unchanged this cycle")
			proposals = nil
		}
	}()
	return c.impl.Evaluate(c)
}

// HandleNetUpdate is the chip's half of the net-rebind protocol: whenever
// the Wiring Graph's on_net_update names one of this chip's pins, the chip
// updates its cached net reference for that pin, re-registers the pin's
// driver or listener on the new net, and re-evaluates. Re-registering on a
// merge target that already carries the old driver/listener forward (the
// engine's MergeNets moves them automatically) is a harmless no-op in
// effect — Resolve treats a duplicate driver entry identically to a single
// one, and a duplicate listener firing just re-runs a guarded, idempotent
// evaluation — so this handler does not need to distinguish a merge
// rebind from a rebuild rebind (which hands the chip a brand-new, empty
// net that does need the registration).
func (c *Chip) HandleNetUpdate(pins []string, newNetID uint64) {
	changed := false
	for pin := 1; pin <= c.PinCount; pin++ {
		if !containsString(pins, c.PinID(pin)) {
			continue
		}
		c.pinNet[pin] = newNetID
		changed = true
		switch c.pinType[pin] {
		case wiring.Output:
			if d, ok := c.outputDrivers[pin]; ok {
				_ = c.eng.AddDriver(newNetID, d)
			}
		case wiring.Input, wiring.Clock, wiring.Power:
			_ = c.eng.AddListener(newNetID, c.listener)
		}
	}
	if changed {
		c.triggerEvaluation()
	}
}

// Reset clears the chip's internal state (output register, last-seen clock
// levels) without draining the scheduler, per spec.md §7. It does not by
// itself force a re-evaluation; callers that want driven outputs to reflect
// the cleared state should call TriggerEvaluation afterward.
func (c *Chip) Reset() {
	for pin := range c.outputRegister {
		c.outputRegister[pin] = netpkg.Float
	}
	c.lastClock = make(map[int]netpkg.State)
	c.evaluating = false
	if r, ok := c.impl.(interface{ Reset() }); ok {
		r.Reset()
	}
}

func containsString(xs []string, target string) bool {
	for _, x := range xs {
		if x == target {
			return true
		}
	}
	return false
}
