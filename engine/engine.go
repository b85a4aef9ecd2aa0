// Package engine implements the Circuit Engine: it owns the set of Nets and
// integrates the four-valued resolver (package net) with the discrete-event
// Scheduler, exposing the create/merge/drive/listen/schedule surface that
// the Wiring Graph and the TTL chip framework are built on top of.
package engine

import (
	"github.com/rs/zerolog"

	netpkg "github.com/advaitharyag/WebIC-Trainer/net"
	"github.com/advaitharyag/WebIC-Trainer/scheduler"
)

// Engine aggregates the net arena and the scheduler. Net references handed
// out to callers are stable uint64 ids rather than pointers — per the
// design note on net identity after merge, a merge retires one id and the
// survivor keeps the other, so any collaborator caching a *net.Net directly
// would be left holding a stale pointer with no way to learn the net was
// retired. Ids are arena handles; Net looks one up on demand.
type Engine struct {
	sched *scheduler.Scheduler
	log   zerolog.Logger

	nets      map[uint64]*netpkg.Net
	nextNetID uint64

	powered bool
	vccID   uint64
	gndID   uint64
}

// New constructs an Engine with power initially off and its two rail nets
// (VCC, GND) already created.
func New(opts ...Option) *Engine {
	cfg := resolveOptions(opts)
	e := &Engine{
		sched: scheduler.New(),
		log:   cfg.log,
		nets:  make(map[uint64]*netpkg.Net),
	}
	e.sched.OnTaskError = func(r any) {
		e.log.Warn().Interface("recovered", r).Msg("scheduled task panicked; kernel continues")
	}

	e.vccID = e.CreateNet()
	e.gndID = e.CreateNet()
	vcc, _ := e.Net(e.vccID)
	vcc.IsVCC = true
	gnd, _ := e.Net(e.gndID)
	gnd.IsGND = true

	e.AddDriver(e.vccID, netpkg.DriverFunc(func() netpkg.State {
		if e.powered {
			return netpkg.High
		}
		return netpkg.Float
	}))
	e.AddDriver(e.gndID, netpkg.DriverFunc(func() netpkg.State {
		if e.powered {
			return netpkg.Low
		}
		return netpkg.Float
	}))

	return e
}

// VCC returns the id of the VCC rail net.
func (e *Engine) VCC() uint64 { return e.vccID }

// GND returns the id of the GND rail net.
func (e *Engine) GND() uint64 { return e.gndID }

// Powered reports whether system power is currently on.
func (e *Engine) Powered() bool { return e.powered }

// SetPower toggles system power. Both rail nets are re-resolved at delay 0
// so every chip listening on them re-runs trigger_evaluation, per spec.md
// §4.5's setup protocol ("power cycling must re-drive outputs").
func (e *Engine) SetPower(on bool) {
	if on == e.powered {
		return
	}
	e.powered = on
	e.log.Info().Bool("on", on).Msg("system power toggled")
	_ = e.ScheduleNodeUpdate(e.vccID, 0)
	_ = e.ScheduleNodeUpdate(e.gndID, 0)
}

// CreateNet returns a fresh net in the Float state and its id.
func (e *Engine) CreateNet() uint64 {
	e.nextNetID++
	id := e.nextNetID
	e.nets[id] = netpkg.New(id)
	return id
}

// Net looks up a net by id.
func (e *Engine) Net(id uint64) (*netpkg.Net, bool) {
	n, ok := e.nets[id]
	return n, ok
}

// AddDriver attaches d to the given net and enqueues an Update at delay 0
// so dependents observe the change.
func (e *Engine) AddDriver(id uint64, d netpkg.Driver) error {
	n, ok := e.nets[id]
	if !ok {
		return ErrUnknownNet
	}
	n.AddDriver(d)
	return e.ScheduleNodeUpdate(id, 0)
}

// AddListener attaches l to the given net and invokes it once immediately
// with the net's current state, per spec.
func (e *Engine) AddListener(id uint64, l netpkg.Listener) error {
	n, ok := e.nets[id]
	if !ok {
		return ErrUnknownNet
	}
	n.AddListener(l)
	l.Notify(n.State())
	return nil
}

// ScheduleNodeUpdate enqueues net.Update() to run at Now()+delay.
func (e *Engine) ScheduleNodeUpdate(id uint64, delay scheduler.Time) error {
	n, ok := e.nets[id]
	if !ok {
		return ErrUnknownNet
	}
	e.sched.Schedule(delay, func() {
		if n.Update() {
			e.log.Debug().Uint64("net", id).Str("state", n.State().String()).Msg("net transitioned")
		}
	})
	return nil
}

// Schedule enqueues a bare task, independent of any net.
func (e *Engine) Schedule(delay scheduler.Time, task scheduler.Task) {
	e.sched.Schedule(delay, task)
}

// MergeNets moves b's drivers and listeners into a, retires b, and
// schedules a re-resolve of a at delay 0. It returns a's id (the spec's
// "merge_nets(a, b) -> a"). Callers holding a reference to b (by id) must
// learn of the merge through the Wiring Graph's on_net_update notification
// and rebind to a — the engine itself does not track who is watching which
// id.
func (e *Engine) MergeNets(a, b uint64) (uint64, error) {
	na, ok := e.nets[a]
	if !ok {
		return 0, ErrUnknownNet
	}
	nb, ok := e.nets[b]
	if !ok {
		return 0, ErrUnknownNet
	}
	if a == b {
		return a, nil
	}
	na.Merge(nb)
	delete(e.nets, b)
	e.log.Debug().Uint64("survivor", a).Uint64("retired", b).Msg("nets merged")
	return a, e.ScheduleNodeUpdate(a, 0)
}

// Now returns the engine's current logical time.
func (e *Engine) Now() scheduler.Time { return e.sched.Now() }

// Step advances logical time by dt nanoseconds, draining ripe events.
func (e *Engine) Step(dt scheduler.Time) { e.sched.Step(dt) }

// Run advances logical time toward Now()+duration in event-sized jumps.
func (e *Engine) Run(duration scheduler.Time) { e.sched.Run(duration) }
