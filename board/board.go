// Package board is the socket manager that ties the Circuit Engine, the
// Wiring Graph, and the TTL Chip Framework together behind the pin
// identifier convention of spec.md §6: a chip's pins are registered with
// the graph as "<socket_id>-pin-<N>", and the graph's on_net_update
// callback is routed back to the owning chip by socket id, so a wire
// added or removed anywhere on the board reaches every affected chip's
// HandleNetUpdate.
package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/advaitharyag/WebIC-Trainer/catalog"
	"github.com/advaitharyag/WebIC-Trainer/chip"
	"github.com/advaitharyag/WebIC-Trainer/engine"
	"github.com/advaitharyag/WebIC-Trainer/sources"
	"github.com/advaitharyag/WebIC-Trainer/wiring"
)

// Board owns the engine, the wiring graph, and every chip socketed onto it.
type Board struct {
	Engine *engine.Engine
	Wiring *wiring.Graph
	log    zerolog.Logger

	sockets  map[string]*chip.Chip
	nextPart int
}

// New constructs an empty Board with a fresh Engine and Wiring Graph.
func New(log zerolog.Logger) *Board {
	eng := engine.New(engine.WithLogger(log))
	b := &Board{
		Engine:  eng,
		Wiring:  wiring.New(eng, log),
		log:     log,
		sockets: make(map[string]*chip.Chip),
	}
	b.Wiring.OnNetUpdate = b.routeNetUpdate
	return b
}

// socketOf extracts the socket id from a chip pin identifier of the form
// "<socket_id>-pin-<N>", returning "" if pin doesn't match that shape
// (e.g. the rail pins "vcc"/"gnd" or a switch's "switch-<i>").
func socketOf(pin string) string {
	i := strings.LastIndex(pin, "-pin-")
	if i < 0 {
		return ""
	}
	return pin[:i]
}

func (b *Board) routeNetUpdate(pins []string, newNet uint64) {
	touched := make(map[string]struct{})
	for _, p := range pins {
		if s := socketOf(p); s != "" {
			touched[s] = struct{}{}
		}
	}
	for s := range touched {
		if c, ok := b.sockets[s]; ok {
			c.HandleNetUpdate(pins, newNet)
		}
	}
}

// AddChip instantiates part from the catalogue under socketID, registers
// every pin with the wiring graph under the "<socketID>-pin-<N>"
// convention, and leaves it powered down and unwired until the caller
// wires it up and calls Power/Step.
func (b *Board) AddChip(part, socketID string) (*chip.Chip, error) {
	c, err := catalog.New(part, socketID, b.Engine, b.log)
	if err != nil {
		return nil, err
	}
	info := partInfo(part)
	for pin := 1; pin <= info.PinCount; pin++ {
		netID := b.Engine.CreateNet()
		c.SetPinNode(pin, netID)
		b.Wiring.RegisterPin(c.PinID(pin), netID, c.PinType(pin), socketID)
	}
	c.Setup()
	b.sockets[socketID] = c
	return c, nil
}

func partInfo(part string) catalog.PartInfo {
	for _, p := range catalog.List() {
		if p.Part == part {
			return p
		}
	}
	return catalog.PartInfo{}
}

// Wire connects two pin identifiers, delegating validation and net merge
// to the wiring graph.
func (b *Board) Wire(source, target, color string) (uint64, error) {
	return b.Wiring.AddWire(source, target, color)
}

// Unwire removes a previously added wire by id.
func (b *Board) Unwire(id uint64) error {
	return b.Wiring.RemoveWire(id)
}

// Chip returns the chip socketed under id, if any.
func (b *Board) Chip(id string) (*chip.Chip, bool) {
	c, ok := b.sockets[id]
	return c, ok
}

// PinFor returns the conventional pin identifier for pin n of the chip
// socketed under id.
func PinFor(id string, n int) string {
	return id + "-pin-" + strconv.Itoa(n)
}

// Power toggles board-wide power through the engine.
func (b *Board) Power(on bool) { b.Engine.SetPower(on) }

// AddSwitch creates a toggle switch on a fresh net, registers its pin under
// the "switch-<i>" convention, and returns both the switch and its pin id.
func (b *Board) AddSwitch() (*sources.Switch, string) {
	b.nextPart++
	netID := b.Engine.CreateNet()
	pin := fmt.Sprintf("switch-%d", b.nextPart)
	b.Wiring.RegisterPin(pin, netID, wiring.Output, "")
	return sources.NewSwitch(b.Engine, netID), pin
}

// AddLED attaches an LED sink to the given pin's current net.
func (b *Board) AddLED(pin string) (*sources.LED, error) {
	netID, ok := b.Wiring.Net(pin)
	if !ok {
		return nil, fmt.Errorf("board: unknown pin %q", pin)
	}
	return sources.NewLED(b.Engine, netID, b.log), nil
}
