package catalog

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/advaitharyag/WebIC-Trainer/chip"
	"github.com/advaitharyag/WebIC-Trainer/engine"
)

// Engine and Logger alias the framework's construction dependencies, so
// catalogue part constructors don't need to import chip/engine/zerolog
// directly under different names.
type (
	Engine = *engine.Engine
	Logger = zerolog.Logger
)

// Factory builds one chip instance of a catalogue part, bound to eng and
// logging through log. Pin nets must still be bound with SetPinNode and
// Setup called before the chip is live.
type Factory func(id string, eng Engine, log Logger) *chip.Chip

// PartInfo is the catalogue's per-part metadata, beyond just "can build
// one": part number, pin count, and VCC/GND pin numbers, available before
// any instance exists. Per-pin types are not included; they are read from
// a built chip with Chip.PinType.
type PartInfo struct {
	Part     string
	PinCount int
	VCCPin   int
	GNDPin   int
}

var registry = map[string]Factory{
	"74LS00":  newLS00,
	"74LS02":  newLS02,
	"74LS04":  newLS04,
	"74LS08":  newLS08,
	"74LS32":  newLS32,
	"74LS86":  newLS86,
	"74LS138": newLS138,
	"74LS47":  newLS47,
	"74LS151": newLS151,
	"74LS153": newLS153,
	"74LS157": newLS157,
	"74LS283": newLS283,
	"74LS74":  newLS74,
	"74LS76":  newLS76,
	"74LS90":  newLS90,
	"74LS93":  newLS93,
}

var partInfo = map[string]PartInfo{
	"74LS00":  {"74LS00", 14, 14, 7},
	"74LS02":  {"74LS02", 14, 14, 7},
	"74LS04":  {"74LS04", 14, 14, 7},
	"74LS08":  {"74LS08", 14, 14, 7},
	"74LS32":  {"74LS32", 14, 14, 7},
	"74LS86":  {"74LS86", 14, 14, 7},
	"74LS138": {"74LS138", 16, 16, 8},
	"74LS47":  {"74LS47", 16, 16, 8},
	"74LS151": {"74LS151", 16, 16, 8},
	"74LS153": {"74LS153", 16, 16, 8},
	"74LS157": {"74LS157", 16, 16, 8},
	"74LS283": {"74LS283", 16, 16, 8},
	"74LS74":  {"74LS74", 14, 14, 7},
	"74LS76":  {"74LS76", 16, 5, 7},
	"74LS90":  {"74LS90", 14, 5, 10},
	"74LS93":  {"74LS93", 14, 5, 10},
}

// ErrUnknownPart is returned by New for a part number the registry doesn't
// recognize.
type ErrUnknownPart string

func (e ErrUnknownPart) Error() string { return fmt.Sprintf("catalog: unknown part %q", string(e)) }

// New instantiates a chip of the given part number, bound to eng and
// logging through log. The caller must still bind every pin with
// SetPinNode and call Setup.
func New(part, id string, eng Engine, log Logger) (*chip.Chip, error) {
	f, ok := registry[part]
	if !ok {
		return nil, ErrUnknownPart(part)
	}
	return f(id, eng, log), nil
}

// MustNew is New without the error return, for call sites (tests, demo
// wiring) that treat an unknown part number as a programmer error.
func MustNew(part, id string, eng Engine, log Logger) *chip.Chip {
	c, err := New(part, id, eng, log)
	if err != nil {
		panic(err)
	}
	return c
}

// List returns the PartInfo of every known part, sorted by part number, for
// a UI part bin.
func List() []PartInfo {
	names := make([]string, 0, len(partInfo))
	for n := range partInfo {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]PartInfo, 0, len(names))
	for _, n := range names {
		out = append(out, partInfo[n])
	}
	return out
}
