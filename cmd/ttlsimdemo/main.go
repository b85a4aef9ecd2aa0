// Command ttlsimdemo is a non-interactive scripted demonstration of the
// simulation kernel: it builds a 74LS283 ripple adder on a Board, powers
// it, drives A and B inputs, and prints the resolved SUM/C4 outputs.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/advaitharyag/WebIC-Trainer/board"
	"github.com/advaitharyag/WebIC-Trainer/obslog"
)

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := obslog.New(os.Stderr, levelFor(*verbose))
	b := board.New(level)

	if _, err := b.AddChip("74LS283", "u1"); err != nil {
		fmt.Fprintln(os.Stderr, "add chip:", err)
		os.Exit(1)
	}

	wire := func(src, dst string) {
		if _, err := b.Wire(src, dst, ""); err != nil {
			fmt.Fprintln(os.Stderr, "wire:", err)
			os.Exit(1)
		}
	}
	wire("vcc", board.PinFor("u1", 16))
	wire("gnd", board.PinFor("u1", 8))

	// A=0101 on pins 5,3,14,12 ; B=0011 on pins 6,2,15,11 ; C0 grounded.
	bind := func(pin int, high bool) {
		rail := "gnd"
		if high {
			rail = "vcc"
		}
		wire(rail, board.PinFor("u1", pin))
	}
	bind(5, true)
	bind(3, false)
	bind(14, true)
	bind(12, false)
	bind(6, true)
	bind(2, true)
	bind(15, false)
	bind(11, false)
	wire("gnd", board.PinFor("u1", 7))

	b.Power(true)
	b.Engine.Step(11)

	c, _ := b.Chip("u1")
	snap := c.Snapshot()
	fmt.Printf("SUM = %s%s%s%s  C4 = %s\n",
		snap.Outputs[10], snap.Outputs[13], snap.Outputs[1], snap.Outputs[4], snap.Outputs[9])
}

func levelFor(verbose bool) zerolog.Level {
	if verbose {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
