// Command cpu6502 runs a flat binary image against the standalone
// 6502 interpreter: load a raw memory dump at a base address, reset
// (or override) the program counter, and run until the CPU halts, a
// cycle ceiling is hit, or the classic self-loop halt convention
// (PC == previous PC) is detected.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/amyanger/retrocore/pkg/cpu6502"
)

const cycleCeiling = 100_000_000

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "cpu6502 <binary> [base_addr_hex] [start_addr_hex]",
		Short: "Run a raw 6502 binary image against the standalone interpreter",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, verbose)
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace every instruction to stdout")
	return cmd
}

func run(cmd *cobra.Command, args []string, verbose bool) error {
	path := args[0]

	baseAddr, err := parseHexArg(args, 1, 0)
	if err != nil {
		return fmt.Errorf("base address: %w", err)
	}

	var startAddr uint16
	var overridePC bool
	if len(args) > 2 {
		startAddr, err = parseHexArg(args, 2, 0)
		if err != nil {
			return fmt.Errorf("start address: %w", err)
		}
		overridePC = true
	}

	image, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var bus flatRAM
	copy(bus[baseAddr:], image)

	c := &cpu6502.CPU{}
	c.Reset(&bus)
	if overridePC {
		c.SetPC(startAddr)
	}

	var prevPC uint16
	seenFirst := false
	for c.Cycles() < cycleCeiling {
		if c.Halted() {
			break
		}
		if seenFirst && c.PC() == prevPC {
			break // self-loop halt convention
		}
		prevPC = c.PC()
		seenFirst = true

		if verbose {
			fmt.Fprintln(cmd.OutOrStdout(), cpu6502.Trace(&bus, c))
		}
		c.Step(&bus)
	}

	return nil
}

// parseHexArg reads args[idx] as a bare hex number (no "0x" prefix
// required), returning def if idx is past the end of args.
func parseHexArg(args []string, idx int, def uint64) (uint16, error) {
	if idx >= len(args) {
		return uint16(def), nil
	}
	v, err := strconv.ParseUint(args[idx], 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid hex value %q: %w", args[idx], err)
	}
	return uint16(v), nil
}
