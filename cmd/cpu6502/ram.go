package main

// flatRAM is the standalone CLI's memory bus: 64KiB of unmapped RAM,
// the simplest thing that satisfies cpu6502.Bus. Nothing routes by
// address range here — the binary under test owns the whole space.
type flatRAM [65536]byte

func (r *flatRAM) Read(addr uint16) byte     { return r[addr] }
func (r *flatRAM) Write(addr uint16, v byte) { r[addr] = v }
