package nes

import (
	"bytes"
	"testing"

	"github.com/amyanger/retrocore/pkg/cartridge"
)

// buildROM assembles a minimal one-bank NROM image whose reset vector
// points at $8000, where code (a few NOPs by default) begins.
func buildROM(code []byte) []byte {
	header := []byte{'N', 'E', 'S', 0x1A, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	prg := make([]byte, 16*1024)
	copy(prg, code)
	prg[0x3FFC] = 0x00 // reset vector low -> $8000
	prg[0x3FFD] = 0x80
	chr := make([]byte, 8*1024)

	rom := append(append(header, prg...), chr...)
	return rom
}

func newTestConsole(t *testing.T, code []byte) *Console {
	t.Helper()
	cart, err := cartridge.LoadINES(bytes.NewReader(buildROM(code)))
	if err != nil {
		t.Fatalf("LoadINES() error: %v", err)
	}
	return NewConsole(cart)
}

func TestResetStartsAtResetVector(t *testing.T) {
	c := newTestConsole(t, []byte{0xEA, 0xEA, 0xEA})
	if c.CPU.PC() != 0x8000 {
		t.Fatalf("PC = %#04x, want 0x8000", c.CPU.PC())
	}
}

func TestRAMMirroring(t *testing.T) {
	c := newTestConsole(t, nil)
	c.Bus.Write(0x0000, 0x42)

	for _, mirror := range []uint16{0x0800, 0x1000, 0x1800} {
		if got := c.Bus.Read(mirror); got != 0x42 {
			t.Errorf("Read(%#04x) = %#02x, want 0x42 (RAM mirror)", mirror, got)
		}
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	c := newTestConsole(t, nil)
	c.Bus.Write(0x2000, 0x80) // enable NMI via PPUCTRL
	c.Bus.Write(0x2008, 0x00) // mirrors $2000, disables it again

	// A second write to the mirrored address reached the same
	// register as a direct write would have.
	c.Bus.Write(0x2008, 0x80)
	c.Bus.Write(0x3FF8, 0x00) // $3FF8 also mirrors $2000 (mod 8)

	if got := c.Bus.Read(0x2002); got&0x80 != 0 {
		t.Error("VBlank flag unexpectedly set before any frame stepping")
	}
}

func TestControllerStrobeAndShiftOut(t *testing.T) {
	c := newTestConsole(t, nil)
	c.Press(ButtonA)
	c.Press(ButtonStart)

	c.Bus.Write(0x4016, 1) // strobe high, continuously latches
	c.Bus.Write(0x4016, 0) // strobe low, snapshot taken

	var bits []byte
	for i := 0; i < 8; i++ {
		bits = append(bits, c.Bus.Read(0x4016)&1)
	}

	want := []byte{1, 0, 0, 1, 0, 0, 0, 0} // A, B, Select, Start, Up, Down, Left, Right
	for i := range want {
		if bits[i] != want[i] {
			t.Errorf("bit %d = %d, want %d", i, bits[i], want[i])
		}
	}

	if got := c.Bus.Read(0x4016) & 1; got != 1 {
		t.Errorf("9th read = %d, want 1 (shift register exhausted)", got)
	}
}

func TestOAMDMAStallCopiesPageAndAdvancesCycles(t *testing.T) {
	c := newTestConsole(t, []byte{0xEA}) // NOP so Step has a fallback instruction too

	for i := 0; i < 256; i++ {
		c.Bus.Write(0x0200+uint16(i), byte(i))
	}

	before := c.CPU.Cycles()
	c.Bus.Write(0x4014, 0x02) // trigger DMA from page $02
	c.Step()

	if got := c.CPU.Cycles() - before; got != oamDMAStallCycles {
		t.Errorf("cycles consumed by DMA = %d, want %d", got, oamDMAStallCycles)
	}

	c.Bus.Write(0x2003, 0x00) // OAMADDR = 0
	if got := c.Bus.Read(0x2004); got != 0x00 {
		t.Errorf("OAM[0] = %#02x, want 0x00", got)
	}
}

func TestStepFrameAdvancesFrameCounter(t *testing.T) {
	// A single NOP followed by zero-filled PRG (BRK) keeps the CPU
	// executing indefinitely without ever halting, which is all this
	// test needs: bounded single-Steps until a frame completes.
	c := newTestConsole(t, []byte{0xEA})
	startFrame := c.PPU.Frame()

	for i := 0; i < 200000 && c.PPU.Frame() == startFrame; i++ {
		c.Step()
	}

	if c.PPU.Frame() == startFrame {
		t.Error("frame counter never advanced")
	}
}
