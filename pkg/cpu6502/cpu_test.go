package cpu6502

import "testing"

// flatRAM is the simplest possible Bus: 64KiB of flat, unmapped memory.
type flatRAM [65536]byte

func (r *flatRAM) Read(addr uint16) byte     { return r[addr] }
func (r *flatRAM) Write(addr uint16, v byte) { r[addr] = v }

func newTestCPU(ram *flatRAM, resetVector uint16) *CPU {
	ram[vecReset] = byte(resetVector)
	ram[vecReset+1] = byte(resetVector >> 8)
	c := &CPU{}
	c.Reset(ram)
	return c
}

func TestLDAImmediate(t *testing.T) {
	ram := &flatRAM{}
	c := newTestCPU(ram, 0x8000)
	ram[0x8000] = 0xA9 // LDA #$00
	ram[0x8001] = 0x00

	c.Step(ram)

	if c.A() != 0x00 {
		t.Fatalf("A = %#02x, want 0x00", c.A())
	}
	if c.P()&FlagZero == 0 {
		t.Error("Z flag not set for zero load")
	}
	if c.P()&FlagNegative != 0 {
		t.Error("N flag unexpectedly set")
	}
}

func TestLDAImmediateNegative(t *testing.T) {
	ram := &flatRAM{}
	c := newTestCPU(ram, 0x8000)
	ram[0x8000] = 0xA9
	ram[0x8001] = 0x80

	c.Step(ram)

	if c.A() != 0x80 {
		t.Fatalf("A = %#02x, want 0x80", c.A())
	}
	if c.P()&FlagNegative == 0 {
		t.Error("N flag not set for negative load")
	}
	if c.P()&FlagZero != 0 {
		t.Error("Z flag unexpectedly set")
	}
}

func TestADCSignedOverflow(t *testing.T) {
	ram := &flatRAM{}
	c := newTestCPU(ram, 0x8000)
	c.a = 0x7F // +127
	ram[0x8000] = 0x69 // ADC #$01
	ram[0x8001] = 0x01

	c.Step(ram)

	if c.A() != 0x80 {
		t.Fatalf("A = %#02x, want 0x80", c.A())
	}
	if c.P()&FlagOverflow == 0 {
		t.Error("V flag not set for signed overflow (127+1)")
	}
	if c.P()&FlagCarry != 0 {
		t.Error("C flag unexpectedly set")
	}
	if c.P()&FlagNegative == 0 {
		t.Error("N flag not set")
	}
}

func TestADCUnsignedCarryNoOverflow(t *testing.T) {
	ram := &flatRAM{}
	c := newTestCPU(ram, 0x8000)
	c.a = 0xFF
	ram[0x8000] = 0x69
	ram[0x8001] = 0x01

	c.Step(ram)

	if c.A() != 0x00 {
		t.Fatalf("A = %#02x, want 0x00", c.A())
	}
	if c.P()&FlagCarry == 0 {
		t.Error("C flag not set for 0xFF+1")
	}
	if c.P()&FlagOverflow != 0 {
		t.Error("V flag unexpectedly set (unsigned wrap is not signed overflow)")
	}
	if c.P()&FlagZero == 0 {
		t.Error("Z flag not set")
	}
}

func TestJMPIndirectPageBoundaryBug(t *testing.T) {
	ram := &flatRAM{}
	c := newTestCPU(ram, 0x8000)
	ram[0x8000] = 0x6C // JMP ($30FF)
	ram[0x8001] = 0xFF
	ram[0x8002] = 0x30
	ram[0x30FF] = 0x80
	ram[0x3000] = 0x91 // NMOS bug: high byte read wraps to $3000, not $3100
	ram[0x3100] = 0xFF // if the bug were absent, this would be picked up

	c.Step(ram)

	if c.PC() != 0x9180 {
		t.Fatalf("PC = %#04x, want 0x9180 (indirect JMP page-wrap bug)", c.PC())
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	ram := &flatRAM{}
	c := newTestCPU(ram, 0x8000)
	ram[0x8000] = 0x20 // JSR $9000
	ram[0x8001] = 0x00
	ram[0x8002] = 0x90
	ram[0x9000] = 0x60 // RTS

	startCycles := c.Cycles()
	c.Step(ram) // JSR
	if c.PC() != 0x9000 {
		t.Fatalf("PC after JSR = %#04x, want 0x9000", c.PC())
	}
	c.Step(ram) // RTS
	if c.PC() != 0x8003 {
		t.Fatalf("PC after RTS = %#04x, want 0x8003", c.PC())
	}
	if c.Cycles() <= startCycles {
		t.Error("cycles did not advance")
	}
	if c.S() != 0xFD {
		t.Errorf("S = %#02x, want 0xFD (stack balanced)", c.S())
	}
}

func TestZeroPageWrapLDA(t *testing.T) {
	ram := &flatRAM{}
	c := newTestCPU(ram, 0x8000)
	c.x = 0x01
	ram[0x8000] = 0xB5 // LDA $FF,X -> wraps to zero page $00, not $0100
	ram[0x8001] = 0xFF
	ram[0x0000] = 0x42
	ram[0x0100] = 0x99

	c.Step(ram)

	if c.A() != 0x42 {
		t.Fatalf("A = %#02x, want 0x42 (zero page wraps, does not carry into page 1)", c.A())
	}
}

func TestAbsoluteXPageCrossingAddsCycle(t *testing.T) {
	ram := &flatRAM{}
	c := newTestCPU(ram, 0x8000)
	c.x = 0xFF
	ram[0x8000] = 0xBD // LDA $8001,X -> crosses into next page
	ram[0x8001] = 0x01
	ram[0x8002] = 0x80
	ram[0x8100] = 0x55

	before := c.Cycles()
	c.Step(ram)
	if got := c.Cycles() - before; got != 5 {
		t.Errorf("cycles = %d, want 5 (4 base + 1 page-cross)", got)
	}
	if c.A() != 0x55 {
		t.Fatalf("A = %#02x, want 0x55", c.A())
	}
}

func TestAbsoluteXNoPageCrossing(t *testing.T) {
	ram := &flatRAM{}
	c := newTestCPU(ram, 0x8000)
	c.x = 0x01
	ram[0x8000] = 0xBD // LDA $8010,X -> stays in page
	ram[0x8001] = 0x10
	ram[0x8002] = 0x80
	ram[0x8011] = 0x77

	before := c.Cycles()
	c.Step(ram)
	if got := c.Cycles() - before; got != 4 {
		t.Errorf("cycles = %d, want 4 (no page cross)", got)
	}
}

func TestBranchTakenCrossingPageCosts2Extra(t *testing.T) {
	ram := &flatRAM{}
	c := newTestCPU(ram, 0x80FD)
	ram[0x80FD] = 0xF0 // BEQ +4 -> target 0x8103, crosses page
	ram[0x80FE] = 0x04
	c.p |= FlagZero

	before := c.Cycles()
	c.Step(ram)
	if got := c.Cycles() - before; got != 4 {
		t.Errorf("cycles = %d, want 4 (2 base + 1 taken + 1 page-cross)", got)
	}
	if c.PC() != 0x8103 {
		t.Fatalf("PC = %#04x, want 0x8103", c.PC())
	}
}

func TestBranchNotTaken(t *testing.T) {
	ram := &flatRAM{}
	c := newTestCPU(ram, 0x8000)
	ram[0x8000] = 0xF0 // BEQ, Z clear
	ram[0x8001] = 0x10

	before := c.Cycles()
	c.Step(ram)
	if got := c.Cycles() - before; got != 2 {
		t.Errorf("cycles = %d, want 2 (not taken)", got)
	}
	if c.PC() != 0x8002 {
		t.Fatalf("PC = %#04x, want 0x8002 (fell through)", c.PC())
	}
}

func TestIllegalOpcodeHalts(t *testing.T) {
	ram := &flatRAM{}
	c := newTestCPU(ram, 0x8000)
	ram[0x8000] = 0x02 // undocumented/illegal

	c.Step(ram)
	if !c.Halted() {
		t.Fatal("CPU did not halt on illegal opcode")
	}

	pcAfterHalt := c.PC()
	cyclesAfterHalt := c.Cycles()
	c.Step(ram)
	if c.PC() != pcAfterHalt || c.Cycles() != cyclesAfterHalt {
		t.Error("halted CPU advanced state on further Step calls")
	}
}

func TestBRKSetsInterruptVectorAndFlag(t *testing.T) {
	ram := &flatRAM{}
	c := newTestCPU(ram, 0x8000)
	ram[vecIRQ] = 0x00
	ram[vecIRQ+1] = 0x90
	ram[0x8000] = 0x00 // BRK

	c.Step(ram)

	if c.PC() != 0x9000 {
		t.Fatalf("PC = %#04x, want 0x9000 (IRQ vector)", c.PC())
	}
	if c.P()&FlagInterrupt == 0 {
		t.Error("I flag not set after BRK")
	}
}

func TestPHPSetsBreakButPLPDropsIt(t *testing.T) {
	ram := &flatRAM{}
	c := newTestCPU(ram, 0x8000)
	ram[0x8000] = 0x08 // PHP
	ram[0x8001] = 0x28 // PLP

	c.Step(ram) // PHP
	pushed := Flags(ram[stackBase+uint16(c.S())+1])
	if pushed&FlagBreak == 0 {
		t.Error("B not set in PHP's pushed byte")
	}
	if pushed&FlagUnused == 0 {
		t.Error("U not set in PHP's pushed byte")
	}

	before := c.P()
	c.Step(ram) // PLP
	if c.P()&FlagUnused == 0 {
		t.Error("U not forced on after PLP")
	}
	_ = before
}

func TestIRQPushesBreakClear(t *testing.T) {
	ram := &flatRAM{}
	c := newTestCPU(ram, 0x8000)
	ram[vecIRQ] = 0x00
	ram[vecIRQ+1] = 0x90
	c.p &^= FlagInterrupt

	c.IRQ(ram)

	pushed := Flags(ram[stackBase+uint16(c.S())+1])
	if pushed&FlagBreak != 0 {
		t.Error("B set on IRQ push, want clear")
	}
	if c.PC() != 0x9000 {
		t.Fatalf("PC = %#04x, want 0x9000", c.PC())
	}
}

func TestIRQIgnoredWhenInterruptDisabled(t *testing.T) {
	ram := &flatRAM{}
	c := newTestCPU(ram, 0x8000)
	c.p |= FlagInterrupt
	pcBefore := c.PC()

	c.IRQ(ram)

	if c.PC() != pcBefore {
		t.Error("IRQ serviced despite I flag set")
	}
}

func TestNMIAlwaysServiced(t *testing.T) {
	ram := &flatRAM{}
	c := newTestCPU(ram, 0x8000)
	ram[vecNMI] = 0x00
	ram[vecNMI+1] = 0xA0
	c.p |= FlagInterrupt

	c.NMI(ram)

	if c.PC() != 0xA000 {
		t.Fatalf("PC = %#04x, want 0xA000 (NMI ignores I flag)", c.PC())
	}
}

func TestResetVector(t *testing.T) {
	ram := &flatRAM{}
	c := newTestCPU(ram, 0xC000)

	if c.PC() != 0xC000 {
		t.Fatalf("PC = %#04x, want 0xC000", c.PC())
	}
	if c.S() != 0xFD {
		t.Errorf("S = %#02x, want 0xFD", c.S())
	}
	if c.P()&FlagUnused == 0 {
		t.Error("U not set after reset")
	}
	if c.Cycles() != 7 {
		t.Errorf("Cycles = %d, want 7", c.Cycles())
	}
}

func TestDecimalModeADC(t *testing.T) {
	ram := &flatRAM{}
	c := newTestCPU(ram, 0x8000)
	c.p |= FlagDecimal
	c.a = 0x58 // 58 BCD
	ram[0x8000] = 0x69
	ram[0x8001] = 0x46 // 46 BCD

	c.Step(ram)

	if c.A() != 0x04 {
		t.Fatalf("A = %#02x, want 0x04 (58+46=104 BCD, carry set)", c.A())
	}
	if c.P()&FlagCarry == 0 {
		t.Error("C flag not set for BCD carry out of 99")
	}
}
