package nes

import (
	"fmt"
	"io"

	"github.com/amyanger/retrocore/pkg/cartridge"
	"github.com/amyanger/retrocore/pkg/cpu6502"
	"github.com/amyanger/retrocore/pkg/ppu2c02"
)

const (
	oamDMAStallCycles = 514 // CPU cycles; odd on a CPU-odd-cycle start, but we always charge the full stall
	ppuDotsPerCPUCycle = 3
)

// Console is a complete NES: CPU, PPU, cartridge and the shared bus
// between them, stepped one CPU instruction (or one OAM DMA stall) at
// a time.
type Console struct {
	CPU  *cpu6502.CPU
	PPU  *ppu2c02.PPU
	Bus  *Bus
	Cart *cartridge.Cartridge
}

// NewConsole builds a Console around an already-loaded cartridge and
// resets the CPU from its reset vector.
func NewConsole(cart *cartridge.Cartridge) *Console {
	ppu := ppu2c02.New(cart)
	bus := NewBus(ppu, cart)
	cpu := &cpu6502.CPU{}

	c := &Console{CPU: cpu, PPU: ppu, Bus: bus, Cart: cart}
	c.Reset()
	return c
}

// LoadPath loads an iNES ROM from r and returns a freshly reset
// Console for it.
func LoadPath(r io.Reader) (*Console, error) {
	cart, err := cartridge.LoadINES(r)
	if err != nil {
		return nil, fmt.Errorf("nes: loading cartridge: %w", err)
	}
	return NewConsole(cart), nil
}

// Reset re-initializes the CPU from the cartridge's reset vector. The
// PPU is left as a fresh instance; hosts that need a PPU reset should
// build a new Console instead, since live rendering state does not
// otherwise need clearing between resets.
func (c *Console) Reset() {
	c.CPU.Reset(c.Bus)
}

// Step advances the console by exactly one unit of work: either a
// 514-CPU-cycle OAM DMA stall (preempting anything else once
// triggered) or one CPU instruction. The PPU is always advanced
// 3 dots per CPU cycle consumed, and an NMI edge seen at any point
// during the step — including mid-DMA-stall — is delivered to the
// CPU before Step returns.
func (c *Console) Step() {
	if page, pending := c.Bus.takeDMA(); pending {
		c.runOAMDMA(page)
		return
	}

	before := c.CPU.Cycles()
	c.CPU.Step(c.Bus)
	cpuCycles := c.CPU.Cycles() - before

	c.tickPPU(cpuCycles)
}

// runOAMDMA performs the 256-byte OAM copy from page*$100 and charges
// the CPU stall (514 cycles), ticking the PPU in lockstep the whole
// time so an NMI edge mid-transfer is never missed.
func (c *Console) runOAMDMA(page byte) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		c.PPU.WriteOAM(c.Bus.Read(base + uint16(i)))
	}
	c.CPU.Stall(oamDMAStallCycles)
	c.tickPPU(oamDMAStallCycles)
}

func (c *Console) tickPPU(cpuCycles uint64) {
	dots := cpuCycles * ppuDotsPerCPUCycle
	for i := uint64(0); i < dots; i++ {
		if c.PPU.Step() {
			c.CPU.NMI(c.Bus)
		}
	}
}

// StepFrame runs the console until the PPU completes one full frame.
func (c *Console) StepFrame() {
	start := c.PPU.Frame()
	for c.PPU.Frame() == start {
		c.Step()
	}
}

// Press and Release forward a button to the first controller port,
// the common case for a single-player host.
func (c *Console) Press(b Button)   { c.Bus.Ctrl1.Press(b) }
func (c *Console) Release(b Button) { c.Bus.Ctrl1.Release(b) }

// Framebuffer returns the console's current packed-ARGB 256x240
// frame, as produced by the PPU.
func (c *Console) Framebuffer() *[256 * 240]uint32 {
	return c.PPU.Framebuffer()
}
