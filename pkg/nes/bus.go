// Package nes wires a 6502 CPU, a 2C02 PPU, an NROM cartridge and two
// controller ports together into the integration layer a host needs:
// one shared address bus, the 3:1 PPU:CPU clock ratio, and OAM DMA.
package nes

import (
	"log"

	"github.com/amyanger/retrocore/pkg/cartridge"
	"github.com/amyanger/retrocore/pkg/ppu2c02"
)

// Bus is the CPU-visible 64KB address space: 2KB of work RAM mirrored
// four times, the PPU register window (also mirrored, every 8 bytes
// through $3FFF), the OAM DMA latch, two controller ports, an
// APU/IO stub, and the cartridge's $4020-$FFFF window.
//
// ╔═════════════════╤═══════╤═════════════════════════╤═══════════╗
// ║ Address Range   │ Size  │ Purpose                 │ Kind      ║
// ╠═════════════════╪═══════╪═════════════════════════╪═══════════╣
// ║ 0xC000 - 0xFFFF │ 16384 │ PRG-ROM UPPER BANK      │           ║
// ╟╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌┼╌╌╌╌╌╌╌┼╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌┤  PRG ROM  ║
// ║ 0x8000 - 0xBFFF │ 16384 │ PRG-ROM LOWER BANK      │           ║
// ╠═════════════════╪═══════╪═════════════════════════╪═══════════╣
// ║ 0x6000 - 0x7FFF │ 8192  │ SRAM                    │   SRAM    ║
// ╠═════════════════╪═══════╪═════════════════════════╪═══════════╣
// ║ 0x4020 - 0x5FFF │ 8160  │ EXPANSION ROM           │  EXP ROM  ║
// ╠═════════════════╪═══════╪═════════════════════════╪═══════════╣
// ║ 0x4000 - 0x401F │ 32    │ APU / I/O REGISTERS     │           ║
// ╟╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌┼╌╌╌╌╌╌╌┼╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌┤           ║
// ║ 0x2008 - 0x3FFF │ 8184  │ MIRRORS 0x2000 - 0x2007 │  I/O REG  ║
// ╟╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌┼╌╌╌╌╌╌╌┼╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌┤           ║
// ║ 0x2000 - 0x2007 │ 8     │ PPU REGISTERS           │           ║
// ╠═════════════════╪═══════╪═════════════════════════╪═══════════╣
// ║ 0x0800 - 0x1FFF │ 6144  │ MIRRORS 0x0000 - 0x07FF │    RAM    ║
// ╟╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌┼╌╌╌╌╌╌╌┼╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌┤           ║
// ║ 0x0000 - 0x07FF │ 2048  │ RAM (zero page, stack)  │           ║
// ╚═════════════════╧═══════╧═════════════════════════╧═══════════╝
type Bus struct {
	RAM  [0x0800]byte
	PPU  *ppu2c02.PPU
	Cart *cartridge.Cartridge

	Ctrl1, Ctrl2 Controller

	dmaPending bool
	dmaPage    byte
}

func NewBus(ppu *ppu2c02.PPU, cart *cartridge.Cartridge) *Bus {
	return &Bus{PPU: ppu, Cart: cart}
}

func (b *Bus) Read(addr uint16) byte {
	switch {
	case addr < 0x2000:
		return b.RAM[addr%0x0800]
	case addr < 0x4000:
		return b.PPU.ReadPort(addr)
	case addr == 0x4016:
		return b.Ctrl1.Read()
	case addr == 0x4017:
		return b.Ctrl2.Read()
	case addr < 0x4020:
		return 0 // APU and remaining I/O registers are not modeled
	case addr < 0x6000:
		return 0 // expansion ROM, unused by NROM
	default:
		return b.Cart.ReadCPU(addr)
	}
}

func (b *Bus) Write(addr uint16, v byte) {
	switch {
	case addr < 0x2000:
		b.RAM[addr%0x0800] = v
	case addr < 0x4000:
		b.PPU.WritePort(addr, v)
	case addr == 0x4014:
		b.dmaPending = true
		b.dmaPage = v
	case addr == 0x4016:
		b.Ctrl1.Write(v)
		b.Ctrl2.Write(v) // both controllers see the same strobe line
	case addr == 0x4017:
		// APU frame-counter register; not modeled.
	case addr < 0x4020:
		// remaining APU/IO registers: writes are discarded
	case addr < 0x6000:
		log.Printf("nes: write to unmapped expansion ROM at 0x%04X", addr)
	default:
		b.Cart.WriteCPU(addr, v)
	}
}

// takeDMA reports and clears a pending OAM DMA request, along with
// the page it should copy from.
func (b *Bus) takeDMA() (page byte, pending bool) {
	if !b.dmaPending {
		return 0, false
	}
	b.dmaPending = false
	return b.dmaPage, true
}
