package ppu2c02

// MirrorMode describes how the two physical 1KiB nametable banks back
// the four logical 1KiB nametable windows at $2000-$2FFF.
type MirrorMode byte

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
)

// Cartridge is the capability the PPU needs from the loaded cartridge:
// CHR-ROM/RAM access for pattern tables, and the mirroring wired on
// the cartridge's PCB that decides how the nametables alias.
type Cartridge interface {
	ReadCHR(addr uint16) byte
	WriteCHR(addr uint16, v byte)
	Mirror() MirrorMode
}

// nametableOffset maps a logical nametable address ($2000-$2FFF) onto
// an offset into the PPU's 2KiB of physical VRAM, according to the
// cartridge's mirroring. Two physical KiB back four logical windows.
func nametableOffset(addr uint16, mirror MirrorMode) uint16 {
	addr = (addr - 0x2000) % 0x1000
	table := addr / 0x400 // which of the 4 logical 1KiB tables, 0-3
	offset := addr % 0x400

	var bank uint16
	switch mirror {
	case MirrorHorizontal:
		// tables 0,1 -> physical bank 0; tables 2,3 -> physical bank 1
		bank = table / 2
	case MirrorVertical:
		// tables 0,2 -> physical bank 0; tables 1,3 -> physical bank 1
		bank = table % 2
	}
	return bank*0x400 + offset
}
