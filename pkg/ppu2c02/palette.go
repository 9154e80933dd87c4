package ppu2c02

// colorTable is the NES 2C02's fixed 64-entry NTSC color table, packed
// ARGB (0xAARRGGBB, alpha always 0xFF) rather than image/color.RGBA —
// a host blits the framebuffer straight into a pixel buffer without a
// per-pixel color-model conversion.
var colorTable = [64]uint32{
	0xFF7C7C7C, 0xFF0000FC, 0xFF0000BC, 0xFF4428BC,
	0xFF940084, 0xFFA80020, 0xFFA81000, 0xFF881400,
	0xFF503000, 0xFF007800, 0xFF006800, 0xFF005800,
	0xFF004058, 0xFF000000, 0xFF000000, 0xFF000000,
	0xFFBCBCBC, 0xFF0078F8, 0xFF0058F8, 0xFF6844FC,
	0xFFD800CC, 0xFFE40058, 0xFFF83800, 0xFFE45C10,
	0xFFAC7C00, 0xFF00B800, 0xFF00A800, 0xFF00A844,
	0xFF008888, 0xFF000000, 0xFF000000, 0xFF000000,
	0xFFF8F8F8, 0xFF3CBCFC, 0xFF6888FC, 0xFF9878F8,
	0xFFF878F8, 0xFFF85898, 0xFFF87858, 0xFFFCA044,
	0xFFF8B800, 0xFFB8F818, 0xFF58D854, 0xFF58F898,
	0xFF00E8D8, 0xFF787878, 0xFF000000, 0xFF000000,
	0xFFFCFCFC, 0xFFA4E4FC, 0xFFB8B8F8, 0xFFD8B8F8,
	0xFFF8B8F8, 0xFFF8A4C0, 0xFFF0D0B0, 0xFFFCE0A8,
	0xFFF8D878, 0xFFD8F878, 0xFFB8F8B8, 0xFFB8F8D8,
	0xFF00FCFC, 0xFFF8D8F8, 0xFF000000, 0xFF000000,
}

// paletteIndex masks addr to the 32-byte palette window and maps the
// four "unused" $3F10/$3F14/$3F18/$3F1C slots onto their backing
// $3F00/$3F04/$3F08/$3F0C entries.
func paletteIndex(addr uint16) uint16 {
	addr &= 0x1F
	switch addr {
	case 0x10, 0x14, 0x18, 0x1C:
		addr -= 0x10
	}
	return addr
}

func (p *PPU) readPalette(addr uint16) byte {
	return p.paletteRAM[paletteIndex(addr)]
}

func (p *PPU) writePalette(addr uint16, v byte) {
	p.paletteRAM[paletteIndex(addr)] = v & 0x3F
}
