package ppu2c02

// DumpNametable renders one of the four logical nametables (0-3) as a
// 256x240 packed-ARGB grid of its raw tile indices, each tile's pixel
// shaded by greyscale intensity. It exists for tooling and tests that
// want to inspect VRAM contents without a running frame; it performs
// no scrolling or palette lookups.
func (p *PPU) DumpNametable(table int, out *[screenWidth * screenHeight]uint32) {
	base := uint16(0x2000 + table*0x400)
	for ty := 0; ty < 30; ty++ {
		for tx := 0; tx < 32; tx++ {
			tileID := p.Read(base + uint16(ty*32+tx))
			patternBase := p.ctrl.bgPatternTable() + uint16(tileID)*16
			for row := 0; row < 8; row++ {
				lo := p.Read(patternBase + uint16(row))
				hi := p.Read(patternBase + uint16(row) + 8)
				for bit := 0; bit < 8; bit++ {
					pixLo := (lo >> (7 - bit)) & 1
					pixHi := (hi >> (7 - bit)) & 1
					shade := (pixHi<<1 | pixLo) * 0x55
					x := tx*8 + bit
					y := ty*8 + row
					if x < screenWidth && y < screenHeight {
						out[y*screenWidth+x] = 0xFF000000 | uint32(shade)<<16 | uint32(shade)<<8 | uint32(shade)
					}
				}
			}
		}
	}
}

// DumpPatternTable renders pattern table 0 or 1 as a 128x128 grid of
// its 256 8x8 tiles, greyscale-shaded by the 2-bit pixel value.
func (p *PPU) DumpPatternTable(table int, out *[128 * 128]uint32) {
	base := uint16(table * 0x1000)
	for tile := 0; tile < 256; tile++ {
		tx := (tile % 16) * 8
		ty := (tile / 16) * 8
		patternBase := base + uint16(tile)*16
		for row := 0; row < 8; row++ {
			lo := p.Read(patternBase + uint16(row))
			hi := p.Read(patternBase + uint16(row) + 8)
			for bit := 0; bit < 8; bit++ {
				pixLo := (lo >> (7 - bit)) & 1
				pixHi := (hi >> (7 - bit)) & 1
				shade := (pixHi<<1 | pixLo) * 0x55
				x := tx + bit
				y := ty + row
				out[y*128+x] = 0xFF000000 | uint32(shade)<<16 | uint32(shade)<<8 | uint32(shade)
			}
		}
	}
}
