package ppu2c02

// renderScanline produces all 256 pixels of one visible scanline in a
// single pass: a 33-tile background fetch batch (32 full tiles plus
// one extra so fine-X scroll never runs off the end of the row),
// followed by sprite evaluation (8-sprite-per-scanline limit) and a
// per-pixel compositing pass in which the lowest-index opaque sprite
// wins. This trades cycle-exact PPU
// behavior for scanline-granular output, which is all a host needs
// to present a frame.
func (p *PPU) renderScanline(line int) {
	var bgIndex [screenWidth]byte // palette group<<2 | 2-bit pixel; pixel 0 = transparent

	if p.mask&MaskShowBg != 0 {
		p.copyHorizontalBits()
		bgIndex = p.fetchBackgroundRow(line)
	}

	p.evaluateSprites(line)

	for x := 0; x < screenWidth; x++ {
		bgPixel := bgIndex[x]
		bgOpaque := bgPixel&0x03 != 0 && (x >= 8 || p.mask&MaskShowBgLeft != 0)

		spColor, spPixel, spPriority, spZero, spOpaque := p.spritePixelAt(x)

		var palEntry byte
		switch {
		case !bgOpaque && !spOpaque:
			palEntry = p.readPalette(0x3F00)
		case !bgOpaque && spOpaque:
			palEntry = spColor
		case bgOpaque && !spOpaque:
			palEntry = p.bgColorEntry(bgPixel, x, line)
		default: // both opaque
			if spZero && x != 255 {
				p.status |= StatusSprite0Hit
			}
			if spPriority == 0 {
				palEntry = spColor
			} else {
				palEntry = p.bgColorEntry(bgPixel, x, line)
			}
		}

		p.framebuffer[line*screenWidth+x] = colorTable[palEntry&0x3F]
		_ = spPixel
	}

	if p.mask&MaskShowBg != 0 {
		p.incrementVerticalV()
	}
}

// fetchBackgroundRow walks 33 nametable tiles across this scanline's
// row, using the current v register for the first tile's coordinates,
// and returns each output column's packed background value: the 2-bit
// pixel in bits 0-1 (0 = transparent) and the attribute palette group
// in bits 2-3.
func (p *PPU) fetchBackgroundRow(line int) [screenWidth]byte {
	var out [screenWidth]byte

	v := p.v
	fineY := byte((v >> 12) & 0x7)

	// column runs one tile past the visible 32 so fineX scroll has a
	// next tile's leftmost pixels to borrow from.
	for col := 0; col < 33; col++ {
		coarseX := v & 0x1F
		coarseY := (v >> 5) & 0x1F
		nametableSelect := (v >> 10) & 0x3

		ntAddr := 0x2000 | nametableSelect<<10 | coarseY<<5 | coarseX
		tileID := p.Read(ntAddr)

		attrAddr := 0x23C0 | nametableSelect<<10 | (coarseY>>2)<<3 | (coarseX >> 2)
		attrByte := p.Read(attrAddr)
		shift := (coarseY&0x02)<<1 | (coarseX & 0x02)
		palGroup := (attrByte >> shift) & 0x03

		patternBase := p.ctrl.bgPatternTable() + uint16(tileID)*16
		lo := p.Read(patternBase + uint16(fineY))
		hi := p.Read(patternBase + uint16(fineY) + 8)

		for bit := 0; bit < 8; bit++ {
			outX := col*8 + bit - int(p.fineX)
			pixLo := (lo >> (7 - bit)) & 1
			pixHi := (hi >> (7 - bit)) & 1
			pixel := pixHi<<1 | pixLo

			if outX >= 0 && outX < screenWidth {
				out[outX] = pixel | palGroup<<2
			}
		}

		// advance coarse X one tile, wrapping into the next nametable.
		if coarseX == 31 {
			v &^= 0x1F
			v ^= 0x0400
		} else {
			v++
		}
	}

	return out
}

// bgColorEntry resolves a background pixel's packed (palette-group |
// pixel) value, already stashed in bgIndex, into a palette-RAM entry.
func (p *PPU) bgColorEntry(packed byte, x, line int) byte {
	return p.readPalette(0x3F00 + uint16(packed))
}

// copyHorizontalBits copies the horizontal scroll position (coarse X
// and the X nametable-select bit) from t into v, mirroring what real
// hardware does at dot 257 of every scanline.
func (p *PPU) copyHorizontalBits() {
	p.v = p.v&0xFBE0 | p.t&0x041F
}

// incrementVerticalV advances v's coarse/fine Y for the next
// scanline, using the standard loopy "increment Y" algorithm.
func (p *PPU) incrementVerticalV() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	coarseY := (p.v >> 5) & 0x1F
	switch coarseY {
	case 29:
		coarseY = 0
		p.v ^= 0x0800
	case 31:
		coarseY = 0
	default:
		coarseY++
	}
	p.v = p.v&^0x03E0 | coarseY<<5
}
