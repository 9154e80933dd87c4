package ppu2c02

// spriteSlot mirrors one 4-byte OAM entry copied into secondaryOAM
// for the duration of a scanline.
type spriteSlot struct {
	y, tile, attr, x byte
}

// evaluateSprites scans the full 256-byte OAM for up to 8 sprites
// that intersect this scanline, copying them into secondaryOAM in OAM
// order and setting the sprite-overflow status flag if a ninth
// candidate is found. Sprite height (8 or 16) comes from PPUCTRL.
func (p *PPU) evaluateSprites(line int) {
	p.spriteCount = 0
	p.spriteZeroHit = false

	if p.mask&MaskShowSprites == 0 {
		return
	}

	height := p.ctrl.spriteHeight()
	for i := 0; i < 64; i++ {
		y := p.oam[i*4]
		if line < int(y) || line >= int(y)+height {
			continue
		}

		if p.spriteCount >= maxSpritesPerScanline {
			p.status |= StatusSpriteOverflow
			break
		}

		slot := p.spriteCount
		p.secondaryOAM[slot*4+0] = y
		p.secondaryOAM[slot*4+1] = p.oam[i*4+1]
		p.secondaryOAM[slot*4+2] = p.oam[i*4+2]
		p.secondaryOAM[slot*4+3] = p.oam[i*4+3]
		if i == 0 {
			p.spriteZeroHit = true // sprite 0 is among this scanline's sprites
		}
		p.spriteCount++
	}
}

// spritePixelAt resolves the sprite layer's contribution at output
// column x, checking this scanline's evaluated sprites in OAM order
// and returning the first opaque pixel, so the lowest-index (highest
// priority) sprite wins.
func (p *PPU) spritePixelAt(x int) (paletteEntry byte, pixel byte, priority byte, isSpriteZero bool, opaque bool) {
	if x < 8 && p.mask&MaskShowSpritesLeft == 0 {
		return 0, 0, 0, false, false
	}

	for slot := 0; slot < int(p.spriteCount); slot++ {
		s := spriteSlot{
			y:    p.secondaryOAM[slot*4+0],
			tile: p.secondaryOAM[slot*4+1],
			attr: p.secondaryOAM[slot*4+2],
			x:    p.secondaryOAM[slot*4+3],
		}

		if x < int(s.x) || x >= int(s.x)+8 {
			continue
		}

		flipH := s.attr&0x40 != 0
		flipV := s.attr&0x80 != 0
		palGroup := s.attr & 0x03
		spritePriority := (s.attr >> 5) & 0x01

		height := p.ctrl.spriteHeight()
		row := p.scanline - int(s.y)
		if flipV {
			row = height - 1 - row
		}

		col := x - int(s.x)
		if !flipH {
			col = 7 - col
		}

		var patternBase uint16
		if height == 16 {
			// Bit 0 of the tile index selects the pattern table; the
			// tile number itself is the even half of a two-tile pair,
			// and row >= 8 advances into the bottom tile.
			table := uint16(s.tile&0x01) * 0x1000
			tileNum := uint16(s.tile &^ 0x01)
			if row >= 8 {
				tileNum++
				row -= 8
			}
			patternBase = table + tileNum*16
		} else {
			patternBase = p.ctrl.spritePatternTable() + uint16(s.tile)*16
		}
		lo := p.Read(patternBase + uint16(row))
		hi := p.Read(patternBase + uint16(row) + 8)

		pixLo := (lo >> col) & 1
		pixHi := (hi >> col) & 1
		px := pixHi<<1 | pixLo
		if px == 0 {
			continue // transparent, let a lower-priority sprite (or bg) show
		}

		entry := p.readPalette(0x3F10 + (uint16(px) | uint16(palGroup)<<2))
		return entry, px, spritePriority, p.spriteZeroHit && slot == 0, true
	}

	return 0, 0, 0, false, false
}
