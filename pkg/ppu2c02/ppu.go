// Package ppu2c02 implements the NES 2C02 picture processing unit at
// scanline granularity: the whole visible scanline's pixels, sprite
// evaluation and compositing are produced in one pass per scanline
// rather than being driven dot-by-dot through shift registers. Step
// is still called once per PPU dot so callers that clock CPU and PPU
// together (a 1:3 ratio) keep vblank/NMI timing lined up.
package ppu2c02

const (
	screenWidth  = 256
	screenHeight = 240

	dotsPerScanline    = 341
	scanlinesPerFrame  = 262
	visibleScanlines   = 240
	postRenderScanline = 240
	vblankStartLine    = 241
	preRenderScanline  = 261

	maxSpritesPerScanline = 8
)

// PPU is a single NES picture processing unit, driven one dot at a
// time by Step and wired to a cartridge for pattern-table and
// mirroring data.
type PPU struct {
	Cart Cartridge

	ctrl   Ctrl
	mask   Mask
	status Status

	oamAddr byte
	oam     [256]byte

	readBuffer byte
	busLatch   byte // open-bus value left behind by the last register access

	// Loopy scroll state.
	v     uint16
	t     uint16
	fineX byte
	w     byte

	vram       [2048]byte // physical nametable backing, 2 banks of 1KiB
	paletteRAM [32]byte

	dot      int
	scanline int
	frame    uint64

	framebuffer [screenWidth * screenHeight]uint32

	secondaryOAM  [maxSpritesPerScanline * 4]byte
	spriteCount   byte
	spriteZeroHit bool // sprite 0 is among this scanline's evaluated sprites
}

// New constructs a PPU wired to the given cartridge for CHR and
// mirroring. It starts at dot 0 of the pre-render line (scanline 261),
// so scanline 0 begins once that line's 341 dots have been stepped.
func New(cart Cartridge) *PPU {
	p := &PPU{Cart: cart}
	p.scanline = preRenderScanline
	return p
}

func (p *PPU) Frame() uint64        { return p.frame }
func (p *PPU) ScanLine() int        { return p.scanline }
func (p *PPU) Dot() int             { return p.dot }
func (p *PPU) Status() Status       { return p.status }

// Framebuffer returns the packed-ARGB 256x240 pixel buffer produced
// by the most recently completed scanlines. It is owned by the PPU;
// callers must copy it before the next Step mutates it.
func (p *PPU) Framebuffer() *[screenWidth * screenHeight]uint32 {
	return &p.framebuffer
}

// Step advances the PPU by one dot and reports whether this dot
// delivers an NMI edge (VBlank start with NMI generation enabled in
// PPUCTRL).
func (p *PPU) Step() (nmiEdge bool) {
	if p.scanline < visibleScanlines && p.dot == 1 {
		p.renderScanline(p.scanline)
	}

	if p.scanline == vblankStartLine && p.dot == 1 {
		p.status |= StatusVBlank
		if p.ctrl&CtrlNMIOnVBlank != 0 {
			nmiEdge = true
		}
	}

	if p.scanline == preRenderScanline && p.dot == 1 {
		p.status &^= StatusVBlank | StatusSprite0Hit | StatusSpriteOverflow
	}

	if p.scanline == preRenderScanline && p.dot >= 280 && p.dot <= 304 && p.mask&(MaskShowBg|MaskShowSprites) != 0 {
		// Vertical scroll reset: copy v's fine/coarse Y and the Y
		// nametable bit from t, readying the next frame's first row.
		p.v = p.v&^0x7BE0 | p.t&0x7BE0
	}

	p.dot++
	if p.dot >= dotsPerScanline {
		// On odd frames with background rendering on, scanline 0
		// starts at dot 1, skipping its idle dot 0 and making the
		// frame one dot shorter, matching real NTSC timing.
		if p.scanline == preRenderScanline && p.frame%2 == 1 && p.mask&MaskShowBg != 0 {
			p.dot = 1
		} else {
			p.dot = 0
		}
		p.scanline++
		if p.scanline >= scanlinesPerFrame {
			p.scanline = 0
			p.frame++
		}
	}

	return nmiEdge
}

// Read is the PPU's internal 14-bit-masked bus: pattern tables route
// to the cartridge, $2000-$2FFF to mirrored nametable VRAM, and
// $3F00-$3FFF to the aliased palette RAM.
func (p *PPU) Read(addr uint16) byte {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return p.Cart.ReadCHR(addr)
	case addr < 0x3F00:
		return p.vram[nametableOffset(addr, p.Cart.Mirror())]
	default:
		return p.readPalette(addr)
	}
}

func (p *PPU) Write(addr uint16, v byte) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.Cart.WriteCHR(addr, v)
	case addr < 0x3F00:
		p.vram[nametableOffset(addr, p.Cart.Mirror())] = v
	default:
		p.writePalette(addr, v)
	}
}

func (p *PPU) incrementV() {
	p.v = (p.v + p.ctrl.addrIncrement()) & 0x7FFF
}
