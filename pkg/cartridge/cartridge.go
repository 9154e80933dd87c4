// Package cartridge loads iNES ROM images and exposes mapper 0 (NROM)
// cartridge bus semantics to the CPU and PPU integration layer.
package cartridge

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/amyanger/retrocore/pkg/ppu2c02"
)

const (
	trainerLen = 512
	prgBankLen = 16 * 1024
	chrBankLen = 8 * 1024
)

const (
	rc1MirrorVertical = 1 << iota
	rc1SaveRAM
	rc1Trainer
	rc1FourScreen
)

var inesMagic = [4]byte{'N', 'E', 'S', 0x1A}

// Sentinel errors for the documented cartridge-loading failure
// taxonomy: a host can type-switch on these without parsing message
// text.
var (
	ErrBadMagic       = errors.New("cartridge: missing iNES magic number")
	ErrTruncated      = errors.New("cartridge: file too short for its declared bank counts")
	ErrUnsupportedMapper = errors.New("cartridge: only mapper 0 (NROM) is supported")
	ErrNoPRGBanks     = errors.New("cartridge: header declares zero PRG-ROM banks")
)

// MirrorMode is re-exported from ppu2c02 so callers constructing a
// Cartridge never need to import that package directly.
type MirrorMode = ppu2c02.MirrorMode

const (
	Horizontal = ppu2c02.MirrorHorizontal
	Vertical   = ppu2c02.MirrorVertical
)

// Cartridge is a loaded NROM (mapper 0) image: fixed PRG-ROM banked
// into $8000-$FFFF (mirrored if only one 16KB bank is present) and
// CHR-ROM/RAM backing the PPU's pattern tables.
type Cartridge struct {
	MirrorMode MirrorMode
	SaveRAM    bool
	FourScreen bool
	Mapper     byte

	Trainer []byte
	prg     []byte
	chr     []byte
	chrIsRAM bool

	sram [0x2000]byte // $6000-$7FFF, battery-backed on real NROM boards with SaveRAM
}

type inesHeader struct {
	Magic       [4]byte
	PRGBanks    byte
	CHRBanks    byte
	ROMControl1 byte
	ROMControl2 byte
	PRGRAMSize  byte
	_           [7]byte
}

// LoadINES parses an iNES-format ROM image. Only mapper 0 is
// supported; any other mapper number in the header is rejected rather
// than silently misread.
func LoadINES(r io.Reader) (*Cartridge, error) {
	var h inesHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, ErrTruncated
		}
		return nil, fmt.Errorf("cartridge: reading header: %w", err)
	}

	if !bytes.Equal(h.Magic[:], inesMagic[:]) {
		return nil, ErrBadMagic
	}

	if h.PRGBanks == 0 {
		return nil, ErrNoPRGBanks
	}

	mapper := h.ROMControl1>>4 | h.ROMControl2&0xF0
	if mapper != 0 {
		return nil, fmt.Errorf("%w: got mapper %d", ErrUnsupportedMapper, mapper)
	}

	var trainer []byte
	if h.ROMControl1&rc1Trainer != 0 {
		trainer = make([]byte, trainerLen)
		if _, err := io.ReadFull(r, trainer); err != nil {
			return nil, ErrTruncated
		}
	}

	prg := make([]byte, int(h.PRGBanks)*prgBankLen)
	if _, err := io.ReadFull(r, prg); err != nil {
		return nil, ErrTruncated
	}

	var chr []byte
	chrIsRAM := h.CHRBanks == 0
	if chrIsRAM {
		chr = make([]byte, chrBankLen) // CHR RAM: one bank, writable
	} else {
		chr = make([]byte, int(h.CHRBanks)*chrBankLen)
		if _, err := io.ReadFull(r, chr); err != nil {
			return nil, ErrTruncated
		}
	}

	mirror := Horizontal
	if h.ROMControl1&rc1MirrorVertical != 0 {
		mirror = Vertical
	}
	fourScreen := h.ROMControl1&rc1FourScreen != 0

	return &Cartridge{
		MirrorMode: mirror,
		SaveRAM:    h.ROMControl1&rc1SaveRAM != 0,
		FourScreen: fourScreen,
		Mapper:     mapper,
		Trainer:    trainer,
		prg:        prg,
		chr:        chr,
		chrIsRAM:   chrIsRAM,
	}, nil
}

// ReadCPU services CPU-bus reads in $4020-$FFFF. NROM mirrors a
// single 16KB PRG bank across both halves of $8000-$FFFF; with two
// banks the full 32KB is mapped directly.
func (c *Cartridge) ReadCPU(addr uint16) byte {
	switch {
	case addr >= 0x8000:
		return c.prg[int(addr-0x8000)%len(c.prg)]
	case addr >= 0x6000:
		return c.sram[addr-0x6000]
	default:
		return 0
	}
}

// WriteCPU handles writes into the cartridge's CPU-bus window. NROM
// has no writable PRG; only SRAM in $6000-$7FFF accepts a write.
func (c *Cartridge) WriteCPU(addr uint16, v byte) {
	if addr >= 0x6000 && addr < 0x8000 {
		c.sram[addr-0x6000] = v
	}
}

// ReadCHR and WriteCHR satisfy ppu2c02.Cartridge.
func (c *Cartridge) ReadCHR(addr uint16) byte { return c.chr[addr%uint16(len(c.chr))] }

func (c *Cartridge) WriteCHR(addr uint16, v byte) {
	if c.chrIsRAM {
		c.chr[addr%uint16(len(c.chr))] = v
	}
}

// Mirror satisfies ppu2c02.Cartridge.
func (c *Cartridge) Mirror() MirrorMode { return c.MirrorMode }
