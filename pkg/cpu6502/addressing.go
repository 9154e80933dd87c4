package cpu6502

// AddressingMode names one of the 6502's thirteen operand-fetch
// strategies. It is pure data: resolve below maps (CPU, mode) to an
// effective address, advancing PC and (for indexed modes) setting
// pageCrossed as a side effect.
type AddressingMode byte

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
	Relative
)

// resolve computes the effective address for the current instruction
// and advances PC past the operand bytes. It also sets c.pageCrossed
// for the indexed modes, so opcode handlers can apply the page-cross
// cycle penalty in the handful of places §4.2 calls for it.
func (c *CPU) resolve(b Bus, mode AddressingMode) uint16 {
	c.pageCrossed = false

	switch mode {
	case Implied, Accumulator:
		return 0

	case Immediate:
		addr := c.pc
		c.pc++
		return addr

	case ZeroPage:
		addr := uint16(c.fetch(b))
		return addr

	case ZeroPageX:
		return uint16(c.fetch(b) + c.x)

	case ZeroPageY:
		return uint16(c.fetch(b) + c.y)

	case Absolute:
		return c.fetch16(b)

	case AbsoluteX:
		base := c.fetch16(b)
		addr := base + uint16(c.x)
		c.pageCrossed = (base & 0xFF00) != (addr & 0xFF00)
		return addr

	case AbsoluteY:
		base := c.fetch16(b)
		addr := base + uint16(c.y)
		c.pageCrossed = (base & 0xFF00) != (addr & 0xFF00)
		return addr

	case Indirect:
		// JMP ($xxFF) wraps the high-byte fetch within the same page —
		// the NMOS indirect-JMP bug, preserved deliberately.
		ptr := c.fetch16(b)
		lo := b.Read(ptr)
		hi := b.Read((ptr & 0xFF00) | ((ptr + 1) & 0x00FF))
		return uint16(hi)<<8 | uint16(lo)

	case IndexedIndirect:
		zp := c.fetch(b) + c.x
		lo := b.Read(uint16(zp))
		hi := b.Read(uint16(zp + 1))
		return uint16(hi)<<8 | uint16(lo)

	case IndirectIndexed:
		zp := c.fetch(b)
		lo := b.Read(uint16(zp))
		hi := b.Read(uint16(zp + 1))
		base := uint16(hi)<<8 | uint16(lo)
		addr := base + uint16(c.y)
		c.pageCrossed = (base & 0xFF00) != (addr & 0xFF00)
		return addr

	case Relative:
		offset := int8(c.fetch(b))
		return uint16(int32(c.pc) + int32(offset))
	}

	return 0
}

// fetch reads the byte at PC and advances it.
func (c *CPU) fetch(b Bus) byte {
	v := b.Read(c.pc)
	c.pc++
	return v
}

// fetch16 reads a little-endian word at PC and advances it by two.
func (c *CPU) fetch16(b Bus) uint16 {
	lo := c.fetch(b)
	hi := c.fetch(b)
	return uint16(hi)<<8 | uint16(lo)
}
