package cpu6502

// Flags is the 8-bit processor status register, P.
//
// 7654 3210
// NVUB DIZC
//
// U (unused) reads as 1 always. B is not a physical flag: it only
// exists in the byte value that gets pushed to the stack, and its
// value there records why the push happened (1 for PHP/BRK, 0 for
// IRQ/NMI). unpackFromPull always forces U=1 and discards B.
type Flags byte

const (
	FlagCarry     Flags = 1 << 0
	FlagZero      Flags = 1 << 1
	FlagInterrupt Flags = 1 << 2
	FlagDecimal   Flags = 1 << 3
	FlagBreak     Flags = 1 << 4
	FlagUnused    Flags = 1 << 5
	FlagOverflow  Flags = 1 << 6
	FlagNegative  Flags = 1 << 7
)

// pushOrigin distinguishes the two contexts that push P to the stack.
type pushOrigin byte

const (
	originInterrupt pushOrigin = iota // IRQ / NMI: B=0
	originInstruction                 // PHP / BRK: B=1
)

// packForPush renders P as the byte that actually lands on the stack,
// with B and U set according to the pushing context.
func (c *CPU) packForPush(origin pushOrigin) byte {
	v := c.p | FlagUnused
	if origin == originInstruction {
		v |= FlagBreak
	} else {
		v &^= FlagBreak
	}
	return byte(v)
}

// unpackFromPull restores P from a byte popped off the stack. B and U
// are not real flags: U is forced to 1, B is dropped entirely.
func unpackFromPull(v byte) Flags {
	p := Flags(v)
	p |= FlagUnused
	p &^= FlagBreak
	return p
}

func (c *CPU) setZN(v byte) {
	if v == 0 {
		c.p |= FlagZero
	} else {
		c.p &^= FlagZero
	}
	if v&0x80 != 0 {
		c.p |= FlagNegative
	} else {
		c.p &^= FlagNegative
	}
}

func (c *CPU) setFlag(f Flags, on bool) {
	if on {
		c.p |= f
	} else {
		c.p &^= f
	}
}
