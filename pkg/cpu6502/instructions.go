package cpu6502

// Instruction describes one entry of the fixed 256-slot opcode table:
// mnemonic for tracing, addressing mode, base cycle count, whether an
// indexed/indirect-indexed page crossing adds a cycle, and whether the
// opcode is a legal 6502 instruction at all. The table is data, not
// code structure — dispatch is a single slice index, never a switch.
type Instruction struct {
	mnemonic         string
	mode             AddressingMode
	cycles           byte
	pageCrossPenalty bool
	illegal          bool
	exec             func(c *CPU, b Bus, addr uint16, mode AddressingMode) int
}

// opcodeTable is indexed directly by the fetched opcode byte. init
// marks every slot illegal before assigning the legal opcodes, so a
// slot not explicitly assigned below stays illegal and Step halts on
// it rather than panicking on a nil exec.
var opcodeTable [256]Instruction

func op(code byte, mnemonic string, mode AddressingMode, cycles byte, pageCrossPenalty bool, exec func(c *CPU, b Bus, addr uint16, mode AddressingMode) int) {
	opcodeTable[code] = Instruction{
		mnemonic:         mnemonic,
		mode:             mode,
		cycles:           cycles,
		pageCrossPenalty: pageCrossPenalty,
		exec:             exec,
	}
}

func init() {
	for i := range opcodeTable {
		opcodeTable[i].illegal = true
	}

	// ORA
	op(0x01, "ORA", IndexedIndirect, 6, false, execORA)
	op(0x05, "ORA", ZeroPage, 3, false, execORA)
	op(0x09, "ORA", Immediate, 2, false, execORA)
	op(0x0D, "ORA", Absolute, 4, false, execORA)
	op(0x11, "ORA", IndirectIndexed, 5, true, execORA)
	op(0x15, "ORA", ZeroPageX, 4, false, execORA)
	op(0x19, "ORA", AbsoluteY, 4, true, execORA)
	op(0x1D, "ORA", AbsoluteX, 4, true, execORA)

	// AND
	op(0x21, "AND", IndexedIndirect, 6, false, execAND)
	op(0x25, "AND", ZeroPage, 3, false, execAND)
	op(0x29, "AND", Immediate, 2, false, execAND)
	op(0x2D, "AND", Absolute, 4, false, execAND)
	op(0x31, "AND", IndirectIndexed, 5, true, execAND)
	op(0x35, "AND", ZeroPageX, 4, false, execAND)
	op(0x39, "AND", AbsoluteY, 4, true, execAND)
	op(0x3D, "AND", AbsoluteX, 4, true, execAND)

	// EOR
	op(0x41, "EOR", IndexedIndirect, 6, false, execEOR)
	op(0x45, "EOR", ZeroPage, 3, false, execEOR)
	op(0x49, "EOR", Immediate, 2, false, execEOR)
	op(0x4D, "EOR", Absolute, 4, false, execEOR)
	op(0x51, "EOR", IndirectIndexed, 5, true, execEOR)
	op(0x55, "EOR", ZeroPageX, 4, false, execEOR)
	op(0x59, "EOR", AbsoluteY, 4, true, execEOR)
	op(0x5D, "EOR", AbsoluteX, 4, true, execEOR)

	// ADC
	op(0x61, "ADC", IndexedIndirect, 6, false, execADC)
	op(0x65, "ADC", ZeroPage, 3, false, execADC)
	op(0x69, "ADC", Immediate, 2, false, execADC)
	op(0x6D, "ADC", Absolute, 4, false, execADC)
	op(0x71, "ADC", IndirectIndexed, 5, true, execADC)
	op(0x75, "ADC", ZeroPageX, 4, false, execADC)
	op(0x79, "ADC", AbsoluteY, 4, true, execADC)
	op(0x7D, "ADC", AbsoluteX, 4, true, execADC)

	// SBC
	op(0xE1, "SBC", IndexedIndirect, 6, false, execSBC)
	op(0xE5, "SBC", ZeroPage, 3, false, execSBC)
	op(0xE9, "SBC", Immediate, 2, false, execSBC)
	op(0xED, "SBC", Absolute, 4, false, execSBC)
	op(0xF1, "SBC", IndirectIndexed, 5, true, execSBC)
	op(0xF5, "SBC", ZeroPageX, 4, false, execSBC)
	op(0xF9, "SBC", AbsoluteY, 4, true, execSBC)
	op(0xFD, "SBC", AbsoluteX, 4, true, execSBC)

	// CMP
	op(0xC1, "CMP", IndexedIndirect, 6, false, execCMP)
	op(0xC5, "CMP", ZeroPage, 3, false, execCMP)
	op(0xC9, "CMP", Immediate, 2, false, execCMP)
	op(0xCD, "CMP", Absolute, 4, false, execCMP)
	op(0xD1, "CMP", IndirectIndexed, 5, true, execCMP)
	op(0xD5, "CMP", ZeroPageX, 4, false, execCMP)
	op(0xD9, "CMP", AbsoluteY, 4, true, execCMP)
	op(0xDD, "CMP", AbsoluteX, 4, true, execCMP)

	// CPX / CPY
	op(0xE0, "CPX", Immediate, 2, false, execCPX)
	op(0xE4, "CPX", ZeroPage, 3, false, execCPX)
	op(0xEC, "CPX", Absolute, 4, false, execCPX)
	op(0xC0, "CPY", Immediate, 2, false, execCPY)
	op(0xC4, "CPY", ZeroPage, 3, false, execCPY)
	op(0xCC, "CPY", Absolute, 4, false, execCPY)

	// INC / DEC (memory)
	op(0xE6, "INC", ZeroPage, 5, false, execINC)
	op(0xF6, "INC", ZeroPageX, 6, false, execINC)
	op(0xEE, "INC", Absolute, 6, false, execINC)
	op(0xFE, "INC", AbsoluteX, 7, false, execINC)
	op(0xC6, "DEC", ZeroPage, 5, false, execDEC)
	op(0xD6, "DEC", ZeroPageX, 6, false, execDEC)
	op(0xCE, "DEC", Absolute, 6, false, execDEC)
	op(0xDE, "DEC", AbsoluteX, 7, false, execDEC)

	// INX/INY/DEX/DEY
	op(0xE8, "INX", Implied, 2, false, execINX)
	op(0xC8, "INY", Implied, 2, false, execINY)
	op(0xCA, "DEX", Implied, 2, false, execDEX)
	op(0x88, "DEY", Implied, 2, false, execDEY)

	// Shifts/rotates
	op(0x0A, "ASL", Accumulator, 2, false, execASL)
	op(0x06, "ASL", ZeroPage, 5, false, execASL)
	op(0x16, "ASL", ZeroPageX, 6, false, execASL)
	op(0x0E, "ASL", Absolute, 6, false, execASL)
	op(0x1E, "ASL", AbsoluteX, 7, false, execASL)

	op(0x4A, "LSR", Accumulator, 2, false, execLSR)
	op(0x46, "LSR", ZeroPage, 5, false, execLSR)
	op(0x56, "LSR", ZeroPageX, 6, false, execLSR)
	op(0x4E, "LSR", Absolute, 6, false, execLSR)
	op(0x5E, "LSR", AbsoluteX, 7, false, execLSR)

	op(0x2A, "ROL", Accumulator, 2, false, execROL)
	op(0x26, "ROL", ZeroPage, 5, false, execROL)
	op(0x36, "ROL", ZeroPageX, 6, false, execROL)
	op(0x2E, "ROL", Absolute, 6, false, execROL)
	op(0x3E, "ROL", AbsoluteX, 7, false, execROL)

	op(0x6A, "ROR", Accumulator, 2, false, execROR)
	op(0x66, "ROR", ZeroPage, 5, false, execROR)
	op(0x76, "ROR", ZeroPageX, 6, false, execROR)
	op(0x6E, "ROR", Absolute, 6, false, execROR)
	op(0x7E, "ROR", AbsoluteX, 7, false, execROR)

	// BIT
	op(0x24, "BIT", ZeroPage, 3, false, execBIT)
	op(0x2C, "BIT", Absolute, 4, false, execBIT)

	// Loads
	op(0xA9, "LDA", Immediate, 2, false, execLDA)
	op(0xA5, "LDA", ZeroPage, 3, false, execLDA)
	op(0xB5, "LDA", ZeroPageX, 4, false, execLDA)
	op(0xAD, "LDA", Absolute, 4, false, execLDA)
	op(0xBD, "LDA", AbsoluteX, 4, true, execLDA)
	op(0xB9, "LDA", AbsoluteY, 4, true, execLDA)
	op(0xA1, "LDA", IndexedIndirect, 6, false, execLDA)
	op(0xB1, "LDA", IndirectIndexed, 5, true, execLDA)

	op(0xA2, "LDX", Immediate, 2, false, execLDX)
	op(0xA6, "LDX", ZeroPage, 3, false, execLDX)
	op(0xB6, "LDX", ZeroPageY, 4, false, execLDX)
	op(0xAE, "LDX", Absolute, 4, false, execLDX)
	op(0xBE, "LDX", AbsoluteY, 4, true, execLDX)

	op(0xA0, "LDY", Immediate, 2, false, execLDY)
	op(0xA4, "LDY", ZeroPage, 3, false, execLDY)
	op(0xB4, "LDY", ZeroPageX, 4, false, execLDY)
	op(0xAC, "LDY", Absolute, 4, false, execLDY)
	op(0xBC, "LDY", AbsoluteX, 4, true, execLDY)

	// Stores
	op(0x85, "STA", ZeroPage, 3, false, execSTA)
	op(0x95, "STA", ZeroPageX, 4, false, execSTA)
	op(0x8D, "STA", Absolute, 4, false, execSTA)
	op(0x9D, "STA", AbsoluteX, 5, false, execSTA)
	op(0x99, "STA", AbsoluteY, 5, false, execSTA)
	op(0x81, "STA", IndexedIndirect, 6, false, execSTA)
	op(0x91, "STA", IndirectIndexed, 6, false, execSTA)

	op(0x86, "STX", ZeroPage, 3, false, execSTX)
	op(0x96, "STX", ZeroPageY, 4, false, execSTX)
	op(0x8E, "STX", Absolute, 4, false, execSTX)

	op(0x84, "STY", ZeroPage, 3, false, execSTY)
	op(0x94, "STY", ZeroPageX, 4, false, execSTY)
	op(0x8C, "STY", Absolute, 4, false, execSTY)

	// Register transfers
	op(0xAA, "TAX", Implied, 2, false, execTAX)
	op(0xA8, "TAY", Implied, 2, false, execTAY)
	op(0x8A, "TXA", Implied, 2, false, execTXA)
	op(0x98, "TYA", Implied, 2, false, execTYA)
	op(0xBA, "TSX", Implied, 2, false, execTSX)
	op(0x9A, "TXS", Implied, 2, false, execTXS)

	// Stack
	op(0x48, "PHA", Implied, 3, false, execPHA)
	op(0x08, "PHP", Implied, 3, false, execPHP)
	op(0x68, "PLA", Implied, 4, false, execPLA)
	op(0x28, "PLP", Implied, 4, false, execPLP)

	// Jumps/calls/returns
	op(0x4C, "JMP", Absolute, 3, false, execJMP)
	op(0x6C, "JMP", Indirect, 5, false, execJMP)
	op(0x20, "JSR", Absolute, 6, false, execJSR)
	op(0x60, "RTS", Implied, 6, false, execRTS)
	op(0x40, "RTI", Implied, 6, false, execRTI)
	op(0x00, "BRK", Implied, 7, false, execBRK)

	// Branches
	op(0x90, "BCC", Relative, 2, false, branch(func(c *CPU) bool { return c.p&FlagCarry == 0 }))
	op(0xB0, "BCS", Relative, 2, false, branch(func(c *CPU) bool { return c.p&FlagCarry != 0 }))
	op(0xF0, "BEQ", Relative, 2, false, branch(func(c *CPU) bool { return c.p&FlagZero != 0 }))
	op(0xD0, "BNE", Relative, 2, false, branch(func(c *CPU) bool { return c.p&FlagZero == 0 }))
	op(0x30, "BMI", Relative, 2, false, branch(func(c *CPU) bool { return c.p&FlagNegative != 0 }))
	op(0x10, "BPL", Relative, 2, false, branch(func(c *CPU) bool { return c.p&FlagNegative == 0 }))
	op(0x50, "BVC", Relative, 2, false, branch(func(c *CPU) bool { return c.p&FlagOverflow == 0 }))
	op(0x70, "BVS", Relative, 2, false, branch(func(c *CPU) bool { return c.p&FlagOverflow != 0 }))

	// Flag ops
	op(0x18, "CLC", Implied, 2, false, flagOp(FlagCarry, false))
	op(0x38, "SEC", Implied, 2, false, flagOp(FlagCarry, true))
	op(0xD8, "CLD", Implied, 2, false, flagOp(FlagDecimal, false))
	op(0xF8, "SED", Implied, 2, false, flagOp(FlagDecimal, true))
	op(0x58, "CLI", Implied, 2, false, flagOp(FlagInterrupt, false))
	op(0x78, "SEI", Implied, 2, false, flagOp(FlagInterrupt, true))
	op(0xB8, "CLV", Implied, 2, false, flagOp(FlagOverflow, false))

	op(0xEA, "NOP", Implied, 2, false, execNOP)
}
