package cpu6502

import (
	"fmt"
	"strings"
)

// operandFormats mirrors each addressing mode's textual operand shape
// for trace output; Implied and Accumulator need none.
var operandFormats = map[AddressingMode]string{
	Immediate:       "#$%02X",
	ZeroPage:        "$%02X",
	ZeroPageX:       "$%02X,X",
	ZeroPageY:       "$%02X,Y",
	Absolute:        "$%04X",
	AbsoluteX:       "$%04X,X",
	AbsoluteY:       "$%04X,Y",
	Indirect:        "($%04X)",
	IndexedIndirect: "($%02X,X)",
	IndirectIndexed: "($%02X),Y",
	Relative:        "$%04X",
}

// operandSize returns the number of operand bytes (not counting the
// opcode byte itself) an instruction of this mode carries.
func operandSize(mode AddressingMode) int {
	switch mode {
	case Implied, Accumulator:
		return 0
	case Immediate, ZeroPage, ZeroPageX, ZeroPageY, IndexedIndirect, IndirectIndexed, Relative:
		return 1
	default:
		return 2
	}
}

// Trace renders one line in the teacher's disassembly-trace format:
// address, raw bytes, mnemonic with resolved operand, then register
// and cycle state — the shape the standalone CLI's -v flag emits.
func Trace(b Bus, c *CPU) string {
	pc := c.pc
	opcode := b.Read(pc)
	inst := opcodeTable[opcode]

	var sb strings.Builder
	fmt.Fprintf(&sb, "%04X  ", pc)

	size := operandSize(inst.mode) + 1
	switch size {
	case 1:
		fmt.Fprintf(&sb, "%02X      ", opcode)
	case 2:
		fmt.Fprintf(&sb, "%02X %02X   ", opcode, b.Read(pc+1))
	case 3:
		fmt.Fprintf(&sb, "%02X %02X %02X", opcode, b.Read(pc+1), b.Read(pc+2))
	}

	if inst.illegal {
		sb.WriteString(" *")
	} else {
		sb.WriteString("  ")
	}

	sb.WriteString(inst.mnemonic)
	sb.WriteByte(' ')

	switch inst.mode {
	case Accumulator:
		sb.WriteString("A")
	case Implied:
	case Relative:
		offset := int8(b.Read(pc + 1))
		target := uint16(int32(pc) + 2 + int32(offset))
		fmt.Fprintf(&sb, operandFormats[Relative], target)
	default:
		var arg uint16
		switch operandSize(inst.mode) {
		case 1:
			arg = uint16(b.Read(pc + 1))
		case 2:
			arg = uint16(b.Read(pc+1)) | uint16(b.Read(pc+2))<<8
		}
		if format, ok := operandFormats[inst.mode]; ok {
			fmt.Fprintf(&sb, format, arg)
		}
	}

	for sb.Len() < 48 {
		sb.WriteByte(' ')
	}

	fmt.Fprintf(&sb, "A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		c.a, c.x, c.y, byte(c.p), c.s, c.cycles)

	return sb.String()
}
