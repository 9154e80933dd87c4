// Package chip8 implements a CHIP-8 interpreter: the same
// instruction-decoded virtual machine pattern as pkg/cpu6502, scaled
// down to CHIP-8's 35 two-byte opcodes and 64x32 1-bit display. It is
// included alongside the 6502/PPU core because its DXYN sprite draw
// exercises the same tight per-pixel XOR-with-collision-flag shape
// seen nowhere else in this module.
package chip8

const (
	memorySize     = 4096
	programStart   = 0x200
	registerCount  = 16
	stackSize      = 16
	keypadSize     = 16
	displayWidth   = 64
	displayHeight  = 32
)

// fontSet is the standard 5-byte-per-glyph 0-F hexadecimal font,
// loaded at the bottom of memory so FX29 can index it directly.
var fontSet = [80]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// VM is a CHIP-8 machine: 4KiB of memory, sixteen 8-bit registers, a
// 16-bit index register, a 16-level call stack, a monochrome 64x32
// display, and the delay/sound timers. It has no concept of a host
// clock; Cycle decodes and executes exactly one opcode, and TickTimers
// is expected to be called at 60Hz by whatever owns the loop.
type VM struct {
	memory [memorySize]byte
	v      [registerCount]byte
	i      uint16
	pc     uint16

	stack [stackSize]uint16
	sp    byte

	display [displayWidth * displayHeight]byte

	delayTimer byte
	soundTimer byte

	keypad [keypadSize]bool

	// drawFlag is set by 00E0 and DXYN and consumed by a host once per
	// frame to decide whether the display needs re-presenting.
	drawFlag bool

	// halted records an out-of-bounds PC or corrupt stack operation.
	// Unlike the 6502's illegal-opcode halt, this is a defensive
	// backstop for malformed ROMs, not part of the documented opcode
	// set; Cycle becomes a no-op once set.
	halted bool
}

// New returns a VM with the font set loaded at the bottom of memory
// and PC at the standard CHIP-8 program start address.
func New() *VM {
	vm := &VM{pc: programStart}
	copy(vm.memory[:], fontSet[:])
	return vm
}

// LoadROM copies program bytes into memory starting at $200. It
// reports whether the ROM fit within the remaining address space.
func (vm *VM) LoadROM(rom []byte) bool {
	if len(rom) > memorySize-programStart {
		return false
	}
	copy(vm.memory[programStart:], rom)
	return true
}

func (vm *VM) Halted() bool     { return vm.halted }
func (vm *VM) DrawFlag() bool   { return vm.drawFlag }
func (vm *VM) ClearDrawFlag()   { vm.drawFlag = false }
func (vm *VM) Display() *[displayWidth * displayHeight]byte { return &vm.display }
func (vm *VM) V(reg int) byte   { return vm.v[reg] }
func (vm *VM) I() uint16        { return vm.i }
func (vm *VM) PC() uint16       { return vm.pc }

// KeyDown and KeyUp update the 16-key hex keypad state; index must be
// 0-15.
func (vm *VM) KeyDown(key byte) { vm.keypad[key&0x0F] = true }
func (vm *VM) KeyUp(key byte)   { vm.keypad[key&0x0F] = false }

// TickTimers decrements the delay and sound timers at whatever rate
// the host calls it (nominally 60Hz); it does not gate on Cycle.
func (vm *VM) TickTimers() {
	if vm.delayTimer > 0 {
		vm.delayTimer--
	}
	if vm.soundTimer > 0 {
		vm.soundTimer--
	}
}

// Cycle fetches, decodes and executes one opcode. It is a no-op once
// halted is set by an out-of-bounds fetch.
func (vm *VM) Cycle() {
	if vm.halted {
		return
	}
	if vm.pc > memorySize-2 {
		vm.halted = true
		return
	}

	opcode := uint16(vm.memory[vm.pc])<<8 | uint16(vm.memory[vm.pc+1])
	vm.pc += 2
	vm.execute(opcode)
}
