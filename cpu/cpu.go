package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

var _cpu_defines = map[string]string{
	"REGISTER_COUNT": fmt.Sprintf("%v", REGISTER_COUNT),
	"REG_LINK":       fmt.Sprintf("%v", REG_LINK),
	"REG_FLAGS":      fmt.Sprintf("%v", REG_FLAGS),
	"REG_SP":         fmt.Sprintf("%v", REG_SP),
	"REG_SELF":       fmt.Sprintf("%v", REG_SELF),
	"REG_RV":         fmt.Sprintf("%v", REG_RV),
	"FLAG_COUNT":     fmt.Sprintf("%v", FLAG_COUNT),
	"FLAG_LT":        fmt.Sprintf("%v", FLAG_LT),
	"FLAG_GT":        fmt.Sprintf("%v", FLAG_GT),
	"FLAG_EQ":        fmt.Sprintf("%v", FLAG_EQ),
	"FLAG_RUNNING":   fmt.Sprintf("%v", FLAG_RUNNING),
}

// Cpu is the simulation context of a single machine.
type Cpu struct {
	Verbose bool // Set to narrate every executed instruction.

	Memory   *Memory   // Address space.
	Register Registers // Register bank.
	Flag     Flags     // Flags register.
	Pc       uint16    // Address of the next byte to fetch.

	Ticks int // Executed instructions counter.

	fault error // Set once the machine has faulted.
}

// NewCpu creates a new machine with size bytes of memory.
func NewCpu(size int) (cpu *Cpu, err error) {
	mem, err := NewMemory(size)
	if err != nil {
		return
	}

	cpu = &Cpu{
		Memory: mem,
	}
	cpu.Register.Set(REG_SP, uint16(size))

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the machine state.
// - Zeroes memory, registers, and flags.
// - Points the stack pointer one past the end of memory.
// - Forgets any recorded fault.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Memory.Reset()
	cpu.Register.Reset()
	cpu.Flag.Reset()
	cpu.Register.Set(REG_SP, uint16(cpu.Memory.Size()))
	cpu.Pc = 0
	cpu.Ticks = 0
	cpu.fault = nil
}

// Fault returns the fault that stopped the machine, if any.
func (cpu *Cpu) Fault() error {
	return cpu.fault
}

// Running returns true if the machine will execute on the next Tick.
func (cpu *Cpu) Running() bool {
	return cpu.fault == nil && cpu.Flag.Running()
}

// String returns the current machine state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %04X\n", "pc", cpu.Pc)
	for n := range REGISTER_COUNT {
		val := cpu.Register.Get(n)
		text += fmt.Sprintf("% 5s: %04X (%d)\n", RegisterName(n), val, int16(val))
	}

	var flags string
	for n := range FLAG_COUNT {
		flags += fmt.Sprintf("%d", cpu.Flag.Get(n))
	}
	text += fmt.Sprintf("% 5s: %v\n", "flags", flags)

	if cpu.fault != nil {
		text += fmt.Sprintf("% 5s: %v\n", "fault", cpu.fault)
	}

	return
}

// Start points the program counter at start and sets the running flag.
func (cpu *Cpu) Start(start uint16) {
	cpu.Pc = start
	cpu.Flag.Set(FLAG_RUNNING, true)
}

// Run executes from start until halted or faulted.
func (cpu *Cpu) Run(start uint16) (err error) {
	if cpu.fault != nil {
		return cpu.fault
	}

	cpu.Start(start)

	return cpu.Resume()
}

// Resume executes from the current program counter until halted or
// faulted. A halted machine executes nothing.
func (cpu *Cpu) Resume() (err error) {
	for done := false; !done; {
		done, err = cpu.Tick()
		if err != nil {
			return
		}
	}

	if cpu.Verbose {
		log.Printf("cpu: halted at 0x%04x after %d ticks", cpu.Pc, cpu.Ticks)
	}

	return
}

// Tick executes a single instruction.
// When the running flag is clear nothing is executed and done is true.
func (cpu *Cpu) Tick() (done bool, err error) {
	if cpu.fault != nil {
		err = cpu.fault
		return
	}

	if !cpu.Flag.Running() {
		done = true
		return
	}

	defer func() {
		if err != nil {
			cpu.fault = err
			if cpu.Verbose {
				log.Printf("cpu: %v", err)
			}
		}
	}()

	ins, err := cpu.Decode()
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%04x: %v", ins.Pc, ins)
	}

	err = cpu.Execute(ins)
	if err != nil {
		return
	}

	cpu.Ticks += 1
	done = !cpu.Flag.Running()

	return
}

// errFault builds the fault raised by an instruction.
func (cpu *Cpu) errFault(ins Instruction, address int, err error) error {
	return &ErrFault{
		Pc:      ins.Pc,
		Opcode:  ins.Opcode,
		Address: address,
		Err:     err,
	}
}

// fetch reads width bytes at the program counter, advancing it.
func (cpu *Cpu) fetch(ins Instruction, width int) (value uint16, err error) {
	addr := int(cpu.Pc)
	if width == 2 {
		value, err = cpu.Memory.ReadWord(addr)
	} else {
		var b byte
		b, err = cpu.Memory.ReadByteAt(addr)
		value = uint16(b)
	}
	if err != nil {
		err = cpu.errFault(ins, addr, err)
		return
	}

	cpu.Pc += uint16(width)
	return
}

// Decode fetches the instruction at the program counter, and its operands.
// The program counter is left after the last operand fetched.
func (cpu *Cpu) Decode() (ins Instruction, err error) {
	ins.Pc = cpu.Pc

	op, err := cpu.fetch(ins, 1)
	if err != nil {
		return
	}
	ins.Opcode = Opcode(op)

	operands, ok := ins.Opcode.Operands()
	if !ok {
		err = cpu.errFault(ins, int(ins.Opcode), ErrOpcodeUndefined)
		return
	}

	for n, operand := range operands {
		var arg uint16
		arg, err = cpu.fetch(ins, operand.Width())
		if err != nil {
			return
		}
		switch operand {
		case OPERAND_REG, OPERAND_REGREF:
			if arg >= REGISTER_COUNT {
				err = cpu.errFault(ins, int(arg), ErrRegisterInvalid)
				return
			}
		case OPERAND_FLAG:
			if arg >= FLAG_COUNT {
				err = cpu.errFault(ins, int(arg), ErrFlagInvalid)
				return
			}
		}
		ins.Args[n] = arg
	}

	return
}

func (cpu *Cpu) readWord(ins Instruction, addr uint16) (value uint16, err error) {
	value, err = cpu.Memory.ReadWord(int(addr))
	if err != nil {
		err = cpu.errFault(ins, int(addr), err)
	}
	return
}

func (cpu *Cpu) writeWord(ins Instruction, addr uint16, value uint16) (err error) {
	err = cpu.Memory.WriteWord(int(addr), value)
	if err != nil {
		err = cpu.errFault(ins, int(addr), err)
	}
	return
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(ins Instruction) (err error) {
	reg := &cpu.Register
	a := int(ins.Args[0])
	b := int(ins.Args[1])

	switch ins.Opcode {
	case OP_PUSH:
		sp := reg.Get(REG_SP)
		if sp < 2 {
			return cpu.errFault(ins, int(sp), ErrStackOverflow)
		}
		value := reg.Get(a)
		if a == REG_SP {
			value = sp - 2
		}
		err = cpu.writeWord(ins, sp-2, value)
		if err != nil {
			return
		}
		reg.Set(REG_SP, sp-2)
	case OP_MOV_RP_R:
		err = cpu.writeWord(ins, reg.Get(a), reg.Get(b))
	case OP_MOV_RP_M:
		var value uint16
		value, err = cpu.readWord(ins, ins.Args[1])
		if err != nil {
			return
		}
		err = cpu.writeWord(ins, reg.Get(a), value)
	case OP_MOV_RP_C:
		err = cpu.writeWord(ins, reg.Get(a), ins.Args[1])
	case OP_MOV_R_R:
		reg.Set(a, reg.Get(b))
	case OP_MOV_R_M:
		var value uint16
		value, err = cpu.readWord(ins, ins.Args[1])
		if err != nil {
			return
		}
		reg.Set(a, value)
	case OP_MOV_R_C:
		reg.Set(a, ins.Args[1])
	case OP_MOV_R_RP:
		var value uint16
		value, err = cpu.readWord(ins, reg.Get(b))
		if err != nil {
			return
		}
		reg.Set(a, value)
	case OP_SUB_R_R:
		reg.Set(a, reg.Get(a)-reg.Get(b))
	case OP_SUB_R_C:
		reg.Set(a, reg.Get(a)-ins.Args[1])
	case OP_ADD_R_R:
		reg.Set(a, reg.Get(a)+reg.Get(b))
	case OP_ADD_R_C:
		reg.Set(a, reg.Get(a)+ins.Args[1])
	case OP_CMP:
		// Treat as signed.
		cpu.Flag.Compare(reg.Signed(a), reg.Signed(b))
	case OP_FLG:
		reg.Set(a, cpu.Flag.Get(b))
	case OP_JNZ:
		if reg.Get(a) != 0 {
			cpu.Pc = ins.Args[1]
		}
	case OP_JMP:
		cpu.Pc = ins.Args[0]
	case OP_CALL:
		target := reg.Get(a)
		reg.Set(REG_LINK, cpu.Pc)
		cpu.Pc = target
	case OP_POP:
		sp := reg.Get(REG_SP)
		if int(sp)+2 > cpu.Memory.Size() {
			return cpu.errFault(ins, int(sp), ErrStackUnderflow)
		}
		var value uint16
		value, err = cpu.readWord(ins, sp)
		if err != nil {
			return
		}
		reg.Set(a, value)
		reg.Set(REG_SP, reg.Get(REG_SP)+2)
	case OP_RET:
		cpu.Pc = reg.Get(REG_LINK)
	case OP_HLT:
		cpu.Flag.Set(FLAG_RUNNING, false)
	default:
		err = cpu.errFault(ins, int(ins.Opcode), ErrOpcodeUndefined)
	}

	return
}
