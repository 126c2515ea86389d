package cpu

import (
	"fmt"
	"strings"
)

// Opcode is the instruction selector byte.
type Opcode byte

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_PUSH     = Opcode(0)  // push
	OP_MOV_RP_R = Opcode(1)  // mov_rp_r
	OP_MOV_RP_M = Opcode(2)  // mov_rp_m
	OP_MOV_RP_C = Opcode(3)  // mov_rp_c
	OP_MOV_R_R  = Opcode(4)  // mov_r_r
	OP_MOV_R_M  = Opcode(5)  // mov_r_m
	OP_MOV_R_C  = Opcode(6)  // mov_r_c
	OP_MOV_R_RP = Opcode(7)  // mov_r_rp
	OP_SUB_R_R  = Opcode(8)  // sub_r_r
	OP_SUB_R_C  = Opcode(9)  // sub_r_c
	OP_ADD_R_R  = Opcode(10) // add_r_r
	OP_ADD_R_C  = Opcode(11) // add_r_c
	OP_CMP      = Opcode(12) // cmp
	OP_FLG      = Opcode(13) // flg
	OP_JNZ      = Opcode(14) // jnz
	OP_JMP      = Opcode(15) // jmp
	OP_CALL     = Opcode(16) // call
	OP_POP      = Opcode(17) // pop
	OP_RET      = Opcode(18) // ret
	OP_HLT      = Opcode(19) // hlt
)

// Operand is the kind of an operand following an opcode.
type Operand int

const (
	OPERAND_REG    = Operand(0) // Register index, 1 byte.
	OPERAND_REGREF = Operand(1) // Register holding an address, 1 byte.
	OPERAND_FLAG   = Operand(2) // Flag slot index, 1 byte.
	OPERAND_ADDR   = Operand(3) // Memory address, 2 bytes.
	OPERAND_IMM    = Operand(4) // Immediate value, 2 bytes.
)

// Width returns the number of instruction stream bytes used by the operand.
func (o Operand) Width() int {
	switch o {
	case OPERAND_ADDR, OPERAND_IMM:
		return 2
	default:
		return 1
	}
}

// _opcode_operands is the operand layout of every defined opcode.
var _opcode_operands = [...][]Operand{
	OP_PUSH:     {OPERAND_REG},
	OP_MOV_RP_R: {OPERAND_REGREF, OPERAND_REG},
	OP_MOV_RP_M: {OPERAND_REGREF, OPERAND_ADDR},
	OP_MOV_RP_C: {OPERAND_REGREF, OPERAND_IMM},
	OP_MOV_R_R:  {OPERAND_REG, OPERAND_REG},
	OP_MOV_R_M:  {OPERAND_REG, OPERAND_ADDR},
	OP_MOV_R_C:  {OPERAND_REG, OPERAND_IMM},
	OP_MOV_R_RP: {OPERAND_REG, OPERAND_REGREF},
	OP_SUB_R_R:  {OPERAND_REG, OPERAND_REG},
	OP_SUB_R_C:  {OPERAND_REG, OPERAND_IMM},
	OP_ADD_R_R:  {OPERAND_REG, OPERAND_REG},
	OP_ADD_R_C:  {OPERAND_REG, OPERAND_IMM},
	OP_CMP:      {OPERAND_REG, OPERAND_REG},
	OP_FLG:      {OPERAND_REG, OPERAND_FLAG},
	OP_JNZ:      {OPERAND_REG, OPERAND_ADDR},
	OP_JMP:      {OPERAND_ADDR},
	OP_CALL:     {OPERAND_REGREF},
	OP_POP:      {OPERAND_REG},
	OP_RET:      {},
	OP_HLT:      {},
}

// Valid returns true if the opcode has an instruction definition.
func (op Opcode) Valid() bool {
	return int(op) < len(_opcode_operands)
}

// Operands returns the operand layout of the opcode.
func (op Opcode) Operands() (operands []Operand, ok bool) {
	if !op.Valid() {
		return
	}

	return _opcode_operands[op], true
}

// Size returns the encoded size in bytes of the instruction, opcode included.
// Undefined opcodes have a size of zero.
func (op Opcode) Size() (size int) {
	operands, ok := op.Operands()
	if !ok {
		return
	}

	size = 1
	for _, operand := range operands {
		size += operand.Width()
	}

	return
}

// Instruction is a decoded instruction.
type Instruction struct {
	Pc     uint16    // Address of the opcode byte.
	Opcode Opcode    // Instruction selector.
	Args   [2]uint16 // Operand values, in encoding order.
}

// String returns a human readable form of the instruction.
func (ins Instruction) String() string {
	operands, ok := ins.Opcode.Operands()
	if !ok {
		return ins.Opcode.String()
	}

	args := make([]string, len(operands))
	for n, operand := range operands {
		arg := ins.Args[n]
		switch operand {
		case OPERAND_REG:
			args[n] = fmt.Sprintf("r%d", arg)
		case OPERAND_REGREF:
			args[n] = fmt.Sprintf("[r%d]", arg)
		case OPERAND_FLAG:
			args[n] = fmt.Sprintf("f%d", arg)
		case OPERAND_ADDR:
			args[n] = fmt.Sprintf("[0x%04x]", arg)
		case OPERAND_IMM:
			args[n] = fmt.Sprintf("0x%04x", arg)
		}
	}

	if len(args) == 0 {
		return ins.Opcode.String()
	}

	return ins.Opcode.String() + " " + strings.Join(args, ", ")
}

// Encode returns the instruction stream bytes of the instruction.
func (ins Instruction) Encode() (code []byte) {
	operands, ok := ins.Opcode.Operands()
	if !ok {
		return []byte{byte(ins.Opcode)}
	}

	code = append(code, byte(ins.Opcode))
	for n, operand := range operands {
		arg := ins.Args[n]
		if operand.Width() == 2 {
			code = append(code, byte(arg>>8), byte(arg&0xff))
		} else {
			code = append(code, byte(arg))
		}
	}

	return
}

// MakeCode builds an encoded instruction from an opcode and operand values.
func MakeCode(op Opcode, args ...uint16) []byte {
	ins := Instruction{Opcode: op}
	copy(ins.Args[:], args)
	return ins.Encode()
}
