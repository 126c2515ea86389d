package cpu

import (
	"fmt"
)

const (
	REGISTER_COUNT = 16

	REG_LINK  = 11 // Written by CALL, read by RET.
	REG_FLAGS = 12 // Conventional FLG destination.
	REG_SP    = 13 // Stack pointer.
	REG_SELF  = 14
	REG_RV    = 15 // Return value.
)

// _register_alias are the conventional names of registers.
var _register_alias = map[string]int{
	"rv": REG_RV,
	"sf": REG_SELF,
	"sp": REG_SP,
	"fl": REG_FLAGS,
}

// Registers is the register file. Cells hold raw 16-bit values;
// arithmetic on them wraps.
type Registers [REGISTER_COUNT]uint16

func (r *Registers) Get(index int) uint16 {
	return r[index]
}

// Signed returns the register reinterpreted as a two's complement value.
func (r *Registers) Signed(index int) int16 {
	return int16(r[index])
}

func (r *Registers) Set(index int, value uint16) {
	r[index] = value
}

// Reset zeroes all registers.
func (r *Registers) Reset() {
	clear(r[:])
}

// RegisterIndex looks up a register by its name, either rN or an alias.
func RegisterIndex(name string) (index int, ok bool) {
	if index, ok = _register_alias[name]; ok {
		return
	}

	var n int
	_, err := fmt.Sscanf(name, "r%d", &n)
	if err != nil || n < 0 || n >= REGISTER_COUNT || name != fmt.Sprintf("r%d", n) {
		return
	}

	return n, true
}

// RegisterName returns the conventional name of a register.
func RegisterName(index int) string {
	for name, n := range _register_alias {
		if n == index {
			return name
		}
	}

	return fmt.Sprintf("r%d", index)
}
