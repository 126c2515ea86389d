package emulator

import (
	"fmt"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/gbarletta/varch-vm/cpu"
)

// predeclared returns the starlark environment for expressions.
//   - All defines with integer values.
//   - r0-r15 and their aliases, holding register values.
//   - f0-f15 holding flag values, and pc.
//   - mem(addr) and peek(addr) to read a word or a byte.
//   - signed(value) to reinterpret a 16-bit value as two's complement.
func (emu *Emulator) predeclared() (pred starlark.StringDict) {
	pred = starlark.StringDict{}

	for key, str := range emu.Defines() {
		value, err := strconv.ParseInt(str, 0, 64)
		if err != nil {
			continue
		}
		pred[key] = starlark.MakeInt64(value)
	}

	for n := range cpu.REGISTER_COUNT {
		value := starlark.MakeInt(int(emu.Register.Get(n)))
		pred[fmt.Sprintf("r%d", n)] = value
		pred[cpu.RegisterName(n)] = value
	}

	for n := range cpu.FLAG_COUNT {
		pred[fmt.Sprintf("f%d", n)] = starlark.MakeInt(int(emu.Flag.Get(n)))
	}

	pred["pc"] = starlark.MakeInt(int(emu.Pc))

	pred["mem"] = starlark.NewBuiltin("mem", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var addr int
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &addr); err != nil {
			return nil, err
		}
		value, err := emu.Memory.ReadWord(addr)
		if err != nil {
			return nil, err
		}
		return starlark.MakeInt(int(value)), nil
	})

	pred["peek"] = starlark.NewBuiltin("peek", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var addr int
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &addr); err != nil {
			return nil, err
		}
		value, err := emu.Memory.ReadByteAt(addr)
		if err != nil {
			return nil, err
		}
		return starlark.MakeInt(int(value)), nil
	})

	pred["signed"] = starlark.NewBuiltin("signed", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var value int
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &value); err != nil {
			return nil, err
		}
		return starlark.MakeInt(int(int16(uint16(value)))), nil
	})

	return
}

// evaluate runs a single starlark expression against the machine state.
func (emu *Emulator) evaluate(expr string) (value starlark.Value, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, emu.predeclared())
	if err != nil {
		err = &ErrEval{Expr: expr, Err: err}
		return
	}

	value, ok := dict["rc"]
	if !ok {
		err = &ErrEval{Expr: expr, Err: ErrExpression}
		return
	}

	return
}

// Eval evaluates an integer expression. Booleans evaluate to 0 or 1.
func (emu *Emulator) Eval(expr string) (value int64, err error) {
	st_rc, err := emu.evaluate(expr)
	if err != nil {
		return
	}

	switch st := st_rc.(type) {
	case starlark.Bool:
		if st {
			value = 1
		}
	case starlark.Int:
		var ok bool
		value, ok = st.Int64()
		if !ok {
			err = &ErrEval{Expr: expr, Err: ErrExpression}
		}
	default:
		err = &ErrEval{Expr: expr, Err: ErrExpression}
	}

	return
}

// Address evaluates an expression that must be a valid memory address.
func (emu *Emulator) Address(expr string) (addr uint16, err error) {
	value, err := emu.Eval(expr)
	if err != nil {
		return
	}

	if value < 0 || value >= int64(emu.Memory.Size()) {
		err = &ErrEval{Expr: expr, Err: cpu.ErrMemoryBounds}
		return
	}

	addr = uint16(value)
	return
}

// Expect fails with ErrExpect when the expression is not true.
func (emu *Emulator) Expect(expr string) (err error) {
	st_rc, err := emu.evaluate(expr)
	if err != nil {
		return
	}

	if !bool(st_rc.Truth()) {
		err = &ErrEval{Expr: expr, Err: ErrExpect}
	}

	return
}
