package emulator

import (
	"errors"

	"github.com/gbarletta/varch-vm/translate"
)

var f = translate.From

var (
	ErrExpect     = errors.New(f("expectation failed"))
	ErrExpression = errors.New(f("expression invalid"))
)

// ErrRuntime indicates the tick count of a runtime error.
type ErrRuntime struct {
	Tick int
	Err  error
}

func (err *ErrRuntime) Error() string {
	return f("tick %d %v", err.Tick, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrEval indicates the expression that failed evaluation.
type ErrEval struct {
	Expr string
	Err  error
}

func (err *ErrEval) Error() string {
	return f("$(%v) %v", err.Expr, err.Err)
}

func (err *ErrEval) Unwrap() error {
	return err.Err
}
