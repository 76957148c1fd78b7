package emulator

import (
	"errors"

	"github.com/0xd1rac/cpu-n-chill/translate"
)

var f = translate.From

var (
	ErrRegisterRange = errors.New(f("register out of range"))
	ErrPcRange       = errors.New(f("pc out of range"))
	ErrPcUnaligned   = errors.New(f("pc unaligned"))
	ErrTickLimit     = errors.New(f("tick limit exhausted"))
)

// ErrOpcode is a word whose opcode nibble decodes to no instruction.
type ErrOpcode uint32

func (eo ErrOpcode) Error() string {
	return f("bad opcode %#08x", uint32(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrFault indicates the location of a runtime fault.
type ErrFault struct {
	Pc  uint32
	Err error
}

func (err *ErrFault) Error() string {
	return f("pc %#x %v", err.Pc, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}
