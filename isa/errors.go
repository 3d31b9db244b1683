package isa

import (
	"errors"
	"fmt"
)

// Decode failure kinds. A *DecodeError unwraps to exactly one of these.
var (
	// ErrMalformed reports an encoding with no defined meaning: a compressed
	// or over-long length prefix, an unassigned opcode slot or a reserved
	// function field.
	ErrMalformed = errors.New("isa: malformed instruction")
	// ErrUnsupported reports a legal encoding from an extension this
	// package does not render (F, M, A, RV64).
	ErrUnsupported = errors.New("isa: unsupported instruction")
	// ErrLookup reports a register index or CSR address with no name.
	ErrLookup = errors.New("isa: name lookup failed")
)

// DecodeError describes why a word could not be decoded.
type DecodeError struct {
	Word   uint32
	PC     uint32
	Kind   error
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: %08x at pc %08x: %s", e.Kind, e.Word, e.PC, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Kind }

func (in *Instruction) fail(kind error, format string, args ...any) error {
	return &DecodeError{
		Word:   in.Word,
		PC:     in.PC,
		Kind:   kind,
		Reason: fmt.Sprintf(format, args...),
	}
}

func (in *Instruction) malformed(format string, args ...any) error {
	return in.fail(ErrMalformed, format, args...)
}

// unsupported records the instruction class as the mnemonic so the
// unrendered record still names what it is.
func (in *Instruction) unsupported(class string) error {
	in.Mnemonic = class
	return in.fail(ErrUnsupported, "%s is not implemented", class)
}
