// Package isa decodes RV32I instruction words, including the Zicsr and
// privileged SYSTEM instructions, and renders them in objdump syntax.
package isa

import "fmt"

// Symbols maps absolute addresses to names for annotating branch and jump
// targets. A nil Symbols never annotates. Decode only reads it.
type Symbols map[uint32]string

// Instruction is a decoded instruction word. Decode fills every field
// regardless of the instruction format; which fields are meaningful depends
// on Mnemonic.
type Instruction struct {
	Word   uint32 // raw instruction word
	PC     uint32 // address of the instruction, for pc-relative targets
	Opcode uint32

	Rd, Rs1, Rs2   uint32
	Funct3, Funct7 uint32

	ImmI, ImmS, ImmB, ImmU, ImmJ int32
	ImmZ                         uint32 // csrr*i immediate, aliased on rs1

	Mnemonic string

	IsBranch  bool
	IsJump    bool
	IsJumpReg bool
	IsCSR     bool
	CSR       uint32 // valid when IsCSR

	Symbols Symbols

	asm      string
	rendered bool
}

type decoder func(*Instruction) error

// decoders is indexed by opcode bits [4:2]. A nil entry is an unassigned
// part of the opcode map.
var decoders = [numSlots]decoder{
	slotLoadStoreBranch:   decodeLoadStoreBranch,
	slotLoadFPStoreFPJALR: decodeLoadFPStoreFPJALR,
	slotCustom0:           nil,
	slotMiscMemJAL:        decodeMiscMemJAL,
	slotOpOpImmSystem:     decodeOpOpImmSystem,
	slotAUIPCLUI:          decodeAUIPCLUI,
	slotOp32OpImm32:       decodeOp32OpImm32,
	slotExpansion:         nil,
}

// Decode decodes the instruction word found at pc. On failure the returned
// Instruction still carries the extracted fields, for Dump, but has no
// rendered text; the error is a *DecodeError.
func Decode(word, pc uint32, syms Symbols) (Instruction, error) {
	in := Instruction{
		Word:    word,
		PC:      pc,
		Opcode:  opcode(word),
		Rd:      rd(word),
		Rs1:     rs1(word),
		Rs2:     rs2(word),
		Funct3:  funct3(word),
		Funct7:  funct7(word),
		ImmI:    immI(word),
		ImmS:    immS(word),
		ImmB:    immB(word),
		ImmU:    immU(word),
		ImmJ:    immJ(word),
		ImmZ:    zimm(word),
		Symbols: syms,
	}

	if word&0x3 != 0x3 {
		return in, in.malformed("low opcode bits %02b: not a 32-bit instruction", word&0x3)
	}
	s := slotOf(word)
	dec := decoders[s]
	if dec == nil {
		return in, in.malformed("opcode %#02x is in unassigned slot %s", in.Opcode, s)
	}
	if err := dec(&in); err != nil {
		in.asm, in.rendered = "", false
		return in, err
	}
	return in, nil
}

// Asm returns the rendered assembly text. ok is false when the instruction
// could not be decoded.
func (in Instruction) Asm() (text string, ok bool) {
	return in.asm, in.rendered
}

// Target returns the absolute target of a pc-relative branch or jal.
func (in Instruction) Target() (uint32, bool) {
	switch {
	case in.IsBranch:
		return in.PC + uint32(in.ImmB), true
	case in.IsJump:
		return in.PC + uint32(in.ImmJ), true
	}
	return 0, false
}

func (in *Instruction) setAsm(format string, args ...any) {
	in.asm = fmt.Sprintf(format, args...)
	in.rendered = true
}

// annotate appends the symbol at addr, if any.
func (in *Instruction) annotate(addr uint32) {
	if name, ok := in.Symbols[addr]; ok {
		in.asm += " <" + name + ">"
	}
}
