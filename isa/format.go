package isa

import (
	"fmt"
	"strings"
)

// String returns the assembly text. Instructions without a rendering show
// their mnemonic followed by NO DECODER, or a .word directive when even the
// mnemonic is unknown.
func (in Instruction) String() string {
	switch {
	case in.rendered:
		return in.asm
	case in.Mnemonic != "":
		return fmt.Sprintf("%-8s NO DECODER", in.Mnemonic)
	default:
		return fmt.Sprintf(".word\t0x%08x", in.Word)
	}
}

type dumpField struct {
	name string
	val  any
}

// Dump returns every decoded field in a fixed order, one group per line.
func (in Instruction) Dump() string {
	lines := [][]dumpField{
		{{"word", in.Word}, {"opcode", in.Opcode}, {"rd", in.Rd}, {"rs1", in.Rs1}, {"rs2", in.Rs2}},
		{{"funct3", in.Funct3}, {"funct7", in.Funct7}},
		{{"imm_i", in.ImmI}, {"imm_s", in.ImmS}, {"imm_b", in.ImmB}, {"imm_u", in.ImmU}, {"imm_j", in.ImmJ}, {"imm_z", in.ImmZ}},
		{{"branch", bit(in.IsBranch)}, {"jump", bit(in.IsJump)}, {"jump_reg", bit(in.IsJumpReg)}, {"csr", bit(in.IsCSR)}},
	}
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, f := range line {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%10s: %8x", f.name, f.val)
		}
	}
	if in.IsCSR {
		name, err := CSRName(in.CSR)
		if err != nil {
			name = "?"
		}
		fmt.Fprintf(&b, "\n%10s: %08x == %s", "csr", in.CSR, name)
	}
	return b.String()
}

func bit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
