package isa

import (
	"fmt"
	"strconv"
	"strings"
)

// Mnemonic tables indexed by funct3. Empty entries are reserved encodings.
var (
	loadNames   = [8]string{0: "lb", 1: "lh", 2: "lw", 4: "lbu", 5: "lhu"}
	storeNames  = [8]string{0: "sb", 1: "sh", 2: "sw"}
	branchNames = [8]string{0: "beq", 1: "bne", 4: "blt", 5: "bge", 6: "bltu", 7: "bgeu"}
	opImmNames  = [8]string{"addi", "slli", "slti", "sltiu", "xori", "srli", "ori", "andi"}
	opNames     = [8]string{"add", "sll", "slt", "sltu", "xor", "srl", "or", "and"}
	csrOpNames  = [8]string{1: "csrrw", 2: "csrrs", 3: "csrrc", 5: "csrrwi", 6: "csrrsi", 7: "csrrci"}
)

// Privileged trap returns, selected by the 12-bit immediate when funct3, rs1
// and rd are all zero.
var trapReturns = map[uint32]string{
	0x002: "uret",
	0x102: "sret",
	0x202: "hret",
	0x302: "mret",
}

func decodeLoadStoreBranch(in *Instruction) error {
	switch row(in.Word) {
	case 0:
		name := loadNames[in.Funct3]
		if name == "" {
			return in.malformed("reserved load funct3 %d", in.Funct3)
		}
		in.Mnemonic = name
		in.setAsm("%s\t%s,%d(%s)", name, reg(in.Rd), in.ImmI, reg(in.Rs1))
	case 1:
		name := storeNames[in.Funct3]
		if name == "" {
			return in.malformed("reserved store funct3 %d", in.Funct3)
		}
		in.Mnemonic = name
		in.setAsm("%s\t%s,%d(%s)", name, reg(in.Rs2), in.ImmS, reg(in.Rs1))
	case 2:
		return in.unsupported("madd")
	default:
		return decodeBranch(in)
	}
	return nil
}

func decodeBranch(in *Instruction) error {
	name := branchNames[in.Funct3]
	if name == "" {
		return in.malformed("reserved branch funct3 %d", in.Funct3)
	}
	in.Mnemonic = name
	in.IsBranch = true
	target := in.PC + uint32(in.ImmB)
	switch {
	case in.Rs1 == Zero:
		in.setAsm("%sz\t%s,%s\t(%x)", name, reg(in.Rs2), pcOffsetHex(in.ImmB), target)
	case in.Rs2 == Zero:
		in.setAsm("%sz\t%s,%s\t(%x)", name, reg(in.Rs1), pcOffsetHex(in.ImmB), target)
	default:
		in.setAsm("%s\t%s,%s,pc%+d\t(%x)", name, reg(in.Rs1), reg(in.Rs2), in.ImmB, target)
	}
	in.annotate(target)
	return nil
}

// pcOffsetHex renders a pc-relative offset as pc+1c or pc-1c.
func pcOffsetHex(off int32) string {
	if off < 0 {
		return fmt.Sprintf("pc-%x", -int64(off))
	}
	return fmt.Sprintf("pc+%x", off)
}

func decodeLoadFPStoreFPJALR(in *Instruction) error {
	switch row(in.Word) {
	case 0:
		return in.unsupported("load-fp")
	case 1:
		return in.unsupported("store-fp")
	case 2:
		return in.unsupported("msub")
	}
	if in.Funct3 != 0 {
		return in.malformed("reserved jalr funct3 %d", in.Funct3)
	}
	in.Mnemonic = "jalr"
	in.IsJumpReg = true
	switch {
	case in.Rd == Zero && in.Rs1 == RA && in.ImmI == 0:
		in.setAsm("ret")
	case in.Rd == Zero:
		in.setAsm("jr\t%s", reg(in.Rs1))
	default:
		in.setAsm("jalr\t%s,%s", reg(in.Rd), reg(in.Rs1))
	}
	// Only positive offsets are shown.
	if in.ImmI > 0 {
		in.asm += fmt.Sprintf("\t(%x)", in.ImmI)
	}
	return nil
}

func decodeMiscMemJAL(in *Instruction) error {
	switch row(in.Word) {
	case 0:
		switch in.Funct3 {
		case 0:
			// pred/succ sets are not decoded
			in.Mnemonic = "fence"
		case 1:
			in.Mnemonic = "fence.i"
		default:
			return in.malformed("reserved misc-mem funct3 %d", in.Funct3)
		}
		in.setAsm("%s", in.Mnemonic)
	case 1:
		return in.unsupported("amo")
	case 2:
		return in.unsupported("nmadd")
	default:
		in.Mnemonic = "jal"
		in.IsJump = true
		target := in.PC + uint32(in.ImmJ)
		if in.Rd == Zero {
			in.setAsm("j\t%x", target)
		} else {
			in.setAsm("jal\t%s,%x", reg(in.Rd), target)
		}
		in.annotate(target)
	}
	return nil
}

func decodeOpOpImmSystem(in *Instruction) error {
	switch row(in.Word) {
	case 0:
		return decodeOpImm(in)
	case 1:
		return decodeOp(in)
	case 2:
		return in.unsupported("op-fp")
	default:
		return decodeSystem(in)
	}
}

func decodeOpImm(in *Instruction) error {
	name := opImmNames[in.Funct3]
	switch in.Funct3 {
	case 1, 5:
		switch {
		case in.Funct3 == 5 && in.Funct7 == funct7Alt:
			name = "srai"
		case in.Funct7 != funct7Base:
			return in.malformed("reserved shift funct7 %#02x", in.Funct7)
		}
		in.Mnemonic = name
		in.setAsm("%s\t%s,%s,0x%x", name, reg(in.Rd), reg(in.Rs1), shamt(in.Word))
		return nil
	}
	in.Mnemonic = name
	if in.Funct3 == 0 && in.Rs1 == Zero {
		in.setAsm("li\t%s,%d", reg(in.Rd), in.ImmI)
		return nil
	}
	in.setAsm("%s\t%s,%s,%d", name, reg(in.Rd), reg(in.Rs1), in.ImmI)
	return nil
}

func decodeOp(in *Instruction) error {
	name := opNames[in.Funct3]
	switch in.Funct7 {
	case funct7Base:
	case funct7Alt:
		switch in.Funct3 {
		case 0:
			name = "sub"
		case 5:
			name = "sra"
		default:
			return in.malformed("reserved op funct3 %d with funct7 %#02x", in.Funct3, in.Funct7)
		}
	case funct7Mul:
		return in.unsupported("mul-div")
	default:
		return in.malformed("reserved op funct7 %#02x", in.Funct7)
	}
	in.Mnemonic = name
	in.setAsm("%s\t%s,%s,%s", name, reg(in.Rd), reg(in.Rs1), reg(in.Rs2))
	return nil
}

func decodeSystem(in *Instruction) error {
	switch in.Word >> 7 {
	case 0:
		in.Mnemonic = "ecall"
		in.setAsm("ecall")
		return nil
	case 0x2000:
		in.Mnemonic = "ebreak"
		in.setAsm("ebreak")
		return nil
	}

	in.IsCSR = true
	in.CSR = csrAddr(in.Word)
	if in.Funct3 == 0 && in.Rs1 == Zero && in.Rd == Zero {
		var name string
		switch in.CSR {
		case 0:
			name = "ecall"
		case 1:
			name = "ebreak"
		default:
			name = trapReturns[in.CSR]
		}
		if name == "" {
			return in.malformed("unknown privileged instruction %#03x", in.CSR)
		}
		in.Mnemonic = name
		in.setAsm("%s", name)
		return nil
	}

	name := csrOpNames[in.Funct3]
	if name == "" {
		return in.malformed("reserved system funct3 %d", in.Funct3)
	}
	in.Mnemonic = name
	csr, err := CSRName(in.CSR)
	if err != nil {
		return in.fail(ErrLookup, "%s: unknown csr %#03x", name, in.CSR)
	}

	var ops []string
	if in.Rd != Zero {
		ops = append(ops, reg(in.Rd))
	} else {
		// csrrw -> csrw
		name = name[:3] + name[4:]
	}
	ops = append(ops, csr)
	switch {
	case strings.HasSuffix(name, "i"):
		ops = append(ops, strconv.FormatUint(uint64(in.ImmZ), 10))
	case in.Rs1 != Zero:
		ops = append(ops, reg(in.Rs1))
	}
	in.setAsm("%s\t%s", name, strings.Join(ops, ","))
	return nil
}

func decodeAUIPCLUI(in *Instruction) error {
	switch row(in.Word) {
	case 0:
		in.Mnemonic = "auipc"
	case 1:
		in.Mnemonic = "lui"
	default:
		return in.malformed("reserved opcode %#02x", in.Opcode)
	}
	// objdump shows the unsigned upper 20 bits without the trailing zeros.
	in.setAsm("%s\t%s,0x%05x", in.Mnemonic, reg(in.Rd), in.Word>>12)
	return nil
}

func decodeOp32OpImm32(in *Instruction) error {
	switch row(in.Word) {
	case 0:
		return in.unsupported("op-imm-32")
	case 1:
		return in.unsupported("op-32")
	case 2:
		return in.unsupported("custom-2")
	default:
		return in.unsupported("custom-3")
	}
}
