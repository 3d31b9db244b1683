package isa

// SignExtend extends the c-bit two's complement value v to 32 bits. Bits of
// v above c-1 are expected to be clear. c may be 32, in which case the bit
// pattern is returned unchanged as a signed value.
func SignExtend(v uint32, c uint) int32 {
	if (v>>(c-1))&1 == 0 {
		return int32(v)
	}
	mask := uint32(uint64(1)<<c - 1)
	return int32(v | ^mask)
}

func opcode(inst uint32) uint32 { return inst & 0x7F }
func rd(inst uint32) uint32     { return (inst >> 7) & 0x1F }
func funct3(inst uint32) uint32 { return (inst >> 12) & 0x7 }
func rs1(inst uint32) uint32    { return (inst >> 15) & 0x1F }
func rs2(inst uint32) uint32    { return (inst >> 20) & 0x1F }
func funct7(inst uint32) uint32 { return (inst >> 25) & 0x7F }

// shamt is the 5-bit shift amount of slli/srli/srai.
func shamt(inst uint32) uint32 { return (inst >> 20) & 0x1F }

// zimm is the unsigned immediate of csrr*i, stored where rs1 would be.
func zimm(inst uint32) uint32 { return (inst >> 15) & 0x1F }

// csrAddr is the 12-bit CSR address of a SYSTEM instruction.
func csrAddr(inst uint32) uint32 { return inst >> 20 }

func immI(inst uint32) int32 { return SignExtend(inst>>20, 12) }

func immS(inst uint32) int32 {
	low := (inst >> 7) & 0x1F
	hi := (inst >> 25) & 0x7F
	return SignExtend((hi<<5)|low, 12)
}

func immB(inst uint32) int32 {
	// [12|10:5|4:1|11] << 1
	imm := ((inst>>31)&1)<<12 |
		((inst>>25)&0x3F)<<5 |
		((inst>>8)&0xF)<<1 |
		((inst>>7)&1)<<11
	return SignExtend(imm, 13)
}

// immU keeps the upper 20 bits in place; extending at full width is a no-op.
func immU(inst uint32) int32 { return SignExtend(inst&0xFFFFF000, 32) }

func immJ(inst uint32) int32 {
	// [20|10:1|11|19:12] << 1
	imm := ((inst>>31)&1)<<20 |
		((inst>>21)&0x3FF)<<1 |
		((inst>>20)&1)<<11 |
		((inst>>12)&0xFF)<<12
	return SignExtend(imm, 21)
}
