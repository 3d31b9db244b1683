package isa

// Encoders build instruction words from their fields, mostly for
// constructing test programs. Every field is truncated to its width, so an
// out-of-range register or immediate never spills into a neighbouring field.

// field packs v, truncated to width bits, at bit lo.
func field(v uint32, width, lo uint) uint32 {
	return (v & (1<<width - 1)) << lo
}

// common packs the fields shared by every format: opcode, rd/imm[4:0] slot,
// funct3 and rs1.
func common(op, rd, f3, rs1 uint32) uint32 {
	return field(op, 7, 0) | field(rd, 5, 7) | field(f3, 3, 12) | field(rs1, 5, 15)
}

// EncodeR encodes an R-type instruction.
func EncodeR(op, rd, f3, rs1, rs2, f7 uint32) uint32 {
	return field(f7, 7, 25) | field(rs2, 5, 20) | common(op, rd, f3, rs1)
}

// EncodeI encodes an I-type instruction (imm is 12-bit signed).
func EncodeI(op, rd, f3, rs1 uint32, imm int32) uint32 {
	return field(uint32(imm), 12, 20) | common(op, rd, f3, rs1)
}

// EncodeS encodes an S-type instruction (imm is 12-bit signed).
func EncodeS(op, f3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	return field(u>>5, 7, 25) | field(rs2, 5, 20) | common(op, u, f3, rs1)
}

// EncodeB encodes a B-type instruction (imm is 13-bit signed, multiple of 2).
func EncodeB(op, f3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	return field(u>>12, 1, 31) | field(u>>5, 6, 25) | field(rs2, 5, 20) |
		field(u>>1, 4, 8) | field(u>>11, 1, 7) | common(op, 0, f3, rs1)
}

// EncodeU encodes a U-type instruction; imm20 is the upper 20 bits.
func EncodeU(op, rd, imm20 uint32) uint32 {
	return field(imm20, 20, 12) | field(rd, 5, 7) | field(op, 7, 0)
}

// EncodeJ encodes a J-type instruction (imm is 21-bit signed, multiple of 2).
func EncodeJ(op, rd uint32, imm int32) uint32 {
	u := uint32(imm)
	return field(u>>20, 1, 31) | field(u>>1, 10, 21) | field(u>>11, 1, 20) |
		field(u>>12, 8, 12) | field(rd, 5, 7) | field(op, 7, 0)
}

// EncodeCSR encodes a SYSTEM instruction with a CSR address in the
// immediate field. src is rs1 or the 5-bit zimm.
func EncodeCSR(rd, f3, src, csr uint32) uint32 {
	return field(csr, 12, 20) | common(OpSystem, rd, f3, src)
}
