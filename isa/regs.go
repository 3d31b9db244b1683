package isa

import "fmt"

// Register numbers with special meaning, riscv-spec-v2.2 table 20.1.
const (
	Zero = 0 // hard-wired zero
	RA   = 1 // return address
	SP   = 2 // stack pointer
)

// RegNames maps register numbers to ABI names.
var RegNames = [32]string{
	0:  "zero", // hard-wired zero
	1:  "ra",   // return address
	2:  "sp",   // stack pointer
	3:  "gp",   // global pointer
	4:  "tp",   // thread pointer
	5:  "t0",   // temp/alternate link reg
	6:  "t1",
	7:  "t2",
	8:  "s0", // also known as fp
	9:  "s1",
	10: "a0", // function arguments / return values
	11: "a1",
	12: "a2",
	13: "a3",
	14: "a4",
	15: "a5",
	16: "a6",
	17: "a7",
	18: "s2", // saved registers
	19: "s3",
	20: "s4",
	21: "s5",
	22: "s6",
	23: "s7",
	24: "s8",
	25: "s9",
	26: "s10",
	27: "s11",
	28: "t3", // temporaries
	29: "t4",
	30: "t5",
	31: "t6",
}

// RegName returns the ABI name of register i.
func RegName(i uint32) (string, error) {
	if i >= uint32(len(RegNames)) {
		return "", fmt.Errorf("%w: register x%d", ErrLookup, i)
	}
	return RegNames[i], nil
}

// reg names a register field. Fields are five bits wide so the lookup
// cannot fail.
func reg(i uint32) string { return RegNames[i&0x1F] }
