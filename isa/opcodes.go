package isa

// Major opcodes, riscv-spec-v2.2 table 19.1. The low two bits are always 0b11
// for 32-bit instructions.
const (
	OpLoad     = 0x03
	OpLoadFP   = 0x07
	OpMiscMem  = 0x0F
	OpOpImm    = 0x13
	OpAUIPC    = 0x17
	OpOpImm32  = 0x1B
	OpStore    = 0x23
	OpStoreFP  = 0x27
	OpAMO      = 0x2F
	OpOp       = 0x33
	OpLUI      = 0x37
	OpOp32     = 0x3B
	OpMadd     = 0x43
	OpMsub     = 0x47
	OpNmsub    = 0x4B
	OpNmadd    = 0x4F
	OpOpFP     = 0x53
	OpBranch   = 0x63
	OpJALR     = 0x67
	OpJAL      = 0x6F
	OpSystem   = 0x73
	opcodeMask = 0x7F
)

// funct7 values distinguishing alternate R-type operations.
const (
	funct7Base = 0x00
	funct7Mul  = 0x01 // M extension
	funct7Alt  = 0x20 // sub, sra, srai
)

// slot selects a handler group from opcode bits [4:2].
type slot uint8

const (
	slotLoadStoreBranch slot = iota // 000
	slotLoadFPStoreFPJALR
	slotCustom0 // 010
	slotMiscMemJAL
	slotOpOpImmSystem // 100
	slotAUIPCLUI
	slotOp32OpImm32 // 110
	slotExpansion
	numSlots
)

var slotNames = [numSlots]string{
	slotLoadStoreBranch:   "LOAD_STORE_BRANCH",
	slotLoadFPStoreFPJALR: "LOADFP_STOREFP_JALR",
	slotCustom0:           "CUSTOM0",
	slotMiscMemJAL:        "MISCMEM_JAL",
	slotOpOpImmSystem:     "OP_OPIMM_SYSTEM",
	slotAUIPCLUI:          "AUIPC_LUI",
	slotOp32OpImm32:       "OP32_OPIMM32",
	slotExpansion:         "EXPANSION",
}

func (s slot) String() string {
	if s < numSlots {
		return slotNames[s]
	}
	return "slot?"
}

func slotOf(inst uint32) slot { return slot((inst >> 2) & 0x7) }

// row is opcode bits [6:5], the second level of the opcode map.
func row(inst uint32) uint32 { return (inst >> 5) & 0x3 }
