package isa

import (
	"fmt"
	"sort"
)

// CSR is a named control and status register.
type CSR struct {
	Addr uint32
	Name string
}

// Fixed CSR addresses, RISC-V privileged spec v1.10 tables 2.2-2.6.
var fixedCSRs = []CSR{
	// User trap setup and handling.
	{0x000, "ustatus"},
	{0x004, "uie"},
	{0x005, "utvec"},
	{0x040, "uscratch"},
	{0x041, "uepc"},
	{0x042, "ucause"},
	{0x043, "utval"},
	{0x044, "uip"},
	// User floating point.
	{0x001, "fflags"},
	{0x002, "frm"},
	{0x003, "fcsr"},
	// User counters.
	{0xC00, "cycle"},
	{0xC01, "time"},
	{0xC02, "instret"},
	{0xC80, "cycleh"},
	{0xC81, "timeh"},
	{0xC82, "instreth"},
	// Supervisor.
	{0x100, "sstatus"},
	{0x102, "sedeleg"},
	{0x103, "sideleg"},
	{0x104, "sie"},
	{0x105, "stvec"},
	{0x106, "scounteren"},
	{0x140, "sscratch"},
	{0x141, "sepc"},
	{0x142, "scause"},
	{0x143, "stval"},
	{0x144, "sip"},
	{0x180, "satp"},
	// Machine information.
	{0xF11, "mvendorid"},
	{0xF12, "marchid"},
	{0xF13, "mimpid"},
	{0xF14, "mhartid"},
	// Machine trap setup and handling.
	{0x300, "mstatus"},
	{0x301, "misa"},
	{0x302, "medeleg"},
	{0x303, "mideleg"},
	{0x304, "mie"},
	{0x305, "mtvec"},
	{0x306, "mcounteren"},
	{0x320, "mcountinhibit"},
	{0x340, "mscratch"},
	{0x341, "mepc"},
	{0x342, "mcause"},
	{0x343, "mtval"},
	{0x344, "mip"},
	// Machine counters.
	{0xB00, "mcycle"},
	{0xB02, "minstret"},
	{0xB80, "mcycleh"},
	{0xB82, "minstreth"},
	// Debug and trace.
	{0x7A0, "tselect"},
	{0x7A1, "tdata1"},
	{0x7A2, "tdata2"},
	{0x7A3, "tdata3"},
	{0x7B0, "dcsr"},
	{0x7B1, "dpc"},
	{0x7B2, "dscratch0"},
	{0x7B3, "dscratch1"},
}

// Numbered CSR families: name%d for n in [first, last] at base+n.
var csrRanges = []struct {
	base        uint32
	format      string
	first, last uint32
}{
	{0xC00, "hpmcounter%d", 3, 31},
	{0xC80, "hpmcounter%dh", 3, 31},
	{0xB00, "mhpmcounter%d", 3, 31},
	{0xB80, "mhpmcounter%dh", 3, 31},
	{0x320, "mhpmevent%d", 3, 31},
	{0x3A0, "pmpcfg%d", 0, 3},
	{0x3B0, "pmpaddr%d", 0, 15},
}

// csrNames is written only by init.
var csrNames = map[uint32]string{}

func init() {
	for _, c := range fixedCSRs {
		csrNames[c.Addr] = c.Name
	}
	for _, r := range csrRanges {
		for n := r.first; n <= r.last; n++ {
			csrNames[r.base+n] = fmt.Sprintf(r.format, n)
		}
	}
}

// CSRName returns the canonical name of the CSR at addr.
func CSRName(addr uint32) (string, error) {
	name, ok := csrNames[addr]
	if !ok {
		return "", fmt.Errorf("%w: csr %#03x", ErrLookup, addr)
	}
	return name, nil
}

// CSRs returns every known CSR ordered by address.
func CSRs() []CSR {
	out := make([]CSR, 0, len(csrNames))
	for addr, name := range csrNames {
		out = append(out, CSR{Addr: addr, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Addr < out[j].Addr })
	return out
}
