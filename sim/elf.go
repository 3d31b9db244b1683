package sim

import (
	"debug/elf"
	"fmt"

	"rvdis/isa"
)

// Image is the executable part of a program: the loadable segment holding
// the entry point, plus the symbols used to annotate jump targets.
type Image struct {
	Text    *Segment
	Entry   uint32
	Symbols isa.Symbols
}

// LoadELF maps the PT_LOAD segment containing the entry point at its vaddr.
// Only RV32 RISC-V executables are accepted.
func LoadELF(path string) (*Image, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if f.Class != elf.ELFCLASS32 {
		return nil, fmt.Errorf("%s: %v, want ELFCLASS32", path, f.Class)
	}
	if f.Machine != elf.EM_RISCV {
		return nil, fmt.Errorf("%s: machine %v, want EM_RISCV", path, f.Machine)
	}

	for _, ph := range f.Progs {
		if ph.Type != elf.PT_LOAD || f.Entry < ph.Vaddr || f.Entry >= ph.Vaddr+ph.Memsz {
			continue
		}
		if ph.Filesz > ph.Memsz {
			return nil, fmt.Errorf("%s: segment filesz 0x%x exceeds memsz 0x%x", path, ph.Filesz, ph.Memsz)
		}
		if err := checkFits(uint32(ph.Vaddr), ph.Memsz); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		// Read the segment bytes; the bss tail stays zero.
		buf := make([]byte, ph.Memsz)
		if ph.Filesz > 0 {
			if _, err := ph.ReadAt(buf[:ph.Filesz], 0); err != nil {
				return nil, fmt.Errorf("read segment: %w", err)
			}
		}
		addr := uint32(ph.Vaddr)
		seg := NewSegment(addr, uint32(ph.Memsz))
		if err := seg.WriteBytes(addr, buf); err != nil {
			return nil, fmt.Errorf("map segment @0x%x: %w", addr, err)
		}
		return &Image{
			Text:    seg,
			Entry:   uint32(f.Entry),
			Symbols: elfSymbols(f),
		}, nil
	}
	return nil, fmt.Errorf("%s: no loadable segment contains entry 0x%x", path, f.Entry)
}

// elfSymbols collects function and untyped symbols by address. When several
// names share an address the first one in the table wins.
func elfSymbols(f *elf.File) isa.Symbols {
	syms, err := f.Symbols()
	if err != nil {
		// stripped binary
		return nil
	}
	out := isa.Symbols{}
	for _, s := range syms {
		switch elf.ST_TYPE(s.Info) {
		case elf.STT_FUNC, elf.STT_NOTYPE:
		default:
			continue
		}
		if s.Name == "" || s.Section == elf.SHN_UNDEF {
			continue
		}
		addr := uint32(s.Value)
		if _, ok := out[addr]; !ok {
			out[addr] = s.Name
		}
	}
	return out
}
