package sim

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rvdis/isa"
)

// writeELF32 writes a section-less ELF32 executable with a single PT_LOAD
// segment holding code at vaddr, followed by bss bytes of zeros.
func writeELF32(t *testing.T, machine elf.Machine, entry, vaddr uint32, code []byte, bss uint32) string {
	t.Helper()
	const (
		ehsize    = 52
		phentsize = 32
	)
	hdr := elf.Header32{
		Type:      uint16(elf.ET_EXEC),
		Machine:   uint16(machine),
		Version:   uint32(elf.EV_CURRENT),
		Entry:     entry,
		Phoff:     ehsize,
		Ehsize:    ehsize,
		Phentsize: phentsize,
		Phnum:     1,
		Shentsize: 40,
	}
	copy(hdr.Ident[:], elf.ELFMAG)
	hdr.Ident[elf.EI_CLASS] = byte(elf.ELFCLASS32)
	hdr.Ident[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	hdr.Ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)

	ph := elf.Prog32{
		Type:   uint32(elf.PT_LOAD),
		Off:    ehsize + phentsize,
		Vaddr:  vaddr,
		Paddr:  vaddr,
		Filesz: uint32(len(code)),
		Memsz:  uint32(len(code)) + bss,
		Flags:  uint32(elf.PF_R | elf.PF_X),
		Align:  4,
	}

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, hdr))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, ph))
	buf.Write(code)

	path := filepath.Join(t.TempDir(), "prog.elf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func words(ws ...uint32) []byte {
	b := make([]byte, 4*len(ws))
	for i, w := range ws {
		binary.LittleEndian.PutUint32(b[4*i:], w)
	}
	return b
}

func TestLoadELF(t *testing.T) {
	code := words(
		isa.EncodeI(isa.OpOpImm, 10, 0, 0, 0),
		0x00000073,
	)
	path := writeELF32(t, elf.EM_RISCV, 0x10074, 0x10074, code, 8)

	img, err := LoadELF(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x10074), img.Entry)
	assert.Equal(t, uint32(0x10074), img.Text.Base)
	assert.Equal(t, 16, img.Text.Len())
	assert.Nil(t, img.Symbols, "no symbol table in a section-less file")

	w, ok := img.Text.Read32(0x10078)
	require.True(t, ok)
	assert.Equal(t, uint32(0x00000073), w)
	w, ok = img.Text.Read32(0x1007C)
	require.True(t, ok)
	assert.Zero(t, w, "bss is zero filled")
}

func TestLoadELFRejectsOtherMachines(t *testing.T) {
	path := writeELF32(t, elf.EM_386, 0x1000, 0x1000, words(0x00000073), 0)
	_, err := LoadELF(path)
	assert.ErrorContains(t, err, "EM_RISCV")
}

func TestLoadELFEntryOutsideSegments(t *testing.T) {
	path := writeELF32(t, elf.EM_RISCV, 0x9000, 0x1000, words(0x00000073), 0)
	_, err := LoadELF(path)
	assert.ErrorContains(t, err, "no loadable segment")
}

func TestLoadELFNotAnELF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk")
	require.NoError(t, os.WriteFile(path, []byte("not an elf file at all"), 0o644))
	_, err := LoadELF(path)
	assert.Error(t, err)
}
