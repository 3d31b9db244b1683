package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentReadWrite(t *testing.T) {
	seg := NewSegment(0x1000, 16)
	assert.Equal(t, 16, seg.Len())
	assert.Equal(t, uint64(0x1010), seg.End())

	require.True(t, seg.Write32(0x1004, 0xDEADBEEF))
	w, ok := seg.Read32(0x1004)
	require.True(t, ok)
	assert.Equal(t, uint32(0xDEADBEEF), w)

	// little-endian byte order
	b, ok := seg.Read8(0x1004)
	require.True(t, ok)
	assert.Equal(t, uint8(0xEF), b)

	require.True(t, seg.Write8(0x100F, 0x7F))
	b, ok = seg.Read8(0x100F)
	require.True(t, ok)
	assert.Equal(t, uint8(0x7F), b)
}

func TestSegmentBounds(t *testing.T) {
	seg := NewSegment(0x1000, 8)
	assert.False(t, seg.Contains(0xFFF))
	assert.True(t, seg.Contains(0x1000))
	assert.True(t, seg.Contains(0x1007))
	assert.False(t, seg.Contains(0x1008))

	_, ok := seg.Read32(0x1006) // straddles the end
	assert.False(t, ok)
	_, ok = seg.Read32(0xFFE)
	assert.False(t, ok)
	assert.False(t, seg.Write32(0x1005, 1))
	assert.False(t, seg.Write8(0x1008, 1))
	assert.Error(t, seg.WriteBytes(0x1004, make([]byte, 5)))
	assert.NoError(t, seg.WriteBytes(0x1004, make([]byte, 4)))
}

func TestSegmentAtTopOfAddressSpace(t *testing.T) {
	seg := NewSegment(0xFFFFFFF8, 8)
	assert.Equal(t, uint64(1<<32), seg.End())
	assert.True(t, seg.Contains(0xFFFFFFFF))
	require.True(t, seg.Write32(0xFFFFFFFC, 0x00000073))
	w, ok := seg.Read32(0xFFFFFFFC)
	require.True(t, ok)
	assert.Equal(t, uint32(0x00000073), w)
}

func TestLoadFlat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x73, 0x00, 0x00, 0x00, 0x67, 0x80, 0x00, 0x00}, 0o644))

	seg, err := LoadFlat(path, 0x200)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x200), seg.Base)
	w, ok := seg.Read32(0x204)
	require.True(t, ok)
	assert.Equal(t, uint32(0x00008067), w)

	_, err = LoadFlat(filepath.Join(t.TempDir(), "missing.bin"), 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFlatAtTopOfAddressSpace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 16), 0o644))

	seg, err := LoadFlat(path, 0xFFFFFFF0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<32), seg.End())
	_, ok := seg.Read32(0xFFFFFFFC)
	assert.True(t, ok)

	_, err = LoadFlat(path, 0xFFFFFFF4)
	assert.ErrorIs(t, err, ErrAddressSpace)
}
