package sim

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMemH(t *testing.T) {
	img := `// boot rom
@400
00000513 00100593   // li a0,0 ; li a1,1
00b50633
00008067
`
	seg, err := ReadMemH(strings.NewReader(img), 4)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x1000), seg.Base)
	assert.Equal(t, 16, seg.Len())

	for i, want := range []uint32{0x00000513, 0x00100593, 0x00b50633, 0x00008067} {
		w, ok := seg.Read32(0x1000 + uint32(4*i))
		require.True(t, ok)
		assert.Equal(t, want, w)
	}
}

func TestReadMemHNoAddress(t *testing.T) {
	seg, err := ReadMemH(strings.NewReader("00000073\n"), 4)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), seg.Base)
	w, ok := seg.Read32(0)
	require.True(t, ok)
	assert.Equal(t, uint32(0x00000073), w)
}

func TestReadMemHErrors(t *testing.T) {
	tests := []struct {
		desc     string
		img      string
		wordSize int
		err      error
	}{
		{desc: "second segment", img: "@0\n00000073\n@10\n00000073\n", wordSize: 4, err: ErrMultiSegment},
		{desc: "bad word", img: "0000zz73\n", wordSize: 4},
		{desc: "bad address", img: "@xyz\n00000073\n", wordSize: 4},
		{desc: "word too wide", img: "100000000\n", wordSize: 4},
		{desc: "empty", img: "// nothing\n\n", wordSize: 4},
		{desc: "byte too wide", img: "100\n", wordSize: 1},
		{desc: "odd word size", img: "00\n", wordSize: 3},
		{desc: "past top of memory", img: "@3fffffff\n00000073 00000073\n", wordSize: 4, err: ErrAddressSpace},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := ReadMemH(strings.NewReader(tt.img), tt.wordSize)
			require.Error(t, err)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestReadMemHWordSizes(t *testing.T) {
	seg, err := ReadMemH(strings.NewReader("@2\n73 00 00 00\n"), 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), seg.Base)
	assert.Equal(t, 4, seg.Len())
	w, ok := seg.Read32(2)
	require.True(t, ok)
	assert.Equal(t, uint32(0x00000073), w)

	seg, err = ReadMemH(strings.NewReader("@1\n8067 0000\n"), 2)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), seg.Base)
	w, ok = seg.Read32(2)
	require.True(t, ok)
	assert.Equal(t, uint32(0x00008067), w)
}

func TestLoadMemH(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.hex")
	require.NoError(t, os.WriteFile(path, []byte("@1\n00008067\n"), 0o644))
	seg, err := LoadMemH(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), seg.Base)
	w, ok := seg.Read32(4)
	require.True(t, ok)
	assert.Equal(t, uint32(0x00008067), w)
}
