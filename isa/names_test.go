package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegName(t *testing.T) {
	for i, want := range []string{"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2", "s0", "s1", "a0"} {
		got, err := RegName(uint32(i))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	got, err := RegName(31)
	require.NoError(t, err)
	assert.Equal(t, "t6", got)
}

func TestRegNameOutOfRange(t *testing.T) {
	for _, i := range []uint32{32, 0x1F00, 0xFFFFFFFF} {
		_, err := RegName(i)
		assert.ErrorIs(t, err, ErrLookup, "register %d", i)
	}
}

func TestCSRName(t *testing.T) {
	tests := []struct {
		addr uint32
		want string
	}{
		{0x000, "ustatus"},
		{0x003, "fcsr"},
		{0x180, "satp"},
		{0x300, "mstatus"},
		{0x305, "mtvec"},
		{0x323, "mhpmevent3"},
		{0x33F, "mhpmevent31"},
		{0x3A0, "pmpcfg0"},
		{0x3BF, "pmpaddr15"},
		{0xB03, "mhpmcounter3"},
		{0xB9F, "mhpmcounter31h"},
		{0xC00, "cycle"},
		{0xC1F, "hpmcounter31"},
		{0xC82, "instreth"},
		{0xF14, "mhartid"},
	}
	for _, tt := range tests {
		got, err := CSRName(tt.addr)
		require.NoError(t, err, "csr %#x", tt.addr)
		assert.Equal(t, tt.want, got)
	}
}

func TestCSRNameUnknown(t *testing.T) {
	for _, addr := range []uint32{0x7FF, 0xFFF, 0x1000, 0xFFFFFFFF} {
		_, err := CSRName(addr)
		assert.ErrorIs(t, err, ErrLookup, "csr %#x", addr)
	}
}

func TestCSRsSorted(t *testing.T) {
	csrs := CSRs()
	require.NotEmpty(t, csrs)
	seen := map[string]bool{}
	for i, c := range csrs {
		if i > 0 {
			assert.Less(t, csrs[i-1].Addr, c.Addr)
		}
		assert.False(t, seen[c.Name], "duplicate name %s", c.Name)
		seen[c.Name] = true
	}
}
