package sim

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// WordReader yields the 32-bit word stored at a byte address. ok is false
// when addr is not backed by memory.
type WordReader interface {
	Read32(addr uint32) (uint32, bool)
}

// Segment is a contiguous block of byte-addressable memory starting at Base.
// Words are little-endian, as on RISC-V.
type Segment struct {
	Base uint32
	data []byte
}

func NewSegment(base, size uint32) *Segment {
	return &Segment{Base: base, data: make([]byte, size)}
}

// Len returns the segment size in bytes.
func (s *Segment) Len() int { return len(s.data) }

// End returns the first address past the segment. It is 1<<32 for a segment
// that runs to the top of the address space.
func (s *Segment) End() uint64 { return uint64(s.Base) + uint64(len(s.data)) }

// ErrAddressSpace is returned for images that do not fit below 1<<32.
var ErrAddressSpace = errors.New("sim: image overflows the 32-bit address space")

func checkFits(base uint32, n uint64) error {
	if uint64(base)+n > 1<<32 {
		return fmt.Errorf("%w: %d bytes at 0x%08x", ErrAddressSpace, n, base)
	}
	return nil
}

func (s *Segment) Contains(addr uint32) bool {
	return addr >= s.Base && uint64(addr) < s.End()
}

// span reports whether [addr, addr+n) lies inside the segment.
func (s *Segment) span(addr uint32, n int) bool {
	return s.Contains(addr) && uint64(addr-s.Base)+uint64(n) <= uint64(len(s.data))
}

func (s *Segment) Read8(addr uint32) (uint8, bool) {
	if !s.Contains(addr) {
		return 0, false
	}
	return s.data[addr-s.Base], true
}

func (s *Segment) Write8(addr uint32, v uint8) bool {
	if !s.Contains(addr) {
		return false
	}
	s.data[addr-s.Base] = v
	return true
}

func (s *Segment) Read32(addr uint32) (uint32, bool) {
	if !s.span(addr, 4) {
		return 0, false
	}
	off := addr - s.Base
	return binary.LittleEndian.Uint32(s.data[off : off+4]), true
}

func (s *Segment) Write32(addr uint32, v uint32) bool {
	if !s.span(addr, 4) {
		return false
	}
	off := addr - s.Base
	binary.LittleEndian.PutUint32(s.data[off:off+4], v)
	return true
}

// WriteBytes copies b into the segment at addr.
func (s *Segment) WriteBytes(addr uint32, b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if !s.span(addr, len(b)) {
		return fmt.Errorf("write %d bytes @0x%08x: outside segment [0x%08x, 0x%08x)", len(b), addr, s.Base, s.End())
	}
	copy(s.data[addr-s.Base:], b)
	return nil
}

// LoadFlat reads a raw binary image from path into a new segment at base.
func LoadFlat(path string, base uint32) (*Segment, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := checkFits(base, uint64(len(b))); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	seg := NewSegment(base, uint32(len(b)))
	if err := seg.WriteBytes(base, b); err != nil {
		return nil, fmt.Errorf("map %s: %w", path, err)
	}
	return seg, nil
}
