package sim

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMultiSegment is returned for hex images with more than one @address
// section after data has started.
var ErrMultiSegment = errors.New("sim: multi-segment hex images are not supported")

// ReadMemH parses a Verilog $readmemh image whose entries are wordSize bytes
// wide (1, 2, 4 or 8). An @ token sets the word address of the data that
// follows; // starts a comment. Entries are stored little-endian.
func ReadMemH(r io.Reader, wordSize int) (*Segment, error) {
	switch wordSize {
	case 1, 2, 4, 8:
	default:
		return nil, fmt.Errorf("sim: unsupported hex word size %d", wordSize)
	}
	var (
		base  uint64
		words []uint64
		seen  bool // @ or data seen
	)
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if i := strings.Index(text, "//"); i >= 0 {
			text = text[:i]
		}
		for _, tok := range strings.Fields(text) {
			if tok[0] == '@' {
				if len(words) > 0 {
					return nil, fmt.Errorf("line %d: %w", line, ErrMultiSegment)
				}
				addr, err := strconv.ParseUint(tok[1:], 16, 32)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad address %q: %w", line, tok, err)
				}
				base = addr * uint64(wordSize)
				if base > 1<<32-1 {
					return nil, fmt.Errorf("line %d: address %q out of range", line, tok)
				}
				seen = true
				continue
			}
			w, err := strconv.ParseUint(tok, 16, 8*wordSize)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad word %q: %w", line, tok, err)
			}
			words = append(words, w)
			seen = true
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !seen {
		return nil, errors.New("sim: empty hex image")
	}

	buf := make([]byte, wordSize*len(words))
	for i, w := range words {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], w)
		copy(buf[wordSize*i:], b[:wordSize])
	}
	if err := checkFits(uint32(base), uint64(len(buf))); err != nil {
		return nil, err
	}
	seg := NewSegment(uint32(base), uint32(len(buf)))
	if err := seg.WriteBytes(uint32(base), buf); err != nil {
		return nil, err
	}
	return seg, nil
}

// LoadMemH reads a hex image of 32-bit words from path.
func LoadMemH(path string) (*Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	seg, err := ReadMemH(f, 4)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seg, nil
}
