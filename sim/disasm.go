package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"rvdis/isa"
)

// ErrFetch is returned when the walker's pc leaves mapped memory.
var ErrFetch = errors.New("sim: fetch outside memory")

// Disassembler walks memory one 32-bit instruction at a time. It never
// executes anything: the pc always advances by 4.
type Disassembler struct {
	Mem     WordReader
	PC      uint32
	Symbols isa.Symbols
	Log     *slog.Logger
}

func NewDisassembler(mem WordReader, pc uint32, syms isa.Symbols) *Disassembler {
	return &Disassembler{Mem: mem, PC: pc, Symbols: syms}
}

var discardLog = slog.New(slog.NewTextHandler(io.Discard, nil))

func (d *Disassembler) logger() *slog.Logger {
	if d.Log == nil {
		return discardLog
	}
	return d.Log
}

// Step decodes the instruction at PC and moves past it. A decode failure is
// returned with the partially decoded instruction and still advances PC, so
// a caller can keep going.
func (d *Disassembler) Step() (isa.Instruction, error) {
	word, ok := d.Mem.Read32(d.PC)
	if !ok {
		return isa.Instruction{}, fmt.Errorf("%w: pc=%08x", ErrFetch, d.PC)
	}
	in, err := isa.Decode(word, d.PC, d.Symbols)
	if log := d.logger(); log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("decode", "pc", fmt.Sprintf("%08x", d.PC), "word", fmt.Sprintf("%08x", word), "asm", in.String())
	}
	d.PC += 4
	return in, err
}

// Run steps up to n times, handing each instruction and its decode error to
// fn. It stops early when fn returns an error, which Run returns, or when a
// fetch fails.
func (d *Disassembler) Run(n int, fn func(isa.Instruction, error) error) error {
	for i := 0; i < n; i++ {
		in, err := d.Step()
		if errors.Is(err, ErrFetch) {
			return err
		}
		if err := fn(in, err); err != nil {
			return err
		}
	}
	return nil
}

// Decoded is one entry of DecodeAll's result.
type Decoded struct {
	Inst isa.Instruction
	Err  error
}

// chunkWords is the number of instructions decoded per goroutine.
const chunkWords = 1024

// DecodeAll decodes every aligned word of seg concurrently and returns the
// results in address order. Decode errors are kept per entry.
func DecodeAll(ctx context.Context, seg *Segment, syms isa.Symbols) ([]Decoded, error) {
	out := make([]Decoded, seg.Len()/4)
	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(out); start += chunkWords {
		start := start
		end := min(start+chunkWords, len(out))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				pc := seg.Base + uint32(4*i)
				word, ok := seg.Read32(pc)
				if !ok {
					return fmt.Errorf("%w: pc=%08x", ErrFetch, pc)
				}
				in, err := isa.Decode(word, pc, syms)
				out[i] = Decoded{Inst: in, Err: err}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
