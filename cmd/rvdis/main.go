// Command rvdis disassembles RV32I programs in objdump style.
//
//	rvdis -elf prog.elf
//	rvdis -hex rom.hex -dump=fields
//	rvdis -bin prog.bin -base 0x80000000 -n 32
//	rvdis -word 0x00008067
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"rvdis/isa"
	"rvdis/sim"
)

type options struct {
	elfPath, hexPath, binPath string
	base, pc                  uint64
	count                     int
	word                      string
	strict                    bool
	dump                      string
	verbose                   bool
	listCSRs                  bool
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("rvdis", flag.ContinueOnError)
	o := &options{}
	fs.StringVar(&o.elfPath, "elf", "", "ELF file to disassemble")
	fs.StringVar(&o.hexPath, "hex", "", "Verilog $readmemh image to disassemble")
	fs.StringVar(&o.binPath, "bin", "", "Flat binary to disassemble")
	fs.Uint64Var(&o.base, "base", 0, "Load address of a -bin image")
	fs.Uint64Var(&o.pc, "pc", 0, "Start address (0 keeps the image start or ELF entry); pc of -word")
	fs.IntVar(&o.count, "n", 0, "Max instructions (0 disassembles to the end of the image)")
	fs.StringVar(&o.word, "word", "", "Decode a single hex instruction word")
	fs.BoolVar(&o.strict, "strict", false, "Stop at the first malformed instruction")
	fs.StringVar(&o.dump, "dump", "", "Print decoded fields under each line: fields or spew")
	fs.BoolVar(&o.verbose, "v", false, "Debug logging")
	fs.BoolVar(&o.listCSRs, "csrs", false, "List known CSRs and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	inputs := 0
	for _, p := range []string{o.elfPath, o.hexPath, o.binPath} {
		if p != "" {
			inputs++
		}
	}
	switch {
	case o.listCSRs:
	case o.word != "" && inputs > 0:
		return nil, errors.New("-word cannot be combined with -elf, -hex or -bin")
	case o.word == "" && inputs != 1:
		return nil, errors.New("exactly one of -elf, -hex or -bin is required")
	}
	if o.base > 0xFFFFFFFF || o.pc > 0xFFFFFFFF {
		return nil, errors.New("-base and -pc must fit in 32 bits")
	}
	switch o.dump {
	case "", "fields", "spew":
	default:
		return nil, fmt.Errorf("unknown -dump mode %q", o.dump)
	}
	if o.count < 0 {
		return nil, errors.New("-n must not be negative")
	}
	return o, nil
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "rvdis:", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	w := bufio.NewWriter(os.Stdout)
	err = run(o, w, log)
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		log.Error("disassembly failed", "err", err)
		os.Exit(1)
	}
}

func run(o *options, w io.Writer, log *slog.Logger) error {
	switch {
	case o.listCSRs:
		for _, c := range isa.CSRs() {
			fmt.Fprintf(w, "%03x\t%s\n", c.Addr, c.Name)
		}
		return nil
	case o.word != "":
		word, err := parseWord(o.word)
		if err != nil {
			return err
		}
		in, err := isa.Decode(word, uint32(o.pc), nil)
		printInstruction(w, o, in)
		return err
	}

	img, err := load(o)
	if err != nil {
		return err
	}
	pc := img.Text.Base
	if img.Entry != 0 {
		pc = img.Entry
	}
	if o.pc != 0 {
		pc = uint32(o.pc)
	}
	if !img.Text.Contains(pc) {
		return fmt.Errorf("start 0x%08x outside image [0x%08x, 0x%08x)", pc, img.Text.Base, img.Text.End())
	}
	n := int((uint64(img.Text.Base) + uint64(img.Text.Len()) - uint64(pc)) / 4)
	if o.count > 0 && o.count < n {
		n = o.count
	}

	d := sim.NewDisassembler(img.Text, pc, img.Symbols)
	d.Log = log.With("module", "sim")
	log.Debug("disassembling", "start", fmt.Sprintf("%08x", pc), "count", n, "symbols", len(img.Symbols))

	return d.Run(n, func(in isa.Instruction, err error) error {
		if name, ok := img.Symbols[in.PC]; ok {
			fmt.Fprintf(w, "\n%08x <%s>:\n", in.PC, name)
		}
		printInstruction(w, o, in)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, isa.ErrMalformed) && o.strict:
			return err
		default:
			log.Warn("decode", "pc", fmt.Sprintf("%08x", in.PC), "word", fmt.Sprintf("%08x", in.Word), "err", err)
			return nil
		}
	})
}

func load(o *options) (*sim.Image, error) {
	switch {
	case o.elfPath != "":
		return sim.LoadELF(o.elfPath)
	case o.hexPath != "":
		seg, err := sim.LoadMemH(o.hexPath)
		if err != nil {
			return nil, err
		}
		return &sim.Image{Text: seg}, nil
	default:
		seg, err := sim.LoadFlat(o.binPath, uint32(o.base))
		if err != nil {
			return nil, err
		}
		return &sim.Image{Text: seg}, nil
	}
}

// parseWord reads an instruction word as objdump prints it: hex digits with
// an optional 0x prefix.
func parseWord(s string) (uint32, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	w, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("bad -word %q: %w", s, err)
	}
	return uint32(w), nil
}

// dumper prints the record fields; Instruction's String method would hide them.
var dumper = spew.ConfigState{Indent: " ", DisableMethods: true}

func printInstruction(w io.Writer, o *options, in isa.Instruction) {
	fmt.Fprintf(w, "%8x:\t%08x\t%s\n", in.PC, in.Word, in)
	switch o.dump {
	case "fields":
		fmt.Fprintln(w, in.Dump())
	case "spew":
		dumper.Fdump(w, in)
	}
}
