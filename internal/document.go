package internal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/labstack/gommon/log"
	"gopkg.in/yaml.v3"

	"github.com/firodj/mipsword/binarysearchtree"
	"github.com/firodj/mipsword/bitstr"
	"github.com/firodj/mipsword/instruction"
)

type EntryYaml struct {
	Format  string   `yaml:"format"`
	Fields  []string `yaml:"fields,omitempty"`
	Hex     string   `yaml:"hex,omitempty"`
	Signed  bool     `yaml:"signed,omitempty"`
	Comment string   `yaml:"comment,omitempty"`
}

type ProgramYaml struct {
	Base         uint32      `yaml:"base"`
	Instructions []EntryYaml `yaml:"instructions"`
}

// Entry is one program line: encoded from Fields, or decoded from Hex.
type Entry struct {
	Line    int
	Format  instruction.Format
	Fields  []string
	Hex     string
	Mode    bitstr.Interpretation
	Comment string

	Address uint32
	Instr   instruction.Instruction
	Err     error
}

func (e *Entry) IsDecode() bool {
	return e.Hex != ""
}

func (e *Entry) build() (instruction.Instruction, error) {
	if e.IsDecode() {
		return instruction.Decode(e.Format, e.Hex, e.Mode)
	}

	values, err := ParseArguments(e.Fields)
	if err != nil {
		return nil, err
	}
	return instruction.Encode(e.Format, values)
}

// Document is a program: words laid out from Base, four bytes apart.
type Document struct {
	Base uint32

	pending Queue[*Entry]
	words   binarysearchtree.AVLTree[uint32, *Entry]
	next    uint32
	lines   int
	logger  *log.Logger
}

func NewDocument(base uint32, logger *log.Logger) *Document {
	return &Document{
		Base:   base,
		next:   base,
		logger: logger,
	}
}

// LoadDocument reads a .yaml/.yml program or a text listing.
func LoadDocument(filename string, logger *log.Logger) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	doc := NewDocument(0, logger)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = doc.LoadYaml(file)
	default:
		err = doc.LoadListing(file)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	logger.Infof("loaded %s: %d entries", filename, doc.pending.Len())
	return doc, nil
}

func (doc *Document) LoadYaml(r io.Reader) error {
	var prog ProgramYaml
	if err := yaml.NewDecoder(r).Decode(&prog); err != nil {
		return err
	}

	doc.SetBase(prog.Base)
	for idx, ey := range prog.Instructions {
		format, err := instruction.ParseFormat(ey.Format)
		if err != nil {
			return fmt.Errorf("instruction %d: %w", idx, err)
		}
		doc.Add(&Entry{
			Line:    idx + 1,
			Format:  format,
			Fields:  ey.Fields,
			Hex:     ey.Hex,
			Mode:    bitstr.InterpretationOf(ey.Signed),
			Comment: ey.Comment,
		})
	}
	return nil
}

// LoadListing reads one instruction per line:
//
//	.base 0x00400000
//	r 0 s2 s3 s1 0 32      # add s1, s2, s3
//	i 8 t0 t1 -1
//	j 2 0x100000
//	x i 2109ffff signed
func (doc *Document) LoadListing(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		text, comment, _ := strings.Cut(scanner.Text(), "#")

		words, err := shellquote.Split(text)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineno, err)
		}
		if len(words) == 0 {
			continue
		}

		if words[0] == ".base" {
			if len(words) != 2 {
				return fmt.Errorf("line %d: .base takes one address", lineno)
			}
			base, err := strconv.ParseUint(words[1], 0, 32)
			if err != nil {
				return fmt.Errorf("line %d: %w", lineno, err)
			}
			doc.SetBase(uint32(base))
			continue
		}

		e, err := parseListingEntry(words)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineno, err)
		}
		e.Line = lineno
		e.Comment = strings.TrimSpace(comment)
		doc.Add(e)
	}
	return scanner.Err()
}

func parseListingEntry(words []string) (*Entry, error) {
	if words[0] == "x" {
		if len(words) < 3 || len(words) > 4 {
			return nil, errors.New("decode takes: x <format> <hex> [signed]")
		}
		format, err := instruction.ParseFormat(words[1])
		if err != nil {
			return nil, err
		}
		e := &Entry{Format: format, Hex: words[2]}
		if len(words) == 4 {
			if words[3] != "signed" {
				return nil, fmt.Errorf("unknown decode flag %q", words[3])
			}
			e.Mode = bitstr.Signed
		}
		return e, nil
	}

	format, err := instruction.ParseFormat(words[0])
	if err != nil {
		return nil, err
	}
	return &Entry{Format: format, Fields: words[1:]}, nil
}

// SetBase moves the placement of entries not yet processed.
func (doc *Document) SetBase(base uint32) {
	if doc.lines == 0 {
		doc.Base = base
	}
	doc.next = base
}

// Add queues e at the next free address.
func (doc *Document) Add(e *Entry) {
	e.Address = doc.next
	doc.next += 4
	doc.lines++
	doc.pending.Push(e)
}

// Process encodes or decodes every queued entry. Failures stay on the entry
// and do not stop the rest; the number of failures is returned.
func (doc *Document) Process() int {
	failed := 0
	for doc.pending.Len() > 0 {
		e := doc.pending.Pop()
		e.Instr, e.Err = e.build()
		if e.Err != nil {
			failed++
			doc.logger.Errorf("line %d at 0x%08x: %v", e.Line, e.Address, e.Err)
		} else {
			doc.logger.Debugf("line %d at 0x%08x: %s", e.Line, e.Address, e.Instr)
		}

		if !doc.words.Insert(e.Address, e) {
			doc.logger.Warnf("line %d overwrites 0x%08x", e.Line, e.Address)
		}
	}
	return failed
}

// Get returns the entry whose word covers addr, or nil.
func (doc *Document) Get(addr uint32) *Entry {
	it := doc.words.Floor(addr)
	if it.End() || addr-it.Key() >= 4 {
		return nil
	}
	return it.Value()
}

// End is the address just past the last processed word, Base when empty.
func (doc *Document) End() uint32 {
	it := doc.words.Max()
	if it.End() {
		return doc.Base
	}
	return it.Key() + 4
}

// Entries lists processed entries by address.
func (doc *Document) Entries() []*Entry {
	entries := make([]*Entry, 0, doc.words.Size())
	for it := doc.words.Min(); !it.End(); it = it.Next() {
		entries = append(entries, it.Value())
	}
	return entries
}

func (doc *Document) WriteListing(w io.Writer, colored bool) {
	for _, e := range doc.Entries() {
		if e.Err != nil {
			fmt.Fprintf(w, "0x%08x\t????????\t; line %d: %v\n", e.Address, e.Line, e.Err)
			continue
		}

		bits := e.Instr.Word().String()
		if colored {
			bits = ColorBits(e.Instr)
		}
		fmt.Fprintf(w, "0x%08x\t%s\t%s", e.Address, e.Instr.Hex(), bits)
		if e.Comment != "" {
			fmt.Fprintf(w, "\t; %s", e.Comment)
		}
		fmt.Fprintln(w)
	}
}
