package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/labstack/gommon/log"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/firodj/mipsword/bitstr"
	"github.com/firodj/mipsword/instruction"
	"github.com/firodj/mipsword/internal"
)

type app struct {
	logLevel string
	debug    bool
	dsn      string

	out    io.Writer
	logger *log.Logger
}

func (a *app) setup() error {
	if a.logger != nil {
		return nil
	}
	logger, err := internal.NewLogger(os.Stderr, "mipsword", a.logLevel)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *app) openRepository(ctx context.Context) (*internal.SQLRepository, error) {
	repo, err := internal.NewSQLRepository(a.dsn, a.debug)
	if err != nil {
		return nil, err
	}
	if err := repo.Init(ctx); err != nil {
		repo.Close()
		return nil, err
	}
	return repo, nil
}

func (a *app) printWord(instr instruction.Instruction, template string, tree bool) {
	if template != "" {
		fmt.Fprintln(a.out, internal.RenderTemplate(template, instr))
		return
	}
	if tree {
		fmt.Fprint(a.out, internal.Tree(instr))
		return
	}

	view := internal.NewWordView(instr)
	fmt.Fprintf(a.out, "hex\t%s\n", view.Hex)
	fmt.Fprintf(a.out, "binary\t%s\n", internal.ColorBits(instr))
	fmt.Fprintf(a.out, "layout\t%s\n", internal.Legend(instr))
	fmt.Fprintf(a.out, "fields\t")
	for i, f := range view.Fields {
		if i > 0 {
			fmt.Fprint(a.out, " ")
		}
		fmt.Fprintf(a.out, "%s=%d", f.Name, f.Value)
	}
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "memory\t%s (le)\n", view.Memory)

	if a.debug {
		spew.Fdump(a.out, instr)
	}
}

func encodeCommand(a *app) *ffcli.Command {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	format := fs.String("format", "r", "instruction format: r, i or j")
	template := fs.String("template", "", "output template, e.g. '{{hex}} {{rs}}'")
	tree := fs.Bool("tree", false, "print fields as a tree")

	return &ffcli.Command{
		Name:       "encode",
		ShortUsage: "encode [-format r|i|j] [--] <field> ...",
		ShortHelp:  "compose a word from field values (numbers or register names)",
		LongHelp:   "A negative first field would be read as a flag; put -- before it:\n  encode -format j -- -1 5",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			f, err := instruction.ParseFormat(*format)
			if err != nil {
				return err
			}
			values, err := internal.ParseArguments(args)
			if err != nil {
				return err
			}
			instr, err := instruction.Encode(f, values)
			if err != nil {
				return err
			}
			a.logger.Debugf("encoded %s", instr)
			a.printWord(instr, *template, *tree)
			return nil
		},
	}
}

func decodeCommand(a *app) *ffcli.Command {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	format := fs.String("format", "r", "instruction format: r, i or j")
	signed := fs.Bool("signed", false, "read shamt / immediate as two's complement")
	template := fs.String("template", "", "output template, e.g. '{{op}} {{immediate}}'")
	tree := fs.Bool("tree", false, "print fields as a tree")

	return &ffcli.Command{
		Name:       "decode",
		ShortUsage: "decode [-format r|i|j] [-signed] <hex>",
		ShortHelp:  "split an 8 digit hex word into its fields",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			if len(args) != 1 {
				return errors.New("missing hex word")
			}
			f, err := instruction.ParseFormat(*format)
			if err != nil {
				return err
			}
			instr, err := instruction.Decode(f, args[0], bitstr.InterpretationOf(*signed))
			if err != nil {
				return err
			}
			a.printWord(instr, *template, *tree)
			return nil
		},
	}
}

func batchCommand(a *app) *ffcli.Command {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	save := fs.Bool("save", false, "store every word in the database")

	return &ffcli.Command{
		Name:       "batch",
		ShortUsage: "batch [-save] <program.yaml|listing.txt>",
		ShortHelp:  "encode / decode a whole program",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			if len(args) != 1 {
				return errors.New("missing program file")
			}

			doc, err := internal.LoadDocument(args[0], a.logger)
			if err != nil {
				return err
			}
			failed := doc.Process()
			a.logger.Infof("%d word(s) at 0x%08x..0x%08x", len(doc.Entries()), doc.Base, doc.End())
			doc.WriteListing(a.out, !color.NoColor)

			if *save {
				repo, err := a.openRepository(ctx)
				if err != nil {
					return err
				}
				defer repo.Close()

				source := filepath.Base(args[0])
				for _, e := range doc.Entries() {
					if e.Err != nil {
						continue
					}
					if _, err := repo.Save(ctx, e.Address, e.Instr, source); err != nil {
						return err
					}
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d instruction(s) failed", failed)
			}
			return nil
		},
	}
}

func historyCommand(a *app) *ffcli.Command {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	limit := fs.Int("limit", 20, "number of words, 0 = all")

	return &ffcli.Command{
		Name:       "history",
		ShortUsage: "history [-limit n]",
		ShortHelp:  "list stored words, newest first",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			repo, err := a.openRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			words, err := repo.List(ctx, *limit)
			if err != nil {
				return err
			}
			for _, w := range words {
				fmt.Fprintf(a.out, "%s\t0x%08x\t%s\t%s\t%s\n", w.CreatedAt.Format("2006-01-02 15:04:05"), w.Address, w.Format, w.Hex, w.Source)
			}
			return nil
		},
	}
}

func rootCommand(a *app) *ffcli.Command {
	appName := filepath.Base(os.Args[0])

	rootFlagSet := flag.NewFlagSet(appName, flag.ExitOnError)
	rootFlagSet.StringVar(&a.logLevel, "log-level", "info", "debug, info, warn, error or off")
	rootFlagSet.BoolVar(&a.debug, "debug", false, "dump decoded values and SQL queries")
	rootFlagSet.StringVar(&a.dsn, "db", internal.MemoryDSN, "sqlite DSN of the word history")
	rootFlagSet.String("config", "", "config file (flag value per line)")

	return &ffcli.Command{
		ShortUsage: appName + " [flags] <subcommand>",
		FlagSet:    rootFlagSet,
		Options: []ff.Option{
			ff.WithEnvVarPrefix("MIPSWORD"),
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ff.PlainParser),
		},
		Subcommands: []*ffcli.Command{
			encodeCommand(a),
			decodeCommand(a),
			convCommand(a),
			batchCommand(a),
			historyCommand(a),
			serveCommand(a),
		},
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
	}
}

func main() {
	ctx := context.Background()
	// trap Ctrl+C and call cancel on the context
	ctx, cancel := context.WithCancel(ctx)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	defer func() {
		signal.Stop(quit)
		cancel()
	}()

	go func() {
		<-quit
		cancel()
	}()

	a := &app{out: os.Stdout}
	root := rootCommand(a)

	err := root.ParseAndRun(ctx, os.Args[1:])
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
