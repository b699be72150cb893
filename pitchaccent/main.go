// Command pitchaccent builds a pitch accent table from a dictionary words
// file and uses it to annotate the vocabulary notes of a flashcard
// collection.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/msnoigrs/goaccent"
	"github.com/msnoigrs/goaccent/collection"
	"github.com/msnoigrs/goaccent/dictionary"
	"github.com/msnoigrs/goaccent/internal/config"
	"github.com/msnoigrs/goaccent/internal/logging"
)

type Globals struct {
	Config   string `short:"c" help:"Configuration file (YAML, JSON or TOML)" type:"path"`
	LogLevel string `help:"Log level: debug, info, warn, error"`
	Verbose  int    `short:"v" type:"counter" help:"Print more debugging output"`

	cfg    *config.Config
	logger *slog.Logger
	stdout io.Writer
}

type CLI struct {
	Globals

	Build    BuildCmd    `cmd:"" help:"Build the accents table from a words file"`
	Info     InfoCmd     `cmd:"" help:"Describe an accents table"`
	Print    PrintCmd    `cmd:"" help:"Print every entry of an accents table"`
	Render   RenderCmd   `cmd:"" help:"Render accent markup for furigana strings"`
	Apply    ApplyCmd    `cmd:"" help:"Add pitch accent markup to vocabulary notes"`
	Bold     BoldCmd     `cmd:"" help:"Bold vocabulary words in their example sentences"`
	Validate ValidateCmd `cmd:"" help:"Check kanji and vocabulary notes for common mistakes"`

	MissingExamples MissingExamplesCmd `cmd:"" help:"List kanji examples without a vocabulary note"`
}

func (g *Globals) setup() error {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return err
	}
	levelName := cfg.Log.Level
	if g.LogLevel != "" {
		levelName = g.LogLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}
	if g.Verbose > 0 {
		level = logging.LevelDebug
	}
	format, err := logging.ParseFormat(cfg.Log.Format)
	if err != nil {
		return err
	}
	logging.InitLogger(level, format, os.Stderr)

	g.cfg = cfg
	g.logger = logging.Logger()
	if g.stdout == nil {
		g.stdout = os.Stdout
	}
	return nil
}

func (g *Globals) printer() *message.Printer {
	return message.NewPrinter(language.English)
}

func orDefault(path, def string) string {
	if path != "" {
		return path
	}
	return def
}

type BuildCmd struct {
	Words  string `arg:"" optional:"" help:"Words file (.ljson, .ljson.xz or .ljson.gz)" type:"path"`
	Output string `short:"o" help:"Output accents file" type:"path"`
}

func (c *BuildCmd) Run(g *Globals) error {
	wordsFile := orDefault(c.Words, g.cfg.WordsFile)
	output := orDefault(c.Output, g.cfg.AccentsFile)

	src, err := dictionary.OpenSource(wordsFile)
	if err != nil {
		return err
	}
	defer src.Close()

	start := time.Now()
	builder := dictionary.NewTableBuilder(g.logger)
	if err := builder.BuildFrom(src); err != nil {
		return fmt.Errorf("%s: %w", wordsFile, err)
	}
	table := builder.Table()
	if err := dictionary.SaveTable(output, table, g.logger); err != nil {
		return err
	}
	fingerprint, err := table.Fingerprint()
	if err != nil {
		return err
	}
	g.logger.Info("built accents table",
		"words", wordsFile,
		"output", output,
		"fingerprint", fingerprint,
		"elapsed", time.Since(start))

	p := g.printer()
	p.Fprintf(g.stdout, "lines:          %d\n", builder.NumLines)
	p.Fprintf(g.stdout, "readings:       %d\n", table.NumReadings())
	p.Fprintf(g.stdout, "kanji readings: %d\n", table.NumKanjiReadings())
	p.Fprintf(g.stdout, "conflicts:      %d\n", len(builder.Conflicts()))
	return nil
}

type InfoCmd struct {
	Accents string `arg:"" optional:"" help:"Accents file" type:"path"`
}

func (c *InfoCmd) Run(g *Globals) error {
	return dictionary.PrintInfo(orDefault(c.Accents, g.cfg.AccentsFile), g.stdout)
}

type PrintCmd struct {
	Accents string `arg:"" optional:"" help:"Accents file" type:"path"`
}

func (c *PrintCmd) Run(g *Globals) error {
	table, err := dictionary.LoadTable(orDefault(c.Accents, g.cfg.AccentsFile))
	if err != nil {
		return err
	}
	bufout := bufio.NewWriter(g.stdout)
	if err := dictionary.PrintTable(table, bufout); err != nil {
		return err
	}
	return bufout.Flush()
}

type RenderCmd struct {
	Furigana []string `arg:"" help:"Words in furigana notation, e.g. 行[い]く"`
	Accents  string   `short:"a" help:"Accents file" type:"path"`
	Pos      int      `short:"p" default:"-1" help:"Render the words as kana with this downstep position instead of looking them up"`
}

func (c *RenderCmd) Run(g *Globals) error {
	var table *dictionary.Table
	if c.Pos < 0 {
		var err error
		table, err = dictionary.LoadTable(orDefault(c.Accents, g.cfg.AccentsFile))
		if err != nil {
			return err
		}
	}
	for _, furigana := range c.Furigana {
		var (
			spans goaccent.SpanSet
			ok    bool
		)
		if table == nil {
			spans, ok = goaccent.Render(c.Pos, goaccent.KanaForm(goaccent.NormalizeField(furigana)))
		} else {
			spans, ok = goaccent.AccentSpans(table, goaccent.NormalizeField(furigana))
		}
		if !ok {
			fmt.Fprintf(g.stdout, "%s\tunknown\n", furigana)
			continue
		}
		fmt.Fprintf(g.stdout, "%s\t%s\n", furigana, spans.Markup())
	}
	return nil
}

type CollectionFlags struct {
	Collection string `help:"Anki collection file" type:"path"`
	Notetype   string `help:"Note type of vocabulary notes"`
}

func (f *CollectionFlags) open(g *Globals) (collection.Collection, string, error) {
	path := orDefault(f.Collection, g.cfg.Collection)
	g.logger.Debug("opening collection", "path", path, "driver", collection.DriverName())
	coll, err := collection.Open(path)
	if err != nil {
		return nil, "", err
	}
	return coll, orDefault(f.Notetype, g.cfg.Notetype), nil
}

type ApplyCmd struct {
	CollectionFlags
	Accents string `short:"a" help:"Accents file" type:"path"`
	DryRun  bool   `short:"n" help:"Show what would be done without committing changes"`
}

func (c *ApplyCmd) Run(ctx context.Context, g *Globals) error {
	table, err := dictionary.LoadTable(orDefault(c.Accents, g.cfg.AccentsFile))
	if err != nil {
		return err
	}
	coll, notetype, err := c.open(g)
	if err != nil {
		return err
	}
	defer coll.Close()

	u := goaccent.NewUpdater(table, g.logger)
	u.Fields = goaccent.FieldNames(g.cfg.Fields)
	u.DryRun = c.DryRun
	stats, err := u.Run(ctx, coll, notetype)
	if err != nil {
		return err
	}

	p := g.printer()
	p.Fprintf(g.stdout, "same:      %d\n", stats.Same)
	p.Fprintf(g.stdout, "unknown:   %d\n", stats.Unknown)
	p.Fprintf(g.stdout, "different: %d\n", stats.Different)
	p.Fprintf(g.stdout, "to update: %d\n", stats.Updated)
	p.Fprintf(g.stdout, "updated:   %d\n", stats.Written)
	return nil
}

type BoldCmd struct {
	CollectionFlags
	DryRun bool `short:"n" help:"Show what would be done without committing changes"`
}

func (c *BoldCmd) Run(ctx context.Context, g *Globals) error {
	coll, notetype, err := c.open(g)
	if err != nil {
		return err
	}
	defer coll.Close()

	b := goaccent.NewBolder(g.logger)
	b.Fields = goaccent.FieldNames(g.cfg.Fields)
	b.DryRun = c.DryRun
	stats, err := b.Run(ctx, coll, notetype)
	if err != nil {
		return err
	}

	p := g.printer()
	p.Fprintf(g.stdout, "count:           %d\n", stats.Count)
	p.Fprintf(g.stdout, "no examples:     %d\n", stats.NoExamples)
	p.Fprintf(g.stdout, "not in examples: %d\n", stats.NotInExamples)
	p.Fprintf(g.stdout, "already bold:    %d\n", stats.AlreadyBold)
	p.Fprintf(g.stdout, "to update:       %d\n", stats.Updated)
	p.Fprintf(g.stdout, "updated:         %d\n", stats.Written)
	return nil
}

type ValidateCmd struct {
	CollectionFlags
	KanjiNotetype string `help:"Note type of kanji notes"`
	SkipKanji     bool   `help:"Only check vocabulary notes"`
}

func (c *ValidateCmd) Run(ctx context.Context, g *Globals) error {
	coll, notetype, err := c.open(g)
	if err != nil {
		return err
	}
	defer coll.Close()

	bad := 0
	if !c.SkipKanji {
		kanjiNotetype := orDefault(c.KanjiNotetype, g.cfg.KanjiNotetype)
		kv := goaccent.NewKanjiValidator()
		kv.Fields = goaccent.KanjiFieldNames(g.cfg.KanjiFields)
		report, err := kv.Run(ctx, coll, kanjiNotetype)
		switch {
		case errors.Is(err, collection.ErrNotetypeNotFound):
			g.logger.Warn("no kanji notes to check", "notetype", kanjiNotetype)
		case err != nil:
			return err
		default:
			g.printReport(kanjiNotetype, report)
			bad += report.NotesWithProblems
		}
	}

	v := goaccent.NewValidator()
	v.Fields = goaccent.FieldNames(g.cfg.Fields)
	report, err := v.Run(ctx, coll, notetype)
	if err != nil {
		return err
	}
	g.printReport(notetype, report)
	bad += report.NotesWithProblems

	if bad > 0 {
		return fmt.Errorf("%d note(s) with problems", bad)
	}
	return nil
}

func (g *Globals) printReport(notetype string, report *goaccent.ValidationReport) {
	for _, problem := range report.Problems {
		fmt.Fprintln(g.stdout, problem)
	}
	p := g.printer()
	p.Fprintf(g.stdout, "%s: %d notes, %d error(s)\n\n", notetype, report.Notes, report.NotesWithProblems)
}

type MissingExamplesCmd struct {
	CollectionFlags
	KanjiNotetype string `help:"Note type of kanji notes"`
}

func (c *MissingExamplesCmd) Run(ctx context.Context, g *Globals) error {
	coll, notetype, err := c.open(g)
	if err != nil {
		return err
	}
	defer coll.Close()

	f := goaccent.NewExampleFinder(g.logger)
	f.KanjiFields = goaccent.KanjiFieldNames(g.cfg.KanjiFields)
	report, err := f.Run(ctx, coll, orDefault(c.KanjiNotetype, g.cfg.KanjiNotetype), notetype)
	if err != nil {
		return err
	}
	for _, id := range report.Mismatched {
		fmt.Fprintf(g.stdout, "note %d: examples mismatch\n", id)
	}

	tw := tabwriter.NewWriter(g.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "date\tnote\tex#\tJapanese\tEnglish")
	for _, ex := range report.Missing {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n",
			ex.Added().Format(time.DateTime), ex.Note, ex.Number, ex.Japanese, ex.English)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	g.printer().Fprintf(g.stdout, "%d of %d examples missing\n", len(report.Missing), report.Examples)
	return nil
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("pitchaccent"),
		kong.Description("Pitch accent markup for Japanese vocabulary notes."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	}, options...)
	return kong.New(cli, options...)
}

func run(ctx context.Context, cli *CLI, args []string) error {
	parser, err := newParser(cli, kong.BindTo(ctx, (*context.Context)(nil)))
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	if err := cli.Globals.setup(); err != nil {
		return err
	}
	return kctx.Run(&cli.Globals)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var cli CLI
	if err := run(ctx, &cli, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "pitchaccent: %s\n", err)
		os.Exit(1)
	}
}
