package dictionary

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/msnoigrs/goaccent/internal/lnreader"
	"github.com/msnoigrs/goaccent/internal/logging"
)

// TableBuilder accumulates dictionary lines into an accent table.
//
// Bare readings that come from lines without kanji are checked against the
// value already recorded; a reading that ever disagrees is only marked as
// conflicted, and Table drops every marked reading once all lines are in.
type TableBuilder struct {
	readings  map[string]int
	kanji     map[string]map[string]int
	conflicts *treeset.Set
	logger    *slog.Logger

	NumLines int
}

func NewTableBuilder(logger *slog.Logger) *TableBuilder {
	return &TableBuilder{
		readings:  map[string]int{},
		kanji:     map[string]map[string]int{},
		conflicts: treeset.NewWithStringComparator(),
		logger:    logging.Or(logger),
	}
}

// Build makes a table from lines in one pass.
func Build(lines []*Line) *Table {
	builder := NewTableBuilder(logging.Discard())
	for _, line := range lines {
		builder.AddLine(line)
	}
	return builder.Table()
}

func (builder *TableBuilder) AddLine(line *Line) {
	builder.NumLines++
	if len(line.Readings) == 0 || len(line.Meta) == 0 {
		return
	}
	accents := line.ReadingAccents()
	if len(accents) == 0 {
		return
	}

	if len(line.Kanji) > 0 {
		for _, ra := range accents {
			if ra.Applicability.IsNone() {
				builder.readings[ra.Reading] = ra.Accent
				continue
			}
			for i, kanji := range line.Kanji {
				if ra.Applicability.Includes(i) {
					builder.putKanji(kanji, ra.Reading, ra.Accent)
				}
			}
		}
		return
	}

	for _, ra := range accents {
		first, ok := builder.readings[ra.Reading]
		if !ok {
			builder.readings[ra.Reading] = ra.Accent
		} else if first != ra.Accent {
			builder.logger.Warn("accent conflict", "reading", ra.Reading, "first", first, "other", ra.Accent)
			builder.conflicts.Add(ra.Reading)
		}
	}
}

func (builder *TableBuilder) putKanji(kanji, reading string, accent int) {
	readings, ok := builder.kanji[kanji]
	if !ok {
		readings = map[string]int{}
		builder.kanji[kanji] = readings
	}
	readings[reading] = accent
}

// BuildFrom adds every record of a line-delimited JSON stream. Blank lines
// are skipped; a line that is not JSON stops the build.
func (builder *TableBuilder) BuildFrom(input io.Reader) error {
	r := lnreader.NewLineNumberReader(input)
	for {
		l, err := r.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if lnreader.IsEmptyLine(l) {
			continue
		}
		var line Line
		if err := json.Unmarshal(l, &line); err != nil {
			return fmt.Errorf("invalid format at line %d: %w", r.NumLine, err)
		}
		builder.AddLine(&line)
	}
	return nil
}

// Conflicts lists the readings that will be left out of the table.
func (builder *TableBuilder) Conflicts() []string {
	ret := make([]string, 0, builder.conflicts.Size())
	for _, v := range builder.conflicts.Values() {
		ret = append(ret, v.(string))
	}
	return ret
}

// Table finalizes the build. The builder is left untouched and may take
// more lines.
func (builder *TableBuilder) Table() *Table {
	t := NewTable()
	for reading, accent := range builder.readings {
		if builder.conflicts.Contains(reading) {
			continue
		}
		t.Readings[reading] = accent
	}
	for kanji, readings := range builder.kanji {
		copied := make(map[string]int, len(readings))
		for reading, accent := range readings {
			copied[reading] = accent
		}
		t.Kanji[kanji] = copied
	}
	return t
}
