package goaccent

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/msnoigrs/goaccent/collection"
	"github.com/msnoigrs/goaccent/internal/logging"
)

// exampleSeparator separates the lines of an examples field.
const exampleSeparator = "<br>"

// a na-adjective or suru verb example is entered as its stem
var exampleSuffixRe = regexp.MustCompile(`\](な|する)$`)

// ExampleWord reduces a kanji example to the word its vocabulary note
// would be written as. The "*" marks and a な or する following the
// furigana are dropped.
func ExampleWord(example string) string {
	word := strings.TrimSpace(example)
	word = strings.ReplaceAll(word, "*", "")
	return exampleSuffixRe.ReplaceAllString(word, "]")
}

// Example is one example word of a kanji note.
type Example struct {
	NoteID int64
	// Note is the position of the kanji note, from 1.
	Note int
	// Number is the position of the example in its note, from 1.
	Number   int
	Japanese string
	English  string
}

// Added is when the kanji note was created; note ids are creation times in
// milliseconds.
func (e Example) Added() time.Time {
	return time.Unix(e.NoteID/1000, 0)
}

type MissingExamplesReport struct {
	KanjiNotes int
	Examples   int
	// Mismatched lists the kanji notes whose Japanese and English examples
	// have different line counts. Their examples are not checked.
	Mismatched []int64
	Missing    []Example
}

// ExampleFinder lists the example words of kanji notes that have no
// vocabulary note yet.
type ExampleFinder struct {
	KanjiFields KanjiFieldNames
	Logger      *slog.Logger
}

func NewExampleFinder(logger *slog.Logger) *ExampleFinder {
	return &ExampleFinder{
		KanjiFields: DefaultKanjiFieldNames,
		Logger:      logger,
	}
}

// Run compares the examples of kanjiNotetype notes with the sort fields of
// vocabNotetype notes.
func (f *ExampleFinder) Run(ctx context.Context, coll collection.Collection, kanjiNotetype, vocabNotetype string) (*MissingExamplesReport, error) {
	logger := logging.Or(f.Logger).With("notetype", kanjiNotetype)

	vocab, err := coll.FindNotes(ctx, vocabNotetype)
	if err != nil {
		return nil, err
	}
	words := hashset.New()
	for _, note := range vocab {
		words.Add(note.SortField())
	}

	kanji, err := coll.FindNotes(ctx, kanjiNotetype)
	if err != nil {
		return nil, err
	}
	report := &MissingExamplesReport{}
	for i, note := range kanji {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.KanjiNotes++
		jp, err := note.Field(f.KanjiFields.Examples)
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", note.ID, err)
		}
		en, err := note.Field(f.KanjiFields.EnglishExamples)
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", note.ID, err)
		}
		jpLines := strings.Split(jp, exampleSeparator)
		enLines := strings.Split(en, exampleSeparator)
		if len(jpLines) != len(enLines) {
			logger.Warn("examples mismatch", "note", note.ID, "japanese", jpLines, "english", enLines)
			report.Mismatched = append(report.Mismatched, note.ID)
			continue
		}
		for n, line := range jpLines {
			word := ExampleWord(line)
			if word == "" {
				continue
			}
			report.Examples++
			if words.Contains(word) {
				continue
			}
			report.Missing = append(report.Missing, Example{
				NoteID:   note.ID,
				Note:     i + 1,
				Number:   n + 1,
				Japanese: word,
				English:  strings.TrimSpace(enLines[n]),
			})
		}
	}
	logger.Debug("checked examples", "notes", report.KanjiNotes, "examples", report.Examples, "missing", len(report.Missing))
	return report, nil
}
