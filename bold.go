package goaccent

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/msnoigrs/goaccent/collection"
)

type BoldOutcome int

const (
	NoExamples BoldOutcome = iota
	AlreadyBold
	BoldedKanji
	BoldedKana
	BoldedFurigana
	NotInExamples
)

func (o BoldOutcome) String() string {
	switch o {
	case NoExamples:
		return "no examples"
	case AlreadyBold:
		return "already bold"
	case BoldedKanji:
		return "bolded kanji"
	case BoldedKana:
		return "bolded kana"
	case BoldedFurigana:
		return "bolded furigana"
	case NotInExamples:
		return "not in examples"
	}
	return "invalid"
}

// Bolded reports whether the examples were changed.
func (o BoldOutcome) Bolded() bool {
	return o == BoldedKanji || o == BoldedKana || o == BoldedFurigana
}

var leadingTildeRe = regexp.MustCompile(`^〜 ?`)

// BoldExamples wraps every occurrence of word in examples in <b></b>.
// Spaces around an occurrence are absorbed by the tags, since they only
// delimit furigana units. A word that does not occur as written is tried
// again in its kana form. A leading 〜 on word is ignored.
func BoldExamples(word, examples string, kanaOnly bool) (string, BoldOutcome) {
	word = leadingTildeRe.ReplaceAllString(word, "")
	if examples == "" {
		return examples, NoExamples
	}
	if strings.Contains(examples, "<b>") {
		return examples, AlreadyBold
	}
	if word != "" && strings.Contains(examples, word) {
		outcome := BoldedKanji
		if kanaOnly {
			outcome = BoldedKana
		}
		return boldAll(examples, word), outcome
	}
	if kana := KanaForm(word); kana != "" && strings.Contains(examples, kana) {
		return boldAll(examples, kana), BoldedFurigana
	}
	return examples, NotInExamples
}

func boldAll(s, word string) string {
	re := regexp.MustCompile(` *(` + regexp.QuoteMeta(word) + `) *`)
	return re.ReplaceAllString(s, "<b>${1}</b>")
}

type BoldStats struct {
	Count         int
	NoExamples    int
	AlreadyBold   int
	NotInExamples int
	Updated       int
	Written       int
}

// Bolder bolds the vocabulary word in the examples of its note.
type Bolder struct {
	Fields FieldNames
	DryRun bool
	Logger *slog.Logger
}

func NewBolder(logger *slog.Logger) *Bolder {
	return &Bolder{
		Fields: DefaultFieldNames,
		Logger: logger,
	}
}

// BoldNote updates the examples field of note unless the outcome says
// otherwise.
func (b *Bolder) BoldNote(note *collection.Note) (BoldOutcome, error) {
	jp, err := note.Field(b.Fields.Japanese)
	if err != nil {
		return NotInExamples, err
	}
	examples, err := note.Field(b.Fields.Examples)
	if err != nil {
		return NotInExamples, err
	}
	kanaOnly, err := note.Field(b.Fields.KanaOnly)
	if err != nil {
		return NotInExamples, err
	}

	bolded, outcome := BoldExamples(jp, examples, kanaOnly != "")
	if outcome.Bolded() {
		if err := note.SetField(b.Fields.Examples, bolded); err != nil {
			return NotInExamples, err
		}
	}
	return outcome, nil
}

func (b *Bolder) Run(ctx context.Context, coll collection.Collection, notetype string) (BoldStats, error) {
	var stats BoldStats
	run := newNoteRun(coll, notetype, b.DryRun, b.Logger)
	written, err := run.each(ctx, func(note *collection.Note) (bool, error) {
		stats.Count++
		outcome, err := b.BoldNote(note)
		if err != nil {
			return false, err
		}

		jp, _ := note.Field(b.Fields.Japanese)
		switch outcome {
		case NoExamples:
			stats.NoExamples++
			run.logger.Debug(outcome.String(), "note", note.ID, "word", jp)
		case AlreadyBold:
			stats.AlreadyBold++
			run.logger.Debug(outcome.String(), "note", note.ID, "word", jp)
		case NotInExamples:
			stats.NotInExamples++
			run.logger.Warn(outcome.String(), "note", note.ID, "word", jp)
		default:
			stats.Updated++
			examples, _ := note.Field(b.Fields.Examples)
			run.logger.Info(outcome.String(), "note", note.ID, "word", jp, "examples", examples)
		}
		return outcome.Bolded(), nil
	})
	stats.Written = written
	return stats, err
}
