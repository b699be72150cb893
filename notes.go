package goaccent

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/msnoigrs/goaccent/collection"
	"github.com/msnoigrs/goaccent/internal/logging"
)

// FieldNames names the fields of a vocabulary note.
type FieldNames struct {
	Japanese     string
	PitchAccent  string
	Examples     string
	KanaOnly     string
	English      string
	PartOfSpeech string
	Notes        string
}

var DefaultFieldNames = FieldNames{
	Japanese:     "Japanese",
	PitchAccent:  "Pitch accent",
	Examples:     "Japanese examples",
	KanaOnly:     "Kana only",
	English:      "English",
	PartOfSpeech: "Part of speech",
	Notes:        "Notes",
}

// KanjiFieldNames names the fields of a kanji note.
type KanjiFieldNames struct {
	Kanji           string
	Meaning         string
	KunYomi         string
	OnYomi          string
	Examples        string
	EnglishExamples string
	Notes           string
	Parts           string
}

var DefaultKanjiFieldNames = KanjiFieldNames{
	Kanji:           "Kanji",
	Meaning:         "Meaning",
	KunYomi:         "Kun-yomi",
	OnYomi:          "On-yomi",
	Examples:        "Japanese examples",
	EnglishExamples: "English examples",
	Notes:           "Notes",
	Parts:           "Parts",
}

// noteRun visits every note of a note type and writes back the ones visit
// reports as changed, all at once, unless dryRun is set.
type noteRun struct {
	coll     collection.Collection
	notetype string
	dryRun   bool
	logger   *slog.Logger
}

func newNoteRun(coll collection.Collection, notetype string, dryRun bool, logger *slog.Logger) *noteRun {
	logger = logging.Or(logger).With("run", uuid.NewString(), "notetype", notetype)
	return &noteRun{
		coll:     coll,
		notetype: notetype,
		dryRun:   dryRun,
		logger:   logger,
	}
}

func (r *noteRun) each(ctx context.Context, visit func(note *collection.Note) (bool, error)) (int, error) {
	notes, err := r.coll.FindNotes(ctx, r.notetype)
	if err != nil {
		return 0, err
	}
	r.logger.Debug("found notes", "count", len(notes))

	var updates []*collection.Note
	for _, note := range notes {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		changed, err := visit(note)
		if err != nil {
			return 0, err
		}
		if changed {
			updates = append(updates, note)
		}
	}

	if len(updates) == 0 {
		return 0, nil
	}
	if r.dryRun {
		r.logger.Info("dry run, not updating notes", "count", len(updates))
		return 0, nil
	}
	r.logger.Info("updating notes", "count", len(updates))
	if err := r.coll.UpdateNotes(ctx, updates); err != nil {
		return 0, err
	}
	return len(updates), nil
}
