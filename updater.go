package goaccent

import (
	"context"
	"log/slog"

	"github.com/msnoigrs/goaccent/collection"
)

type UpdateOutcome int

const (
	// the word has no known accent
	Unknown UpdateOutcome = iota
	// the note already holds the same markup
	Same
	// the note holds other markup, which is left alone
	Different
	// the note had no markup and gets one
	Updated
)

func (o UpdateOutcome) String() string {
	switch o {
	case Unknown:
		return "unknown"
	case Same:
		return "same"
	case Different:
		return "different"
	case Updated:
		return "updated"
	}
	return "invalid"
}

type UpdateStats struct {
	Same      int
	Different int
	Unknown   int
	Updated   int
	// Written is the number of notes saved to the collection; zero on a dry run.
	Written int
}

func (s *UpdateStats) add(o UpdateOutcome) {
	switch o {
	case Unknown:
		s.Unknown++
	case Same:
		s.Same++
	case Different:
		s.Different++
	case Updated:
		s.Updated++
	}
}

// Updater fills the pitch accent field of vocabulary notes.
type Updater struct {
	Table  AccentLookup
	Fields FieldNames
	DryRun bool
	Logger *slog.Logger
}

func NewUpdater(table AccentLookup, logger *slog.Logger) *Updater {
	return &Updater{
		Table:  table,
		Fields: DefaultFieldNames,
		Logger: logger,
	}
}

// UpdateNote decides what to do with one note and, for Updated, sets its
// pitch accent field. It returns the markup computed for the word.
func (u *Updater) UpdateNote(note *collection.Note) (UpdateOutcome, string, error) {
	jp, err := note.Field(u.Fields.Japanese)
	if err != nil {
		return Unknown, "", err
	}
	current, err := note.Field(u.Fields.PitchAccent)
	if err != nil {
		return Unknown, "", err
	}

	markup, ok := AccentMarkup(u.Table, NormalizeField(jp))
	if !ok {
		return Unknown, "", nil
	}
	switch current {
	case "":
		if err := note.SetField(u.Fields.PitchAccent, markup); err != nil {
			return Unknown, "", err
		}
		return Updated, markup, nil
	case markup:
		return Same, markup, nil
	}
	return Different, markup, nil
}

// Run updates every note of notetype in coll.
func (u *Updater) Run(ctx context.Context, coll collection.Collection, notetype string) (UpdateStats, error) {
	var stats UpdateStats
	run := newNoteRun(coll, notetype, u.DryRun, u.Logger)
	written, err := run.each(ctx, func(note *collection.Note) (bool, error) {
		outcome, markup, err := u.UpdateNote(note)
		if err != nil {
			return false, err
		}
		stats.add(outcome)

		jp, _ := note.Field(u.Fields.Japanese)
		switch outcome {
		case Unknown:
			run.logger.Debug("unknown accent", "note", note.ID, "word", jp)
		case Same:
			run.logger.Debug("same accent", "note", note.ID, "word", jp)
		case Different:
			current, _ := note.Field(u.Fields.PitchAccent)
			run.logger.Warn("accent difference", "note", note.ID, "word", jp, "current", current, "new", markup)
		case Updated:
			run.logger.Info("new accent", "note", note.ID, "word", jp, "accent", markup)
		}
		return outcome == Updated, nil
	})
	stats.Written = written
	return stats, err
}
