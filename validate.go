package goaccent

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/msnoigrs/goaccent/collection"
)

var kanjiRe = regexp.MustCompile(`[\x{3400}-\x{4DBF}\x{4E00}-\x{9FFF}\x{F900}-\x{FAFF}]`)

// HasKanji reports whether s contains a CJK ideograph.
func HasKanji(s string) bool {
	return kanjiRe.MatchString(s)
}

var hiraganaRe = regexp.MustCompile(`[\x{3040}-\x{309F}]`)

var fieldSpaces = []string{" ", "&nbsp;"}

func hasOuterSpace(s string) bool {
	for _, sp := range fieldSpaces {
		if strings.HasPrefix(s, sp) || strings.HasSuffix(s, sp) {
			return true
		}
	}
	return false
}

func hasTrailingSpace(s string) bool {
	for _, sp := range fieldSpaces {
		if strings.HasSuffix(s, sp) {
			return true
		}
	}
	return false
}

func missingFurigana(value string) bool {
	return HasKanji(value) && !strings.Contains(value, "[")
}

// Problem is a mistake found in a note.
type Problem struct {
	NoteID int64
	// Word is the Japanese and English of the note, for display.
	Word    string
	Field   string
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Word, p.Message)
}

type ValidationReport struct {
	Notes             int
	NotesWithProblems int
	Problems          []Problem
}

// Validator checks vocabulary notes for common mistakes.
type Validator struct {
	Fields FieldNames
}

func NewValidator() *Validator {
	return &Validator{Fields: DefaultFieldNames}
}

func noteFields(note *collection.Note, names ...string) (map[string]string, error) {
	ret := make(map[string]string, len(names))
	for _, name := range names {
		value, err := note.Field(name)
		if err != nil {
			return nil, err
		}
		ret[name] = value
	}
	return ret, nil
}

// ValidateNote lists the problems of one note.
func (v *Validator) ValidateNote(note *collection.Note) ([]Problem, error) {
	f := v.Fields
	fields, err := noteFields(note, f.Japanese, f.English, f.PartOfSpeech, f.Examples, f.Notes, f.KanaOnly)
	if err != nil {
		return nil, err
	}
	jp := fields[f.Japanese]
	word := fmt.Sprintf("%s (%s)", jp, strings.ReplaceAll(fields[f.English], "<br>", " "))

	problems := &problemList{noteID: note.ID, word: word}
	add := problems.add

	for _, name := range []string{f.Japanese, f.English, f.PartOfSpeech} {
		if fields[name] == "" {
			add(name, "'%s' missing", name)
		}
	}

	if hasOuterSpace(jp) {
		add(f.Japanese, "leading/trailing space: %q", jp)
	}

	for _, name := range []string{f.Japanese, f.Examples, f.Notes} {
		if value := fields[name]; missingFurigana(value) {
			add(name, "no furigana in %s: %q", name, value)
		}
	}

	kanaOnly := fields[f.KanaOnly] != ""
	hasFurigana := strings.Contains(jp, "[")
	if kanaOnly && hasFurigana {
		add(f.KanaOnly, "marked %q but furigana in %q", f.KanaOnly, jp)
	}
	if !kanaOnly && !hasFurigana {
		add(f.KanaOnly, "not marked %q but no furigana in %q", f.KanaOnly, jp)
	}
	return problems.list, nil
}

// Run validates every note of notetype in coll.
func (v *Validator) Run(ctx context.Context, coll collection.Collection, notetype string) (*ValidationReport, error) {
	return validateNotes(ctx, coll, notetype, v.ValidateNote)
}

type problemList struct {
	noteID int64
	word   string
	list   []Problem
}

func (l *problemList) add(field, format string, args ...interface{}) {
	l.list = append(l.list, Problem{
		NoteID:  l.noteID,
		Word:    l.word,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// KanjiValidator checks kanji notes for common mistakes.
type KanjiValidator struct {
	Fields KanjiFieldNames
}

func NewKanjiValidator() *KanjiValidator {
	return &KanjiValidator{Fields: DefaultKanjiFieldNames}
}

// ValidateNote lists the problems of one kanji note.
func (v *KanjiValidator) ValidateNote(note *collection.Note) ([]Problem, error) {
	f := v.Fields
	fields, err := noteFields(note, f.Kanji, f.Meaning, f.KunYomi, f.OnYomi, f.Examples, f.EnglishExamples, f.Notes, f.Parts)
	if err != nil {
		return nil, err
	}
	kanji := fields[f.Kanji]
	problems := &problemList{noteID: note.ID, word: fmt.Sprintf("%s (%s)", kanji, fields[f.Meaning])}
	add := problems.add

	for _, name := range []string{f.Kanji, f.Meaning, f.Examples, f.EnglishExamples} {
		if fields[name] == "" {
			add(name, "'%s' missing", name)
		}
	}

	onYomi := fields[f.OnYomi]
	if fields[f.KunYomi] == "" && onYomi == "" {
		add(f.KunYomi, "missing both %s and %s", f.KunYomi, f.OnYomi)
	}
	// on'yomi are written in katakana
	if hiraganaRe.MatchString(onYomi) {
		add(f.OnYomi, "hiragana in %s: %q", f.OnYomi, onYomi)
	}

	if hasOuterSpace(kanji) {
		add(f.Kanji, "leading/trailing space: %q", kanji)
	}

	for _, line := range strings.Split(fields[f.Examples], exampleSeparator) {
		if hasTrailingSpace(line) {
			add(f.Examples, "trailing space in example: %q", line)
		}
	}

	for _, name := range []string{f.Examples, f.Notes} {
		if value := fields[name]; missingFurigana(value) {
			add(name, "no furigana in %s: %q", name, value)
		}
	}

	// the radical is the bold part
	if parts := fields[f.Parts]; parts != "" && !strings.Contains(parts, "<b>") {
		add(f.Parts, "no radical indicated in %q", parts)
	}
	return problems.list, nil
}

// Run validates every note of notetype in coll.
func (v *KanjiValidator) Run(ctx context.Context, coll collection.Collection, notetype string) (*ValidationReport, error) {
	return validateNotes(ctx, coll, notetype, v.ValidateNote)
}

func validateNotes(ctx context.Context, coll collection.Collection, notetype string, validate func(*collection.Note) ([]Problem, error)) (*ValidationReport, error) {
	notes, err := coll.FindNotes(ctx, notetype)
	if err != nil {
		return nil, err
	}
	report := &ValidationReport{}
	for _, note := range notes {
		report.Notes++
		problems, err := validate(note)
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", note.ID, err)
		}
		if len(problems) > 0 {
			report.NotesWithProblems++
			report.Problems = append(report.Problems, problems...)
		}
	}
	return report, nil
}
