// Package dictionary builds the accent table from a line-delimited JSON
// words file and persists it.
package dictionary

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/zeebo/blake3"

	"github.com/msnoigrs/goaccent/internal/logging"
)

var ErrInvalidTable = errors.New("invalid accent table")

// Table maps words to accent positions. Readings holds kana words that are
// looked up on their own; Kanji holds, per written form, the accents of its
// readings.
//
// A table is built once and only read afterwards, so it may be shared
// between goroutines.
type Table struct {
	Readings map[string]int
	Kanji    map[string]map[string]int
}

func NewTable() *Table {
	return &Table{
		Readings: map[string]int{},
		Kanji:    map[string]map[string]int{},
	}
}

// Lookup finds the accent of a word. A word written with kanji is only
// looked up under that spelling, so a homophone written differently never
// lends it its accent; a kana word (kanji == kana) uses the bare readings.
func (t *Table) Lookup(kanji, kana string) (int, bool) {
	if kanji != kana {
		readings, ok := t.Kanji[kanji]
		if !ok {
			return 0, false
		}
		accent, ok := readings[kana]
		return accent, ok
	}
	accent, ok := t.Readings[kana]
	return accent, ok
}

func (t *Table) NumReadings() int {
	return len(t.Readings)
}

// NumKanjiReadings counts the (kanji, reading) pairs.
func (t *Table) NumKanjiReadings() int {
	n := 0
	for _, readings := range t.Kanji {
		n += len(readings)
	}
	return n
}

// Entry is one accent of a table. Kanji is empty for bare readings.
type Entry struct {
	Kanji   string
	Reading string
	Accent  int
}

type entryKey struct {
	key     string
	reading string
}

func compareEntryKeys(a, b interface{}) int {
	ka := a.(entryKey)
	kb := b.(entryKey)
	if c := strings.Compare(ka.key, kb.key); c != 0 {
		return c
	}
	return strings.Compare(ka.reading, kb.reading)
}

// Entries lists every accent ordered by written form, then reading. A bare
// reading sorts with the written forms, ahead of a kanji entry of the same
// key.
func (t *Table) Entries() []Entry {
	tree := treemap.NewWith(compareEntryKeys)
	for reading, accent := range t.Readings {
		tree.Put(entryKey{key: reading}, Entry{Reading: reading, Accent: accent})
	}
	for kanji, readings := range t.Kanji {
		for reading, accent := range readings {
			tree.Put(entryKey{key: kanji, reading: reading}, Entry{Kanji: kanji, Reading: reading, Accent: accent})
		}
	}
	ret := make([]Entry, 0, tree.Size())
	it := tree.Iterator()
	for it.Next() {
		ret = append(ret, it.Value().(Entry))
	}
	return ret
}

// Shadowed lists, sorted, the bare readings that are also written forms.
// The encoded table keeps only the written form of such a key.
func (t *Table) Shadowed() []string {
	var ret []string
	for reading := range t.Readings {
		if _, ok := t.Kanji[reading]; ok {
			ret = append(ret, reading)
		}
	}
	sort.Strings(ret)
	return ret
}

// MarshalJSON writes a single object: bare readings map to integers and
// written forms to objects of reading -> integer. When a key is both, the
// written form is kept.
func (t *Table) MarshalJSON() ([]byte, error) {
	obj := make(map[string]interface{}, len(t.Readings)+len(t.Kanji))
	for reading, accent := range t.Readings {
		obj[reading] = accent
	}
	for kanji, readings := range t.Kanji {
		obj[kanji] = readings
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(obj); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (t *Table) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTable, err)
	}
	readings := make(map[string]int)
	kanji := make(map[string]map[string]int)
	for key, raw := range obj {
		raw = bytes.TrimSpace(raw)
		if len(raw) > 0 && raw[0] == '{' {
			var nested map[string]int
			if err := json.Unmarshal(raw, &nested); err != nil {
				return fmt.Errorf("%w: %s: %s", ErrInvalidTable, key, err)
			}
			kanji[key] = nested
			continue
		}
		var accent int
		if err := json.Unmarshal(raw, &accent); err != nil || bytes.Equal(raw, []byte("null")) {
			return fmt.Errorf("%w: %s: not an accent position: %s", ErrInvalidTable, key, raw)
		}
		readings[key] = accent
	}
	t.Readings = readings
	t.Kanji = kanji
	return nil
}

// WriteTo writes the table as indented JSON with sorted keys.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	compact, err := t.MarshalJSON()
	if err != nil {
		return 0, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "    "); err != nil {
		return 0, err
	}
	buf.WriteByte('\n')
	return buf.WriteTo(w)
}

func ReadTable(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	t := NewTable()
	if err := t.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return t, nil
}

func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// SaveTable replaces the file at path with t. Bare readings lost to a
// written form of the same key are logged.
func SaveTable(path string, t *Table, logger *slog.Logger) error {
	logger = logging.Or(logger)
	for _, key := range t.Shadowed() {
		logger.Warn("bare reading dropped, key is also a written form",
			"key", key, "accent", t.Readings[key], "path", path)
	}
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := t.WriteTo(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// Fingerprint is the hex BLAKE3-256 digest of the compact encoding, which
// is the same for equal tables.
func (t *Table) Fingerprint() (string, error) {
	data, err := t.MarshalJSON()
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
