package dictionary

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
)

// Line is one record of the words file. Only the fields that carry accent
// information are decoded.
type Line struct {
	Kanji    []string          `json:"k"`
	Readings []string          `json:"r"`
	Meta     []json.RawMessage `json:"rm"`
}

type readingMeta struct {
	A   json.RawMessage `json:"a"`
	App *int            `json:"app"`
}

// ReadingAccent is the resolved accent of one reading of a line.
type ReadingAccent struct {
	Reading       string
	Accent        int
	Applicability Applicability
}

// ReadingAccents pairs readings with their metadata by position. Readings
// without an object at their position, or whose accent cannot be resolved,
// are left out. If a reading occurs twice the later metadata wins, the
// first occurrence keeps its place in the result.
func (l *Line) ReadingAccents() []ReadingAccent {
	var ret []ReadingAccent
	pos := map[string]int{}
	for i, reading := range l.Readings {
		if i >= len(l.Meta) {
			break
		}
		raw := bytes.TrimSpace(l.Meta[i])
		if len(raw) == 0 || raw[0] != '{' {
			continue
		}
		var meta readingMeta
		if err := json.Unmarshal(raw, &meta); err != nil {
			continue
		}
		app := ParseApplicability(meta.App)

		j, seen := pos[reading]
		if seen {
			ret[j].Applicability = app
		}

		value, ok := ParseAccentValue(meta.A)
		if !ok {
			continue
		}
		accent, ok := value.Position()
		if !ok {
			continue
		}
		if seen {
			ret[j].Accent = accent
			continue
		}
		pos[reading] = len(ret)
		ret = append(ret, ReadingAccent{
			Reading:       reading,
			Accent:        accent,
			Applicability: app,
		})
	}
	return ret
}

// OpenSource opens a words file, decompressing .xz and .gz files.
func OpenSource(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(path, ".xz"):
		xzr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		return &source{Reader: xzr, file: f}, nil
	case strings.HasSuffix(path, ".gz"):
		gzr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		return &source{Reader: gzr, file: f, decompressor: gzr}, nil
	}
	return f, nil
}

type source struct {
	io.Reader
	file         *os.File
	decompressor io.Closer
}

func (s *source) Close() error {
	if s.decompressor != nil {
		s.decompressor.Close()
	}
	return s.file.Close()
}
