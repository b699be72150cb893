package dictionary

import (
	"bytes"
	"encoding/json"
)

// AccentValue is the "a" field of a reading's metadata, which the source
// gives either as a bare integer or as a list of candidate objects.
type AccentValue interface {
	// Position resolves the value to a single downstep position.
	Position() (int, bool)
}

// DirectAccent is an accent given as an integer.
type DirectAccent int

func (a DirectAccent) Position() (int, bool) {
	return int(a), true
}

type Candidate struct {
	I *int `json:"i"`
}

// CandidateAccents is an accent given as a list of candidates, the first
// of which is the preferred one.
type CandidateAccents []Candidate

func (c CandidateAccents) Position() (int, bool) {
	if len(c) == 0 || c[0].I == nil {
		return 0, false
	}
	return *c[0].I, true
}

// ParseAccentValue decodes the "a" field. Absent, null and any other shape
// give false.
func ParseAccentValue(raw json.RawMessage) (AccentValue, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, false
	}
	switch c := raw[0]; {
	case c == '[':
		var candidates CandidateAccents
		if err := json.Unmarshal(raw, &candidates); err != nil {
			return nil, false
		}
		return candidates, true
	case c == '-' || (c >= '0' && c <= '9'):
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, false
		}
		return DirectAccent(n), true
	}
	return nil, false
}
