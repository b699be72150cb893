package goaccent

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// FieldNormalizer rewrites note field text before it is parsed: listed
// strings are replaced first, then the result is NFC normalized so that
// decomposed kana match the dictionary's precomposed ones.
type FieldNormalizer struct {
	keyLengths     map[rune]int
	replaceStrings map[string]string
}

func NewFieldNormalizer() *FieldNormalizer {
	return &FieldNormalizer{
		keyLengths:     map[rune]int{},
		replaceStrings: map[string]string{},
	}
}

// AddReplacement registers a rewrite of from to to. Overlapping keys are
// resolved longest first.
func (n *FieldNormalizer) AddReplacement(from, to string) error {
	if from == "" {
		return fmt.Errorf("empty replacement key")
	}
	if _, ok := n.replaceStrings[from]; ok {
		return fmt.Errorf("%s is already defined", from)
	}
	first, _ := utf8.DecodeRuneInString(from)
	if l := len(from); n.keyLengths[first] < l {
		// store the longest key length
		n.keyLengths[first] = l
	}
	n.replaceStrings[from] = to
	return nil
}

func (n *FieldNormalizer) Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
TEXTLOOP:
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		for l := min(n.keyLengths[r], len(s)-i); l > 0; l-- {
			if replace, ok := n.replaceStrings[s[i:i+l]]; ok {
				b.WriteString(replace)
				i += l
				continue TEXTLOOP
			}
		}
		b.WriteString(s[i : i+size])
		i += size
	}
	return norm.NFC.String(b.String())
}

var defaultNormalizer = func() *FieldNormalizer {
	n := NewFieldNormalizer()
	n.AddReplacement("&nbsp;", " ")
	return n
}()

// NormalizeField turns "&nbsp;" into a space and NFC normalizes s.
func NormalizeField(s string) string {
	return defaultNormalizer.Normalize(s)
}
