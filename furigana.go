// Package goaccent renders Japanese pitch accents for words written in
// furigana notation and keeps the vocabulary notes of a collection
// annotated with them.
package goaccent

import (
	"regexp"
	"strings"
)

// An annotated unit is `SURFACE[READING]`, optionally preceded by the single
// space that separates it from earlier text. The surface may be any run of
// characters other than space, '>' and '[' (so full-width digits and symbols
// can carry readings too).
var furiganaRe = regexp.MustCompile(` ?(?P<surface>[^ >\[]+?)\[(?P<reading>[^\]]+?)\]`)

// FuriganaToken is one unit of a furigana string. Plain text has an empty
// Reading.
type FuriganaToken struct {
	Surface string
	Reading string
}

func (t FuriganaToken) IsAnnotated() bool {
	return t.Reading != ""
}

// Kana returns the pronunciation of the token.
func (t FuriganaToken) Kana() string {
	if t.IsAnnotated() {
		return t.Reading
	}
	return t.Surface
}

// ParseFurigana splits s into plain runs and annotated units. The delimiting
// space before an annotated unit is dropped.
func ParseFurigana(s string) []FuriganaToken {
	tokens := []FuriganaToken{}
	last := 0
	for _, m := range furiganaRe.FindAllStringSubmatchIndex(s, -1) {
		if m[0] > last {
			tokens = append(tokens, FuriganaToken{Surface: s[last:m[0]]})
		}
		tokens = append(tokens, FuriganaToken{
			Surface: s[m[2]:m[3]],
			Reading: s[m[4]:m[5]],
		})
		last = m[1]
	}
	if last < len(s) {
		tokens = append(tokens, FuriganaToken{Surface: s[last:]})
	}
	return tokens
}

// KanjiForm replaces every annotated unit with its surface.
func KanjiForm(furigana string) string {
	return furiganaRe.ReplaceAllString(furigana, "${surface}")
}

// KanaForm replaces every annotated unit with its reading.
func KanaForm(furigana string) string {
	return furiganaRe.ReplaceAllString(furigana, "${reading}")
}

func JoinKanjiForm(tokens []FuriganaToken) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Surface)
	}
	return b.String()
}

func JoinKanaForm(tokens []FuriganaToken) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Kana())
	}
	return b.String()
}
