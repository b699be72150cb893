package goaccent

import (
	"strings"
)

// NoAccent marks an unknown accent position.
const NoAccent = -1

// Style is the CSS class of a span; it names the pitch movement within it.
type Style string

const (
	StyleHigh    Style = "h"
	StyleLow     Style = "l"
	StyleLowHigh Style = "l-h"
	StyleHighLow Style = "h-l"
)

type Span struct {
	Style Style
	Text  string
}

// SpanSet is a rendered pitch contour. The span texts concatenate to the
// rendered kana.
type SpanSet []Span

func (s SpanSet) Text() string {
	var b strings.Builder
	for _, span := range s {
		b.WriteString(span.Text)
	}
	return b.String()
}

// Markup renders the spans as `<span class="STYLE">text</span>` elements.
// Text is written as is, the same as the note fields that hold it.
func (s SpanSet) Markup() string {
	var b strings.Builder
	for _, span := range s {
		b.WriteString(`<span class="`)
		b.WriteString(string(span.Style))
		b.WriteString(`">`)
		b.WriteString(span.Text)
		b.WriteString(`</span>`)
	}
	return b.String()
}

// Render splits kana into spans describing the pitch contour for a
// downstep after mora pos:
//
//	0     heiban     LHHH  l-h, h
//	1     atamadaka  HLLL  h-l, l
//	2..n  nakadaka   LHHL  l-h, h-l, l
//	n     odaka      LHHH  l-h, h-l   (the drop follows the word)
//
// It reports false for empty kana or an unknown position.
func Render(pos int, kana string) (SpanSet, bool) {
	if kana == "" || pos < 0 {
		return nil, false
	}

	morae := SplitMorae(kana)
	n := len(morae)
	head := morae[0]
	rest := func(from, to int) string {
		b, e := sliceBounds(n, from, to)
		return JoinMorae(morae[b:e])
	}

	spans := SpanSet{}
	// a one-mora word downstepping after itself has no high-to-low run
	add := func(style Style, text string) {
		if text != "" {
			spans = append(spans, Span{Style: style, Text: text})
		}
	}

	switch pos {
	case 0:
		if n > 1 {
			add(StyleLowHigh, head)
			add(StyleHigh, rest(1, ToEnd))
		} else {
			add(StyleHigh, head)
		}
	case 1:
		add(StyleHighLow, head)
		add(StyleLow, rest(1, ToEnd))
	default:
		add(StyleLowHigh, head)
		add(StyleHighLow, rest(1, pos))
		if pos < n {
			add(StyleLow, rest(pos, ToEnd))
		}
	}
	return spans, true
}
