package goaccent

// AccentLookup finds the accent of a word by its written form and its
// kana. *dictionary.Table implements it.
type AccentLookup interface {
	Lookup(kanji, kana string) (int, bool)
}

// AccentSpans renders the pitch contour of a furigana string, e.g.
// "行[い]く". It reports false when the string has no kana or the word is
// not in table.
func AccentSpans(table AccentLookup, furigana string) (SpanSet, bool) {
	kanji := KanjiForm(furigana)
	kana := KanaForm(furigana)
	if kana == "" {
		return nil, false
	}
	pos, ok := table.Lookup(kanji, kana)
	if !ok {
		return nil, false
	}
	return Render(pos, kana)
}

// AccentMarkup is AccentSpans as HTML.
func AccentMarkup(table AccentLookup, furigana string) (string, bool) {
	spans, ok := AccentSpans(table, furigana)
	if !ok {
		return "", false
	}
	return spans.Markup(), true
}
