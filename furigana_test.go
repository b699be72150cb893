package goaccent

import (
	"reflect"
	"testing"
)

func TestKanjiKanaForm(t *testing.T) {
	tests := []struct {
		in    string
		kanji string
		kana  string
	}{
		{"食べ物", "食べ物", "食べ物"},
		{"たべもの", "たべもの", "たべもの"},
		{"食べ物[たべもの]", "食べ物", "たべもの"},
		{"食[た]べ 物[もの]", "食べ物", "たべもの"},
		{"お 茶[ちゃ]", "お茶", "おちゃ"},
		{"１[いち] 月[がつ]", "１月", "いちがつ"},
		{"行[い]く", "行く", "いく"},
		// only the one delimiting space goes
		{"お  茶[ちゃ]", "お 茶", "お ちゃ"},
		// malformed units pass through
		{"食べ物[]", "食べ物[]", "食べ物[]"},
		{"食べ物[たべもの", "食べ物[たべもの", "食べ物[たべもの"},
		{"[たべもの]", "[たべもの]", "[たべもの]"},
		{"<b>本[ほん]</b>", "<b>本</b>", "<b>ほん</b>"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := KanjiForm(tt.in); got != tt.kanji {
				t.Errorf("KanjiForm(%q) = %q, want %q", tt.in, got, tt.kanji)
			}
			if got := KanaForm(tt.in); got != tt.kana {
				t.Errorf("KanaForm(%q) = %q, want %q", tt.in, got, tt.kana)
			}

			tokens := ParseFurigana(tt.in)
			if got := JoinKanjiForm(tokens); got != tt.kanji {
				t.Errorf("JoinKanjiForm(ParseFurigana(%q)) = %q, want %q", tt.in, got, tt.kanji)
			}
			if got := JoinKanaForm(tokens); got != tt.kana {
				t.Errorf("JoinKanaForm(ParseFurigana(%q)) = %q, want %q", tt.in, got, tt.kana)
			}
		})
	}
}

func TestParseFurigana(t *testing.T) {
	got := ParseFurigana("お 茶[ちゃ]を 飲[の]む")
	want := []FuriganaToken{
		{Surface: "お"},
		{Surface: "茶", Reading: "ちゃ"},
		{Surface: "を"},
		{Surface: "飲", Reading: "の"},
		{Surface: "む"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseFurigana = %#v, want %#v", got, want)
	}
	if got[0].IsAnnotated() || !got[1].IsAnnotated() {
		t.Error("IsAnnotated mismatch")
	}
	if len(ParseFurigana("")) != 0 {
		t.Error("empty input must give no tokens")
	}
}
