package goaccent

import (
	"reflect"
	"testing"
)

func TestSplitMorae(t *testing.T) {
	tests := []struct {
		kana string
		want []string
	}{
		{"しゃけ", []string{"しゃ", "け"}},
		{"とうきょう", []string{"と", "う", "きょ", "う"}},
		{"いっぱい", []string{"い", "っ", "ぱ", "い"}},
		{"トウキョウ", []string{"ト", "ウ", "キョ", "ウ"}},
		{"ねっちゅうしょう", []string{"ね", "っ", "ちゅ", "う", "しょ", "う"}},
		{"ファイル", []string{"ファ", "イ", "ル"}},
		{"け", []string{"け"}},
		{"", []string{}},
		// a leading small kana has nothing to attach to
		{"ゃく", []string{"ゃ", "く"}},
		{"ょ", []string{"ょ"}},
		{"ゃゅ", []string{"ゃゅ"}},
	}

	for _, tt := range tests {
		t.Run(tt.kana, func(t *testing.T) {
			got := SplitMorae(tt.kana)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitMorae(%q) = %q, want %q", tt.kana, got, tt.want)
			}
			if JoinMorae(got) != tt.kana {
				t.Errorf("JoinMorae(SplitMorae(%q)) = %q", tt.kana, JoinMorae(got))
			}
			if n := MoraLen(tt.kana); n != len(tt.want) {
				t.Errorf("MoraLen(%q) = %d, want %d", tt.kana, n, len(tt.want))
			}
		})
	}
}

func TestMoraSubstring(t *testing.T) {
	tests := []struct {
		kana       string
		start, end int
		want       string
	}{
		{"しゃけ", 0, 1, "しゃ"},
		{"しゃけ", -2, 1, "しゃ"},
		{"しゃけ", 0, 2, "しゃけ"},
		{"しゃけ", 0, 3, "しゃけ"},
		{"しゃけ", 0, ToEnd, "しゃけ"},
		{"しゃけ", -2, ToEnd, "しゃけ"},
		{"しゃけ", 1, ToEnd, "け"},
		{"しゃけ", 1, 5, "け"},
		{"しゃけ", 1, 1, ""},
		{"しゃけ", 0, 0, ""},
		{"しゃけ", 2, ToEnd, ""},
		{"しゃけ", 2, 1, ""},
		{"しゃけ", -10, -1, "しゃ"},
		{"しゃ", 1, ToEnd, ""},
		{"しゃ", 0, 1, "しゃ"},
		{"とうきょう", 1, 3, "うきょ"},
		{"", 0, ToEnd, ""},
		{"", -1, 3, ""},
	}

	for _, tt := range tests {
		if got := MoraSubstring(tt.kana, tt.start, tt.end); got != tt.want {
			t.Errorf("MoraSubstring(%q, %d, %d) = %q, want %q", tt.kana, tt.start, tt.end, got, tt.want)
		}
	}
}

func TestMoraSubstringWholeString(t *testing.T) {
	for _, kana := range []string{"しゃけ", "とうきょう", "ねっちゅうしょう", "ゃく", "あ"} {
		if got := MoraSubstring(kana, 0, MoraLen(kana)); got != kana {
			t.Errorf("MoraSubstring(%q, 0, MoraLen) = %q", kana, got)
		}
	}
}

func TestIsNonMoraic(t *testing.T) {
	if !IsNonMoraic('ゃ') || !IsNonMoraic('ヮ') {
		t.Error("small ya/wa must be non-moraic")
	}
	if IsNonMoraic('っ') || IsNonMoraic('ー') || IsNonMoraic('や') {
		t.Error("sokuon, long vowel mark and full-size kana are moraic")
	}
}
