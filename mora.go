package goaccent

import (
	"math"
	"strings"
)

// ToEnd as an end index selects every mora up to the end of the string.
const ToEnd = math.MaxInt

// small kana that attach to the preceding kana instead of forming a mora
var nonMoraicKana = map[rune]bool{
	'ぁ': true, 'ぃ': true, 'ぅ': true, 'ぇ': true, 'ぉ': true,
	'ゃ': true, 'ゅ': true, 'ょ': true, 'ゎ': true,
	'ァ': true, 'ィ': true, 'ゥ': true, 'ェ': true, 'ォ': true,
	'ャ': true, 'ュ': true, 'ョ': true, 'ヮ': true,
}

func IsNonMoraic(r rune) bool {
	return nonMoraicKana[r]
}

// SplitMorae splits a kana string into morae. A small kana joins the mora
// before it, except in first position where it forms a mora of its own.
func SplitMorae(kana string) []string {
	morae := []string{}
	start := -1
	for i, r := range kana {
		if start < 0 {
			start = i
			continue
		}
		if nonMoraicKana[r] {
			continue
		}
		morae = append(morae, kana[start:i])
		start = i
	}
	if start >= 0 {
		morae = append(morae, kana[start:])
	}
	return morae
}

func JoinMorae(morae []string) string {
	return strings.Join(morae, "")
}

// MoraLen counts the morae of kana without allocating the split.
func MoraLen(kana string) int {
	n := 0
	first := true
	for _, r := range kana {
		if first || !nonMoraicKana[r] {
			n++
		}
		first = false
	}
	return n
}

// MoraSubstring returns morae [start, end) of kana. Negative indices count
// from the end and out of range indices are clamped, so an inverted or
// empty range gives "". Pass ToEnd as end to keep the rest of the string.
func MoraSubstring(kana string, start, end int) string {
	morae := SplitMorae(kana)
	b, e := sliceBounds(len(morae), start, end)
	return JoinMorae(morae[b:e])
}

func sliceBounds(n, start, end int) (int, int) {
	clamp := func(i int) int {
		if i < 0 {
			i += n
			if i < 0 {
				return 0
			}
		}
		if i > n {
			return n
		}
		return i
	}
	b, e := clamp(start), clamp(end)
	if e < b {
		e = b
	}
	return b, e
}
