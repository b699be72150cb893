package collection

import (
	"crypto/sha1"
	"encoding/binary"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StripHTML returns the text of a field value with its markup removed and
// entities decoded. Image sources are kept, padded with spaces, so a field
// holding only a picture still has a searchable value.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	// &nbsp; searches as an ordinary space
	s = strings.ReplaceAll(s, "&nbsp;", " ")

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	var raw atom.Atom
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			if raw == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.Script, atom.Style:
				raw = tok.DataAtom
			case atom.Img:
				for _, attr := range tok.Attr {
					if attr.Key == "src" {
						b.WriteString(" " + attr.Val + " ")
					}
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if raw != 0 && atom.Lookup(name) == raw {
				raw = 0
			}
		}
	}
}

// FieldChecksum is the duplicate check value of a first field: the leading
// 32 bits of the SHA-1 of its text.
func FieldChecksum(value string) int64 {
	sum := sha1.Sum([]byte(StripHTML(value)))
	return int64(binary.BigEndian.Uint32(sum[:4]))
}
