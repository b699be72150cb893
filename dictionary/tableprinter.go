package dictionary

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrintTable writes one "kanji,reading,accent" line per entry. Bare readings
// have "*" in the kanji column.
func PrintTable(t *Table, output io.Writer) error {
	for _, e := range t.Entries() {
		_, err := fmt.Fprintf(output, "%s,%s,%d\n", kanjiToString(e.Kanji), e.Reading, e.Accent)
		if err != nil {
			return err
		}
	}
	return nil
}

func kanjiToString(kanji string) string {
	if kanji == "" {
		return "*"
	}
	return kanji
}

// PrintInfo describes the table file at path.
func PrintInfo(path string, output io.Writer) error {
	finfo, err := os.Stat(path)
	if err != nil {
		return err
	}
	t, err := LoadTable(path)
	if err != nil {
		return err
	}
	fingerprint, err := t.Fingerprint()
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	p.Fprintln(output, "filename:", path)
	p.Fprintf(output, "readings: %d\n", t.NumReadings())
	p.Fprintf(output, "kanji: %d\n", len(t.Kanji))
	p.Fprintf(output, "kanjiReadings: %d\n", t.NumKanjiReadings())
	p.Fprintln(output, "fingerprint:", fingerprint)

	mtime := finfo.ModTime()
	zone, _ := mtime.Zone()
	p.Fprintf(output, "modTime: %s[%s]\n", mtime.Format(time.RFC3339), zone)
	return nil
}
