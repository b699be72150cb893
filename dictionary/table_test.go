package dictionary

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msnoigrs/goaccent/internal/logging"
)

func sampleTable() *Table {
	t := NewTable()
	t.Readings["ああ"] = 1
	t.Readings["いく"] = 0
	t.Kanji["行"] = map[string]int{"いく": 0, "ゆく": 0}
	t.Kanji["雨"] = map[string]int{"あめ": 1}
	return t
}

func TestLookup(t *testing.T) {
	table := sampleTable()
	for _, tt := range []struct {
		kanji, kana string
		want        int
		found       bool
	}{
		{"行", "ゆく", 0, true},
		{"雨", "あめ", 1, true},
		{"ああ", "ああ", 1, true},
		{"飴", "あめ", 0, false},
		{"あめ", "あめ", 0, false},
		// a kanji word never falls back to the bare reading
		{"逝", "いく", 0, false},
	} {
		got, ok := table.Lookup(tt.kanji, tt.kana)
		assert.Equal(t, tt.found, ok, "%s[%s]", tt.kanji, tt.kana)
		assert.Equal(t, tt.want, got, "%s[%s]", tt.kanji, tt.kana)
	}
}

func TestWriteTo(t *testing.T) {
	var buf bytes.Buffer
	_, err := sampleTable().WriteTo(&buf)
	require.NoError(t, err)

	want := `{
    "ああ": 1,
    "いく": 0,
    "行": {
        "いく": 0,
        "ゆく": 0
    },
    "雨": {
        "あめ": 1
    }
}
`
	assert.Equal(t, want, buf.String())
}

func TestMarshalKanjiWinsOverReading(t *testing.T) {
	table := NewTable()
	table.Readings["ひと"] = 2
	table.Kanji["ひと"] = map[string]int{"ひと": 0}

	data, err := json.Marshal(table)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ひと":{"ひと":0}}`, string(data))
}

func TestMarshalNoHTMLEscape(t *testing.T) {
	table := NewTable()
	table.Readings["<&>"] = 0
	data, err := table.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"<&>":0}`, string(data))
}

func TestReadTable(t *testing.T) {
	var buf bytes.Buffer
	_, err := sampleTable().WriteTo(&buf)
	require.NoError(t, err)

	table, err := ReadTable(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleTable(), table)
}

func TestReadTableInvalid(t *testing.T) {
	for _, input := range []string{
		`[]`,
		`{"ああ":"1"}`,
		`{"ああ":null}`,
		`{"行":{"いく":"0"}}`,
		`{"ああ":1.5}`,
		`{`,
	} {
		_, err := ReadTable(strings.NewReader(input))
		assert.True(t, errors.Is(err, ErrInvalidTable), "%s: %v", input, err)
	}
}

func TestSaveAndLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accents.json")
	require.NoError(t, SaveTable(path, sampleTable(), nil))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, sampleTable(), table)
}

func TestSaveTableWarnsShadowedReadings(t *testing.T) {
	table := sampleTable()
	table.Readings["ひと"] = 2
	table.Kanji["ひと"] = map[string]int{"ひと": 0}
	assert.Equal(t, []string{"ひと"}, table.Shadowed())
	assert.Empty(t, sampleTable().Shadowed())

	var logs bytes.Buffer
	path := filepath.Join(t.TempDir(), "accents.json")
	require.NoError(t, SaveTable(path, table, logging.NewLogger(logging.LevelWarn, logging.FormatText, &logs)))
	assert.Contains(t, logs.String(), "bare reading dropped")
	assert.Contains(t, logs.String(), "key=ひと")

	loaded, err := LoadTable(path)
	require.NoError(t, err)
	_, ok := loaded.Readings["ひと"]
	assert.False(t, ok)
	assert.Equal(t, map[string]int{"ひと": 0}, loaded.Kanji["ひと"])
}

func TestLoadTableMissing(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "accents.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestEntries(t *testing.T) {
	table := NewTable()
	table.Readings["ひと"] = 2
	table.Readings["ああ"] = 1
	table.Kanji["ひと"] = map[string]int{"ひと": 0}
	table.Kanji["一"] = map[string]int{"ひと": 2, "いち": 2}

	assert.Equal(t, []Entry{
		{Reading: "ああ", Accent: 1},
		{Reading: "ひと", Accent: 2},
		{Kanji: "ひと", Reading: "ひと", Accent: 0},
		{Kanji: "一", Reading: "いち", Accent: 2},
		{Kanji: "一", Reading: "ひと", Accent: 2},
	}, table.Entries())
}

func TestFingerprint(t *testing.T) {
	a, err := sampleTable().Fingerprint()
	require.NoError(t, err)
	b, err := sampleTable().Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	other := sampleTable()
	other.Readings["ああ"] = 0
	c, err := other.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintTable(sampleTable(), &buf))
	assert.Equal(t, "*,ああ,1\n*,いく,0\n行,いく,0\n行,ゆく,0\n雨,あめ,1\n", buf.String())
}

func TestPrintInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accents.json")
	require.NoError(t, SaveTable(path, sampleTable(), nil))

	var buf bytes.Buffer
	require.NoError(t, PrintInfo(path, &buf))
	out := buf.String()
	assert.Contains(t, out, "filename: "+path+"\n")
	assert.Contains(t, out, "readings: 2\n")
	assert.Contains(t, out, "kanji: 2\n")
	assert.Contains(t, out, "kanjiReadings: 3\n")

	fingerprint, err := sampleTable().Fingerprint()
	require.NoError(t, err)
	assert.Contains(t, out, "fingerprint: "+fingerprint+"\n")
}
