package dictionary

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intp(i int) *int {
	return &i
}

func TestParseAccentValue(t *testing.T) {
	for _, tt := range []struct {
		raw   string
		want  int
		valid bool
	}{
		{`0`, 0, true},
		{`3`, 3, true},
		{` 2 `, 2, true},
		{`[{"i":2},{"i":0}]`, 2, true},
		{`[{"i":1,"pos":["n"]}]`, 1, true},
		{`[]`, 0, false},
		{`[{}]`, 0, false},
		{`null`, 0, false},
		{`"1"`, 0, false},
		{`{"i":1}`, 0, false},
		{``, 0, false},
	} {
		var got int
		value, ok := ParseAccentValue(json.RawMessage(tt.raw))
		if ok {
			got, ok = value.Position()
		}
		assert.Equal(t, tt.valid, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestParseApplicability(t *testing.T) {
	assert.True(t, ParseApplicability(nil).IsAll())
	assert.True(t, ParseApplicability(intp(0)).IsNone())
	assert.True(t, ParseApplicability(intp(1<<MaxKanjiPositions)).IsNone())

	app := ParseApplicability(intp(5))
	assert.False(t, app.IsAll())
	assert.False(t, app.IsNone())
	assert.Equal(t, []int{0, 2}, app.Indices())
	assert.True(t, app.Includes(2))
	assert.False(t, app.Includes(1))
	assert.Equal(t, "{0,2}", app.String())

	assert.True(t, AppliesToAll.Includes(15))
	assert.False(t, AppliesToNone.Includes(0))
	assert.Nil(t, AppliesToAll.Indices())
	assert.Equal(t, "all", AppliesToAll.String())
	assert.Equal(t, "none", AppliesToIndices().String())
}

func TestReadingAccents(t *testing.T) {
	var line Line
	err := json.Unmarshal([]byte(`{
		"k": ["一", "壱"],
		"r": ["いち", "ひと", "いつ", "いち", "ひとつ"],
		"rm": [{"a": 2}, {"a": [{"i": 2}], "app": 0}, "x", {"a": 1, "app": 2}]
	}`), &line)
	if err != nil {
		t.Fatal(err)
	}

	accents := line.ReadingAccents()
	if assert.Len(t, accents, 2) {
		assert.Equal(t, "いち", accents[0].Reading)
		assert.Equal(t, 1, accents[0].Accent)
		assert.Equal(t, []int{1}, accents[0].Applicability.Indices())

		assert.Equal(t, "ひと", accents[1].Reading)
		assert.Equal(t, 2, accents[1].Accent)
		assert.True(t, accents[1].Applicability.IsNone())
	}
}
