package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "accents.json", cfg.AccentsFile)
	assert.Equal(t, "Japanese vocab", cfg.Notetype)
	assert.Equal(t, "Japanese", cfg.Fields.Japanese)
	assert.Equal(t, "Pitch accent", cfg.Fields.PitchAccent)
	assert.Equal(t, "Japanese examples", cfg.Fields.Examples)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "Kanji", cfg.KanjiNotetype)
	assert.Equal(t, "On-yomi", cfg.KanjiFields.OnYomi)
	assert.Equal(t, "English examples", cfg.KanjiFields.EnglishExamples)
	assert.Equal(t, filepath.Join(home, "code", "3rd-party", "10ten-ja-reader", "data", "words.ljson"), cfg.WordsFile)
}

func TestLoadYAMLResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pitchaccent.yaml", `
accents_file: data/accents.json
collection: /srv/anki/collection.anki2
notetype: Vocab
fields:
  pitch_accent: Accent
kanji_notetype: 漢字
kanji_fields:
  parts: Radicals
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data", "accents.json"), cfg.AccentsFile)
	assert.Equal(t, "/srv/anki/collection.anki2", cfg.Collection)
	assert.Equal(t, "Vocab", cfg.Notetype)
	assert.Equal(t, "Accent", cfg.Fields.PitchAccent)
	assert.Equal(t, "Japanese", cfg.Fields.Japanese)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "漢字", cfg.KanjiNotetype)
	assert.Equal(t, "Radicals", cfg.KanjiFields.Parts)
	assert.Equal(t, "Kanji", cfg.KanjiFields.Kanji)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pitchaccent.json", `{"notetype": "Vocab"}`)
	t.Setenv("PITCHACCENT_NOTETYPE", "Japanese words")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Japanese words", cfg.Notetype)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, "words.ljson"), ExpandHome("~/words.ljson"))
	assert.Equal(t, "~user/words.ljson", ExpandHome("~user/words.ljson"))
	assert.Equal(t, "words.ljson", ExpandHome("words.ljson"))
}
