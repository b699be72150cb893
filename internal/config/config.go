package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the settings shared by every pitchaccent command.
type Config struct {
	WordsFile   string `yaml:"words_file"   json:"words_file"   env:"PITCHACCENT_WORDS_FILE"   env-default:"~/code/3rd-party/10ten-ja-reader/data/words.ljson"`
	AccentsFile string `yaml:"accents_file" json:"accents_file" env:"PITCHACCENT_ACCENTS_FILE" env-default:"accents.json"`
	Collection  string `yaml:"collection"   json:"collection"   env:"PITCHACCENT_COLLECTION"   env-default:"~/.local/share/Anki2/User 1/collection.anki2"`
	Notetype    string `yaml:"notetype"     json:"notetype"     env:"PITCHACCENT_NOTETYPE"     env-default:"Japanese vocab"`
	// KanjiNotetype holds one note per kanji, with example words.
	KanjiNotetype string `yaml:"kanji_notetype" json:"kanji_notetype" env:"PITCHACCENT_KANJI_NOTETYPE" env-default:"Kanji"`

	Fields      Fields      `yaml:"fields"       json:"fields"`
	KanjiFields KanjiFields `yaml:"kanji_fields" json:"kanji_fields"`
	Log         Log         `yaml:"log"          json:"log"`

	path string
}

// Fields names the note fields the commands read and write.
type Fields struct {
	Japanese     string `yaml:"japanese"       json:"japanese"       env:"PITCHACCENT_FIELD_JAPANESE"       env-default:"Japanese"`
	PitchAccent  string `yaml:"pitch_accent"   json:"pitch_accent"   env:"PITCHACCENT_FIELD_PITCH_ACCENT"   env-default:"Pitch accent"`
	Examples     string `yaml:"examples"       json:"examples"       env:"PITCHACCENT_FIELD_EXAMPLES"       env-default:"Japanese examples"`
	KanaOnly     string `yaml:"kana_only"      json:"kana_only"      env:"PITCHACCENT_FIELD_KANA_ONLY"      env-default:"Kana only"`
	English      string `yaml:"english"        json:"english"        env:"PITCHACCENT_FIELD_ENGLISH"        env-default:"English"`
	PartOfSpeech string `yaml:"part_of_speech" json:"part_of_speech" env:"PITCHACCENT_FIELD_PART_OF_SPEECH" env-default:"Part of speech"`
	Notes        string `yaml:"notes"          json:"notes"          env:"PITCHACCENT_FIELD_NOTES"          env-default:"Notes"`
}

// KanjiFields names the fields of a kanji note.
type KanjiFields struct {
	Kanji           string `yaml:"kanji"            json:"kanji"            env:"PITCHACCENT_KANJI_FIELD_KANJI"            env-default:"Kanji"`
	Meaning         string `yaml:"meaning"          json:"meaning"          env:"PITCHACCENT_KANJI_FIELD_MEANING"          env-default:"Meaning"`
	KunYomi         string `yaml:"kun_yomi"         json:"kun_yomi"         env:"PITCHACCENT_KANJI_FIELD_KUN_YOMI"         env-default:"Kun-yomi"`
	OnYomi          string `yaml:"on_yomi"          json:"on_yomi"          env:"PITCHACCENT_KANJI_FIELD_ON_YOMI"          env-default:"On-yomi"`
	Examples        string `yaml:"examples"         json:"examples"         env:"PITCHACCENT_KANJI_FIELD_EXAMPLES"         env-default:"Japanese examples"`
	EnglishExamples string `yaml:"english_examples" json:"english_examples" env:"PITCHACCENT_KANJI_FIELD_ENGLISH_EXAMPLES" env-default:"English examples"`
	Notes           string `yaml:"notes"            json:"notes"            env:"PITCHACCENT_KANJI_FIELD_NOTES"            env-default:"Notes"`
	Parts           string `yaml:"parts"            json:"parts"            env:"PITCHACCENT_KANJI_FIELD_PARTS"            env-default:"Parts"`
}

type Log struct {
	Level  string `yaml:"level"  json:"level"  env:"PITCHACCENT_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" json:"format" env:"PITCHACCENT_LOG_FORMAT" env-default:"text"`
}

// Load reads path (YAML, JSON or TOML by extension) when it is not empty,
// otherwise the environment and defaults only. Environment variables take
// precedence over the file.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := cleanenv.ReadConfig(abs, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		cfg.path = filepath.Dir(abs)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	cfg.WordsFile = cfg.getPath(cfg.WordsFile)
	cfg.AccentsFile = cfg.getPath(cfg.AccentsFile)
	cfg.Collection = cfg.getPath(cfg.Collection)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.Notetype == "" {
		return fmt.Errorf("notetype is empty")
	}
	if cfg.Fields.Japanese == "" || cfg.Fields.PitchAccent == "" {
		return fmt.Errorf("the Japanese and pitch accent field names are required")
	}
	return nil
}

// getPath expands a leading "~" and resolves relative paths against the
// directory of the config file.
func (cfg *Config) getPath(path string) string {
	path = ExpandHome(path)
	if path == "" || filepath.IsAbs(path) || cfg.path == "" {
		return path
	}
	return filepath.Join(cfg.path, path)
}

func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
