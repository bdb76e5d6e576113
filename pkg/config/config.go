package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqldesk/pkg/consts"
	"github.com/pseudomuto/sqldesk/pkg/format"
	"github.com/pseudomuto/sqldesk/pkg/highlight"
	"gopkg.in/yaml.v3"
)

type (
	// Recent configures the recent file lists.
	Recent struct {
		// Max caps the number of entries kept in each list
		Max int `yaml:"max"`
	}

	// Format configures the SQL formatter.
	//
	// Every step is enabled by default. Strict mode is off by default, which
	// means keywords inside string literals and comments are uppercased too.
	Format struct {
		Strict            bool `yaml:"strict"`
		Linebreaks        bool `yaml:"linebreaks"`
		BlankLines        bool `yaml:"blank_lines"`
		UppercaseKeywords bool `yaml:"uppercase_keywords"`
	}

	// Highlight configures terminal colours for highlighted SQL.
	Highlight struct {
		// KeywordColor is a hex colour ("#3B5C8A") or an ANSI colour code ("4")
		KeywordColor string `yaml:"keyword_color"`

		// CommentColor is a hex colour ("#4F7F6F") or an ANSI colour code ("2")
		CommentColor string `yaml:"comment_color"`
	}

	// Config represents the sqldesk configuration stored in sqldesk.yaml.
	Config struct {
		// Database is the database file used when none is given on the command line
		Database string `yaml:"database,omitempty"`

		// StateDir is where the recent file lists are stored
		StateDir string `yaml:"state_dir"`

		// Recent configures the recent file lists
		Recent Recent `yaml:"recent"`

		// Format configures the SQL formatter
		Format Format `yaml:"format"`

		// Highlight configures terminal colours
		Highlight Highlight `yaml:"highlight"`
	}
)

// Default returns the configuration used when sqldesk.yaml is absent.
func Default() *Config {
	return &Config{
		StateDir: consts.DefaultStateDir,
		Recent:   Recent{Max: consts.DefaultRecentMax},
		Format: Format{
			Linebreaks:        format.Defaults.Linebreaks,
			BlankLines:        format.Defaults.BlankLines,
			UppercaseKeywords: format.Defaults.UppercaseKeywords,
			Strict:            format.Defaults.Strict,
		},
		Highlight: Highlight{
			KeywordColor: consts.DefaultKeywordColor,
			CommentColor: consts.DefaultCommentColor,
		},
	}
}

// LoadConfig parses a configuration from the provided io.Reader.
//
// Values missing from the YAML keep their defaults, so an empty document
// yields Default(). The result is validated before it is returned.
//
// Example:
//
//	yamlData := `
//	database: school.db
//	format:
//	  strict: true
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
//
//	fmt.Printf("Database: %s\n", cfg.Database)
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "failed to unmarshal sqldesk config")
	}

	if cfg.StateDir == "" {
		cfg.StateDir = consts.DefaultStateDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadConfigFile loads a configuration from the specified file path.
// This is a convenience function that opens the file and calls LoadConfig.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// Load is like LoadConfigFile, except that a missing file yields Default().
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return LoadConfigFile(path)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Recent.Max <= 0 {
		return errors.Errorf("recent.max must be positive, got %d", c.Recent.Max)
	}
	if c.Highlight.KeywordColor == "" {
		return errors.New("highlight.keyword_color must not be empty")
	}
	if c.Highlight.CommentColor == "" {
		return errors.New("highlight.comment_color must not be empty")
	}

	return nil
}

// Write encodes the configuration as YAML.
func (c *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, "failed to marshal sqldesk config")
	}

	return errors.Wrap(enc.Close(), "failed to marshal sqldesk config")
}

// GetFormatter returns a formatter configured from the format section.
func (c *Config) GetFormatter() *format.Formatter {
	return format.New(format.Options{
		Linebreaks:        c.Format.Linebreaks,
		BlankLines:        c.Format.BlankLines,
		UppercaseKeywords: c.Format.UppercaseKeywords,
		Strict:            c.Format.Strict,
	})
}

// GetHighlighter returns a highlighter configured from the highlight section.
// It follows the formatter's strict setting.
func (c *Config) GetHighlighter() *highlight.Highlighter {
	return highlight.New(highlight.Options{
		Strict:       c.Format.Strict,
		KeywordColor: c.Highlight.KeywordColor,
		CommentColor: c.Highlight.CommentColor,
	})
}
