package linguaflow

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// ErrConfigValidation is returned when configuration validation fails.
var ErrConfigValidation = errors.New("configuration validation failed")

// Config holds the settings of the interactive interpreter. The expression
// core itself needs none of it; the REPL and the Gemini resolver do.
type Config struct {
	// Model is the Gemini model used to resolve operation words.
	Model string `yaml:"model"`
	// Timeout bounds a single resolution request.
	Timeout time.Duration `yaml:"timeout"`
	// Offline disables the LLM and resolves words with the built-in table.
	Offline bool `yaml:"offline"`
	// Verbose shows tokens, the syntax tree, and evaluation steps.
	Verbose bool `yaml:"verbose"`
	// Words adds word -> operator-symbol entries to the offline table,
	// e.g. {"sammeln": "+"}.
	Words map[string]string `yaml:"words"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Model:   "gemini-2.5-flash",
		Timeout: 30 * time.Second,
	}
}

// LoadConfig reads a yaml config file, falling back to defaults when the
// file does not exist. A .env file in the working directory is loaded first
// so that GEMINI_API_KEY can live next to the project.
func LoadConfig(path string) (*Config, error) {
	// Ignore the error: a missing .env just means the key comes from the
	// environment.
	_ = godotenv.Load(".env")

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Model == "" {
		return fmt.Errorf("%w: model must not be empty", ErrConfigValidation)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrConfigValidation)
	}
	for word, sym := range c.Words {
		if _, err := ParseOp(sym); err != nil {
			return fmt.Errorf("%w: word %q: %v", ErrConfigValidation, word, err)
		}
	}
	return nil
}

// WordTable builds the offline resolver table: the built-in synonyms plus
// the configured extras.
func (c *Config) WordTable() WordTable {
	t := DefaultWords()
	for word, sym := range c.Words {
		op, err := ParseOp(sym)
		if err != nil {
			// validate rejected this earlier; skip rather than panic.
			continue
		}
		t[lower(word)] = op
	}
	return t
}

// APIKey returns the Gemini API key from the environment.
func (c *Config) APIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}
