package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

// ParserOptions controls how definition files are split into entries.
type ParserOptions struct {
	LineComment       string `yaml:"lineComment"`       // starts a comment running to the end of the line
	BlockCommentStart string `yaml:"blockCommentStart"` // opens a comment that may span lines
	BlockCommentEnd   string `yaml:"blockCommentEnd"`   // closes it
	Whitespace        string `yaml:"whitespace"`        // runs of these collapse to the first delimiter
	Delimiters        string `yaml:"delimiters"`        // separate the tokens of a line
	MaxTokens         int    `yaml:"maxTokens"`         // 0 for no limit
}

// Config is the content of the configuration file.
type Config struct {
	Parser   ParserOptions `yaml:"parser"`
	Encoding string        `yaml:"encoding,omitempty"` // WHATWG label of the input text, empty for UTF-8

	// Defaults holds entries used when a definition file does not set
	// them. Values may be expressions over other entries.
	Defaults map[string]string `yaml:"defaults,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Parser: ParserOptions{
			LineComment:       "//",
			BlockCommentStart: "/*",
			BlockCommentEnd:   "*/",
			Whitespace:        " \t",
			Delimiters:        " ",
		},
		Defaults: map[string]string{
			"bpp":  "3",
			"fill": "0",
		},
	}
}

// LoadConfig reads and parses the configuration file. A missing file is
// not an error: the defaults are returned instead. Fields absent from the
// file keep their default values.
func LoadConfig(configPath string) (Config, error) {
	cfg := Default()
	configData, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Configuration file '%s' not found. Using defaults.", configPath)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read configuration file '%s': %w", configPath, err)
	}

	err = yaml.Unmarshal(configData, &cfg)
	if err != nil {
		yamlErr, ok := err.(*yaml.TypeError)
		if ok {
			for _, msg := range yamlErr.Errors {
				log.Printf("YAML unmarshal error in %s: %s", configPath, msg)
			}
		}
		return Config{}, fmt.Errorf("failed to parse configuration file '%s': %w", configPath, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to the configuration file.
func SaveConfig(configPath string, cfg Config) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	err = os.WriteFile(configPath, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write configuration file '%s': %w", configPath, err)
	}
	return nil
}
