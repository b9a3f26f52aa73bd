package config

import (
	"fmt"
	"log"
	"strings"

	"FormatKit/expr"
	"FormatKit/textenc"
)

// Validate checks cfg and logs every problem found. It returns an error
// if any of them would make parsing fail or behave unexpectedly.
func Validate(cfg Config) error {
	validationErrors := 0
	p := cfg.Parser

	if p.Delimiters == "" {
		log.Printf("ERROR: parser.delimiters must not be empty")
		validationErrors++
	}
	if strings.ContainsRune(p.Delimiters, '"') || strings.ContainsRune(p.Whitespace, '"') {
		log.Printf("ERROR: the double quote cannot be used as delimiter or whitespace")
		validationErrors++
	}
	if (p.BlockCommentStart == "") != (p.BlockCommentEnd == "") {
		log.Printf("ERROR: parser.blockCommentStart and parser.blockCommentEnd must be set together")
		validationErrors++
	}
	if p.MaxTokens < 0 {
		log.Printf("ERROR: parser.maxTokens must not be negative, got %d", p.MaxTokens)
		validationErrors++
	}
	if p.LineComment == "" && p.BlockCommentStart == "" {
		log.Printf("Warning: no comment markers configured, comments will be parsed as entries")
	}
	if p.LineComment != "" && p.LineComment == p.BlockCommentStart {
		log.Printf("ERROR: line and block comments both start with '%s'", p.LineComment)
		validationErrors++
	}

	if _, err := textenc.Lookup(cfg.Encoding); err != nil {
		log.Printf("ERROR: %v", err)
		validationErrors++
	}

	for key, value := range cfg.Defaults {
		if strings.ContainsAny(key, p.Delimiters+p.Whitespace) {
			log.Printf("ERROR: default key '%s' contains a delimiter", key)
			validationErrors++
		}
		if !expr.IsValidExpression(value) {
			log.Printf("Warning: default '%s' is not an expression (%s), it can only be read as text", key, value)
		}
	}

	if validationErrors > 0 {
		return fmt.Errorf("found %d critical validation error(s) in the configuration", validationErrors)
	}
	return nil
}
