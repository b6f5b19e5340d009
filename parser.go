package golgr

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/labelgen/go-lgr/ruleset"
	"github.com/labelgen/go-lgr/unidb"
)

// ParseRulesetFile reads and parses an LGR document from disk. The returned
// ruleset is named after the file's base name and has a default Unicode
// database attached.
func ParseRulesetFile(filename string) (*ruleset.LGR, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read ruleset file: %w", err)
	}

	return ParseRulesetContent(filepath.Base(filename), data)
}

// ParseRulesetContent parses the content of an LGR document.
func ParseRulesetContent(name string, content []byte) (*ruleset.LGR, error) {
	lgr, err := ruleset.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	lgr.Name = name
	lgr.AttachDatabase(unidb.New())
	return lgr, nil
}
