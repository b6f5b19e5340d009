// Package unidb answers the Unicode questions the rest of the module asks:
// A-label (ACE) conversion, NFC normalization, and per-code-point metadata
// for diagnostics.
//
// The database is deliberately permissive about IDNA: by default A-labels
// are converted with the bare Punycode profile, with no UTS 46 mapping or
// lookup validation, because deciding what a zone permits is the ruleset's
// job. Callers that want full lookup processing can construct the database
// with a different profile.
package unidb

import (
	"fmt"
	"sort"
	"unicode"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/runenames"
)

// Database resolves A-label encodings and code point properties. Construct
// with New or NewWithProfile; the zero value has no conversion profile.
type Database struct {
	profile *idna.Profile
}

// New returns a Database converting A-labels with the bare Punycode
// profile.
func New() *Database {
	return &Database{profile: idna.Punycode}
}

// NewWithProfile returns a Database converting A-labels through p, for
// callers that want UTS 46 processing (for example idna.Lookup).
func NewWithProfile(p *idna.Profile) *Database {
	return &Database{profile: p}
}

// DecodeALabel converts an A-label to its Unicode form.
func (d *Database) DecodeALabel(aLabel string) (string, error) {
	u, err := d.profile.ToUnicode(aLabel)
	if err != nil {
		return "", fmt.Errorf("decoding %q: %w", aLabel, err)
	}
	return u, nil
}

// EncodeALabel converts a Unicode label to its A-label form.
func (d *Database) EncodeALabel(uLabel string) (string, error) {
	a, err := d.profile.ToASCII(uLabel)
	if err != nil {
		return "", fmt.Errorf("encoding %q: %w", uLabel, err)
	}
	return a, nil
}

// IsNFC reports whether s is in Normalization Form C.
func (d *Database) IsNFC(s string) bool {
	return norm.NFC.IsNormalString(s)
}

// NFC returns s normalized to Form C.
func (d *Database) NFC(s string) string {
	return norm.NFC.String(s)
}

// Name returns the Unicode character name of cp, for diagnostics.
func (d *Database) Name(cp rune) string {
	return runenames.Name(cp)
}

// Script returns the Unicode script property of cp, "Unknown" when the code
// point belongs to none.
func (d *Database) Script(cp rune) string {
	for _, name := range scriptNames {
		if unicode.Is(unicode.Scripts[name], cp) {
			return name
		}
	}
	return "Unknown"
}

// Category returns the two-letter general category of cp, "Cn" for
// unassigned code points.
func (d *Database) Category(cp rune) string {
	for _, name := range categoryNames {
		if unicode.Is(unicode.Categories[name], cp) {
			return name
		}
	}
	return "Cn"
}

// Version returns the version of the Unicode tables behind the property
// queries.
func (d *Database) Version() string {
	return unicode.Version
}

// Lookup order for property scans is fixed up front so results are
// deterministic.
var (
	scriptNames   = sortedNames(unicode.Scripts, 0)
	categoryNames = sortedNames(unicode.Categories, 2)
)

func sortedNames(tables map[string]*unicode.RangeTable, nameLen int) []string {
	names := make([]string, 0, len(tables))
	for name := range tables {
		if nameLen > 0 && len(name) != nameLen {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
