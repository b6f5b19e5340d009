// Package hexcp converts between code point slices and the hexadecimal
// notation used by LGR XML attributes (cp, first-cp, last-cp).
//
// This package consolidates the attribute codec used by both the document
// parser and the encoder (package ruleset) and by collision indexing, which
// needs a string key that survives code points Go strings cannot carry.
//
// The notation here is deliberately stricter than the label-input grammar:
// every token is bare hexadecimal with no "U+" prefix and no single-character
// shorthand, and sequences are separated by single spaces.
package hexcp

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseOne parses one bare hexadecimal code point token.
func ParseOne(token string) (rune, error) {
	if token == "" {
		return 0, fmt.Errorf("empty code point token")
	}
	v, err := strconv.ParseUint(token, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid code point %q: not bare hexadecimal", token)
	}
	if v > unicode.MaxRune {
		return 0, fmt.Errorf("invalid code point %q: above U+10FFFF", token)
	}
	return rune(v), nil
}

// Parse parses a space-separated sequence of bare hexadecimal code points,
// the form taken by a cp attribute. The sequence must be non-empty.
func Parse(attr string) ([]rune, error) {
	fields := strings.Fields(attr)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty code point sequence %q", attr)
	}
	cps := make([]rune, 0, len(fields))
	for _, tok := range fields {
		cp, err := ParseOne(tok)
		if err != nil {
			return nil, err
		}
		cps = append(cps, cp)
	}
	return cps, nil
}

// FormatOne renders a code point as uppercase hexadecimal, zero-padded to at
// least four digits, matching the convention of published LGR documents.
func FormatOne(cp rune) string {
	return fmt.Sprintf("%04X", cp)
}

// Format renders a code point sequence in cp-attribute form.
func Format(cps []rune) string {
	if len(cps) == 0 {
		return ""
	}
	var b strings.Builder
	for i, cp := range cps {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(FormatOne(cp))
	}
	return b.String()
}

// Compare orders two code point sequences, first by code point value position
// by position, then by length. It is the repertoire ordering.
func Compare(a, b []rune) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}
