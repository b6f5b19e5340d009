// Package label parses domain name labels written in any of the three
// notations accepted by LGR tooling: literal Unicode text (U-labels),
// ASCII-compatible "xn--" strings (A-labels), and whitespace-separated code
// point sequences.
//
// # Notation Detection
//
// [DetectFormat] applies ordered checks: an "xn--" prefix (any case) wins,
// then the presence of a space or of "U+" selects the code point sequence
// notation, and anything else is literal text. Detection is intentionally
// simple-minded; the one surprising consequence is that "0061" is the
// four-character label "0061", while "U+0061" is the single character "a".
//
// # Reading Label Files
//
// [Reader] streams labels out of line-oriented files with '#' comments,
// applying the same detection per line. [Mode] selects whether a bad line
// aborts the read or degrades into a diagnostic placeholder.
package label

import (
	"fmt"
	"strings"
)

// Format identifies the notation a label string is written in.
type Format int

const (
	// FormatUnicode is literal Unicode text, the fallback notation.
	FormatUnicode Format = iota
	// FormatALabel is the ASCII-compatible "xn--" form.
	FormatALabel
	// FormatCodePoints is a whitespace-separated code point sequence.
	FormatCodePoints
)

// String returns the notation name.
func (f Format) String() string {
	switch f {
	case FormatALabel:
		return "a-label"
	case FormatCodePoints:
		return "code-points"
	default:
		return "unicode"
	}
}

// Decoder converts an A-label to its Unicode form. It receives the label
// already lower-cased. The unidb package provides the usual implementation;
// tests may substitute their own.
type Decoder func(aLabel string) (string, error)

// formatChecks are tried in order; the first predicate to match decides the
// notation, and FormatUnicode is the fallback. Order matters: an A-label
// never contains a space or "U+", but a code point sequence could start
// with a stray "xn--" only if it were malformed anyway.
var formatChecks = []struct {
	format Format
	match  func(string) bool
}{
	{FormatALabel, func(s string) bool {
		return strings.HasPrefix(strings.ToLower(s), "xn--")
	}},
	{FormatCodePoints, func(s string) bool {
		return strings.Contains(s, " ") || strings.Contains(strings.ToUpper(s), "U+")
	}},
}

// DetectFormat reports which notation s is written in.
func DetectFormat(s string) Format {
	for _, c := range formatChecks {
		if c.match(s) {
			return c.format
		}
	}
	return FormatUnicode
}

// ParseLabel parses a label in any supported notation into its code points.
// The decoder handles A-labels and may be nil when none are expected.
func ParseLabel(s string, decode Decoder) ([]rune, error) {
	switch DetectFormat(s) {
	case FormatALabel:
		u, err := decodeALabel(s, decode)
		if err != nil {
			return nil, err
		}
		return []rune(u), nil
	case FormatCodePoints:
		cps, err := ParseCodePointSequence(s)
		if err != nil {
			return nil, diagnoseSequenceError(s, err)
		}
		return cps, nil
	default:
		return []rune(s), nil
	}
}

// ParseLabelString is ParseLabel returning the label as a Unicode string.
func ParseLabelString(s string, decode Decoder) (string, error) {
	switch DetectFormat(s) {
	case FormatALabel:
		return decodeALabel(s, decode)
	case FormatCodePoints:
		cps, err := ParseCodePointSequence(s)
		if err != nil {
			return "", diagnoseSequenceError(s, err)
		}
		return string(cps), nil
	default:
		return s, nil
	}
}

func decodeALabel(s string, decode Decoder) (string, error) {
	if decode == nil {
		return "", fmt.Errorf("%q: %w: no decoder available", s, ErrEncoding)
	}
	u, err := decode(strings.ToLower(s))
	if err != nil {
		return "", fmt.Errorf("%q: %w: %v", s, ErrEncoding, err)
	}
	return u, nil
}

// A failed sequence parse of a space-containing label usually means the
// input is plain text with spaces in it, which IDNA never permits. Report
// that instead of the token error; without a space the token error stands.
func diagnoseSequenceError(s string, err error) error {
	if strings.Contains(s, " ") {
		return fmt.Errorf("label %q: %w", s, ErrDisallowedWhitespace)
	}
	return err
}
