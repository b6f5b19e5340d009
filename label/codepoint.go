package label

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseCodePoint parses a single code point from user input.
//
// A one-character token (after trimming surrounding whitespace) is taken as
// that character, even when it looks numeric: "a" is U+0061 and "1" is
// U+0031. Longer tokens are hexadecimal numerals, with or without a "U+"
// prefix in either case. The value must lie in [0, U+10FFFF].
func ParseCodePoint(token string) (rune, error) {
	s := strings.TrimSpace(token)
	if r := []rune(s); len(r) == 1 {
		return r[0], nil
	}
	hex := s
	if len(s) >= 2 && (s[0] == 'U' || s[0] == 'u') && s[1] == '+' {
		hex = s[2:]
	}
	v, err := strconv.ParseInt(hex, 16, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%q: %w", token, ErrOutOfRange)
		}
		return 0, fmt.Errorf("%q: %w", token, ErrMalformedCodePoint)
	}
	if v < 0 || v > unicode.MaxRune {
		return 0, fmt.Errorf("%q: %w", token, ErrOutOfRange)
	}
	return rune(v), nil
}

// ParseCodePointSequence parses a whitespace-separated sequence of code
// points, each token in ParseCodePoint form. Empty input yields no code
// points.
func ParseCodePointSequence(s string) ([]rune, error) {
	fields := strings.Fields(s)
	cps := make([]rune, 0, len(fields))
	for _, tok := range fields {
		cp, err := ParseCodePoint(tok)
		if err != nil {
			return nil, err
		}
		cps = append(cps, cp)
	}
	return cps, nil
}
