package label

import "errors"

// Sentinel errors returned by the parsing functions in this package.
// Returned errors wrap one of these and carry the offending input; test
// with errors.Is.
var (
	// ErrMalformedCodePoint indicates a token that is neither a single
	// character nor a hexadecimal numeral.
	ErrMalformedCodePoint = errors.New("not a valid code point token")

	// ErrOutOfRange indicates a numeral outside the Unicode code space.
	ErrOutOfRange = errors.New("code point value must be in the range [0, U+10FFFF]")

	// ErrEncoding indicates an A-label whose ACE form cannot be decoded.
	ErrEncoding = errors.New("not a valid A-label")

	// ErrDisallowedWhitespace indicates a label containing spaces. It
	// replaces the underlying token error when a space-separated input
	// fails to parse as a code point sequence.
	ErrDisallowedWhitespace = errors.New("contains spaces that are not PVALID for IDNA2008")
)
