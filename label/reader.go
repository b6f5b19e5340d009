package label

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Mode selects how per-label failures are handled by readers and
// validators.
type Mode int

const (
	// Lenient degrades per-label failures into diagnostics and keeps
	// going. It is the zero value.
	Lenient Mode = iota
	// Strict stops at the first failure and reports it.
	Strict
)

// String returns the mode name.
func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "lenient"
}

// ReaderOptions configures a Reader. The zero value reads leniently and
// drops comment lines.
type ReaderOptions struct {
	// Mode selects strict or lenient handling of unparseable labels.
	Mode Mode

	// KeepComments yields whole-line comments (still prefixed with '#')
	// instead of dropping them.
	KeepComments bool

	// Logger receives a debug record for every label that degrades into a
	// placeholder. Nil discards them.
	Logger *slog.Logger
}

// Reader streams labels from a line-oriented file.
//
// Lines are trimmed and '#' starts a comment, either as a whole line or as
// a trailing remark after a label. Blank lines are skipped. Every remaining
// line is parsed with [ParseLabelString]. In lenient mode a line that fails
// to parse yields a placeholder of the form "<label>: <error>" so the
// failure stays visible in the output; in strict mode the Reader stops and
// Err reports the failure.
type Reader struct {
	sc     *bufio.Scanner
	decode Decoder
	opts   ReaderOptions

	label string
	line  int
	err   error
	done  bool
}

// NewReader returns a Reader over r. The decoder handles A-label lines and
// may be nil when none are expected.
func NewReader(r io.Reader, decode Decoder, opts ReaderOptions) *Reader {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Reader{sc: bufio.NewScanner(r), decode: decode, opts: opts}
}

// Scan advances to the next label. It returns false at end of input or, in
// strict mode, at the first unparseable label.
func (r *Reader) Scan() bool {
	if r.done {
		return false
	}
	for r.sc.Scan() {
		r.line++
		text := strings.TrimSpace(r.sc.Text())
		if i := strings.IndexByte(text, '#'); i >= 0 {
			if i == 0 {
				if r.opts.KeepComments {
					r.label = text
					return true
				}
				continue
			}
			text = strings.TrimSpace(text[:i])
		}
		if text == "" {
			continue
		}
		parsed, err := ParseLabelString(text, r.decode)
		if err != nil {
			if r.opts.Mode == Strict {
				r.err = fmt.Errorf("line %d: %w", r.line, err)
				r.done = true
				return false
			}
			r.opts.Logger.Debug("label did not parse, yielding placeholder",
				"line", r.line, "label", text, "err", err)
			r.label = text + ": " + err.Error()
			return true
		}
		r.label = parsed
		return true
	}
	r.done = true
	return false
}

// Label returns the label produced by the last successful Scan.
func (r *Reader) Label() string {
	return r.label
}

// Line returns the 1-based input line the last label came from.
func (r *Reader) Line() int {
	return r.line
}

// Err returns the error that stopped the Reader, if any.
func (r *Reader) Err() error {
	if r.err != nil {
		return r.err
	}
	return r.sc.Err()
}

// ReadAll collects every label a Reader over r would yield.
func ReadAll(r io.Reader, decode Decoder, opts ReaderOptions) ([]string, error) {
	rd := NewReader(r, decode, opts)
	var labels []string
	for rd.Scan() {
		labels = append(labels, rd.Label())
	}
	if err := rd.Err(); err != nil {
		return nil, err
	}
	return labels, nil
}
