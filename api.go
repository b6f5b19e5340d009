// Package golgr provides a Go library for merging ICANN Label Generation
// Rulesets (LGR) and validating label sets against the merged result.
//
// An LGR document (RFC 7940) describes which Unicode code points a domain
// zone permits, how code points map to variants, and which whole-label rules
// and actions apply. Zones spanning several scripts publish one LGR per
// script and operate on the union of all of them.
//
// # Overview
//
// The package provides three main components:
//
//   - Source: Loads LGR documents from files, HTTP(S), memory, or fallback chains
//   - SetMerger: Merges member documents into one union ruleset
//   - SetLabelValidator: Reads a label file and checks it against the merged ruleset
//
// # Quick Start
//
// The simplest way to build and use a merged LGR set:
//
//	// Merge two script rulesets into a set
//	result, err := golgr.MergeSetFiles(ctx, []string{"lgr-arab.xml", "lgr-latn.xml"})
//	if err != nil {
//	    return err
//	}
//
//	// Validate a label file against the merged set
//	f, err := os.Open("labels.txt")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//	set, err := golgr.ReadSetLabels(ctx, result.Merged, f)
//
// # Sources
//
// Sources abstract where member documents come from. File paths and URLs
// cover the common cases; FallbackSource keeps a set usable while one of
// its hosts is down:
//
//	primary := golgr.HTTPSource("https://registry.example/lgr-fr.xml")
//	mirror := golgr.FileSource("/var/cache/lgr/lgr-fr.xml")
//	src := golgr.FallbackSource(primary, mirror)
//	result, err := golgr.MergeSet(ctx, []golgr.Source{src})
//
// # Strict and Lenient Modes
//
// By default reading is lenient: unparseable lines surface as inline
// placeholders, ineligible labels are collected with reasons, and collisions
// are reported in the result. WithMode(Strict) turns each of those into an
// error: the first bad line, the first ineligible label
// (InvalidLabelError), or any collision (CollisionError) aborts.
//
// # Thread Safety
//
// All public types in this package are safe for concurrent use.
package golgr

import (
	"context"
	"fmt"
	"io"

	"github.com/labelgen/go-lgr/label"
	"github.com/labelgen/go-lgr/ruleset"
)

// MergeSet merges the LGR documents served by sources into one union
// ruleset.
//
// This is the recommended entry point for building an LGR set.
func MergeSet(ctx context.Context, sources []Source, opts ...Option) (*MergeResult, error) {
	merger, err := NewSetMerger(opts...)
	if err != nil {
		return nil, err
	}
	return merger.Merge(ctx, sources)
}

// MergeSetFiles merges the LGR documents at the given references. Each
// reference may be a file path, a file:// URL, or an http(s):// URL.
func MergeSetFiles(ctx context.Context, refs []string, opts ...Option) (*MergeResult, error) {
	sources := make([]Source, 0, len(refs))
	for _, ref := range refs {
		src, err := SourceFromRef(ref)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", ref, err)
		}
		sources = append(sources, src)
	}
	return MergeSet(ctx, sources, opts...)
}

// ReadSetLabels reads a label file and validates every label against the
// merged ruleset. See SetLabelValidator for the rules applied.
func ReadSetLabels(ctx context.Context, merged *ruleset.LGR, labels io.Reader, opts ...Option) (*LabelSetResult, error) {
	validator, err := NewSetLabelValidator(opts...)
	if err != nil {
		return nil, err
	}
	return validator.Read(ctx, merged, labels)
}

// ReadLabels reads a label file without checking the labels against any
// ruleset. Labels are parsed from U-label, A-label, or code point form into
// Unicode strings; WithKeepComments and WithMode control comment and error
// handling.
func ReadLabels(r io.Reader, opts ...Option) ([]string, error) {
	cfg, err := newSetConfig(opts...)
	if err != nil {
		return nil, err
	}
	return label.ReadAll(r, cfg.database().DecodeALabel, label.ReaderOptions{
		Mode:         cfg.mode,
		KeepComments: cfg.keepComments,
		Logger:       cfg.logger,
	})
}
