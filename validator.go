package golgr

import (
	"context"
	"io"
	"slices"

	"github.com/labelgen/go-lgr/label"
	"github.com/labelgen/go-lgr/ruleset"
)

// SetLabelValidator reads a label file and checks every label against a
// merged ruleset.
//
// Labels are read line by line, eligibility-tested against the merged
// ruleset, deduplicated, and finally checked for variant collisions as one
// batch. In Lenient mode ineligible labels are collected with their reasons
// and reading continues; in Strict mode the first failure aborts.
type SetLabelValidator struct {
	cfg *setConfig
}

// NewSetLabelValidator creates a validator configured by the given options.
func NewSetLabelValidator(opts ...Option) (*SetLabelValidator, error) {
	cfg, err := newSetConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &SetLabelValidator{cfg: cfg}, nil
}

// Read consumes the label file and returns the accepted labels with any
// rejections and collisions found.
//
// When validation is disabled via WithValidation(false), labels are accepted
// as read, including the inline placeholders lenient reading produces for
// unparseable lines.
func (v *SetLabelValidator) Read(ctx context.Context, merged *ruleset.LGR, labels io.Reader) (*LabelSetResult, error) {
	if merged == nil {
		return nil, ErrNilRuleset
	}

	log := v.cfg.log()

	var decode label.Decoder
	if db := merged.Database(); db != nil {
		decode = db.DecodeALabel
	}

	reader := label.NewReader(labels, decode, label.ReaderOptions{
		Mode:   v.cfg.mode,
		Logger: v.cfg.logger,
	})

	result := &LabelSetResult{}
	seen := make(map[string]bool)
	var accepted []string

	for reader.Scan() {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		text := reader.Label()
		result.Summary.Read++

		if !v.cfg.skipValidation {
			// Lenient reading degrades unparseable lines into
			// "<label>: <error>" placeholders; the eligibility test rejects
			// those along with ordinary bad labels.
			elig := merged.TestLabelEligible([]rune(text))
			if !elig.Eligible {
				reason := elig.Reason()
				log.Error("label from LGR set labels is not valid",
					"label", text, "line", reader.Line(), "reason", reason)
				result.Rejected = append(result.Rejected, RejectedLabel{Label: text, Reason: reason})
				if v.cfg.mode == Strict {
					return nil, &InvalidLabelError{Label: text, Reason: reason}
				}
				continue
			}
		}

		if seen[text] {
			result.Summary.Duplicates++
			continue
		}
		seen[text] = true
		accepted = append(accepted, text)
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}

	if !v.cfg.skipValidation {
		groups := FindCollisions(merged, accepted)
		if len(groups) > 0 {
			log.Error("input label file contains collisions", "groups", len(groups))
			if v.cfg.mode == Strict {
				return nil, &CollisionError{Groups: groups}
			}
			result.Collisions = groups
			result.Summary.CollisionGroups = len(groups)
		}
	}

	slices.Sort(accepted)
	result.Labels = accepted
	result.Summary.Accepted = len(accepted)
	result.Summary.Rejected = len(result.Rejected)
	return result, nil
}
