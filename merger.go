package golgr

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/labelgen/go-lgr/merge"
	"github.com/labelgen/go-lgr/ruleset"
)

// defaultSetName names merged rulesets when WithSetName is not used.
const defaultSetName = "merged-lgr-set"

// SetMerger merges a set of LGR documents into one union ruleset.
//
// The merge proceeds in three phases:
//  1. Fetch: each source is read, consulting the configured cache first.
//  2. Parse: each document is schema-checked (advisory, logged only) and
//     parsed. A fetch or parse failure aborts the whole merge with a
//     MergeAbortedError, since a partial union would silently accept labels
//     the missing member should govern.
//  3. Union: member repertoires, rules, and actions are combined, renaming
//     rules and classes whose names collide across members.
type SetMerger struct {
	cfg *setConfig
}

// NewSetMerger creates a merger configured by the given options.
func NewSetMerger(opts ...Option) (*SetMerger, error) {
	cfg, err := newSetConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &SetMerger{cfg: cfg}, nil
}

// Merge fetches, parses, and merges all sources in order.
//
// The method is safe for concurrent use and respects context cancellation.
func (m *SetMerger) Merge(ctx context.Context, sources []Source) (*MergeResult, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	log := m.cfg.log()
	db := m.cfg.database()

	// Resolve the HTTP client once so every remote source in the set shares
	// one connection pool.
	client := m.cfg.httpClient
	if client == nil && m.cfg.timeout > 0 {
		client = newHTTPClient(m.cfg.timeout)
	}

	members := make([]*ruleset.LGR, 0, len(sources))
	for _, src := range sources {
		name := src.Name()

		data, err := m.fetch(ctx, src, client)
		if err != nil {
			return nil, &MergeAbortedError{Source: name, Err: err}
		}

		if m.cfg.docValidator != nil {
			for _, d := range m.cfg.docValidator.ValidateDocument(name, data) {
				log.Warn("ruleset document check", "source", name, "finding", d.String())
			}
		}

		lgr, err := ruleset.Parse(data)
		if err != nil {
			log.Error("ruleset did not parse, check XML schema compliance",
				"source", name, "err", err)
			return nil, &MergeAbortedError{Source: name, Err: err}
		}

		lgr.Name = name
		lgr.AttachDatabase(db)
		members = append(members, lgr)
		log.Debug("parsed member ruleset",
			"source", name, "records", len(lgr.Repertoire))
	}

	setName := m.cfg.setName
	if setName == "" {
		setName = defaultSetName
	}

	merged, err := merge.Union(members, setName)
	if err != nil {
		return nil, fmt.Errorf("merge %d rulesets: %w", len(members), err)
	}
	merged.AttachDatabase(db)

	log.Info("merged LGR set",
		"set", setName, "sources", len(members), "records", len(merged.Repertoire))

	return &MergeResult{
		Merged:  merged,
		Members: members,
		SetName: setName,
		Summary: summarizeMerge(members, merged),
	}, nil
}

// fetch resolves one source to raw document bytes. The cache is consulted
// first when configured; cache failures degrade to a direct fetch.
func (m *SetMerger) fetch(ctx context.Context, src Source, client *http.Client) ([]byte, error) {
	log := m.cfg.log()
	name := src.Name()

	if m.cfg.cache != nil {
		content, ok, err := m.cfg.cache.Get(ctx, name)
		if err != nil {
			log.Debug("cache get failed, fetching directly", "source", name, "err", err)
		} else if ok {
			log.Debug("cache hit", "source", name)
			return content, nil
		}
	}

	// Bind configured client settings to remote sources that carry none.
	if hs, ok := src.(*httpSource); ok && hs.client == nil && client != nil {
		src = hs.withClient(client)
	}

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	if m.cfg.cache != nil {
		if err := m.cfg.cache.Put(ctx, name, data); err != nil {
			log.Debug("cache put failed", "source", name, "err", err)
		}
	}
	return data, nil
}
