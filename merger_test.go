package golgr

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/labelgen/go-lgr/unidb"
)

func TestSetMerger_CacheHitSkipsSource(t *testing.T) {
	cache := NewMemoryCache()
	if err := cache.Put(context.Background(), "latn.xml", []byte(testLGRLatn)); err != nil {
		t.Fatal(err)
	}

	// The path does not exist; only the cache can serve this member.
	src := FileSource(filepath.Join(t.TempDir(), "latn.xml"))

	result, err := MergeSet(context.Background(), []Source{src}, WithCache(cache))
	if err != nil {
		t.Fatalf("MergeSet() error = %v, want the cached document to be used", err)
	}
	if len(result.Members) != 1 || result.Members[0].Name != "latn.xml" {
		t.Errorf("Members = %+v, want the cached latn.xml", result.Members)
	}
}

func TestSetMerger_CachePopulatedAfterFetch(t *testing.T) {
	cache := NewMemoryCache()

	_, err := MergeSet(context.Background(), testSetSources(), WithCache(cache))
	if err != nil {
		t.Fatalf("MergeSet() error = %v", err)
	}

	if cache.Len() != 2 {
		t.Fatalf("cache.Len() = %d, want both members stored", cache.Len())
	}
	content, ok, err := cache.Get(context.Background(), "grek.xml")
	if err != nil || !ok {
		t.Fatalf("Get(grek.xml) = %v, %v, want a hit", ok, err)
	}
	if string(content) != testLGRGrek {
		t.Error("cached content differs from the source document")
	}
}

func TestSetMerger_FailingCacheDegrades(t *testing.T) {
	cache := NewFailingCache(nil, nil)

	result, err := MergeSet(context.Background(), testSetSources(), WithCache(cache))
	if err != nil {
		t.Fatalf("MergeSet() error = %v, cache failures must stay advisory", err)
	}
	if len(result.Members) != 2 {
		t.Errorf("len(Members) = %d, want 2", len(result.Members))
	}
}

func TestSetMerger_SchemaFindingsAreAdvisory(t *testing.T) {
	// The when rule is never defined, which the structural validator flags.
	doc := `<lgr xmlns="urn:ietf:params:xml:ns:lgr-1.0">
	  <data><char cp="0061" when="nosuch-rule"/></data>
	</lgr>`

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	result, err := MergeSet(context.Background(),
		[]Source{BytesSource("flagged.xml", []byte(doc))},
		append(DefaultOptions(), WithLogger(logger))...)
	if err != nil {
		t.Fatalf("MergeSet() error = %v, schema findings must not abort", err)
	}
	if len(result.Members) != 1 {
		t.Fatalf("len(Members) = %d, want the flagged document merged anyway", len(result.Members))
	}

	logged := buf.String()
	if !bytes.Contains([]byte(logged), []byte("ruleset document check")) {
		t.Errorf("log output %q does not mention the document check", logged)
	}
	if !bytes.Contains([]byte(logged), []byte("flagged.xml")) {
		t.Errorf("log output %q does not name the source", logged)
	}
}

func TestSetMerger_NoValidatorNoFindings(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	// Without WithDocumentValidator nothing is checked, so nothing is
	// logged even for a document the validator would flag.
	doc := `<lgr><data><char cp="0061" when="nosuch-rule"/></data></lgr>`
	_, err := MergeSet(context.Background(),
		[]Source{BytesSource("flagged.xml", []byte(doc))}, WithLogger(logger))
	if err != nil {
		t.Fatalf("MergeSet() error = %v", err)
	}
	if bytes.Contains(buf.Bytes(), []byte("ruleset document check")) {
		t.Errorf("log output %q reports findings without a configured validator", buf.String())
	}
}

func TestSetMerger_SharedDatabaseAttached(t *testing.T) {
	db := unidb.New()

	result, err := MergeSet(context.Background(), testSetSources(), WithUnicodeDatabase(db))
	if err != nil {
		t.Fatalf("MergeSet() error = %v", err)
	}
	if result.Merged.Database() != db {
		t.Error("merged ruleset is not using the supplied database")
	}
	for _, m := range result.Members {
		if m.Database() != db {
			t.Errorf("member %s is not using the supplied database", m.Name)
		}
	}
}

func TestSetMerger_MergeSummary(t *testing.T) {
	result := mustMergeTestSet(t)
	sum := result.Summary

	if sum.Variants != 2 {
		t.Errorf("Summary.Variants = %d, want the o/0 pair's 2 mappings", sum.Variants)
	}
	if sum.Sequences != 0 || sum.Ranges != 0 {
		t.Errorf("Summary sequences/ranges = %d/%d, want 0/0", sum.Sequences, sum.Ranges)
	}
	want := map[string]int{"latn.xml": 7, "grek.xml": 3}
	if len(sum.MemberRecords) != len(want) {
		t.Fatalf("MemberRecords = %v, want %v", sum.MemberRecords, want)
	}
	for name, n := range want {
		if sum.MemberRecords[name] != n {
			t.Errorf("MemberRecords[%s] = %d, want %d", name, sum.MemberRecords[name], n)
		}
	}
}
