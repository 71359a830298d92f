package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"curalink-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSummarizer struct {
	calls atomic.Int32
	fail  map[string]bool
	delay time.Duration
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.fail[text] {
		return "", errors.New("model is loading")
	}
	return "sum:" + text, nil
}

type recordingSink struct {
	mu   sync.Mutex
	ids  []string
	fail map[string]bool
}

func (s *recordingSink) Save(ctx context.Context, rec model.EnrichedRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, rec.ExternalID)
	if s.fail[rec.ExternalID] {
		return errors.New("db down")
	}
	return nil
}

func pubResults(ids ...string) []model.SearchResult {
	out := make([]model.SearchResult, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.SearchResult{Source: model.SourcePubMed, ExternalID: id, Text: "text-" + id})
	}
	return out
}

func TestEnrich_SequentialSummariesAndURLs(t *testing.T) {
	s := &fakeSummarizer{}
	sink := &recordingSink{}
	e := NewEnricher(s, 1)

	got := e.Enrich(context.Background(), pubResults("1", "2"), sink)

	require.Len(t, got, 2)
	assert.Equal(t, "sum:text-1", got[0].AISummary)
	assert.Equal(t, "https://pubmed.ncbi.nlm.nih.gov/1/", got[0].DetailURL)
	assert.Equal(t, int32(2), s.calls.Load())
	assert.Equal(t, []string{"1", "2"}, sink.ids)
}

func TestEnrich_SummaryFailureUsesPlaceholder(t *testing.T) {
	s := &fakeSummarizer{fail: map[string]bool{"text-2": true}}
	e := NewEnricher(s, 1)

	got := e.Enrich(context.Background(), pubResults("1", "2", "3"), nil)

	require.Len(t, got, 3)
	assert.Equal(t, "sum:text-1", got[0].AISummary)
	assert.Equal(t, PlaceholderSummary, got[1].AISummary)
	assert.Equal(t, "sum:text-3", got[2].AISummary)
}

func TestEnrich_SinkFailureDoesNotDropRecords(t *testing.T) {
	sink := &recordingSink{fail: map[string]bool{"1": true}}
	e := NewEnricher(&fakeSummarizer{}, 1)

	got := e.Enrich(context.Background(), pubResults("1", "2"), sink)

	assert.Len(t, got, 2)
	assert.Equal(t, []string{"1", "2"}, sink.ids)
}

func TestEnrich_NilSummarizer(t *testing.T) {
	e := NewEnricher(nil, 1)
	got := e.Enrich(context.Background(), pubResults("1"), nil)
	assert.Equal(t, PlaceholderSummary, got[0].AISummary)
}

func TestEnrich_ConcurrentKeepsOrderAndCallsOncePerRecord(t *testing.T) {
	s := &fakeSummarizer{delay: 5 * time.Millisecond}
	sink := &recordingSink{}
	e := NewEnricher(s, 3)

	ids := []string{"a", "b", "c", "d", "e"}
	got := e.Enrich(context.Background(), pubResults(ids...), sink)

	require.Len(t, got, len(ids))
	for i, id := range ids {
		assert.Equal(t, id, got[i].ExternalID)
		assert.True(t, strings.HasSuffix(got[i].AISummary, id))
	}
	assert.Equal(t, int32(len(ids)), s.calls.Load())
	assert.Equal(t, ids, sink.ids)
}

func TestEnrich_TrialURL(t *testing.T) {
	e := NewEnricher(&fakeSummarizer{}, 1)
	got := e.Enrich(context.Background(), []model.SearchResult{{Source: model.SourceClinicalTrials, ExternalID: "NCT9", Text: "x"}}, nil)
	assert.Equal(t, "https://clinicaltrials.gov/study/NCT9", got[0].DetailURL)
}

func TestEnrich_Empty(t *testing.T) {
	got := NewEnricher(&fakeSummarizer{}, 1).Enrich(context.Background(), nil, nil)
	assert.Empty(t, got)
}

type cancelingSummarizer struct {
	cancel context.CancelFunc
}

func (c cancelingSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	c.cancel()
	return "sum:" + text, nil
}

type ctxCheckingSink struct {
	errs []error
}

func (s *ctxCheckingSink) Save(ctx context.Context, rec model.EnrichedRecord) error {
	s.errs = append(s.errs, ctx.Err())
	return ctx.Err()
}

func TestEnrich_CompletesAfterClientDisconnect(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sink := &ctxCheckingSink{}

	got := NewEnricher(cancelingSummarizer{cancel: cancel}, 1).Enrich(ctx, pubResults("1", "2"), sink)

	require.Error(t, ctx.Err())
	require.Len(t, got, 2)
	assert.Equal(t, "sum:text-2", got[1].AISummary)
	assert.Equal(t, []error{nil, nil}, sink.errs)
}
