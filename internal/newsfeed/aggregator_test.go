package newsfeed

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"metalcast/internal/config"
	"metalcast/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type stubFetcher struct {
	articles map[string][]domain.Article
	errs     map[string]error
	calls    []string
}

func (s *stubFetcher) FetchSource(_ context.Context, source config.Source) ([]domain.Article, error) {
	s.calls = append(s.calls, source.Name)
	if err := s.errs[source.Name]; err != nil {
		return nil, err
	}
	return s.articles[source.Name], nil
}

func testSources() []config.Source {
	return []config.Source{
		{Name: "kitco", URL: "https://kitco.example.com/rss", Category: "news"},
		{Name: "mining", URL: "https://mining.example.com/rss", Category: "news"},
	}
}

func TestAggregatorCombinesSources(t *testing.T) {
	fetcher := &stubFetcher{articles: map[string][]domain.Article{
		"kitco":  {{Title: "Gold hits record high"}},
		"mining": {{Title: "Copper output falls"}, {Title: "Silver demand climbs"}},
	}}
	agg := NewAggregator(trace.NewNoopTracerProvider().Tracer("test"), fetcher, testSources())
	agg.sourceDelay = 0

	articles, warnings := agg.FetchAll(context.Background())
	if len(articles) != 3 {
		t.Errorf("expected 3 articles, got %d", len(articles))
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if len(fetcher.calls) != 2 {
		t.Errorf("expected both sources fetched, got %v", fetcher.calls)
	}
}

func TestAggregatorFailedSourceIsWarningNotError(t *testing.T) {
	fetcher := &stubFetcher{
		articles: map[string][]domain.Article{"mining": {{Title: "Copper output falls"}}},
		errs:     map[string]error{"kitco": errors.New("connection refused")},
	}
	agg := NewAggregator(trace.NewNoopTracerProvider().Tracer("test"), fetcher, testSources())
	agg.sourceDelay = 0

	articles, warnings := agg.FetchAll(context.Background())
	if len(articles) != 1 {
		t.Errorf("surviving source should contribute, got %d articles", len(articles))
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "kitco") {
		t.Errorf("expected one kitco warning, got %v", warnings)
	}
}

func TestAggregatorStopsOnCancelledContext(t *testing.T) {
	fetcher := &stubFetcher{articles: map[string][]domain.Article{
		"kitco": {{Title: "Gold hits record high"}},
	}}
	agg := NewAggregator(trace.NewNoopTracerProvider().Tracer("test"), fetcher, testSources())
	agg.sourceDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	articles, warnings := agg.FetchAll(ctx)
	if len(fetcher.calls) != 1 {
		t.Errorf("expected fetch to stop before the second source, got calls %v", fetcher.calls)
	}
	if len(articles) != 1 {
		t.Errorf("articles fetched before cancellation should be returned, got %d", len(articles))
	}
	if len(warnings) != 1 {
		t.Errorf("expected a cancellation warning, got %v", warnings)
	}
}
