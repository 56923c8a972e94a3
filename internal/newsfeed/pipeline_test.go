package newsfeed

import (
	"context"
	"testing"
	"time"

	"metalcast/internal/config"
	"metalcast/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

func newTestPipeline(fetcher *stubFetcher, sources []config.Source, keywords []string) *Pipeline {
	tracer := trace.NewNoopTracerProvider().Tracer("test")
	agg := NewAggregator(tracer, fetcher, sources)
	agg.sourceDelay = 0
	return NewPipeline(tracer, agg, keywords, 300*time.Second)
}

func TestPipelineFiltersDeduplicatesAndSorts(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	fetcher := &stubFetcher{articles: map[string][]domain.Article{
		"kitco": {
			{Title: "Gold hits record high", URL: "https://a.example.com/1", PublishedAt: now.Add(-10 * time.Minute)},
			{Title: "Tech stocks rally", URL: "https://a.example.com/2", PublishedAt: now.Add(-5 * time.Minute)},
		},
		"mining": {
			{Title: "Gold Hits Record High!", URL: "https://b.example.com/3", PublishedAt: now.Add(-7 * time.Minute)},
			{Title: "Silver demand climbs", URL: "https://b.example.com/4", PublishedAt: now.Add(-2 * time.Minute)},
		},
	}}
	pipeline := newTestPipeline(fetcher, testSources(), []string{"gold", "silver"})

	articles, warnings := pipeline.Fetch(context.Background(), now, 20)
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles after filter and dedup, got %d", len(articles))
	}
	if articles[0].Title != "Silver demand climbs" {
		t.Errorf("expected newest first, got %q", articles[0].Title)
	}
	if articles[1].URL != "https://b.example.com/3" {
		t.Errorf("expected the later gold duplicate, got %q", articles[1].URL)
	}
}

func TestPipelineServesCacheWithinTTL(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	fetcher := &stubFetcher{articles: map[string][]domain.Article{
		"kitco": {{Title: "Gold hits record high", URL: "https://a.example.com/1", PublishedAt: now}},
	}}
	pipeline := newTestPipeline(fetcher, testSources()[:1], []string{"gold"})

	pipeline.Fetch(context.Background(), now, 20)
	pipeline.Fetch(context.Background(), now.Add(time.Minute), 20)

	if len(fetcher.calls) != 1 {
		t.Errorf("second fetch inside the TTL should hit the cache, got %d source calls", len(fetcher.calls))
	}
}

func TestPipelineRefreshesAfterTTL(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	fetcher := &stubFetcher{articles: map[string][]domain.Article{
		"kitco": {{Title: "Gold hits record high", URL: "https://a.example.com/1", PublishedAt: now}},
	}}
	pipeline := newTestPipeline(fetcher, testSources()[:1], []string{"gold"})

	pipeline.Fetch(context.Background(), now, 20)
	pipeline.Fetch(context.Background(), now.Add(301*time.Second), 20)

	if len(fetcher.calls) != 2 {
		t.Errorf("fetch past the TTL should refresh, got %d source calls", len(fetcher.calls))
	}
}

func TestPipelineCapsArticleCount(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	fetcher := &stubFetcher{articles: map[string][]domain.Article{
		"kitco": {
			{Title: "Gold hits record high", URL: "https://a.example.com/1", PublishedAt: now},
			{Title: "Silver demand climbs", URL: "https://a.example.com/2", PublishedAt: now.Add(-time.Minute)},
			{Title: "Platinum supply deficit widens", URL: "https://a.example.com/3", PublishedAt: now.Add(-2 * time.Minute)},
		},
	}}
	pipeline := newTestPipeline(fetcher, testSources()[:1], []string{"gold", "silver", "platinum"})

	articles, _ := pipeline.Fetch(context.Background(), now, 2)
	if len(articles) != 2 {
		t.Errorf("expected cap of 2, got %d", len(articles))
	}
}

func TestPipelineCachedReturnsLatestSnapshot(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	fetcher := &stubFetcher{articles: map[string][]domain.Article{
		"kitco": {{Title: "Gold hits record high", URL: "https://a.example.com/1", PublishedAt: now}},
	}}
	pipeline := newTestPipeline(fetcher, testSources()[:1], []string{"gold"})

	if got := pipeline.Cached(20); len(got) != 0 {
		t.Errorf("no snapshot yet, got %d articles", len(got))
	}
	pipeline.Fetch(context.Background(), now, 20)
	if got := pipeline.Cached(20); len(got) != 1 {
		t.Errorf("expected the cached article, got %d", len(got))
	}
}
