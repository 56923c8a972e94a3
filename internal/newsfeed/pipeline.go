package newsfeed

import (
	"context"
	"log"
	"sort"
	"time"

	"metalcast/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// Pipeline is the single fetch operation over the news side of the system:
// aggregate, filter, deduplicate, sort newest-first, cache.
type Pipeline struct {
	tracer     trace.Tracer
	aggregator *Aggregator
	keywords   []string
	cache      *Cache
}

func NewPipeline(tracer trace.Tracer, aggregator *Aggregator, keywords []string, ttl time.Duration) *Pipeline {
	return &Pipeline{
		tracer:     tracer,
		aggregator: aggregator,
		keywords:   keywords,
		cache:      NewCache(ttl),
	}
}

// Fetch returns up to maxCount articles, serving the cached snapshot inside
// the TTL window and refreshing otherwise. Warnings carry per-source
// failures from a refresh; a cache hit has none.
func (p *Pipeline) Fetch(ctx context.Context, now time.Time, maxCount int) ([]domain.Article, []string) {
	_, span := p.tracer.Start(ctx, "newsfeed.fetch")
	defer span.End()

	if articles, ok := p.cache.Get(now); ok {
		return capArticles(articles, maxCount), nil
	}

	raw, warnings := p.aggregator.FetchAll(ctx)
	relevant := FilterRelevant(raw, p.keywords)
	unique := Deduplicate(relevant)

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].PublishedAt.After(unique[j].PublishedAt)
	})

	p.cache.Replace(unique, now)
	log.Printf("News refresh: %d raw, %d relevant, %d unique", len(raw), len(relevant), len(unique))

	return capArticles(unique, maxCount), warnings
}

// Cached exposes the current snapshot without any freshness check, for the
// read-only surfaces (API, bot, dashboard).
func (p *Pipeline) Cached(maxCount int) []domain.Article {
	return capArticles(p.cache.Latest(), maxCount)
}

func capArticles(articles []domain.Article, maxCount int) []domain.Article {
	if maxCount > 0 && len(articles) > maxCount {
		return articles[:maxCount]
	}
	return articles
}
