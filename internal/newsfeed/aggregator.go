package newsfeed

import (
	"context"
	"log"
	"time"

	"metalcast/internal/config"
	"metalcast/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// SourceFetcher retrieves normalized articles for one configured source.
type SourceFetcher interface {
	FetchSource(ctx context.Context, source config.Source) ([]domain.Article, error)
}

// Aggregator fans out over the configured sources sequentially. A failing
// source contributes zero articles and a warning; it never aborts the
// others. A politeness delay separates consecutive fetches so no origin is
// hammered.
type Aggregator struct {
	tracer  trace.Tracer
	fetcher SourceFetcher
	sources []config.Source

	sourceDelay time.Duration
}

func NewAggregator(tracer trace.Tracer, fetcher SourceFetcher, sources []config.Source) *Aggregator {
	return &Aggregator{
		tracer:      tracer,
		fetcher:     fetcher,
		sources:     sources,
		sourceDelay: time.Second,
	}
}

// FetchAll returns the union of all successfully parsed articles, unsorted,
// plus one warning string per failed source.
func (a *Aggregator) FetchAll(ctx context.Context) ([]domain.Article, []string) {
	_, span := a.tracer.Start(ctx, "newsfeed.fetch-all")
	defer span.End()

	var all []domain.Article
	var warnings []string

	for i, source := range a.sources {
		if i > 0 {
			select {
			case <-ctx.Done():
				warnings = append(warnings, "aggregate: "+ctx.Err().Error())
				return all, warnings
			case <-time.After(a.sourceDelay):
			}
		}

		articles, err := a.fetcher.FetchSource(ctx, source)
		if err != nil {
			log.Printf("feed %s unavailable: %v", source.Name, err)
			warnings = append(warnings, "feed:"+source.Name+": "+err.Error())
			continue
		}
		all = append(all, articles...)
	}

	return all, warnings
}
