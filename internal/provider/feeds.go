package provider

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"metalcast/internal/config"
	"metalcast/internal/domain"

	"github.com/mmcdole/gofeed"
	"go.opentelemetry.io/otel/trace"
)

const (
	feedFetchTimeout = 8 * time.Second
	maxArticleAge    = 7 * 24 * time.Hour
	summaryMaxRunes  = 300
)

// FeedProvider fetches a single configured feed and normalizes its entries
// into articles. Aggregation across sources lives in the newsfeed package.
type FeedProvider struct {
	parser *gofeed.Parser
	tracer trace.Tracer

	nowFunc func() time.Time
}

func NewFeedProvider(tracer trace.Tracer) *FeedProvider {
	parser := gofeed.NewParser()
	parser.UserAgent = "metalcast/1.0"
	return &FeedProvider{
		parser:  parser,
		tracer:  tracer,
		nowFunc: time.Now,
	}
}

// FetchSource retrieves one feed and returns its normalized articles.
// Entries missing a title or link are skipped, as are entries older than the
// 7-day cutoff. Defaulting is total: a missing published date falls back to
// the updated date, then to fetch time.
func (p *FeedProvider) FetchSource(ctx context.Context, source config.Source) ([]domain.Article, error) {
	_, span := p.tracer.Start(ctx, "feeds.fetch-source")
	defer span.End()

	fetchCtx, cancel := context.WithTimeout(ctx, feedFetchTimeout)
	defer cancel()

	feed, err := p.parser.ParseURLWithContext(source.URL, fetchCtx)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", source.Name, err)
	}

	now := p.nowFunc()
	cutoff := now.Add(-maxArticleAge)

	articles := make([]domain.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || item.Title == "" || item.Link == "" {
			continue
		}

		published := now
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}
		if published.Before(cutoff) {
			continue
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}

		articles = append(articles, domain.Article{
			Title:       strings.TrimSpace(item.Title),
			URL:         item.Link,
			Source:      source.Name,
			PublishedAt: published,
			Summary:     truncate(stripHTML(summary), summaryMaxRunes),
			ImageURL:    itemImageURL(item),
			Category:    source.Category,
		})
	}

	return articles, nil
}

// itemImageURL picks the first usable image reference from the entry.
func itemImageURL(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func stripHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&#39;", "'")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return strings.TrimSpace(string(runes[:maxRunes])) + "..."
}
