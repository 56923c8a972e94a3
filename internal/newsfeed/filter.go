package newsfeed

import (
	"strings"

	"metalcast/internal/domain"
)

// FilterRelevant keeps only articles where at least one keyword occurs,
// case-insensitively, in the title or summary. Pure filter: never adds or
// reorders. With no keywords nothing can match, so everything is dropped;
// config.Load always supplies defaults, so that case only arises when a
// caller passes an explicit empty set.
func FilterRelevant(articles []domain.Article, keywords []string) []domain.Article {
	if len(keywords) == 0 {
		return nil
	}

	relevant := make([]domain.Article, 0, len(articles))
	for _, article := range articles {
		content := strings.ToLower(article.Title + " " + article.Summary)
		for _, keyword := range keywords {
			if strings.Contains(content, strings.ToLower(keyword)) {
				relevant = append(relevant, article)
				break
			}
		}
	}
	return relevant
}
