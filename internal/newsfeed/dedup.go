package newsfeed

import (
	"sort"
	"strings"

	"metalcast/internal/domain"
)

// duplicateThreshold is the title-similarity ratio above which two articles
// are treated as the same story.
const duplicateThreshold = 0.8

// Deduplicate removes near-duplicate articles, keeping the most recently
// published representative of each cluster. An article is a duplicate when
// its normalized URL was already kept, or when its title is more than 80%
// similar to any kept title. Quadratic in the kept-set size; the pipeline
// runs on tens of articles per cycle.
func Deduplicate(articles []domain.Article) []domain.Article {
	ordered := make([]domain.Article, len(articles))
	copy(ordered, articles)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PublishedAt.After(ordered[j].PublishedAt)
	})

	seenURLs := make(map[string]struct{}, len(ordered))
	kept := make([]domain.Article, 0, len(ordered))
	keptTitles := make([]string, 0, len(ordered))

	for _, article := range ordered {
		url := domain.NormalizeArticleURL(article.URL)
		if _, ok := seenURLs[url]; ok {
			continue
		}

		title := strings.ToLower(article.Title)
		duplicate := false
		for _, keptTitle := range keptTitles {
			if Similarity(title, keptTitle) > duplicateThreshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		seenURLs[url] = struct{}{}
		kept = append(kept, article)
		keptTitles = append(keptTitles, title)
	}

	return kept
}
