package newsfeed

import (
	"testing"
	"time"

	"metalcast/internal/domain"
)

var dedupBase = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func TestDeduplicateKeepsNewerOfSameURL(t *testing.T) {
	articles := []domain.Article{
		{Title: "Gold hits record high", URL: "https://example.com/gold?utm_source=rss", PublishedAt: dedupBase},
		{Title: "Gold hits record high", URL: "https://example.com/gold/", PublishedAt: dedupBase.Add(3 * time.Minute)},
	}

	got := Deduplicate(articles)
	if len(got) != 1 {
		t.Fatalf("expected 1 article, got %d", len(got))
	}
	if !got[0].PublishedAt.Equal(dedupBase.Add(3 * time.Minute)) {
		t.Error("the more recent duplicate should survive")
	}
}

func TestDeduplicateNearIdenticalTitles(t *testing.T) {
	articles := []domain.Article{
		{Title: "Gold hits record high", URL: "https://a.example.com/1", PublishedAt: dedupBase},
		{Title: "Gold Hits Record High!", URL: "https://b.example.com/2", PublishedAt: dedupBase.Add(3 * time.Minute)},
	}

	got := Deduplicate(articles)
	if len(got) != 1 {
		t.Fatalf("expected 1 article, got %d", len(got))
	}
	if got[0].URL != "https://b.example.com/2" {
		t.Errorf("the later article should survive, got %q", got[0].URL)
	}
}

func TestDeduplicateKeepsDistinctStories(t *testing.T) {
	articles := []domain.Article{
		{Title: "Gold hits record high", URL: "https://a.example.com/1", PublishedAt: dedupBase},
		{Title: "Platinum supply deficit widens", URL: "https://a.example.com/2", PublishedAt: dedupBase.Add(time.Minute)},
		{Title: "Silver rallies on industrial demand", URL: "https://a.example.com/3", PublishedAt: dedupBase.Add(2 * time.Minute)},
	}

	if got := Deduplicate(articles); len(got) != 3 {
		t.Errorf("expected 3 distinct articles, got %d", len(got))
	}
}

func TestDeduplicateIdempotent(t *testing.T) {
	articles := []domain.Article{
		{Title: "Gold hits record high", URL: "https://a.example.com/1", PublishedAt: dedupBase},
		{Title: "Gold Hits Record High!", URL: "https://b.example.com/2", PublishedAt: dedupBase.Add(3 * time.Minute)},
		{Title: "Platinum supply deficit widens", URL: "https://a.example.com/3", PublishedAt: dedupBase.Add(time.Minute)},
	}

	once := Deduplicate(articles)
	twice := Deduplicate(once)
	if len(once) != len(twice) {
		t.Fatalf("second pass changed the set: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].URL != twice[i].URL {
			t.Errorf("second pass reordered index %d: %q vs %q", i, once[i].URL, twice[i].URL)
		}
	}
}

func TestDeduplicateDoesNotMutateInput(t *testing.T) {
	articles := []domain.Article{
		{Title: "b", URL: "https://a.example.com/b", PublishedAt: dedupBase},
		{Title: "a much longer distinct headline", URL: "https://a.example.com/a", PublishedAt: dedupBase.Add(time.Hour)},
	}

	Deduplicate(articles)
	if articles[0].Title != "b" {
		t.Error("input slice order should be untouched")
	}
}
