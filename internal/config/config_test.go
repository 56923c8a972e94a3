package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"REDIS_URL", "NEWS_SOURCES", "KEYWORDS", "CYCLE_INTERVAL_SECS",
		"NEWS_CACHE_TTL_SECS", "QUEUE_CAPACITY", "TELEGRAM_CHANNEL_ID",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.RedisURL != "localhost:6379" {
		t.Errorf("expected default redis url, got %s", cfg.RedisURL)
	}
	if cfg.CycleIntervalSecs != 60 {
		t.Errorf("expected 60s cycle interval, got %d", cfg.CycleIntervalSecs)
	}
	if cfg.CacheTTLSecs != 300 {
		t.Errorf("expected 300s cache TTL, got %d", cfg.CacheTTLSecs)
	}
	if cfg.QueueCapacity != 50 {
		t.Errorf("expected queue capacity 50, got %d", cfg.QueueCapacity)
	}
	if len(cfg.Sources) != len(DefaultSources) {
		t.Errorf("expected default sources, got %d", len(cfg.Sources))
	}
	if len(cfg.Keywords) != len(DefaultKeywords) {
		t.Errorf("expected default keywords, got %d", len(cfg.Keywords))
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CYCLE_INTERVAL_SECS", "30")
	t.Setenv("QUEUE_CAPACITY", "10")
	t.Setenv("TELEGRAM_CHANNEL_ID", "-1001234")

	cfg := Load()

	if cfg.CycleIntervalSecs != 30 {
		t.Errorf("expected 30s cycle interval, got %d", cfg.CycleIntervalSecs)
	}
	if cfg.QueueCapacity != 10 {
		t.Errorf("expected queue capacity 10, got %d", cfg.QueueCapacity)
	}
	if cfg.TelegramChannelID != -1001234 {
		t.Errorf("expected channel id -1001234, got %d", cfg.TelegramChannelID)
	}
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	t.Setenv("CYCLE_INTERVAL_SECS", "zero")
	cfg := Load()
	if cfg.CycleIntervalSecs != 60 {
		t.Errorf("expected fallback 60, got %d", cfg.CycleIntervalSecs)
	}
}

func TestParseSources(t *testing.T) {
	sources := parseSources("Wire|https://wire.example/rss|metals;Broken entry;Blog|https://blog.example/feed")
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	if sources[0].Name != "Wire" || sources[0].Category != "metals" {
		t.Errorf("unexpected first source: %+v", sources[0])
	}
	if sources[1].Category != "general" {
		t.Errorf("expected default category, got %s", sources[1].Category)
	}
}

func TestParseKeywordsLowercases(t *testing.T) {
	keywords := parseKeywords("Gold, SILVER ,")
	if len(keywords) != 2 || keywords[0] != "gold" || keywords[1] != "silver" {
		t.Errorf("unexpected keywords: %v", keywords)
	}
}
