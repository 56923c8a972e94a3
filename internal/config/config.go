package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Source describes one configured feed: display name, feed URL, and the
// category stamped onto every article it yields.
type Source struct {
	Name     string
	URL      string
	Category string
}

type Config struct {
	HTTPPort int
	APIKey   string
	RedisURL string

	MetalPriceAPIKey string

	Sources  []Source
	Keywords []string

	CacheTTLSecs      int
	CycleIntervalSecs int
	MaxArticles       int

	QueueCapacity    int
	MaxAudioPerCycle int

	CooldownPriceSecs  int
	CooldownNewsSecs   int
	CooldownStatusSecs int

	AssetsDir string
	AudioDir  string

	OpenAIAPIKey string
	SpeechModel  string
	SpeechVoice  string

	TelegramBotToken  string
	TelegramChannelID int64

	SSHPort        int
	SSHHostKeyPath string
}

// DefaultSources covers the precious-metals wires the pipeline ships with.
var DefaultSources = []Source{
	{Name: "Kitco", URL: "https://www.kitco.com/rss/kitco-news.xml", Category: "precious-metals"},
	{Name: "Mining", URL: "https://www.mining.com/feed/", Category: "mining"},
	{Name: "Reuters", URL: "https://www.reuters.com/tags/precious-metals/feed/", Category: "precious-metals"},
}

// DefaultKeywords gates relevance filtering when KEYWORDS is unset.
var DefaultKeywords = []string{
	"gold", "silver", "platinum", "palladium", "precious metals",
	"bullion", "mining", "commodities", "inflation", "fed", "interest rates",
	"central bank", "xau", "xag", "xpt", "xpd", "kitco", "comex", "lbma",
}

func Load() *Config {
	cfg := &Config{
		APIKey:           os.Getenv("API_KEY"),
		RedisURL:         os.Getenv("REDIS_URL"),
		MetalPriceAPIKey: os.Getenv("METALPRICE_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}
	if cfg.MetalPriceAPIKey == "" {
		log.Println("Warning: METALPRICE_API_KEY not set, price commentary will be degraded")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, audio synthesis disabled")
	}

	cfg.HTTPPort = intEnv("HTTP_PORT", 8080)
	cfg.CacheTTLSecs = intEnv("NEWS_CACHE_TTL_SECS", 300)
	cfg.CycleIntervalSecs = intEnv("CYCLE_INTERVAL_SECS", 60)
	cfg.MaxArticles = intEnv("MAX_ARTICLES", 20)
	cfg.QueueCapacity = intEnv("QUEUE_CAPACITY", 50)
	cfg.MaxAudioPerCycle = intEnv("MAX_AUDIO_PER_CYCLE", 5)
	cfg.CooldownPriceSecs = intEnv("COOLDOWN_PRICE_SECS", 300)
	cfg.CooldownNewsSecs = intEnv("COOLDOWN_NEWS_SECS", 600)
	cfg.CooldownStatusSecs = intEnv("COOLDOWN_STATUS_SECS", 1800)
	cfg.SSHPort = intEnv("SSH_PORT", 2222)

	cfg.AssetsDir = strings.TrimSpace(os.Getenv("ASSETS_DIR"))
	if cfg.AssetsDir == "" {
		cfg.AssetsDir = "assets"
	}
	cfg.AudioDir = strings.TrimSpace(os.Getenv("AUDIO_DIR"))
	if cfg.AudioDir == "" {
		cfg.AudioDir = cfg.AssetsDir + "/audio"
	}

	cfg.SpeechModel = strings.TrimSpace(os.Getenv("SPEECH_MODEL"))
	if cfg.SpeechModel == "" {
		cfg.SpeechModel = "tts-1"
	}
	cfg.SpeechVoice = strings.TrimSpace(os.Getenv("SPEECH_VOICE"))
	if cfg.SpeechVoice == "" {
		cfg.SpeechVoice = "alloy"
	}

	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("SSH_HOST_KEY_PATH"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/metalcast_host_key"
	}

	if v := strings.TrimSpace(os.Getenv("TELEGRAM_CHANNEL_ID")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.TelegramChannelID = n
		} else {
			log.Printf("Warning: invalid TELEGRAM_CHANNEL_ID=%q, broadcast disabled", v)
		}
	}

	cfg.Sources = parseSources(os.Getenv("NEWS_SOURCES"))
	cfg.Keywords = parseKeywords(os.Getenv("KEYWORDS"))

	return cfg
}

// parseSources reads a "name|url|category;name|url|category" list, falling
// back to DefaultSources when empty or unparseable.
func parseSources(raw string) []Source {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultSources
	}
	var sources []Source
	for _, entry := range strings.Split(raw, ";") {
		parts := strings.Split(strings.TrimSpace(entry), "|")
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			log.Printf("Warning: skipping malformed NEWS_SOURCES entry %q", entry)
			continue
		}
		src := Source{Name: parts[0], URL: parts[1], Category: "general"}
		if len(parts) >= 3 && parts[2] != "" {
			src.Category = parts[2]
		}
		sources = append(sources, src)
	}
	if len(sources) == 0 {
		log.Println("Warning: NEWS_SOURCES yielded no valid entries, using defaults")
		return DefaultSources
	}
	return sources
}

func parseKeywords(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultKeywords
	}
	var keywords []string
	for _, kw := range strings.Split(raw, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, strings.ToLower(kw))
		}
	}
	if len(keywords) == 0 {
		return DefaultKeywords
	}
	return keywords
}

func intEnv(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Printf("Warning: invalid %s=%q, using %d", key, v, fallback)
	}
	return fallback
}
