package obs

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"metalcast/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	tickerFileName   = "news_ticker.txt"
	cycleLogFileName = "commentary_log.json"
	maxTickerItems   = 10

	welcomeText = "Welcome to Metalcast - 24/7 Precious Metals Market Coverage"

	cycleLogRedisKey = "metalcast:cycle_log"
	cycleLogRedisTTL = 10 * time.Minute
)

type RedisWriter interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Artifacts writes the per-cycle files consumed by the streaming layer: the
// scrolling news ticker and the commentary log. The log is also mirrored to
// Redis when a client is configured, so other processes can read it without
// touching the filesystem.
type Artifacts struct {
	dir   string
	redis RedisWriter
}

func NewArtifacts(dir string, redisClient RedisWriter) *Artifacts {
	if dir == "" {
		dir = "assets"
	}
	return &Artifacts{dir: dir, redis: redisClient}
}

// WriteTicker renders up to ten headlines as a single bullet-joined line.
// With no articles it falls back to the fixed welcome string, so the ticker
// source never goes blank.
func (a *Artifacts) WriteTicker(articles []domain.Article) error {
	text := welcomeText
	if len(articles) > 0 {
		limit := len(articles)
		if limit > maxTickerItems {
			limit = maxTickerItems
		}
		parts := make([]string, 0, limit)
		for _, article := range articles[:limit] {
			title := strings.Join(strings.Fields(article.Title), " ")
			parts = append(parts, "• "+title)
		}
		text = strings.Join(parts, "   ")
	}

	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(a.dir, tickerFileName), []byte(text), 0o644)
}

// CycleLog is the JSON shape of the per-cycle commentary dump.
type CycleLog struct {
	GeneratedAt time.Time               `json:"generated_at"`
	Queue       []domain.CommentaryItem `json:"queue"`
	Cooldowns   map[string]time.Time    `json:"cooldowns"`
}

// WriteCycleLog dumps the current queue contents and cooldown timestamps.
func (a *Artifacts) WriteCycleLog(items []domain.CommentaryItem, cooldowns map[string]time.Time, now time.Time) error {
	entry := CycleLog{GeneratedAt: now, Queue: items, Cooldowns: cooldowns}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(a.dir, cycleLogFileName), data, 0o644); err != nil {
		return err
	}

	if a.redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.redis.Set(ctx, cycleLogRedisKey, data, cycleLogRedisTTL).Err(); err != nil {
			log.Printf("cycle log redis mirror failed: %v", err)
		}
	}
	return nil
}

type RedisReader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// ReadCycleLog loads the most recent cycle log from the Redis mirror. Nil
// with no error means no cycle has been logged within the mirror TTL.
func ReadCycleLog(ctx context.Context, client RedisReader) (*CycleLog, error) {
	data, err := client.Get(ctx, cycleLogRedisKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entry CycleLog
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// TickerPath returns where the ticker file lives, for the scene collection.
func (a *Artifacts) TickerPath() string {
	return filepath.Join(a.dir, tickerFileName)
}
