package domain

import (
	"strings"
	"time"
)

// Article is a normalized news item from an external feed. Immutable once
// constructed by the aggregator; everything downstream reads it as a value.
type Article struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	Summary     string    `json:"summary"`
	ImageURL    string    `json:"image_url,omitempty"`
	Category    string    `json:"category"`
}

// NormalizeArticleURL reduces a URL to its dedup identity: lower-cased, query
// string stripped, trailing slash stripped.
func NormalizeArticleURL(raw string) string {
	url := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.Index(url, "?"); i >= 0 {
		url = url[:i]
	}
	return strings.TrimRight(url, "/")
}

// PriceSnapshot represents the latest price data for a metal. Change fields
// are nil when the provider could not derive a 24h comparison.
type PriceSnapshot struct {
	Symbol          string   `json:"symbol"`
	Name            string   `json:"name"`
	PriceUSD        float64  `json:"price_usd"`
	Currency        string   `json:"currency"`
	Unit            string   `json:"unit"`
	Change24h       *float64 `json:"change_24h,omitempty"`
	Change24hPct    *float64 `json:"change_24h_pct,omitempty"`
	LastUpdatedUnix int64    `json:"last_updated_unix"`
}

// PricePoint is one entry of the in-memory price history ring.
type PricePoint struct {
	Time     time.Time `json:"time"`
	PriceUSD float64   `json:"price_usd"`
}

// MetalName maps internal symbols to display names.
var MetalName = map[string]string{
	"XAU": "Gold",
	"XAG": "Silver",
	"XPT": "Platinum",
	"XPD": "Palladium",
}

// SupportedMetals lists all tracked metal symbols.
var SupportedMetals = []string{"XAU", "XAG", "XPT", "XPD"}

type CommentaryCategory string

const (
	CategoryMarket   CommentaryCategory = "market"
	CategoryNews     CommentaryCategory = "news"
	CategoryAnalysis CommentaryCategory = "analysis"
)

// Cooldown keys for the gated generator categories.
const (
	CooldownPriceUpdate  = "price_update"
	CooldownNewsUpdate   = "news_update"
	CooldownMarketStatus = "market_status"
)

// CommentaryItem is a generated text unit awaiting optional audio synthesis.
// Priority 1 is highest; AudioRef is attached by the materialization step.
type CommentaryItem struct {
	Text      string             `json:"text"`
	Priority  int                `json:"priority"`
	Category  CommentaryCategory `json:"category"`
	CreatedAt time.Time          `json:"created_at"`
	AudioRef  string             `json:"audio_ref,omitempty"`
}

// MarketSession is a trading session with open/close hours expressed in UTC.
type MarketSession struct {
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
	OpenUTC  int    `json:"open_utc"`
	CloseUTC int    `json:"close_utc"`
}

// Open reports whether the session is trading at t ([open, close) on the UTC
// hour).
func (s MarketSession) Open(t time.Time) bool {
	hour := t.UTC().Hour()
	return s.OpenUTC <= hour && hour < s.CloseUTC
}

// MarketSessions is the fixed session table used for market-status commentary.
var MarketSessions = []MarketSession{
	{Name: "New York", Timezone: "America/New_York", OpenUTC: 13, CloseUTC: 18},
	{Name: "London", Timezone: "Europe/London", OpenUTC: 8, CloseUTC: 15},
	{Name: "Shanghai", Timezone: "Asia/Shanghai", OpenUTC: 1, CloseUTC: 7},
	{Name: "Tokyo", Timezone: "Asia/Tokyo", OpenUTC: 0, CloseUTC: 6},
}

// CycleResult summarizes one orchestration cycle. Errors collects recoverable
// per-step failures; the cycle itself still completes.
type CycleResult struct {
	PricesFetched  int      `json:"prices_fetched"`
	Articles       int      `json:"articles"`
	ItemsGenerated int      `json:"items_generated"`
	AudioGenerated int      `json:"audio_generated"`
	QueueDepth     int      `json:"queue_depth"`
	Errors         []string `json:"errors,omitempty"`
}
