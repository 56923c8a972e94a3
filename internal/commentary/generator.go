package commentary

import (
	"math"
	"strings"
	"time"

	"metalcast/internal/domain"
)

const (
	// significantMovePct is the 24h percentage move below which a metal gets
	// no price commentary.
	significantMovePct = 0.5
	// highPriorityMovePct promotes a price item to priority 1.
	highPriorityMovePct = 2.0
	// maxNewsItems bounds how many headlines one news_update firing covers.
	maxNewsItems = 3
)

// Generator turns price and news facts into commentary items. The
// price_update, news_update and market_status categories are cooldown-gated;
// analysis is not.
type Generator struct {
	cooldowns *Cooldowns
	picker    *templatePicker
	sessions  []domain.MarketSession
}

func NewGenerator(cooldowns *Cooldowns) *Generator {
	return &Generator{
		cooldowns: cooldowns,
		picker:    newTemplatePicker(),
		sessions:  domain.MarketSessions,
	}
}

// PriceCommentary produces one item per metal whose 24h percentage move
// exceeds the significance threshold. Metals without a derivable change are
// skipped.
func (g *Generator) PriceCommentary(now time.Time, prices []domain.PriceSnapshot) []domain.CommentaryItem {
	if !g.cooldowns.Eligible(domain.CooldownPriceUpdate, now) {
		return nil
	}

	var items []domain.CommentaryItem
	for _, price := range prices {
		if price.Change24hPct == nil || math.Abs(*price.Change24hPct) <= significantMovePct {
			continue
		}
		pct := *price.Change24hPct
		direction := "up"
		if pct < 0 {
			direction = "down"
		}
		absChange := 0.0
		if price.Change24h != nil {
			absChange = math.Abs(*price.Change24h)
		}
		priority := 2
		if math.Abs(pct) > highPriorityMovePct {
			priority = 1
		}

		fact := PriceFact{
			Metal:     price.Name,
			Price:     price.PriceUSD,
			Direction: direction,
			AbsChange: absChange,
			AbsPct:    math.Abs(pct),
		}
		text := priceTemplates[g.picker.next("price", len(priceTemplates))](fact)
		items = append(items, domain.CommentaryItem{
			Text:      text,
			Priority:  priority,
			Category:  domain.CategoryMarket,
			CreatedAt: now,
		})
	}

	if len(items) > 0 {
		g.cooldowns.MarkFired(domain.CooldownPriceUpdate, now)
	}
	return items
}

// NewsCommentary produces one priority-1 item for each of the most recent
// cached headlines, up to maxNewsItems.
func (g *Generator) NewsCommentary(now time.Time, articles []domain.Article) []domain.CommentaryItem {
	if !g.cooldowns.Eligible(domain.CooldownNewsUpdate, now) {
		return nil
	}

	var items []domain.CommentaryItem
	for i, article := range articles {
		if i >= maxNewsItems {
			break
		}
		fact := NewsFact{Headline: article.Title, Source: article.Source}
		text := newsTemplates[g.picker.next("news", len(newsTemplates))](fact)
		items = append(items, domain.CommentaryItem{
			Text:      text,
			Priority:  1,
			Category:  domain.CategoryNews,
			CreatedAt: now,
		})
	}

	if len(items) > 0 {
		g.cooldowns.MarkFired(domain.CooldownNewsUpdate, now)
	}
	return items
}

// MarketStatusCommentary produces exactly one priority-2 item describing
// which trading sessions are open at now.
func (g *Generator) MarketStatusCommentary(now time.Time) []domain.CommentaryItem {
	if !g.cooldowns.Eligible(domain.CooldownMarketStatus, now) {
		return nil
	}

	var open, closed []string
	for _, session := range g.sessions {
		if session.Open(now) {
			open = append(open, session.Name)
		} else {
			closed = append(closed, session.Name)
		}
	}

	status := "active"
	if len(open) == 0 {
		status = "quiet"
	}
	fact := StatusFact{
		Status:        status,
		OpenMarkets:   joinOrFallback(open, "no major markets"),
		ClosedMarkets: joinOrFallback(closed, "all markets"),
	}
	text := statusTemplates[g.picker.next("status", len(statusTemplates))](fact)

	g.cooldowns.MarkFired(domain.CooldownMarketStatus, now)
	return []domain.CommentaryItem{{
		Text:      text,
		Priority:  2,
		Category:  domain.CategoryMarket,
		CreatedAt: now,
	}}
}

// AnalysisCommentary classifies each metal's 24h absolute move into a trend
// band and produces one priority-3 item per metal. Never cooldown-gated.
func (g *Generator) AnalysisCommentary(now time.Time, prices []domain.PriceSnapshot) []domain.CommentaryItem {
	var items []domain.CommentaryItem
	for _, price := range prices {
		if price.Change24h == nil {
			continue
		}

		var trend, sentiment, pattern string
		switch change := *price.Change24h; {
		case change > 1:
			trend, sentiment, pattern = "strong upward", "bullish", "breakout"
		case change > 0:
			trend, sentiment, pattern = "moderate upward", "optimistic", "accumulation"
		case change < -1:
			trend, sentiment, pattern = "strong downward", "bearish", "distribution"
		default:
			trend, sentiment, pattern = "sideways", "neutral", "consolidation"
		}

		fact := AnalysisFact{Metal: price.Name, Trend: trend, Sentiment: sentiment, Pattern: pattern}
		text := analysisTemplates[g.picker.next("analysis", len(analysisTemplates))](fact)
		items = append(items, domain.CommentaryItem{
			Text:      text,
			Priority:  3,
			Category:  domain.CategoryAnalysis,
			CreatedAt: now,
		})
	}
	return items
}

func joinOrFallback(names []string, fallback string) string {
	if len(names) == 0 {
		return fallback
	}
	return strings.Join(names, ", ")
}
