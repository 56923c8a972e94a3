package commentary

import (
	"fmt"
	"sync"
)

// Typed facts consumed by the template functions. Each template fills every
// placeholder; which template runs is a presentation choice only.

type PriceFact struct {
	Metal     string
	Price     float64
	Direction string
	AbsChange float64
	AbsPct    float64
}

type NewsFact struct {
	Headline string
	Source   string
}

type StatusFact struct {
	Status        string
	OpenMarkets   string
	ClosedMarkets string
}

type AnalysisFact struct {
	Metal     string
	Trend     string
	Sentiment string
	Pattern   string
}

var priceTemplates = []func(PriceFact) string{
	func(f PriceFact) string {
		return fmt.Sprintf("Breaking: %s is now trading at $%.2f, %s by $%.2f today.", f.Metal, f.Price, f.Direction, f.AbsChange)
	},
	func(f PriceFact) string {
		return fmt.Sprintf("Market update: %s prices %s to $%.2f, showing %s momentum.", f.Metal, f.Direction, f.Price, f.Direction)
	},
	func(f PriceFact) string {
		return fmt.Sprintf("Precious metals alert: %s at $%.2f, %s by %.1f%% in the last 24 hours.", f.Metal, f.Price, f.Direction, f.AbsPct)
	},
}

var newsTemplates = []func(NewsFact) string{
	func(f NewsFact) string { return "Latest development: " + f.Headline },
	func(f NewsFact) string { return fmt.Sprintf("Breaking news from %s: %s", f.Source, f.Headline) },
	func(f NewsFact) string { return "Market-moving news: " + f.Headline },
}

var statusTemplates = []func(StatusFact) string{
	func(f StatusFact) string {
		return fmt.Sprintf("Markets are currently %s with %s trading actively.", f.Status, f.OpenMarkets)
	},
	func(f StatusFact) string {
		return fmt.Sprintf("Global market overview: %s are open, %s are closed.", f.OpenMarkets, f.ClosedMarkets)
	},
	func(f StatusFact) string {
		return fmt.Sprintf("Trading activity: %s sessions are currently active worldwide.", f.OpenMarkets)
	},
}

var analysisTemplates = []func(AnalysisFact) string{
	func(f AnalysisFact) string {
		return fmt.Sprintf("Technical analysis suggests %s is showing %s patterns.", f.Metal, f.Trend)
	},
	func(f AnalysisFact) string {
		return fmt.Sprintf("Market sentiment for %s appears %s based on recent price action.", f.Metal, f.Sentiment)
	},
	func(f AnalysisFact) string {
		return fmt.Sprintf("Looking at the charts, %s is demonstrating %s behavior.", f.Metal, f.Pattern)
	},
}

// templatePicker rotates through each category's templates in order, so
// repeated commentary varies phrasing without hidden randomness.
type templatePicker struct {
	mu       sync.Mutex
	counters map[string]int
}

func newTemplatePicker() *templatePicker {
	return &templatePicker{counters: make(map[string]int)}
}

func (p *templatePicker) next(category string, count int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	index := p.counters[category] % count
	p.counters[category]++
	return index
}
