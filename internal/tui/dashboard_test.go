package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"metalcast/internal/domain"
)

type stubPrices struct {
	snapshots []*domain.PriceSnapshot
	err       error
}

func (s *stubPrices) GetCurrentPrices(_ context.Context) ([]*domain.PriceSnapshot, error) {
	return s.snapshots, s.err
}

type stubNews struct{ articles []domain.Article }

func (s *stubNews) Cached(maxCount int) []domain.Article {
	if maxCount < len(s.articles) {
		return s.articles[:maxCount]
	}
	return s.articles
}

type stubQueue struct{ items []domain.CommentaryItem }

func (s *stubQueue) Items() []domain.CommentaryItem { return s.items }

func pct(v float64) *float64 { return &v }

func newTestModel() *DashboardModel {
	return NewDashboardModel(Services{
		Prices: &stubPrices{snapshots: []*domain.PriceSnapshot{
			{Symbol: "XAU", Name: "Gold", PriceUSD: 2400, Change24hPct: pct(2.5)},
			{Symbol: "XAG", Name: "Silver", PriceUSD: 31, Change24hPct: pct(-1.1)},
		}},
		News: &stubNews{articles: []domain.Article{
			{Title: "Gold hits record high", Source: "kitco"},
		}},
		Queue: &stubQueue{items: []domain.CommentaryItem{
			{Text: "Latest development: Gold hits record high", Priority: 1, CreatedAt: time.Now()},
		}},
	})
}

func TestDashboardRefreshPopulatesView(t *testing.T) {
	model := newTestModel()

	msg := model.refreshCmd()()
	updated, _ := model.Update(msg)
	view := updated.View()

	if !strings.Contains(view, "Gold") || !strings.Contains(view, "XAU") {
		t.Errorf("view missing price row: %q", view)
	}
	if !strings.Contains(view, "Gold hits record high") {
		t.Errorf("view missing headline: %q", view)
	}
	if !strings.Contains(view, "1 pending") {
		t.Errorf("view missing queue depth: %q", view)
	}
}

func TestDashboardPriceErrorShown(t *testing.T) {
	model := NewDashboardModel(Services{Prices: &stubPrices{err: errors.New("api down")}})

	msg := model.refreshCmd()()
	updated, _ := model.Update(msg)
	view := updated.View()

	if !strings.Contains(view, "api down") {
		t.Errorf("view should surface the fetch error: %q", view)
	}
}

func TestDashboardQuitKey(t *testing.T) {
	model := newTestModel()
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestDashboardTickSchedulesRefresh(t *testing.T) {
	model := newTestModel()
	_, cmd := model.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule a refresh")
	}
}
