package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"metalcast/internal/domain"
)

const refreshEvery = 30 * time.Second

type PriceReader interface {
	GetCurrentPrices(ctx context.Context) ([]*domain.PriceSnapshot, error)
}

type NewsReader interface {
	Cached(maxCount int) []domain.Article
}

type QueueReader interface {
	Items() []domain.CommentaryItem
}

// Services bundles the read-only dependencies the dashboard renders.
type Services struct {
	Prices PriceReader
	News   NewsReader
	Queue  QueueReader
}

type tickMsg time.Time

type dataMsg struct {
	prices   []*domain.PriceSnapshot
	articles []domain.Article
	queue    []domain.CommentaryItem
	err      error
}

// DashboardModel is the SSH status view: current metal prices, the latest
// headlines, and the pending commentary queue.
type DashboardModel struct {
	svc Services

	width  int
	height int

	spin       spinner.Model
	refreshing bool

	prices    []*domain.PriceSnapshot
	articles  []domain.Article
	queue     []domain.CommentaryItem
	err       error
	updatedAt time.Time
}

func NewDashboardModel(svc Services) *DashboardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = dimStyle
	return &DashboardModel{svc: svc, spin: sp, refreshing: true}
}

func (m *DashboardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), tickCmd(), m.spin.Tick)
}

func (m *DashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		msg := dataMsg{}
		if m.svc.Prices != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			msg.prices, msg.err = m.svc.Prices.GetCurrentPrices(ctx)
		}
		if m.svc.News != nil {
			msg.articles = m.svc.News.Cached(5)
		}
		if m.svc.Queue != nil {
			msg.queue = m.svc.Queue.Items()
		}
		return msg
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.refreshing = true
			return m, m.refreshCmd()
		}
		return m, nil

	case tickMsg:
		m.refreshing = true
		return m, tea.Batch(m.refreshCmd(), tickCmd())

	case dataMsg:
		m.prices = msg.prices
		m.articles = msg.articles
		m.queue = msg.queue
		m.err = msg.err
		m.updatedAt = time.Now()
		m.refreshing = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *DashboardModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Metalcast"))
	if m.refreshing {
		b.WriteString("  " + m.spin.View())
	}
	if !m.updatedAt.IsZero() {
		b.WriteString(dimStyle.Render("  updated " + m.updatedAt.Format("15:04:05")))
	}
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Prices"))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("price fetch failed: "+m.err.Error()) + "\n")
	}
	if len(m.prices) == 0 && m.err == nil {
		b.WriteString(dimStyle.Render("loading...") + "\n")
	}
	for _, snap := range m.prices {
		b.WriteString(renderPriceRow(snap) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Headlines"))
	b.WriteString("\n")
	if len(m.articles) == 0 {
		b.WriteString(dimStyle.Render("no articles yet") + "\n")
	}
	for _, article := range m.articles {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			bulletStyle.Render("•"),
			article.Title,
			sourceStyle.Render("("+article.Source+")"),
		))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Commentary queue (%d pending)", len(m.queue))))
	b.WriteString("\n")
	limit := len(m.queue)
	if limit > 5 {
		limit = 5
	}
	for _, item := range m.queue[:limit] {
		b.WriteString(fmt.Sprintf("%s %s\n",
			priorityStyle(item.Priority).Render(fmt.Sprintf("[P%d]", item.Priority)),
			item.Text,
		))
	}

	b.WriteString("\n")
	b.WriteString(statusBarStyle.Render(" r refresh  q quit "))
	return b.String()
}

func renderPriceRow(snap *domain.PriceSnapshot) string {
	change := dimStyle.Render("    n/a")
	if snap.Change24hPct != nil {
		text := fmt.Sprintf("%+6.2f%%", *snap.Change24hPct)
		if *snap.Change24hPct >= 0 {
			change = upStyle.Render(text)
		} else {
			change = downStyle.Render(text)
		}
	}
	return fmt.Sprintf("  %-10s %-5s $%10.2f  %s",
		snap.Name, snap.Symbol, snap.PriceUSD, change)
}

func priorityStyle(priority int) lipgloss.Style {
	switch priority {
	case 1:
		return p1Style
	case 2:
		return p2Style
	default:
		return p3Style
	}
}
