package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"metalcast/internal/commentary"
	"metalcast/internal/domain"
	"metalcast/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type stubPriceProvider struct {
	prices map[string]*domain.PriceSnapshot
}

func (s *stubPriceProvider) FetchPrices(_ context.Context) (map[string]*domain.PriceSnapshot, error) {
	return s.prices, nil
}

type stubNewsReader struct {
	articles []domain.Article
}

func (s *stubNewsReader) Cached(maxCount int) []domain.Article {
	if maxCount < len(s.articles) {
		return s.articles[:maxCount]
	}
	return s.articles
}

func newTestHandler(news NewsReader, queueItems ...domain.CommentaryItem) *Handler {
	tracer := trace.NewNoopTracerProvider().Tracer("test")
	provider := &stubPriceProvider{prices: map[string]*domain.PriceSnapshot{
		"XAU": {Symbol: "XAU", Name: "Gold", PriceUSD: 2400, Currency: "USD", Unit: "troy_oz"},
		"XAG": {Symbol: "XAG", Name: "Silver", PriceUSD: 31, Currency: "USD", Unit: "troy_oz"},
		"XPT": {Symbol: "XPT", Name: "Platinum", PriceUSD: 980, Currency: "USD", Unit: "troy_oz"},
		"XPD": {Symbol: "XPD", Name: "Palladium", PriceUSD: 1020, Currency: "USD", Unit: "troy_oz"},
	}}
	priceService := service.NewPriceService(tracer, provider, nil)

	queue := commentary.NewQueue(50)
	queue.Enqueue(queueItems...)
	cooldowns := commentary.NewCooldowns(300*time.Second, 600*time.Second, 1800*time.Second)
	stream := service.NewStreamService(tracer, priceService, nil, commentary.NewGenerator(cooldowns), cooldowns, queue, nil, nil, nil, service.StreamConfig{})

	if news == nil {
		news = &stubNewsReader{}
	}
	return New(tracer, priceService, news, stream)
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r, nil)
	return r
}

func TestHealth(t *testing.T) {
	r := newTestRouter(newTestHandler(nil))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["status"] != "healthy" || body["service"] != "metalcast" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestGetPrice(t *testing.T) {
	r := newTestRouter(newTestHandler(nil))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/prices/xau", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var snap domain.PriceSnapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Symbol != "XAU" || snap.Name != "Gold" {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestGetPriceUnsupportedSymbol(t *testing.T) {
	r := newTestRouter(newTestHandler(nil))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/prices/BTC", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestGetAllPrices(t *testing.T) {
	r := newTestRouter(newTestHandler(nil))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/prices", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var body struct {
		Prices []domain.PriceSnapshot `json:"prices"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Prices) != 4 {
		t.Errorf("expected 4 prices, got %d", len(body.Prices))
	}
}

func TestGetHistoryUnsupportedSymbol(t *testing.T) {
	r := newTestRouter(newTestHandler(nil))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/history/DOGE", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestGetArticles(t *testing.T) {
	news := &stubNewsReader{articles: []domain.Article{
		{Title: "Gold hits record high", Source: "kitco"},
		{Title: "Silver demand climbs", Source: "mining"},
	}}
	r := newTestRouter(newTestHandler(news))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/articles?limit=1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var body struct {
		Count    int              `json:"count"`
		Articles []domain.Article `json:"articles"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 1 || body.Articles[0].Title != "Gold hits record high" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestGetCommentaryQueue(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	h := newTestHandler(nil,
		domain.CommentaryItem{Text: "high", Priority: 1, Category: domain.CategoryNews, CreatedAt: now},
		domain.CommentaryItem{Text: "low", Priority: 3, Category: domain.CategoryAnalysis, CreatedAt: now},
	)
	r := newTestRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/commentary/queue", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var body struct {
		Depth int                     `json:"depth"`
		Items []domain.CommentaryItem `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Depth != 2 || body.Items[0].Text != "high" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestNextCommentary(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	h := newTestHandler(nil,
		domain.CommentaryItem{Text: "only", Priority: 1, Category: domain.CategoryNews, CreatedAt: now},
	)
	r := newTestRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/commentary/next", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var item domain.CommentaryItem
	if err := json.Unmarshal(w.Body.Bytes(), &item); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if item.Text != "only" {
		t.Errorf("unexpected item: %+v", item)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/api/commentary/next", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 on empty queue, got %d", w.Code)
	}
}

func TestAPIKeyAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(APIKeyAuth("secret"))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing key should be 401, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-API-Key", "wrong")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("wrong key should be 403, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-API-Key", "secret")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("valid key should pass, got %d", w.Code)
	}
}
