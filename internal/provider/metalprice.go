package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"metalcast/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const metalPriceBaseURL = "https://api.metalpriceapi.com/v1"

// MetalPriceProvider fetches spot prices from MetalPriceAPI. The API returns
// USD-per-metal rates; prices are inverted to metal-per-USD before use.
type MetalPriceProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	tracer  trace.Tracer
	limiter *RateLimiter

	// nowFunc is swapped in tests to pin the yesterday lookup.
	nowFunc func() time.Time
}

// NewMetalPriceProvider creates a provider with built-in rate limiting.
// The free tier allows few calls, so the bucket refills slowly.
func NewMetalPriceProvider(tracer trace.Tracer, apiKey string) *MetalPriceProvider {
	return &MetalPriceProvider{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: metalPriceBaseURL,
		apiKey:  apiKey,
		tracer:  tracer,
		limiter: NewRateLimiter(6, 10*time.Second),
		nowFunc: time.Now,
	}
}

// FetchPrices fetches current prices for all supported metals in a single
// API call, then derives 24h changes from yesterday's rates. A failed batch
// call falls back to per-symbol requests; a failed change lookup leaves the
// change fields nil.
func (p *MetalPriceProvider) FetchPrices(ctx context.Context) (map[string]*domain.PriceSnapshot, error) {
	_, span := p.tracer.Start(ctx, "metalprice.fetch-prices")
	defer span.End()

	currencies := make([]string, 0, len(domain.SupportedMetals))
	for _, symbol := range domain.SupportedMetals {
		currencies = append(currencies, symbol)
	}

	url := fmt.Sprintf("%s/latest?api_key=%s&base=USD&currencies=%s",
		p.baseURL, p.apiKey, strings.Join(currencies, ","))

	body, err := p.doRequest(ctx, url)
	if err != nil {
		return p.fetchPricesIndividually(ctx)
	}

	rates, timestamp, err := parseRatesPayload(body)
	if err != nil {
		return nil, fmt.Errorf("parse prices: %w", err)
	}

	result := make(map[string]*domain.PriceSnapshot, len(rates))
	for code, rate := range rates {
		if code == "USD" || rate == 0 {
			continue
		}
		symbol := code
		name, ok := domain.MetalName[symbol]
		if !ok {
			// legacy payloads key rates as "XXAU"
			symbol = strings.TrimPrefix(code, "X")
			name, ok = domain.MetalName[symbol]
		}
		if !ok {
			continue
		}
		result[symbol] = &domain.PriceSnapshot{
			Symbol:          symbol,
			Name:            name,
			PriceUSD:        1.0 / rate,
			Currency:        "USD",
			Unit:            "oz",
			LastUpdatedUnix: timestamp,
		}
	}

	p.attachChanges(ctx, result)
	return result, nil
}

// fetchPricesIndividually is the fallback path when the batched call fails.
func (p *MetalPriceProvider) fetchPricesIndividually(ctx context.Context) (map[string]*domain.PriceSnapshot, error) {
	result := make(map[string]*domain.PriceSnapshot, len(domain.SupportedMetals))
	var lastErr error

	for _, symbol := range domain.SupportedMetals {
		url := fmt.Sprintf("%s/latest?api_key=%s&base=USD&currencies=%s",
			p.baseURL, p.apiKey, symbol)
		body, err := p.doRequest(ctx, url)
		if err != nil {
			lastErr = err
			continue
		}
		rates, timestamp, err := parseRatesPayload(body)
		if err != nil {
			lastErr = err
			continue
		}
		rate, ok := rateFor(rates, symbol)
		if !ok || rate == 0 {
			continue
		}
		result[symbol] = &domain.PriceSnapshot{
			Symbol:          symbol,
			Name:            domain.MetalName[symbol],
			PriceUSD:        1.0 / rate,
			Currency:        "USD",
			Unit:            "oz",
			LastUpdatedUnix: timestamp,
		}
	}

	if len(result) == 0 && lastErr != nil {
		return nil, fmt.Errorf("fetch prices: %w", lastErr)
	}
	p.attachChanges(ctx, result)
	return result, nil
}

// attachChanges looks up yesterday's rate per symbol and derives the absolute
// and percentage 24h change. The prior price can legitimately be zero in a
// degenerate payload, so the ratio is guarded rather than assumed.
func (p *MetalPriceProvider) attachChanges(ctx context.Context, prices map[string]*domain.PriceSnapshot) {
	yesterday := p.nowFunc().UTC().Add(-24 * time.Hour).Format("2006-01-02")

	for symbol, snap := range prices {
		url := fmt.Sprintf("%s/%s?api_key=%s&base=USD&currencies=%s",
			p.baseURL, yesterday, p.apiKey, symbol)
		body, err := p.doRequest(ctx, url)
		if err != nil {
			continue
		}
		rates, _, err := parseRatesPayload(body)
		if err != nil {
			continue
		}
		rate, ok := rateFor(rates, symbol)
		if !ok || rate == 0 {
			continue
		}
		oldPrice := 1.0 / rate
		change := snap.PriceUSD - oldPrice
		snap.Change24h = &change
		if oldPrice != 0 {
			pct := (change / oldPrice) * 100
			snap.Change24hPct = &pct
		}
	}
}

func (p *MetalPriceProvider) doRequest(ctx context.Context, url string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("metalpriceapi error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

// parseRatesPayload decodes the common {success, timestamp, rates} shape
// shared by the /latest and historical endpoints.
func parseRatesPayload(body []byte) (map[string]float64, int64, error) {
	var raw struct {
		Success   bool               `json:"success"`
		Timestamp int64              `json:"timestamp"`
		Rates     map[string]float64 `json:"rates"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, 0, err
	}
	if !raw.Success {
		return nil, 0, fmt.Errorf("metalpriceapi reported failure")
	}
	timestamp := raw.Timestamp
	if timestamp == 0 {
		timestamp = time.Now().Unix()
	}
	return raw.Rates, timestamp, nil
}

// rateFor tolerates both "XAU" and legacy "XXAU" rate keys.
func rateFor(rates map[string]float64, symbol string) (float64, bool) {
	if rate, ok := rates[symbol]; ok {
		return rate, true
	}
	rate, ok := rates["X"+symbol]
	return rate, ok
}
