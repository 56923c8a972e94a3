package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"metalcast/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const (
	priceCacheTTL = 90 * time.Second
	// historyCapacity bounds the per-metal in-memory price ring used by the
	// history endpoint and the dashboard sparkline.
	historyCapacity = 100
)

type PriceProvider interface {
	FetchPrices(ctx context.Context) (map[string]*domain.PriceSnapshot, error)
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// PriceService orchestrates price fetching, caching, and retrieval.
type PriceService struct {
	tracer   trace.Tracer
	provider PriceProvider
	redis    RedisClient

	mu      sync.Mutex
	history map[string][]domain.PricePoint

	nowFunc func() time.Time
}

func NewPriceService(tracer trace.Tracer, provider PriceProvider, redisClient RedisClient) *PriceService {
	return &PriceService{
		tracer:   tracer,
		provider: provider,
		redis:    redisClient,
		history:  make(map[string][]domain.PricePoint),
		nowFunc:  time.Now,
	}
}

// GetCurrentPrice returns the latest cached price for a metal symbol.
// Falls back to a live API call if cache is empty/expired.
func (s *PriceService) GetCurrentPrice(ctx context.Context, symbol string) (*domain.PriceSnapshot, error) {
	_, span := s.tracer.Start(ctx, "price-service.get-current-price")
	defer span.End()

	if _, ok := domain.MetalName[symbol]; !ok {
		return nil, fmt.Errorf("unsupported symbol: %s", symbol)
	}

	if s.redis != nil {
		cached, err := s.getPriceCache(ctx, symbol)
		if err != nil {
			log.Printf("redis cache read error: %v", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	// Cache miss: fetch all prices (single batched API call), cache them
	prices, err := s.provider.FetchPrices(ctx)
	if err != nil {
		return nil, err
	}
	s.storeAll(ctx, prices)

	snap, ok := prices[symbol]
	if !ok {
		return nil, fmt.Errorf("price not available for %s", symbol)
	}
	return snap, nil
}

// GetCurrentPrices returns latest cached prices for all supported metals.
func (s *PriceService) GetCurrentPrices(ctx context.Context) ([]*domain.PriceSnapshot, error) {
	_, span := s.tracer.Start(ctx, "price-service.get-current-prices")
	defer span.End()

	var snapshots []*domain.PriceSnapshot
	var missing []string

	for _, symbol := range domain.SupportedMetals {
		if s.redis != nil {
			cached, _ := s.getPriceCache(ctx, symbol)
			if cached != nil {
				snapshots = append(snapshots, cached)
				continue
			}
		}
		missing = append(missing, symbol)
	}

	if len(missing) > 0 {
		prices, err := s.provider.FetchPrices(ctx)
		if err != nil {
			return snapshots, err
		}
		s.storeAll(ctx, prices)
		snapshots = snapshots[:0]
		for _, symbol := range domain.SupportedMetals {
			if snap, ok := prices[symbol]; ok {
				snapshots = append(snapshots, snap)
			}
		}
	}

	return snapshots, nil
}

// RefreshPrices fetches fresh prices from the provider, caches them, and
// appends to the history rings. The orchestrator calls this once per cycle.
func (s *PriceService) RefreshPrices(ctx context.Context) ([]*domain.PriceSnapshot, error) {
	_, span := s.tracer.Start(ctx, "price-service.refresh-prices")
	defer span.End()

	prices, err := s.provider.FetchPrices(ctx)
	if err != nil {
		return nil, err
	}
	s.storeAll(ctx, prices)

	snapshots := make([]*domain.PriceSnapshot, 0, len(prices))
	for _, symbol := range domain.SupportedMetals {
		if snap, ok := prices[symbol]; ok {
			snapshots = append(snapshots, snap)
		}
	}
	log.Printf("Refreshed prices for %d metals", len(snapshots))
	return snapshots, nil
}

// History returns a copy of the in-memory price ring for a symbol, oldest
// first.
func (s *PriceService) History(symbol string) []domain.PricePoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	points := s.history[symbol]
	out := make([]domain.PricePoint, len(points))
	copy(out, points)
	return out
}

func (s *PriceService) storeAll(ctx context.Context, prices map[string]*domain.PriceSnapshot) {
	now := s.nowFunc()
	for _, snap := range prices {
		if s.redis != nil {
			if err := s.setPriceCache(ctx, snap); err != nil {
				log.Printf("redis cache write error for %s: %v", snap.Symbol, err)
			}
		}
		s.recordHistory(snap, now)
	}
}

func (s *PriceService) recordHistory(snap *domain.PriceSnapshot, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	points := append(s.history[snap.Symbol], domain.PricePoint{Time: now, PriceUSD: snap.PriceUSD})
	if len(points) > historyCapacity {
		points = points[len(points)-historyCapacity:]
	}
	s.history[snap.Symbol] = points
}

func (s *PriceService) setPriceCache(ctx context.Context, snapshot *domain.PriceSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, "price:"+snapshot.Symbol, data, priceCacheTTL).Err()
}

func (s *PriceService) getPriceCache(ctx context.Context, symbol string) (*domain.PriceSnapshot, error) {
	data, err := s.redis.Get(ctx, "price:"+symbol).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snapshot domain.PriceSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
