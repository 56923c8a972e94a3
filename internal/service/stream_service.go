package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"metalcast/internal/commentary"
	"metalcast/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type NewsFetcher interface {
	Fetch(ctx context.Context, now time.Time, maxCount int) ([]domain.Article, []string)
}

type PriceRefresher interface {
	RefreshPrices(ctx context.Context) ([]*domain.PriceSnapshot, error)
}

// ArtifactWriter persists the per-cycle artifacts consumed by the streaming
// layer.
type ArtifactWriter interface {
	WriteTicker(articles []domain.Article) error
	WriteCycleLog(items []domain.CommentaryItem, cooldowns map[string]time.Time, now time.Time) error
}

// Broadcaster pushes a high-priority commentary item to an external channel.
type Broadcaster interface {
	Broadcast(ctx context.Context, item domain.CommentaryItem) error
}

type StreamConfig struct {
	MaxArticles      int
	MaxAudioPerCycle int
}

// StreamService drives one orchestration cycle: refresh prices, refresh
// news, run the commentary generators, enqueue, materialize audio, and
// write the cycle artifacts. Every step failure is recoverable; the cycle
// always runs to the end.
type StreamService struct {
	tracer      trace.Tracer
	prices      PriceRefresher
	news        NewsFetcher
	generator   *commentary.Generator
	cooldowns   *commentary.Cooldowns
	queue       *commentary.Queue
	synth       commentary.AudioSynthesizer
	artifacts   ArtifactWriter
	broadcaster Broadcaster

	cfg StreamConfig
}

func NewStreamService(
	tracer trace.Tracer,
	prices PriceRefresher,
	news NewsFetcher,
	generator *commentary.Generator,
	cooldowns *commentary.Cooldowns,
	queue *commentary.Queue,
	synth commentary.AudioSynthesizer,
	artifacts ArtifactWriter,
	broadcaster Broadcaster,
	cfg StreamConfig,
) *StreamService {
	if cfg.MaxArticles <= 0 {
		cfg.MaxArticles = 20
	}
	if cfg.MaxAudioPerCycle <= 0 {
		cfg.MaxAudioPerCycle = 5
	}
	return &StreamService{
		tracer:      tracer,
		prices:      prices,
		news:        news,
		generator:   generator,
		cooldowns:   cooldowns,
		queue:       queue,
		synth:       synth,
		artifacts:   artifacts,
		broadcaster: broadcaster,
		cfg:         cfg,
	}
}

// Queue exposes the commentary queue for the read-only surfaces.
func (s *StreamService) Queue() *commentary.Queue {
	return s.queue
}

func (s *StreamService) RunCycle(ctx context.Context, now time.Time) (domain.CycleResult, error) {
	_, span := s.tracer.Start(ctx, "stream.run-cycle")
	defer span.End()

	if s.prices == nil || s.news == nil || s.generator == nil || s.queue == nil {
		return domain.CycleResult{}, fmt.Errorf("stream service dependencies are not initialized")
	}

	now = now.UTC()
	result := domain.CycleResult{}

	snapshots, err := s.prices.RefreshPrices(ctx)
	if err != nil {
		log.Printf("price refresh failed, running cycle without price facts: %v", err)
		result.Errors = append(result.Errors, "prices: "+err.Error())
		snapshots = nil
	}
	result.PricesFetched = len(snapshots)

	prices := make([]domain.PriceSnapshot, 0, len(snapshots))
	for _, snap := range snapshots {
		if snap != nil {
			prices = append(prices, *snap)
		}
	}

	articles, warnings := s.news.Fetch(ctx, now, s.cfg.MaxArticles)
	result.Errors = append(result.Errors, warnings...)
	result.Articles = len(articles)

	var items []domain.CommentaryItem
	items = append(items, s.generator.PriceCommentary(now, prices)...)
	items = append(items, s.generator.AnalysisCommentary(now, prices)...)
	items = append(items, s.generator.NewsCommentary(now, articles)...)
	items = append(items, s.generator.MarketStatusCommentary(now)...)
	result.ItemsGenerated = len(items)

	s.queue.Enqueue(items...)

	if s.synth != nil {
		result.AudioGenerated = s.queue.Materialize(ctx, s.synth, s.cfg.MaxAudioPerCycle)
	}
	result.QueueDepth = s.queue.Len()

	if s.artifacts != nil {
		if err := s.artifacts.WriteTicker(articles); err != nil {
			result.Errors = append(result.Errors, "ticker: "+err.Error())
		}
		if err := s.artifacts.WriteCycleLog(s.queue.Items(), s.cooldowns.Snapshot(), now); err != nil {
			result.Errors = append(result.Errors, "cycle_log: "+err.Error())
		}
	}

	if s.broadcaster != nil {
		for _, item := range items {
			if item.Priority != 1 {
				continue
			}
			if err := s.broadcaster.Broadcast(ctx, item); err != nil {
				result.Errors = append(result.Errors, "broadcast: "+err.Error())
			}
		}
	}

	log.Printf("Cycle complete: %d prices, %d articles, %d items, %d audio, queue depth %d, %d errors",
		result.PricesFetched, result.Articles, result.ItemsGenerated, result.AudioGenerated, result.QueueDepth, len(result.Errors))
	return result, nil
}
