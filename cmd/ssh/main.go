package main

import (
	"context"
	"fmt"
	"log"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"metalcast/internal/cache"
	"metalcast/internal/config"
	"metalcast/internal/domain"
	"metalcast/internal/newsfeed"
	"metalcast/internal/obs"
	"metalcast/internal/provider"
	"metalcast/internal/service"
	"metalcast/internal/tui"
	"metalcast/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	gossh "golang.org/x/crypto/ssh"
	"go.opentelemetry.io/otel/trace"
)

var (
	loadEnvFunc          = godotenv.Load
	loadConfigFunc       = config.Load
	initRedisFunc        = cache.InitRedis
	initTracerFunc       = tracing.InitTracer
	newMetalProviderFunc = func(tracer trace.Tracer, apiKey string) service.PriceProvider {
		return provider.NewMetalPriceProvider(tracer, apiKey)
	}
	newWishServerFunc = wish.NewServer
	setupSignalNotify = ossignal.Notify
	waitForSignalFunc = func(quit <-chan os.Signal) { <-quit }
)

// liveNews refreshes the article snapshot on demand, so the dashboard works
// without the server process running alongside.
type liveNews struct {
	pipeline *newsfeed.Pipeline
}

func (n *liveNews) Cached(maxCount int) []domain.Article {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	articles, _ := n.pipeline.Fetch(ctx, time.Now(), maxCount)
	return articles
}

// mirrorQueue reads the commentary queue from the cycle-log mirror the
// server process keeps in Redis.
type mirrorQueue struct {
	redis obs.RedisReader
}

func (q *mirrorQueue) Items() []domain.CommentaryItem {
	if q.redis == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	entry, err := obs.ReadCycleLog(ctx, q.redis)
	if err != nil || entry == nil {
		return nil
	}
	return entry.Queue
}

func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient := initRedisFunc(ctx, cfg.RedisURL)

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	metalProvider := newMetalProviderFunc(tracer, cfg.MetalPriceAPIKey)
	priceService := service.NewPriceService(tracer, metalProvider, redisClient)

	feedProvider := provider.NewFeedProvider(tracer)
	aggregator := newsfeed.NewAggregator(tracer, feedProvider, cfg.Sources)
	pipeline := newsfeed.NewPipeline(tracer, aggregator, cfg.Keywords, time.Duration(cfg.CacheTTLSecs)*time.Second)

	svc := tui.Services{
		Prices: priceService,
		News:   &liveNews{pipeline: pipeline},
	}
	if redisClient != nil {
		svc.Queue = &mirrorQueue{redis: redisClient}
	}

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.SSHPort)

	srv, err := newWishServerFunc(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		// Read-only dashboard; any key gets in, logged by fingerprint.
		wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			log.Printf("SSH session: user=%s fingerprint=%s", ctx.User(), gossh.FingerprintSHA256(key))
			return true
		}),
		wish.WithMiddleware(
			bubbletea.Middleware(func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
				model := tui.NewDashboardModel(svc)
				pty, _, _ := s.Pty()
				model.SetSize(pty.Window.Width, pty.Window.Height)
				return model, []tea.ProgramOption{tea.WithAltScreen()}
			}),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatalf("failed to create SSH server: %v", err)
	}

	if srv != nil {
		go func() {
			log.Printf("SSH server listening on %s", addr)
			if err := srv.ListenAndServe(); err != nil {
				log.Printf("SSH server stopped: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down SSH server...")

	cancel()

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("SSH server shutdown error: %v", err)
		}
	}

	log.Println("SSH server exited")
}
