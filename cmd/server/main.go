package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"metalcast/internal/bot"
	"metalcast/internal/cache"
	"metalcast/internal/commentary"
	"metalcast/internal/config"
	"metalcast/internal/handler"
	"metalcast/internal/job"
	"metalcast/internal/newsfeed"
	"metalcast/internal/obs"
	"metalcast/internal/provider"
	"metalcast/internal/service"
	"metalcast/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "metalcast/docs"
)

var (
	loadEnvFunc          = godotenv.Load
	loadConfigFunc       = config.Load
	initRedisFunc        = cache.InitRedis
	initTracerFunc       = tracing.InitTracer
	newMetalProviderFunc = func(tracer trace.Tracer, apiKey string) service.PriceProvider {
		return provider.NewMetalPriceProvider(tracer, apiKey)
	}
	newPriceServiceFunc  = service.NewPriceService
	startStreamJobFunc   = func(j *job.StreamJob, ctx context.Context) { go j.Start(ctx) }
	startTelegramBotFunc = bot.StartTelegramBot
	newHandlerFunc       = handler.New
	newRouterFunc        = gin.Default
	setupSignalNotify    = signal.Notify
	waitForSignalFunc    = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc  = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Metalcast API
// @version         1.0
// @description     Precious metals prices, news and stream commentary.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient := initRedisFunc(ctx, cfg.RedisURL)

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// News pipeline: aggregate, filter, dedup, cache
	feedProvider := provider.NewFeedProvider(tracer)
	aggregator := newsfeed.NewAggregator(tracer, feedProvider, cfg.Sources)
	pipeline := newsfeed.NewPipeline(tracer, aggregator, cfg.Keywords, time.Duration(cfg.CacheTTLSecs)*time.Second)

	// Prices
	metalProvider := newMetalProviderFunc(tracer, cfg.MetalPriceAPIKey)
	priceService := newPriceServiceFunc(tracer, metalProvider, redisClient)

	// Commentary
	cooldowns := commentary.NewCooldowns(
		time.Duration(cfg.CooldownPriceSecs)*time.Second,
		time.Duration(cfg.CooldownNewsSecs)*time.Second,
		time.Duration(cfg.CooldownStatusSecs)*time.Second,
	)
	generator := commentary.NewGenerator(cooldowns)
	queue := commentary.NewQueue(cfg.QueueCapacity)

	var synth commentary.AudioSynthesizer
	if cfg.OpenAIAPIKey != "" {
		speechClient := provider.NewOpenAISpeechClient(cfg.OpenAIAPIKey)
		synth = provider.NewSynthesizer(tracer, speechClient, cfg.AudioDir, cfg.SpeechModel, cfg.SpeechVoice)
	} else {
		log.Println("OPENAI_API_KEY not set, commentary stays text-only")
	}

	// Stream artifacts
	artifacts := obs.NewArtifacts(cfg.AssetsDir, redisClient)
	if err := artifacts.WriteSceneCollection(); err != nil {
		log.Printf("scene collection write failed: %v", err)
	}

	// Telegram bot (optional)
	tg := startTelegramBotFunc(cfg.TelegramBotToken, cfg.TelegramChannelID, priceService, pipeline, queue)
	var broadcaster service.Broadcaster
	if tg != nil {
		broadcaster = tg
	}

	streamService := service.NewStreamService(
		tracer, priceService, pipeline, generator, cooldowns, queue, synth, artifacts, broadcaster,
		service.StreamConfig{MaxArticles: cfg.MaxArticles, MaxAudioPerCycle: cfg.MaxAudioPerCycle},
	)

	// Start the orchestration loop (stopped by ctx cancel)
	streamJob := job.NewStreamJob(tracer, streamService, time.Duration(cfg.CycleIntervalSecs)*time.Second)
	startStreamJobFunc(streamJob, ctx)

	// Create handlers and routes
	h := newHandlerFunc(tracer, priceService, pipeline, streamService)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("metalcast"))

	h.RegisterRoutes(r, handler.APIKeyAuth(cfg.APIKey))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
