package handler

import (
	"metalcast/internal/domain"
	"metalcast/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// NewsReader exposes the current article snapshot to the API.
type NewsReader interface {
	Cached(maxCount int) []domain.Article
}

type Handler struct {
	tracer       trace.Tracer
	priceService *service.PriceService
	news         NewsReader
	stream       *service.StreamService
}

func New(tracer trace.Tracer, priceService *service.PriceService, news NewsReader, stream *service.StreamService) *Handler {
	return &Handler{
		tracer:       tracer,
		priceService: priceService,
		news:         news,
		stream:       stream,
	}
}

// RegisterRoutes mounts the API. Health stays unauthenticated; everything
// under /api passes through auth when one is supplied.
func (h *Handler) RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	if auth != nil {
		api.Use(auth)
	}
	api.GET("/prices", h.GetAllPrices)
	api.GET("/prices/:symbol", h.GetPrice)
	api.GET("/history/:symbol", h.GetHistory)
	api.GET("/articles", h.GetArticles)
	api.GET("/commentary/queue", h.GetCommentaryQueue)
	api.POST("/commentary/next", h.NextCommentary)
}
