package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetArticles godoc
// @Summary      Get the current article snapshot
// @Description  Returns the deduplicated, relevance-filtered articles from the latest refresh
// @Tags         news
// @Produce      json
// @Param        limit  query  int  false  "Maximum number of articles (default 20)"  default(20)
// @Success      200  {object}  map[string]interface{}
// @Router       /api/articles [get]
func (h *Handler) GetArticles(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-articles")
	defer span.End()

	limit := 20
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	articles := h.news.Cached(limit)
	c.JSON(http.StatusOK, gin.H{
		"count":    len(articles),
		"articles": articles,
	})
}
