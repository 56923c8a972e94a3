package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetCommentaryQueue godoc
// @Summary      Get the pending commentary queue
// @Description  Returns all queued commentary items in playback order
// @Tags         commentary
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/commentary/queue [get]
func (h *Handler) GetCommentaryQueue(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-commentary-queue")
	defer span.End()

	items := h.stream.Queue().Items()
	c.JSON(http.StatusOK, gin.H{
		"depth": len(items),
		"items": items,
	})
}

// NextCommentary godoc
// @Summary      Pop the next commentary item
// @Description  Removes and returns the highest-priority pending item; 204 when the queue is empty
// @Tags         commentary
// @Produce      json
// @Success      200  {object}  domain.CommentaryItem
// @Success      204  "queue empty"
// @Router       /api/commentary/next [post]
func (h *Handler) NextCommentary(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.next-commentary")
	defer span.End()

	item, ok := h.stream.Queue().DequeueFront()
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, item)
}
