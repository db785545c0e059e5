package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHistory handles GET /history
// Least recently viewed first
func (h *Handler) GetHistory(c *gin.Context) {
	history := payloadsOf(h.manager.GetHistory())
	c.JSON(http.StatusOK, gin.H{
		"history": history,
		"count":   len(history),
	})
}

// GetPrioritized handles GET /prioritized
func (h *Handler) GetPrioritized(c *gin.Context) {
	prioritized := payloadsOf(h.manager.GetPrioritizedTasks())
	c.JSON(http.StatusOK, gin.H{
		"prioritized": prioritized,
		"count":       len(prioritized),
	})
}
