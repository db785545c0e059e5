package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"task-tracker-api/internal/manager"
	"task-tracker-api/internal/realtime"

	"github.com/gin-gonic/gin"
)

// Topics used for realtime change events
const (
	TopicTasks    = "tasks"
	TopicEpics    = "epics"
	TopicSubtasks = "subtasks"
)

// Handler serves the task API on top of a TaskManager.
type Handler struct {
	manager manager.TaskManager
	hub     *realtime.Hub
}

// New creates a Handler. hub may be nil when no change feed is wanted.
func New(m manager.TaskManager, hub *realtime.Hub) *Handler {
	return &Handler{manager: m, hub: hub}
}

// respondError maps store errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, manager.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, manager.ErrTimeConflict):
		status = http.StatusNotAcceptable
	case errors.Is(err, manager.ErrInvalidInput):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondMalformed is used for requests that could not be parsed at all.
func respondMalformed(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Malformed request: " + err.Error(),
	})
}

// pathID reads the :id path parameter.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid id: " + c.Param("id")})
		return 0, false
	}
	return id, true
}
