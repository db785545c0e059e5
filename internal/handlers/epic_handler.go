package handlers

import (
	"fmt"
	"net/http"

	"task-tracker-api/internal/models"

	"github.com/gin-gonic/gin"
)

// GetEpics handles GET /epics
func (h *Handler) GetEpics(c *gin.Context) {
	epics := payloadsOf(h.manager.GetAllEpics())
	c.JSON(http.StatusOK, gin.H{
		"epics": epics,
		"count": len(epics),
	})
}

// SaveEpic handles POST /epics
// Creates an epic when the body has no id, otherwise updates it.
// Subtask membership, status and dates in the body are ignored.
func (h *Handler) SaveEpic(c *gin.Context) {
	var req TaskPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMalformed(c, err)
		return
	}
	if req.ID == 0 {
		created, err := h.manager.AddEpic(req.Epic())
		if err != nil {
			respondError(c, err)
			return
		}
		h.hub.Publish(TopicEpics, "epic_created", string(models.TypeEpic), created.ID)
		c.JSON(http.StatusCreated, PayloadOf(created))
		return
	}
	h.updateEpic(c, req.Epic())
}

// UpdateEpic handles PUT /epics/:id
func (h *Handler) UpdateEpic(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req TaskPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMalformed(c, err)
		return
	}
	epic := req.Epic()
	epic.ID = id
	h.updateEpic(c, epic)
}

func (h *Handler) updateEpic(c *gin.Context, epic models.Epic) {
	updated, err := h.manager.UpdateEpic(epic)
	if err != nil {
		respondError(c, err)
		return
	}
	h.hub.Publish(TopicEpics, "epic_updated", string(models.TypeEpic), updated.ID)
	c.JSON(http.StatusOK, PayloadOf(updated))
}

// GetEpicByID handles GET /epics/:id
func (h *Handler) GetEpicByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	epic, err := h.manager.GetEpicByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PayloadOf(epic))
}

// GetEpicSubtasks handles GET /epics/:id/subtasks
func (h *Handler) GetEpicSubtasks(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	subtasks, err := h.manager.GetAllSubtasksByEpicID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	payload := payloadsOf(subtasks)
	c.JSON(http.StatusOK, gin.H{
		"subtasks": payload,
		"count":    len(payload),
	})
}

// DeleteEpic handles DELETE /epics/:id
// Subtasks of the epic are deleted with it
func (h *Handler) DeleteEpic(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.manager.DeleteEpicByID(id); err != nil {
		respondError(c, err)
		return
	}
	h.hub.Publish(TopicEpics, "epic_deleted", string(models.TypeEpic), id)
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Epic %d deleted successfully", id),
		"id":      id,
	})
}

// DeleteAllEpics handles DELETE /epics
func (h *Handler) DeleteAllEpics(c *gin.Context) {
	if err := h.manager.DeleteAllEpics(); err != nil {
		respondError(c, err)
		return
	}
	h.hub.Publish(TopicEpics, "epics_cleared", string(models.TypeEpic), 0)
	c.JSON(http.StatusOK, gin.H{"message": "All epics and subtasks deleted successfully"})
}
