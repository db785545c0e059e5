package handlers

import (
	"fmt"
	"net/http"

	"task-tracker-api/internal/models"

	"github.com/gin-gonic/gin"
)

// GetSubtasks handles GET /subtasks
func (h *Handler) GetSubtasks(c *gin.Context) {
	subtasks := payloadsOf(h.manager.GetAllSubtasks())
	c.JSON(http.StatusOK, gin.H{
		"subtasks": subtasks,
		"count":    len(subtasks),
	})
}

// SaveSubtask handles POST /subtasks
// Creates a subtask when the body has no id, otherwise updates it.
func (h *Handler) SaveSubtask(c *gin.Context) {
	var req TaskPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMalformed(c, err)
		return
	}
	if req.ID == 0 {
		created, err := h.manager.AddSubtask(req.Subtask())
		if err != nil {
			respondError(c, err)
			return
		}
		h.hub.Publish(TopicSubtasks, "subtask_created", string(models.TypeSubtask), created.ID)
		c.JSON(http.StatusCreated, PayloadOf(created))
		return
	}
	h.updateSubtask(c, req.Subtask())
}

// UpdateSubtask handles PUT /subtasks/:id
func (h *Handler) UpdateSubtask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req TaskPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMalformed(c, err)
		return
	}
	subtask := req.Subtask()
	subtask.ID = id
	h.updateSubtask(c, subtask)
}

func (h *Handler) updateSubtask(c *gin.Context, subtask models.Subtask) {
	updated, err := h.manager.UpdateSubtask(subtask)
	if err != nil {
		respondError(c, err)
		return
	}
	h.hub.Publish(TopicSubtasks, "subtask_updated", string(models.TypeSubtask), updated.ID)
	c.JSON(http.StatusOK, PayloadOf(updated))
}

// GetSubtaskByID handles GET /subtasks/:id
func (h *Handler) GetSubtaskByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	subtask, err := h.manager.GetSubtaskByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PayloadOf(subtask))
}

// DeleteSubtask handles DELETE /subtasks/:id
func (h *Handler) DeleteSubtask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.manager.DeleteSubtaskByID(id); err != nil {
		respondError(c, err)
		return
	}
	h.hub.Publish(TopicSubtasks, "subtask_deleted", string(models.TypeSubtask), id)
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Subtask %d deleted successfully", id),
		"id":      id,
	})
}

// DeleteAllSubtasks handles DELETE /subtasks
func (h *Handler) DeleteAllSubtasks(c *gin.Context) {
	if err := h.manager.DeleteAllSubtasks(); err != nil {
		respondError(c, err)
		return
	}
	h.hub.Publish(TopicSubtasks, "subtasks_cleared", string(models.TypeSubtask), 0)
	c.JSON(http.StatusOK, gin.H{"message": "All subtasks deleted successfully"})
}
