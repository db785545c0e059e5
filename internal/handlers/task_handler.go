package handlers

import (
	"fmt"
	"net/http"

	"task-tracker-api/internal/models"

	"github.com/gin-gonic/gin"
)

// GetTasks handles GET /tasks
func (h *Handler) GetTasks(c *gin.Context) {
	tasks := payloadsOf(h.manager.GetAllTasks())
	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"count": len(tasks),
	})
}

/*
*
SaveTask handles POST /tasks
Creates a task when the body has no id, otherwise replaces the task with that id.
*/
func (h *Handler) SaveTask(c *gin.Context) {
	var req TaskPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMalformed(c, err)
		return
	}
	if req.ID == 0 {
		h.createTask(c, req.Task())
		return
	}
	h.updateTask(c, req.Task())
}

// UpdateTask handles PUT /tasks/:id
// The path id wins over any id in the body
func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req TaskPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMalformed(c, err)
		return
	}
	task := req.Task()
	task.ID = id
	h.updateTask(c, task)
}

func (h *Handler) createTask(c *gin.Context, task models.Task) {
	created, err := h.manager.AddTask(task)
	if err != nil {
		respondError(c, err)
		return
	}
	h.hub.Publish(TopicTasks, "task_created", string(models.TypeTask), created.ID)
	c.JSON(http.StatusCreated, PayloadOf(created))
}

func (h *Handler) updateTask(c *gin.Context, task models.Task) {
	updated, err := h.manager.UpdateTask(task)
	if err != nil {
		respondError(c, err)
		return
	}
	h.hub.Publish(TopicTasks, "task_updated", string(models.TypeTask), updated.ID)
	c.JSON(http.StatusOK, PayloadOf(updated))
}

// GetTaskByID handles GET /tasks/:id
// The view is recorded in the history
func (h *Handler) GetTaskByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	task, err := h.manager.GetTaskByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PayloadOf(task))
}

// DeleteTask handles DELETE /tasks/:id
func (h *Handler) DeleteTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.manager.DeleteTaskByID(id); err != nil {
		respondError(c, err)
		return
	}
	h.hub.Publish(TopicTasks, "task_deleted", string(models.TypeTask), id)
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Task %d deleted successfully", id),
		"id":      id,
	})
}

// DeleteAllTasks handles DELETE /tasks
func (h *Handler) DeleteAllTasks(c *gin.Context) {
	if err := h.manager.DeleteAllTasks(); err != nil {
		respondError(c, err)
		return
	}
	h.hub.Publish(TopicTasks, "tasks_cleared", string(models.TypeTask), 0)
	c.JSON(http.StatusOK, gin.H{"message": "All tasks deleted successfully"})
}
