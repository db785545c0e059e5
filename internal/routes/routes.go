package routes

import (
	"net/http"

	"task-tracker-api/internal/handlers"
	"task-tracker-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(h *handlers.Handler) *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	ginRouter.Use(middleware.CORS())
	ginRouter.Use(middleware.RequestID())

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task Tracker API is running",
		})
	})

	tasks := ginRouter.Group("/tasks")
	{
		tasks.GET("", h.GetTasks)
		tasks.POST("", h.SaveTask)
		tasks.DELETE("", h.DeleteAllTasks)
		tasks.GET("/:id", h.GetTaskByID)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
	}

	epics := ginRouter.Group("/epics")
	{
		epics.GET("", h.GetEpics)
		epics.POST("", h.SaveEpic)
		epics.DELETE("", h.DeleteAllEpics)
		epics.GET("/:id", h.GetEpicByID)
		epics.PUT("/:id", h.UpdateEpic)
		epics.DELETE("/:id", h.DeleteEpic)
		epics.GET("/:id/subtasks", h.GetEpicSubtasks)
	}

	subtasks := ginRouter.Group("/subtasks")
	{
		subtasks.GET("", h.GetSubtasks)
		subtasks.POST("", h.SaveSubtask)
		subtasks.DELETE("", h.DeleteAllSubtasks)
		subtasks.GET("/:id", h.GetSubtaskByID)
		subtasks.PUT("/:id", h.UpdateSubtask)
		subtasks.DELETE("/:id", h.DeleteSubtask)
	}

	ginRouter.GET("/history", h.GetHistory)
	ginRouter.GET("/prioritized", h.GetPrioritized)

	// Realtime change feed
	ginRouter.GET("/ws", h.WebSocket)

	return ginRouter
}

// Endpoints lists the routes for the startup banner
var Endpoints = []string{
	"GET    /tasks | /epics | /subtasks",
	"POST   /tasks | /epics | /subtasks",
	"DELETE /tasks | /epics | /subtasks",
	"GET    /tasks/:id | /epics/:id | /subtasks/:id",
	"PUT    /tasks/:id | /epics/:id | /subtasks/:id",
	"DELETE /tasks/:id | /epics/:id | /subtasks/:id",
	"GET    /epics/:id/subtasks",
	"GET    /history",
	"GET    /prioritized",
	"GET    /ws?topic=tasks|epics|subtasks|all",
	"GET    /health",
}
