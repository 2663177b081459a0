package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/musiclibrary/internal/tasks"
)

// TaskQueue is the subset of the task client the controller needs.
type TaskQueue interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// TasksController handles task queue management endpoints.
type TasksController struct {
	queue       TaskQueue
	datasetPath string
}

// NewTasksController creates a new TasksController. datasetPath is used when
// an import request does not name a file.
func NewTasksController(queue TaskQueue, datasetPath string) *TasksController {
	return &TasksController{queue: queue, datasetPath: datasetPath}
}

// TaskTypeInfo describes an available task type.
type TaskTypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Queue       string `json:"queue"`
}

// ListTaskTypes handles GET /api/tasks/types
func (tc *TasksController) ListTaskTypes(c *gin.Context) {
	types := []TaskTypeInfo{
		{
			Type:        tasks.ImportAlbumsQueue,
			Description: "Load an album dataset file into the catalog",
			Queue:       tasks.ImportAlbumsQueue,
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"taskTypes": types,
	})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": tasks.StatusName(status),
	})
}

// RunTaskRequest is the request body for running a task.
type RunTaskRequest struct {
	// Path defaults to the configured dataset.
	Path  string `json:"path,omitempty"`
	Reset bool   `json:"reset,omitempty"`
}

// RunTask handles POST /api/tasks/:type/run
func (tc *TasksController) RunTask(c *gin.Context) {
	taskType := c.Param("type")

	var req RunTaskRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid task request: "+err.Error())
			return
		}
	}

	var task backlite.Task
	switch taskType {
	case tasks.ImportAlbumsQueue:
		path := req.Path
		if path == "" {
			path = tc.datasetPath
		}
		if path == "" {
			respondBadRequest(c, "path is required for import_albums task")
			return
		}
		task = tasks.ImportAlbumsTask{Path: path, Reset: req.Reset}

	default:
		respondBadRequest(c, fmt.Sprintf("unknown task type: %s", taskType))
		return
	}

	id, err := tc.queue.Enqueue(c.Request.Context(), task)
	if err != nil {
		respondInternalError(c, err, "enqueue task")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"taskId":  id,
		"type":    taskType,
		"message": "task enqueued",
	})
}
