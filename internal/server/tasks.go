package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"daybook/internal/models"
	"daybook/internal/storage"
)

type TaskHandler struct {
	store storage.Provider
}

func NewTaskHandler(store storage.Provider) *TaskHandler {
	return &TaskHandler{store: store}
}

type taskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority"`
	Completed   bool       `json:"completed"`
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Priority == "" {
		req.Priority = string(models.PriorityNormal)
	}

	now := time.Now()
	task := models.Task{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    models.TaskPriority(req.Priority),
		Completed:   req.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.store.AddTask(task); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.store.GetAllTasks()
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.store.GetTask(c.Param("id"))
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	existing, err := h.store.GetTask(c.Param("id"))
	if err != nil {
		respondStoreErr(c, err)
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.DueDate = req.DueDate
	if req.Priority != "" {
		existing.Priority = models.TaskPriority(req.Priority)
	}
	existing.Completed = req.Completed
	existing.UpdatedAt = time.Now()

	if err := h.store.UpdateTask(existing); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.store.DeleteTask(c.Param("id")); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
