package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"task_tracker/internal/domain"
	"task_tracker/internal/service"
	"task_tracker/internal/tasks"

	"github.com/gin-gonic/gin"
)

type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Priority    string   `json:"priority"`
	DueDate     *string  `json:"due_date"`
	Category    *string  `json:"category"`
	Tags        []string `json:"tags"`
}

// UpdateTaskRequest carries a partial update; absent (or null) fields are
// left untouched.
type UpdateTaskRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Priority    *string   `json:"priority"`
	Completed   *bool     `json:"completed"`
	DueDate     *string   `json:"due_date"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
}

func (h *Handler) CreateTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	// a missing or blank title is reported by the service
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	t, err := h.Tasks.Create(c.Request.Context(), userID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.Priority(req.Priority),
		DueDate:     req.DueDate,
		Category:    req.Category,
		Tags:        req.Tags,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *Handler) ListTasks(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	params, err := parseListParams(c)
	if err != nil {
		respondError(c, err)
		return
	}

	list, err := h.Tasks.List(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) TaskStats(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	report, err := h.Tasks.Stats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) GetTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	t, err := h.Tasks.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	patch := service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		DueDate:     req.DueDate,
		Category:    req.Category,
		Tags:        req.Tags,
	}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		patch.Priority = &p
	}

	t, err := h.Tasks.Update(c.Request.Context(), userID, c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	if err := h.Tasks.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// CompleteTask handles PATCH /tasks/:id/complete?completed=true|false.
func (h *Handler) CompleteTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	completed, err := strconv.ParseBool(c.Query("completed"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "completed must be true or false"})
		return
	}

	t, err := h.Tasks.SetCompleted(c.Request.Context(), userID, c.Param("id"), completed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func parseListParams(c *gin.Context) (tasks.Params, error) {
	var p tasks.Params

	if v, ok := c.GetQuery("completed"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return p, fmt.Errorf("%w: completed must be true or false", tasks.ErrInvalidQuery)
		}
		p.Completed = &b
	}

	field, err := tasks.ParseSortField(c.Query("sort_by"))
	if err != nil {
		return p, err
	}
	dir, err := tasks.ParseDirection(c.Query("sort_order"))
	if err != nil {
		return p, err
	}

	p.SortBy = field
	p.Order = dir
	p.Search = c.Query("search")
	p.Category = c.Query("category")
	return p, nil
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, errors.New("must be positive")
	}
	return n, nil
}
