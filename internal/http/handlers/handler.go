package handlers

import (
	"errors"
	"net/http"

	"task_tracker/internal/http/middleware"
	"task_tracker/internal/logger"
	"task_tracker/internal/service"
	"task_tracker/internal/tasks"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Auth  *service.AuthService
	Tasks *service.TaskService
	Audit *service.AuditService
}

func NewHandler(auth *service.AuthService, taskSvc *service.TaskService, audit *service.AuditService) *Handler {
	return &Handler{Auth: auth, Tasks: taskSvc, Audit: audit}
}

// Root is the unauthenticated banner at GET /.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "TODO API is running", "status": "healthy"})
}

// getUserID extracts the authenticated user id set by middleware.JWT
func getUserID(c *gin.Context) (string, bool) {
	id := c.GetString(middleware.UserIDKey)
	return id, id != ""
}

func requestInfo(c *gin.Context) service.RequestInfo {
	return service.RequestInfo{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
}

// respondError maps service errors to status codes. Anything unrecognised
// is logged and reported as a 500 without leaking details.
func respondError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, tasks.ErrInvalidQuery),
		errors.Is(err, service.ErrInvalidTask),
		errors.Is(err, service.ErrInvalidUser),
		errors.Is(err, service.ErrEmailTaken):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrTaskNotFound):
		status = http.StatusNotFound
	default:
		logger.WithContext(c.Request.Context()).Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
