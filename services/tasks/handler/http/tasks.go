package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dkurush/fleetops/internal/pkg/jwt"
	"github.com/dkurush/fleetops/internal/pkg/models"
	"github.com/dkurush/fleetops/services/tasks/usecase"
)

// TaskHandler serves the task lifecycle endpoints
type TaskHandler struct {
	uc        *usecase.TaskUC
	jwtSecret string
}

// NewTaskHandler creates a new task HTTP handler
func NewTaskHandler(uc *usecase.TaskUC, jwtSecret string) *TaskHandler {
	return &TaskHandler{
		uc:        uc,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers the task endpoints
func (h *TaskHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/tasks", h.CreateTask)
	e.GET("/tasks", h.ListTasks)
	e.GET("/tasks/:id", h.GetTask)
	e.POST("/tasks/:id/status", h.AdvanceTask)
}

func (h *TaskHandler) actorFromRequest(c echo.Context) (models.Actor, error) {
	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return models.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
	}

	claims, err := jwt.ValidateToken(parts[1], h.jwtSecret)
	if err != nil {
		return models.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	c.Set("user_id", claims.UserID)
	return models.Actor{ID: claims.UserID, Role: claims.Role}, nil
}

// CreateTask registers a new task for a driver
func (h *TaskHandler) CreateTask(c echo.Context) error {
	actor, err := h.actorFromRequest(c)
	if err != nil {
		return err
	}

	var req models.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	task, err := h.uc.Create(c.Request().Context(), actor, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrNotDispatcher) {
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, task)
}

// ListTasks returns the tasks visible to the caller
func (h *TaskHandler) ListTasks(c echo.Context) error {
	actor, err := h.actorFromRequest(c)
	if err != nil {
		return err
	}

	list, err := h.uc.List(c.Request().Context(), actor)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list tasks")
	}

	return c.JSON(http.StatusOK, list)
}

// GetTask returns a single task
func (h *TaskHandler) GetTask(c echo.Context) error {
	if _, err := h.actorFromRequest(c); err != nil {
		return err
	}

	task, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "task not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to get task")
	}

	return c.JSON(http.StatusOK, task)
}

type advanceTaskRequest struct {
	Status models.TaskStatus `json:"status"`
}

// AdvanceTask moves a task one step forward in its lifecycle
func (h *TaskHandler) AdvanceTask(c echo.Context) error {
	actor, err := h.actorFromRequest(c)
	if err != nil {
		return err
	}

	var req advanceTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	task, err := h.uc.Advance(c.Request().Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTaskNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "task not found")
		case errors.Is(err, usecase.ErrNotAssignee):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, usecase.ErrInvalidTransition):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to update task")
		}
	}

	return c.JSON(http.StatusOK, task)
}
