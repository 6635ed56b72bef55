package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	domain "github.com/devwithkudzie/task-management/domain/task"
	"github.com/devwithkudzie/task-management/modules/task"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)

	tasks := app.Group("/api/tasks")
	tasks.Get("/", m.listTasks)
	tasks.Post("/", m.createTask)
	tasks.Get("/:id", m.getTask)
	tasks.Put("/:id", m.updateTask)
	tasks.Delete("/:id", m.deleteTask)
	tasks.Put("/:id/toggle", m.toggleTask)
}

// healthHandler handles GET /health. It always answers 200 and reports the
// store connection in the body.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	resp := HealthResponse{
		Status:       "healthy",
		Timestamp:    time.Now().UTC(),
		DBConnection: "connected",
	}

	health, err := m.taskPort.StoreHealth(c.Context())
	if err != nil || !health.Connected {
		if err == nil {
			err = errors.New(health.Error)
		}
		m.logger.Warn("Health check failed", "error", err)
		resp.Status = "unhealthy"
		resp.DBConnection = "disconnected"
	}

	return c.JSON(resp)
}

// listTasks handles GET /api/tasks.
func (m *APIModule) listTasks(c *fiber.Ctx) error {
	resp, err := m.taskPort.ListTasks(c.Context())
	if err != nil {
		return m.handleTaskError(c, err)
	}

	tasks := make([]TaskResponse, 0, len(resp.Tasks))
	for i := range resp.Tasks {
		tasks = append(tasks, toTaskResponse(&resp.Tasks[i]))
	}
	return c.JSON(tasks)
}

// getTask handles GET /api/tasks/:id.
func (m *APIModule) getTask(c *fiber.Ctx) error {
	id, ok := parseTaskID(c)
	if !ok {
		return invalidTaskID(c)
	}

	resp, err := m.taskPort.GetTask(c.Context(), id)
	if err != nil {
		return m.handleTaskError(c, err)
	}
	return c.JSON(toTaskResponse(resp))
}

// createTask handles POST /api/tasks.
func (m *APIModule) createTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := parseBody(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Title) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Title is required",
			Field: "title",
		})
	}

	resp, err := m.taskPort.CreateTask(c.Context(), &task.CreateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Category:    req.Category,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return m.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toTaskResponse(resp))
}

// updateTask handles PUT /api/tasks/:id.
func (m *APIModule) updateTask(c *fiber.Ctx) error {
	id, ok := parseTaskID(c)
	if !ok {
		return invalidTaskID(c)
	}

	var req UpdateTaskRequest
	if err := parseBody(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	resp, err := m.taskPort.UpdateTask(c.Context(), &task.UpdateTaskRequest{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Category:    req.Category,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return m.handleTaskError(c, err)
	}

	return c.JSON(toTaskResponse(resp))
}

// deleteTask handles DELETE /api/tasks/:id.
func (m *APIModule) deleteTask(c *fiber.Ctx) error {
	id, ok := parseTaskID(c)
	if !ok {
		return invalidTaskID(c)
	}

	if err := m.taskPort.DeleteTask(c.Context(), id); err != nil {
		return m.handleTaskError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// toggleTask handles PUT /api/tasks/:id/toggle.
func (m *APIModule) toggleTask(c *fiber.Ctx) error {
	id, ok := parseTaskID(c)
	if !ok {
		return invalidTaskID(c)
	}

	resp, err := m.taskPort.ToggleTask(c.Context(), id)
	if err != nil {
		return m.handleTaskError(c, err)
	}

	return c.JSON(toTaskResponse(resp))
}

// handleTaskError maps task errors to HTTP responses.
func (m *APIModule) handleTaskError(c *fiber.Ctx, err error) error {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: vErr.Message,
			Field: vErr.Field,
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "Task not found",
		})
	}

	m.logger.Error("Task operation failed", "method", c.Method(), "path", c.Path(), "error", err)

	resp := ErrorResponse{Error: "Internal server error"}
	if !m.production {
		resp.Details = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(resp)
}

// parseTaskID reads the :id parameter. Only positive integers are accepted.
func parseTaskID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidTaskID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error: "Invalid task id",
		Field: "id",
	})
}

// parseBody decodes the JSON body into out. A missing body leaves out at its
// zero value.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(out)
}
