// Package client provides HTTP access to the task API and an in-memory task
// board kept in step with the server.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// DefaultTimeout bounds a single request when the context has no earlier deadline.
const DefaultTimeout = 10 * time.Second

// Client talks to the task API over HTTP. It never retries.
type Client struct {
	baseURL string
	timeout time.Duration
}

var _ API = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a Client for the server at baseURL, e.g. http://localhost:5000.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches every task, newest first.
func (c *Client) List(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, fiber.Get(c.tasksURL()), fiber.StatusOK, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Get fetches a single task.
func (c *Client) Get(ctx context.Context, id int64) (Task, error) {
	var t Task
	err := c.do(ctx, fiber.Get(c.taskURL(id)), fiber.StatusOK, &t)
	return t, err
}

// Create stores a new task.
func (c *Client) Create(ctx context.Context, in TaskInput) (Task, error) {
	var t Task
	err := c.do(ctx, fiber.Post(c.tasksURL()).JSON(in), fiber.StatusCreated, &t)
	return t, err
}

// Update changes the provided fields of a task.
func (c *Client) Update(ctx context.Context, id int64, in TaskInput) (Task, error) {
	var t Task
	err := c.do(ctx, fiber.Put(c.taskURL(id)).JSON(in), fiber.StatusOK, &t)
	return t, err
}

// Delete removes a task.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, fiber.Delete(c.taskURL(id)), fiber.StatusNoContent, nil)
}

// Toggle flips a task between pending and completed.
func (c *Client) Toggle(ctx context.Context, id int64) (Task, error) {
	var t Task
	err := c.do(ctx, fiber.Put(c.taskURL(id)+"/toggle"), fiber.StatusOK, &t)
	return t, err
}

// Health fetches the server health report.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	err := c.do(ctx, fiber.Get(c.baseURL+"/health"), fiber.StatusOK, &h)
	return h, err
}

func (c *Client) tasksURL() string {
	return c.baseURL + "/api/tasks"
}

func (c *Client) taskURL(id int64) string {
	return c.tasksURL() + "/" + strconv.FormatInt(id, 10)
}

// do sends the request and decodes a want-status response into out.
func (c *Client) do(ctx context.Context, a *fiber.Agent, want int, out any) error {
	if err := ctx.Err(); err != nil {
		fiber.ReleaseAgent(a)
		return err
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	code, body, errs := a.Timeout(timeout).Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("request failed: %w", errors.Join(errs...))
	}

	if code != want {
		apiErr := &APIError{StatusCode: code}
		if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = fiber.ErrInternalServerError.Message
			if msg := fiber.StatusMessage(code); msg != "" {
				apiErr.Message = msg
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
