package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nhle/daily-planner/internal/model"
)

// ListTasks returns the user's tasks scheduled for date, in service order.
func (c *Client) ListTasks(ctx context.Context, userID, date string) ([]model.Task, error) {
	params := url.Values{}
	params.Set("user_id", userID)
	params.Set("scheduled_date", date)

	var resp []taskDTO
	if err := c.do(ctx, http.MethodGet, "/api/v1/tasks?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return tasksFromWire(resp), nil
}

// CreateTask creates a manual task and returns the service's copy.
func (c *Client) CreateTask(ctx context.Context, userID string, in model.TaskInput) (model.Task, error) {
	req := createTaskRequest{
		UserID:        userID,
		Title:         in.Title,
		ScheduledDate: in.ScheduledDate,
		Source:        string(model.TaskSourceManual),
		Notes:         optionalString(in.Notes),
	}

	var resp taskDTO
	if err := c.do(ctx, http.MethodPost, "/api/v1/tasks", req, &resp); err != nil {
		return model.Task{}, err
	}
	return taskFromWire(resp), nil
}

// UpdateTask applies a partial update and returns the updated task.
func (c *Client) UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error) {
	var resp taskDTO
	path := "/api/v1/tasks/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPatch, path, taskPatchToWire(patch), &resp); err != nil {
		return model.Task{}, err
	}
	return taskFromWire(resp), nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	path := "/api/v1/tasks/" + url.PathEscape(id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// CarryForward moves the incomplete tasks of fromDate to toDate, or to the
// service's default (the next day) when toDate is empty. It returns the
// moved tasks.
func (c *Client) CarryForward(ctx context.Context, userID, fromDate, toDate string) ([]model.Task, error) {
	req := carryForwardRequest{
		UserID:   userID,
		FromDate: fromDate,
		ToDate:   optionalString(toDate),
	}

	var resp []taskDTO
	if err := c.do(ctx, http.MethodPost, "/api/v1/tasks/carry-forward", req, &resp); err != nil {
		return nil, fmt.Errorf("carrying forward %s: %w", fromDate, err)
	}
	return tasksFromWire(resp), nil
}
