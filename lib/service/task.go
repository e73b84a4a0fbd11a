// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"net/url"

	"github.com/taskflow-project/taskflow/lib/api"
	"github.com/taskflow-project/taskflow/lib/schema/task"
)

// TaskService performs task operations against the API.
type TaskService struct {
	client *api.Client
}

// NewTaskService creates a TaskService on the given client.
func NewTaskService(client *api.Client) *TaskService {
	return &TaskService{client: client}
}

// List returns tasks matching the filter. A nil filter returns
// everything. Only set filter fields become query parameters.
func (s *TaskService) List(ctx context.Context, filter *task.Filter) ([]task.Task, error) {
	var query url.Values
	if filter != nil {
		query = filter.Query()
	}
	var tasks []task.Task
	if err := s.client.Get(ctx, "/tasks", query, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Get returns a single task by ID.
func (s *TaskService) Get(ctx context.Context, id string) (task.Task, error) {
	var result task.Task
	if err := s.client.Get(ctx, "/tasks/"+url.PathEscape(id), nil, &result); err != nil {
		return task.Task{}, err
	}
	return result, nil
}

// Create creates a task. The server assigns ID and timestamps.
func (s *TaskService) Create(ctx context.Context, dto task.CreateDto) (task.Task, error) {
	if err := dto.Validate(); err != nil {
		return task.Task{}, err
	}
	var result task.Task
	if err := s.client.Post(ctx, "/tasks", dto, &result); err != nil {
		return task.Task{}, err
	}
	return result, nil
}

// Update applies a partial update. Nil DTO fields are left unchanged
// by the server.
func (s *TaskService) Update(ctx context.Context, id string, dto task.UpdateDto) (task.Task, error) {
	if err := dto.Validate(); err != nil {
		return task.Task{}, err
	}
	var result task.Task
	if err := s.client.Patch(ctx, "/tasks/"+url.PathEscape(id), dto, &result); err != nil {
		return task.Task{}, err
	}
	return result, nil
}

// Delete removes a task. A second delete of the same ID surfaces as
// the API's not-found error; nothing is retried.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/tasks/"+url.PathEscape(id))
}
