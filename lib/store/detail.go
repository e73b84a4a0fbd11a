// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"sync"

	"github.com/taskflow-project/taskflow/lib/apierror"
	"github.com/taskflow-project/taskflow/lib/schema/category"
	"github.com/taskflow-project/taskflow/lib/schema/task"
	"github.com/taskflow-project/taskflow/lib/service"
)

// TaskDetail caches one task fetched by ID.
type TaskDetail struct {
	service *service.TaskService

	mutex    sync.Mutex
	id       string
	task     task.Task
	present  bool
	loading  bool
	errText  string
	fetchSeq uint64
}

// NewTaskDetail creates a detail cache for the given task ID.
func NewTaskDetail(taskService *service.TaskService, id string) *TaskDetail {
	return &TaskDetail{service: taskService, id: id, loading: true}
}

// Fetch loads the task. Like the list stores, a stale response never
// overwrites the result of a newer fetch.
func (d *TaskDetail) Fetch(ctx context.Context) {
	d.mutex.Lock()
	d.fetchSeq++
	sequence := d.fetchSeq
	d.loading = true
	d.errText = ""
	id := d.id
	d.mutex.Unlock()

	fetched, err := d.service.Get(ctx, id)

	d.mutex.Lock()
	defer d.mutex.Unlock()
	if sequence != d.fetchSeq {
		return
	}
	d.loading = false
	if err != nil {
		d.errText = apierror.Format(err)
		return
	}
	d.task = fetched
	d.present = true
}

// SetID switches the cache to a different task and refetches. Equal
// IDs are a no-op.
func (d *TaskDetail) SetID(ctx context.Context, id string) {
	d.mutex.Lock()
	if id == d.id {
		d.mutex.Unlock()
		return
	}
	d.id = id
	d.present = false
	d.mutex.Unlock()

	d.Fetch(ctx)
}

// Task returns the cached task; ok is false until a fetch succeeds.
func (d *TaskDetail) Task() (task.Task, bool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.task, d.present
}

// Loading reports whether a fetch is in flight.
func (d *TaskDetail) Loading() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.loading
}

// Err returns the formatted error from the last failed fetch.
func (d *TaskDetail) Err() string {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.errText
}

// CategoryDetail caches one category fetched by ID.
type CategoryDetail struct {
	service *service.CategoryService

	mutex    sync.Mutex
	id       string
	category category.Category
	present  bool
	loading  bool
	errText  string
	fetchSeq uint64
}

// NewCategoryDetail creates a detail cache for the given category ID.
func NewCategoryDetail(categoryService *service.CategoryService, id string) *CategoryDetail {
	return &CategoryDetail{service: categoryService, id: id, loading: true}
}

// Fetch loads the category.
func (d *CategoryDetail) Fetch(ctx context.Context) {
	d.mutex.Lock()
	d.fetchSeq++
	sequence := d.fetchSeq
	d.loading = true
	d.errText = ""
	id := d.id
	d.mutex.Unlock()

	fetched, err := d.service.Get(ctx, id)

	d.mutex.Lock()
	defer d.mutex.Unlock()
	if sequence != d.fetchSeq {
		return
	}
	d.loading = false
	if err != nil {
		d.errText = apierror.Format(err)
		return
	}
	d.category = fetched
	d.present = true
}

// Category returns the cached category; ok is false until a fetch
// succeeds.
func (d *CategoryDetail) Category() (category.Category, bool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.category, d.present
}

// Loading reports whether a fetch is in flight.
func (d *CategoryDetail) Loading() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.loading
}

// Err returns the formatted error from the last failed fetch.
func (d *CategoryDetail) Err() string {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.errText
}
