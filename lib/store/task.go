// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"slices"
	"sync"

	"github.com/taskflow-project/taskflow/lib/apierror"
	"github.com/taskflow-project/taskflow/lib/schema/task"
	"github.com/taskflow-project/taskflow/lib/service"
)

// TaskStore caches the task list for one filter.
type TaskStore struct {
	service *service.TaskService

	mutex       sync.Mutex
	filter      task.Filter
	tasks       []task.Task
	loading     bool
	errText     string
	fetchSeq    uint64
	subscribers []chan Event
}

// NewTaskStore creates a store with the given initial filter. The
// store starts in the loading state; call Fetch to populate it.
func NewTaskStore(taskService *service.TaskService, filter task.Filter) *TaskStore {
	return &TaskStore{
		service: taskService,
		filter:  filter,
		loading: true,
	}
}

// Fetch loads the task list for the current filter. On success the
// cached list is replaced; on failure the formatted error is stored
// and the previous list kept. If a newer fetch started while this one
// was in flight, the result is discarded — the latest fetch wins by
// sequence number, not by arrival order.
func (s *TaskStore) Fetch(ctx context.Context) {
	s.mutex.Lock()
	s.fetchSeq++
	sequence := s.fetchSeq
	s.loading = true
	s.errText = ""
	filter := s.filter
	subscribers := s.subscribers
	s.mutex.Unlock()

	dispatch(subscribers, Event{Kind: EventRefresh})

	tasks, err := s.service.List(ctx, &filter)

	s.mutex.Lock()
	if sequence != s.fetchSeq {
		// Superseded by a newer fetch.
		s.mutex.Unlock()
		return
	}
	s.loading = false
	if err != nil {
		s.errText = apierror.Format(err)
	} else {
		s.tasks = tasks
	}
	subscribers = s.subscribers
	s.mutex.Unlock()

	dispatch(subscribers, Event{Kind: EventRefresh})
}

// Refetch re-runs the fetch unconditionally.
func (s *TaskStore) Refetch(ctx context.Context) { s.Fetch(ctx) }

// SetFilter replaces the filter and refetches. Filters are compared
// by value: setting an equal filter is a no-op, so callers can pass
// rebuilt filter values without triggering spurious fetches.
func (s *TaskStore) SetFilter(ctx context.Context, filter task.Filter) {
	s.mutex.Lock()
	if filter == s.filter {
		s.mutex.Unlock()
		return
	}
	s.filter = filter
	s.mutex.Unlock()

	s.Fetch(ctx)
}

// Filter returns the current filter value.
func (s *TaskStore) Filter() task.Filter {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.filter
}

// Tasks returns a copy of the cached list.
func (s *TaskStore) Tasks() []task.Task {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return slices.Clone(s.tasks)
}

// Loading reports whether a fetch is in flight.
func (s *TaskStore) Loading() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.loading
}

// Err returns the formatted error from the last failed fetch, or ""
// when the last fetch succeeded.
func (s *TaskStore) Err() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.errText
}

// Stats computes the dashboard aggregates from the cached list.
func (s *TaskStore) Stats() Stats {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return ComputeStats(s.tasks)
}

// Add creates a task and, on success, prepends it to the cached list
// so the newest entry renders first. On failure the cache is
// untouched and the error propagates to the caller.
func (s *TaskStore) Add(ctx context.Context, dto task.CreateDto) (task.Task, error) {
	created, err := s.service.Create(ctx, dto)
	if err != nil {
		return task.Task{}, err
	}

	s.mutex.Lock()
	s.tasks = append([]task.Task{created}, s.tasks...)
	subscribers := s.subscribers
	s.mutex.Unlock()

	dispatch(subscribers, Event{Kind: EventPut, ID: created.ID})
	return created, nil
}

// Modify updates a task and, on success, replaces the cached entry
// with the server's echoed entity. No other entry changes.
func (s *TaskStore) Modify(ctx context.Context, id string, dto task.UpdateDto) (task.Task, error) {
	updated, err := s.service.Update(ctx, id, dto)
	if err != nil {
		return task.Task{}, err
	}

	s.mutex.Lock()
	for index := range s.tasks {
		if s.tasks[index].ID == id {
			s.tasks[index] = updated
			break
		}
	}
	subscribers := s.subscribers
	s.mutex.Unlock()

	dispatch(subscribers, Event{Kind: EventPut, ID: id})
	return updated, nil
}

// Remove deletes a task and, on success, drops it from the cached
// list.
func (s *TaskStore) Remove(ctx context.Context, id string) error {
	if err := s.service.Delete(ctx, id); err != nil {
		return err
	}

	s.mutex.Lock()
	s.tasks = slices.DeleteFunc(s.tasks, func(t task.Task) bool {
		return t.ID == id
	})
	subscribers := s.subscribers
	s.mutex.Unlock()

	dispatch(subscribers, Event{Kind: EventRemove, ID: id})
	return nil
}

// Subscribe returns a channel that receives Events when the store
// changes.
func (s *TaskStore) Subscribe() <-chan Event {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	channel := make(chan Event, 64)
	s.subscribers = append(s.subscribers, channel)
	return channel
}
