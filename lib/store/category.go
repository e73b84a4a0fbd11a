// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"slices"
	"sync"

	"github.com/taskflow-project/taskflow/lib/apierror"
	"github.com/taskflow-project/taskflow/lib/schema/category"
	"github.com/taskflow-project/taskflow/lib/service"
)

// CategoryStore caches the category list for one filter. Same shape
// and guarantees as TaskStore.
type CategoryStore struct {
	service *service.CategoryService

	mutex       sync.Mutex
	filter      category.Filter
	categories  []category.Category
	loading     bool
	errText     string
	fetchSeq    uint64
	subscribers []chan Event
}

// NewCategoryStore creates a store with the given initial filter.
func NewCategoryStore(categoryService *service.CategoryService, filter category.Filter) *CategoryStore {
	return &CategoryStore{
		service: categoryService,
		filter:  filter,
		loading: true,
	}
}

// Fetch loads the category list for the current filter. Stale
// responses are discarded by sequence number, like TaskStore.
func (s *CategoryStore) Fetch(ctx context.Context) {
	s.mutex.Lock()
	s.fetchSeq++
	sequence := s.fetchSeq
	s.loading = true
	s.errText = ""
	filter := s.filter
	subscribers := s.subscribers
	s.mutex.Unlock()

	dispatch(subscribers, Event{Kind: EventRefresh})

	categories, err := s.service.List(ctx, &filter)

	s.mutex.Lock()
	if sequence != s.fetchSeq {
		s.mutex.Unlock()
		return
	}
	s.loading = false
	if err != nil {
		s.errText = apierror.Format(err)
	} else {
		s.categories = categories
	}
	subscribers = s.subscribers
	s.mutex.Unlock()

	dispatch(subscribers, Event{Kind: EventRefresh})
}

// Refetch re-runs the fetch unconditionally.
func (s *CategoryStore) Refetch(ctx context.Context) { s.Fetch(ctx) }

// SetFilter replaces the filter and refetches; equal filters are a
// no-op.
func (s *CategoryStore) SetFilter(ctx context.Context, filter category.Filter) {
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
func (s *CategoryStore) Filter() category.Filter {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.filter
}

// Categories returns a copy of the cached list.
func (s *CategoryStore) Categories() []category.Category {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return slices.Clone(s.categories)
}

// Lookup returns the cached category with the given ID. Used by the
// task views to resolve the weak category reference to a name.
func (s *CategoryStore) Lookup(id string) (category.Category, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, entry := range s.categories {
		if entry.ID == id {
			return entry, true
		}
	}
	return category.Category{}, false
}

// Loading reports whether a fetch is in flight.
func (s *CategoryStore) Loading() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.loading
}

// Err returns the formatted error from the last failed fetch.
func (s *CategoryStore) Err() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.errText
}

// Add creates a category and prepends it to the cached list.
func (s *CategoryStore) Add(ctx context.Context, dto category.CreateDto) (category.Category, error) {
	created, err := s.service.Create(ctx, dto)
	if err != nil {
		return category.Category{}, err
	}

	s.mutex.Lock()
	s.categories = append([]category.Category{created}, s.categories...)
	subscribers := s.subscribers
	s.mutex.Unlock()

	dispatch(subscribers, Event{Kind: EventPut, ID: created.ID})
	return created, nil
}

// Modify updates a category and replaces the cached entry.
func (s *CategoryStore) Modify(ctx context.Context, id string, dto category.UpdateDto) (category.Category, error) {
	updated, err := s.service.Update(ctx, id, dto)
	if err != nil {
		return category.Category{}, err
	}

	s.mutex.Lock()
	for index := range s.categories {
		if s.categories[index].ID == id {
			s.categories[index] = updated
			break
		}
	}
	subscribers := s.subscribers
	s.mutex.Unlock()

	dispatch(subscribers, Event{Kind: EventPut, ID: id})
	return updated, nil
}

// Remove deletes a category and drops it from the cached list. Tasks
// referencing it keep their dangling CategoryID; the reference is
// weak by design.
func (s *CategoryStore) Remove(ctx context.Context, id string) error {
	if err := s.service.Delete(ctx, id); err != nil {
		return err
	}

	s.mutex.Lock()
	s.categories = slices.DeleteFunc(s.categories, func(c category.Category) bool {
		return c.ID == id
	})
	subscribers := s.subscribers
	s.mutex.Unlock()

	dispatch(subscribers, Event{Kind: EventRemove, ID: id})
	return nil
}

// Subscribe returns a channel that receives Events when the store
// changes.
func (s *CategoryStore) Subscribe() <-chan Event {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	channel := make(chan Event, 64)
	s.subscribers = append(s.subscribers, channel)
	return channel
}
