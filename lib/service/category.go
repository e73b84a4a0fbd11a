// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"net/url"

	"github.com/taskflow-project/taskflow/lib/api"
	"github.com/taskflow-project/taskflow/lib/schema/category"
)

// CategoryService performs category operations against the API.
type CategoryService struct {
	client *api.Client
}

// NewCategoryService creates a CategoryService on the given client.
func NewCategoryService(client *api.Client) *CategoryService {
	return &CategoryService{client: client}
}

// List returns categories matching the filter. A nil filter returns
// everything.
func (s *CategoryService) List(ctx context.Context, filter *category.Filter) ([]category.Category, error) {
	var query url.Values
	if filter != nil {
		query = filter.Query()
	}
	var categories []category.Category
	if err := s.client.Get(ctx, "/categories", query, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Get returns a single category by ID.
func (s *CategoryService) Get(ctx context.Context, id string) (category.Category, error) {
	var result category.Category
	if err := s.client.Get(ctx, "/categories/"+url.PathEscape(id), nil, &result); err != nil {
		return category.Category{}, err
	}
	return result, nil
}

// Create creates a category.
func (s *CategoryService) Create(ctx context.Context, dto category.CreateDto) (category.Category, error) {
	if err := dto.Validate(); err != nil {
		return category.Category{}, err
	}
	var result category.Category
	if err := s.client.Post(ctx, "/categories", dto, &result); err != nil {
		return category.Category{}, err
	}
	return result, nil
}

// Update applies a partial update to a category.
func (s *CategoryService) Update(ctx context.Context, id string, dto category.UpdateDto) (category.Category, error) {
	if err := dto.Validate(); err != nil {
		return category.Category{}, err
	}
	var result category.Category
	if err := s.client.Patch(ctx, "/categories/"+url.PathEscape(id), dto, &result); err != nil {
		return category.Category{}, err
	}
	return result, nil
}

// Delete removes a category. Task references to it are weak and are
// not touched client-side.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/categories/"+url.PathEscape(id))
}
