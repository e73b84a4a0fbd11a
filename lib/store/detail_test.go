// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"net/http"
	"testing"

	"github.com/taskflow-project/taskflow/lib/api"
	"github.com/taskflow-project/taskflow/lib/service"
	"github.com/taskflow-project/taskflow/lib/testutil"
)

func newDetailServices(t *testing.T, server *testutil.APIServer) (*service.TaskService, *service.CategoryService) {
	t.Helper()
	client, err := api.NewClient(api.ClientConfig{BaseURL: server.URL()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return service.NewTaskService(client), service.NewCategoryService(client)
}

func TestTaskDetailFetch(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.HandleJSON("GET /tasks/t1", http.StatusOK, map[string]any{
		"id": "t1", "title": "detail", "status": "IN_PROGRESS", "level": "HIGH",
	})

	tasks, _ := newDetailServices(t, server)
	detail := NewTaskDetail(tasks, "t1")

	if _, ok := detail.Task(); ok {
		t.Fatal("task present before fetch")
	}
	if !detail.Loading() {
		t.Fatal("new detail should start loading")
	}

	detail.Fetch(context.Background())

	entry, ok := detail.Task()
	if !ok || entry.Title != "detail" {
		t.Fatalf("Task() = %+v, %v", entry, ok)
	}
	if detail.Loading() || detail.Err() != "" {
		t.Errorf("loading=%v err=%q", detail.Loading(), detail.Err())
	}
}

func TestTaskDetailSetID(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.HandleJSON("GET /tasks/t1", http.StatusOK, map[string]any{
		"id": "t1", "title": "first", "status": "NOT_STARTED", "level": "LOW",
	})
	server.HandleJSON("GET /tasks/t2", http.StatusOK, map[string]any{
		"id": "t2", "title": "second", "status": "NOT_STARTED", "level": "LOW",
	})

	tasks, _ := newDetailServices(t, server)
	detail := NewTaskDetail(tasks, "t1")
	detail.Fetch(context.Background())
	fetches := len(server.Requests())

	// Same ID: no refetch.
	detail.SetID(context.Background(), "t1")
	if got := len(server.Requests()); got != fetches {
		t.Fatalf("equal ID refetched: %d -> %d requests", fetches, got)
	}

	detail.SetID(context.Background(), "t2")
	entry, ok := detail.Task()
	if !ok || entry.ID != "t2" {
		t.Fatalf("Task() after SetID = %+v, %v", entry, ok)
	}
}

func TestTaskDetailNotFound(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.HandleJSON("GET /tasks/missing", http.StatusNotFound, map[string]string{
		"message": "task not found",
	})

	tasks, _ := newDetailServices(t, server)
	detail := NewTaskDetail(tasks, "missing")
	detail.Fetch(context.Background())

	if _, ok := detail.Task(); ok {
		t.Error("missing task reported present")
	}
	if detail.Err() != "task not found" {
		t.Errorf("Err = %q", detail.Err())
	}
}

func TestCategoryDetailFetch(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.HandleJSON("GET /categories/c1", http.StatusOK, map[string]any{
		"id": "c1", "name": "Work",
	})

	_, categories := newDetailServices(t, server)
	detail := NewCategoryDetail(categories, "c1")
	detail.Fetch(context.Background())

	entry, ok := detail.Category()
	if !ok || entry.Name != "Work" {
		t.Fatalf("Category() = %+v, %v", entry, ok)
	}
}
