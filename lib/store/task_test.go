// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/taskflow-project/taskflow/lib/api"
	"github.com/taskflow-project/taskflow/lib/schema/task"
	"github.com/taskflow-project/taskflow/lib/service"
	"github.com/taskflow-project/taskflow/lib/testutil"
)

const eventTimeout = 5 * time.Second

func newTaskStore(t *testing.T, server *testutil.APIServer, filter task.Filter) *TaskStore {
	t.Helper()
	client, err := api.NewClient(api.ClientConfig{BaseURL: server.URL()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return NewTaskStore(service.NewTaskService(client), filter)
}

func TestTaskStoreFetchPopulatesCache(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.HandleJSON("GET /tasks", http.StatusOK, []map[string]any{
		{"id": "t1", "title": "first", "status": "NOT_STARTED", "level": "MEDIUM"},
		{"id": "t2", "title": "second", "status": "COMPLETED", "level": "HIGH"},
	})

	store := newTaskStore(t, server, task.Filter{})
	if !store.Loading() {
		t.Fatal("new store should start loading")
	}

	events := store.Subscribe()
	store.Fetch(context.Background())

	// One refresh when the fetch starts, one when it lands.
	testutil.RequireReceive(t, events, eventTimeout, "fetch start event")
	testutil.RequireReceive(t, events, eventTimeout, "fetch result event")

	if store.Loading() {
		t.Error("store still loading after fetch")
	}
	tasks := store.Tasks()
	if len(tasks) != 2 || tasks[0].ID != "t1" {
		t.Fatalf("tasks = %+v", tasks)
	}
	if store.Err() != "" {
		t.Errorf("unexpected error %q", store.Err())
	}
}

func TestTaskStoreFetchFailureKeepsPreviousList(t *testing.T) {
	server := testutil.NewAPIServer(t)
	var failing atomic.Bool
	server.HandleFunc("GET /tasks", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"database offline"}`))
			return
		}
		_, _ = w.Write([]byte(`[{"id":"t1","title":"keep me","status":"NOT_STARTED","level":"LOW"}]`))
	})

	store := newTaskStore(t, server, task.Filter{})
	store.Fetch(context.Background())
	if len(store.Tasks()) != 1 {
		t.Fatal("seed fetch failed")
	}

	failing.Store(true)
	store.Fetch(context.Background())
	if store.Err() != "database offline" {
		t.Errorf("Err = %q", store.Err())
	}
	if len(store.Tasks()) != 1 {
		t.Error("failed fetch dropped the cached list")
	}

	// A later successful fetch clears the error.
	failing.Store(false)
	store.Fetch(context.Background())
	if store.Err() != "" {
		t.Errorf("error survived successful fetch: %q", store.Err())
	}
}

func TestTaskStoreSetFilterEqualIsNoOp(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.HandleJSON("GET /tasks", http.StatusOK, []map[string]any{})

	filter := task.Filter{Status: task.StatusInProgress}
	store := newTaskStore(t, server, filter)
	store.Fetch(context.Background())
	fetches := len(server.Requests())

	store.SetFilter(context.Background(), filter)
	if got := len(server.Requests()); got != fetches {
		t.Fatalf("equal filter triggered a fetch: %d -> %d requests", fetches, got)
	}

	store.SetFilter(context.Background(), task.Filter{Status: task.StatusCompleted})
	if got := len(server.Requests()); got != fetches+1 {
		t.Fatalf("changed filter did not fetch: %d requests", got)
	}
	if store.Filter().Status != task.StatusCompleted {
		t.Errorf("filter not updated: %+v", store.Filter())
	}

	last, _ := server.LastRequest()
	if got := last.Query.Get("status"); got != "COMPLETED" {
		t.Errorf("fetch query status = %q", got)
	}
}

func TestTaskStoreAddPrepends(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.HandleJSON("GET /tasks", http.StatusOK, []map[string]any{
		{"id": "t1", "title": "old", "status": "NOT_STARTED", "level": "LOW"},
	})
	server.HandleJSON("POST /tasks", http.StatusCreated, map[string]any{
		"id": "t2", "title": "new", "status": "NOT_STARTED", "level": "MEDIUM",
	})

	store := newTaskStore(t, server, task.Filter{})
	store.Fetch(context.Background())
	events := store.Subscribe()

	created, err := store.Add(context.Background(), task.CreateDto{
		Title:  "new",
		Status: task.StatusNotStarted,
		Level:  task.LevelMedium,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if created.ID != "t2" {
		t.Fatalf("created = %+v", created)
	}

	event := testutil.RequireReceive(t, events, eventTimeout, "put event")
	if event.Kind != EventPut || event.ID != "t2" {
		t.Errorf("event = %+v", event)
	}

	tasks := store.Tasks()
	if len(tasks) != 2 || tasks[0].ID != "t2" {
		t.Fatalf("new task not prepended: %+v", tasks)
	}
}

func TestTaskStoreModifyReplacesEntry(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.HandleJSON("GET /tasks", http.StatusOK, []map[string]any{
		{"id": "t1", "title": "before", "status": "NOT_STARTED", "level": "LOW"},
		{"id": "t2", "title": "other", "status": "NOT_STARTED", "level": "LOW"},
	})
	server.HandleJSON("PATCH /tasks/t1", http.StatusOK, map[string]any{
		"id": "t1", "title": "after", "status": "IN_PROGRESS", "level": "LOW",
	})

	store := newTaskStore(t, server, task.Filter{})
	store.Fetch(context.Background())
	events := store.Subscribe()

	title := "after"
	if _, err := store.Modify(context.Background(), "t1", task.UpdateDto{Title: &title}); err != nil {
		t.Fatalf("Modify: %v", err)
	}

	event := testutil.RequireReceive(t, events, eventTimeout, "put event")
	if event.Kind != EventPut || event.ID != "t1" {
		t.Errorf("event = %+v", event)
	}

	tasks := store.Tasks()
	if tasks[0].Title != "after" || tasks[0].Status != task.StatusInProgress {
		t.Errorf("entry not replaced: %+v", tasks[0])
	}
	if tasks[1].Title != "other" {
		t.Errorf("unrelated entry changed: %+v", tasks[1])
	}
}

func TestTaskStoreRemoveDropsEntry(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.HandleJSON("GET /tasks", http.StatusOK, []map[string]any{
		{"id": "t1", "title": "doomed", "status": "NOT_STARTED", "level": "LOW"},
	})
	server.HandleJSON("DELETE /tasks/t1", http.StatusNoContent, nil)

	store := newTaskStore(t, server, task.Filter{})
	store.Fetch(context.Background())
	events := store.Subscribe()

	if err := store.Remove(context.Background(), "t1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	event := testutil.RequireReceive(t, events, eventTimeout, "remove event")
	if event.Kind != EventRemove || event.ID != "t1" {
		t.Errorf("event = %+v", event)
	}
	if got := store.Tasks(); len(got) != 0 {
		t.Errorf("task survived removal: %+v", got)
	}
}

func TestTaskStoreStaleFetchDiscarded(t *testing.T) {
	server := testutil.NewAPIServer(t)

	firstArrived := make(chan struct{})
	releaseFirst := make(chan struct{})
	var requestCount atomic.Int64
	server.HandleFunc("GET /tasks", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if requestCount.Add(1) == 1 {
			// The slow first fetch: hold the response until the
			// second fetch has fully committed.
			close(firstArrived)
			<-releaseFirst
			_, _ = w.Write([]byte(`[{"id":"stale","title":"old page","status":"NOT_STARTED","level":"LOW"}]`))
			return
		}
		_, _ = w.Write([]byte(`[{"id":"fresh","title":"new page","status":"NOT_STARTED","level":"LOW"}]`))
	})

	store := newTaskStore(t, server, task.Filter{})

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		store.Fetch(context.Background())
	}()
	testutil.RequireClosed(t, firstArrived, eventTimeout, "first fetch reaching the server")

	// The newer fetch lands while the first is still in flight.
	store.SetFilter(context.Background(), task.Filter{Status: task.StatusCompleted})
	if got := store.Tasks(); len(got) != 1 || got[0].ID != "fresh" {
		t.Fatalf("second fetch result = %+v", got)
	}

	close(releaseFirst)
	testutil.RequireClosed(t, firstDone, eventTimeout, "first fetch completing")

	// The slow first response must not overwrite the newer result.
	if got := store.Tasks(); len(got) != 1 || got[0].ID != "fresh" {
		t.Errorf("stale fetch overwrote the cache: %+v", got)
	}
	if store.Loading() {
		t.Error("store stuck loading after the stale fetch returned")
	}
}

func TestTaskStoreMutationFailureLeavesCache(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.HandleJSON("GET /tasks", http.StatusOK, []map[string]any{
		{"id": "t1", "title": "stable", "status": "NOT_STARTED", "level": "LOW"},
	})
	server.HandleJSON("DELETE /tasks/t1", http.StatusForbidden, map[string]string{
		"message": "not yours",
	})

	store := newTaskStore(t, server, task.Filter{})
	store.Fetch(context.Background())

	if err := store.Remove(context.Background(), "t1"); err == nil {
		t.Fatal("expected delete to fail")
	}
	if got := store.Tasks(); len(got) != 1 {
		t.Errorf("failed delete mutated the cache: %+v", got)
	}
}
