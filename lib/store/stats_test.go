// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"testing"

	"github.com/taskflow-project/taskflow/lib/schema/task"
)

func TestComputeStats(t *testing.T) {
	tasks := []task.Task{
		{ID: "1", Status: task.StatusNotStarted, Level: task.LevelHigh},
		{ID: "2", Status: task.StatusInProgress, Level: task.LevelLow},
		{ID: "3", Status: task.StatusCompleted, Level: task.LevelHigh},
		{ID: "4", Status: task.StatusCompleted, Level: task.LevelMedium},
	}

	stats := ComputeStats(tasks)
	if stats.Total != 4 || stats.NotStarted != 1 || stats.InProgress != 1 || stats.Completed != 2 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.HighPriority != 2 {
		t.Errorf("HighPriority = %d", stats.HighPriority)
	}
	if got := stats.CompletionPercent(); got != 50 {
		t.Errorf("CompletionPercent = %d", got)
	}
}

func TestCompletionPercentEdges(t *testing.T) {
	if got := (Stats{}).CompletionPercent(); got != 0 {
		t.Errorf("empty list percent = %d", got)
	}
	// 1/3 rounds to the nearest percent, not down.
	stats := Stats{Total: 3, Completed: 1}
	if got := stats.CompletionPercent(); got != 33 {
		t.Errorf("1/3 percent = %d", got)
	}
	stats = Stats{Total: 3, Completed: 2}
	if got := stats.CompletionPercent(); got != 67 {
		t.Errorf("2/3 percent = %d", got)
	}
}
