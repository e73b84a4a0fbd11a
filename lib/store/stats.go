// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"math"

	"github.com/taskflow-project/taskflow/lib/schema/task"
)

// Stats are the dashboard aggregates derived from a task list.
type Stats struct {
	Total        int
	NotStarted   int
	InProgress   int
	Completed    int
	HighPriority int
}

// CompletionPercent returns completed/total rounded to the nearest
// whole percent, or 0 for an empty list.
func (s Stats) CompletionPercent() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
}

// ComputeStats derives Stats from a task list in one pass.
func ComputeStats(tasks []task.Task) Stats {
	stats := Stats{Total: len(tasks)}
	for _, entry := range tasks {
		switch entry.Status {
		case task.StatusNotStarted:
			stats.NotStarted++
		case task.StatusInProgress:
			stats.InProgress++
		case task.StatusCompleted:
			stats.Completed++
		}
		if entry.Level == task.LevelHigh {
			stats.HighPriority++
		}
	}
	return stats
}
