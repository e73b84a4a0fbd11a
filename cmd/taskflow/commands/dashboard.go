// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskflow-project/taskflow/cmd/taskflow/cli"
	"github.com/taskflow-project/taskflow/lib/schema/category"
	"github.com/taskflow-project/taskflow/lib/schema/task"
	"github.com/taskflow-project/taskflow/lib/session"
	"github.com/taskflow-project/taskflow/lib/store"
	"github.com/taskflow-project/taskflow/lib/taskui"
)

// DashboardCommand returns the "dashboard" command: the interactive
// terminal UI. This is also what a bare "taskflow" runs.
func DashboardCommand() *cli.Command {
	return &cli.Command{
		Name:    "dashboard",
		Summary: "Open the interactive dashboard",
		Description: `Open the full-screen dashboard: task and category lists with fuzzy
filtering, a markdown detail pane, and inline editing. Anonymous
sessions land on the sign-in screen first.`,
		Usage: "taskflow dashboard",
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			application, err := newApp()
			if err != nil {
				return err
			}

			sess := session.New(application.auth, application.tokens, application.logger)
			tasks := store.NewTaskStore(application.tasks, task.Filter{})
			categories := store.NewCategoryStore(application.categories, category.Filter{})

			model := taskui.New(application.config, sess, tasks, categories, application.logger)
			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("dashboard: %w", err)
			}
			return nil
		},
	}
}
