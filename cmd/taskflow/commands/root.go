// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/taskflow-project/taskflow/cmd/taskflow/cli"
)

// Root returns the top-level taskflow command. Running it with no
// subcommand opens the dashboard.
func Root() *cli.Command {
	dashboard := DashboardCommand()

	return &cli.Command{
		Name:    "taskflow",
		Summary: "Task and category management client",
		Description: `taskflow is a client for the TaskFlow API: an interactive terminal
dashboard plus scriptable commands for tasks, categories, and
authentication.

The API endpoint defaults to http://localhost:3500/api/v1 and can be
overridden with TASKFLOW_API_URL or a config file (TASKFLOW_CONFIG).`,
		Examples: []cli.Example{
			{
				Description: "Open the interactive dashboard",
				Command:     "taskflow",
			},
			{
				Description: "Sign in, then list open high-priority tasks as JSON",
				Command:     "taskflow login ben@example.com && taskflow task list --level high --status not-started --json",
			},
		},
		Subcommands: []*cli.Command{
			LoginCommand(),
			RegisterCommand(),
			LogoutCommand(),
			WhoamiCommand(),
			TaskCommand(),
			CategoryCommand(),
			dashboard,
		},
		Run: dashboard.Run,
	}
}
