// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/taskflow-project/taskflow/cmd/taskflow/cli"
	"github.com/taskflow-project/taskflow/lib/apierror"
	"github.com/taskflow-project/taskflow/lib/schema/task"
)

// TaskCommand returns the "task" command group.
func TaskCommand() *cli.Command {
	return &cli.Command{
		Name:    "task",
		Summary: "Manage tasks",
		Subcommands: []*cli.Command{
			taskListCommand(),
			taskGetCommand(),
			taskCreateCommand(),
			taskUpdateCommand(),
			taskDeleteCommand(),
		},
	}
}

type taskListParams struct {
	cli.JSONOutput
	Status string `flag:"status,s" desc:"filter by status (not-started, in-progress, completed)"`
	Level  string `flag:"level,l"  desc:"filter by priority (low, medium, high)"`
	Search string `flag:"search"   desc:"server-side title/description search"`
	Sort   string `flag:"sort"     desc:"sort field (createdAt, updatedAt)"`
	Order  string `flag:"order"    desc:"sort order (asc, desc)"`
	Page   int    `flag:"page"     desc:"page number (1-based)"`
	Limit  int    `flag:"limit"    desc:"page size"`
}

func taskListCommand() *cli.Command {
	var params taskListParams

	return &cli.Command{
		Name:    "list",
		Summary: "List tasks",
		Usage:   "taskflow task list [flags]",
		Examples: []cli.Example{
			{
				Description: "Open high-priority work, newest first",
				Command:     "taskflow task list --status not-started --level high --sort createdAt --order desc",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("list", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			filter := task.Filter{
				Search: params.Search,
				Sort:   params.Sort,
				Order:  params.Order,
				Page:   params.Page,
				Limit:  params.Limit,
			}
			if params.Status != "" {
				status, err := task.ParseStatus(params.Status)
				if err != nil {
					return err
				}
				filter.Status = status
			}
			if params.Level != "" {
				level, err := task.ParseLevel(params.Level)
				if err != nil {
					return err
				}
				filter.Level = level
			}

			application, err := newApp()
			if err != nil {
				return err
			}
			ctx, cancel := application.requestContext()
			defer cancel()

			tasks, err := application.tasks.List(ctx, &filter)
			if err != nil {
				return fmt.Errorf("%s", apierror.Format(err))
			}

			if done, err := params.EmitJSON(tasks); done {
				return err
			}

			if len(tasks) == 0 {
				fmt.Fprintln(os.Stderr, "No tasks.")
				return nil
			}

			names := categoryNames(ctx, application)
			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTATUS\tLEVEL\tTITLE\tCATEGORY\tUPDATED")
			for _, entry := range tasks {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					entry.ID,
					entry.Status.Label(),
					entry.Level.Label(),
					entry.Title,
					names[entry.CategoryID],
					entry.UpdatedAt.Local().Format("2006-01-02 15:04"),
				)
			}
			return tw.Flush()
		},
	}
}

type taskGetParams struct {
	cli.JSONOutput
}

func taskGetCommand() *cli.Command {
	var params taskGetParams

	return &cli.Command{
		Name:    "get",
		Summary: "Show one task",
		Usage:   "taskflow task get <id> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("get", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one task id is required\n\nUsage: taskflow task get <id>")
			}

			application, err := newApp()
			if err != nil {
				return err
			}
			ctx, cancel := application.requestContext()
			defer cancel()

			entry, err := application.tasks.Get(ctx, args[0])
			if err != nil {
				if apierror.IsNotFound(err) {
					fmt.Fprintf(os.Stderr, "%s\n", apierror.Format(err))
					return &cli.ExitError{Code: 1}
				}
				return fmt.Errorf("%s", apierror.Format(err))
			}

			if done, err := params.EmitJSON(entry); done {
				return err
			}
			printTask(entry, categoryNames(ctx, application))
			return nil
		},
	}
}

type taskCreateParams struct {
	cli.JSONOutput
	Description string `flag:"description,d" desc:"markdown description"`
	Status      string `flag:"status,s"      desc:"initial status"           default:"not-started"`
	Level       string `flag:"level,l"       desc:"priority level"           default:"medium"`
	Category    string `flag:"category,c"    desc:"category name or id"`
}

func taskCreateCommand() *cli.Command {
	var params taskCreateParams

	return &cli.Command{
		Name:    "create",
		Summary: "Create a task",
		Usage:   "taskflow task create <title> [flags]",
		Examples: []cli.Example{
			{
				Description: "Create a high-priority task in the Auth category",
				Command:     `taskflow task create "Fix login redirect loop" --level high --category Auth`,
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("create", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one title is required (quote it)\n\nUsage: taskflow task create <title> [flags]")
			}

			status, err := task.ParseStatus(params.Status)
			if err != nil {
				return err
			}
			level, err := task.ParseLevel(params.Level)
			if err != nil {
				return err
			}

			application, err := newApp()
			if err != nil {
				return err
			}
			ctx, cancel := application.requestContext()
			defer cancel()

			dto := task.CreateDto{
				Title:  args[0],
				Status: status,
				Level:  level,
			}
			if params.Description != "" {
				dto.Description = &params.Description
			}
			if params.Category != "" {
				categoryID, err := resolveCategory(ctx, application, params.Category)
				if err != nil {
					return err
				}
				dto.CategoryID = categoryID
			}
			if err := dto.Validate(); err != nil {
				return err
			}

			created, err := application.tasks.Create(ctx, dto)
			if err != nil {
				return fmt.Errorf("%s", apierror.Format(err))
			}

			if done, err := params.EmitJSON(created); done {
				return err
			}
			fmt.Printf("Created task %s\n", created.ID)
			return nil
		},
	}
}

type taskUpdateParams struct {
	cli.JSONOutput
	Title         string `flag:"title,t"        desc:"new title"`
	Description   string `flag:"description,d"  desc:"new markdown description"`
	Status        string `flag:"status,s"       desc:"new status"`
	Level         string `flag:"level,l"        desc:"new priority level"`
	Category      string `flag:"category,c"     desc:"new category name or id"`
	ClearCategory bool   `flag:"clear-category" desc:"remove the category assignment"`
}

func taskUpdateCommand() *cli.Command {
	var params taskUpdateParams
	var flagSet *pflag.FlagSet

	return &cli.Command{
		Name:    "update",
		Summary: "Update a task",
		Usage:   "taskflow task update <id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Mark a task completed",
				Command:     "taskflow task update 42 --status completed",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet = cli.FlagsFromParams("update", &params)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one task id is required\n\nUsage: taskflow task update <id> [flags]")
			}

			// Only flags the user actually set become part of the patch;
			// an empty string is a valid new description.
			dto := task.UpdateDto{}
			if flagSet.Changed("title") {
				dto.Title = &params.Title
			}
			if flagSet.Changed("description") {
				dto.Description = &params.Description
			}
			if flagSet.Changed("status") {
				status, err := task.ParseStatus(params.Status)
				if err != nil {
					return err
				}
				dto.Status = &status
			}
			if flagSet.Changed("level") {
				level, err := task.ParseLevel(params.Level)
				if err != nil {
					return err
				}
				dto.Level = &level
			}

			application, err := newApp()
			if err != nil {
				return err
			}
			ctx, cancel := application.requestContext()
			defer cancel()

			if params.ClearCategory {
				empty := ""
				dto.CategoryID = &empty
			} else if flagSet.Changed("category") {
				categoryID, err := resolveCategory(ctx, application, params.Category)
				if err != nil {
					return err
				}
				dto.CategoryID = &categoryID
			}

			if dto == (task.UpdateDto{}) {
				return fmt.Errorf("nothing to update (set at least one flag)")
			}
			if err := dto.Validate(); err != nil {
				return err
			}

			updated, err := application.tasks.Update(ctx, args[0], dto)
			if err != nil {
				return fmt.Errorf("%s", apierror.Format(err))
			}

			if done, err := params.EmitJSON(updated); done {
				return err
			}
			fmt.Printf("Updated task %s\n", updated.ID)
			return nil
		},
	}
}

func taskDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Summary: "Delete a task",
		Usage:   "taskflow task delete <id>",
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one task id is required\n\nUsage: taskflow task delete <id>")
			}

			application, err := newApp()
			if err != nil {
				return err
			}
			ctx, cancel := application.requestContext()
			defer cancel()

			if err := application.tasks.Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("%s", apierror.Format(err))
			}
			fmt.Printf("Deleted task %s\n", args[0])
			return nil
		},
	}
}

// printTask writes a full task record as labeled lines.
func printTask(entry task.Task, names map[string]string) {
	fmt.Printf("ID:        %s\n", entry.ID)
	fmt.Printf("Title:     %s\n", entry.Title)
	fmt.Printf("Status:    %s\n", entry.Status.Label())
	fmt.Printf("Level:     %s\n", entry.Level.Label())
	if entry.CategoryID != "" {
		name := names[entry.CategoryID]
		if name == "" {
			name = entry.CategoryID
		}
		fmt.Printf("Category:  %s\n", name)
	}
	fmt.Printf("Created:   %s\n", entry.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Printf("Updated:   %s\n", entry.UpdatedAt.Local().Format("2006-01-02 15:04"))
	if entry.Description != nil && *entry.Description != "" {
		fmt.Printf("\n%s\n", *entry.Description)
	}
}

// categoryNames fetches the category list and returns an ID-to-name
// map for display. Errors degrade to raw IDs rather than failing the
// command.
func categoryNames(ctx context.Context, application *app) map[string]string {
	names := make(map[string]string)
	categories, err := application.categories.List(ctx, nil)
	if err != nil {
		application.logger.Warn("category lookup failed, showing raw ids", "error", err)
		return names
	}
	for _, entry := range categories {
		names[entry.ID] = entry.Name
	}
	return names
}

// resolveCategory turns a --category argument into a category ID. An
// exact ID match wins; otherwise the name is matched case-sensitively.
func resolveCategory(ctx context.Context, application *app, nameOrID string) (string, error) {
	categories, err := application.categories.List(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s", apierror.Format(err))
	}
	for _, entry := range categories {
		if entry.ID == nameOrID {
			return entry.ID, nil
		}
	}
	for _, entry := range categories {
		if entry.Name == nameOrID {
			return entry.ID, nil
		}
	}
	return "", fmt.Errorf("no category named %q (run 'taskflow category list')", nameOrID)
}
