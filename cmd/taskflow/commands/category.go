// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/taskflow-project/taskflow/cmd/taskflow/cli"
	"github.com/taskflow-project/taskflow/lib/apierror"
	"github.com/taskflow-project/taskflow/lib/schema/category"
)

// CategoryCommand returns the "category" command group.
func CategoryCommand() *cli.Command {
	return &cli.Command{
		Name:    "category",
		Summary: "Manage categories",
		Subcommands: []*cli.Command{
			categoryListCommand(),
			categoryGetCommand(),
			categoryCreateCommand(),
			categoryUpdateCommand(),
			categoryDeleteCommand(),
		},
	}
}

type categoryListParams struct {
	cli.JSONOutput
	Name string `flag:"name" desc:"server-side name filter"`
}

func categoryListCommand() *cli.Command {
	var params categoryListParams

	return &cli.Command{
		Name:    "list",
		Summary: "List categories",
		Usage:   "taskflow category list [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("list", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			application, err := newApp()
			if err != nil {
				return err
			}
			ctx, cancel := application.requestContext()
			defer cancel()

			filter := category.Filter{Name: params.Name}
			categories, err := application.categories.List(ctx, &filter)
			if err != nil {
				return fmt.Errorf("%s", apierror.Format(err))
			}

			if done, err := params.EmitJSON(categories); done {
				return err
			}

			if len(categories) == 0 {
				fmt.Fprintln(os.Stderr, "No categories.")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCREATED")
			for _, entry := range categories {
				fmt.Fprintf(tw, "%s\t%s\t%s\n",
					entry.ID, entry.Name,
					entry.CreatedAt.Local().Format("2006-01-02"),
				)
			}
			return tw.Flush()
		},
	}
}

type categoryGetParams struct {
	cli.JSONOutput
}

func categoryGetCommand() *cli.Command {
	var params categoryGetParams

	return &cli.Command{
		Name:    "get",
		Summary: "Show one category",
		Usage:   "taskflow category get <id> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("get", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one category id is required\n\nUsage: taskflow category get <id>")
			}

			application, err := newApp()
			if err != nil {
				return err
			}
			ctx, cancel := application.requestContext()
			defer cancel()

			entry, err := application.categories.Get(ctx, args[0])
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
			fmt.Printf("ID:       %s\n", entry.ID)
			fmt.Printf("Name:     %s\n", entry.Name)
			fmt.Printf("Created:  %s\n", entry.CreatedAt.Local().Format("2006-01-02 15:04"))
			fmt.Printf("Updated:  %s\n", entry.UpdatedAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
}

type categoryCreateParams struct {
	cli.JSONOutput
}

func categoryCreateCommand() *cli.Command {
	var params categoryCreateParams

	return &cli.Command{
		Name:    "create",
		Summary: "Create a category",
		Usage:   "taskflow category create <name> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("create", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one name is required (quote it)\n\nUsage: taskflow category create <name>")
			}

			application, err := newApp()
			if err != nil {
				return err
			}
			ctx, cancel := application.requestContext()
			defer cancel()

			dto := category.CreateDto{Name: args[0]}
			if err := dto.Validate(); err != nil {
				return err
			}

			created, err := application.categories.Create(ctx, dto)
			if err != nil {
				return fmt.Errorf("%s", apierror.Format(err))
			}

			if done, err := params.EmitJSON(created); done {
				return err
			}
			fmt.Printf("Created category %s\n", created.ID)
			return nil
		},
	}
}

type categoryUpdateParams struct {
	cli.JSONOutput
	Name string `flag:"name,n" desc:"new name"`
}

func categoryUpdateCommand() *cli.Command {
	var params categoryUpdateParams
	var flagSet *pflag.FlagSet

	return &cli.Command{
		Name:    "update",
		Summary: "Rename a category",
		Usage:   "taskflow category update <id> --name <name>",
		Flags: func() *pflag.FlagSet {
			flagSet = cli.FlagsFromParams("update", &params)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one category id is required\n\nUsage: taskflow category update <id> --name <name>")
			}
			if !flagSet.Changed("name") {
				return fmt.Errorf("nothing to update (set --name)")
			}

			dto := category.UpdateDto{Name: &params.Name}
			if err := dto.Validate(); err != nil {
				return err
			}

			application, err := newApp()
			if err != nil {
				return err
			}
			ctx, cancel := application.requestContext()
			defer cancel()

			updated, err := application.categories.Update(ctx, args[0], dto)
			if err != nil {
				return fmt.Errorf("%s", apierror.Format(err))
			}

			if done, err := params.EmitJSON(updated); done {
				return err
			}
			fmt.Printf("Updated category %s\n", updated.ID)
			return nil
		},
	}
}

func categoryDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Summary: "Delete a category",
		Description: `Delete a category. Tasks keep their category reference; the server
decides whether to cascade or orphan them.`,
		Usage: "taskflow category delete <id>",
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one category id is required\n\nUsage: taskflow category delete <id>")
			}

			application, err := newApp()
			if err != nil {
				return err
			}
			ctx, cancel := application.requestContext()
			defer cancel()

			if err := application.categories.Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("%s", apierror.Format(err))
			}
			fmt.Printf("Deleted category %s\n", args[0])
			return nil
		},
	}
}
