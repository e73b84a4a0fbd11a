// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/taskflow-project/taskflow/cmd/taskflow/cli"
	"github.com/taskflow-project/taskflow/lib/apierror"
	"github.com/taskflow-project/taskflow/lib/schema/user"
)

// loginParams holds the parameters for the login command.
type loginParams struct {
	PasswordFile string `flag:"password-file" desc:"path to file containing password, or - to prompt interactively (default: prompt)"`
}

// LoginCommand returns the "login" command. On success the bearer
// token is saved to the well-known path; subsequent commands and the
// dashboard use it transparently.
func LoginCommand() *cli.Command {
	var params loginParams

	return &cli.Command{
		Name:    "login",
		Summary: "Sign in and save the session locally",
		Description: `Sign in to the TaskFlow API and save the session token locally.

After login, commands like "taskflow task list" and the dashboard use
the saved token transparently — no flags needed. The token file is
written with mode 0600 since it grants account access.

The password can be provided via --password-file (a path to a file
containing the password) or prompted interactively if --password-file
is "-" or omitted.`,
		Usage: "taskflow login <email> [flags]",
		Examples: []cli.Example{
			{
				Description: "Sign in interactively (prompts for password)",
				Command:     "taskflow login ben@example.com",
			},
			{
				Description: "Sign in with password from a file",
				Command:     "taskflow login ben@example.com --password-file /path/to/password",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("login", &params)
		},
		Run: func(args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("email is required\n\nUsage: taskflow login <email> [flags]")
			}
			email := args[0]
			if len(args) > 1 {
				return fmt.Errorf("unexpected argument: %s", args[1])
			}

			password, err := readPassword(params.PasswordFile, "Password: ")
			if err != nil {
				return err
			}

			application, err := newApp()
			if err != nil {
				return err
			}

			ctx, cancel := application.requestContext()
			defer cancel()

			response, err := application.auth.Login(ctx, user.LoginDto{
				Email:    email,
				Password: password,
			})
			if err != nil {
				return fmt.Errorf("%s", apierror.Format(err))
			}

			fmt.Fprintf(os.Stderr, "Logged in as %s <%s>\n", response.User.Username, response.User.Email)
			fmt.Fprintf(os.Stderr, "Token saved to %s\n", application.tokens.Path())
			return nil
		},
	}
}

// RegisterCommand returns the "register" command for creating an
// account. Registration signs the new account in immediately.
func RegisterCommand() *cli.Command {
	var params loginParams

	return &cli.Command{
		Name:    "register",
		Summary: "Create an account and sign in",
		Usage:   "taskflow register <username> <email> [flags]",
		Examples: []cli.Example{
			{
				Description: "Create an account (prompts for password twice)",
				Command:     "taskflow register ben ben@example.com",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("register", &params)
		},
		Run: func(args []string) error {
			if len(args) < 2 {
				return fmt.Errorf("username and email are required\n\nUsage: taskflow register <username> <email> [flags]")
			}
			username, email := args[0], args[1]
			if len(args) > 2 {
				return fmt.Errorf("unexpected argument: %s", args[2])
			}

			password, err := readPassword(params.PasswordFile, "Password: ")
			if err != nil {
				return err
			}

			// Interactive registration confirms the password; the server
			// only sees it once and a typo would lock the account out.
			if params.PasswordFile == "" || params.PasswordFile == "-" {
				confirmation, err := readPassword("", "Confirm password: ")
				if err != nil {
					return err
				}
				if confirmation != password {
					return fmt.Errorf("passwords do not match")
				}
			}

			application, err := newApp()
			if err != nil {
				return err
			}

			ctx, cancel := application.requestContext()
			defer cancel()

			response, err := application.auth.Register(ctx, user.RegisterDto{
				Username: username,
				Email:    email,
				Password: password,
			})
			if err != nil {
				return fmt.Errorf("%s", apierror.Format(err))
			}

			fmt.Fprintf(os.Stderr, "Account created: %s <%s>\n", response.User.Username, response.User.Email)
			fmt.Fprintf(os.Stderr, "Token saved to %s\n", application.tokens.Path())
			return nil
		},
	}
}

// LogoutCommand returns the "logout" command.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:    "logout",
		Summary: "Discard the saved session",
		Usage:   "taskflow logout",
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			application, err := newApp()
			if err != nil {
				return err
			}
			if !application.tokens.Has() {
				fmt.Fprintln(os.Stderr, "Not signed in.")
				return nil
			}
			application.auth.Logout()
			fmt.Fprintln(os.Stderr, "Signed out.")
			return nil
		},
	}
}

// whoamiParams holds the parameters for the whoami command.
type whoamiParams struct {
	cli.JSONOutput
}

// WhoamiCommand returns the "whoami" command: resolves the saved
// token against the server and prints the account.
func WhoamiCommand() *cli.Command {
	var params whoamiParams

	return &cli.Command{
		Name:    "whoami",
		Summary: "Show the signed-in account",
		Usage:   "taskflow whoami [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("whoami", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			application, err := newApp()
			if err != nil {
				return err
			}
			if !application.tokens.Has() {
				fmt.Fprintln(os.Stderr, "Not signed in.")
				return &cli.ExitError{Code: 1}
			}

			ctx, cancel := application.requestContext()
			defer cancel()

			current, err := application.auth.CurrentUser(ctx)
			if err != nil {
				return fmt.Errorf("%s", apierror.Format(err))
			}

			if done, err := params.EmitJSON(current); done {
				return err
			}
			fmt.Printf("%s <%s>\n", current.Username, current.Email)
			fmt.Printf("member since %s\n", current.CreatedAt.Local().Format("2006-01-02"))
			return nil
		},
	}
}

// readPassword reads a password from a file or, when path is empty or
// "-", interactively from the terminal with echo disabled.
func readPassword(path, prompt string) (string, error) {
	if path != "" && path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		password := strings.TrimRight(string(data), "\r\n")
		if password == "" {
			return "", fmt.Errorf("file %s is empty (after stripping trailing newlines)", path)
		}
		return password, nil
	}

	stdinFd := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFd) {
		return "", fmt.Errorf("no terminal available for interactive password prompt (use --password-file)")
	}

	fmt.Fprint(os.Stderr, prompt)
	passwordBytes, err := term.ReadPassword(stdinFd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(passwordBytes), nil
}
