package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/storefront-client/internal/api"
	"github.com/aaravmahajanofficial/storefront-client/internal/utils/response"
	"github.com/spf13/cobra"
)

const skipRestore = "skip-restore"

// NewRootCommand assembles the storefront command tree.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront client for the shop API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if app.Out == nil {
				app.Out = cmd.OutOrStdout()
			}
			if app.Err == nil {
				app.Err = cmd.ErrOrStderr()
			}
			if app.In == nil {
				app.In = cmd.InOrStdin()
			}

			if _, ok := cmd.Annotations[skipRestore]; ok {
				return nil
			}

			if _, err := app.Session.Restore(cmd.Context()); err != nil {
				api.LoggerFromContext(cmd.Context()).Warn("Could not restore session", slog.String("error", err.Error()))
			}

			return nil
		},
	}

	root.PersistentFlags().BoolVar(&app.JSON, "json", false, "print JSON instead of tables")

	root.AddCommand(
		newLoginCommand(app),
		newLogoutCommand(app),
		newRegisterCommand(app),
		newWhoamiCommand(app),
		newCatalogCommand(app),
		newCartCommand(app),
		newCheckoutCommand(app),
		newProfileCommand(app),
		newAdminCommand(app),
		newHealthCommand(app),
	)

	return root
}

// Execute runs the command tree and prints a failure the way --json asks.
func Execute(ctx context.Context, app *App, args []string) error {
	root := NewRootCommand(app)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		out := app.Err
		if out == nil {
			out = root.ErrOrStderr()
		}
		response.Error(out, err, app.JSON)
	}

	return err
}

func withoutRestore(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[skipRestore] = "true"

	return cmd
}

// readSecret takes the flag value or, when empty, one line from stdin.
func readSecret(app *App, value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}

	if !app.JSON {
		fmt.Fprintf(app.Err, "%s: ", prompt)
	}

	line, err := bufio.NewReader(app.In).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(prompt), err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}
