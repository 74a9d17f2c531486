package cli

import (
	"io"
	"maps"
	"slices"

	"github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/hellofresh/health-go/v5"
	"github.com/spf13/cobra"
)

func newHealthCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the API and the session store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.Health == nil {
				return errors.InternalError("health checks are not configured")
			}

			check := app.Health.Measure(cmd.Context())

			if err := render(app, check, func(w io.Writer) {
				row(w, "STATUS", check.Status)
				for _, name := range slices.Sorted(maps.Keys(check.Failures)) {
					row(w, name, check.Failures[name])
				}
			}); err != nil {
				return err
			}

			if check.Status == health.StatusUnavailable {
				return errors.ThirdPartyError("service unavailable")
			}

			return nil
		},
	}

	return withoutRestore(cmd)
}
