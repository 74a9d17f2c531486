package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aaravmahajanofficial/storefront-client/internal/utils/response"
)

// render prints data as JSON with --json, otherwise through table.
func render(app *App, data any, table func(w io.Writer)) error {
	if app.JSON {
		return response.WriteJson(app.Out, data)
	}

	tw := tabwriter.NewWriter(app.Out, 0, 0, 2, ' ', 0)
	table(tw)

	return tw.Flush()
}

func row(w io.Writer, cols ...any) {
	for i, col := range cols {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, col)
	}
	fmt.Fprintln(w)
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// done prints a confirmation line, or {"ok": true, ...} with --json.
func done(app *App, message string, fields map[string]any) error {
	if app.JSON {
		payload := map[string]any{"ok": true}
		for k, v := range fields {
			payload[k] = v
		}

		return response.WriteJson(app.Out, payload)
	}

	_, err := fmt.Fprintln(app.Out, message)

	return err
}
