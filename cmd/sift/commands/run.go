package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/sift/internal/app"
	"go.trai.ch/sift/internal/core/domain"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Run the configured analysis engines",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			full, _ := cmd.Flags().GetBool("full")
			engineNames, _ := cmd.Flags().GetStringSlice("engine")
			profile, _ := cmd.Flags().GetString("profile")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			watch, _ := cmd.Flags().GetBool("watch")

			outcome, err := c.app.Audit(cmd.Context(), rootFlag(cmd), app.RunOptions{
				Paths:   args,
				Full:    full,
				Engines: engineNames,
				Profile: profile,
				NoCache: noCache,
				Watch:   watch,
			})
			if err != nil {
				return err
			}

			renderOutcome(cmd.OutOrStdout(), outcome)
			if auditFailed(outcome) {
				return domain.ErrAuditFailed
			}
			return nil
		},
	}
	cmd.Flags().Bool("full", false, "Audit each engine's full configured scope")
	cmd.Flags().StringSliceP("engine", "e", nil, "Run only the named engines")
	cmd.Flags().StringP("profile", "p", "", "Force a profile for every engine")
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the run cache and force execution")
	cmd.Flags().BoolP("watch", "w", false, "Render live progress while the audit runs")
	return cmd
}

// renderOutcome prints diagnostics and a per-run summary line.
func renderOutcome(out io.Writer, outcome *domain.AuditOutcome) {
	for _, result := range outcome.Results {
		name := result.Engine + "/" + string(result.Mode)
		if result.Failed() {
			fmt.Fprintf(out, "%s: engine failed: %s\n", name, result.EngineError)
			continue
		}

		for _, d := range result.Diagnostics {
			fmt.Fprintf(out, "%s:%d:%d: %s %s %s (%s)\n",
				d.Path, d.Line, d.Column, d.Severity, d.Code, d.Message, d.Tool)
		}

		suffix := ""
		if result.Cached {
			suffix = " (cached)"
		}
		fmt.Fprintf(out, "%s: %d diagnostics%s\n", name, len(result.Diagnostics), suffix)
	}

	if outcome.Truncated {
		fmt.Fprintln(out, "warning: file scan was truncated by a collection budget; results may be incomplete")
	}
}

// auditFailed reports whether the outcome should fail the process: any
// engine failure or any error-severity diagnostic.
func auditFailed(outcome *domain.AuditOutcome) bool {
	for _, result := range outcome.Results {
		if result.Failed() {
			return true
		}
		for _, d := range result.Diagnostics {
			if d.Severity == domain.SeverityError {
				return true
			}
		}
	}
	return false
}
