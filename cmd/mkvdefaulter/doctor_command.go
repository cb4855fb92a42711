package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mkvdefaulter/internal/deps"
	"mkvdefaulter/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the MKVToolNix executables are available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := isTerminal(out)
			ok := color.New(color.FgGreen)
			bad := color.New(color.FgRed)
			if !colorize {
				ok.DisableColor()
				bad.DisableColor()
			}

			statuses := preflight.CheckSystemDeps(cfg, false)
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := ok.Sprint("OK")
				detail := status.Path
				if status.Available {
					if v, err := deps.Version(cmd.Context(), status.Path); err == nil {
						detail = v
					}
				} else {
					state = bad.Sprint("MISSING")
					detail = status.Detail
				}
				rows = append(rows, []string{status.Name, state, status.Command, detail})
			}
			fmt.Fprintln(out, reportTable{
				headers: []string{"Tool", "Status", "Command", "Detail"},
				rows:    rows,
				wrap:    []int{3},
			}.render())
			fmt.Fprintf(out, "Config: %s\n", ctx.configPath)

			if missing, found := deps.FirstMissing(statuses); found {
				return fmt.Errorf("%s unavailable: %s (%s)", missing.Name, missing.Detail, missing.Description)
			}
			return nil
		},
	}
}
