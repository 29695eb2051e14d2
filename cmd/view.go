package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"antiseptic.dev/pkg/antiseptic/internal/domain"
	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <report>",
		Short: "View a saved report",
		Long:  "View a report saved with --save-report, in any supported format.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := reportFormat()
			if err != nil {
				return &ExitError{Code: m.ExitFatal, Err: err}
			}

			err = workflow.View(cmd.Context(), domain.ViewArgs{
				ReportPath: m.Path(args[0]),
				Format:     format,
				Pager:      !viper.GetBool(noPagerFlagName),
				Quiet:      viper.GetBool(quietFlagName),
			})
			if err != nil {
				return &ExitError{Code: m.ExitFatal, Err: err}
			}

			return nil
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
