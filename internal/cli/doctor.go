package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tasuku43/opencommit/internal/app/doctor"
	"github.com/tasuku43/opencommit/internal/infra/paths"
	"github.com/tasuku43/opencommit/internal/ui"
)

func newDoctorCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check git and the opencommit root for problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rootDir, err := paths.ResolveRoot(global.root)
			if err != nil {
				return err
			}
			result, err := doctor.Check(cmd.Context(), rootDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			renderer := ui.NewRenderer(out, ui.DefaultTheme(), isTerminal(out))
			renderer.Section("Info")
			for _, detail := range result.Details {
				renderer.Bullet(detail)
			}
			if len(result.Warnings) > 0 {
				renderer.Blank()
				renderer.Section("Warnings")
				for _, warning := range result.Warnings {
					renderer.Warn(warning)
				}
			}
			renderer.Blank()
			renderer.Section("Result")
			if len(result.Issues) == 0 {
				renderer.Bullet("no issues found")
				return nil
			}
			for _, issue := range result.Issues {
				line := fmt.Sprintf("%s: %s", issue.Kind, issue.Message)
				if issue.Path != "" {
					line += fmt.Sprintf(" (%s)", issue.Path)
				}
				renderer.BulletError(line)
			}
			return fmt.Errorf("doctor found %d issue(s)", len(result.Issues))
		},
	}
}
