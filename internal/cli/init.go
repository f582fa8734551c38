package cli

import (
	"github.com/spf13/cobra"
	"github.com/tasuku43/opencommit/internal/app/initcmd"
	"github.com/tasuku43/opencommit/internal/infra/paths"
	"github.com/tasuku43/opencommit/internal/ui"
)

func newInitCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the opencommit root and a default config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rootDir, err := paths.ResolveRoot(global.root)
			if err != nil {
				return err
			}
			result, err := initcmd.Run(rootDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			renderer := ui.NewRenderer(out, ui.DefaultTheme(), isTerminal(out))
			renderer.Section("Result")
			renderer.Bullet("root: " + result.RootDir)
			for _, path := range result.CreatedDirs {
				renderer.Bullet("created " + path)
			}
			for _, path := range result.CreatedFiles {
				renderer.Bullet("created " + path)
			}
			for _, path := range append(append([]string(nil), result.SkippedDirs...), result.SkippedFiles...) {
				renderer.StepLog("exists " + path)
			}
			return nil
		},
	}
}
