package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type globalOptions struct {
	root     string
	debug    bool
	verbose  bool
	noPrompt bool
}

// Run executes the command line in os.Args.
func Run() error {
	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	cmd.SetArgs(os.Args[1:])
	return cmd.ExecuteContext(context.Background())
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	opts := &globalOptions{
		debug:   envBool("OPENCOMMIT_DEBUG"),
		verbose: envBool("OPENCOMMIT_VERBOSE"),
	}
	cmd := &cobra.Command{
		Use:   "opencommit",
		Short: "Open a git commit by sha or ref",
		Long: `opencommit asks for a commit sha or ref, checks that it names a commit in the
current repository, and opens the commit detail view.`,
		Version:       versionLine(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetVersionTemplate("{{.Version}}\n")

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.root, "root", "", "override opencommit root (default $OPENCOMMIT_ROOT or ~/.opencommit)")
	flags.BoolVar(&opts.debug, "debug", opts.debug, "write debug logs under <root>/logs")
	flags.BoolVarP(&opts.verbose, "verbose", "v", opts.verbose, "show detailed logs")
	flags.BoolVar(&opts.noPrompt, "no-prompt", false, "disable interactive prompt")

	cmd.AddCommand(newOpenCmd(opts), newDoctorCmd(opts), newInitCmd(opts), newVersionCmd())
	return cmd
}

func envBool(key string) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return false
	}
	switch strings.ToLower(val) {
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}
