package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/tasuku43/opencommit/internal/app/opencommit"
	"github.com/tasuku43/opencommit/internal/config"
	"github.com/tasuku43/opencommit/internal/infra/debuglog"
	"github.com/tasuku43/opencommit/internal/infra/gitcmd"
	"github.com/tasuku43/opencommit/internal/infra/output"
	"github.com/tasuku43/opencommit/internal/infra/paths"
	"github.com/tasuku43/opencommit/internal/ui"
)

var errRefRequired = errors.New("commit reference is required without prompt")

func newOpenCmd(global *globalOptions) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "open [REF]",
		Short: "Open the commit a sha or ref points to",
		Long: `Open the commit REF points to. Without REF an input dialog asks for one and
stays open until the reference resolves or the dialog is dismissed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			return runOpen(cmd.Context(), global, dir, ref, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "C", "", "run as if opencommit was started in DIR")
	return cmd
}

func runOpen(ctx context.Context, global *globalOptions, dir, ref string, in io.Reader, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	rootDir, err := paths.ResolveRoot(global.root)
	if err != nil {
		return err
	}
	if global.debug {
		if err := debuglog.Enable(rootDir); err != nil {
			return err
		}
		defer debuglog.Close()
	}
	gitcmd.SetVerbose(global.verbose)
	if global.verbose {
		output.SetStepLogger(ui.NewRenderer(errOut, ui.DefaultTheme(), isTerminal(errOut)))
		defer output.SetStepLogger(nil)
	} else {
		output.SetOutput(io.Discard)
		defer output.SetOutput(nil)
	}

	cfg, err := config.Load(rootDir)
	if err != nil {
		return err
	}
	env, err := newOpenEnv(ctx, rootDir, cfg, dir)
	if err != nil {
		return err
	}
	defer env.Close()

	interactive := isTerminal(out)
	theme := ui.DefaultTheme()
	deps := env.deps()

	var item ui.Item
	if ref == "" {
		if global.noPrompt || !interactive {
			return errRefRequired
		}
		accept := func(ctx context.Context, text string) (ui.Item, error) {
			opened, err := opencommit.Resolve(ctx, text, deps)
			if err != nil {
				return nil, err
			}
			return opened, nil
		}
		item, err = ui.PromptOpenCommitWithIO(ctx, ui.DialogOptions{
			Title:      "opencommit open",
			Label:      cfg.Dialog.Label,
			AcceptText: cfg.Dialog.AcceptText,
		}, accept, theme, interactive, in, out)
		if err != nil {
			if errors.Is(err, ui.ErrPromptCanceled) {
				return nil
			}
			return err
		}
	} else {
		output.Step("Open commit")
		opened, err := opencommit.Resolve(ctx, ref, deps)
		if err != nil {
			return userFacing(err)
		}
		item = opened
	}
	output.Logf("opened %s", item.URI())

	detailItem, ok := item.(*opencommit.CommitDetailItem)
	if !ok {
		fmt.Fprintln(out, item.URI())
		return nil
	}
	detail := commitDetail(detailItem)
	viewOpts := ui.ViewOptions{Markdown: cfg.MarkdownEnabled(), Width: cfg.View.Width}
	if interactive && !global.noPrompt {
		return ui.ShowCommitDetail(detail, viewOpts, theme, true)
	}
	ui.RenderCommitDetail(out, detail, viewOpts, theme, interactive)
	return nil
}

func commitDetail(item *opencommit.CommitDetailItem) ui.CommitDetail {
	c := item.Commit()
	return ui.CommitDetail{
		URI:         item.URI(),
		SHA:         c.SHA,
		ShortSHA:    c.ShortSHA(),
		AuthorName:  c.AuthorName,
		AuthorEmail: c.AuthorEmail,
		AuthorDate:  c.AuthorDate,
		Subject:     c.Subject,
		Body:        c.Body,
		Workdir:     item.Workdir(),
	}
}

// displayError shows the user-facing message of a failure while keeping the
// original error in the chain.
type displayError struct {
	message string
	err     error
}

func (e *displayError) Error() string {
	return e.message
}

func (e *displayError) Unwrap() error {
	return e.err
}

func userFacing(err error) error {
	failure := ui.DescribeFailure(err)
	if failure == nil || failure.Message == err.Error() {
		return err
	}
	return &displayError{message: failure.Message, err: err}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
