package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/MistByteX/predictor/internal/domain"
	"github.com/MistByteX/predictor/internal/infra/config"
	"github.com/MistByteX/predictor/internal/infra/homefinder"
	"github.com/MistByteX/predictor/internal/infra/logger"
	"github.com/MistByteX/predictor/internal/ui/tui"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	opts := newRootOptions()
	cmd := newRootCmd(opts)
	err := cmd.ExecuteContext(ctx)

	opts.close()
	stop()

	if err != nil {
		if hint := tui.Hint(err); hint != "" {
			fmt.Fprintln(os.Stderr, theme.Help.Render("hint: "+hint))
		}
		os.Exit(1)
	}
}

// rootOptions carries the global flags and the process hooks that tests replace.
type rootOptions struct {
	apiKey string
	home   string
	debug  bool

	root    string
	cleanup func() error

	getenv      func(string) string
	now         func() time.Time
	interactive func() bool
	prompt      func(ctx context.Context, home string, in io.Reader, out io.Writer) (string, error)
}

func newRootOptions() *rootOptions {
	return &rootOptions{
		getenv: os.Getenv,
		now:    time.Now,
		interactive: func() bool {
			fd := os.Stdin.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		prompt: func(ctx context.Context, home string, in io.Reader, out io.Writer) (string, error) {
			return tui.PromptAPIKey(ctx, home, in, out, logger.L())
		},
	}
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "predictor",
		Short:        "GLM-backed predictions with Plum Blossom divination",
		SilenceUsage: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return opts.setup(c)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.apiKey, "api-key", "", "GLM API key (overrides config and PREDICTOR_API_KEY)")
	cmd.PersistentFlags().StringVar(&opts.home, "home", "", "predictor home (default $PREDICTOR_HOME or ~/.predictor)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable verbose logging to <home>/logs/predictor.log")

	cmd.AddCommand(
		initCmd(opts),
		configCmd(opts),
		askCmd(opts),
		predictCmd(opts),
		yiCmd(opts),
		listTemplatesCmd(opts),
		templateCmd(opts),
		createTemplateCmd(opts),
		historyCmd(opts),
		algoCmd(),
		versionCmd(),
	)
	return cmd
}

// setup loads .env files, resolves the home directory and starts logging.
// A .env in the working directory is read first so it may set PREDICTOR_HOME.
func (o *rootOptions) setup(c *cobra.Command) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	finder := homefinder.NewFinder()
	finder.Getenv = o.getenv
	root, err := finder.Resolve(o.home)
	if err != nil {
		return err
	}
	o.root = root

	if err := config.LoadDotEnv(filepath.Join(root, ".env")); err != nil {
		return err
	}

	layout := homefinder.LayoutFor(root, domain.DefaultConfig())
	cleanup, err := logger.Setup(logger.Config{
		Dir:     layout.LogsDir,
		Debug:   o.debug,
		Console: c.ErrOrStderr(),
	})
	if err == nil {
		o.cleanup = cleanup
	}

	logger.L().Debug("command.start", "command", c.CommandPath(), "home", root)
	if o.debug && logger.Path() != "" {
		fmt.Fprintf(c.ErrOrStderr(), "log file: %s\n", logger.Path())
	}
	return nil
}

func (o *rootOptions) close() {
	if o.cleanup != nil {
		if started := logger.InitTime(); !started.IsZero() {
			logger.L().Debug("command.done", "elapsed", time.Since(started).Round(time.Millisecond))
		}
		_ = o.cleanup()
		o.cleanup = nil
	}
}
