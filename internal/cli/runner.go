package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/idilsaglam/costcheck/internal/catalog"
	"github.com/idilsaglam/costcheck/internal/config"
	"github.com/idilsaglam/costcheck/internal/export"
	logpkg "github.com/idilsaglam/costcheck/internal/log"
	"github.com/idilsaglam/costcheck/internal/model"
	"github.com/idilsaglam/costcheck/internal/store/jsonstore"
	"github.com/idilsaglam/costcheck/internal/ui"
)

// usageError marks bad input; Run maps it to exit code 2.
type usageError struct {
	err  error
	hint string
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usage(hint, format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...), hint: hint}
}

// usageArgs wraps a cobra argument validator so its errors count as usage
// errors.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return &usageError{err: err, hint: fmt.Sprintf("run `%s --help`", cmd.CommandPath())}
		}
		return nil
	}
}

// app is the state shared by every command of one invocation.
type app struct {
	stdout, stderr io.Writer
	now            func() time.Time

	configFile string
	from       string

	cfg       config.Config
	theme     ui.Theme
	logger    *zap.Logger
	locale    language.Tag
	title     string
	checklist model.Checklist
}

// Run executes the command line and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, stdout, stderr io.Writer) int {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		now:    time.Now,
		theme:  ui.ThemeNamed("", false),
		logger: zap.NewNop(),
	}
	return a.run(context.Background(), args)
}

func (a *app) run(ctx context.Context, args []string) int {
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	_ = a.logger.Sync()
	if err == nil {
		return 0
	}

	var ue *usageError
	if errors.As(err, &ue) {
		a.theme.Fail(a.stderr, ue.Error())
		if ue.hint != "" {
			a.theme.Hint(a.stderr, ue.hint)
		}
		return 2
	}
	a.theme.Fail(a.stderr, err.Error())
	return 1
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "costcheck",
		Short: "AWS cost optimization checklist",
		Long: `costcheck tracks an AWS cost optimization checklist, scores it and
exports the result as JSON, PDF, DOCX or Markdown.

Run without a subcommand for the interactive checklist.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, cmd == cmd.Root())
		},
		RunE: a.runInteractive,
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err, hint: fmt.Sprintf("run `%s --help`", cmd.CommandPath())}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default ./costcheck.yaml or ~/.config/costcheck/costcheck.yaml)")
	pf.StringVar(&a.from, "from", "", "resume from a JSON export (file or directory)")
	pf.String("checklist", "", "checklist YAML file (default: built-in AWS checklist)")
	pf.String("theme", "classic", "colour theme: classic, neon, dark or mono")
	pf.Bool("icons", false, "show section icons")
	pf.String("locale", "en-US", "locale for dates in exported documents")
	pf.String("out", "", "directory for exported files (default: working directory)")
	pf.Bool("watch", false, "reload the checklist file when it changes")
	pf.String("log-level", "warn", "log level: debug, info, warn, error or off")
	pf.String("log-file", "", "write logs to this file")

	root.AddCommand(
		a.showCmd(),
		a.toggleCmd(),
		a.resetCmd(),
		a.exportCmd(),
		a.reportCmd(),
		a.rateCmd(),
		a.bandsCmd(),
	)
	return root
}

// setup loads configuration, the logger and the starting checklist.
func (a *app) setup(cmd *cobra.Command, interactive bool) error {
	cfg, err := config.Load(a.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.theme = ui.ThemeNamed(cfg.Theme, cfg.Icons)

	logger, err := logpkg.New(cfg.Logger, interactive)
	if err != nil {
		return usage("logger.level is one of debug, info, warn, error, off", "%v", err)
	}
	a.logger = logger

	a.locale, err = export.ParseLocale(cfg.Locale)
	if err != nil {
		return usage("use a BCP 47 tag such as en-US or de-DE", "locale %q: %v", cfg.Locale, err)
	}

	cat, err := catalog.Load(cfg.Checklist)
	if err != nil {
		return err
	}
	a.title, a.checklist = cat.Title, cat.Sections

	if a.from != "" {
		doc, err := jsonstore.Load(a.from)
		if err != nil {
			return fmt.Errorf("resume: %w", err)
		}
		a.title, a.checklist = doc.Title, resumed(doc.Sections)
		a.logger.Info("resumed from export",
			zap.String("path", a.from),
			zap.String("date", doc.Date),
			zap.Int("progress", doc.Progress))
	}
	a.logger.Debug("checklist ready", zap.String("title", a.title), zap.Int("sections", len(a.checklist)))
	return nil
}

// resumed opens the first section of an imported checklist; exports carry
// no folding state.
func resumed(c model.Checklist) model.Checklist {
	c = c.SetExpandedAll(false)
	if len(c) > 0 {
		c = c.ToggleSectionExpanded(c[0].ID)
	}
	return c
}

// saveJSON writes the JSON export of c to the output directory.
func (a *app) saveJSON(c model.Checklist) (string, error) {
	snap := export.NewSnapshot(a.title, c, a.now(), a.locale)
	return jsonstore.Save(a.cfg.OutputDir, export.JSONFilename, func(w io.Writer) error {
		return export.NewJSON().Write(w, snap)
	})
}
