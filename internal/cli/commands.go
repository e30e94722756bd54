package cli

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/costcheck/internal/catalog"
	"github.com/idilsaglam/costcheck/internal/export"
	"github.com/idilsaglam/costcheck/internal/model"
	"github.com/idilsaglam/costcheck/internal/store/jsonstore"
	"github.com/idilsaglam/costcheck/internal/tui"
)

const panelBarWidth = 24

func (a *app) runInteractive(cmd *cobra.Command, _ []string) error {
	return a.withWatcher(cmd.Context(), func(updates <-chan catalog.Update) error {
		final, err := tui.Run(a.checklist, tui.Options{
			Title:     a.title,
			Theme:     a.theme,
			Locale:    a.locale,
			OutputDir: a.cfg.OutputDir,
			Registry:  export.DefaultRegistry(a.logger),
			Logger:    a.logger,
			Updates:   updates,
			Now:       a.now,
		})
		if err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		p := model.Progress(final)
		a.theme.OK(a.stdout, fmt.Sprintf("final score %d%% (%s)", p, model.Rate(p).Label))
		return nil
	})
}

// withWatcher runs fn with catalog reloads when watching is enabled. The
// watcher stops when fn returns.
func (a *app) withWatcher(parent context.Context, fn func(<-chan catalog.Update) error) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var updates <-chan catalog.Update
	if a.cfg.Watch {
		if a.cfg.Checklist == "" {
			a.logger.Warn("watch needs a checklist file; the built-in checklist never changes")
		} else {
			ch, err := catalog.Watch(ctx, a.cfg.Checklist, a.logger)
			if err != nil {
				return err
			}
			updates = ch
		}
	}
	return fn(updates)
}

func (a *app) showCmd() *cobra.Command {
	var all, ids bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the checklist with progress per section",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := a.checklist
			if all {
				c = c.SetExpandedAll(true)
			}
			fmt.Fprintln(a.stdout, a.panel(c, ids))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "expand every section")
	cmd.Flags().BoolVar(&ids, "ids", false, "print item ids (for toggle)")
	return cmd
}

func (a *app) toggleCmd() *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "toggle <item-id>...",
		Short: "Flip items between checked and unchecked",
		Example: `  costcheck toggle 1-1 1-2 --save
  costcheck --from . toggle 2-1-3 --save`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.checklist
			for _, id := range args {
				addr, ok := c.Locate(id)
				if !ok {
					return usage("run `costcheck show --all --ids` to see item ids", "unknown item %q", id)
				}
				c = model.Apply(model.ToggleItemEvent(addr), c)
			}
			a.logger.Debug("toggled", zap.Strings("items", args))
			return a.finish(c, save, fmt.Sprintf("toggled %d item(s)", len(args)))
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "write the result as a JSON export")
	return cmd
}

func (a *app) resetCmd() *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Uncheck every item",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.finish(model.Apply(model.ResetAllEvent{}, a.checklist), save, "all items unchecked")
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "write the result as a JSON export")
	return cmd
}

// finish prints the new score and optionally saves it.
func (a *app) finish(c model.Checklist, save bool, msg string) error {
	a.checklist = c
	for _, l := range a.theme.Summary(c, panelBarWidth) {
		fmt.Fprintln(a.stdout, l)
	}
	a.theme.OK(a.stdout, msg)
	if !save {
		a.theme.Hint(a.stdout, "nothing is stored; add --save to keep this state")
		return nil
	}
	p, err := a.saveJSON(c)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	a.theme.OK(a.stdout, "saved "+p)
	return nil
}

func (a *app) exportCmd() *cobra.Command {
	var formats []string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the checklist as JSON, PDF, DOCX or Markdown",
		Example: `  costcheck export --format pdf
  costcheck --from . export -f docx -f md --out reports`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			want := make([]export.Format, 0, len(formats))
			for _, s := range formats {
				f, err := export.ParseFormat(s)
				if err != nil {
					return usage("formats are json, pdf, docx and md", "%v", err)
				}
				want = append(want, f)
			}

			reg := export.DefaultRegistry(a.logger)
			if err := reg.Load(cmd.Context()); err != nil {
				a.logger.Warn("some export formats failed to load", zap.Error(err))
			}
			snap := export.NewSnapshot(a.title, a.checklist, a.now(), a.locale)
			for _, f := range want {
				p, err := jsonstore.SaveExport(a.cfg.OutputDir, reg, f, snap)
				if err != nil {
					return fmt.Errorf("export %s: %w", f, err)
				}
				a.logger.Info("export written", zap.String("format", string(f)), zap.String("path", p))
				a.theme.OK(a.stdout, "saved "+p)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&formats, "format", "f", []string{"json"}, "export format (repeatable)")
	return cmd
}

func (a *app) reportCmd() *cobra.Command {
	var style string
	var raw bool
	var width int
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the Markdown report in the terminal",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var buf bytes.Buffer
			snap := export.NewSnapshot(a.title, a.checklist, a.now(), a.locale)
			if err := export.NewMarkdown().Write(&buf, snap); err != nil {
				return err
			}
			if raw {
				_, err := a.stdout.Write(buf.Bytes())
				return err
			}

			opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
			if style == "auto" {
				opts = append(opts, glamour.WithAutoStyle())
			} else {
				opts = append(opts, glamour.WithStylePath(style))
			}
			r, err := glamour.NewTermRenderer(opts...)
			if err != nil {
				return usage("styles are auto, dark, light, notty or a JSON style file", "report style: %v", err)
			}
			out, err := r.Render(buf.String())
			if err != nil {
				return fmt.Errorf("render report: %w", err)
			}
			fmt.Fprint(a.stdout, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&style, "style", "auto", "glamour style: auto, dark, light, notty or a style file")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the Markdown source")
	cmd.Flags().IntVar(&width, "width", 100, "word wrap width")
	return cmd
}

func (a *app) rateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rate <percent>",
		Short: "Show the rating for a progress percentage",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := strconv.Atoi(strings.TrimSuffix(args[0], "%"))
			if err != nil {
				return usage("pass a whole number such as 42", "not a percentage: %q", args[0])
			}
			r := model.Rate(p)
			fmt.Fprintf(a.stdout, "%s %s\n%s\n", a.theme.ProgressBar(p, panelBarWidth), a.theme.Badge(r), a.theme.Muted.Render(r.Description))
			return nil
		},
	}
}

func (a *app) bandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bands",
		Short: "List the rating bands",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, b := range model.Bands() {
				fmt.Fprintf(a.stdout, "%-16s %3d-%3d%%  %s\n", a.theme.Badge(b), b.Min, b.Max, b.Description)
			}
			return nil
		},
	}
}

// panel renders the checklist like the interactive view, without a cursor.
func (a *app) panel(c model.Checklist, ids bool) string {
	t := a.theme
	lines := []string{t.Title.Render(a.title), t.Legend()}
	lines = append(lines, t.Summary(c, panelBarWidth)...)
	lines = append(lines, "")
	for _, sec := range c {
		lines = append(lines, t.SectionLine(sec, panelBarWidth))
		if !sec.Expanded {
			continue
		}
		lines = append(lines, a.itemLines(sec.Items, 1, ids)...)
		for _, sub := range sec.Subsections {
			lines = append(lines, t.SubsectionLine(sub, 1))
			lines = append(lines, a.itemLines(sub.Items, 2, ids)...)
		}
	}
	lines = append(lines, "", t.Muted.Render("Tip: toggle items with `costcheck toggle <item-id> --save`"))
	return t.Panel(lines)
}

func (a *app) itemLines(items []model.Item, indent int, ids bool) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		l := a.theme.ItemLine(it, indent)
		if ids {
			l += " " + a.theme.Muted.Render("("+it.ID+")")
		}
		out = append(out, l)
	}
	return out
}
