package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"listkeep/internal/format"
	"listkeep/internal/tui"
	"listkeep/internal/watch"
)

type App struct {
	ConfigPath string
	Dir        string
	Backend    string
	Key        string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "listkeep",
		Short:        "Keep a short list of unique items (TUI + CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive list
  listkeep

  # Scriptable commands
  listkeep items add "Milk"
  listkeep items list --format text
  listkeep items rm "Milk" --yes
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("LISTKEEP_CONFIG", ""), "Path to config.yaml (default: $XDG_CONFIG_HOME/listkeep/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("LISTKEEP_DIR", ""), "Storage directory (overrides storage.dir)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", envOr("LISTKEEP_BACKEND", ""), "Storage backend (sqlite|file|memory)")
	cmd.PersistentFlags().StringVar(&app.Key, "key", envOr("LISTKEEP_KEY", ""), "Storage key holding the list")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("LISTKEEP_FORMAT", "json"), "Output format (json|text)")

	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer s.Close()

	opts := tui.Options{
		Mouse:     s.cfg.MouseEnabled(),
		Glyphs:    s.cfg.UI.Glyphs,
		CharLimit: s.cfg.Input.CharLimit,
		Log:       s.log,
	}
	if path := s.adapter.Path(); path != "" && s.cfg.WatchEnabled() {
		w, err := watch.New(path, watch.WithLogger(s.log))
		if err != nil {
			s.log.Warn("storage watcher disabled", "err", err)
		} else {
			opts.Watcher = w
		}
	}
	s.log.Info("tui start", "backend", s.cfg.Storage.Backend, "path", s.adapter.Path(), "items", s.ctrl.Len())
	return tui.Run(ctx, s.ctrl, opts)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
