package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"listkeep/internal/config"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.ConfigPath
			if path == "" {
				path = config.Path()
			}
			return writeOut(cmd, app, path)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (file, env and flags applied)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.EqualFold(strings.TrimSpace(app.Format), "text") {
				b, err := yaml.Marshal(&cfg)
				if err != nil {
					return writeErr(cmd, err)
				}
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			return writeOut(cmd, app, cfg)
		},
	})

	return cmd
}
