// Package cmd provides config show command functionality for dockr CLI
package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigShowCommand represents the config show command.
type ConfigShowCommand struct{}

// NewConfigShowCommand creates a new ConfigShowCommand.
func NewConfigShowCommand() *ConfigShowCommand {
	return &ConfigShowCommand{}
}

// getApp retrieves the App from the command context.
func (c *ConfigShowCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for config show operations.
func (c *ConfigShowCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  "Display the current configuration including defaults and overrides",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			format := app.OutputFormat
			if !isStructured(format) {
				format = "yaml"
			}
			return PrintOutput(cmd.OutOrStdout(), format, app.Config)
		},
	}
}
