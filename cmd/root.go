// Package cmd provides the command line interface for dockr
/*
Copyright © 2025 Travis Lyons travis.lyons@gmail.com

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/trly/dockr/internal/config"
	"github.com/trly/dockr/internal/log"
)

// RootCommand represents the root command for dockr CLI.
type RootCommand struct{}

var (
	configFilePath string
	verbose        bool
	outputFormat   string
)

// GetCobraCommand returns the cobra root command for dockr CLI.
func (c *RootCommand) GetCobraCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dockr",
		Short: "Dockr generates Docker Compose files, Dockerfiles and docker commands.",
		Long: `Dockr generates security-hardened Docker Compose documents and Dockerfiles
from structured project descriptions, and serves a searchable catalog of
docker commands with a session history.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			provider := config.DefaultProvider()
			provider.SetConfigFilePath(configFilePath)
			cfg, err := provider.InitConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			if verbose {
				cfg.Verbose = true
			}
			log.Init(cfg.Verbose)
			logger := log.GetLogger()
			logger.Debug("Loaded configuration", "file", viper.GetViper().ConfigFileUsed())

			if cmd.Flags().Changed("output") {
				cfg.OutputFormat = outputFormat
			}
			if err := validateOutputFormat(cfg.OutputFormat); err != nil {
				return err
			}

			app, err := NewApp(logger, provider)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, appContextKey, app))
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFilePath, "config", "", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", config.DefaultOutputFormat, "Output format (text, json, yaml)")
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return outputFormats, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(
		NewComposeCommand().GetCobraCommand(),
		NewDockerfileCommand().GetCobraCommand(),
		NewCommandsCommand().GetCobraCommand(),
		NewServeCommand().GetCobraCommand(),
		NewConfigCommand().GetCobraCommand(),
		NewUpdateCommand().GetCobraCommand(),
		NewVersionCommand().GetCobraCommand(),
	)

	return rootCmd
}
