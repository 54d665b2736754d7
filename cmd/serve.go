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
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/trly/dockr/internal/server"
)

// ServeOptions holds serve options.
type ServeOptions struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// ServeCommand represents the serve command.
type ServeCommand struct{}

// NewServeCommand creates a new ServeCommand.
func NewServeCommand() *ServeCommand {
	return &ServeCommand{}
}

// getApp retrieves the App from the command context.
func (c *ServeCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for running the HTTP API.
func (c *ServeCommand) GetCobraCommand() *cobra.Command {
	var opts ServeOptions

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generators, catalog and history over HTTP",
		Long: `Serve the generators, the command catalog and the command history over
HTTP until interrupted. History is kept in memory for the life of the process.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			if !cmd.Flags().Changed("addr") {
				opts.Addr = app.Config.ListenAddr
			}
			if !cmd.Flags().Changed("shutdown-timeout") {
				opts.ShutdownTimeout = app.Config.ShutdownTimeout
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.Run(ctx, app, opts)
		},
	}

	serveCmd.Flags().StringVar(&opts.Addr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().DurationVar(&opts.ShutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout (default from config)")
	return serveCmd
}

// Run serves until ctx is cancelled.
func (c *ServeCommand) Run(ctx context.Context, app *App, opts ServeOptions) error {
	srv, err := server.New(server.Options{
		Logger:        app.Logger,
		GeneratorName: app.Config.GeneratorName,
		Presets:       app.Presets,
		Catalog:       app.Catalog,
		CatalogVars:   app.Config.Catalog,
	})
	if err != nil {
		return err
	}

	app.Logger.Info("Starting dockr server", "addr", opts.Addr)
	return srv.ListenAndServe(ctx, opts.Addr, opts.ShutdownTimeout)
}
