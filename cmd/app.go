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
	"fmt"

	"github.com/trly/dockr/internal/catalog"
	"github.com/trly/dockr/internal/config"
	"github.com/trly/dockr/internal/dockerfile"
	"github.com/trly/dockr/internal/log"
)

type contextKey string

const appContextKey contextKey = "app"

// App holds the dependencies shared by every command.
type App struct {
	Logger         log.Logger
	Config         *config.Settings
	ConfigProvider config.Provider
	Presets        *dockerfile.Registry
	Catalog        *catalog.Catalog
	OutputFormat   string
}

// NewApp builds the application from loaded settings. User presets from the
// config file are merged over the built-in ones.
func NewApp(logger log.Logger, configProv config.Provider) (*App, error) {
	cfg := configProv.GetConfig()

	presets, err := dockerfile.NewRegistry(cfg.Presets)
	if err != nil {
		return nil, fmt.Errorf("failed to load presets: %w", err)
	}

	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load command catalog: %w", err)
	}

	format := cfg.OutputFormat
	if format == "" {
		format = config.DefaultOutputFormat
	}

	return &App{
		Logger:         logger,
		Config:         cfg,
		ConfigProvider: configProv,
		Presets:        presets,
		Catalog:        cat,
		OutputFormat:   format,
	}, nil
}
