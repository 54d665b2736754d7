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
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/trly/dockr/internal/compose"
	"github.com/trly/dockr/internal/fs"
	"github.com/trly/dockr/internal/service"
)

// DefaultProjectFile is the project file used by compose init.
const DefaultProjectFile = "dockr.yaml"

var allowedNetworkDrivers = []string{string(service.NetworkDriverBridge), string(service.NetworkDriverHost)}

// ComposeCommand represents the compose command group.
type ComposeCommand struct{}

// NewComposeCommand creates a new ComposeCommand.
func NewComposeCommand() *ComposeCommand {
	return &ComposeCommand{}
}

// getApp retrieves the App from the command context.
func (c *ComposeCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for compose operations.
func (c *ComposeCommand) GetCobraCommand() *cobra.Command {
	composeCmd := &cobra.Command{
		Use:   "compose",
		Short: "Generate, import and check Docker Compose projects",
	}

	composeCmd.AddCommand(
		c.generateCommand(),
		c.initCommand(),
		c.importCommand(),
		c.lintCommand(),
		c.orderCommand(),
	)
	return composeCmd
}

// ComposeGenerateOptions holds compose generate options.
type ComposeGenerateOptions struct {
	ProjectFile   string
	Out           string
	DockerfileOut string
	MultiStage    bool
	NetworkDriver string
	Verify        bool

	setMultiStage    bool
	setNetworkDriver bool
}

func (c *ComposeCommand) generateCommand() *cobra.Command {
	var opts ComposeGenerateOptions

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a docker-compose.yml from a project file",
		Long: `Generate a security-hardened docker-compose.yml from a project file.
Without --file the default single nginx service project is used.`,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			opts.setMultiStage = cmd.Flags().Changed("multi-stage")
			opts.setNetworkDriver = cmd.Flags().Changed("network-driver")
			if opts.setNetworkDriver {
				return validateNetworkDriver(opts.NetworkDriver)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.RunGenerate(cmd.Context(), c.getApp(cmd), cmd.OutOrStdout(), opts)
		},
	}

	generateCmd.Flags().StringVarP(&opts.ProjectFile, "file", "f", "", "Project file (yaml, json or toml)")
	generateCmd.Flags().StringVarP(&opts.Out, "out", "o", "", "Write the compose document to this path instead of stdout")
	generateCmd.Flags().StringVar(&opts.DockerfileOut, "dockerfile-out", "", "Path for the secure Dockerfile of a multi-stage project")
	generateCmd.Flags().BoolVar(&opts.MultiStage, "multi-stage", false, "Enable multi-stage builds")
	generateCmd.Flags().StringVar(&opts.NetworkDriver, "network-driver", string(service.NetworkDriverBridge), "Driver of the default network (bridge, host)")
	generateCmd.Flags().BoolVar(&opts.Verify, "verify", false, "Check the generated document with the compose loader")
	_ = generateCmd.RegisterFlagCompletionFunc("network-driver", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return allowedNetworkDrivers, cobra.ShellCompDirectiveNoFileComp
	})

	return generateCmd
}

// RunGenerate executes compose generate.
func (c *ComposeCommand) RunGenerate(ctx context.Context, app *App, out io.Writer, opts ComposeGenerateOptions) error {
	p, err := loadProject(app, opts.ProjectFile)
	if err != nil {
		return err
	}
	if opts.setMultiStage {
		p.MultiStage = opts.MultiStage
	}
	if opts.setNetworkDriver {
		p.NetworkDriver = service.NetworkDriver(opts.NetworkDriver)
	}

	for _, w := range compose.Lint(p) {
		app.Logger.Warn("Project warning", "field", w.Field, "message", w.Message)
	}

	res := compose.NewGenerator(app.Logger, app.Config.GeneratorName).Generate(p)

	if opts.Verify {
		if err := compose.Verify(ctx, []byte(res.Compose)); err != nil {
			return fmt.Errorf("generated compose document failed verification: %w", err)
		}
		app.Logger.Info("Compose document verified")
	}

	if isStructured(app.OutputFormat) {
		return PrintOutput(out, app.OutputFormat, res)
	}

	files := fs.NewService(app.Logger)
	if err := writeOutput(files, out, opts.Out, res.Compose); err != nil {
		return err
	}

	if res.Dockerfile == "" {
		return nil
	}
	dockerfileOut := opts.DockerfileOut
	if dockerfileOut == "" && opts.Out != "" && opts.Out != stdoutPath {
		dockerfileOut = filepath.Join(filepath.Dir(opts.Out), "Dockerfile.secure")
	}
	if dockerfileOut == "" {
		app.Logger.Warn("Multi-stage project: pass --dockerfile-out or --out to write Dockerfile.secure")
		return nil
	}
	return writeOutput(files, out, dockerfileOut, res.Dockerfile)
}

func (c *ComposeCommand) initCommand() *cobra.Command {
	var (
		path  string
		force bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default project file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("project file %s already exists, use --force to overwrite", path)
			}
			if err := service.WriteProjectFile(path, service.DefaultProject()); err != nil {
				return err
			}
			app.Logger.Info("Wrote project file", "path", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}

	initCmd.Flags().StringVarP(&path, "file", "f", DefaultProjectFile, "Project file to create")
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing project file")
	return initCmd
}

// ComposeImportOptions holds compose import options.
type ComposeImportOptions struct {
	Out      string
	EnvFiles []string
	Env      []string
}

func (c *ComposeCommand) importCommand() *cobra.Command {
	var opts ComposeImportOptions

	importCmd := &cobra.Command{
		Use:   "import <compose-file|dir>",
		Short: "Convert an existing compose file into a project file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.RunImport(cmd.Context(), c.getApp(cmd), cmd.OutOrStdout(), args[0], opts)
		},
	}

	importCmd.Flags().StringVarP(&opts.Out, "out", "o", "", "Write the project to this file (format from extension)")
	importCmd.Flags().StringArrayVar(&opts.EnvFiles, "env-file", nil, "Env file used for interpolation (repeatable)")
	importCmd.Flags().StringArrayVarP(&opts.Env, "env", "e", nil, "KEY=VALUE used for interpolation (repeatable)")
	return importCmd
}

// RunImport executes compose import.
func (c *ComposeCommand) RunImport(ctx context.Context, app *App, out io.Writer, path string, opts ComposeImportOptions) error {
	env, err := parseKeyValues(opts.Env)
	if err != nil {
		return err
	}

	p, err := compose.Import(ctx, path, &compose.ImportOptions{
		Environment: env,
		EnvFiles:    opts.EnvFiles,
	})
	if err != nil {
		if compose.IsFileNotFoundError(err) {
			return fmt.Errorf("compose file not found: %s", path)
		}
		return err
	}
	app.Logger.Debug("Imported compose project", "path", path, "services", len(p.Services))

	if opts.Out != "" {
		if err := service.WriteProjectFile(opts.Out, p); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", opts.Out)
		return nil
	}

	if isStructured(app.OutputFormat) {
		return PrintOutput(out, app.OutputFormat, p)
	}
	data, err := service.EncodeProject(p, service.FormatYAML)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func (c *ComposeCommand) lintCommand() *cobra.Command {
	var path string

	lintCmd := &cobra.Command{
		Use:   "lint",
		Short: "Report problems in a project file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			p, err := loadProject(app, path)
			if err != nil {
				return err
			}

			findings := compose.Lint(p)
			result := OperationResult{Success: len(findings) == 0, Errors: findings.Messages()}
			if isStructured(app.OutputFormat) {
				if err := PrintOutput(cmd.OutOrStdout(), app.OutputFormat, result); err != nil {
					return err
				}
			} else if len(findings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No problems found")
			} else {
				for _, msg := range result.Errors {
					fmt.Fprintln(cmd.OutOrStdout(), msg)
				}
			}

			if len(findings) > 0 {
				return fmt.Errorf("%d problem(s) found", len(findings))
			}
			return nil
		},
	}

	lintCmd.Flags().StringVarP(&path, "file", "f", "", "Project file (yaml, json or toml)")
	return lintCmd
}

func (c *ComposeCommand) orderCommand() *cobra.Command {
	var path string

	orderCmd := &cobra.Command{
		Use:   "order",
		Short: "Print services in start order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			p, err := loadProject(app, path)
			if err != nil {
				return err
			}
			order, err := compose.StartOrder(p)
			if err != nil {
				return fmt.Errorf("failed to order services: %w", err)
			}
			return PrintOutput(cmd.OutOrStdout(), app.OutputFormat, order)
		},
	}

	orderCmd.Flags().StringVarP(&path, "file", "f", "", "Project file (yaml, json or toml)")
	return orderCmd
}

// loadProject reads the project file, or returns the default project when
// path is empty.
func loadProject(app *App, path string) (*service.Project, error) {
	if path == "" {
		app.Logger.Debug("No project file given, using default project")
		return service.DefaultProject(), nil
	}
	return service.LoadProjectFile(path)
}

func validateNetworkDriver(driver string) error {
	for _, allowed := range allowedNetworkDrivers {
		if driver == allowed {
			return nil
		}
	}
	return fmt.Errorf("invalid network driver: %s, allowed drivers are: %v", driver, allowedNetworkDrivers)
}
