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
	"io"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/trly/dockr/internal/dockerfile"
	"github.com/trly/dockr/internal/fs"
	"github.com/trly/dockr/internal/validate"
)

// DockerfileCommand represents the dockerfile command group.
type DockerfileCommand struct{}

// NewDockerfileCommand creates a new DockerfileCommand.
func NewDockerfileCommand() *DockerfileCommand {
	return &DockerfileCommand{}
}

// getApp retrieves the App from the command context.
func (c *DockerfileCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for Dockerfile operations.
func (c *DockerfileCommand) GetCobraCommand() *cobra.Command {
	dockerfileCmd := &cobra.Command{
		Use:   "dockerfile",
		Short: "Generate Dockerfiles from language presets",
	}
	dockerfileCmd.AddCommand(c.generateCommand(), c.presetsCommand())
	return dockerfileCmd
}

// DockerfileGenerateOptions holds dockerfile generate options. Empty
// overrides keep the preset value.
type DockerfileGenerateOptions struct {
	Template           string
	BaseImage          string
	Workdir            string
	Port               string
	StartCommand       string
	PreRun             []string
	Build              []string
	Env                []string
	EnvFiles           []string
	CustomInstructions string
	Out                string
	ComposeOut         string
	Lint               bool
}

func (c *DockerfileCommand) generateCommand() *cobra.Command {
	var opts DockerfileGenerateOptions

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a Dockerfile from a preset",
		Long: `Generate a Dockerfile from a language preset. Flags override individual
preset fields; --pre-run and --build replace the preset lists.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			if opts.Template == "" {
				opts.Template = app.Config.DefaultPreset
			}
			return c.RunGenerate(app, cmd.OutOrStdout(), opts)
		},
	}

	f := generateCmd.Flags()
	f.StringVarP(&opts.Template, "template", "t", "", "Preset to start from (default from config)")
	f.StringVar(&opts.BaseImage, "base-image", "", "Override the base image")
	f.StringVar(&opts.Workdir, "workdir", "", "Override the working directory")
	f.StringVar(&opts.Port, "port", "", "Override the exposed port")
	f.StringVar(&opts.StartCommand, "start-command", "", "Override the start command")
	f.StringArrayVar(&opts.PreRun, "pre-run", nil, "Pre-run command (repeatable, replaces preset list)")
	f.StringArrayVar(&opts.Build, "build", nil, "Build command (repeatable, replaces preset list)")
	f.StringArrayVarP(&opts.Env, "env", "e", nil, "Environment variable KEY=VALUE (repeatable)")
	f.StringArrayVar(&opts.EnvFiles, "env-file", nil, "Env file merged into the environment (repeatable)")
	f.StringVar(&opts.CustomInstructions, "custom", "", "Custom instructions emitted before CMD")
	f.StringVarP(&opts.Out, "out", "o", "", "Write the Dockerfile to this path instead of stdout")
	f.StringVar(&opts.ComposeOut, "compose", "", "Also write the companion compose snippet to this path (- for stdout)")
	f.BoolVar(&opts.Lint, "lint", true, "Lint the generated Dockerfile and log findings")
	_ = generateCmd.RegisterFlagCompletionFunc("template", func(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return dockerfile.Builtin().Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return generateCmd
}

// RunGenerate executes dockerfile generate.
func (c *DockerfileCommand) RunGenerate(app *App, out io.Writer, opts DockerfileGenerateOptions) error {
	form, err := buildForm(app.Presets, opts)
	if err != nil {
		return err
	}
	for _, e := range form.Env {
		app.Logger.Debug("Environment variable", "key", e.Key, "value", validate.SanitizeForLogging(e.Key, e.Value))
	}

	res := dockerfile.NewGenerator(app.Logger, app.Config.GeneratorName).Generate(form)

	var findings []dockerfile.Finding
	if opts.Lint {
		findings, err = dockerfile.Lint(res.Dockerfile)
		if err != nil {
			return fmt.Errorf("failed to lint Dockerfile: %w", err)
		}
		for _, f := range findings {
			app.Logger.Warn("Dockerfile finding", "line", f.Line, "message", f.Message)
		}
	}

	if isStructured(app.OutputFormat) {
		return PrintOutput(out, app.OutputFormat, struct {
			dockerfile.Result `yaml:",inline"`
			Findings          []dockerfile.Finding `json:"findings" yaml:"findings"`
		}{res, findings})
	}

	files := fs.NewService(app.Logger)
	if err := writeOutput(files, out, opts.Out, res.Dockerfile); err != nil {
		return err
	}
	if opts.ComposeOut != "" {
		return writeOutput(files, out, opts.ComposeOut, res.Compose)
	}
	return nil
}

// buildForm applies the preset, then env files, then explicit overrides.
func buildForm(presets *dockerfile.Registry, opts DockerfileGenerateOptions) (*dockerfile.Form, error) {
	form, err := dockerfile.NewForm(presets, opts.Template)
	if err != nil {
		return nil, err
	}

	if opts.BaseImage != "" {
		form.BaseImage = opts.BaseImage
	}
	if opts.Workdir != "" {
		form.Workdir = opts.Workdir
	}
	if opts.Port != "" {
		form.Port = opts.Port
	}
	if opts.StartCommand != "" {
		form.StartCommand = opts.StartCommand
	}
	if opts.PreRun != nil {
		form.PreRun = opts.PreRun
	}
	if opts.Build != nil {
		form.Build = opts.Build
	}
	form.CustomInstructions = opts.CustomInstructions

	for _, path := range opts.EnvFiles {
		rows, err := dockerfile.LoadEnvFile(path)
		if err != nil {
			return nil, err
		}
		form.MergeEnv(rows)
	}

	rows, err := parseEnvRows(opts.Env)
	if err != nil {
		return nil, err
	}
	form.MergeEnv(rows)

	return form, nil
}

// PresetSummary is the listing row for one preset.
type PresetSummary struct {
	Name         string `json:"name" yaml:"name"`
	BaseImage    string `json:"baseImage" yaml:"baseImage"`
	Port         string `json:"port" yaml:"port"`
	StartCommand string `json:"startCommand" yaml:"startCommand"`
}

func (c *DockerfileCommand) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List available presets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)

			var rows []PresetSummary
			for _, name := range app.Presets.Names() {
				p, err := app.Presets.Get(name)
				if err != nil {
					return err
				}
				rows = append(rows, PresetSummary{Name: name, BaseImage: p.BaseImage, Port: p.Port, StartCommand: p.StartCommand})
			}

			if isStructured(app.OutputFormat) {
				return PrintOutput(cmd.OutOrStdout(), app.OutputFormat, rows)
			}

			headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
			columnFmt := color.New(color.FgYellow).SprintfFunc()
			tbl := table.New("Name", "Base Image", "Port", "Start Command")
			tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt).WithWriter(cmd.OutOrStdout())
			for _, r := range rows {
				tbl.AddRow(r.Name, r.BaseImage, r.Port, r.StartCommand)
			}
			tbl.Print()
			return nil
		},
	}
}
