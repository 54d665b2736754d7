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
	"slices"

	"dario.cat/mergo"
	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/trly/dockr/internal/catalog"
)

// CommandsOptions holds commands options.
type CommandsOptions struct {
	Section    string
	Category   string
	Search     string
	Categories bool
	Vars       catalog.Vars
}

// CommandsCommand represents the docker command catalog command.
type CommandsCommand struct{}

// NewCommandsCommand creates a new CommandsCommand.
func NewCommandsCommand() *CommandsCommand {
	return &CommandsCommand{}
}

// getApp retrieves the App from the command context.
func (c *CommandsCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for browsing the command catalog.
func (c *CommandsCommand) GetCobraCommand() *cobra.Command {
	var opts CommandsOptions

	commandsCmd := &cobra.Command{
		Use:   "commands",
		Short: "Browse and search the docker command catalog",
		Long: `Browse and search the docker command catalog. Placeholders such as the
image name and tag are filled from flags, then from the catalog section of
the config file, then from built-in defaults.`,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateSection(c.getApp(cmd).Catalog, opts.Section)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.Run(c.getApp(cmd), cmd.OutOrStdout(), opts)
		},
	}

	f := commandsCmd.Flags()
	f.StringVarP(&opts.Section, "section", "s", "", "Section (commands, security, advanced, install)")
	f.StringVarP(&opts.Category, "category", "c", "", "Category within the section")
	f.StringVarP(&opts.Search, "search", "q", "", "Case-insensitive search term")
	f.BoolVar(&opts.Categories, "categories", false, "List the categories of each section instead of commands")
	f.StringVar(&opts.Vars.Image, "image", "", "Image name placeholder")
	f.StringVar(&opts.Vars.Tag, "tag", "", "Image tag placeholder")
	f.StringVar(&opts.Vars.Container, "container", "", "Container name placeholder")
	f.StringVar(&opts.Vars.Network, "network", "", "Network name placeholder")
	f.StringVar(&opts.Vars.Registry, "registry", "", "Registry placeholder")
	f.StringVar(&opts.Vars.Source, "source", "", "Copy source placeholder")
	f.StringVar(&opts.Vars.Destination, "destination", "", "Copy destination placeholder")
	f.StringVar(&opts.Vars.DockerRoot, "docker-root", "", "Current docker root placeholder")
	f.StringVar(&opts.Vars.NewDockerRoot, "new-docker-root", "", "New docker root placeholder")
	_ = commandsCmd.RegisterFlagCompletionFunc("section", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{catalog.SectionCommands, catalog.SectionSecurity, catalog.SectionAdvanced, catalog.SectionInstall}, cobra.ShellCompDirectiveNoFileComp
	})

	return commandsCmd
}

// Run executes the commands command.
func (c *CommandsCommand) Run(app *App, out io.Writer, opts CommandsOptions) error {
	if opts.Categories {
		return c.printCategories(app, out, opts.Section)
	}

	vars := opts.Vars
	if err := mergo.Merge(&vars, app.Config.Catalog); err != nil {
		return fmt.Errorf("failed to merge catalog variables: %w", err)
	}

	entries, err := app.Catalog.Search(catalog.Query{
		Section:  opts.Section,
		Category: opts.Category,
		Term:     opts.Search,
	}, vars)
	if err != nil {
		return err
	}

	if isStructured(app.OutputFormat) {
		return PrintOutput(out, app.OutputFormat, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No commands found")
		return nil
	}

	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()
	tbl := table.New("Section", "Category", "Title", "Command")
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt).WithWriter(out)
	for _, e := range entries {
		tbl.AddRow(e.Section, e.Category, e.Title, e.Command)
	}
	tbl.Print()
	return nil
}

func (c *CommandsCommand) printCategories(app *App, out io.Writer, section string) error {
	sections := app.Catalog.Sections()
	if section != "" {
		sections = []string{section}
	}

	categories := make(map[string][]string, len(sections))
	for _, s := range sections {
		categories[s] = app.Catalog.Categories(s)
	}

	if isStructured(app.OutputFormat) {
		return PrintOutput(out, app.OutputFormat, categories)
	}

	tbl := table.New("Section", "Category").WithWriter(out)
	for _, s := range sections {
		for _, cat := range categories[s] {
			tbl.AddRow(s, cat)
		}
	}
	tbl.Print()
	return nil
}

func validateSection(cat *catalog.Catalog, section string) error {
	if section == "" || slices.Contains(cat.Sections(), section) {
		return nil
	}
	return fmt.Errorf("invalid section: %s, allowed sections are: %v", section, cat.Sections())
}
