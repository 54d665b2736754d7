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
	"runtime"

	"github.com/spf13/cobra"
)

// Build information set by goreleaser.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// VersionCommand represents the version command.
type VersionCommand struct{}

// NewVersionCommand creates a new VersionCommand.
func NewVersionCommand() *VersionCommand {
	return &VersionCommand{}
}

// GetCobraCommand returns the cobra command for displaying version information.
func (c *VersionCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the dockr build information and whether a newer release is published.`,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dockr version %s\n", Version)
			fmt.Fprintf(out, "  commit: %s\n", Commit)
			fmt.Fprintf(out, "  built: %s\n", Date)
			fmt.Fprintf(out, "  go: %s\n", runtime.Version())

			c.printReleaseStatus(cmd.Context(), out)
		},
	}
}

// printReleaseStatus reports a newer release. Lookup failures are printed,
// not returned, so version always succeeds.
func (c *VersionCommand) printReleaseStatus(ctx context.Context, out io.Writer) {
	if isDevBuild() {
		fmt.Fprintln(out, "\nSkipping update check for development build.")
		return
	}

	latest, state, err := checkRelease(ctx, Version)
	switch {
	case err != nil:
		fmt.Fprintf(out, "\nFailed to check for updates: %v\n", err)
	case state == releaseNotFound:
		fmt.Fprintln(out, "\nNo release found")
	case state == releaseCurrent:
		fmt.Fprintln(out, "\nYou are running the latest version.")
	default:
		fmt.Fprintf(out, "\nVersion %s is available, run 'dockr update' to install it.\n", latest.Version())
	}
}
