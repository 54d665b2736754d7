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
	"errors"
	"fmt"
	"io"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// errDevBuild is returned when update runs on a binary without a release version.
var errDevBuild = errors.New("cannot update a development build")

// UpdateCommand represents the update command.
type UpdateCommand struct{}

// NewUpdateCommand creates a new UpdateCommand.
func NewUpdateCommand() *UpdateCommand {
	return &UpdateCommand{}
}

// GetCobraCommand returns the cobra command for updating the binary.
func (c *UpdateCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update dockr to the latest version",
		Long:  `Update dockr to the latest version from GitHub releases.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Current version: %s\n", Version)
			if isDevBuild() {
				return errDevBuild
			}

			latest, state, err := checkRelease(cmd.Context(), Version)
			if err != nil {
				return fmt.Errorf("failed to check for updates: %w", err)
			}
			switch state {
			case releaseNotFound:
				fmt.Fprintln(out, "No release found")
				return nil
			case releaseCurrent:
				fmt.Fprintln(out, "You are already running the latest version.")
				return nil
			}
			return c.apply(cmd, out, latest)
		},
	}
}

// apply replaces the running executable with the release asset.
func (c *UpdateCommand) apply(cmd *cobra.Command, out io.Writer, latest *selfupdate.Release) error {
	fmt.Fprintf(out, "Installing %s...\n", latest.Version())

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}
	if err := selfupdate.UpdateTo(cmd.Context(), latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update: %w", err)
	}

	fmt.Fprintln(out, "Update completed, restart dockr to use the new version.")
	return nil
}
