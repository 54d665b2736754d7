package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUpdateCommand_GetCobraCommand tests command structure.
func TestUpdateCommand_GetCobraCommand(t *testing.T) {
	cobraCmd := NewUpdateCommand().GetCobraCommand()

	assert.Equal(t, "update", cobraCmd.Use)
	assert.Equal(t, "Update dockr to the latest version", cobraCmd.Short)
	assert.Contains(t, cobraCmd.Long, "from GitHub releases")
	assert.NotNil(t, cobraCmd.RunE)
}

// TestUpdateCommand_Help tests update command help.
func TestUpdateCommand_Help(t *testing.T) {
	output, err := ExecuteCommandWithCapture(t, NewUpdateCommand().GetCobraCommand(), []string{"--help"})

	require.NoError(t, err)
	assert.Contains(t, output, "Update dockr to the latest version")
	assert.Contains(t, output, "GitHub releases")
}

// TestUpdateCommand_NoFlags tests that update command has no flags.
func TestUpdateCommand_NoFlags(t *testing.T) {
	cmd := NewUpdateCommand().GetCobraCommand()

	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		assert.Equal(t, "help", flag.Name)
	})
}

// TestUpdateCommand_DevBuild tests that development builds are not replaced.
func TestUpdateCommand_DevBuild(t *testing.T) {
	originalVersion := Version
	t.Cleanup(func() { Version = originalVersion })
	Version = "dev"

	output, err := ExecuteCommandWithCapture(t, NewUpdateCommand().GetCobraCommand(), []string{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "development build")
	assert.Contains(t, output, "Current version: dev")
}

// stubRelease replaces the release lookup and sets the running version.
func stubRelease(t *testing.T, version string, found bool, err error) {
	t.Helper()
	originalVersion, originalLookup := Version, latestRelease
	t.Cleanup(func() {
		Version = originalVersion
		latestRelease = originalLookup
	})
	Version = version
	latestRelease = func(context.Context) (*selfupdate.Release, bool, error) {
		return nil, found, err
	}
}

// TestUpdateCommand_NoRelease tests that a missing release is not an error.
func TestUpdateCommand_NoRelease(t *testing.T) {
	stubRelease(t, "1.2.0", false, nil)

	output, err := ExecuteCommandWithCapture(t, NewUpdateCommand().GetCobraCommand(), []string{})

	require.NoError(t, err)
	assert.Contains(t, output, "Current version: 1.2.0")
	assert.Contains(t, output, "No release found")
}

// TestUpdateCommand_LookupError tests that lookup failures are returned.
func TestUpdateCommand_LookupError(t *testing.T) {
	stubRelease(t, "1.2.0", false, errors.New("rate limited"))

	_, err := ExecuteCommandWithCapture(t, NewUpdateCommand().GetCobraCommand(), []string{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to check for updates: rate limited")
}
