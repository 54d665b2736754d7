package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trly/dockr/internal/config"
	"github.com/trly/dockr/internal/testutil"
)

// ExecuteCommandWithCapture executes a cobra command and captures its output.
func ExecuteCommandWithCapture(t *testing.T, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// AssertCommandOutput verifies command output contains expected strings.
func AssertCommandOutput(t *testing.T, cmd *cobra.Command, args []string, expectedOutputs ...string) {
	t.Helper()
	output, err := ExecuteCommandWithCapture(t, cmd, args)
	require.NoError(t, err)

	for _, expected := range expectedOutputs {
		assert.Contains(t, output, expected, "Expected output to contain: %s\nActual output: %s", expected, output)
	}
}

// AssertCommandFailure verifies a command fails with expected error.
func AssertCommandFailure(t *testing.T, cmd *cobra.Command, args []string, expectedError string) {
	t.Helper()
	_, err := ExecuteCommandWithCapture(t, cmd, args)
	require.Error(t, err)
	assert.Contains(t, err.Error(), expectedError)
}

// SetupCommandContext attaches app to the command context.
func SetupCommandContext(cmd *cobra.Command, app *App) {
	ctx := context.WithValue(context.Background(), appContextKey, app)
	cmd.SetContext(ctx)
}

// AppBuilder builds an App for command tests.
type AppBuilder struct {
	opts   []testutil.ConfigOption
	mutate []func(*config.Settings)
	format string
}

// NewAppBuilder creates a new AppBuilder with test defaults.
func NewAppBuilder(_ *testing.T) *AppBuilder {
	return &AppBuilder{format: config.DefaultOutputFormat}
}

// WithConfig applies fn to the settings before the app is built.
func (b *AppBuilder) WithConfig(fn func(*config.Settings)) *AppBuilder {
	b.mutate = append(b.mutate, fn)
	return b
}

// WithGeneratorName sets the generator name.
func (b *AppBuilder) WithGeneratorName(name string) *AppBuilder {
	b.opts = append(b.opts, testutil.WithGeneratorName(name))
	return b
}

// WithOutput sets the output format.
func (b *AppBuilder) WithOutput(format string) *AppBuilder {
	b.format = format
	return b
}

// Build creates the App.
func (b *AppBuilder) Build(t *testing.T) *App {
	t.Helper()
	provider := testutil.NewMockConfig(t, b.opts...)
	for _, fn := range b.mutate {
		fn(provider.GetConfig())
	}
	app, err := NewApp(testutil.NewTestLogger(t), provider)
	require.NoError(t, err)
	app.OutputFormat = b.format
	return app
}

// runWithApp builds a command, attaches app and executes args.
func runWithApp(t *testing.T, cmd *cobra.Command, app *App, args ...string) (string, error) {
	t.Helper()
	SetupCommandContext(cmd, app)
	return ExecuteCommandWithCapture(t, cmd, args)
}

// withApp attaches app to cmd and returns it.
func withApp(cmd *cobra.Command, app *App) *cobra.Command {
	SetupCommandContext(cmd, app)
	return cmd
}
