package compose

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trly/dockr/internal/service"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestImport_GeneratedRoundTrip(t *testing.T) {
	p := service.DefaultProject()
	p.MultiStage = true
	p.CustomNetworks = []string{"backend"}
	p.Services[0].DependsOn = []string{"api"}
	p.Services[0].Networks = []string{"backend", "default"}
	p.Services = append(p.Services, service.Service{
		Name:         "api",
		BuildContext: "./api",
		Restart:      service.RestartPolicyAlways,
		Ports:        []service.Mapping{{Host: "8080", Container: "3000"}},
		Environment:  []service.EnvVar{{Key: "NODE_ENV", Value: "production"}},
		Networks:     []string{"default"},
		Command:      "npm start",
	})

	dir := t.TempDir()
	writeFile(t, dir, "compose.yaml", newGenerator(t).Generate(p).Compose)

	got, err := Import(context.Background(), dir, nil)
	require.NoError(t, err)

	require.Len(t, got.Services, 2)
	api, web := got.Services[0], got.Services[1]

	assert.Equal(t, "api", api.Name)
	assert.Equal(t, "./api", api.BuildContext)
	assert.Empty(t, api.Dockerfile)
	assert.Equal(t, service.RestartPolicyAlways, api.Restart)
	assert.Equal(t, []service.Mapping{{Host: "8080", Container: "3000"}}, api.Ports)
	assert.Equal(t, []service.EnvVar{{Key: "NODE_ENV", Value: "production"}}, api.Environment)
	assert.Equal(t, []string{"default"}, api.Networks)
	assert.Equal(t, "npm start", api.Command)

	assert.Equal(t, "web", web.Name)
	assert.Equal(t, "nginx:latest", web.Image)
	assert.Equal(t, []string{"api"}, web.DependsOn)
	assert.Equal(t, []string{"backend", "default"}, web.Networks)

	assert.True(t, got.MultiStage)
	assert.Equal(t, []string{"backend"}, got.CustomNetworks)
	assert.Equal(t, service.NetworkDriverBridge, got.NetworkDriver)
	assert.Equal(t, service.DefaultSecurityOptions(), got.Security)
}

func TestImport_Interpolation(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "docker-compose.yml", `services:
  web:
    image: nginx:${TAG}
    environment:
      - MODE=${MODE}
`)
	writeFile(t, dir, ".env", "TAG=1.25\nMODE=dev\n")
	extra := writeFile(t, t.TempDir(), "prod.env", "MODE=prod\n")

	got, err := Import(context.Background(), path, &ImportOptions{EnvFiles: []string{extra}})
	require.NoError(t, err)

	require.Len(t, got.Services, 1)
	assert.Equal(t, "nginx:1.25", got.Services[0].Image)
	assert.Equal(t, []service.EnvVar{{Key: "MODE", Value: "prod"}}, got.Services[0].Environment)
	assert.False(t, got.Security.NonRootUser)
	assert.False(t, got.Security.NoNewPrivileges)
	assert.Empty(t, got.Security.CapDrop)

	got, err = Import(context.Background(), path, &ImportOptions{Environment: map[string]string{"TAG": "edge"}})
	require.NoError(t, err)
	assert.Equal(t, "nginx:edge", got.Services[0].Image)
}

func TestImport_HostNetwork(t *testing.T) {
	path := writeFile(t, t.TempDir(), "compose.yaml", `services:
  web:
    image: nginx
networks:
  default:
    driver: host
`)

	got, err := Import(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, service.NetworkDriverHost, got.NetworkDriver)
	assert.Empty(t, got.CustomNetworks)
}

func TestImport_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Import(ctx, filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.True(t, IsFileNotFoundError(err))

	_, err = Import(ctx, t.TempDir(), nil)
	assert.True(t, IsFileNotFoundError(err))

	path := writeFile(t, t.TempDir(), "compose.yaml", "services:\n  web:\n    image: [unterminated\n")
	_, err = Import(ctx, path, nil)
	assert.True(t, IsLoaderError(err))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Import(cancelled, path, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVerify_RejectsInvalid(t *testing.T) {
	err := Verify(context.Background(), []byte("services:\n  web:\n    ports: {bad\n"))
	require.Error(t, err)
	assert.True(t, IsLoaderError(err))
}
