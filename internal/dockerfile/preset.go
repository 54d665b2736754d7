// Package dockerfile builds single-service Dockerfiles from language presets.
package dockerfile

import (
	"errors"
	"fmt"
	"slices"

	"dario.cat/mergo"

	"github.com/trly/dockr/internal/service"
)

// ErrUnknownPreset is returned when a preset name is not registered.
var ErrUnknownPreset = errors.New("unknown preset")

type (
	// Preset is the editable content of a Dockerfile template.
	Preset = service.Preset
	// CopyInstruction is one COPY source and destination.
	CopyInstruction = service.CopyInstruction
)

var nodeCopy = []CopyInstruction{{Source: "package*.json", Dest: "./"}, {Source: ".", Dest: "./"}}

var builtinPresets = map[string]Preset{
	"node": {
		BaseImage:    "node:18-alpine",
		Workdir:      "/app",
		Port:         "3000",
		StartCommand: "npm start",
		PreRun:       []string{"apk add --no-cache dumb-init"},
		Copy:         nodeCopy,
		Build:        []string{"npm install"},
		Env:          []service.EnvVar{{Key: "NODE_ENV", Value: "production"}},
	},
	"react": {
		BaseImage:    "node:18-alpine",
		Workdir:      "/app",
		Port:         "3000",
		StartCommand: "npm start",
		PreRun:       []string{"apk add --no-cache dumb-init"},
		Copy:         nodeCopy,
		Build:        []string{"npm install", "npm run build"},
		Env: []service.EnvVar{
			{Key: "NODE_ENV", Value: "production"},
			{Key: "GENERATE_SOURCEMAP", Value: "false"},
		},
	},
	"react-nginx": {
		BaseImage:    "node:18-alpine AS build",
		Workdir:      "/app",
		Port:         "80",
		StartCommand: `nginx -g "daemon off;"`,
		Copy:         nodeCopy,
		Build:        []string{"npm install", "npm run build"},
		Stages: []string{
			"FROM nginx:alpine",
			"COPY --from=build /app/build /usr/share/nginx/html",
			"COPY nginx.conf /etc/nginx/nginx.conf",
			"EXPOSE 80",
			`CMD ["nginx", "-g", "daemon off;"]`,
		},
	},
	"python": {
		BaseImage:    "python:3.11-slim",
		Workdir:      "/app",
		Port:         "8000",
		StartCommand: "python app.py",
		PreRun:       []string{"apt-get update && apt-get install -y --no-install-recommends gcc && rm -rf /var/lib/apt/lists/*"},
		Copy:         []CopyInstruction{{Source: "requirements.txt", Dest: "./"}, {Source: ".", Dest: "./"}},
		Build:        []string{"pip install --no-cache-dir -r requirements.txt"},
		Env:          []service.EnvVar{{Key: "PYTHONUNBUFFERED", Value: "1"}},
	},
	"java": {
		BaseImage:    "openjdk:17-jdk-slim",
		Workdir:      "/app",
		Port:         "8080",
		StartCommand: "java -jar app.jar",
		PreRun:       []string{"apt-get update && apt-get install -y --no-install-recommends maven && rm -rf /var/lib/apt/lists/*"},
		Copy: []CopyInstruction{
			{Source: "pom.xml", Dest: "./"},
			{Source: "src", Dest: "./src"},
			{Source: "target/*.jar", Dest: "app.jar"},
		},
		Build: []string{"./mvnw clean package -DskipTests"},
		Env:   []service.EnvVar{{Key: "JAVA_OPTS", Value: "-Xmx512m"}},
	},
	"php": {
		BaseImage:    "php:8.2-fpm",
		Workdir:      "/var/www/html",
		Port:         "80",
		StartCommand: "php-fpm",
		PreRun:       []string{"apt-get update && apt-get install -y --no-install-recommends zip unzip && rm -rf /var/lib/apt/lists/*"},
		Copy:         []CopyInstruction{{Source: "composer.json", Dest: "./"}, {Source: ".", Dest: "./"}},
		Build:        []string{"composer install --no-dev --optimize-autoloader"},
		Env:          []service.EnvVar{{Key: "PHP_FPM_LISTEN", Value: "0.0.0.0:9000"}},
	},
	"nginx": {
		BaseImage:    "nginx:alpine",
		Workdir:      "/usr/share/nginx/html",
		Port:         "80",
		StartCommand: `nginx -g "daemon off;"`,
		Copy: []CopyInstruction{
			{Source: "dist/", Dest: "./"},
			{Source: "nginx.conf", Dest: "/etc/nginx/nginx.conf"},
		},
	},
	"go": {
		BaseImage:    "golang:1.21-alpine",
		Workdir:      "/app",
		Port:         "8080",
		StartCommand: "./main",
		PreRun:       []string{"apk add --no-cache git"},
		Copy: []CopyInstruction{
			{Source: "go.mod", Dest: "./"},
			{Source: "go.sum", Dest: "./"},
			{Source: ".", Dest: "./"},
		},
		Build: []string{"go mod download", "go build -o main ."},
		Env:   []service.EnvVar{{Key: "CGO_ENABLED", Value: "0"}},
	},
}

// Registry holds the presets available for selection.
type Registry struct {
	presets map[string]Preset
}

// NewRegistry returns the built-in presets with custom ones merged over
// them by name. Non-empty fields of a custom preset replace the built-in
// values; unknown names are added as new presets.
func NewRegistry(custom map[string]Preset) (*Registry, error) {
	presets := make(map[string]Preset, len(builtinPresets)+len(custom))
	for name, p := range builtinPresets {
		presets[name] = p.Clone()
	}
	for name, c := range custom {
		base, ok := presets[name]
		if !ok {
			presets[name] = c.Clone()
			continue
		}
		if err := mergo.Merge(&base, c.Clone(), mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge preset %q: %w", name, err)
		}
		presets[name] = base
	}
	return &Registry{presets: presets}, nil
}

var builtin = &Registry{presets: builtinPresets}

// Builtin returns the registry of built-in presets.
func Builtin() *Registry {
	return builtin
}

// Names returns the registered preset names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns a deep copy of the named preset.
func (r *Registry) Get(name string) (Preset, error) {
	p, ok := r.presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p.Clone(), nil
}
