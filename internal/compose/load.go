package compose

import (
	"context"
	"errors"
	"maps"
	"os"
	"path/filepath"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"github.com/joho/godotenv"

	"github.com/trly/dockr/internal/service"
)

// verifyProjectName is the project name used when checking generated text.
const verifyProjectName = "dockr"

// ImportOptions contains optional configuration for Import.
type ImportOptions struct {
	// Workdir sets the base directory for resolving relative paths.
	// If not specified, the directory containing the compose file is used.
	Workdir string

	// Environment sets variables used for interpolation. They take
	// precedence over EnvFiles.
	Environment map[string]string

	// EnvFiles specifies .env files to read before parsing the compose file.
	EnvFiles []string
}

// Import loads an existing compose file and maps it onto a project.
//
// The path argument can be a compose file or a directory containing
// compose.yaml, compose.yml, docker-compose.yaml or docker-compose.yml.
// opts can be nil for default behavior.
func Import(ctx context.Context, path string, opts *ImportOptions) (*service.Project, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if opts == nil {
		opts = &ImportOptions{}
	}

	pathInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &fileNotFoundError{path: path, cause: err}
		}
		return nil, &pathError{path: path, cause: err}
	}

	filePath := path
	workdir := filepath.Dir(path)
	if pathInfo.IsDir() {
		filePath = findComposeFile(path)
		if filePath == "" {
			return nil, &fileNotFoundError{path: path, cause: errors.New("no compose file found")}
		}
		workdir = path
	}
	if opts.Workdir != "" {
		workdir = opts.Workdir
	}

	envMap := make(map[string]string)
	defaultEnvFile := filepath.Join(workdir, ".env")
	if _, err := os.Stat(defaultEnvFile); err == nil {
		if vals, err := godotenv.Read(defaultEnvFile); err == nil {
			maps.Copy(envMap, vals)
		}
	}
	if len(opts.EnvFiles) > 0 {
		vals, err := godotenv.Read(opts.EnvFiles...)
		if err != nil {
			return nil, &pathError{path: opts.EnvFiles[0], cause: err}
		}
		maps.Copy(envMap, vals)
	}
	maps.Copy(envMap, opts.Environment)

	configDetails, err := loader.LoadConfigFiles(ctx, []string{filePath}, workdir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &fileNotFoundError{path: filePath, cause: err}
		}
		return nil, &pathError{path: filePath, cause: err}
	}
	if configDetails.Environment == nil {
		configDetails.Environment = make(types.Mapping)
	}
	for key, val := range envMap {
		if _, exists := configDetails.Environment[key]; !exists {
			configDetails.Environment[key] = val
		}
	}

	project, err := loader.LoadWithContext(ctx, *configDetails, func(o *loader.Options) {
		o.ResolvePaths = false
		o.SkipConsistencyCheck = true
		o.SetProjectName(filepath.Base(workdir), false)
	})
	if err != nil {
		return nil, &loaderError{cause: err}
	}

	return FromComposeProject(project), nil
}

// Verify checks that content is a compose document compose-go accepts.
// Variables are not interpolated.
func Verify(ctx context.Context, content []byte) error {
	details := types.ConfigDetails{
		WorkingDir: ".",
		ConfigFiles: []types.ConfigFile{
			{Filename: "compose.yaml", Content: content},
		},
		Environment: types.Mapping{},
	}
	_, err := loader.LoadWithContext(ctx, details, func(o *loader.Options) {
		o.ResolvePaths = false
		o.SkipInterpolation = true
		o.SkipConsistencyCheck = true
		o.SetProjectName(verifyProjectName, true)
	})
	if err != nil {
		return &loaderError{cause: err}
	}
	return nil
}

// findComposeFile returns the first compose file found in dir, or "".
func findComposeFile(dir string) string {
	candidates := []string{
		"compose.yaml",
		"compose.yml",
		"docker-compose.yaml",
		"docker-compose.yml",
	}
	for _, name := range candidates {
		fullPath := filepath.Join(dir, name)
		if _, err := os.Stat(fullPath); err == nil {
			return fullPath
		}
	}
	return ""
}
