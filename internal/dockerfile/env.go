package dockerfile

import (
	"fmt"
	"io"
	"slices"

	"github.com/joho/godotenv"

	"github.com/trly/dockr/internal/service"
)

// LoadEnvFile reads a dotenv file into environment rows sorted by key.
func LoadEnvFile(path string) ([]service.EnvVar, error) {
	vals, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return envRows(vals), nil
}

// ParseEnv reads dotenv content into environment rows sorted by key.
func ParseEnv(r io.Reader) ([]service.EnvVar, error) {
	vals, err := godotenv.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env content: %w", err)
	}
	return envRows(vals), nil
}

// MergeEnv overlays rows onto the form environment. Existing keys keep
// their position and take the new value; new keys are appended.
func (f *Form) MergeEnv(rows []service.EnvVar) {
	for _, row := range rows {
		i := slices.IndexFunc(f.Env, func(e service.EnvVar) bool { return e.Key == row.Key })
		if i >= 0 {
			f.Env[i].Value = row.Value
			continue
		}
		f.Env = append(f.Env, row)
	}
}

func envRows(vals map[string]string) []service.EnvVar {
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	rows := make([]service.EnvVar, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, service.EnvVar{Key: k, Value: vals[k]})
	}
	return rows
}
