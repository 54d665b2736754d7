package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a project file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the project file format from its extension.
// Unknown extensions are treated as YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// emptyProject is the decode target: fields absent from the input keep
// their defaults.
func emptyProject() *Project {
	return &Project{
		NetworkDriver: NetworkDriverBridge,
		Security:      DefaultSecurityOptions(),
	}
}

// DecodeProject decodes a project document in the given format.
func DecodeProject(data []byte, format Format) (*Project, error) {
	p := emptyProject()

	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, p)
	case FormatTOML:
		_, err = toml.Decode(string(data), p)
	case FormatYAML:
		err = yaml.Unmarshal(data, p)
	default:
		return nil, fmt.Errorf("unsupported project format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s project: %w", format, err)
	}

	return p, nil
}

// LoadProjectFile reads a project from a YAML, JSON or TOML file.
func LoadProjectFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file %s: %w", path, err)
	}
	return DecodeProject(data, FormatFromPath(path))
}

// EncodeProject encodes a project in the given format.
func EncodeProject(p *Project, format Format) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(p); err != nil {
			return nil, err
		}
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(p); err != nil {
			return nil, err
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported project format: %s", format)
	}

	return buf.Bytes(), nil
}

// WriteProjectFile writes a project to path using the format implied by
// its extension.
func WriteProjectFile(path string, p *Project) error {
	data, err := EncodeProject(p, FormatFromPath(path))
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write project file %s: %w", path, err)
	}
	return nil
}
