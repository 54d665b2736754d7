package catalog

import (
	"fmt"

	"dario.cat/mergo"
)

// Vars are the values interpolated into catalog commands.
type Vars struct {
	Image         string `yaml:"image" json:"image"`
	Tag           string `yaml:"tag" json:"tag"`
	Container     string `yaml:"container" json:"container"`
	Network       string `yaml:"network" json:"network"`
	Registry      string `yaml:"registry" json:"registry"`
	Source        string `yaml:"source" json:"source"`
	Destination   string `yaml:"destination" json:"destination"`
	DockerRoot    string `yaml:"dockerRoot" json:"dockerRoot"`
	NewDockerRoot string `yaml:"newDockerRoot" json:"newDockerRoot"`
}

// DefaultVars returns the values used for unset fields. Source and
// Destination stay empty; each command supplies its own fallback path.
func DefaultVars() Vars {
	return Vars{
		Image:         "myapp",
		Tag:           "latest",
		Container:     "mycontainer",
		Network:       "mynetwork",
		Registry:      "docker.io",
		DockerRoot:    "/var/lib/docker",
		NewDockerRoot: "/new/docker/path",
	}
}

// WithDefaults fills empty fields from DefaultVars.
func (v Vars) WithDefaults() (Vars, error) {
	if err := mergo.Merge(&v, DefaultVars()); err != nil {
		return Vars{}, fmt.Errorf("failed to apply default vars: %w", err)
	}
	return v, nil
}
