package service

import "slices"

// CopyInstruction is one COPY source and destination.
type CopyInstruction struct {
	Source string `yaml:"source" json:"source"`
	Dest   string `yaml:"dest" json:"dest"`
}

// Complete reports whether both sides are set.
func (c CopyInstruction) Complete() bool {
	return c.Source != "" && c.Dest != ""
}

// Preset is the editable content of a Dockerfile template. Built-in presets
// live in the dockerfile package; user presets are read from the config file.
type Preset struct {
	BaseImage    string            `yaml:"baseImage" json:"baseImage"`
	Workdir      string            `yaml:"workdir" json:"workdir"`
	Port         string            `yaml:"port" json:"port"`
	StartCommand string            `yaml:"startCommand" json:"startCommand"`
	PreRun       []string          `yaml:"preRun" json:"preRun"`
	Copy         []CopyInstruction `yaml:"copy" json:"copy"`
	Build        []string          `yaml:"build" json:"build"`
	Env          []EnvVar          `yaml:"env" json:"env"`
	// Stages are emitted verbatim in place of CMD, for build-then-serve
	// patterns.
	Stages []string `yaml:"stages,omitempty" json:"stages,omitempty"`
}

// Clone returns a deep copy.
func (p Preset) Clone() Preset {
	p.PreRun = slices.Clone(p.PreRun)
	p.Copy = slices.Clone(p.Copy)
	p.Build = slices.Clone(p.Build)
	p.Env = slices.Clone(p.Env)
	p.Stages = slices.Clone(p.Stages)
	return p
}
