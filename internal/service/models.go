// Package service provides the compose project domain models edited by dockr.
package service

import "fmt"

// Mapping is a host:container pair used for port and volume rows.
type Mapping struct {
	Host      string `yaml:"host" json:"host" toml:"host"`
	Container string `yaml:"container" json:"container" toml:"container"`
}

// Complete reports whether both sides of the mapping are populated.
func (m Mapping) Complete() bool {
	return m.Host != "" && m.Container != ""
}

// String renders the mapping as host:container.
func (m Mapping) String() string {
	return m.Host + ":" + m.Container
}

// EnvVar is a single environment key/value row.
type EnvVar struct {
	Key   string `yaml:"key" json:"key" toml:"key"`
	Value string `yaml:"value" json:"value" toml:"value"`
}

// Complete reports whether both key and value are populated.
func (e EnvVar) Complete() bool {
	return e.Key != "" && e.Value != ""
}

// RestartPolicy represents the container restart policy.
type RestartPolicy string

const (
	RestartPolicyNo            RestartPolicy = "no"
	RestartPolicyAlways        RestartPolicy = "always"
	RestartPolicyOnFailure     RestartPolicy = "on-failure"
	RestartPolicyUnlessStopped RestartPolicy = "unless-stopped"
)

// Valid reports whether p is one of the known restart policies.
func (p RestartPolicy) Valid() bool {
	switch p {
	case RestartPolicyNo, RestartPolicyAlways, RestartPolicyOnFailure, RestartPolicyUnlessStopped:
		return true
	}
	return false
}

// DefaultNetwork is the implicit network every service joins.
const DefaultNetwork = "default"

// Service is one named unit of a compose document.
type Service struct {
	Name         string        `yaml:"name" json:"name" toml:"name"`
	Image        string        `yaml:"image,omitempty" json:"image,omitempty" toml:"image,omitempty"`
	BuildContext string        `yaml:"buildContext,omitempty" json:"buildContext,omitempty" toml:"buildContext,omitempty"`
	Dockerfile   string        `yaml:"dockerfile,omitempty" json:"dockerfile,omitempty" toml:"dockerfile,omitempty"`
	Ports        []Mapping     `yaml:"ports,omitempty" json:"ports,omitempty" toml:"ports,omitempty"`
	Volumes      []Mapping     `yaml:"volumes,omitempty" json:"volumes,omitempty" toml:"volumes,omitempty"`
	Environment  []EnvVar      `yaml:"environment,omitempty" json:"environment,omitempty" toml:"environment,omitempty"`
	Restart      RestartPolicy `yaml:"restart,omitempty" json:"restart,omitempty" toml:"restart,omitempty"`
	DependsOn    []string      `yaml:"dependsOn,omitempty" json:"dependsOn,omitempty" toml:"dependsOn,omitempty"`
	Networks     []string      `yaml:"networks,omitempty" json:"networks,omitempty" toml:"networks,omitempty"`
	Command      string        `yaml:"command,omitempty" json:"command,omitempty" toml:"command,omitempty"`
}

// NewService returns the service created by "add service" when n services
// already exist.
func NewService(n int) Service {
	return Service{
		Name:     fmt.Sprintf("service-%d", n+1),
		Restart:  RestartPolicyUnlessStopped,
		Networks: []string{DefaultNetwork},
	}
}

// SecurityOptions are hardening flags applied to every generated service.
type SecurityOptions struct {
	NonRootUser     bool     `yaml:"nonRootUser" json:"nonRootUser" toml:"nonRootUser"`
	ReadOnlyRootfs  bool     `yaml:"readOnlyRootfs" json:"readOnlyRootfs" toml:"readOnlyRootfs"`
	NoNewPrivileges bool     `yaml:"noNewPrivileges" json:"noNewPrivileges" toml:"noNewPrivileges"`
	CapDrop         []string `yaml:"capDrop" json:"capDrop" toml:"capDrop"`
	CapAdd          []string `yaml:"capAdd" json:"capAdd" toml:"capAdd"`
}

// DefaultSecurityOptions returns the hardened defaults.
func DefaultSecurityOptions() SecurityOptions {
	return SecurityOptions{
		NonRootUser:     true,
		ReadOnlyRootfs:  false,
		NoNewPrivileges: true,
		CapDrop:         []string{"ALL"},
		CapAdd:          []string{},
	}
}

// NetworkDriver is the driver used for the default network.
type NetworkDriver string

const (
	NetworkDriverBridge NetworkDriver = "bridge"
	NetworkDriverHost   NetworkDriver = "host"
)

// Project is the full editable state of a compose document.
type Project struct {
	Services       []Service       `yaml:"services" json:"services" toml:"services"`
	NetworkDriver  NetworkDriver   `yaml:"networkDriver" json:"networkDriver" toml:"networkDriver"`
	CustomNetworks []string        `yaml:"customNetworks,omitempty" json:"customNetworks,omitempty" toml:"customNetworks,omitempty"`
	MultiStage     bool            `yaml:"multiStage" json:"multiStage" toml:"multiStage"`
	Security       SecurityOptions `yaml:"security" json:"security" toml:"security"`
}

// DefaultProject returns the initial project: a single nginx web service.
func DefaultProject() *Project {
	return &Project{
		Services: []Service{
			{
				Name:     "web",
				Image:    "nginx:latest",
				Ports:    []Mapping{{Host: "80", Container: "80"}},
				Restart:  RestartPolicyUnlessStopped,
				Networks: []string{DefaultNetwork},
			},
		},
		NetworkDriver: NetworkDriverBridge,
		Security:      DefaultSecurityOptions(),
	}
}
