package service

import (
	"slices"
	"strings"
)

// Service returns a pointer to the service at index i for in-place edits,
// or nil when i is out of range.
func (p *Project) Service(i int) *Service {
	if i < 0 || i >= len(p.Services) {
		return nil
	}
	return &p.Services[i]
}

// AddService appends a service with default settings and returns its index.
func (p *Project) AddService() int {
	p.Services = append(p.Services, NewService(len(p.Services)))
	return len(p.Services) - 1
}

// RemoveService deletes the service at index i.
func (p *Project) RemoveService(i int) {
	p.Services = removeAt(p.Services, i)
}

// AddPort appends an empty port row to service i.
func (p *Project) AddPort(i int) {
	if s := p.Service(i); s != nil {
		s.Ports = append(s.Ports, Mapping{})
	}
}

// SetPort replaces port row j of service i.
func (p *Project) SetPort(i, j int, m Mapping) {
	if s := p.Service(i); s != nil {
		setAt(s.Ports, j, m)
	}
}

// RemovePort deletes port row j of service i.
func (p *Project) RemovePort(i, j int) {
	if s := p.Service(i); s != nil {
		s.Ports = removeAt(s.Ports, j)
	}
}

// AddVolume appends an empty volume row to service i.
func (p *Project) AddVolume(i int) {
	if s := p.Service(i); s != nil {
		s.Volumes = append(s.Volumes, Mapping{})
	}
}

// SetVolume replaces volume row j of service i.
func (p *Project) SetVolume(i, j int, m Mapping) {
	if s := p.Service(i); s != nil {
		setAt(s.Volumes, j, m)
	}
}

// RemoveVolume deletes volume row j of service i.
func (p *Project) RemoveVolume(i, j int) {
	if s := p.Service(i); s != nil {
		s.Volumes = removeAt(s.Volumes, j)
	}
}

// AddEnvironment appends an empty environment row to service i.
func (p *Project) AddEnvironment(i int) {
	if s := p.Service(i); s != nil {
		s.Environment = append(s.Environment, EnvVar{})
	}
}

// SetEnvironment replaces environment row j of service i.
func (p *Project) SetEnvironment(i, j int, e EnvVar) {
	if s := p.Service(i); s != nil {
		setAt(s.Environment, j, e)
	}
}

// RemoveEnvironment deletes environment row j of service i.
func (p *Project) RemoveEnvironment(i, j int) {
	if s := p.Service(i); s != nil {
		s.Environment = removeAt(s.Environment, j)
	}
}

// SetDependsOn replaces the dependency list of service i.
func (p *Project) SetDependsOn(i int, deps []string) {
	if s := p.Service(i); s != nil {
		s.DependsOn = slices.Clone(deps)
	}
}

// AddCustomNetwork registers a project-level network. Blank and duplicate
// names are ignored; the return value reports whether the network was added.
func (p *Project) AddCustomNetwork(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || slices.Contains(p.CustomNetworks, name) {
		return false
	}
	p.CustomNetworks = append(p.CustomNetworks, name)
	return true
}

// RemoveCustomNetwork drops a project-level network by name.
func (p *Project) RemoveCustomNetwork(name string) {
	p.CustomNetworks = slices.DeleteFunc(p.CustomNetworks, func(n string) bool { return n == name })
}

// ServiceNames returns the service names in declared order.
func (p *Project) ServiceNames() []string {
	names := make([]string, 0, len(p.Services))
	for _, s := range p.Services {
		names = append(names, s.Name)
	}
	return names
}

func removeAt[T any](items []T, i int) []T {
	if i < 0 || i >= len(items) {
		return items
	}
	return slices.Delete(items, i, i+1)
}

func setAt[T any](items []T, i int, v T) {
	if i < 0 || i >= len(items) {
		return
	}
	items[i] = v
}
