// Package compose renders dockr projects as Docker Compose documents and
// imports existing compose files back into projects.
package compose

import (
	"slices"
	"strconv"
	"strings"

	"github.com/compose-spec/compose-go/v2/types"

	"github.com/trly/dockr/internal/service"
)

// FromComposeProject maps a loaded compose project onto a dockr project.
// Services are ordered by name. Security options come from the first
// service, since dockr applies one security block to every service.
func FromComposeProject(cp *types.Project) *service.Project {
	p := &service.Project{
		Services:       []service.Service{},
		NetworkDriver:  service.NetworkDriverBridge,
		CustomNetworks: []string{},
		Security:       service.DefaultSecurityOptions(),
	}

	names := make([]string, 0, len(cp.Services))
	for name := range cp.Services {
		names = append(names, name)
	}
	slices.Sort(names)

	for i, name := range names {
		sc := cp.Services[name]
		p.Services = append(p.Services, convertService(name, sc))
		if sc.Build != nil && sc.Build.Target == MultiStageTarget {
			p.MultiStage = true
		}
		if i == 0 {
			p.Security = convertSecurity(sc)
		}
	}

	for name, nc := range cp.Networks {
		if name == service.DefaultNetwork {
			if nc.Driver == string(service.NetworkDriverHost) {
				p.NetworkDriver = service.NetworkDriverHost
			}
			continue
		}
		p.CustomNetworks = append(p.CustomNetworks, name)
	}
	slices.Sort(p.CustomNetworks)

	return p
}

func convertService(name string, sc types.ServiceConfig) service.Service {
	svc := service.Service{
		Name:        name,
		Image:       sc.Image,
		Restart:     service.RestartPolicy(sc.Restart),
		Ports:       []service.Mapping{},
		Volumes:     []service.Mapping{},
		Environment: []service.EnvVar{},
		DependsOn:   []string{},
		Networks:    []string{},
		Command:     strings.Join(sc.Command, " "),
	}

	if sc.Build != nil {
		svc.BuildContext = sc.Build.Context
		if sc.Build.Dockerfile != "Dockerfile" {
			svc.Dockerfile = sc.Build.Dockerfile
		}
	}

	for _, port := range sc.Ports {
		svc.Ports = append(svc.Ports, service.Mapping{
			Host:      port.Published,
			Container: strconv.FormatUint(uint64(port.Target), 10),
		})
	}

	for _, vol := range sc.Volumes {
		if vol.Source == "" {
			continue
		}
		svc.Volumes = append(svc.Volumes, service.Mapping{Host: vol.Source, Container: vol.Target})
	}

	keys := make([]string, 0, len(sc.Environment))
	for k := range sc.Environment {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		var value string
		if v := sc.Environment[k]; v != nil {
			value = *v
		}
		svc.Environment = append(svc.Environment, service.EnvVar{Key: k, Value: value})
	}

	for dep := range sc.DependsOn {
		svc.DependsOn = append(svc.DependsOn, dep)
	}
	slices.Sort(svc.DependsOn)

	for net := range sc.Networks {
		svc.Networks = append(svc.Networks, net)
	}
	slices.Sort(svc.Networks)
	if len(svc.Networks) == 0 {
		svc.Networks = []string{service.DefaultNetwork}
	}

	return svc
}

func convertSecurity(sc types.ServiceConfig) service.SecurityOptions {
	sec := service.SecurityOptions{
		NonRootUser:    sc.User != "" && sc.User != "root" && sc.User != "0",
		ReadOnlyRootfs: sc.ReadOnly,
		CapDrop:        append([]string{}, sc.CapDrop...),
		CapAdd:         append([]string{}, sc.CapAdd...),
	}
	for _, opt := range sc.SecurityOpt {
		if opt == "no-new-privileges:true" || opt == "no-new-privileges" {
			sec.NoNewPrivileges = true
		}
	}
	return sec
}
