// Package dependency provides service dependency graph management for dockr projects.
package dependency

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"

	"github.com/trly/dockr/internal/service"
)

// ServiceDependencyGraph models depends_on relationships between services.
// Edge direction: dependency -> dependent (i.e., B -> A means A depends on B).
// Edges that would close a cycle are rejected and reported instead.
type ServiceDependencyGraph struct {
	g     graph.Graph[string, string]
	order map[string]int
}

// NewServiceDependencyGraph creates a new, empty dependency graph.
func NewServiceDependencyGraph() *ServiceDependencyGraph {
	return &ServiceDependencyGraph{
		g:     graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles()),
		order: make(map[string]int),
	}
}

// AddService ensures a service exists in the graph.
func (sdg *ServiceDependencyGraph) AddService(serviceName string) error {
	if serviceName == "" {
		return fmt.Errorf("service name cannot be empty")
	}
	if err := sdg.g.AddVertex(serviceName); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return err
	}
	if _, ok := sdg.order[serviceName]; !ok {
		sdg.order[serviceName] = len(sdg.order)
	}
	return nil
}

// ErrCycle is returned when a dependency would close a cycle.
var ErrCycle = errors.New("dependency creates a cycle")

// ErrUnknownService is returned when a dependency names a missing service.
var ErrUnknownService = errors.New("unknown service")

// AddDependency records that dependent depends on dependency. Both services
// must already exist.
func (sdg *ServiceDependencyGraph) AddDependency(dependent, dependency string) error {
	if dependent == "" || dependency == "" {
		return fmt.Errorf("dependent and dependency must be non-empty")
	}
	if dependent == dependency {
		return fmt.Errorf("self-dependency is not allowed: %s", dependent)
	}
	for _, name := range []string{dependent, dependency} {
		if _, ok := sdg.order[name]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownService, name)
		}
	}

	err := sdg.g.AddEdge(dependency, dependent)
	switch {
	case err == nil, errors.Is(err, graph.ErrEdgeAlreadyExists):
		return nil
	case errors.Is(err, graph.ErrEdgeCreatesCycle):
		return fmt.Errorf("%w: %s -> %s", ErrCycle, dependent, dependency)
	default:
		return err
	}
}

// GetDependencies returns the services that the given service depends on.
func (sdg *ServiceDependencyGraph) GetDependencies(serviceName string) ([]string, error) {
	preds, err := sdg.g.PredecessorMap()
	if err != nil {
		return nil, err
	}
	return sdg.keys(preds, serviceName)
}

// GetDependents returns the services that depend on the given service.
func (sdg *ServiceDependencyGraph) GetDependents(serviceName string) ([]string, error) {
	succs, err := sdg.g.AdjacencyMap()
	if err != nil {
		return nil, err
	}
	return sdg.keys(succs, serviceName)
}

func (sdg *ServiceDependencyGraph) keys(m map[string]map[string]graph.Edge[string], serviceName string) ([]string, error) {
	edges, ok := m[serviceName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, serviceName)
	}
	out := make([]string, 0, len(edges))
	for name := range edges {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// GetTopologicalOrder returns services in start order (dependencies first).
// Ties are broken by declaration order.
func (sdg *ServiceDependencyGraph) GetTopologicalOrder() ([]string, error) {
	return graph.StableTopologicalSort(sdg.g, func(a, b string) bool {
		return sdg.order[a] < sdg.order[b]
	})
}

// BuildServiceDependencyGraph builds a dependency graph for a project.
// Dependencies that are unknown or would form a cycle are left out of the
// graph and returned as findings.
func BuildServiceDependencyGraph(project *service.Project) (*ServiceDependencyGraph, service.ValidationErrors) {
	sdg := NewServiceDependencyGraph()
	var findings service.ValidationErrors

	for _, svc := range project.Services {
		if svc.Name == "" {
			continue
		}
		_ = sdg.AddService(svc.Name)
	}

	for i, svc := range project.Services {
		if svc.Name == "" {
			continue
		}
		for _, dep := range svc.DependsOn {
			if dep == "" || dep == svc.Name {
				continue
			}
			if err := sdg.AddDependency(svc.Name, dep); err != nil {
				msg := err.Error()
				if errors.Is(err, ErrUnknownService) {
					msg = fmt.Sprintf("depends on unknown service %q", dep)
				}
				findings = append(findings, service.ValidationError{
					Field:   fmt.Sprintf("Services[%d].DependsOn", i),
					Message: msg,
				})
			}
		}
	}

	return sdg, findings
}
