package compose

import (
	"fmt"

	"github.com/trly/dockr/internal/dependency"
	"github.com/trly/dockr/internal/service"
	"github.com/trly/dockr/internal/validate"
)

// Lint collects every finding for a project: field checks, environment
// checks, then dependency problems (unknown targets and cycles).
func Lint(p *service.Project) service.ValidationErrors {
	findings := p.Validate()
	findings = append(findings, lintEnvironment(p)...)
	_, depFindings := dependency.BuildServiceDependencyGraph(p)
	return append(findings, depFindings...)
}

func lintEnvironment(p *service.Project) service.ValidationErrors {
	var findings service.ValidationErrors
	for i, svc := range p.Services {
		for j, e := range svc.Environment {
			if !e.Complete() {
				continue
			}
			field := fmt.Sprintf("Services[%d].Environment[%d]", i, j)
			if err := validate.EnvKey(e.Key); err != nil {
				findings = append(findings, service.ValidationError{Field: field, Message: err.Error()})
			}
			for _, w := range validate.EnvValue(e.Key, e.Value) {
				findings = append(findings, service.ValidationError{Field: field, Message: w})
			}
		}
	}
	return findings
}

// StartOrder returns service names with dependencies first. Dependencies
// that cannot be honored are reported by Lint and ignored here.
func StartOrder(p *service.Project) ([]string, error) {
	sdg, _ := dependency.BuildServiceDependencyGraph(p)
	return sdg.GetTopologicalOrder()
}
