package service

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var (
	// Compose service and network names.
	// Allow alphanumeric, hyphen, underscore, and dot.
	serviceNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)
)

// ValidationError represents a single validation finding.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation findings.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// Messages returns each finding rendered as a string.
func (e ValidationErrors) Messages() []string {
	out := make([]string, 0, len(e))
	for _, err := range e {
		out = append(out, err.Error())
	}
	return out
}

// Validate reports structural problems in the project. Generation never
// consults these findings: the generators skip incomplete rows silently.
func (p *Project) Validate() ValidationErrors {
	var errs ValidationErrors

	if p.NetworkDriver != "" && p.NetworkDriver != NetworkDriverBridge && p.NetworkDriver != NetworkDriverHost {
		errs = append(errs, ValidationError{
			Field:   "NetworkDriver",
			Message: fmt.Sprintf("invalid network driver %q: must be bridge or host", p.NetworkDriver),
		})
	}

	for i, n := range p.CustomNetworks {
		if !serviceNameRegex.MatchString(n) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("CustomNetworks[%d]", i),
				Message: fmt.Sprintf("invalid network name %q", n),
			})
		}
	}

	seen := make(map[string]int, len(p.Services))
	for i, s := range p.Services {
		field := fmt.Sprintf("Services[%d]", i)

		if prev, ok := seen[s.Name]; ok && s.Name != "" {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicate service name %q (also Services[%d])", s.Name, prev),
			})
		} else {
			seen[s.Name] = i
		}

		for _, e := range s.Validate() {
			errs = append(errs, ValidationError{Field: field + "." + e.Field, Message: e.Message})
		}

		for _, n := range s.Networks {
			if n == "" || n == DefaultNetwork {
				continue
			}
			if !slices.Contains(p.CustomNetworks, n) {
				errs = append(errs, ValidationError{
					Field:   field + ".Networks",
					Message: fmt.Sprintf("network %q is not declared in customNetworks", n),
				})
			}
		}
	}

	return errs
}

// Validate validates a single service.
func (s *Service) Validate() ValidationErrors {
	var errs ValidationErrors

	if s.Name == "" {
		errs = append(errs, ValidationError{Field: "Name", Message: "service name is required"})
	} else if !serviceNameRegex.MatchString(s.Name) {
		errs = append(errs, ValidationError{
			Field:   "Name",
			Message: fmt.Sprintf("invalid service name %q: must start with alphanumeric and contain only alphanumeric, hyphen, underscore, or dot", s.Name),
		})
	}

	if s.Image == "" && s.BuildContext == "" {
		errs = append(errs, ValidationError{Field: "Image", Message: "image is required when buildContext is not specified"})
	}

	if s.Restart != "" && !s.Restart.Valid() {
		errs = append(errs, ValidationError{
			Field:   "Restart",
			Message: fmt.Sprintf("invalid restart policy %q: must be one of no, always, on-failure, unless-stopped", s.Restart),
		})
	}

	for i, m := range s.Ports {
		if m.Complete() != (m.Host != "" || m.Container != "") {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("Ports[%d]", i),
				Message: "incomplete port mapping will be skipped",
			})
		}
	}

	for i, m := range s.Volumes {
		if m.Complete() != (m.Host != "" || m.Container != "") {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("Volumes[%d]", i),
				Message: "incomplete volume mapping will be skipped",
			})
		}
	}

	for i, e := range s.Environment {
		if e.Complete() != (e.Key != "" || e.Value != "") {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("Environment[%d]", i),
				Message: "incomplete environment variable will be skipped",
			})
		}
	}

	for _, dep := range s.DependsOn {
		if dep == s.Name {
			errs = append(errs, ValidationError{
				Field:   "DependsOn",
				Message: fmt.Sprintf("service cannot depend on itself: %q", dep),
			})
		}
	}

	return errs
}
