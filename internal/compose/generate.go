package compose

import (
	"fmt"
	"strings"

	"github.com/trly/dockr/internal/log"
	"github.com/trly/dockr/internal/service"
)

// Fixed values written into every generated service.
const (
	ComposeVersion    = "3.8"
	NonRootUser       = "1001:1001"
	MultiStageTarget  = "production"
	HealthcheckTest   = `["CMD-SHELL", "curl -f http://localhost/health || exit 1"]`
	HealthInterval    = "30s"
	HealthTimeout     = "10s"
	HealthRetries     = 3
	HealthStartPeriod = "40s"
)

// readOnlyTmpfs are the writable mounts added when the root filesystem is read-only.
var readOnlyTmpfs = []string{"/tmp", "/var/tmp"}

// Result holds the generated artifacts for one project.
type Result struct {
	// Compose is the compose document.
	Compose string `json:"compose" yaml:"compose"`
	// Dockerfile is the secure multi-stage Dockerfile; empty unless the
	// project enables multi-stage builds.
	Dockerfile string `json:"dockerfile,omitempty" yaml:"dockerfile,omitempty"`
}

// Generator renders projects into compose documents.
type Generator struct {
	logger log.Logger
	name   string
}

// NewGenerator creates a generator. name is written into the header comment.
func NewGenerator(logger log.Logger, name string) *Generator {
	if name == "" {
		name = "dockr"
	}
	return &Generator{logger: logger, name: name}
}

// Name returns the generator name used in header comments.
func (g *Generator) Name() string {
	return g.name
}

// Generate renders the project. It never fails: incomplete rows are skipped.
func (g *Generator) Generate(p *service.Project) Result {
	var b strings.Builder

	fmt.Fprintf(&b, "# Docker Compose Configuration\n")
	fmt.Fprintf(&b, "# Generated by %s\n", g.name)
	fmt.Fprintf(&b, "# Security-hardened configuration with multi-stage build support\n")
	fmt.Fprintf(&b, "version: '%s'\n\n", ComposeVersion)

	b.WriteString("services:\n")
	for i, svc := range p.Services {
		if i > 0 {
			b.WriteString("\n")
		}
		g.writeService(&b, p, svc)
	}

	b.WriteString("\nnetworks:\n")
	driver := p.NetworkDriver
	if driver == "" {
		driver = service.NetworkDriverBridge
	}
	writeNetwork(&b, service.DefaultNetwork, string(driver))
	for _, n := range p.CustomNetworks {
		if n == "" || n == service.DefaultNetwork {
			continue
		}
		writeNetwork(&b, n, string(service.NetworkDriverBridge))
	}

	res := Result{Compose: b.String()}
	if p.MultiStage {
		res.Dockerfile = SecureDockerfile(g.name)
	}

	g.logger.Debug("Generated compose document", "services", len(p.Services), "multiStage", p.MultiStage)
	return res
}

func (g *Generator) writeService(b *strings.Builder, p *service.Project, svc service.Service) {
	fmt.Fprintf(b, "  %s:\n", Scalar(svc.Name))

	if svc.BuildContext != "" {
		b.WriteString("    build:\n")
		writeKey(b, 6, "context", svc.BuildContext)
		if svc.Dockerfile != "" {
			writeKey(b, 6, "dockerfile", svc.Dockerfile)
		}
		if p.MultiStage {
			writeKey(b, 6, "target", MultiStageTarget)
		}
	} else if svc.Image != "" {
		writeKey(b, 4, "image", svc.Image)
	}

	if svc.Restart != "" {
		writeKey(b, 4, "restart", string(svc.Restart))
	}

	writeList(b, "ports", g.mappings(svc.Name, "port", svc.Ports))
	writeList(b, "volumes", g.mappings(svc.Name, "volume", svc.Volumes))

	if env := environment(svc.Environment); len(env) > 0 {
		b.WriteString("    environment:\n")
		for _, e := range env {
			writeKey(b, 6, e.Key, e.Value)
		}
	}

	writeList(b, "depends_on", nonBlank(svc.DependsOn))

	if nets := nonBlank(svc.Networks); !(len(nets) == 0 || len(nets) == 1 && nets[0] == service.DefaultNetwork) {
		writeList(b, "networks", nets)
	}

	if svc.Command != "" {
		writeKey(b, 4, "command", svc.Command)
	}

	sec := p.Security
	if sec.NonRootUser {
		writeKey(b, 4, "user", NonRootUser)
	}
	if sec.ReadOnlyRootfs {
		b.WriteString("    read_only: true\n")
		writeList(b, "tmpfs", readOnlyTmpfs)
	}
	if sec.NoNewPrivileges {
		writeList(b, "security_opt", []string{"no-new-privileges:true"})
	}
	writeList(b, "cap_drop", nonBlank(sec.CapDrop))
	writeList(b, "cap_add", nonBlank(sec.CapAdd))

	b.WriteString("    healthcheck:\n")
	fmt.Fprintf(b, "      test: %s\n", HealthcheckTest)
	fmt.Fprintf(b, "      interval: %s\n", HealthInterval)
	fmt.Fprintf(b, "      timeout: %s\n", HealthTimeout)
	fmt.Fprintf(b, "      retries: %d\n", HealthRetries)
	fmt.Fprintf(b, "      start_period: %s\n", HealthStartPeriod)
}

// mappings renders complete host:container rows and drops the rest.
func (g *Generator) mappings(serviceName, kind string, rows []service.Mapping) []string {
	out := make([]string, 0, len(rows))
	for i, m := range rows {
		if !m.Complete() {
			g.logger.Debug("Skipping incomplete "+kind+" mapping", "service", serviceName, "index", i)
			continue
		}
		out = append(out, m.String())
	}
	return out
}

// environment drops incomplete rows. A repeated key keeps its first
// position and its last value.
func environment(rows []service.EnvVar) []service.EnvVar {
	out := make([]service.EnvVar, 0, len(rows))
	index := make(map[string]int, len(rows))
	for _, e := range rows {
		if !e.Complete() {
			continue
		}
		if i, ok := index[e.Key]; ok {
			out[i].Value = e.Value
			continue
		}
		index[e.Key] = len(out)
		out = append(out, e)
	}
	return out
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func writeKey(b *strings.Builder, indent int, key, value string) {
	fmt.Fprintf(b, "%s%s: %s\n", strings.Repeat(" ", indent), Scalar(key), Scalar(value))
}

func writeList(b *strings.Builder, key string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "    %s:\n", key)
	for _, item := range items {
		fmt.Fprintf(b, "      - %s\n", Scalar(item))
	}
}

func writeNetwork(b *strings.Builder, name, driver string) {
	fmt.Fprintf(b, "  %s:\n", Scalar(name))
	fmt.Fprintf(b, "    driver: %s\n", driver)
}
