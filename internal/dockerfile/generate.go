package dockerfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/trly/dockr/internal/compose"
	"github.com/trly/dockr/internal/log"
)

// Result holds a generated Dockerfile and its companion compose snippet.
type Result struct {
	Dockerfile string `json:"dockerfile" yaml:"dockerfile"`
	Compose    string `json:"compose" yaml:"compose"`
}

// Generator renders forms into Dockerfiles.
type Generator struct {
	logger log.Logger
	name   string
}

// NewGenerator creates a generator. name is written into header comments.
func NewGenerator(logger log.Logger, name string) *Generator {
	if name == "" {
		name = "dockr"
	}
	return &Generator{logger: logger, name: name}
}

// Generate renders the form. Blank commands, incomplete COPY rows and
// incomplete environment rows are skipped.
func (g *Generator) Generate(f *Form) Result {
	return Result{
		Dockerfile: g.dockerfile(f),
		Compose:    g.compose(f),
	}
}

func (g *Generator) title(f *Form) string {
	if f.Template == "" {
		return "CUSTOM"
	}
	return cases.Upper(language.Und).String(f.Template)
}

func (g *Generator) dockerfile(f *Form) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Generated Dockerfile for %s application\n", g.title(f))
	fmt.Fprintf(&b, "# Created by %s\n\n", g.name)
	fmt.Fprintf(&b, "FROM %s\n\n", f.BaseImage)
	if f.Workdir != "" {
		fmt.Fprintf(&b, "WORKDIR %s\n\n", f.Workdir)
	}

	section(&b, runLines(f.PreRun))

	var copies []string
	for _, c := range f.Copy {
		if c.Complete() {
			copies = append(copies, fmt.Sprintf("COPY %s %s", c.Source, c.Dest))
		}
	}
	section(&b, copies)

	section(&b, runLines(f.Build))

	var env []string
	for _, e := range f.Env {
		if e.Complete() {
			env = append(env, fmt.Sprintf("ENV %s=%s", e.Key, e.Value))
		}
	}
	section(&b, env)

	if f.Port != "" {
		fmt.Fprintf(&b, "EXPOSE %s\n\n", f.Port)
	}

	if custom := strings.TrimSpace(f.CustomInstructions); custom != "" {
		fmt.Fprintf(&b, "# Custom instructions\n%s\n\n", custom)
	}

	if len(f.Stages) > 0 {
		for _, line := range f.Stages {
			b.WriteString(line + "\n")
		}
		return b.String()
	}

	if cmd := CmdLine(f.StartCommand); cmd != "" {
		b.WriteString(cmd + "\n")
	} else {
		g.logger.Debug("No start command, CMD omitted", "template", f.Template)
	}
	return b.String()
}

func (g *Generator) compose(f *Form) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Docker Compose for %s application\n", g.title(f))
	fmt.Fprintf(&b, "# Generated by %s\n\n", g.name)
	fmt.Fprintf(&b, "version: '%s'\n\n", compose.ComposeVersion)
	b.WriteString("services:\n  app:\n    build: .\n")

	if f.Port != "" {
		fmt.Fprintf(&b, "    ports:\n      - %s\n", strconv.Quote(f.Port+":"+f.Port))
	}

	var env []string
	for _, e := range f.Env {
		if e.Complete() {
			env = append(env, e.Key+"="+e.Value)
		}
	}
	if len(env) > 0 {
		b.WriteString("    environment:\n")
		for _, e := range env {
			fmt.Fprintf(&b, "      - %s\n", compose.Scalar(e))
		}
	}

	b.WriteString("    restart: unless-stopped\n")
	if f.Workdir != "" {
		b.WriteString("    volumes:\n")
		fmt.Fprintf(&b, "      - %s\n", compose.Scalar(".:"+f.Workdir))
		if strings.HasPrefix(f.BaseImage, "node:") {
			fmt.Fprintf(&b, "      - %s\n", compose.Scalar(f.Workdir+"/node_modules"))
		}
	}
	b.WriteString("    networks:\n      - app-network\n\n")
	b.WriteString("networks:\n  app-network:\n    driver: bridge\n")

	return b.String()
}

// CmdLine renders an exec-form CMD for a start command. Shell quoting is
// honored; on a parse error the command is split on whitespace.
func CmdLine(startCommand string) string {
	words, err := shellwords.Parse(startCommand)
	if err != nil {
		words = strings.Fields(startCommand)
	}
	if len(words) == 0 {
		return ""
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = strconv.Quote(w)
	}
	return "CMD [" + strings.Join(quoted, ", ") + "]"
}

func runLines(cmds []string) []string {
	var out []string
	for _, cmd := range cmds {
		if strings.TrimSpace(cmd) != "" {
			out = append(out, "RUN "+cmd)
		}
	}
	return out
}

// section writes lines followed by a blank line, or nothing when empty.
func section(b *strings.Builder, lines []string) {
	if len(lines) == 0 {
		return
	}
	for _, l := range lines {
		b.WriteString(l + "\n")
	}
	b.WriteString("\n")
}
