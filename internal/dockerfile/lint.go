package dockerfile

import (
	"fmt"
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/parser"
)

var knownInstructions = map[string]bool{
	"add": true, "arg": true, "cmd": true, "copy": true, "entrypoint": true,
	"env": true, "expose": true, "from": true, "healthcheck": true,
	"label": true, "maintainer": true, "onbuild": true, "run": true,
	"shell": true, "stopsignal": true, "user": true, "volume": true,
	"workdir": true,
}

// Finding is one lint result. Line is zero when it applies to the whole file.
type Finding struct {
	Line    int    `json:"line" yaml:"line"`
	Message string `json:"message" yaml:"message"`
}

func (f Finding) String() string {
	if f.Line == 0 {
		return f.Message
	}
	return fmt.Sprintf("line %d: %s", f.Line, f.Message)
}

// Lint parses a Dockerfile and reports unknown instructions, a missing or
// misplaced FROM, and a final stage without CMD or ENTRYPOINT. An error is
// returned only when the text cannot be parsed at all.
func Lint(text string) ([]Finding, error) {
	res, err := parser.Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse Dockerfile: %w", err)
	}

	var findings []Finding
	for _, w := range res.Warnings {
		findings = append(findings, Finding{Message: w})
	}

	sawFrom := false
	hasCmd := false
	for _, node := range res.AST.Children {
		instr := strings.ToLower(node.Value)
		switch {
		case !knownInstructions[instr]:
			findings = append(findings, Finding{
				Line:    node.StartLine,
				Message: fmt.Sprintf("unknown instruction %q", strings.ToUpper(node.Value)),
			})
			continue
		case instr == "from":
			sawFrom = true
			hasCmd = false
		case instr == "arg":
		case !sawFrom:
			findings = append(findings, Finding{
				Line:    node.StartLine,
				Message: fmt.Sprintf("%s before first FROM", strings.ToUpper(instr)),
			})
		case instr == "cmd" || instr == "entrypoint":
			hasCmd = true
		}
	}

	if !sawFrom {
		findings = append(findings, Finding{Message: "no FROM instruction"})
	} else if !hasCmd {
		findings = append(findings, Finding{Message: "final stage has no CMD or ENTRYPOINT"})
	}

	return findings, nil
}
