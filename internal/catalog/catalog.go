// Package catalog provides the searchable reference of Docker commands,
// security scans, advanced operations and installation steps.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog sections.
const (
	SectionCommands = "commands"
	SectionSecurity = "security"
	SectionAdvanced = "advanced"
	SectionInstall  = "install"
)

// CategoryAll matches every category.
const CategoryAll = "all"

var sections = []string{SectionCommands, SectionSecurity, SectionAdvanced, SectionInstall}

// Entry is one catalog item. Command holds the template until rendered.
type Entry struct {
	Section     string `yaml:"section" json:"section"`
	Category    string `yaml:"category" json:"category"`
	Title       string `yaml:"title" json:"title"`
	Command     string `yaml:"command" json:"command"`
	Description string `yaml:"description" json:"description"`
	Example     string `yaml:"example,omitempty" json:"example,omitempty"`
}

// Query narrows a search. Empty fields do not narrow.
type Query struct {
	Section  string
	Category string
	Term     string
}

type item struct {
	Entry
	tmpl *template.Template
}

// Catalog is an immutable set of entries and is safe for concurrent use.
type Catalog struct {
	items []item
}

// Parse reads a catalog document. Every command must be a valid template
// and every section must be known.
func Parse(data []byte) (*Catalog, error) {
	var doc struct {
		Entries []Entry `yaml:"entries"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	c := &Catalog{items: make([]item, 0, len(doc.Entries))}
	defaults := DefaultVars()
	for i, e := range doc.Entries {
		if !slices.Contains(sections, e.Section) {
			return nil, fmt.Errorf("entry %d (%s): unknown section %q", i, e.Title, e.Section)
		}
		t, err := template.New(e.Title).Option("missingkey=error").Parse(e.Command)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, e.Title, err)
		}
		if err := t.Execute(&bytes.Buffer{}, defaults); err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, e.Title, err)
		}
		c.items = append(c.items, item{Entry: e, tmpl: t})
	}
	return c, nil
}

var builtin = sync.OnceValues(func() (*Catalog, error) {
	return Parse(catalogYAML)
})

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return builtin()
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Sections returns the section names in display order.
func (c *Catalog) Sections() []string {
	return slices.Clone(sections)
}

// Categories returns the categories of a section in first-seen order.
// An empty section lists categories across the whole catalog.
func (c *Catalog) Categories(section string) []string {
	var out []string
	for _, it := range c.items {
		if section != "" && it.Section != section {
			continue
		}
		if !slices.Contains(out, it.Category) {
			out = append(out, it.Category)
		}
	}
	return out
}

// Search returns matching entries with commands rendered against vars.
// The term is matched case-insensitively against the title, the rendered
// command and the description.
func (c *Catalog) Search(q Query, vars Vars) ([]Entry, error) {
	vars, err := vars.WithDefaults()
	if err != nil {
		return nil, err
	}
	term := strings.ToLower(q.Term)

	out := []Entry{}
	for _, it := range c.items {
		if q.Section != "" && it.Section != q.Section {
			continue
		}
		if q.Category != "" && q.Category != CategoryAll && it.Category != q.Category {
			continue
		}
		e, err := it.render(vars)
		if err != nil {
			return nil, err
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(e.Title), term) &&
			!strings.Contains(strings.ToLower(e.Command), term) &&
			!strings.Contains(strings.ToLower(e.Description), term) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (it item) render(vars Vars) (Entry, error) {
	var buf bytes.Buffer
	if err := it.tmpl.Execute(&buf, vars); err != nil {
		return Entry{}, fmt.Errorf("failed to render %q: %w", it.Title, err)
	}
	e := it.Entry
	e.Command = buf.String()
	return e, nil
}
