// Package content holds the portfolio data shown by the terminal: profile,
// projects and work experience.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Summary is one line of the about page; Highlight is styled with Role once typed.
type Summary struct {
	Text      string `yaml:"text" json:"text"`
	Highlight string `yaml:"highlight" json:"highlight,omitempty"`
	Role      string `yaml:"role" json:"role,omitempty"`
}

type Link struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
	URL   string `yaml:"url" json:"url"`
}

type Profile struct {
	Name     string    `yaml:"name" json:"name"`
	Identity string    `yaml:"identity" json:"identity"`
	ID       string    `yaml:"id" json:"id"`
	Summary  []Summary `yaml:"summary" json:"summary"`
	Mission  string    `yaml:"mission" json:"mission"`
	Motto    string    `yaml:"motto" json:"motto"`
	Links    []Link    `yaml:"links" json:"links"`
}

type Project struct {
	ID           string   `yaml:"id" json:"id"`
	Name         string   `yaml:"name" json:"name"`
	Description  []string `yaml:"description" json:"description"`
	Technologies []string `yaml:"technologies" json:"technologies"`
	URL          string   `yaml:"url" json:"url"`
	Repo         string   `yaml:"repo" json:"repo,omitempty"`
}

// HasLink reports whether the project points somewhere real.
func (p Project) HasLink() bool {
	return p.URL != "" && p.URL != "#"
}

type Experience struct {
	ID           string   `yaml:"id" json:"id"`
	Period       string   `yaml:"period" json:"period"`
	Role         string   `yaml:"role" json:"role"`
	Company      string   `yaml:"company" json:"company"`
	Description  []string `yaml:"description" json:"description"`
	Technologies []string `yaml:"technologies" json:"technologies"`
}

type Content struct {
	Profile    Profile      `yaml:"profile" json:"profile"`
	Projects   []Project    `yaml:"projects" json:"projects"`
	Experience []Experience `yaml:"experience" json:"experience"`
}

var ErrNoProjects = errors.New("content: at least one project is required")

// Default returns the embedded portfolio content.
func Default() *Content {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("content: embedded default is invalid: %v", err))
	}
	return c
}

// Load reads content from a YAML file, or returns the embedded default when
// path is empty.
func Load(path string) (*Content, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates YAML content.
func Parse(raw []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if len(c.Projects) == 0 {
		return nil, ErrNoProjects
	}
	for i, p := range c.Projects {
		if p.Name == "" {
			return nil, fmt.Errorf("content: project %d has no name", i+1)
		}
	}
	return &c, nil
}
