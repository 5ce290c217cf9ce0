// Package catalog holds the skill vocabulary, job listings and career profiles
// the analyzer works against. A Catalog is loaded once and treated as read-only.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Catalog struct {
	Skills  []string `yaml:"skills" validate:"required,dive,required,excludesall=\r\n"`
	Jobs    Jobs     `yaml:"jobs"`
	Careers Careers  `yaml:"careers"`
}

type Jobs struct {
	Items []*JobListing `validate:"dive"`
}

type JobListing struct {
	Title       string `yaml:"title" validate:"required,excludesall=\r\n"`
	Description string `yaml:"description"`
}

type Careers struct {
	Items []*CareerProfile `validate:"dive"`
}

type CareerProfile struct {
	Name   string   `yaml:"name" validate:"required,excludesall=\r\n"`
	Skills []string `yaml:"skills" validate:"required,dive,required,excludesall=\r\n"`
}

// Default returns the built-in catalog. Every call decodes a fresh copy.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("decoding embedded catalog: %v", err))
	}
	return c
}

// Load reads a YAML catalog file and validates it.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("catalog path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %q: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", path, err)
	}

	return c, nil
}

// Parse decodes a YAML catalog and validates it.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate checks that every entry of the catalog is usable. Titles, names
// and skills are single-line.
func (c *Catalog) Validate() error {
	if c == nil {
		return errors.New("catalog is nil")
	}

	for i, job := range c.Jobs.Items {
		if job == nil {
			return fmt.Errorf("validate catalog: job #%d is empty", i+1)
		}
	}
	for i, career := range c.Careers.Items {
		if career == nil {
			return fmt.Errorf("validate catalog: career #%d is empty", i+1)
		}
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("validate catalog: %w", err)
	}

	for _, skill := range c.Skills {
		if strings.TrimSpace(skill) == "" {
			return errors.New("validate catalog: blank skill in vocabulary")
		}
	}

	return nil
}

// Marshal renders the catalog in the same layout Parse accepts.
func (c *Catalog) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (j *Jobs) UnmarshalYAML(node *yaml.Node) error {
	return node.Decode(&j.Items)
}

func (j Jobs) MarshalYAML() (any, error) {
	return j.Items, nil
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) Titles() []string {
	titles := make([]string, 0, len(j.Items))
	for _, job := range j.Items {
		titles = append(titles, job.Title)
	}
	return titles
}

// Descriptions returns job descriptions in catalog order.
func (j *Jobs) Descriptions() []string {
	descriptions := make([]string, 0, len(j.Items))
	for _, job := range j.Items {
		descriptions = append(descriptions, job.Description)
	}
	return descriptions
}

func (j *Jobs) FindByTitle(title string) *JobListing {
	for _, job := range j.Items {
		if job.Title == title {
			return job
		}
	}
	return nil
}

func (c *Careers) UnmarshalYAML(node *yaml.Node) error {
	return node.Decode(&c.Items)
}

func (c Careers) MarshalYAML() (any, error) {
	return c.Items, nil
}

func (c *Careers) Len() int {
	return len(c.Items)
}

func (c *Careers) Names() []string {
	names := make([]string, 0, len(c.Items))
	for _, career := range c.Items {
		names = append(names, career.Name)
	}
	return names
}

func (c *Careers) FindByName(name string) *CareerProfile {
	for _, career := range c.Items {
		if career.Name == name {
			return career
		}
	}
	return nil
}
