// Package catalog holds checklist definitions: the embedded AWS cost
// checklist and user-supplied YAML files in the same format.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/costcheck/internal/model"
)

//go:embed aws.yaml
var awsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid checklist")

// Catalog is a named checklist definition. All items start unchecked.
type Catalog struct {
	Title       string          `yaml:"title"`
	Description string          `yaml:"description"`
	Sections    model.Checklist `yaml:"sections"`
}

// Default returns the built-in AWS cost optimization checklist.
func Default() Catalog {
	c, err := Parse(awsYAML)
	if err != nil {
		panic("catalog: embedded checklist: " + err.Error())
	}
	return c
}

// Load reads a catalog file. An empty path selects the default catalog.
func Load(path string) (Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read checklist: %w", err)
	}
	c, err := Parse(b)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(b []byte) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return Catalog{}, fmt.Errorf("yaml decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Validate checks ids are unique and every node is labelled.
func (c Catalog) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrInvalid)
	}
	if len(c.Sections) == 0 {
		return fmt.Errorf("%w: no sections", ErrInvalid)
	}
	sections := make(map[int]bool, len(c.Sections))
	items := make(map[string]bool)

	checkItems := func(where string, list []model.Item) error {
		for _, it := range list {
			if it.ID == "" {
				return fmt.Errorf("%w: %s: item without id", ErrInvalid, where)
			}
			if items[it.ID] {
				return fmt.Errorf("%w: duplicate item id %q", ErrInvalid, it.ID)
			}
			if strings.TrimSpace(it.Text) == "" {
				return fmt.Errorf("%w: item %q has no text", ErrInvalid, it.ID)
			}
			items[it.ID] = true
		}
		return nil
	}

	for _, sec := range c.Sections {
		if sections[sec.ID] {
			return fmt.Errorf("%w: duplicate section id %d", ErrInvalid, sec.ID)
		}
		sections[sec.ID] = true
		if strings.TrimSpace(sec.Title) == "" {
			return fmt.Errorf("%w: section %d has no title", ErrInvalid, sec.ID)
		}
		where := fmt.Sprintf("section %d", sec.ID)
		if err := checkItems(where, sec.Items); err != nil {
			return err
		}
		for _, sub := range sec.Subsections {
			if strings.TrimSpace(sub.Title) == "" {
				return fmt.Errorf("%w: %s: subsection %q has no title", ErrInvalid, where, sub.ID)
			}
			if len(sub.Items) == 0 {
				return fmt.Errorf("%w: %s: subsection %q is empty", ErrInvalid, where, sub.ID)
			}
			if err := checkItems(where+"/"+sub.ID, sub.Items); err != nil {
				return err
			}
		}
	}
	return nil
}
