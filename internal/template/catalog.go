// Package template loads the static deployment template catalog.
package template

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/ashureev/forgebot/internal/domain"
)

// Template is a named, pre-filled parameter set.
type Template struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Params      map[string]any `json:"params"`
}

// RawParams converts the template's JSON params into the untyped record the
// normalizers consume. JSON numbers and booleans are stringified.
func (t Template) RawParams() domain.RawParams {
	raw := make(domain.RawParams, len(t.Params))
	for k, v := range t.Params {
		switch val := v.(type) {
		case string:
			raw[k] = val
		case float64:
			raw[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			raw[k] = strconv.FormatBool(val)
		default:
			raw[k] = fmt.Sprint(val)
		}
	}
	return raw
}

// Catalog is the template document: one ordered list per category. It is
// read-only after Load.
type Catalog struct {
	Metaplex []Template `json:"metaplex"`
	EVM      []Template `json:"evm"`
}

// Load reads and parses the catalog document. A missing or unparseable
// document is a startup failure.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &c, nil
}

// List returns the templates for a category, in document order.
func (c *Catalog) List(category domain.Category) []Template {
	switch category {
	case domain.CategoryMetaplex:
		return c.Metaplex
	case domain.CategoryEVM:
		return c.EVM
	default:
		return nil
	}
}

// Find looks a template up by category and id.
func (c *Catalog) Find(category domain.Category, id string) (Template, bool) {
	for _, t := range c.List(category) {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Count returns the total number of templates across categories.
func (c *Catalog) Count() int {
	return len(c.Metaplex) + len(c.EVM)
}
