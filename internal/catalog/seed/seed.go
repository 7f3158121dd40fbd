// Package seed holds the embedded canonical step content.
package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/insight-hunter/insight-hunter/internal/catalog"
)

//go:embed steps.yaml
var stepsYAML []byte

type document struct {
	Steps []stepEntry `yaml:"steps"`
}

type stepEntry struct {
	Slug     string `yaml:"slug"`
	Title    string `yaml:"title"`
	BodyHTML string `yaml:"body_html"`
	CTALabel string `yaml:"cta_label"`
	NextSlug string `yaml:"next_slug"`
}

// Steps decodes the embedded step content in authored order.
func Steps() ([]catalog.Step, error) {
	var doc document
	if err := yaml.Unmarshal(stepsYAML, &doc); err != nil {
		return nil, fmt.Errorf("decode steps.yaml: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("steps.yaml has no steps")
	}
	steps := make([]catalog.Step, 0, len(doc.Steps))
	for _, entry := range doc.Steps {
		if entry.Slug == "" || entry.Title == "" {
			return nil, fmt.Errorf("step %+v is missing slug or title", entry)
		}
		steps = append(steps, catalog.Step{
			Slug:     entry.Slug,
			Title:    entry.Title,
			BodyHTML: entry.BodyHTML,
			CTALabel: entry.CTALabel,
			NextSlug: entry.NextSlug,
		})
	}
	return steps, nil
}
