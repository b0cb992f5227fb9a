// Package catalog holds the static matching tables the pipeline relies on:
// concept synonyms for requirement validation, default recommendations for
// gap-filling, and the fallback billing service split. The tables are data,
// not logic, so the matching algorithms stay uniform and testable.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yapay-ai/cloud-cost-optimizer/pkg/model"
)

//go:embed concepts.yaml
var conceptsYAML []byte

//go:embed defaults.yaml
var defaultsYAML []byte

//go:embed services.yaml
var servicesYAML []byte

// FallbackService describes one synthetic billing category and its share of
// the monthly budget.
type FallbackService struct {
	Service       string  `yaml:"service"`
	Share         float64 `yaml:"share"`
	Desc          string  `yaml:"desc"`
	ResourceID    string  `yaml:"resource_id"`
	UsageType     string  `yaml:"usage_type"`
	Unit          string  `yaml:"unit"`
	UsageQuantity float64 `yaml:"usage_quantity"`
}

// Catalog bundles the loaded tables.
type Catalog struct {
	// Concepts maps a requirement concept to its keyword synonyms.
	Concepts map[string][]string

	// Defaults are the fixed recommendations used to fill shortfalls, in order.
	Defaults []model.RecommendationItem

	// BannedPhrases disqualify a recommendation when present in its title.
	BannedPhrases []string

	// FallbackServices define the deterministic billing split.
	FallbackServices []FallbackService
}

type conceptsFile struct {
	Concepts map[string][]string `yaml:"concepts"`
}

type defaultsFile struct {
	BannedPhrases []string       `yaml:"banned_phrases"`
	Defaults      []defaultEntry `yaml:"defaults"`
}

type defaultEntry struct {
	Title                string   `yaml:"title"`
	Service              string   `yaml:"service"`
	PotentialSavings     int      `yaml:"potential_savings"`
	RecommendationType   string   `yaml:"recommendation_type"`
	Description          string   `yaml:"description"`
	RiskLevel            string   `yaml:"risk_level"`
	ImplementationEffort string   `yaml:"implementation_effort"`
	Steps                []string `yaml:"steps"`
	CloudProviders       []string `yaml:"cloud_providers"`
}

type servicesFile struct {
	Services []FallbackService `yaml:"services"`
}

// Load parses the embedded tables.
func Load() (*Catalog, error) {
	var concepts conceptsFile
	if err := yaml.Unmarshal(conceptsYAML, &concepts); err != nil {
		return nil, fmt.Errorf("parse concepts table: %w", err)
	}
	if len(concepts.Concepts) == 0 {
		return nil, fmt.Errorf("concepts table is empty")
	}

	var defaults defaultsFile
	if err := yaml.Unmarshal(defaultsYAML, &defaults); err != nil {
		return nil, fmt.Errorf("parse defaults table: %w", err)
	}
	if len(defaults.Defaults) == 0 {
		return nil, fmt.Errorf("defaults table is empty")
	}

	var services servicesFile
	if err := yaml.Unmarshal(servicesYAML, &services); err != nil {
		return nil, fmt.Errorf("parse services table: %w", err)
	}
	if len(services.Services) == 0 {
		return nil, fmt.Errorf("services table is empty")
	}

	items := make([]model.RecommendationItem, 0, len(defaults.Defaults))
	for _, d := range defaults.Defaults {
		items = append(items, model.RecommendationItem{
			Title:                d.Title,
			Service:              d.Service,
			PotentialSavings:     d.PotentialSavings,
			RecommendationType:   d.RecommendationType,
			Description:          d.Description,
			RiskLevel:            d.RiskLevel,
			ImplementationEffort: d.ImplementationEffort,
			Steps:                d.Steps,
			CloudProviders:       d.CloudProviders,
		})
	}

	return &Catalog{
		Concepts:         concepts.Concepts,
		Defaults:         items,
		BannedPhrases:    defaults.BannedPhrases,
		FallbackServices: services.Services,
	}, nil
}
