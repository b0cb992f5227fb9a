// Package profile turns a free-text project description into a sanitized
// ProjectProfile. Extraction is advisory; every field is re-derived or
// re-verified against the source text before it is trusted.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/yapay-ai/cloud-cost-optimizer/pkg/catalog"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/llm"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/model"
)

const extractMaxTokens = 800

// Extractor drives profile extraction against a completion endpoint.
type Extractor struct {
	client  llm.Completer
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewExtractor creates a profile extractor.
func NewExtractor(client llm.Completer, cat *catalog.Catalog, logger *slog.Logger) *Extractor {
	return &Extractor{client: client, catalog: cat, logger: logger}
}

// Extract requests a structured profile for the description and sanitizes it
// against the source text. Returns an error when the completion fails, the
// output is not JSON, or required fields are missing.
func (e *Extractor) Extract(ctx context.Context, description string) (*model.ProjectProfile, error) {
	prompt := buildExtractionPrompt(description)

	e.logger.Info("analyzing description")
	payload, ok := llm.QueryJSON(ctx, e.client, prompt, extractMaxTokens)
	if !ok {
		return nil, fmt.Errorf("profile extraction failed")
	}

	raw, err := decodeCandidate(payload)
	if err != nil {
		return nil, err
	}

	return Sanitize(raw, description, e.catalog.Concepts), nil
}

// decodeCandidate checks the required structure and coerces loose types
// (float budgets, non-string stack values) into a profile.
func decodeCandidate(payload json.RawMessage) (*model.ProjectProfile, error) {
	var m map[string]any
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	required := []string{"name", "budget_inr_per_month", "description", "tech_stack", "non_functional_requirements"}
	for _, k := range required {
		if _, ok := m[k]; !ok {
			return nil, fmt.Errorf("profile missing field %q", k)
		}
	}

	p := &model.ProjectProfile{
		Name:        asString(m["name"]),
		Description: asString(m["description"]),
		TechStack:   map[string]string{},
	}

	if b, ok := m["budget_inr_per_month"].(float64); ok {
		p.BudgetINRPerMonth = int(b)
	}

	if stack, ok := m["tech_stack"].(map[string]any); ok {
		for layer, tool := range stack {
			p.TechStack[layer] = asString(tool)
		}
	}

	if nfrs, ok := m["non_functional_requirements"].([]any); ok {
		for _, nfr := range nfrs {
			if s := asString(nfr); s != "" {
				p.NonFunctionalRequirements = append(p.NonFunctionalRequirements, s)
			}
		}
	}

	return p, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func buildExtractionPrompt(description string) string {
	return fmt.Sprintf(`
You are an expert cloud architect.

Extract a STRICT JSON object from the project description below.

RULES:
- Output ONLY valid JSON (no markdown, no comments, no extra text)
- Do NOT invent technologies
- Extract ONLY technologies explicitly mentioned in the description
- budget_inr_per_month MUST be an integer

REQUIRED JSON STRUCTURE:
{
  "name": "Concise project name (2-4 words)",
  "budget_inr_per_month": 0,
  "description": "One-line summary of the project",
  "tech_stack": {
  },
  "non_functional_requirements": []
}

TECH STACK RULES:
- Populate tech_stack as dynamic key-value pairs
- Example: if React is mentioned -> "frontend": "React"
- Do NOT include unused or missing technologies
- Do NOT add empty values

NON-FUNCTIONAL REQUIREMENTS RULES:
- Extract explicitly mentioned REQUIREMENTS and METRICS (very important)
- Look for: Data volume (TB/PB), Traffic patterns (High/Low), Compliance (HIPAA), or Usage (Video/Static)
- ONLY include requirements explicitly stated in the text.
- If nothing is mentioned, return an empty list [].
- Use Title Case strings

BUDGET RULE:
- If explicitly mentioned, extract exactly
- Otherwise estimate: Small = 10000, Medium = 50000

Project Description:
%s

Return ONLY the JSON object.
`, description)
}
