package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yapay-ai/cloud-cost-optimizer/pkg/model"
)

const (
	minRecommendations = 6
	maxRecommendations = 10

	// dedupPrefixLen is the number of title characters used as the
	// case-insensitive uniqueness key.
	dedupPrefixLen = 15
)

// dedupKey returns the lowercased prefix of a title used for uniqueness.
func dedupKey(title string) string {
	r := []rune(strings.ToLower(title))
	if len(r) > dedupPrefixLen {
		r = r[:dedupPrefixLen]
	}
	return string(r)
}

// PostProcess cleans up candidate recommendations: coerces numeric fields,
// drops blank-titled, banned and duplicate items (first occurrence wins),
// removes Database items for SQLite projects, keeps only positive-savings or
// governance items, sorts by savings descending, fills shortfalls from the
// defaults list, and truncates to the report limit.
func PostProcess(raw []map[string]any, isSQLite bool, banned []string, defaults []model.RecommendationItem) []model.RecommendationItem {
	var cleaned []model.RecommendationItem
	seen := make(map[string]struct{})

	for _, m := range raw {
		rec := coerceRecommendation(m)

		title := strings.TrimSpace(rec.Title)
		if title == "" {
			continue
		}

		key := dedupKey(title)
		if _, dup := seen[key]; dup {
			continue
		}

		if isBanned(title, banned) {
			continue
		}
		if isSQLite && rec.Service == "Database" {
			continue
		}

		if rec.PotentialSavings > 0 || rec.IsGovernance() {
			cleaned = append(cleaned, rec)
			seen[key] = struct{}{}
		}
	}

	sort.SliceStable(cleaned, func(i, j int) bool {
		return cleaned[i].PotentialSavings > cleaned[j].PotentialSavings
	})

	if len(cleaned) < minRecommendations {
		for _, d := range defaults {
			if len(cleaned) >= minRecommendations {
				break
			}
			key := dedupKey(d.Title)
			if _, dup := seen[key]; dup {
				continue
			}
			cleaned = append(cleaned, d)
			seen[key] = struct{}{}
		}
	}

	if len(cleaned) > maxRecommendations {
		cleaned = cleaned[:maxRecommendations]
	}
	return cleaned
}

// CapSavings uniformly scales every item's savings down when the aggregate
// exceeds 35% of the average monthly cost, protecting report credibility
// against overly optimistic output. Returns the resulting savings percentage.
func CapSavings(recs []model.RecommendationItem, avgMonthly float64) float64 {
	if avgMonthly <= 0 {
		return 0
	}

	total := 0
	for _, r := range recs {
		total += r.PotentialSavings
	}

	pct := float64(total) / avgMonthly * 100
	if pct <= maxSavingsPct {
		return pct
	}

	scale := maxSavingsPct / pct
	for i := range recs {
		recs[i].PotentialSavings = int(float64(recs[i].PotentialSavings) * scale)
	}
	return maxSavingsPct
}

const maxSavingsPct = 35.0

func isBanned(title string, banned []string) bool {
	lower := strings.ToLower(title)
	for _, phrase := range banned {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// coerceRecommendation converts a loosely typed candidate map into a
// RecommendationItem, tolerating float costs and missing descriptions.
func coerceRecommendation(m map[string]any) model.RecommendationItem {
	rec := model.RecommendationItem{
		Title:                str(m["title"]),
		Service:              str(m["service"]),
		CurrentCost:          num(m["current_cost"]),
		PotentialSavings:     num(m["potential_savings"]),
		RecommendationType:   str(m["recommendation_type"]),
		Description:          str(m["description"]),
		RiskLevel:            str(m["risk_level"]),
		ImplementationEffort: str(m["implementation_effort"]),
	}

	if rec.Description == "" {
		rec.Description = fmt.Sprintf("Optimization for %s.", rec.Service)
	}

	if steps, ok := m["steps"].([]any); ok {
		for _, s := range steps {
			if v := str(s); v != "" {
				rec.Steps = append(rec.Steps, v)
			}
		}
	}
	if providers, ok := m["cloud_providers"].([]any); ok {
		for _, p := range providers {
			if v := str(p); v != "" {
				rec.CloudProviders = append(rec.CloudProviders, v)
			}
		}
	}

	return rec
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func num(v any) int {
	f, _ := v.(float64)
	return int(f)
}
