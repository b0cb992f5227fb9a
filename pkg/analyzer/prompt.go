package analyzer

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/yapay-ai/cloud-cost-optimizer/pkg/model"
)

const exampleItem = `
[{
  "title": "Migrate MongoDB to Open-Source MongoDB",
  "service": "MongoDB",
  "current_cost": 900,
  "potential_savings": 450,
  "recommendation_type": "open_source",
  "description": "Migrate to open-source MongoDB, reducing costs and improving flexibility.",
  "implementation_effort": "medium",
  "risk_level": "medium",
  "steps": [
    "Assess MongoDB usage and determine if open-source is suitable",
    "Migrate to open-source MongoDB, ensuring data integrity",
    "Update application code to accommodate open-source MongoDB"
  ],
  "cloud_providers": [
    "AWS",
    "Azure",
    "GCP"
  ]
}]
`

// primaryCloudForAnalysis guesses the provider for the analysis prompt. The
// analysis prompt only distinguishes the three large providers.
func primaryCloudForAnalysis(stack map[string]string) string {
	var sb strings.Builder
	for layer, tool := range stack {
		sb.WriteString(strings.ToLower(layer))
		sb.WriteString(" ")
		sb.WriteString(strings.ToLower(tool))
		sb.WriteString(" ")
	}
	text := sb.String()

	switch {
	case strings.Contains(text, "azure"):
		return "Azure"
	case strings.Contains(text, "gcp") || strings.Contains(text, "google"):
		return "GCP"
	default:
		return "AWS"
	}
}

func buildAnalysisPrompt(profile *model.ProjectProfile, monthlyCost float64, budget int, breakdown map[string]float64) string {
	stackJSON, _ := json.Marshal(profile.TechStack)
	breakdownJSON, _ := json.MarshalIndent(breakdown, "", "  ")
	reqs := strings.Join(profile.NonFunctionalRequirements, ", ")
	primaryCloud := primaryCloudForAnalysis(profile.TechStack)

	variance := monthlyCost - float64(budget)
	status := "UNDER"
	if variance > 0 {
		status = "OVER"
	}

	return fmt.Sprintf(`You are a cloud cost optimization expert. Analyze the billing data and generate 8-12 optimization candidates.

Project: %s
Stack: %s
Reqs: %s
Primary Cloud: %s

Cost Context:
- Monthly: INR %.0f
- Budget: INR %d (%s by %.0f)

Breakdown: %s

INSTRUCTIONS:
1. Generate 8-12 items. Mix Technical, Governance, Security, and Cleanup.

2. CLOUD CONTEXT:
   - For "Rightsizing", "Security", and "Cleanup", use services native to %s (e.g., if AWS use CloudWatch/EC2; if Azure use Monitor/VMs).
   - For "Alternative Provider", you MUST suggest moving AWAY from %s (e.g. to DigitalOcean or Wasabi).

3. MANDATORY MULTI-CLOUD STRATEGY:
   - For generic advice that applies everywhere, list ["AWS", "Azure", "GCP"].
   - You MUST include at least 2 specific "Alternative Provider" recommendations.

4. Focus on:
   - Free Tier (if budget < 10k)
   - Open Source (if using paid Managed DBs)
   - Rightsizing (for general Compute)

5. Fill gaps with Governance items (Tagging, Alerts) if needed.
6. Anti-Patterns: No "Transfer Acceleration", No "SQLite DB Optimization".

Output JSON list ONLY. Format:
%s
`,
		profile.Name, stackJSON, reqs, primaryCloud,
		monthlyCost, budget, status, math.Abs(variance),
		breakdownJSON,
		primaryCloud, primaryCloud,
		exampleItem,
	)
}
