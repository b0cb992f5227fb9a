package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/yapay-ai/cloud-cost-optimizer/pkg/catalog"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/llm"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/model"
)

const (
	billingMaxTokens = 2500
	monthCount       = 4
	defaultBudget    = 5000
)

// Generator synthesizes billing records for a profile.
type Generator struct {
	client  llm.Completer
	catalog *catalog.Catalog
	logger  *slog.Logger
	rng     *rand.Rand
	now     func() time.Time
}

// NewGenerator creates a billing generator. rng may be nil, in which case a
// time-seeded source is used.
func NewGenerator(client llm.Completer, cat *catalog.Catalog, logger *slog.Logger, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{client: client, catalog: cat, logger: logger, rng: rng, now: time.Now}
}

// Generate requests billing records from the completion endpoint, repairs and
// rescales them to the budget, and falls back to the deterministic dataset
// when the endpoint is unusable or returns nothing salvageable. The result is
// never empty.
func (g *Generator) Generate(ctx context.Context, profile *model.ProjectProfile) []model.BillingRecord {
	budget := profile.BudgetINRPerMonth
	if budget <= 0 {
		budget = defaultBudget
	}

	isSQLite := profile.IsSQLite()
	months := RecentMonths(monthCount, g.now())

	prompt := buildBillingPrompt(profile, budget, months, isSQLite)
	g.logger.Info("generating billing records", "budget", budget, "sqlite", isSQLite)

	payload, ok := llm.QueryJSON(ctx, g.client, prompt, billingMaxTokens)
	if !ok {
		g.logger.Warn("billing generation failed, using fallback data")
		return Fallback(budget, months, isSQLite, g.catalog.FallbackServices)
	}

	var raw []map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		g.logger.Warn("billing output is not a record list, using fallback data")
		return Fallback(budget, months, isSQLite, g.catalog.FallbackServices)
	}

	valid := Repair(raw)
	if len(valid) == 0 {
		g.logger.Warn("no valid billing records, using fallback data")
		return Fallback(budget, months, isSQLite, g.catalog.FallbackServices)
	}

	return Rescale(valid, budget, months, g.rng)
}

// PrimaryCloud guesses the dominant provider from the tech stack. AWS is the
// default when nothing else matches.
func PrimaryCloud(stack map[string]string) string {
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
	case strings.Contains(text, "digitalocean") || strings.Contains(text, "ocean"):
		return "DigitalOcean"
	case strings.Contains(text, "oracle"):
		return "Oracle Cloud"
	default:
		return "AWS"
	}
}

func buildBillingPrompt(profile *model.ProjectProfile, budget int, months []string, isSQLite bool) string {
	stackJSON, _ := json.Marshal(profile.TechStack)
	primaryCloud := PrimaryCloud(profile.TechStack)

	sqliteNote := "No"
	dbNote := "(AND Database)"
	if isSQLite {
		sqliteNote = "Yes (No Database costs)"
		dbNote = ""
	}

	return fmt.Sprintf(`
You are a Cloud Billing Simulation Engine.
Generate a realistic JSON billing invoice for a cloud project.

PROJECT CONTEXT:
- Name: %q
- Tech Stack: %s
- Budget Goal: ~%d INR/month (Total ~%d for %d months)
- Months to Cover: %s
- Uses SQLite? %s
- PRIMARY CLOUD PROVIDER: %s

INSTRUCTIONS:
1. Generate exactly 15-20 billing records distributed across the %d months.
2. STRICTLY use services valid for %s (e.g., if AWS use EC2/S3/RDS; if Azure use VMs/Blob/SQL).
3. VARY usage and costs slightly month-to-month (don't make them identical).
4. Use REALISTIC resource names and descriptions (e.g., "db-prod-replica-01", "High-IOPS SSD").
5. Services to Include: Compute, Storage, Networking, Monitoring. %s
6. COSTING: Try to aim for the monthly budget, but accuracy isn't critical (math will be fixed later).

REQUIRED JSON STRUCTURE:
[
  {
    "month": "2025-01",
    "service": "EC2",
    "resource_id": "i-ecommerce-web-01",
    "region": "ap-south-1",
    "usage_type": "Linux/UNIX (on-demand)",
    "usage_quantity": 720,
    "unit": "hours",
    "cost_inr": 900,
    "desc": "Ecommerce web server"
  }
]

Return ONLY the JSON array.
`,
		profile.Name, stackJSON, budget, budget*len(months), len(months),
		strings.Join(months, ", "), sqliteNote, primaryCloud,
		len(months), primaryCloud, dbNote,
	)
}
