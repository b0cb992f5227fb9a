package profile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/model"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/profile"
)

var testConcepts = map[string][]string{
	"scalability":     {"scalab", "scale", "scalable", "scalability"},
	"security":        {"security", "secure", "authentication"},
	"cost efficiency": {"cost", "cost-effective"},
}

func TestSanitize_BudgetOverride(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected int
	}{
		{"rs prefix with dot", "Budget is Rs. 50,000 per month.", 50000},
		{"rs prefix no dot", "We have rs 5000 monthly.", 5000},
		{"inr prefix", "Budget INR 12000.", 12000},
		{"rupee symbol", "Around ₹7,500 each month.", 7500},
		{"rupees suffix", "We can spend 5000 rupees.", 5000},
		{"rs suffix", "About 3000 Rs for hosting.", 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &model.ProjectProfile{BudgetINRPerMonth: 999}
			got := profile.Sanitize(p, tt.source, testConcepts)
			assert.Equal(t, tt.expected, got.BudgetINRPerMonth)
		})
	}
}

func TestSanitize_BudgetKeptWhenTextHasNoAmount(t *testing.T) {
	p := &model.ProjectProfile{BudgetINRPerMonth: 10000}
	got := profile.Sanitize(p, "A small web shop with no stated budget.", testConcepts)
	assert.Equal(t, 10000, got.BudgetINRPerMonth)
}

func TestSanitize_Requirements(t *testing.T) {
	source := "An online store. Must handle 50000 users and scale well. Budget Rs. 5000."
	p := &model.ProjectProfile{
		NonFunctionalRequirements: []string{
			"50000 Users",      // numeric token present in text
			"highly scalable",  // concept synonym backed by "scale" in text
			"HIPAA Compliance", // nothing in text, dropped
			"99.99% Uptime",    // numbers absent from text, dropped
			"scale well",       // verbatim in text
		},
	}

	got := profile.Sanitize(p, source, testConcepts)

	assert.Contains(t, got.NonFunctionalRequirements, "50000 Users")
	assert.Contains(t, got.NonFunctionalRequirements, "Highly Scalable")
	assert.NotContains(t, got.NonFunctionalRequirements, "HIPAA Compliance")
	assert.NotContains(t, got.NonFunctionalRequirements, "99.99% Uptime")
}

func TestSanitize_RequirementsDeduplicated(t *testing.T) {
	source := "A secure portal with authentication."
	p := &model.ProjectProfile{
		NonFunctionalRequirements: []string{"Security", "security", "SECURITY"},
	}

	got := profile.Sanitize(p, source, testConcepts)
	assert.Equal(t, []string{"Security"}, got.NonFunctionalRequirements)
}

func TestSanitize_TechStack(t *testing.T) {
	source := "A shop built with React and PostgreSQL."
	p := &model.ProjectProfile{
		TechStack: map[string]string{
			"frontend": "React",
			"database": "PostgreSQL",
			"cache":    "Redis",
			"queue":    "",
		},
	}

	got := profile.Sanitize(p, source, testConcepts)

	assert.Equal(t, "React", got.TechStack["frontend"])
	assert.Equal(t, "PostgreSQL", got.TechStack["database"])
	assert.Equal(t, model.NotSpecified, got.TechStack["cache"])
	assert.Equal(t, model.NotSpecified, got.TechStack["queue"])
}

func TestSanitize_DescriptionIsFirstSentence(t *testing.T) {
	source := "A video streaming platform. It serves 4K content.\nBudget is flexible."
	p := &model.ProjectProfile{Description: "whatever the model said"}

	got := profile.Sanitize(p, source, testConcepts)
	assert.Equal(t, "A video streaming platform", got.Description)
}

func TestSanitize_Idempotent(t *testing.T) {
	source := "A secure shop using React. Must scale to 1000 users. Budget Rs. 8,000."
	p := &model.ProjectProfile{
		Name:              "Shop",
		BudgetINRPerMonth: 1,
		Description:       "guess",
		TechStack:         map[string]string{"frontend": "React", "database": "MySQL"},
		NonFunctionalRequirements: []string{"1000 users", "scalability", "gdpr"},
	}

	once := profile.Sanitize(p, source, testConcepts)

	clone := &model.ProjectProfile{
		Name:                      once.Name,
		BudgetINRPerMonth:         once.BudgetINRPerMonth,
		Description:               once.Description,
		TechStack:                 map[string]string{},
		NonFunctionalRequirements: append([]string(nil), once.NonFunctionalRequirements...),
	}
	for k, v := range once.TechStack {
		clone.TechStack[k] = v
	}

	twice := profile.Sanitize(clone, source, testConcepts)

	require.Equal(t, once.BudgetINRPerMonth, twice.BudgetINRPerMonth)
	assert.Equal(t, once.Description, twice.Description)
	assert.Equal(t, once.NonFunctionalRequirements, twice.NonFunctionalRequirements)
	assert.Equal(t, once.TechStack["frontend"], twice.TechStack["frontend"])
}
