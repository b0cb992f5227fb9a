package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/catalog"
)

func TestLoad(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	assert.Len(t, cat.Concepts, 6)
	assert.Contains(t, cat.Concepts, "scalability")
	assert.Contains(t, cat.Concepts["security"], "authentication")

	require.Len(t, cat.Defaults, 7)
	assert.Equal(t, "Configure Cloud Budget Alerts", cat.Defaults[0].Title)
	assert.Equal(t, "Data Retention Policy", cat.Defaults[6].Title)

	assert.Equal(t, []string{"transfer acceleration"}, cat.BannedPhrases)
}

func TestLoad_FallbackSharesSumToOne(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	require.Len(t, cat.FallbackServices, 5)
	assert.Equal(t, "Compute", cat.FallbackServices[0].Service)

	sum := 0.0
	for _, s := range cat.FallbackServices {
		assert.Positive(t, s.Share)
		assert.NotEmpty(t, s.Desc)
		sum += s.Share
	}
	assert.InDelta(t, 1.0, sum, 0.0001)
}

func TestLoad_DefaultsHaveGovernanceItems(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	governance := 0
	for _, d := range cat.Defaults {
		if d.IsGovernance() {
			governance++
			assert.Zero(t, d.PotentialSavings)
		}
	}
	assert.Equal(t, 3, governance)
}
