package services

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brandhub/campaign-ops-backend/internal/models"
)

func TestComputeRollupLeaf(t *testing.T) {
	leaf := &models.Campaign{ID: "c1", BudgetPlanned: 500}
	spend := map[string]float64{"c1": 125}

	got := ComputeRollup(leaf, nil, spend)

	assert.Equal(t, "c1", got.CampaignID)
	assert.Equal(t, 500.0, got.BudgetPlanned)
	assert.Equal(t, 125.0, got.BudgetSpent)
	assert.Equal(t, 25.0, got.ProgressPercent)
}

func TestComputeRollupAggregatesChildren(t *testing.T) {
	parent := &models.Campaign{ID: "p", BudgetPlanned: 1000}
	children := []*models.Campaign{
		{ID: "a", BudgetPlanned: 300},
		{ID: "b", BudgetPlanned: 200},
		{ID: "c", BudgetPlanned: 0},
	}
	spend := map[string]float64{"p": 100, "a": 150, "b": 50}

	got := ComputeRollup(parent, children, spend)

	assert.Equal(t, 1500.0, got.BudgetPlanned)
	assert.Equal(t, 300.0, got.BudgetSpent)
	assert.Equal(t, 20.0, got.ProgressPercent)
}

func TestComputeRollupOrderIndependent(t *testing.T) {
	parent := &models.Campaign{ID: "p", BudgetPlanned: 100}
	children := []*models.Campaign{
		{ID: "a", BudgetPlanned: 10},
		{ID: "b", BudgetPlanned: 20},
		{ID: "c", BudgetPlanned: 30},
		{ID: "d", BudgetPlanned: 40},
	}
	spend := map[string]float64{"a": 1, "b": 2, "c": 3, "d": 4}

	want := ComputeRollup(parent, children, spend)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := append([]*models.Campaign(nil), children...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		assert.Equal(t, want, ComputeRollup(parent, shuffled, spend))
	}
}

func TestComputeRollupMissingSpendDefaultsToZero(t *testing.T) {
	parent := &models.Campaign{ID: "p", BudgetPlanned: 100}
	children := []*models.Campaign{{ID: "a", BudgetPlanned: 50}}

	got := ComputeRollup(parent, children, map[string]float64{})

	assert.Equal(t, 0.0, got.BudgetSpent)
	assert.Equal(t, 0.0, got.ProgressPercent)
}

func TestProgressPercent(t *testing.T) {
	cases := []struct {
		name           string
		planned, spent float64
		want           float64
	}{
		{"half", 200, 100, 50},
		{"exact", 100, 100, 100},
		{"overspend clamps to 100", 100, 250, 100},
		{"negative spend clamps to 0", 100, -50, 0},
		{"zero planned yields 0", 0, 500, 0},
		{"negative planned yields 0", -10, 500, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ProgressPercent(tc.planned, tc.spent))
		})
	}
}
