package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCatalogFlatPrices(t *testing.T) {
	payload := []any{
		map[string]any{
			"id":          "price_1",
			"unit_amount": float64(2500),
			"currency":    "gbp",
			"recurring":   map[string]any{"interval": "month"},
			"product": map[string]any{
				"name":        "8 Credits",
				"description": "Eight classes per month",
				"metadata":    map[string]any{"plan_type": "8_credits"},
			},
		},
		map[string]any{
			"id":          "price_2",
			"unitAmount":  "4500",
			"currency":    "gbp",
			"interval":    "month",
			"productName": "Unlimited",
		},
	}

	prices := NormalizeCatalog(payload)
	require.Len(t, prices, 2)

	assert.Equal(t, "price_1", prices[0].ID)
	assert.True(t, prices[0].HasAmount)
	assert.True(t, prices[0].UnitAmount.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, "month", prices[0].RecurringInterval)
	assert.Equal(t, "8 Credits", prices[0].ProductName)
	assert.Equal(t, "8_credits", prices[0].Metadata.Get("plan_type"))

	// numeric string amount and flat interval key
	assert.True(t, prices[1].UnitAmount.Equal(decimal.NewFromInt(4500)))
	assert.Equal(t, "month", prices[1].RecurringInterval)
	assert.Equal(t, "Unlimited", prices[1].ProductName)
}

func TestNormalizeCatalogProductWithNestedPrices(t *testing.T) {
	payload := map[string]any{
		"data": []any{
			map[string]any{
				"name":        "Memberships",
				"description": "Studio memberships",
				"metadata":    map[string]any{"category": "membership"},
				"prices": []any{
					map[string]any{"id": "p_low", "amount": float64(1000), "interval": "month"},
					map[string]any{"id": "p_high", "amount": float64(3000), "interval": "month"},
				},
			},
		},
	}

	prices := NormalizeCatalog(payload)
	require.Len(t, prices, 2)
	for _, p := range prices {
		assert.Equal(t, "Memberships", p.ProductName)
		assert.Equal(t, "Studio memberships", p.ProductDescription)
		assert.Equal(t, "membership", p.Metadata.Get("category"))
	}
	assert.Equal(t, "p_low", prices[0].ID)
	assert.Equal(t, "p_high", prices[1].ID)
}

func TestNormalizeCatalogSingleObject(t *testing.T) {
	prices := NormalizeCatalog(map[string]any{
		"id":     "price_solo",
		"amount": float64(999),
	})
	require.Len(t, prices, 1)
	assert.Equal(t, "price_solo", prices[0].ID)
	assert.False(t, prices[0].IsRecurring())
}

func TestNormalizeCatalogUnresolvableFields(t *testing.T) {
	prices := NormalizeCatalog([]any{map[string]any{"junk": true}})
	require.Len(t, prices, 1)
	assert.Empty(t, prices[0].ID)
	assert.False(t, prices[0].HasAmount)
	assert.Empty(t, prices[0].Currency)
}
