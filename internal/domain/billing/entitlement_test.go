package billing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEntitlementUnlimited(t *testing.T) {
	tests := []struct {
		name    string
		balance *Balance
		sub     *Subscription
	}{
		{
			name: "explicit flag on subscription",
			sub:  &Subscription{Status: "active", Unlimited: true, HasUnlimited: true},
		},
		{
			name:    "explicit flag on balance",
			balance: &Balance{Unlimited: true, HasUnlimited: true},
		},
		{
			name: "token in plan type",
			sub:  &Subscription{Status: "active", PlanType: "unlimited monthly"},
		},
		{
			name: "localized token",
			sub:  &Subscription{Status: "active", PlanType: "tarif illimité"},
		},
		{
			name: "infinity symbol",
			sub:  &Subscription{Status: "active", PlanType: "∞ pass"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveEntitlement(tt.balance, nil, tt.sub)
			assert.True(t, got.Unlimited)
			assert.True(t, math.IsInf(got.Available, 1))
			assert.Nil(t, got.Total)
			assert.Equal(t, EntitlementSourcePlan, got.Source)

			// real infinity semantics, not a large sentinel
			assert.True(t, got.Available > math.MaxFloat64)
			assert.True(t, got.CanAfford(1e9))
		})
	}
}

func TestResolveEntitlementBalancePreferred(t *testing.T) {
	got := ResolveEntitlement(
		&Balance{Available: f64(8), Total: f64(12)},
		&Ledger{Balance: f64(20)},
		&Subscription{Status: "active", PlanType: "8_credits"},
	)
	assert.Equal(t, float64(8), got.Available)
	assert.Equal(t, float64(12), *got.Total)
	assert.Equal(t, EntitlementSourceBalance, got.Source)
	assert.False(t, got.Unlimited)
}

func TestResolveEntitlementLedgerFallback(t *testing.T) {
	t.Run("zero balance with positive ledger", func(t *testing.T) {
		got := ResolveEntitlement(
			&Balance{Available: f64(0)},
			&Ledger{Balance: f64(12)},
			nil,
		)
		assert.Equal(t, float64(12), got.Available)
		assert.Equal(t, EntitlementSourceLedger, got.Source)
	})

	t.Run("zero balance with zero ledger stays zero", func(t *testing.T) {
		got := ResolveEntitlement(
			&Balance{Available: f64(0)},
			&Ledger{Balance: f64(0)},
			nil,
		)
		assert.Equal(t, float64(0), got.Available)
		assert.Equal(t, EntitlementSourceBalance, got.Source)
	})

	t.Run("absent balance endpoint", func(t *testing.T) {
		got := ResolveEntitlement(nil, &Ledger{Balance: f64(5)}, nil)
		assert.Equal(t, float64(5), got.Available)
		assert.Equal(t, EntitlementSourceLedger, got.Source)
	})

	t.Run("positive balance is never overridden", func(t *testing.T) {
		got := ResolveEntitlement(
			&Balance{Available: f64(3)},
			&Ledger{Balance: f64(99)},
			nil,
		)
		assert.Equal(t, float64(3), got.Available)
		assert.Equal(t, EntitlementSourceBalance, got.Source)
	})
}

func TestResolveEntitlementNothingAvailable(t *testing.T) {
	got := ResolveEntitlement(nil, nil, nil)
	assert.Equal(t, float64(0), got.Available)
	assert.Equal(t, EntitlementSourceNone, got.Source)
	assert.False(t, got.Unlimited)
}

func TestIsUnlimitedPlan(t *testing.T) {
	assert.True(t, IsUnlimitedPlan("UNLIMITED"))
	assert.True(t, IsUnlimitedPlan("no limit plan"))
	assert.True(t, IsUnlimitedPlan("∞"))
	assert.False(t, IsUnlimitedPlan("8_credits"))
	assert.False(t, IsUnlimitedPlan(""))
}
