package billing

import (
	"math"
	"strings"
	"time"
)

// EntitlementSource names which snapshot produced the effective balance
type EntitlementSource string

const (
	EntitlementSourceBalance EntitlementSource = "balance"
	EntitlementSourceLedger  EntitlementSource = "ledger"
	EntitlementSourcePlan    EntitlementSource = "plan"
	EntitlementSourceNone    EntitlementSource = "none"
)

// Entitlement is the member's effective spendable credit position. Unlimited
// plans carry positive infinity, with real IEEE-754 semantics: +Inf compares
// greater than any finite class cost.
type Entitlement struct {
	Available float64
	Total     *float64
	Unlimited bool
	Expiry    string
	ExpiresAt *time.Time
	Source    EntitlementSource
}

// CanAfford reports whether the entitlement covers a class costing the given
// number of credits
func (e Entitlement) CanAfford(cost float64) bool {
	return e.Available >= cost
}

// unlimitedTokens mark a plan as unlimited when found as a case-insensitive
// substring of its plan-type or name
var unlimitedTokens = []string{
	"unlimited",
	"no limit",
	"no_limit",
	"infinite",
	"∞",
	"unbegrenzt",
	"illimité",
	"illimite",
	"ilimitado",
}

// IsUnlimitedPlan reports whether a plan-type or plan-name string denotes an
// unlimited tier
func IsUnlimitedPlan(planType string) bool {
	if planType == "" {
		return false
	}
	lowered := strings.ToLower(planType)
	for _, token := range unlimitedTokens {
		if strings.Contains(lowered, token) {
			return true
		}
	}
	return false
}

// ResolveEntitlement computes the effective spendable balance from the
// balance snapshot, the ledger snapshot, and the active subscription, any of
// which may be absent.
//
// Unlimited detection first: an explicit flag on the subscription or balance
// payload, or an unlimited token in the plan-type string, yields available =
// +Inf and a nil total. Otherwise the balance endpoint is preferred; when its
// value is absent, or is exactly zero while the ledger-derived balance is
// positive, the ledger value is used instead. The zero/positive special case
// covers a known backend lag between a purchase landing in the ledger and the
// balance endpoint catching up.
func ResolveEntitlement(balance *Balance, ledger *Ledger, sub *Subscription) Entitlement {
	e := Entitlement{Source: EntitlementSourceNone}

	if balance != nil {
		e.Expiry = balance.Expiry
		e.ExpiresAt = balance.ExpiresAt
	} else if ledger != nil {
		e.Expiry = ledger.Expiry
		e.ExpiresAt = nil
	}

	if isUnlimited(balance, sub) {
		e.Available = math.Inf(1)
		e.Total = nil
		e.Unlimited = true
		e.Source = EntitlementSourcePlan
		return e
	}

	var ledgerBalance *float64
	if ledger != nil {
		ledgerBalance = ledger.Balance
	}

	if balance != nil && balance.Available != nil {
		e.Available = *balance.Available
		e.Total = balance.Total
		e.Source = EntitlementSourceBalance

		if e.Available == 0 && ledgerBalance != nil && *ledgerBalance > 0 {
			e.Available = *ledgerBalance
			e.Source = EntitlementSourceLedger
			if e.Total == nil && ledger != nil {
				e.Total = ledger.Total
			}
		}
		return e
	}

	if ledgerBalance != nil {
		e.Available = *ledgerBalance
		e.Source = EntitlementSourceLedger
		if ledger != nil {
			e.Total = ledger.Total
		}
		return e
	}

	return e
}

func isUnlimited(balance *Balance, sub *Subscription) bool {
	if sub != nil && sub.HasUnlimited && sub.Unlimited {
		return true
	}
	if balance != nil && balance.HasUnlimited && balance.Unlimited {
		return true
	}
	if sub != nil && IsUnlimitedPlan(sub.PlanType) {
		return true
	}
	return false
}
