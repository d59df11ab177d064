package billing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/types"
)

// Balance is the credits balance endpoint's snapshot
type Balance struct {
	Available *float64
	Total     *float64
	Expiry    string // raw value, may be free text
	ExpiresAt *time.Time
	// Unlimited is the explicit flag when the payload carries one
	Unlimited    bool
	HasUnlimited bool
}

// LedgerEntry is one credit-affecting transaction. Entries are opaque to the
// reconciliation layer beyond the amount used for the derived balance.
type LedgerEntry map[string]any

// Ledger is the credit history endpoint's snapshot. It serves as a fallback
// truth source when the balance endpoint lags behind a purchase.
type Ledger struct {
	Balance *float64
	Total   *float64
	Expiry  string
	Entries []LedgerEntry
}

// creditContainerKeys are the envelope variants credit payloads nest under
var creditContainerKeys = []string{"credits", "balance", "wallet", "account"}

var (
	availableKeys    = []string{"available", "balance", "remaining", "credits", "creditsAvailable", "credits_available", "availableCredits", "available_credits", "amount"}
	totalKeys        = []string{"total", "totalCredits", "total_credits", "creditTotal", "credit_total", "limit"}
	expiryKeys       = []string{"expiry", "expiresAt", "expires_at", "expiration", "validUntil", "valid_until"}
	ledgerListKeys   = []string{"ledger", "history", "entries", "transactions", "items", "data"}
	entryAmountKeys  = []string{"amount", "credits", "delta", "change", "value"}
	ledgerBalanceKey = []string{"balance", "available", "remaining", "credits"}
)

// NormalizeBalance converts a raw credits balance payload into the fixed
// shape. Unresolvable fields are explicitly nil.
func NormalizeBalance(payload any) *Balance {
	candidates := types.CandidateRecords(payload, creditContainerKeys...)
	if len(candidates) == 0 {
		return nil
	}

	b := &Balance{}

	if available, ok := types.PickNumberAcross(candidates, availableKeys...); ok {
		b.Available = &available
	}
	if total, ok := types.PickNumberAcross(candidates, totalKeys...); ok {
		b.Total = &total
	}
	if expiry, ok := types.PickStringAcross(candidates, expiryKeys...); ok {
		b.Expiry = expiry
		b.ExpiresAt = types.ParseTimestamp(expiry)
	}
	b.Unlimited, b.HasUnlimited = types.PickBoolAcross(candidates, unlimitedFlagKeys...)

	return b
}

// NormalizeLedger converts a raw credits ledger payload. When the payload
// reports no balance of its own, one is derived by summing the entries'
// amounts.
func NormalizeLedger(payload any) *Ledger {
	// a bare array is just the entries
	if entries, ok := payload.([]any); ok {
		l := &Ledger{Entries: entriesFrom(entries)}
		l.deriveBalance()
		return l
	}

	candidates := types.CandidateRecords(payload, creditContainerKeys...)
	if len(candidates) == 0 {
		return nil
	}

	l := &Ledger{}

	if balance, ok := types.PickNumberAcross(candidates, ledgerBalanceKey...); ok {
		l.Balance = &balance
	}
	if total, ok := types.PickNumberAcross(candidates, totalKeys...); ok {
		l.Total = &total
	}
	if expiry, ok := types.PickStringAcross(candidates, expiryKeys...); ok {
		l.Expiry = expiry
	}

	for _, rec := range candidates {
		if raw, ok := types.PickAny(rec, ledgerListKeys...); ok {
			if entries, isArray := raw.([]any); isArray {
				l.Entries = entriesFrom(entries)
				break
			}
		}
	}

	l.deriveBalance()
	return l
}

func entriesFrom(raw []any) []LedgerEntry {
	entries := make([]LedgerEntry, 0, len(raw))
	for _, item := range raw {
		if rec, ok := types.AsRecord(item); ok {
			entries = append(entries, LedgerEntry(rec))
		}
	}
	return entries
}

// deriveBalance sums entry amounts when the payload carried no balance
// field. Debits are expected to arrive as negative amounts; entries marked
// with a debit-like type flip positive amounts.
func (l *Ledger) deriveBalance() {
	if l.Balance != nil || len(l.Entries) == 0 {
		return
	}

	sum := decimal.Zero
	for _, entry := range l.Entries {
		amount, ok := types.PickNumber(entry, entryAmountKeys...)
		if !ok {
			continue
		}
		d := decimal.NewFromFloat(amount)
		if kind, ok := types.PickString(entry, "type", "kind", "direction"); ok {
			switch strings.ToLower(kind) {
			case "debit", "spend", "deduction", "usage":
				if d.IsPositive() {
					d = d.Neg()
				}
			}
		}
		sum = sum.Add(d)
	}

	derived, _ := sum.Float64()
	l.Balance = &derived
}
