package billing

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/types"
)

// Subscription is the member's plan snapshot, normalized from either the
// studio backend or a processor-shaped payload nested under a container key.
type Subscription struct {
	ID                      string
	StudioID                string
	ProcessorSubscriptionID string
	Status                  string // normalized to lowercase
	PlanType                string // free-form, normalized to lowercase
	CurrentPeriodEnd        *time.Time
	CancelAtPeriodEnd       bool
	// Unlimited is the explicit flag when the payload carries one; plan-name
	// token matching happens in the entitlement resolver.
	Unlimited    bool
	HasUnlimited bool
}

// activeStatuses are the processor statuses under which a subscription
// grants entitlements
var activeStatuses = []string{"active", "trialing", "past_due"}

// IsActive reports whether the subscription currently grants entitlements
func (s *Subscription) IsActive() bool {
	return s != nil && lo.Contains(activeStatuses, s.Status)
}

// subscriptionContainerKeys are the processor-specific sub-objects a
// subscription payload may be nested under
var subscriptionContainerKeys = []string{
	"stripeSubscription",
	"stripe_subscription",
	"subscription",
	"account",
	"connectedAccount",
	"connected_account",
}

var (
	subIDKeys         = []string{"_id", "id", "subscriptionId", "subscription_id"}
	subStudioKeys     = []string{"studio", "studioId", "studio_id", "gym", "gymId", "gym_id"}
	processorIDKeys   = []string{"stripeSubscriptionId", "stripe_subscription_id", "processorSubscriptionId", "processor_subscription_id"}
	subStatusKeys     = []string{"status", "state", "subscriptionStatus", "subscription_status"}
	planTypeKeys      = []string{"planType", "plan_type", "plan", "tier", "nickname", "productName", "product_name", "name"}
	periodEndKeys     = []string{"currentPeriodEnd", "current_period_end", "periodEnd", "period_end", "expiresAt", "expires_at", "renewalDate", "renewal_date", "validUntil", "valid_until"}
	cancelAtEndKeys   = []string{"cancelAtPeriodEnd", "cancel_at_period_end", "willCancel", "will_cancel"}
	unlimitedFlagKeys = []string{"unlimited", "isUnlimited", "is_unlimited", "noLimit", "no_limit"}
	subscriptionsKeys = []string{"subscriptions", "items", "data", "results"}
)

// NormalizeSubscription converts one raw subscription payload into the fixed
// shape, searching the payload itself, its data envelope, and the known
// processor container keys in order so outer-level fields win.
func NormalizeSubscription(payload any) *Subscription {
	candidates := types.CandidateRecords(payload, subscriptionContainerKeys...)
	if len(candidates) == 0 {
		return nil
	}

	s := &Subscription{}

	s.ID, _ = types.PickStringAcross(candidates, subIDKeys...)

	// the studio reference may itself be an id or an embedded object
	if v, ok := types.PickAnyAcross(candidates, subStudioKeys...); ok {
		ref := types.RefFromAny[Studio](v)
		s.StudioID, _ = types.Resolve(ref, func(st *Studio) string { return st.ID })
	}

	s.ProcessorSubscriptionID, _ = types.PickStringAcross(candidates, processorIDKeys...)

	if status, ok := types.PickStringAcross(candidates, subStatusKeys...); ok {
		s.Status = strings.ToLower(strings.TrimSpace(status))
	}
	if planType, ok := types.PickStringAcross(candidates, planTypeKeys...); ok {
		s.PlanType = strings.ToLower(strings.TrimSpace(planType))
	}

	if v, ok := types.PickAnyAcross(candidates, periodEndKeys...); ok {
		s.CurrentPeriodEnd = types.TimestampFromAny(v)
	}

	s.CancelAtPeriodEnd, _ = types.PickBoolAcross(candidates, cancelAtEndKeys...)
	s.Unlimited, s.HasUnlimited = types.PickBoolAcross(candidates, unlimitedFlagKeys...)

	return s
}

// Studio mirrors the owning studio when it arrives embedded in a
// subscription payload
type Studio struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// NormalizeSubscriptionList converts a subscriptions payload into normalized
// records, tolerating a bare array, a single object, or an array nested
// under a known envelope key.
func NormalizeSubscriptionList(payload any) []*Subscription {
	records := types.AsRecords(payload)
	if rec, ok := types.AsRecord(payload); ok {
		for _, key := range subscriptionsKeys {
			if nested := types.AsRecords(rec[key]); nested != nil {
				records = nested
				break
			}
		}
	}

	subs := make([]*Subscription, 0, len(records))
	for _, rec := range records {
		if s := NormalizeSubscription(rec); s != nil {
			subs = append(subs, s)
		}
	}
	return subs
}

// ActiveSubscription picks the subscription that currently grants
// entitlements, preferring fully active over trialing over past_due, with
// source order breaking ties.
func ActiveSubscription(subs []*Subscription) *Subscription {
	for _, status := range activeStatuses {
		for _, s := range subs {
			if s != nil && s.Status == status {
				return s
			}
		}
	}
	return nil
}
