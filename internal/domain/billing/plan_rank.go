package billing

import (
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/types"
)

// RankedPrice is a subscription-eligible price positioned within the catalog
// ordering, classified relative to the member's current plan.
type RankedPrice struct {
	Price    *Price
	Rank     int
	PlanType string
	Change   types.PlanChange
}

// planTypeMetadataKeys are checked on price metadata before falling back to
// name inference
var planTypeMetadataKeys = []string{"plan_type", "planType", "type", "tier"}

var creditsPattern = regexp.MustCompile(`(\d+)\s*credits?`)

// PlanTypeOf derives the plan-type label for a price: explicit metadata
// first, then product-name heuristics (an unlimited token, or a leading
// number before "credits").
func PlanTypeOf(p *Price) string {
	for _, key := range planTypeMetadataKeys {
		if v := p.Metadata.Get(key); v != "" {
			return normalizePlanType(v)
		}
	}

	name := strings.ToLower(p.ProductName)
	if IsUnlimitedPlan(name) {
		return "unlimited"
	}
	if m := creditsPattern.FindStringSubmatch(name); m != nil {
		return m[1] + "_credits"
	}
	return normalizePlanType(name)
}

// normalizePlanType lowercases and collapses separators so that
// "8 Credits", "8-credits" and "8_credits" all compare equal
func normalizePlanType(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}

func planTypesMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	return IsUnlimitedPlan(a) && IsUnlimitedPlan(b)
}

// RankPlans orders the subscription-eligible catalog prices ascending by
// unit amount and classifies each entry against the current subscription's
// plan-type string. Upgrade and downgrade are only assigned when a current
// rank was located; otherwise every entry is unknown.
func RankPlans(prices []*Price, currentPlanType string) []*RankedPrice {
	recurring := lo.Filter(prices, func(p *Price, _ int) bool {
		return p != nil && p.IsRecurring() && p.HasAmount
	})

	ranked := lo.Map(recurring, func(p *Price, _ int) *RankedPrice {
		return &RankedPrice{Price: p, PlanType: PlanTypeOf(p)}
	})

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Price.UnitAmount.LessThan(ranked[j].Price.UnitAmount)
	})

	current := normalizePlanType(currentPlanType)
	currentRank := -1
	for i, rp := range ranked {
		rp.Rank = i
		if currentRank == -1 && planTypesMatch(rp.PlanType, current) {
			currentRank = i
		}
	}

	for _, rp := range ranked {
		switch {
		case currentRank == -1:
			rp.Change = types.PlanChangeUnknown
		case rp.Rank == currentRank || planTypesMatch(rp.PlanType, current):
			rp.Change = types.PlanChangeCurrent
		case rp.Rank > currentRank:
			rp.Change = types.PlanChangeUpgrade
		default:
			rp.Change = types.PlanChangeDowngrade
		}
	}

	return ranked
}
