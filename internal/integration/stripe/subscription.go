package stripe

import (
	"context"

	"github.com/stripe/stripe-go/v82"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/domain/billing"
	ierr "github.com/Gimmir/un1t-mobile-app-sub000/internal/errors"
)

// MapSubscription converts a processor subscription object into the same raw
// payload family the billing normalizer consumes, so processor-sourced data
// and backend data reconcile through one code path.
func MapSubscription(sub *stripe.Subscription) map[string]any {
	if sub == nil {
		return nil
	}

	out := map[string]any{
		"stripe_subscription_id": sub.ID,
		"status":                 string(sub.Status),
		"cancel_at_period_end":   sub.CancelAtPeriodEnd,
	}

	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return out
	}

	item := sub.Items.Data[0]
	if item.CurrentPeriodEnd > 0 {
		out["current_period_end"] = item.CurrentPeriodEnd
	}

	price := item.Price
	if price == nil {
		return out
	}

	if price.Nickname != "" {
		out["planType"] = price.Nickname
	}
	if price.Product != nil {
		if _, ok := out["planType"]; !ok && price.Product.Name != "" {
			out["planType"] = price.Product.Name
		}
		if v, ok := price.Product.Metadata["unlimited"]; ok {
			out["unlimited"] = v
		}
	}

	return out
}

// ListSubscriptions fetches the customer's processor subscriptions and
// normalizes them
func (c *Client) ListSubscriptions(ctx context.Context, customerID string) ([]*billing.Subscription, error) {
	if customerID == "" {
		return nil, ierr.NewError("customer id is required").
			WithHint("Cannot list processor subscriptions without a customer").
			Mark(ierr.ErrValidation)
	}

	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
	}
	params.AddExpand("data.items.data.price.product")

	var subs []*billing.Subscription
	for sub, err := range c.api.V1Subscriptions.List(ctx, params) {
		if err != nil {
			c.logger.Errorw("failed to list processor subscriptions",
				"error", err,
				"customer_id", customerID,
			)
			return nil, ierr.WithError(err).
				WithHint("Could not fetch subscriptions from the payment processor").
				Mark(ierr.ErrSystem)
		}
		if normalized := billing.NormalizeSubscription(MapSubscription(sub)); normalized != nil {
			subs = append(subs, normalized)
		}
	}
	return subs, nil
}
