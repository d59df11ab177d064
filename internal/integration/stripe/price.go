package stripe

import (
	"context"

	"github.com/stripe/stripe-go/v82"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/domain/billing"
	ierr "github.com/Gimmir/un1t-mobile-app-sub000/internal/errors"
)

// MapPrice converts a processor price object into the raw catalog payload
// family the billing normalizer consumes
func MapPrice(price *stripe.Price) map[string]any {
	if price == nil {
		return nil
	}

	out := map[string]any{
		"id":          price.ID,
		"unit_amount": price.UnitAmount,
		"currency":    string(price.Currency),
	}

	if price.Nickname != "" {
		out["nickname"] = price.Nickname
	}
	if price.Recurring != nil {
		out["recurring"] = map[string]any{
			"interval": string(price.Recurring.Interval),
		}
	}
	if price.Product != nil {
		product := map[string]any{
			"name":        price.Product.Name,
			"description": price.Product.Description,
		}
		if len(price.Product.Metadata) > 0 {
			metadata := make(map[string]any, len(price.Product.Metadata))
			for k, v := range price.Product.Metadata {
				metadata[k] = v
			}
			product["metadata"] = metadata
		}
		out["product"] = product
	}

	return out
}

// ListPrices fetches the active processor catalog and normalizes it
func (c *Client) ListPrices(ctx context.Context) ([]*billing.Price, error) {
	params := &stripe.PriceListParams{
		Active: stripe.Bool(true),
	}
	params.AddExpand("data.product")

	var raw []any
	for price, err := range c.api.V1Prices.List(ctx, params) {
		if err != nil {
			c.logger.Errorw("failed to list processor prices", "error", err)
			return nil, ierr.WithError(err).
				WithHint("Could not fetch the catalog from the payment processor").
				Mark(ierr.ErrSystem)
		}
		raw = append(raw, MapPrice(price))
	}
	return billing.NormalizeCatalog(raw), nil
}
