package rest

import (
	"context"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/domain/billing"
	ierr "github.com/Gimmir/un1t-mobile-app-sub000/internal/errors"
)

type billingRepository struct {
	client *Client
}

// NewBillingRepository returns a billing.Repository backed by the studio API
func NewBillingRepository(client *Client) billing.Repository {
	return &billingRepository{client: client}
}

func (r *billingRepository) GetCreditsBalance(ctx context.Context) (*billing.Balance, error) {
	payload, err := r.client.getJSON(ctx, "/v1/credits/balance")
	if err != nil {
		return nil, err
	}
	return billing.NormalizeBalance(payload), nil
}

func (r *billingRepository) GetCreditsLedger(ctx context.Context) (*billing.Ledger, error) {
	payload, err := r.client.getJSON(ctx, "/v1/credits/ledger")
	if err != nil {
		return nil, err
	}
	return billing.NormalizeLedger(payload), nil
}

func (r *billingRepository) ListSubscriptions(ctx context.Context) ([]*billing.Subscription, error) {
	payload, err := r.client.getJSON(ctx, "/v1/subscriptions")
	if err != nil {
		return nil, err
	}
	return billing.NormalizeSubscriptionList(payload), nil
}

func (r *billingRepository) ListCatalogPrices(ctx context.Context) ([]*billing.Price, error) {
	payload, err := r.client.getJSON(ctx, "/v1/billing/catalog")
	if err != nil {
		return nil, err
	}
	return billing.NormalizeCatalog(payload), nil
}

func (r *billingRepository) CancelSubscription(ctx context.Context, subscriptionID string) error {
	if subscriptionID == "" {
		return ierr.NewError("subscription id is required").
			WithHint("Cannot cancel without a subscription").
			Mark(ierr.ErrValidation)
	}
	return r.client.delete(ctx, "/v1/subscriptions/"+subscriptionID)
}
