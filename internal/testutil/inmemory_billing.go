package testutil

import (
	"context"
	"sync"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/domain/billing"
	ierr "github.com/Gimmir/un1t-mobile-app-sub000/internal/errors"
)

// InMemoryBillingRepository serves fixed billing snapshots. Each source has
// its own error slot so partial-failure reconciliation can be exercised.
type InMemoryBillingRepository struct {
	mu sync.RWMutex

	Balance       *billing.Balance
	Ledger        *billing.Ledger
	Subscriptions []*billing.Subscription
	Catalog       []*billing.Price

	BalanceErr      error
	LedgerErr       error
	SubscriptionErr error
	CatalogErr      error

	Cancelled []string
}

func NewInMemoryBillingRepository() *InMemoryBillingRepository {
	return &InMemoryBillingRepository{}
}

func (r *InMemoryBillingRepository) GetCreditsBalance(_ context.Context) (*billing.Balance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.BalanceErr != nil {
		return nil, r.BalanceErr
	}
	return r.Balance, nil
}

func (r *InMemoryBillingRepository) GetCreditsLedger(_ context.Context) (*billing.Ledger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.LedgerErr != nil {
		return nil, r.LedgerErr
	}
	return r.Ledger, nil
}

func (r *InMemoryBillingRepository) ListSubscriptions(_ context.Context) ([]*billing.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.SubscriptionErr != nil {
		return nil, r.SubscriptionErr
	}
	return r.Subscriptions, nil
}

func (r *InMemoryBillingRepository) ListCatalogPrices(_ context.Context) ([]*billing.Price, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.CatalogErr != nil {
		return nil, r.CatalogErr
	}
	return r.Catalog, nil
}

func (r *InMemoryBillingRepository) CancelSubscription(_ context.Context, subscriptionID string) error {
	if subscriptionID == "" {
		return ierr.NewError("subscription id is required").
			Mark(ierr.ErrValidation)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Cancelled = append(r.Cancelled, subscriptionID)
	return nil
}
