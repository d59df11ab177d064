package billing

import "context"

// Repository is the fetch collaborator for billing data. Credits, ledger,
// subscriptions and the catalog are fetched independently so that one
// failing source does not prevent the others from being reconciled.
type Repository interface {
	GetCreditsBalance(ctx context.Context) (*Balance, error)
	GetCreditsLedger(ctx context.Context) (*Ledger, error)
	ListSubscriptions(ctx context.Context) ([]*Subscription, error)
	ListCatalogPrices(ctx context.Context) ([]*Price, error)
	CancelSubscription(ctx context.Context, subscriptionID string) error
}
