package stripe

import (
	"github.com/stripe/stripe-go/v82"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/config"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/logger"
)

// Client wraps the payment processor SDK. It is only constructed when a
// secret key is configured; without one, billing data comes exclusively from
// the studio backend.
type Client struct {
	api    *stripe.Client
	logger *logger.Logger
}

// NewClient creates a new Stripe client, or nil when no key is configured
func NewClient(cfg *config.Configuration, log *logger.Logger) *Client {
	if cfg == nil || cfg.Stripe.SecretKey == "" {
		return nil
	}
	return &Client{
		api:    stripe.NewClient(cfg.Stripe.SecretKey, nil),
		logger: log,
	}
}
