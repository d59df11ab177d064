package service

import (
	"context"

	"github.com/sourcegraph/conc"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/cache"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/config"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/domain/billing"
	ierr "github.com/Gimmir/un1t-mobile-app-sub000/internal/errors"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/logger"
)

// MembershipView is the member's reconciled billing position: the effective
// credit entitlement, the subscription currently granting it, and the catalog
// ranked against that subscription's plan tier.
type MembershipView struct {
	Entitlement  billing.Entitlement
	Subscription *billing.Subscription
	Plans        []*billing.RankedPrice
}

// MembershipService reconciles the billing snapshots into a MembershipView
type MembershipService struct {
	billing billing.Repository
	cache   cache.Cache
	cfg     *config.Configuration
	logger  *logger.Logger
}

func NewMembershipService(
	b billing.Repository,
	c cache.Cache,
	cfg *config.Configuration,
	log *logger.Logger,
) *MembershipService {
	return &MembershipService{
		billing: b,
		cache:   c,
		cfg:     cfg,
		logger:  log,
	}
}

// Refresh fetches the four billing sources in parallel and reconciles them.
// Each fetch settles independently: a failing source is logged and treated as
// absent, so a catalog outage cannot blank the member's credit balance.
func (s *MembershipService) Refresh(ctx context.Context) (*MembershipView, error) {
	var (
		balance *billing.Balance
		ledger  *billing.Ledger
		subs    []*billing.Subscription
		catalog []*billing.Price

		balanceErr, ledgerErr, subsErr, catalogErr error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		if balance, balanceErr = s.balanceCached(ctx); balanceErr != nil {
			s.logger.Warnw("credits balance fetch failed", "error", balanceErr)
			balance = nil
		}
	})
	wg.Go(func() {
		if ledger, ledgerErr = s.ledgerCached(ctx); ledgerErr != nil {
			s.logger.Warnw("credits ledger fetch failed", "error", ledgerErr)
			ledger = nil
		}
	})
	wg.Go(func() {
		if subs, subsErr = s.subscriptionsCached(ctx); subsErr != nil {
			s.logger.Warnw("subscription fetch failed", "error", subsErr)
			subs = nil
		}
	})
	wg.Go(func() {
		if catalog, catalogErr = s.catalogCached(ctx); catalogErr != nil {
			s.logger.Warnw("catalog fetch failed", "error", catalogErr)
			catalog = nil
		}
	})
	wg.Wait()

	if balanceErr != nil && ledgerErr != nil && subsErr != nil && catalogErr != nil {
		return nil, ierr.NewError("all billing sources failed").
			WithHint("Could not fetch any billing data from the backend").
			Mark(ierr.ErrSystem)
	}

	sub := billing.ActiveSubscription(subs)

	view := &MembershipView{
		Entitlement:  billing.ResolveEntitlement(balance, ledger, sub),
		Subscription: sub,
	}

	currentPlanType := ""
	if sub != nil {
		currentPlanType = sub.PlanType
	}
	view.Plans = billing.RankPlans(catalog, currentPlanType)

	return view, nil
}

// CancelSubscription cancels the member's subscription and drops the
// snapshots the mutation invalidates
func (s *MembershipService) CancelSubscription(ctx context.Context, subscriptionID string) error {
	if subscriptionID == "" {
		return ierr.NewError("subscription id is required").
			Mark(ierr.ErrValidation)
	}

	if err := s.billing.CancelSubscription(ctx, subscriptionID); err != nil {
		return err
	}

	s.cache.DeleteByPrefix(ctx, cache.PrefixSubscription)
	s.cache.DeleteByPrefix(ctx, cache.PrefixCredits)
	s.cache.DeleteByPrefix(ctx, cache.PrefixLedger)
	s.logger.Infow("cancelled subscription", "subscription_id", subscriptionID)
	return nil
}

func (s *MembershipService) balanceCached(ctx context.Context) (*billing.Balance, error) {
	key := cache.PrefixCredits + "balance"
	if cached, found := s.cache.Get(ctx, key); found {
		if b, ok := cached.(*billing.Balance); ok {
			return b, nil
		}
	}
	b, err := s.billing.GetCreditsBalance(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, b, s.cfg.Cache.TTL)
	return b, nil
}

func (s *MembershipService) ledgerCached(ctx context.Context) (*billing.Ledger, error) {
	key := cache.PrefixLedger + "entries"
	if cached, found := s.cache.Get(ctx, key); found {
		if l, ok := cached.(*billing.Ledger); ok {
			return l, nil
		}
	}
	l, err := s.billing.GetCreditsLedger(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, l, s.cfg.Cache.TTL)
	return l, nil
}

func (s *MembershipService) subscriptionsCached(ctx context.Context) ([]*billing.Subscription, error) {
	key := cache.PrefixSubscription + "list"
	if cached, found := s.cache.Get(ctx, key); found {
		if subs, ok := cached.([]*billing.Subscription); ok {
			return subs, nil
		}
	}
	subs, err := s.billing.ListSubscriptions(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, subs, s.cfg.Cache.TTL)
	return subs, nil
}

func (s *MembershipService) catalogCached(ctx context.Context) ([]*billing.Price, error) {
	key := cache.PrefixCatalog + "prices"
	if cached, found := s.cache.Get(ctx, key); found {
		if prices, ok := cached.([]*billing.Price); ok {
			return prices, nil
		}
	}
	prices, err := s.billing.ListCatalogPrices(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, prices, s.cfg.Cache.TTL)
	return prices, nil
}
