package service

import (
	"context"
	"math"
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/cache"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/config"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/domain/billing"
	ierr "github.com/Gimmir/un1t-mobile-app-sub000/internal/errors"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/logger"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/testutil"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/types"
)

type MembershipServiceSuite struct {
	suite.Suite
	ctx     context.Context
	repo    *testutil.InMemoryBillingRepository
	service *MembershipService
}

func TestMembershipServiceSuite(t *testing.T) {
	suite.Run(t, new(MembershipServiceSuite))
}

func (s *MembershipServiceSuite) SetupTest() {
	cfg := config.GetDefaultConfig()
	log, err := logger.NewLogger(cfg)
	s.Require().NoError(err)

	s.ctx = testutil.SetupContext()
	s.repo = testutil.NewInMemoryBillingRepository()
	s.service = NewMembershipService(
		s.repo,
		cache.NewInMemoryCache(cfg),
		cfg,
		log,
	)
}

func recurringPrice(id string, amount int64, planType string) *billing.Price {
	return &billing.Price{
		ID:                id,
		RecurringInterval: "month",
		UnitAmount:        decimal.NewFromInt(amount),
		HasAmount:         true,
		Metadata:          types.Metadata{"plan_type": planType},
	}
}

func (s *MembershipServiceSuite) TestRefreshReconcilesAllSources() {
	s.repo.Balance = &billing.Balance{Available: lo.ToPtr(8.0)}
	s.repo.Subscriptions = []*billing.Subscription{
		{ID: "sub_1", Status: "active", PlanType: "8_credits"},
	}
	s.repo.Catalog = []*billing.Price{
		recurringPrice("p1", 4900, "8_credits"),
		recurringPrice("p2", 6900, "12_credits"),
		recurringPrice("p3", 9900, "unlimited"),
	}

	view, err := s.service.Refresh(s.ctx)
	s.Require().NoError(err)

	s.Equal(8.0, view.Entitlement.Available)
	s.Equal(billing.EntitlementSourceBalance, view.Entitlement.Source)
	s.Require().NotNil(view.Subscription)
	s.Equal("sub_1", view.Subscription.ID)

	s.Require().Len(view.Plans, 3)
	s.Equal(types.PlanChangeCurrent, view.Plans[0].Change)
	s.Equal(types.PlanChangeUpgrade, view.Plans[1].Change)
	s.Equal(types.PlanChangeUpgrade, view.Plans[2].Change)
}

func (s *MembershipServiceSuite) TestRefreshUnlimitedPlan() {
	s.repo.Balance = &billing.Balance{Available: lo.ToPtr(0.0)}
	s.repo.Subscriptions = []*billing.Subscription{
		{ID: "sub_1", Status: "active", PlanType: "unlimited monthly"},
	}

	view, err := s.service.Refresh(s.ctx)
	s.Require().NoError(err)

	s.True(view.Entitlement.Unlimited)
	s.True(math.IsInf(view.Entitlement.Available, 1))
	s.Nil(view.Entitlement.Total)
}

func (s *MembershipServiceSuite) TestRefreshSettlesIndependently() {
	s.repo.Balance = &billing.Balance{Available: lo.ToPtr(5.0)}
	s.repo.CatalogErr = ierr.NewError("catalog down").Mark(ierr.ErrHTTPClient)
	s.repo.SubscriptionErr = ierr.NewError("subscriptions down").Mark(ierr.ErrHTTPClient)

	view, err := s.service.Refresh(s.ctx)
	s.Require().NoError(err)

	s.Equal(5.0, view.Entitlement.Available)
	s.Nil(view.Subscription)
	s.Empty(view.Plans)
}

func (s *MembershipServiceSuite) TestRefreshFallsBackToLedger() {
	s.repo.Balance = &billing.Balance{Available: lo.ToPtr(0.0)}
	s.repo.Ledger = &billing.Ledger{Balance: lo.ToPtr(12.0)}

	view, err := s.service.Refresh(s.ctx)
	s.Require().NoError(err)

	s.Equal(12.0, view.Entitlement.Available)
	s.Equal(billing.EntitlementSourceLedger, view.Entitlement.Source)
}

func (s *MembershipServiceSuite) TestRefreshAllSourcesDown() {
	down := ierr.NewError("backend down").Mark(ierr.ErrHTTPClient)
	s.repo.BalanceErr = down
	s.repo.LedgerErr = down
	s.repo.SubscriptionErr = down
	s.repo.CatalogErr = down

	_, err := s.service.Refresh(s.ctx)
	s.Require().Error(err)
}

func (s *MembershipServiceSuite) TestCancelSubscription() {
	s.Require().NoError(s.service.CancelSubscription(s.ctx, "sub_1"))
	s.Equal([]string{"sub_1"}, s.repo.Cancelled)

	err := s.service.CancelSubscription(s.ctx, "")
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}
