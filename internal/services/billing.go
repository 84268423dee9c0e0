package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/webcomtel/webcom-backend/internal/data/repos"
	types "github.com/webcomtel/webcom-backend/internal/domain"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

// BillingService fronts the account aggregate plus the account and
// payment reads.
type BillingService interface {
	Pay(ctx context.Context, accountID uuid.UUID) (domainagg.PayResult, error)
	DeleteAccount(ctx context.Context, accountID uuid.UUID) (domainagg.DeleteAccountResult, error)

	Get(ctx context.Context, accountID uuid.UUID) (*types.Account, error)
	Payments(ctx context.Context, accountID uuid.UUID, limit int) ([]*types.Payment, error)
}

type billingService struct {
	log *logger.Logger
	agg domainagg.BillingAggregate

	accounts repos.AccountRepo
	payments repos.PaymentRepo
}

func NewBillingService(
	baseLog *logger.Logger,
	agg domainagg.BillingAggregate,
	accounts repos.AccountRepo,
	payments repos.PaymentRepo,
) BillingService {
	return &billingService{
		log:      baseLog.With("service", "BillingService"),
		agg:      agg,
		accounts: accounts,
		payments: payments,
	}
}

func (s *billingService) Pay(ctx context.Context, accountID uuid.UUID) (domainagg.PayResult, error) {
	if s == nil || s.agg == nil {
		return domainagg.PayResult{}, fmt.Errorf("billing service not configured")
	}
	return s.agg.Pay(ctx, domainagg.PayInput{AccountID: accountID})
}

func (s *billingService) DeleteAccount(ctx context.Context, accountID uuid.UUID) (domainagg.DeleteAccountResult, error) {
	if s == nil || s.agg == nil {
		return domainagg.DeleteAccountResult{}, fmt.Errorf("billing service not configured")
	}
	return s.agg.DeleteAccount(ctx, domainagg.DeleteAccountInput{AccountID: accountID})
}

func (s *billingService) Get(ctx context.Context, accountID uuid.UUID) (*types.Account, error) {
	const op = "BillingService.Get"
	if s == nil || s.accounts == nil {
		return nil, fmt.Errorf("billing service not configured")
	}
	if accountID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing account id", nil)
	}
	account, err := s.accounts.GetByID(dbctx.Context{Ctx: ctx}, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("account not found: %s", accountID.String()), nil)
	}
	return account, nil
}

func (s *billingService) Payments(ctx context.Context, accountID uuid.UUID, limit int) ([]*types.Payment, error) {
	const op = "BillingService.Payments"
	if s == nil || s.payments == nil {
		return nil, fmt.Errorf("billing service not configured")
	}
	if accountID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing account id", nil)
	}
	return s.payments.ListByAccount(dbctx.Context{Ctx: ctx}, accountID, limit)
}
