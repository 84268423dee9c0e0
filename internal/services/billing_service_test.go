package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	types "github.com/webcomtel/webcom-backend/internal/domain"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"github.com/webcomtel/webcom-backend/internal/domain/money"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

func TestBillingServicePayDelegatesToAggregate(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	fakeAgg := &fakeBillingAggregate{}
	svc := NewBillingService(log, fakeAgg, nil, nil)

	accountID := uuid.New()
	if _, err := svc.Pay(context.Background(), accountID); err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if fakeAgg.payCalls != 1 {
		t.Fatalf("pay call count: want=1 got=%d", fakeAgg.payCalls)
	}
	if fakeAgg.lastPay.AccountID != accountID {
		t.Fatalf("pay account id: want=%s got=%s", accountID, fakeAgg.lastPay.AccountID)
	}
}

func TestBillingServicePayRequiresAggregate(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	svc := NewBillingService(log, nil, nil, nil)

	_, err = svc.Pay(context.Background(), uuid.New())
	if err == nil {
		t.Fatalf("Pay: expected error when aggregate missing")
	}
	if err.Error() != "billing service not configured" {
		t.Fatalf("Pay: unexpected error: %v", err)
	}
}

func TestBillingServiceGetUnknownAccount(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	svc := NewBillingService(log, nil, &fakeAccountRepo{}, nil)

	_, err = svc.Get(context.Background(), uuid.New())
	if err == nil {
		t.Fatalf("Get: expected error for unknown account")
	}
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("Get: want code=%s got=%s (%v)", domainagg.CodeNotFound, domainagg.CodeOf(err), err)
	}
}

func TestBillingServiceGetReturnsAccount(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	accountID := uuid.New()
	accounts := &fakeAccountRepo{rows: map[uuid.UUID]*types.Account{
		accountID: {ID: accountID, Number: "ACC-100", Balance: money.FromFloat(42, money.DefaultCurrency)},
	}}
	svc := NewBillingService(log, nil, accounts, nil)

	account, err := svc.Get(context.Background(), accountID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if account.Number != "ACC-100" {
		t.Fatalf("account number: want=%q got=%q", "ACC-100", account.Number)
	}
}

func TestBillingServicePaymentsPassesLimit(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	payments := &fakePaymentRepo{}
	svc := NewBillingService(log, nil, nil, payments)

	accountID := uuid.New()
	if _, err := svc.Payments(context.Background(), accountID, 7); err != nil {
		t.Fatalf("Payments: %v", err)
	}
	if payments.listCalls != 1 {
		t.Fatalf("list call count: want=1 got=%d", payments.listCalls)
	}
	if payments.lastAccountID != accountID {
		t.Fatalf("list account id: want=%s got=%s", accountID, payments.lastAccountID)
	}
	if payments.lastLimit != 7 {
		t.Fatalf("list limit: want=7 got=%d", payments.lastLimit)
	}
}

type fakeBillingAggregate struct {
	payCalls int
	lastPay  domainagg.PayInput
}

func (f *fakeBillingAggregate) Contract() domainagg.Contract {
	return domainagg.BillingAggregateContract
}

func (f *fakeBillingAggregate) Pay(_ context.Context, in domainagg.PayInput) (domainagg.PayResult, error) {
	f.payCalls++
	f.lastPay = in
	return domainagg.PayResult{AccountID: in.AccountID, PaymentID: uuid.New()}, nil
}

func (f *fakeBillingAggregate) DeleteAccount(_ context.Context, in domainagg.DeleteAccountInput) (domainagg.DeleteAccountResult, error) {
	return domainagg.DeleteAccountResult{AccountID: in.AccountID}, nil
}

type fakeAccountRepo struct {
	rows map[uuid.UUID]*types.Account
}

func (f *fakeAccountRepo) Create(_ dbctx.Context, rows []*types.Account) ([]*types.Account, error) {
	return rows, nil
}

func (f *fakeAccountRepo) GetByIDs(_ dbctx.Context, ids []uuid.UUID) ([]*types.Account, error) {
	var out []*types.Account
	for _, id := range ids {
		if row, ok := f.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeAccountRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*types.Account, error) {
	return f.rows[id], nil
}

func (f *fakeAccountRepo) GetByCustomerIDs(_ dbctx.Context, _ []uuid.UUID) ([]*types.Account, error) {
	return nil, nil
}

func (f *fakeAccountRepo) GetByCustomerID(_ dbctx.Context, _ uuid.UUID) (*types.Account, error) {
	return nil, nil
}

func (f *fakeAccountRepo) NumberExists(_ dbctx.Context, _ string) (bool, error) {
	return false, nil
}

func (f *fakeAccountRepo) LockByID(_ dbctx.Context, id uuid.UUID) (*types.Account, error) {
	return f.rows[id], nil
}

func (f *fakeAccountRepo) UpdateFields(_ dbctx.Context, _ uuid.UUID, _ map[string]interface{}) error {
	return nil
}

func (f *fakeAccountRepo) DeleteByCustomerIDs(_ dbctx.Context, _ []uuid.UUID) error {
	return nil
}

func (f *fakeAccountRepo) DeleteByIDs(_ dbctx.Context, _ []uuid.UUID) error {
	return nil
}

type fakePaymentRepo struct {
	listCalls     int
	lastAccountID uuid.UUID
	lastLimit     int
}

func (f *fakePaymentRepo) Create(_ dbctx.Context, rows []*types.Payment) ([]*types.Payment, error) {
	return rows, nil
}

func (f *fakePaymentRepo) GetByIDs(_ dbctx.Context, _ []uuid.UUID) ([]*types.Payment, error) {
	return nil, nil
}

func (f *fakePaymentRepo) ListByAccount(_ dbctx.Context, accountID uuid.UUID, limit int) ([]*types.Payment, error) {
	f.listCalls++
	f.lastAccountID = accountID
	f.lastLimit = limit
	return nil, nil
}

func (f *fakePaymentRepo) DeleteByAccountIDs(_ dbctx.Context, _ []uuid.UUID) error {
	return nil
}
