package aggregates

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	billingrepos "github.com/webcomtel/webcom-backend/internal/data/repos/billing"
	catalogrepos "github.com/webcomtel/webcom-backend/internal/data/repos/catalog"
	contractrepos "github.com/webcomtel/webcom-backend/internal/data/repos/contracts"
	partyrepos "github.com/webcomtel/webcom-backend/internal/data/repos/parties"
	repotest "github.com/webcomtel/webcom-backend/internal/data/repos/testutil"
	types "github.com/webcomtel/webcom-backend/internal/domain"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"github.com/webcomtel/webcom-backend/internal/domain/money"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"gorm.io/gorm"
)

func newBillingAggregateForTest(t *testing.T, tx *gorm.DB) (domainagg.BillingAggregate, BillingAggregateDeps) {
	t.Helper()
	log := repotest.Logger(t)
	deps := BillingAggregateDeps{
		Base: BaseDeps{
			DB:       tx,
			Runner:   NewGormTxRunner(tx),
			CASGuard: NewCASGuard(tx),
		},
		Accounts:          billingrepos.NewAccountRepo(tx, log),
		Payments:          billingrepos.NewPaymentRepo(tx, log),
		Customers:         partyrepos.NewCustomerRepo(tx, log),
		RegularContracts:  contractrepos.NewRegularContractRepo(tx, log),
		BusinessContracts: contractrepos.NewBusinessContractRepo(tx, log),
		Addenda:           contractrepos.NewAddendumRepo(tx, log),
		AddendumServices:  contractrepos.NewAddendumServiceRepo(tx, log),
		Services:          catalogrepos.NewServiceRepo(tx, log),
		Inclusions:        catalogrepos.NewServiceInclusionRepo(tx, log),
	}
	return NewBillingAggregate(deps), deps
}

func setAccountBalance(t *testing.T, ctx context.Context, tx *gorm.DB, accountID uuid.UUID, amount float64) {
	t.Helper()
	err := tx.WithContext(ctx).Model(&types.Account{}).Where("id = ?", accountID).
		Update("balance_amount", money.FromFloat(amount, money.DefaultCurrency).Amount).Error
	if err != nil {
		t.Fatalf("set balance: %v", err)
	}
}

func TestBillingAggregatePayDebitsCurrentAddendum(t *testing.T) {
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	agg, deps := newBillingAggregateForTest(t, tx)

	ctx := context.Background()
	customer := repotest.SeedCustomer(t, ctx, tx, "pay.bundle@example.com", types.CustomerTypeRegular)
	contract := repotest.SeedRegularContract(t, ctx, tx, customer.ID)
	account := repotest.SeedAccount(t, ctx, tx, customer.ID, "ACC-2001")
	setAccountBalance(t, ctx, tx, account.ID, 100)

	phone := repotest.SeedService(t, ctx, tx, "phone line", 5)
	tv := repotest.SeedService(t, ctx, tx, "tv basic", 15)
	bundle := repotest.SeedService(t, ctx, tx, "duo bundle", 9.99)
	for _, child := range []uuid.UUID{phone.ID, tv.ID} {
		edge := &types.ServiceInclusion{ID: uuid.New(), ParentServiceID: bundle.ID, ChildServiceID: child}
		if err := tx.WithContext(ctx).Create(edge).Error; err != nil {
			t.Fatalf("seed inclusion: %v", err)
		}
	}

	// now() is frozen inside the wrapping test transaction, so recency
	// needs explicit stamps.
	seedAddendumAt := func(stamp time.Time, serviceIDs ...uuid.UUID) *types.Addendum {
		a := &types.Addendum{ID: uuid.New(), RegularContractID: repotest.PtrUUID(contract.ID), CreatedAt: stamp}
		if err := tx.WithContext(ctx).Create(a).Error; err != nil {
			t.Fatalf("seed addendum: %v", err)
		}
		for _, sid := range serviceIDs {
			link := &types.AddendumService{ID: uuid.New(), AddendumID: a.ID, ServiceID: sid}
			if err := tx.WithContext(ctx).Create(link).Error; err != nil {
				t.Fatalf("seed addendum service: %v", err)
			}
		}
		return a
	}
	now := time.Now().UTC()
	seedAddendumAt(now.Add(-2*time.Hour), phone.ID)
	current := seedAddendumAt(now.Add(-time.Hour), bundle.ID, phone.ID)

	res, err := agg.Pay(ctx, domainagg.PayInput{AccountID: account.ID})
	if err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if res.AddendumID != current.ID {
		t.Fatalf("paid addendum: want=%s got=%s", current.ID, res.AddendumID)
	}
	// bundle resolves to 9.99+5+15, plus the standalone phone line.
	if !res.Amount.Equal(money.FromFloat(34.99, money.DefaultCurrency)) {
		t.Fatalf("amount: got %s", res.Amount)
	}
	if !res.Balance.Equal(money.FromFloat(65.01, money.DefaultCurrency)) {
		t.Fatalf("balance: got %s", res.Balance)
	}

	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	stored, err := deps.Accounts.GetByID(dbc, account.ID)
	if err != nil {
		t.Fatalf("GetByID account: %v", err)
	}
	if !stored.Balance.Equal(money.FromFloat(65.01, money.DefaultCurrency)) {
		t.Fatalf("persisted balance: got %s", stored.Balance)
	}

	payments, err := deps.Payments.ListByAccount(dbc, account.ID, 10)
	if err != nil {
		t.Fatalf("ListByAccount: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("payment rows: want=1 got=%d", len(payments))
	}
	payment := payments[0]
	if payment.AddendumID == nil || *payment.AddendumID != current.ID {
		t.Fatalf("payment addendum: %v", payment.AddendumID)
	}
	var lines []paymentLine
	if err := json.Unmarshal(payment.Breakdown, &lines); err != nil {
		t.Fatalf("unmarshal breakdown: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("breakdown lines: want=2 got=%d", len(lines))
	}
	byService := map[uuid.UUID]paymentLine{}
	for _, line := range lines {
		byService[line.ServiceID] = line
	}
	if got := byService[bundle.ID].Amount; got != "29.99" {
		t.Fatalf("bundle line amount: got %q", got)
	}
	if got := byService[phone.ID].Amount; got != "5.00" {
		t.Fatalf("phone line amount: got %q", got)
	}
}

func TestBillingAggregatePayEmptyAddendumDebitsNothing(t *testing.T) {
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	agg, deps := newBillingAggregateForTest(t, tx)

	ctx := context.Background()
	customer := repotest.SeedCustomer(t, ctx, tx, "pay.empty@example.com", types.CustomerTypeRegular)
	contract := repotest.SeedRegularContract(t, ctx, tx, customer.ID)
	account := repotest.SeedAccount(t, ctx, tx, customer.ID, "ACC-2002")
	setAccountBalance(t, ctx, tx, account.ID, 40)
	repotest.SeedAddendum(t, ctx, tx, repotest.PtrUUID(contract.ID))

	res, err := agg.Pay(ctx, domainagg.PayInput{AccountID: account.ID})
	if err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if !res.Amount.IsZero() {
		t.Fatalf("amount for empty addendum: got %s", res.Amount)
	}
	if !res.Balance.Equal(money.FromFloat(40, money.DefaultCurrency)) {
		t.Fatalf("balance must not move, got %s", res.Balance)
	}

	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	payments, err := deps.Payments.ListByAccount(dbc, account.ID, 10)
	if err != nil {
		t.Fatalf("ListByAccount: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("zero-amount payment must still be recorded, got %d rows", len(payments))
	}
}

func TestBillingAggregatePayWithoutAddendum(t *testing.T) {
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	agg, _ := newBillingAggregateForTest(t, tx)

	ctx := context.Background()
	customer := repotest.SeedCustomer(t, ctx, tx, "pay.bare@example.com", types.CustomerTypeBusiness)
	repotest.SeedBusinessContract(t, ctx, tx, customer.ID)
	account := repotest.SeedAccount(t, ctx, tx, customer.ID, "ACC-2003")

	_, err := agg.Pay(ctx, domainagg.PayInput{AccountID: account.ID})
	if err == nil {
		t.Fatalf("expected no_addendum rejection")
	}
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not_found code, got %v", err)
	}
	if !domainagg.IsReason(err, domainagg.ReasonNoAddendum) {
		t.Fatalf("expected no_addendum reason, got %v", err)
	}
}

func TestBillingAggregateDeleteAccountBlockedByOutstandingDebt(t *testing.T) {
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	agg, deps := newBillingAggregateForTest(t, tx)

	ctx := context.Background()
	customer := repotest.SeedCustomer(t, ctx, tx, "debtor.account@example.com", types.CustomerTypeRegular)
	account := repotest.SeedAccount(t, ctx, tx, customer.ID, "ACC-2004")
	setAccountBalance(t, ctx, tx, account.ID, -25)

	_, err := agg.DeleteAccount(ctx, domainagg.DeleteAccountInput{AccountID: account.ID})
	if err == nil {
		t.Fatalf("expected outstanding_debt rejection")
	}
	if !domainagg.IsCode(err, domainagg.CodeInvariantViolation) {
		t.Fatalf("expected invariant violation code, got %v", err)
	}
	if !domainagg.IsReason(err, domainagg.ReasonOutstandingDebt) {
		t.Fatalf("expected outstanding_debt reason, got %v", err)
	}

	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	if got, err := deps.Accounts.GetByID(dbc, account.ID); err != nil || got == nil {
		t.Fatalf("account must survive a blocked delete: got=%v err=%v", got, err)
	}
}

func TestBillingAggregateDeleteAccountRemovesPayments(t *testing.T) {
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	agg, deps := newBillingAggregateForTest(t, tx)

	ctx := context.Background()
	customer := repotest.SeedCustomer(t, ctx, tx, "closer.account@example.com", types.CustomerTypeRegular)
	account := repotest.SeedAccount(t, ctx, tx, customer.ID, "ACC-2005")
	payment := &types.Payment{
		ID:        uuid.New(),
		AccountID: account.ID,
		Amount:    money.Zero(money.DefaultCurrency),
	}
	if err := tx.WithContext(ctx).Create(payment).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	if _, err := agg.DeleteAccount(ctx, domainagg.DeleteAccountInput{AccountID: account.ID}); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}

	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	if got, err := deps.Accounts.GetByID(dbc, account.ID); err != nil || got != nil {
		t.Fatalf("account after delete: got=%v err=%v", got, err)
	}
	payments, err := deps.Payments.ListByAccount(dbc, account.ID, 10)
	if err != nil {
		t.Fatalf("ListByAccount: %v", err)
	}
	if len(payments) != 0 {
		t.Fatalf("payments after delete: want=0 got=%d", len(payments))
	}
}

func TestBillingAggregatePayConcurrentDebitsSerialize(t *testing.T) {
	db := repotest.DB(t)
	log := repotest.Logger(t)

	agg := NewBillingAggregate(BillingAggregateDeps{
		Base: BaseDeps{
			DB:       db,
			Runner:   NewGormTxRunner(db),
			CASGuard: NewCASGuard(db),
		},
		Accounts:          billingrepos.NewAccountRepo(db, log),
		Payments:          billingrepos.NewPaymentRepo(db, log),
		Customers:         partyrepos.NewCustomerRepo(db, log),
		RegularContracts:  contractrepos.NewRegularContractRepo(db, log),
		BusinessContracts: contractrepos.NewBusinessContractRepo(db, log),
		Addenda:           contractrepos.NewAddendumRepo(db, log),
		AddendumServices:  contractrepos.NewAddendumServiceRepo(db, log),
		Services:          catalogrepos.NewServiceRepo(db, log),
		Inclusions:        catalogrepos.NewServiceInclusionRepo(db, log),
	})

	ctx := context.Background()
	customer := repotest.SeedCustomer(t, ctx, db, "race.pay@example.com", types.CustomerTypeRegular)
	contract := repotest.SeedRegularContract(t, ctx, db, customer.ID)
	account := repotest.SeedAccount(t, ctx, db, customer.ID, "ACC-2006")
	setAccountBalance(t, ctx, db, account.ID, 100)
	service := repotest.SeedService(t, ctx, db, "race phone line", 5)
	addendum := repotest.SeedAddendum(t, ctx, db, repotest.PtrUUID(contract.ID), service.ID)
	t.Cleanup(func() {
		_ = db.WithContext(ctx).Where("account_id = ?", account.ID).Delete(&types.Payment{}).Error
		_ = db.WithContext(ctx).Where("id = ?", account.ID).Delete(&types.Account{}).Error
		_ = db.WithContext(ctx).Where("addendum_id = ?", addendum.ID).Delete(&types.AddendumService{}).Error
		_ = db.WithContext(ctx).Where("id = ?", addendum.ID).Delete(&types.Addendum{}).Error
		_ = db.WithContext(ctx).Where("id = ?", service.ID).Delete(&types.Service{}).Error
		_ = db.WithContext(ctx).Where("id = ?", contract.ID).Delete(&types.RegularContract{}).Error
		_ = db.WithContext(ctx).Where("id = ?", customer.ID).Delete(&types.Customer{}).Error
	})

	start := make(chan struct{})
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			<-start
			_, err := agg.Pay(ctx, domainagg.PayInput{AccountID: account.ID})
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("Pay: %v", err)
		}
	}

	dbc := dbctx.Context{Ctx: ctx, Tx: db}
	stored, err := billingrepos.NewAccountRepo(db, log).GetByID(dbc, account.ID)
	if err != nil {
		t.Fatalf("GetByID account: %v", err)
	}
	// The row lock serializes the two debits; both must land.
	if !stored.Balance.Equal(money.FromFloat(90, money.DefaultCurrency)) {
		t.Fatalf("final balance: want=90.00 got=%s", stored.Balance)
	}
	payments, err := billingrepos.NewPaymentRepo(db, log).ListByAccount(dbc, account.ID, 10)
	if err != nil {
		t.Fatalf("ListByAccount: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("payment rows: want=2 got=%d", len(payments))
	}
}
