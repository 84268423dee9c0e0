package aggregates

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/webcomtel/webcom-backend/internal/data/repos"
	catalogrepos "github.com/webcomtel/webcom-backend/internal/data/repos/catalog"
	types "github.com/webcomtel/webcom-backend/internal/domain"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"github.com/webcomtel/webcom-backend/internal/domain/money"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"gorm.io/datatypes"
)

type BillingAggregateDeps struct {
	Base BaseDeps

	Accounts          repos.AccountRepo
	Payments          repos.PaymentRepo
	Customers         repos.CustomerRepo
	RegularContracts  repos.RegularContractRepo
	BusinessContracts repos.BusinessContractRepo
	Addenda           repos.AddendumRepo
	AddendumServices  repos.AddendumServiceRepo
	Services          repos.ServiceRepo
	Inclusions        repos.ServiceInclusionRepo
}

type billingAggregate struct {
	deps BillingAggregateDeps
}

func NewBillingAggregate(deps BillingAggregateDeps) domainagg.BillingAggregate {
	deps.Base = deps.Base.withDefaults()
	return &billingAggregate{deps: deps}
}

func (a *billingAggregate) Contract() domainagg.Contract {
	return domainagg.BillingAggregateContract
}

// paymentLine is one entry of the persisted payment breakdown.
type paymentLine struct {
	ServiceID uuid.UUID `json:"service_id"`
	Name      string    `json:"name"`
	Amount    string    `json:"amount"`
	Currency  string    `json:"currency"`
}

func (a *billingAggregate) Pay(ctx context.Context, in domainagg.PayInput) (domainagg.PayResult, error) {
	const op = "Billing.Account.Pay"
	var out domainagg.PayResult

	if in.AccountID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing account id", nil)
	}
	if a.deps.Accounts == nil || a.deps.Payments == nil || a.deps.Customers == nil ||
		a.deps.RegularContracts == nil || a.deps.BusinessContracts == nil ||
		a.deps.Addenda == nil || a.deps.AddendumServices == nil ||
		a.deps.Services == nil || a.deps.Inclusions == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "billing aggregate repos not configured", nil)
	}

	now := time.Now().UTC()
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		account, err := a.deps.Accounts.LockByID(dbc, in.AccountID)
		if err != nil {
			return err
		}
		if account == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("account not found: %s", in.AccountID.String()), nil)
		}

		customer, err := a.deps.Customers.GetByID(dbc, account.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return InvariantError("account has no customer")
		}

		var (
			kind       string
			contractID uuid.UUID
		)
		switch customer.Type {
		case types.CustomerTypeRegular:
			contract, err := a.deps.RegularContracts.GetByCustomerID(dbc, customer.ID)
			if err != nil {
				return err
			}
			if contract == nil {
				return InvariantError("customer has no contract")
			}
			kind = types.ContractKindRegular
			contractID = contract.ID
		case types.CustomerTypeBusiness:
			contract, err := a.deps.BusinessContracts.GetByCustomerID(dbc, customer.ID)
			if err != nil {
				return err
			}
			if contract == nil {
				return InvariantError("customer has no contract")
			}
			kind = types.ContractKindBusiness
			contractID = contract.ID
		default:
			return InvariantError(fmt.Sprintf("unknown customer type %q", customer.Type))
		}

		addendum, err := a.deps.Addenda.CurrentForContract(dbc, kind, contractID)
		if err != nil {
			return err
		}
		if addendum == nil {
			return domainagg.NewRuleError(domainagg.CodeNotFound, domainagg.ReasonNoAddendum, op, "contract has no addendum")
		}

		serviceIDs, err := a.deps.AddendumServices.ServiceIDsForAddendum(dbc, addendum.ID)
		if err != nil {
			return err
		}

		total := money.Zero(account.Balance.Currency)
		lines := make([]paymentLine, 0, len(serviceIDs))
		if len(serviceIDs) > 0 {
			snapshot, err := catalogrepos.LoadSnapshot(dbc, a.deps.Services, a.deps.Inclusions)
			if err != nil {
				return err
			}
			for _, id := range serviceIDs {
				price, err := snapshot.TotalPrice(id)
				if err != nil {
					return InvariantError(fmt.Sprintf("addendum service %s: %v", id.String(), err))
				}
				total, err = total.Add(price)
				if err != nil {
					return err
				}
				lines = append(lines, paymentLine{
					ServiceID: id,
					Name:      snapshot.Name(id),
					Amount:    price.Amount.StringFixed(2),
					Currency:  price.Currency,
				})
			}
		}

		newBalance, err := account.Balance.Sub(total)
		if err != nil {
			return err
		}
		if err := a.deps.Accounts.UpdateFields(dbc, account.ID, map[string]interface{}{
			"balance_amount": newBalance.Amount,
			"updated_at":     now,
		}); err != nil {
			return err
		}

		breakdown, err := json.Marshal(lines)
		if err != nil {
			return err
		}
		payment := &types.Payment{
			ID:         uuid.New(),
			AccountID:  account.ID,
			AddendumID: &addendum.ID,
			Amount:     total,
			Breakdown:  datatypes.JSON(breakdown),
			CreatedAt:  now,
		}
		if _, err := a.deps.Payments.Create(dbc, []*types.Payment{payment}); err != nil {
			return err
		}

		out = domainagg.PayResult{
			AccountID:  account.ID,
			PaymentID:  payment.ID,
			AddendumID: addendum.ID,
			Amount:     total,
			Balance:    newBalance,
			PaidAt:     now,
		}
		return nil
	})
	return out, err
}

func (a *billingAggregate) DeleteAccount(ctx context.Context, in domainagg.DeleteAccountInput) (domainagg.DeleteAccountResult, error) {
	const op = "Billing.Account.Delete"
	var out domainagg.DeleteAccountResult

	if in.AccountID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing account id", nil)
	}
	if a.deps.Accounts == nil || a.deps.Payments == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "billing aggregate repos not configured", nil)
	}

	now := time.Now().UTC()
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		locked, err := a.deps.Accounts.LockByID(dbc, in.AccountID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("account not found: %s", in.AccountID.String()), nil)
		}
		if locked.Balance.IsNegative() {
			return domainagg.NewRuleError(domainagg.CodeInvariantViolation, domainagg.ReasonOutstandingDebt, op,
				fmt.Sprintf("account %s owes %s", locked.Number, locked.Balance.String()))
		}

		if err := a.deps.Payments.DeleteByAccountIDs(dbc, []uuid.UUID{locked.ID}); err != nil {
			return err
		}
		if err := a.deps.Accounts.DeleteByIDs(dbc, []uuid.UUID{locked.ID}); err != nil {
			return err
		}

		out = domainagg.DeleteAccountResult{AccountID: locked.ID, DeletedAt: now}
		return nil
	})
	return out, err
}
