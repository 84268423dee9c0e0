package aggregates

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/webcomtel/webcom-backend/internal/data/repos"
	types "github.com/webcomtel/webcom-backend/internal/domain"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"github.com/webcomtel/webcom-backend/internal/domain/contracts"
	"github.com/webcomtel/webcom-backend/internal/domain/money"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
)

var (
	phoneRE = regexp.MustCompile(`^\+?\d{9,20}$`)
	emailRE = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

type CustomerAggregateDeps struct {
	Base BaseDeps

	Customers         repos.CustomerRepo
	RegularProfiles   repos.RegularCustomerProfileRepo
	BusinessProfiles  repos.BusinessCustomerProfileRepo
	Accounts          repos.AccountRepo
	Payments          repos.PaymentRepo
	RegularContracts  repos.RegularContractRepo
	BusinessContracts repos.BusinessContractRepo
	Addenda           repos.AddendumRepo
	AddendumServices  repos.AddendumServiceRepo
}

type customerAggregate struct {
	deps CustomerAggregateDeps
}

func NewCustomerAggregate(deps CustomerAggregateDeps) domainagg.CustomerAggregate {
	deps.Base = deps.Base.withDefaults()
	return &customerAggregate{deps: deps}
}

func (a *customerAggregate) Contract() domainagg.Contract {
	return domainagg.CustomerAggregateContract
}

func (a *customerAggregate) CreateCustomer(ctx context.Context, in domainagg.CreateCustomerInput) (domainagg.CreateCustomerResult, error) {
	const op = "Parties.Customer.Create"
	var out domainagg.CreateCustomerResult

	custType := strings.ToLower(strings.TrimSpace(in.Type))
	if custType != types.CustomerTypeRegular && custType != types.CustomerTypeBusiness {
		return out, domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("unknown customer type %q", in.Type), nil)
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !emailRE.MatchString(email) {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "invalid email", nil)
	}
	phone := strings.TrimSpace(in.Phone)
	if !phoneRE.MatchString(phone) {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "invalid phone", nil)
	}
	number := strings.TrimSpace(in.Account.Number)
	if number == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing account number", nil)
	}
	if a.deps.Customers == nil || a.deps.Accounts == nil ||
		a.deps.RegularContracts == nil || a.deps.BusinessContracts == nil ||
		a.deps.RegularProfiles == nil || a.deps.BusinessProfiles == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "customer aggregate repos not configured", nil)
	}

	now := time.Now().UTC()
	var (
		rc types.RegularContract
		bc types.BusinessContract
		rp types.RegularCustomerProfile
		bp types.BusinessCustomerProfile
	)
	switch custType {
	case types.CustomerTypeRegular:
		if in.BusinessContract != nil || in.BusinessProfile != nil {
			return out, domainagg.NewRuleError(domainagg.CodeValidation, domainagg.ReasonTypeMismatch, op, "regular customer cannot carry a business contract or profile")
		}
		if in.RegularContract == nil {
			return out, domainagg.NewError(domainagg.CodeValidation, op, "missing regular contract", nil)
		}
		if in.RegularProfile == nil {
			return out, domainagg.NewError(domainagg.CodeValidation, op, "missing regular profile", nil)
		}
		if strings.TrimSpace(in.RegularProfile.FirstName) == "" || strings.TrimSpace(in.RegularProfile.LastName) == "" {
			return out, domainagg.NewError(domainagg.CodeValidation, op, "profile first and last name are required", nil)
		}
		rc = *in.RegularContract
		rp = *in.RegularProfile
		if err := normalizeRegularContract(&rc, now); err != nil {
			return out, domainagg.Wrap(domainagg.CodeValidation, op, err)
		}
	case types.CustomerTypeBusiness:
		if in.RegularContract != nil || in.RegularProfile != nil {
			return out, domainagg.NewRuleError(domainagg.CodeValidation, domainagg.ReasonTypeMismatch, op, "business customer cannot carry a regular contract or profile")
		}
		if in.BusinessContract == nil {
			return out, domainagg.NewError(domainagg.CodeValidation, op, "missing business contract", nil)
		}
		if in.BusinessProfile == nil {
			return out, domainagg.NewError(domainagg.CodeValidation, op, "missing business profile", nil)
		}
		if strings.TrimSpace(in.BusinessProfile.CompanyName) == "" || strings.TrimSpace(in.BusinessProfile.CompanyID) == "" {
			return out, domainagg.NewError(domainagg.CodeValidation, op, "profile company name and company id are required", nil)
		}
		bc = *in.BusinessContract
		bp = *in.BusinessProfile
		if err := normalizeBusinessContract(&bc, now); err != nil {
			return out, domainagg.Wrap(domainagg.CodeValidation, op, err)
		}
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		customer := &types.Customer{
			ID:        uuid.New(),
			Email:     email,
			Phone:     phone,
			Type:      custType,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := a.deps.Customers.Create(dbc, []*types.Customer{customer}); err != nil {
			return err
		}

		account := &types.Account{
			ID:         uuid.New(),
			CustomerID: customer.ID,
			Number:     number,
			Balance:    money.New(in.Account.OpeningBalance.Amount, in.Account.OpeningBalance.Currency),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if _, err := a.deps.Accounts.Create(dbc, []*types.Account{account}); err != nil {
			return err
		}

		var contractID uuid.UUID
		var profileID uuid.UUID
		switch custType {
		case types.CustomerTypeRegular:
			rc.ID = uuid.New()
			rc.CustomerID = customer.ID
			rc.CreatedAt = now
			rc.UpdatedAt = now
			if _, err := a.deps.RegularContracts.Create(dbc, []*types.RegularContract{&rc}); err != nil {
				return err
			}
			contractID = rc.ID

			rp.ID = uuid.New()
			rp.CustomerID = customer.ID
			rp.CreatedAt = now
			rp.UpdatedAt = now
			if _, err := a.deps.RegularProfiles.Create(dbc, []*types.RegularCustomerProfile{&rp}); err != nil {
				return err
			}
			profileID = rp.ID
		case types.CustomerTypeBusiness:
			bc.ID = uuid.New()
			bc.CustomerID = customer.ID
			bc.CreatedAt = now
			bc.UpdatedAt = now
			if _, err := a.deps.BusinessContracts.Create(dbc, []*types.BusinessContract{&bc}); err != nil {
				return err
			}
			contractID = bc.ID

			bp.ID = uuid.New()
			bp.CustomerID = customer.ID
			bp.CreatedAt = now
			bp.UpdatedAt = now
			if _, err := a.deps.BusinessProfiles.Create(dbc, []*types.BusinessCustomerProfile{&bp}); err != nil {
				return err
			}
			profileID = bp.ID
		}

		out = domainagg.CreateCustomerResult{
			CustomerID: customer.ID,
			AccountID:  account.ID,
			ContractID: contractID,
			ProfileID:  profileID,
			CreatedAt:  now,
		}
		return nil
	})
	return out, err
}

func (a *customerAggregate) SaveCustomer(ctx context.Context, in domainagg.SaveCustomerInput) (domainagg.SaveCustomerResult, error) {
	const op = "Parties.Customer.Save"
	var out domainagg.SaveCustomerResult

	if in.Customer.ID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing customer id", nil)
	}
	email := strings.ToLower(strings.TrimSpace(in.Customer.Email))
	if !emailRE.MatchString(email) {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "invalid email", nil)
	}
	phone := strings.TrimSpace(in.Customer.Phone)
	if !phoneRE.MatchString(phone) {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "invalid phone", nil)
	}
	number := strings.TrimSpace(in.Account.Number)
	if number == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing account number", nil)
	}
	if a.deps.Customers == nil || a.deps.Accounts == nil ||
		a.deps.RegularContracts == nil || a.deps.BusinessContracts == nil ||
		a.deps.RegularProfiles == nil || a.deps.BusinessProfiles == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "customer aggregate repos not configured", nil)
	}

	now := time.Now().UTC()
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		stored, err := a.deps.Customers.LockByID(dbc, in.Customer.ID)
		if err != nil {
			return err
		}
		if stored == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("customer not found: %s", in.Customer.ID.String()), nil)
		}
		if in.Customer.Type != "" && in.Customer.Type != stored.Type {
			return domainagg.NewRuleError(domainagg.CodeValidation, domainagg.ReasonTypeMismatch, op, "customer type is immutable")
		}
		if stored.Type == types.CustomerTypeRegular && (in.BusinessContract != nil || in.BusinessProfile != nil) {
			return domainagg.NewRuleError(domainagg.CodeValidation, domainagg.ReasonTypeMismatch, op, "regular customer cannot carry a business contract or profile")
		}
		if stored.Type == types.CustomerTypeBusiness && (in.RegularContract != nil || in.RegularProfile != nil) {
			return domainagg.NewRuleError(domainagg.CodeValidation, domainagg.ReasonTypeMismatch, op, "business customer cannot carry a regular contract or profile")
		}

		ok, err := a.deps.Base.CASGuard.UpdateByVersion(dbc, "customer", stored.ID, in.Customer.Version, map[string]any{
			"email":      email,
			"phone":      phone,
			"version":    in.Customer.Version + 1,
			"updated_at": now,
		})
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "customer changed concurrently"); err != nil {
			return err
		}

		account, err := a.deps.Accounts.GetByCustomerID(dbc, stored.ID)
		if err != nil {
			return err
		}
		if account == nil {
			return InvariantError("customer has no account")
		}
		if in.Account.ID != uuid.Nil && in.Account.ID != account.ID {
			return ConflictError("account does not belong to customer")
		}
		balance := money.New(in.Account.Balance.Amount, in.Account.Balance.Currency)
		if err := a.deps.Accounts.UpdateFields(dbc, account.ID, map[string]interface{}{
			"number":           number,
			"balance_amount":   balance.Amount,
			"balance_currency": balance.Currency,
			"updated_at":       now,
		}); err != nil {
			return err
		}

		if err := a.saveContract(dbc, op, stored, in.RegularContract, in.BusinessContract, now); err != nil {
			return err
		}
		if err := a.saveProfile(dbc, op, stored, in.RegularProfile, in.BusinessProfile, now); err != nil {
			return err
		}

		out = domainagg.SaveCustomerResult{
			CustomerID: stored.ID,
			Version:    in.Customer.Version + 1,
			SavedAt:    now,
		}
		return nil
	})
	return out, err
}

func (a *customerAggregate) saveContract(dbc dbctx.Context, op string, stored *types.Customer, rcIn *types.RegularContract, bcIn *types.BusinessContract, now time.Time) error {
	switch stored.Type {
	case types.CustomerTypeRegular:
		if rcIn == nil {
			return domainagg.NewError(domainagg.CodeValidation, op, "missing regular contract", nil)
		}
		rc := *rcIn
		if err := normalizeRegularContract(&rc, now); err != nil {
			return domainagg.Wrap(domainagg.CodeValidation, op, err)
		}
		existing, err := a.deps.RegularContracts.GetByCustomerID(dbc, stored.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			rc.ID = uuid.New()
			rc.CustomerID = stored.ID
			rc.CreatedAt = now
			rc.UpdatedAt = now
			_, err := a.deps.RegularContracts.Create(dbc, []*types.RegularContract{&rc})
			return err
		}
		return a.deps.RegularContracts.UpdateFields(dbc, existing.ID, regularContractUpdates(rc, now))
	case types.CustomerTypeBusiness:
		if bcIn == nil {
			return domainagg.NewError(domainagg.CodeValidation, op, "missing business contract", nil)
		}
		bc := *bcIn
		if err := normalizeBusinessContract(&bc, now); err != nil {
			return domainagg.Wrap(domainagg.CodeValidation, op, err)
		}
		existing, err := a.deps.BusinessContracts.GetByCustomerID(dbc, stored.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			bc.ID = uuid.New()
			bc.CustomerID = stored.ID
			bc.CreatedAt = now
			bc.UpdatedAt = now
			_, err := a.deps.BusinessContracts.Create(dbc, []*types.BusinessContract{&bc})
			return err
		}
		return a.deps.BusinessContracts.UpdateFields(dbc, existing.ID, businessContractUpdates(bc, now))
	default:
		return InvariantError(fmt.Sprintf("unknown customer type %q", stored.Type))
	}
}

func (a *customerAggregate) saveProfile(dbc dbctx.Context, op string, stored *types.Customer, rpIn *types.RegularCustomerProfile, bpIn *types.BusinessCustomerProfile, now time.Time) error {
	switch stored.Type {
	case types.CustomerTypeRegular:
		if rpIn == nil {
			return domainagg.NewError(domainagg.CodeValidation, op, "missing regular profile", nil)
		}
		existing, err := a.deps.RegularProfiles.GetByCustomerID(dbc, stored.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			rp := *rpIn
			rp.ID = uuid.New()
			rp.CustomerID = stored.ID
			rp.CreatedAt = now
			rp.UpdatedAt = now
			_, err := a.deps.RegularProfiles.Create(dbc, []*types.RegularCustomerProfile{&rp})
			return err
		}
		return a.deps.RegularProfiles.UpdateFieldsByCustomerID(dbc, stored.ID, map[string]interface{}{
			"first_name":       rpIn.FirstName,
			"last_name":        rpIn.LastName,
			"apartment_number": rpIn.ApartmentNumber,
			"address_id":       rpIn.AddressID,
			"updated_at":       now,
		})
	case types.CustomerTypeBusiness:
		if bpIn == nil {
			return domainagg.NewError(domainagg.CodeValidation, op, "missing business profile", nil)
		}
		existing, err := a.deps.BusinessProfiles.GetByCustomerID(dbc, stored.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			bp := *bpIn
			bp.ID = uuid.New()
			bp.CustomerID = stored.ID
			bp.CreatedAt = now
			bp.UpdatedAt = now
			_, err := a.deps.BusinessProfiles.Create(dbc, []*types.BusinessCustomerProfile{&bp})
			return err
		}
		return a.deps.BusinessProfiles.UpdateFieldsByCustomerID(dbc, stored.ID, map[string]interface{}{
			"company_name": bpIn.CompanyName,
			"company_id":   bpIn.CompanyID,
			"updated_at":   now,
		})
	default:
		return InvariantError(fmt.Sprintf("unknown customer type %q", stored.Type))
	}
}

func (a *customerAggregate) DeleteCustomer(ctx context.Context, in domainagg.DeleteCustomerInput) (domainagg.DeleteCustomerResult, error) {
	const op = "Parties.Customer.Delete"
	var out domainagg.DeleteCustomerResult

	if in.CustomerID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing customer id", nil)
	}
	if a.deps.Customers == nil || a.deps.Accounts == nil || a.deps.Payments == nil ||
		a.deps.RegularContracts == nil || a.deps.BusinessContracts == nil ||
		a.deps.Addenda == nil || a.deps.AddendumServices == nil ||
		a.deps.RegularProfiles == nil || a.deps.BusinessProfiles == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "customer aggregate repos not configured", nil)
	}

	now := time.Now().UTC()
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		stored, err := a.deps.Customers.LockByID(dbc, in.CustomerID)
		if err != nil {
			return err
		}
		if stored == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("customer not found: %s", in.CustomerID.String()), nil)
		}

		account, err := a.deps.Accounts.GetByCustomerID(dbc, stored.ID)
		if err != nil {
			return err
		}
		if account != nil {
			locked, err := a.deps.Accounts.LockByID(dbc, account.ID)
			if err != nil {
				return err
			}
			if locked != nil && locked.Balance.IsNegative() {
				return domainagg.NewRuleError(domainagg.CodeInvariantViolation, domainagg.ReasonOutstandingDebt, op,
					fmt.Sprintf("account %s owes %s", locked.Number, locked.Balance.String()))
			}
			if err := a.deps.Payments.DeleteByAccountIDs(dbc, []uuid.UUID{account.ID}); err != nil {
				return err
			}
			if err := a.deps.Accounts.DeleteByIDs(dbc, []uuid.UUID{account.ID}); err != nil {
				return err
			}
		}

		switch stored.Type {
		case types.CustomerTypeRegular:
			if err := a.deleteContractWithAddenda(dbc, types.ContractKindRegular, stored.ID); err != nil {
				return err
			}
			if err := a.deps.RegularProfiles.DeleteByCustomerIDs(dbc, []uuid.UUID{stored.ID}); err != nil {
				return err
			}
		case types.CustomerTypeBusiness:
			if err := a.deleteContractWithAddenda(dbc, types.ContractKindBusiness, stored.ID); err != nil {
				return err
			}
			if err := a.deps.BusinessProfiles.DeleteByCustomerIDs(dbc, []uuid.UUID{stored.ID}); err != nil {
				return err
			}
		}

		if err := a.deps.Customers.DeleteByIDs(dbc, []uuid.UUID{stored.ID}); err != nil {
			return err
		}

		out = domainagg.DeleteCustomerResult{CustomerID: stored.ID, DeletedAt: now}
		return nil
	})
	return out, err
}

// deleteContractWithAddenda removes the customer's contract of the
// given kind plus the addenda hanging off it. Migrations skip FK
// constraints, so the cleanup order is explicit here.
func (a *customerAggregate) deleteContractWithAddenda(dbc dbctx.Context, kind string, customerID uuid.UUID) error {
	var contractID uuid.UUID
	switch kind {
	case types.ContractKindRegular:
		contract, err := a.deps.RegularContracts.GetByCustomerID(dbc, customerID)
		if err != nil {
			return err
		}
		if contract == nil {
			return nil
		}
		contractID = contract.ID
	case types.ContractKindBusiness:
		contract, err := a.deps.BusinessContracts.GetByCustomerID(dbc, customerID)
		if err != nil {
			return err
		}
		if contract == nil {
			return nil
		}
		contractID = contract.ID
	default:
		return InvariantError(fmt.Sprintf("unknown contract kind %q", kind))
	}

	addendumIDs, err := a.deps.Addenda.IDsForContract(dbc, kind, contractID)
	if err != nil {
		return err
	}
	if err := a.deps.AddendumServices.DeleteByAddendumIDs(dbc, addendumIDs); err != nil {
		return err
	}
	if err := a.deps.Addenda.DeleteByIDs(dbc, addendumIDs); err != nil {
		return err
	}
	switch kind {
	case types.ContractKindRegular:
		return a.deps.RegularContracts.DeleteByIDs(dbc, []uuid.UUID{contractID})
	default:
		return a.deps.BusinessContracts.DeleteByIDs(dbc, []uuid.UUID{contractID})
	}
}

func (a *customerAggregate) SetContract(ctx context.Context, in domainagg.SetContractInput) (domainagg.SetContractResult, error) {
	const op = "Parties.Customer.SetContract"
	var out domainagg.SetContractResult

	if in.CustomerID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing customer id", nil)
	}
	if in.RegularContract == nil && in.BusinessContract == nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing contract", nil)
	}
	if in.RegularContract != nil && in.BusinessContract != nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "exactly one contract kind may be set", nil)
	}
	if a.deps.Customers == nil || a.deps.RegularContracts == nil || a.deps.BusinessContracts == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "customer aggregate repos not configured", nil)
	}

	now := time.Now().UTC()
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		stored, err := a.deps.Customers.LockByID(dbc, in.CustomerID)
		if err != nil {
			return err
		}
		if stored == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("customer not found: %s", in.CustomerID.String()), nil)
		}
		if in.RegularContract != nil && stored.Type != types.CustomerTypeRegular {
			return domainagg.NewRuleError(domainagg.CodeValidation, domainagg.ReasonTypeMismatch, op, "regular contract on a business customer")
		}
		if in.BusinessContract != nil && stored.Type != types.CustomerTypeBusiness {
			return domainagg.NewRuleError(domainagg.CodeValidation, domainagg.ReasonTypeMismatch, op, "business contract on a regular customer")
		}

		if in.RegularContract != nil {
			rc := *in.RegularContract
			if rc.CustomerID != uuid.Nil && rc.CustomerID != stored.ID {
				return ConflictError("contract belongs to another customer")
			}
			if err := normalizeRegularContract(&rc, now); err != nil {
				return domainagg.Wrap(domainagg.CodeValidation, op, err)
			}
			existing, err := a.deps.RegularContracts.GetByCustomerID(dbc, stored.ID)
			if err != nil {
				return err
			}
			if existing == nil {
				rc.ID = uuid.New()
				rc.CustomerID = stored.ID
				rc.CreatedAt = now
				rc.UpdatedAt = now
				if _, err := a.deps.RegularContracts.Create(dbc, []*types.RegularContract{&rc}); err != nil {
					return err
				}
				out = domainagg.SetContractResult{CustomerID: stored.ID, ContractID: rc.ID, Kind: types.ContractKindRegular, Replaced: false}
				return nil
			}
			if err := a.deps.RegularContracts.UpdateFields(dbc, existing.ID, regularContractUpdates(rc, now)); err != nil {
				return err
			}
			out = domainagg.SetContractResult{CustomerID: stored.ID, ContractID: existing.ID, Kind: types.ContractKindRegular, Replaced: true}
			return nil
		}

		bc := *in.BusinessContract
		if bc.CustomerID != uuid.Nil && bc.CustomerID != stored.ID {
			return ConflictError("contract belongs to another customer")
		}
		if err := normalizeBusinessContract(&bc, now); err != nil {
			return domainagg.Wrap(domainagg.CodeValidation, op, err)
		}
		existing, err := a.deps.BusinessContracts.GetByCustomerID(dbc, stored.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			bc.ID = uuid.New()
			bc.CustomerID = stored.ID
			bc.CreatedAt = now
			bc.UpdatedAt = now
			if _, err := a.deps.BusinessContracts.Create(dbc, []*types.BusinessContract{&bc}); err != nil {
				return err
			}
			out = domainagg.SetContractResult{CustomerID: stored.ID, ContractID: bc.ID, Kind: types.ContractKindBusiness, Replaced: false}
			return nil
		}
		if err := a.deps.BusinessContracts.UpdateFields(dbc, existing.ID, businessContractUpdates(bc, now)); err != nil {
			return err
		}
		out = domainagg.SetContractResult{CustomerID: stored.ID, ContractID: existing.ID, Kind: types.ContractKindBusiness, Replaced: true}
		return nil
	})
	return out, err
}

func normalizeRegularContract(c *types.RegularContract, now time.Time) error {
	if c.ApprovalDate.IsZero() {
		c.ApprovalDate = now
	}
	if c.TerminationDelayDays == 0 {
		c.TerminationDelayDays = contracts.MinRegularTerminationDelayDays
	}
	if c.TerminationDelayDays < contracts.MinRegularTerminationDelayDays {
		return fmt.Errorf("termination delay %d below the regular minimum of %d days", c.TerminationDelayDays, contracts.MinRegularTerminationDelayDays)
	}
	if c.PayTermDays == 0 {
		c.PayTermDays = contracts.DefaultRegularPayTermDays
	}
	if c.PayTermDays < 0 {
		return fmt.Errorf("pay term must be positive")
	}
	return normalizeContractTags(&c.Status, &c.DurationType)
}

func normalizeBusinessContract(c *types.BusinessContract, now time.Time) error {
	if c.ApprovalDate.IsZero() {
		c.ApprovalDate = now
	}
	if c.TerminationDelayDays == 0 {
		c.TerminationDelayDays = contracts.MinBusinessTerminationDelayDays
	}
	if c.TerminationDelayDays < contracts.MinBusinessTerminationDelayDays {
		return fmt.Errorf("termination delay %d below the business minimum of %d days", c.TerminationDelayDays, contracts.MinBusinessTerminationDelayDays)
	}
	if c.PayTermDays == 0 {
		c.PayTermDays = contracts.DefaultBusinessPayTermDays
	}
	if c.PayTermDays < 0 {
		return fmt.Errorf("pay term must be positive")
	}
	return normalizeContractTags(&c.Status, &c.DurationType)
}

func normalizeContractTags(status, durationType *string) error {
	*status = strings.ToLower(strings.TrimSpace(*status))
	if *status == "" {
		*status = types.ContractStatusActive
	}
	if *status != types.ContractStatusActive && *status != types.ContractStatusSuspended {
		return fmt.Errorf("unknown contract status %q", *status)
	}
	*durationType = strings.ToLower(strings.TrimSpace(*durationType))
	if *durationType == "" {
		*durationType = types.ContractDurationExpirable
	}
	if *durationType != types.ContractDurationExpirable && *durationType != types.ContractDurationNonexpirable {
		return fmt.Errorf("unknown contract duration type %q", *durationType)
	}
	return nil
}

func regularContractUpdates(c types.RegularContract, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"approval_date":          c.ApprovalDate,
		"termination_date":       c.TerminationDate,
		"termination_delay_days": c.TerminationDelayDays,
		"pay_term_days":          c.PayTermDays,
		"status":                 c.Status,
		"duration_type":          c.DurationType,
		"updated_at":             now,
	}
}

func businessContractUpdates(c types.BusinessContract, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"approval_date":          c.ApprovalDate,
		"termination_date":       c.TerminationDate,
		"termination_delay_days": c.TerminationDelayDays,
		"pay_term_days":          c.PayTermDays,
		"status":                 c.Status,
		"duration_type":          c.DurationType,
		"updated_at":             now,
	}
}
