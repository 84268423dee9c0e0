package aggregates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/webcomtel/webcom-backend/internal/data/repos"
	types "github.com/webcomtel/webcom-backend/internal/domain"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"github.com/webcomtel/webcom-backend/internal/domain/money"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
)

type EmployeeAggregateDeps struct {
	Base BaseDeps

	Employees   repos.TechnicalEmployeeRepo
	Technicians repos.TechnicianRepo
	SysAdmins   repos.SysAdminRepo
}

type employeeAggregate struct {
	deps EmployeeAggregateDeps
}

func NewEmployeeAggregate(deps EmployeeAggregateDeps) domainagg.EmployeeAggregate {
	deps.Base = deps.Base.withDefaults()
	return &employeeAggregate{deps: deps}
}

func (a *employeeAggregate) Contract() domainagg.Contract {
	return domainagg.EmployeeAggregateContract
}

func (a *employeeAggregate) CreateEmployee(ctx context.Context, in domainagg.CreateEmployeeInput) (domainagg.CreateEmployeeResult, error) {
	const op = "Workforce.Employee.Create"
	var out domainagg.CreateEmployeeResult

	emp := in.Employee
	empType := strings.ToLower(strings.TrimSpace(emp.EmployeeType))
	if empType != types.EmployeeTypeTechnician && empType != types.EmployeeTypeSysAdmin {
		return out, domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("unknown employee type %q", emp.EmployeeType), nil)
	}
	email := strings.ToLower(strings.TrimSpace(emp.Email))
	if !emailRE.MatchString(email) {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "invalid email", nil)
	}
	phone := strings.TrimSpace(emp.Phone)
	if !phoneRE.MatchString(phone) {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "invalid phone", nil)
	}
	if strings.TrimSpace(emp.FirstName) == "" || strings.TrimSpace(emp.LastName) == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "first and last name are required", nil)
	}
	if emp.Seniority < 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "seniority cannot be negative", nil)
	}
	if emp.Salary.IsNegative() {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "salary cannot be negative", nil)
	}
	if a.deps.Employees == nil || a.deps.Technicians == nil || a.deps.SysAdmins == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "employee aggregate repos not configured", nil)
	}

	now := time.Now().UTC()
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		base := emp
		base.ID = uuid.New()
		base.Email = email
		base.Phone = phone
		base.EmployeeType = empType
		base.Salary = money.New(emp.Salary.Amount, emp.Salary.Currency)
		base.Version = 0
		base.CreatedAt = now
		base.UpdatedAt = now
		if _, err := a.deps.Employees.Create(dbc, []*types.TechnicalEmployee{&base}); err != nil {
			return err
		}

		roleRowID, err := a.createRoleRow(dbc, empType, base.ID, now)
		if err != nil {
			return err
		}

		out = domainagg.CreateEmployeeResult{
			EmployeeID: base.ID,
			RoleRowID:  roleRowID,
			CreatedAt:  now,
		}
		return nil
	})
	return out, err
}

func (a *employeeAggregate) createRoleRow(dbc dbctx.Context, empType string, employeeID uuid.UUID, now time.Time) (uuid.UUID, error) {
	switch empType {
	case types.EmployeeTypeTechnician:
		row := &types.Technician{ID: uuid.New(), EmployeeID: employeeID, CreatedAt: now, UpdatedAt: now}
		if _, err := a.deps.Technicians.Create(dbc, []*types.Technician{row}); err != nil {
			return uuid.Nil, err
		}
		return row.ID, nil
	case types.EmployeeTypeSysAdmin:
		row := &types.SysAdmin{ID: uuid.New(), EmployeeID: employeeID, CreatedAt: now, UpdatedAt: now}
		if _, err := a.deps.SysAdmins.Create(dbc, []*types.SysAdmin{row}); err != nil {
			return uuid.Nil, err
		}
		return row.ID, nil
	default:
		return uuid.Nil, InvariantError(fmt.Sprintf("unknown employee type %q", empType))
	}
}

func (a *employeeAggregate) SaveEmployee(ctx context.Context, in domainagg.SaveEmployeeInput) (domainagg.SaveEmployeeResult, error) {
	const op = "Workforce.Employee.Save"
	var out domainagg.SaveEmployeeResult

	emp := in.Employee
	if emp.ID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing employee id", nil)
	}
	email := strings.ToLower(strings.TrimSpace(emp.Email))
	if !emailRE.MatchString(email) {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "invalid email", nil)
	}
	phone := strings.TrimSpace(emp.Phone)
	if !phoneRE.MatchString(phone) {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "invalid phone", nil)
	}
	if strings.TrimSpace(emp.FirstName) == "" || strings.TrimSpace(emp.LastName) == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "first and last name are required", nil)
	}
	if emp.Seniority < 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "seniority cannot be negative", nil)
	}
	if a.deps.Employees == nil || a.deps.Technicians == nil || a.deps.SysAdmins == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "employee aggregate repos not configured", nil)
	}

	now := time.Now().UTC()
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		stored, err := a.deps.Employees.LockByID(dbc, emp.ID)
		if err != nil {
			return err
		}
		if stored == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("employee not found: %s", emp.ID.String()), nil)
		}
		if emp.EmployeeType != "" && emp.EmployeeType != stored.EmployeeType {
			return domainagg.NewRuleError(domainagg.CodeValidation, domainagg.ReasonTypeMismatch, op, "employee type changes go through the type switch")
		}

		if err := a.requireRoleRow(dbc, op, stored); err != nil {
			return err
		}

		salary := money.New(emp.Salary.Amount, emp.Salary.Currency)
		ok, err := a.deps.Base.CASGuard.UpdateByVersion(dbc, "technical_employee", stored.ID, emp.Version, map[string]any{
			"email":            email,
			"phone":            phone,
			"first_name":       emp.FirstName,
			"last_name":        emp.LastName,
			"apartment_number": emp.ApartmentNumber,
			"address_id":       emp.AddressID,
			"salary_amount":    salary.Amount,
			"salary_currency":  salary.Currency,
			"seniority":        emp.Seniority,
			"version":          emp.Version + 1,
			"updated_at":       now,
		})
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "employee changed concurrently"); err != nil {
			return err
		}

		out = domainagg.SaveEmployeeResult{
			EmployeeID: stored.ID,
			Version:    emp.Version + 1,
			SavedAt:    now,
		}
		return nil
	})
	return out, err
}

// requireRoleRow confirms the role row named by the base tag exists.
// A base row whose role row went missing is unusable until the type is
// set again, which is what ReasonTypeNotSet signals to callers.
func (a *employeeAggregate) requireRoleRow(dbc dbctx.Context, op string, stored *types.TechnicalEmployee) error {
	switch stored.EmployeeType {
	case types.EmployeeTypeTechnician:
		row, err := a.deps.Technicians.GetByEmployeeID(dbc, stored.ID)
		if err != nil {
			return err
		}
		if row == nil {
			return domainagg.NewRuleError(domainagg.CodeInvariantViolation, domainagg.ReasonTypeNotSet, op, "employee has no technician row")
		}
	case types.EmployeeTypeSysAdmin:
		row, err := a.deps.SysAdmins.GetByEmployeeID(dbc, stored.ID)
		if err != nil {
			return err
		}
		if row == nil {
			return domainagg.NewRuleError(domainagg.CodeInvariantViolation, domainagg.ReasonTypeNotSet, op, "employee has no sysadmin row")
		}
	default:
		return domainagg.NewRuleError(domainagg.CodeInvariantViolation, domainagg.ReasonTypeNotSet, op, fmt.Sprintf("unknown employee type %q", stored.EmployeeType))
	}
	return nil
}

func (a *employeeAggregate) DeleteEmployee(ctx context.Context, in domainagg.DeleteEmployeeInput) (domainagg.DeleteEmployeeResult, error) {
	const op = "Workforce.Employee.Delete"
	var out domainagg.DeleteEmployeeResult

	if in.EmployeeID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing employee id", nil)
	}
	if a.deps.Employees == nil || a.deps.Technicians == nil || a.deps.SysAdmins == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "employee aggregate repos not configured", nil)
	}

	now := time.Now().UTC()
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		stored, err := a.deps.Employees.LockByID(dbc, in.EmployeeID)
		if err != nil {
			return err
		}
		if stored == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("employee not found: %s", in.EmployeeID.String()), nil)
		}

		ids := []uuid.UUID{stored.ID}
		if err := a.deps.Technicians.DeleteByEmployeeIDs(dbc, ids); err != nil {
			return err
		}
		if err := a.deps.SysAdmins.DeleteByEmployeeIDs(dbc, ids); err != nil {
			return err
		}
		if err := a.deps.Employees.DeleteByIDs(dbc, ids); err != nil {
			return err
		}

		out = domainagg.DeleteEmployeeResult{EmployeeID: stored.ID, DeletedAt: now}
		return nil
	})
	return out, err
}

func (a *employeeAggregate) SwitchEmployeeType(ctx context.Context, in domainagg.SwitchEmployeeTypeInput) (domainagg.SwitchEmployeeTypeResult, error) {
	const op = "Workforce.Employee.SwitchType"
	var out domainagg.SwitchEmployeeTypeResult

	if in.EmployeeID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing employee id", nil)
	}
	newType := strings.ToLower(strings.TrimSpace(in.NewType))
	if newType != types.EmployeeTypeTechnician && newType != types.EmployeeTypeSysAdmin {
		return out, domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("unknown employee type %q", in.NewType), nil)
	}
	if a.deps.Employees == nil || a.deps.Technicians == nil || a.deps.SysAdmins == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "employee aggregate repos not configured", nil)
	}

	now := time.Now().UTC()
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		stored, err := a.deps.Employees.LockByID(dbc, in.EmployeeID)
		if err != nil {
			return err
		}
		if stored == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("employee not found: %s", in.EmployeeID.String()), nil)
		}
		if in.ExpectedVersion != nil {
			if err := RequireVersionMatch(stored.Version, *in.ExpectedVersion); err != nil {
				return err
			}
		}

		if stored.EmployeeType == newType {
			out = domainagg.SwitchEmployeeTypeResult{
				EmployeeID:   stored.ID,
				EmployeeType: stored.EmployeeType,
				Switched:     false,
				Version:      stored.Version,
				SwitchedAt:   now,
			}
			return nil
		}

		// The old role row goes first. Any state it carried is lost on
		// purpose; the fresh row starts the new role from scratch.
		ids := []uuid.UUID{stored.ID}
		switch stored.EmployeeType {
		case types.EmployeeTypeTechnician:
			if err := a.deps.Technicians.DeleteByEmployeeIDs(dbc, ids); err != nil {
				return err
			}
		case types.EmployeeTypeSysAdmin:
			if err := a.deps.SysAdmins.DeleteByEmployeeIDs(dbc, ids); err != nil {
				return err
			}
		}
		if _, err := a.createRoleRow(dbc, newType, stored.ID, now); err != nil {
			return err
		}

		ok, err := a.deps.Base.CASGuard.UpdateByVersion(dbc, "technical_employee", stored.ID, stored.Version, map[string]any{
			"employee_type": newType,
			"version":       stored.Version + 1,
			"updated_at":    now,
		})
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "employee changed concurrently"); err != nil {
			return err
		}

		out = domainagg.SwitchEmployeeTypeResult{
			EmployeeID:   stored.ID,
			EmployeeType: newType,
			Switched:     true,
			Version:      stored.Version + 1,
			SwitchedAt:   now,
		}
		return nil
	})
	return out, err
}
