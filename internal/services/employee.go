package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/webcomtel/webcom-backend/internal/data/repos"
	types "github.com/webcomtel/webcom-backend/internal/domain"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"github.com/webcomtel/webcom-backend/internal/domain/money"
	"github.com/webcomtel/webcom-backend/internal/domain/workforce"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

// EmployeeService fronts the employee aggregate and the workforce read
// side, including the role bonus rule.
type EmployeeService interface {
	Create(ctx context.Context, in domainagg.CreateEmployeeInput) (domainagg.CreateEmployeeResult, error)
	Save(ctx context.Context, in domainagg.SaveEmployeeInput) (domainagg.SaveEmployeeResult, error)
	Delete(ctx context.Context, employeeID uuid.UUID) (domainagg.DeleteEmployeeResult, error)
	SwitchType(ctx context.Context, in domainagg.SwitchEmployeeTypeInput) (domainagg.SwitchEmployeeTypeResult, error)

	Get(ctx context.Context, employeeID uuid.UUID) (*EmployeeView, error)
	List(ctx context.Context, limit int) ([]*types.TechnicalEmployee, error)
	Bonus(ctx context.Context, employeeID uuid.UUID) (money.Money, error)
}

type EmployeeView struct {
	Employee   types.TechnicalEmployee `json:"employee"`
	Technician *types.Technician       `json:"technician,omitempty"`
	SysAdmin   *types.SysAdmin         `json:"sysadmin,omitempty"`
}

type employeeService struct {
	log *logger.Logger
	agg domainagg.EmployeeAggregate

	employees   repos.TechnicalEmployeeRepo
	technicians repos.TechnicianRepo
	sysadmins   repos.SysAdminRepo
}

func NewEmployeeService(
	baseLog *logger.Logger,
	agg domainagg.EmployeeAggregate,
	employees repos.TechnicalEmployeeRepo,
	technicians repos.TechnicianRepo,
	sysadmins repos.SysAdminRepo,
) EmployeeService {
	return &employeeService{
		log:         baseLog.With("service", "EmployeeService"),
		agg:         agg,
		employees:   employees,
		technicians: technicians,
		sysadmins:   sysadmins,
	}
}

func (s *employeeService) Create(ctx context.Context, in domainagg.CreateEmployeeInput) (domainagg.CreateEmployeeResult, error) {
	if s == nil || s.agg == nil {
		return domainagg.CreateEmployeeResult{}, fmt.Errorf("employee service not configured")
	}
	return s.agg.CreateEmployee(ctx, in)
}

func (s *employeeService) Save(ctx context.Context, in domainagg.SaveEmployeeInput) (domainagg.SaveEmployeeResult, error) {
	if s == nil || s.agg == nil {
		return domainagg.SaveEmployeeResult{}, fmt.Errorf("employee service not configured")
	}
	return s.agg.SaveEmployee(ctx, in)
}

func (s *employeeService) Delete(ctx context.Context, employeeID uuid.UUID) (domainagg.DeleteEmployeeResult, error) {
	if s == nil || s.agg == nil {
		return domainagg.DeleteEmployeeResult{}, fmt.Errorf("employee service not configured")
	}
	return s.agg.DeleteEmployee(ctx, domainagg.DeleteEmployeeInput{EmployeeID: employeeID})
}

func (s *employeeService) SwitchType(ctx context.Context, in domainagg.SwitchEmployeeTypeInput) (domainagg.SwitchEmployeeTypeResult, error) {
	if s == nil || s.agg == nil {
		return domainagg.SwitchEmployeeTypeResult{}, fmt.Errorf("employee service not configured")
	}
	return s.agg.SwitchEmployeeType(ctx, in)
}

func (s *employeeService) Get(ctx context.Context, employeeID uuid.UUID) (*EmployeeView, error) {
	const op = "EmployeeService.Get"
	if s == nil || s.employees == nil {
		return nil, fmt.Errorf("employee service not configured")
	}
	if employeeID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing employee id", nil)
	}

	dbc := dbctx.Context{Ctx: ctx}
	employee, err := s.employees.GetByID(dbc, employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("employee not found: %s", employeeID.String()), nil)
	}

	view := &EmployeeView{Employee: *employee}
	switch employee.EmployeeType {
	case types.EmployeeTypeTechnician:
		if view.Technician, err = s.technicians.GetByEmployeeID(dbc, employeeID); err != nil {
			return nil, err
		}
	case types.EmployeeTypeSysAdmin:
		if view.SysAdmin, err = s.sysadmins.GetByEmployeeID(dbc, employeeID); err != nil {
			return nil, err
		}
	}
	return view, nil
}

func (s *employeeService) List(ctx context.Context, limit int) ([]*types.TechnicalEmployee, error) {
	if s == nil || s.employees == nil {
		return nil, fmt.Errorf("employee service not configured")
	}
	return s.employees.List(dbctx.Context{Ctx: ctx}, limit)
}

// Bonus applies the role rule to the stored employee. The matching role
// row must exist; a base row without one is in the type-not-set state
// and has no bonus to compute.
func (s *employeeService) Bonus(ctx context.Context, employeeID uuid.UUID) (money.Money, error) {
	const op = "EmployeeService.Bonus"
	if s == nil || s.employees == nil || s.technicians == nil || s.sysadmins == nil {
		return money.Money{}, fmt.Errorf("employee service not configured")
	}
	if employeeID == uuid.Nil {
		return money.Money{}, domainagg.NewError(domainagg.CodeValidation, op, "missing employee id", nil)
	}

	dbc := dbctx.Context{Ctx: ctx}
	employee, err := s.employees.GetByID(dbc, employeeID)
	if err != nil {
		return money.Money{}, err
	}
	if employee == nil {
		return money.Money{}, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("employee not found: %s", employeeID.String()), nil)
	}

	var hasRole bool
	switch employee.EmployeeType {
	case types.EmployeeTypeTechnician:
		role, err := s.technicians.GetByEmployeeID(dbc, employeeID)
		if err != nil {
			return money.Money{}, err
		}
		hasRole = role != nil
	case types.EmployeeTypeSysAdmin:
		role, err := s.sysadmins.GetByEmployeeID(dbc, employeeID)
		if err != nil {
			return money.Money{}, err
		}
		hasRole = role != nil
	}
	if !hasRole {
		return money.Money{}, domainagg.NewRuleError(domainagg.CodeInvariantViolation, domainagg.ReasonTypeNotSet, op, "employee has no technician/sysadmin row")
	}

	bonus, err := workforce.BonusFor(employee.EmployeeType, employee.Salary)
	if err != nil {
		return money.Money{}, domainagg.NewRuleError(domainagg.CodeInvariantViolation, domainagg.ReasonTypeNotSet, op, err.Error())
	}
	return bonus, nil
}
