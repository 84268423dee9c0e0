package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/webcomtel/webcom-backend/internal/data/repos"
	types "github.com/webcomtel/webcom-backend/internal/domain"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

// StaffService covers the fixed-role staff records. Client managers and
// accountants have no role variants and no bonus, so plain repo writes
// are enough; no aggregate is involved.
type StaffService interface {
	CreateClientManager(ctx context.Context, in types.ClientManager) (*types.ClientManager, error)
	ListClientManagers(ctx context.Context, limit int) ([]*types.ClientManager, error)
	DeleteClientManager(ctx context.Context, id uuid.UUID) error

	CreateAccountant(ctx context.Context, in types.Accountant) (*types.Accountant, error)
	ListAccountants(ctx context.Context, limit int) ([]*types.Accountant, error)
	DeleteAccountant(ctx context.Context, id uuid.UUID) error
}

type staffService struct {
	log            *logger.Logger
	clientManagers repos.ClientManagerRepo
	accountants    repos.AccountantRepo
}

func NewStaffService(
	baseLog *logger.Logger,
	clientManagers repos.ClientManagerRepo,
	accountants repos.AccountantRepo,
) StaffService {
	return &staffService{
		log:            baseLog.With("service", "StaffService"),
		clientManagers: clientManagers,
		accountants:    accountants,
	}
}

func validateStaffContact(op, email, phone, firstName, lastName string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", domainagg.NewError(domainagg.CodeValidation, op, "missing email", nil)
	}
	if strings.TrimSpace(phone) == "" {
		return "", domainagg.NewError(domainagg.CodeValidation, op, "missing phone", nil)
	}
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return "", domainagg.NewError(domainagg.CodeValidation, op, "missing name", nil)
	}
	return email, nil
}

func (s *staffService) CreateClientManager(ctx context.Context, in types.ClientManager) (*types.ClientManager, error) {
	const op = "StaffService.CreateClientManager"
	if s == nil || s.clientManagers == nil {
		return nil, fmt.Errorf("staff service not configured")
	}
	email, err := validateStaffContact(op, in.Email, in.Phone, in.FirstName, in.LastName)
	if err != nil {
		return nil, err
	}
	if in.Salary.IsNegative() {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "salary cannot be negative", nil)
	}

	dbc := dbctx.Context{Ctx: ctx}
	taken, err := s.clientManagers.EmailExists(dbc, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domainagg.NewError(domainagg.CodeConflict, op, fmt.Sprintf("email already taken: %s", email), nil)
	}

	now := time.Now().UTC()
	row := in
	row.ID = uuid.New()
	row.Email = email
	row.CreatedAt = now
	row.UpdatedAt = now
	if _, err := s.clientManagers.Create(dbc, []*types.ClientManager{&row}); err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *staffService) ListClientManagers(ctx context.Context, limit int) ([]*types.ClientManager, error) {
	if s == nil || s.clientManagers == nil {
		return nil, fmt.Errorf("staff service not configured")
	}
	return s.clientManagers.List(dbctx.Context{Ctx: ctx}, limit)
}

func (s *staffService) DeleteClientManager(ctx context.Context, id uuid.UUID) error {
	const op = "StaffService.DeleteClientManager"
	if s == nil || s.clientManagers == nil {
		return fmt.Errorf("staff service not configured")
	}
	if id == uuid.Nil {
		return domainagg.NewError(domainagg.CodeValidation, op, "missing client manager id", nil)
	}
	dbc := dbctx.Context{Ctx: ctx}
	rows, err := s.clientManagers.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("client manager not found: %s", id.String()), nil)
	}
	return s.clientManagers.DeleteByIDs(dbc, []uuid.UUID{id})
}

func (s *staffService) CreateAccountant(ctx context.Context, in types.Accountant) (*types.Accountant, error) {
	const op = "StaffService.CreateAccountant"
	if s == nil || s.accountants == nil {
		return nil, fmt.Errorf("staff service not configured")
	}
	email, err := validateStaffContact(op, in.Email, in.Phone, in.FirstName, in.LastName)
	if err != nil {
		return nil, err
	}
	if in.Salary.IsNegative() {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "salary cannot be negative", nil)
	}

	dbc := dbctx.Context{Ctx: ctx}
	taken, err := s.accountants.EmailExists(dbc, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domainagg.NewError(domainagg.CodeConflict, op, fmt.Sprintf("email already taken: %s", email), nil)
	}

	now := time.Now().UTC()
	row := in
	row.ID = uuid.New()
	row.Email = email
	row.CreatedAt = now
	row.UpdatedAt = now
	if _, err := s.accountants.Create(dbc, []*types.Accountant{&row}); err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *staffService) ListAccountants(ctx context.Context, limit int) ([]*types.Accountant, error) {
	if s == nil || s.accountants == nil {
		return nil, fmt.Errorf("staff service not configured")
	}
	return s.accountants.List(dbctx.Context{Ctx: ctx}, limit)
}

func (s *staffService) DeleteAccountant(ctx context.Context, id uuid.UUID) error {
	const op = "StaffService.DeleteAccountant"
	if s == nil || s.accountants == nil {
		return fmt.Errorf("staff service not configured")
	}
	if id == uuid.Nil {
		return domainagg.NewError(domainagg.CodeValidation, op, "missing accountant id", nil)
	}
	dbc := dbctx.Context{Ctx: ctx}
	rows, err := s.accountants.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("accountant not found: %s", id.String()), nil)
	}
	return s.accountants.DeleteByIDs(dbc, []uuid.UUID{id})
}
