package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/webcomtel/webcom-backend/internal/domain"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

type AccountRepo interface {
	Create(dbc dbctx.Context, rows []*types.Account) ([]*types.Account, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Account, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Account, error)
	GetByCustomerIDs(dbc dbctx.Context, customerIDs []uuid.UUID) ([]*types.Account, error)
	GetByCustomerID(dbc dbctx.Context, customerID uuid.UUID) (*types.Account, error)
	NumberExists(dbc dbctx.Context, number string) (bool, error)
	LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Account, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteByCustomerIDs(dbc dbctx.Context, customerIDs []uuid.UUID) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type accountRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccountRepo(db *gorm.DB, log *logger.Logger) AccountRepo {
	return &accountRepo{db: db, log: log.With("repo", "AccountRepo")}
}

func (r *accountRepo) Create(dbc dbctx.Context, rows []*types.Account) ([]*types.Account, error) {
	if len(rows) == 0 {
		return []*types.Account{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if err := txx.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *accountRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Account, error) {
	if len(ids) == 0 {
		return []*types.Account{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Account
	if err := txx.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *accountRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Account, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *accountRepo) GetByCustomerIDs(dbc dbctx.Context, customerIDs []uuid.UUID) ([]*types.Account, error) {
	if len(customerIDs) == 0 {
		return []*types.Account{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Account
	if err := txx.WithContext(dbc.Ctx).
		Where("customer_id IN ?", customerIDs).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *accountRepo) GetByCustomerID(dbc dbctx.Context, customerID uuid.UUID) (*types.Account, error) {
	if customerID == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByCustomerIDs(dbc, []uuid.UUID{customerID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *accountRepo) NumberExists(dbc dbctx.Context, number string) (bool, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return false, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var count int64
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.Account{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// LockByID takes a row lock on the account so the debit arithmetic in
// Pay reads a balance no concurrent writer can move underneath it.
func (r *accountRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Account, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	if dbc.Tx == nil {
		return nil, fmt.Errorf("LockByID requires dbc.Tx")
	}
	var out []*types.Account
	if err := dbc.Tx.WithContext(dbc.Ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *accountRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil {
		return fmt.Errorf("missing id")
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Model(&types.Account{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *accountRepo) DeleteByCustomerIDs(dbc dbctx.Context, customerIDs []uuid.UUID) error {
	if len(customerIDs) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("customer_id IN ?", customerIDs).
		Delete(&types.Account{}).Error
}

func (r *accountRepo) DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).Where("id IN ?", ids).Delete(&types.Account{}).Error
}
