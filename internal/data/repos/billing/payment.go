package billing

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/webcomtel/webcom-backend/internal/domain"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

type PaymentRepo interface {
	Create(dbc dbctx.Context, rows []*types.Payment) ([]*types.Payment, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Payment, error)
	ListByAccount(dbc dbctx.Context, accountID uuid.UUID, limit int) ([]*types.Payment, error)
	DeleteByAccountIDs(dbc dbctx.Context, accountIDs []uuid.UUID) error
}

type paymentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPaymentRepo(db *gorm.DB, log *logger.Logger) PaymentRepo {
	return &paymentRepo{db: db, log: log.With("repo", "PaymentRepo")}
}

func (r *paymentRepo) Create(dbc dbctx.Context, rows []*types.Payment) ([]*types.Payment, error) {
	if len(rows) == 0 {
		return []*types.Payment{}, nil
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

func (r *paymentRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Payment, error) {
	if len(ids) == 0 {
		return []*types.Payment{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Payment
	if err := txx.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *paymentRepo) ListByAccount(dbc dbctx.Context, accountID uuid.UUID, limit int) ([]*types.Payment, error) {
	if accountID == uuid.Nil {
		return nil, fmt.Errorf("missing account_id")
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Payment
	if err := txx.WithContext(dbc.Ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *paymentRepo) DeleteByAccountIDs(dbc dbctx.Context, accountIDs []uuid.UUID) error {
	if len(accountIDs) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("account_id IN ?", accountIDs).
		Delete(&types.Payment{}).Error
}
