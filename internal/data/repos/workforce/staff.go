package workforce

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/webcomtel/webcom-backend/internal/domain"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

type ClientManagerRepo interface {
	Create(dbc dbctx.Context, rows []*types.ClientManager) ([]*types.ClientManager, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.ClientManager, error)
	EmailExists(dbc dbctx.Context, email string) (bool, error)
	List(dbc dbctx.Context, limit int) ([]*types.ClientManager, error)
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type clientManagerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClientManagerRepo(db *gorm.DB, log *logger.Logger) ClientManagerRepo {
	return &clientManagerRepo{db: db, log: log.With("repo", "ClientManagerRepo")}
}

func (r *clientManagerRepo) Create(dbc dbctx.Context, rows []*types.ClientManager) ([]*types.ClientManager, error) {
	if len(rows) == 0 {
		return []*types.ClientManager{}, nil
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

func (r *clientManagerRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.ClientManager, error) {
	if len(ids) == 0 {
		return []*types.ClientManager{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.ClientManager
	if err := txx.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *clientManagerRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var count int64
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.ClientManager{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *clientManagerRepo) List(dbc dbctx.Context, limit int) ([]*types.ClientManager, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.ClientManager
	if err := txx.WithContext(dbc.Ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *clientManagerRepo) DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).Where("id IN ?", ids).Delete(&types.ClientManager{}).Error
}

type AccountantRepo interface {
	Create(dbc dbctx.Context, rows []*types.Accountant) ([]*types.Accountant, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Accountant, error)
	EmailExists(dbc dbctx.Context, email string) (bool, error)
	List(dbc dbctx.Context, limit int) ([]*types.Accountant, error)
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type accountantRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccountantRepo(db *gorm.DB, log *logger.Logger) AccountantRepo {
	return &accountantRepo{db: db, log: log.With("repo", "AccountantRepo")}
}

func (r *accountantRepo) Create(dbc dbctx.Context, rows []*types.Accountant) ([]*types.Accountant, error) {
	if len(rows) == 0 {
		return []*types.Accountant{}, nil
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

func (r *accountantRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Accountant, error) {
	if len(ids) == 0 {
		return []*types.Accountant{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Accountant
	if err := txx.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *accountantRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var count int64
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.Accountant{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *accountantRepo) List(dbc dbctx.Context, limit int) ([]*types.Accountant, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Accountant
	if err := txx.WithContext(dbc.Ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *accountantRepo) DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).Where("id IN ?", ids).Delete(&types.Accountant{}).Error
}
