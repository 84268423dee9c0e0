package fleet

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/webcomtel/webcom-backend/internal/domain"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

type LaptopRepo interface {
	Create(dbc dbctx.Context, rows []*types.Laptop) ([]*types.Laptop, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Laptop, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Laptop, error)
	List(dbc dbctx.Context, limit int) ([]*types.Laptop, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type laptopRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLaptopRepo(db *gorm.DB, log *logger.Logger) LaptopRepo {
	return &laptopRepo{db: db, log: log.With("repo", "LaptopRepo")}
}

func (r *laptopRepo) Create(dbc dbctx.Context, rows []*types.Laptop) ([]*types.Laptop, error) {
	if len(rows) == 0 {
		return []*types.Laptop{}, nil
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

func (r *laptopRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Laptop, error) {
	if len(ids) == 0 {
		return []*types.Laptop{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Laptop
	if err := txx.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *laptopRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Laptop, error) {
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

func (r *laptopRepo) List(dbc dbctx.Context, limit int) ([]*types.Laptop, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Laptop
	if err := txx.WithContext(dbc.Ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *laptopRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.Laptop{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *laptopRepo) DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).Where("id IN ?", ids).Delete(&types.Laptop{}).Error
}

type ServerRepo interface {
	Create(dbc dbctx.Context, rows []*types.Server) ([]*types.Server, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Server, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Server, error)
	List(dbc dbctx.Context, limit int) ([]*types.Server, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type serverRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewServerRepo(db *gorm.DB, log *logger.Logger) ServerRepo {
	return &serverRepo{db: db, log: log.With("repo", "ServerRepo")}
}

func (r *serverRepo) Create(dbc dbctx.Context, rows []*types.Server) ([]*types.Server, error) {
	if len(rows) == 0 {
		return []*types.Server{}, nil
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

func (r *serverRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Server, error) {
	if len(ids) == 0 {
		return []*types.Server{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Server
	if err := txx.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *serverRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Server, error) {
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

func (r *serverRepo) List(dbc dbctx.Context, limit int) ([]*types.Server, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Server
	if err := txx.WithContext(dbc.Ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *serverRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.Server{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *serverRepo) DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).Where("id IN ?", ids).Delete(&types.Server{}).Error
}

type RouterRepo interface {
	Create(dbc dbctx.Context, rows []*types.Router) ([]*types.Router, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Router, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Router, error)
	List(dbc dbctx.Context, limit int) ([]*types.Router, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type routerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRouterRepo(db *gorm.DB, log *logger.Logger) RouterRepo {
	return &routerRepo{db: db, log: log.With("repo", "RouterRepo")}
}

func (r *routerRepo) Create(dbc dbctx.Context, rows []*types.Router) ([]*types.Router, error) {
	if len(rows) == 0 {
		return []*types.Router{}, nil
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

func (r *routerRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Router, error) {
	if len(ids) == 0 {
		return []*types.Router{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Router
	if err := txx.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *routerRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Router, error) {
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

func (r *routerRepo) List(dbc dbctx.Context, limit int) ([]*types.Router, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Router
	if err := txx.WithContext(dbc.Ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *routerRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.Router{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *routerRepo) DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).Where("id IN ?", ids).Delete(&types.Router{}).Error
}
