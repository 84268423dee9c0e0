package fleet

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/webcomtel/webcom-backend/internal/domain"
	"github.com/webcomtel/webcom-backend/internal/platform/dbctx"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
)

type LaptopRepairRepo interface {
	Create(dbc dbctx.Context, rows []*types.LaptopRepair) ([]*types.LaptopRepair, error)
	ListByDevice(dbc dbctx.Context, laptopID uuid.UUID, limit int) ([]*types.LaptopRepair, error)
	DeleteByDeviceIDs(dbc dbctx.Context, laptopIDs []uuid.UUID) error
}

type laptopRepairRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLaptopRepairRepo(db *gorm.DB, log *logger.Logger) LaptopRepairRepo {
	return &laptopRepairRepo{db: db, log: log.With("repo", "LaptopRepairRepo")}
}

func (r *laptopRepairRepo) Create(dbc dbctx.Context, rows []*types.LaptopRepair) ([]*types.LaptopRepair, error) {
	if len(rows) == 0 {
		return []*types.LaptopRepair{}, nil
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

func (r *laptopRepairRepo) ListByDevice(dbc dbctx.Context, laptopID uuid.UUID, limit int) ([]*types.LaptopRepair, error) {
	if laptopID == uuid.Nil {
		return nil, fmt.Errorf("missing laptop_id")
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.LaptopRepair
	if err := txx.WithContext(dbc.Ctx).
		Where("laptop_id = ?", laptopID).
		Order("repaired_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *laptopRepairRepo) DeleteByDeviceIDs(dbc dbctx.Context, laptopIDs []uuid.UUID) error {
	if len(laptopIDs) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("laptop_id IN ?", laptopIDs).
		Delete(&types.LaptopRepair{}).Error
}

type ServerRepairRepo interface {
	Create(dbc dbctx.Context, rows []*types.ServerRepair) ([]*types.ServerRepair, error)
	ListByDevice(dbc dbctx.Context, serverID uuid.UUID, limit int) ([]*types.ServerRepair, error)
	DeleteByDeviceIDs(dbc dbctx.Context, serverIDs []uuid.UUID) error
}

type serverRepairRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewServerRepairRepo(db *gorm.DB, log *logger.Logger) ServerRepairRepo {
	return &serverRepairRepo{db: db, log: log.With("repo", "ServerRepairRepo")}
}

func (r *serverRepairRepo) Create(dbc dbctx.Context, rows []*types.ServerRepair) ([]*types.ServerRepair, error) {
	if len(rows) == 0 {
		return []*types.ServerRepair{}, nil
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

func (r *serverRepairRepo) ListByDevice(dbc dbctx.Context, serverID uuid.UUID, limit int) ([]*types.ServerRepair, error) {
	if serverID == uuid.Nil {
		return nil, fmt.Errorf("missing server_id")
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.ServerRepair
	if err := txx.WithContext(dbc.Ctx).
		Where("server_id = ?", serverID).
		Order("repaired_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *serverRepairRepo) DeleteByDeviceIDs(dbc dbctx.Context, serverIDs []uuid.UUID) error {
	if len(serverIDs) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("server_id IN ?", serverIDs).
		Delete(&types.ServerRepair{}).Error
}

type RouterRepairRepo interface {
	Create(dbc dbctx.Context, rows []*types.RouterRepair) ([]*types.RouterRepair, error)
	ListByDevice(dbc dbctx.Context, routerID uuid.UUID, limit int) ([]*types.RouterRepair, error)
	DeleteByDeviceIDs(dbc dbctx.Context, routerIDs []uuid.UUID) error
}

type routerRepairRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRouterRepairRepo(db *gorm.DB, log *logger.Logger) RouterRepairRepo {
	return &routerRepairRepo{db: db, log: log.With("repo", "RouterRepairRepo")}
}

func (r *routerRepairRepo) Create(dbc dbctx.Context, rows []*types.RouterRepair) ([]*types.RouterRepair, error) {
	if len(rows) == 0 {
		return []*types.RouterRepair{}, nil
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

func (r *routerRepairRepo) ListByDevice(dbc dbctx.Context, routerID uuid.UUID, limit int) ([]*types.RouterRepair, error) {
	if routerID == uuid.Nil {
		return nil, fmt.Errorf("missing router_id")
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.RouterRepair
	if err := txx.WithContext(dbc.Ctx).
		Where("router_id = ?", routerID).
		Order("repaired_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *routerRepairRepo) DeleteByDeviceIDs(dbc dbctx.Context, routerIDs []uuid.UUID) error {
	if len(routerIDs) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("router_id IN ?", routerIDs).
		Delete(&types.RouterRepair{}).Error
}
