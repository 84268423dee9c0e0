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

// FleetService manages the device inventory and its repair history.
// Each device kind has its own table and repo; the service folds them
// behind one kind-tagged API so handlers stay flat.
type FleetService interface {
	CreateDevice(ctx context.Context, in CreateDeviceInput) (*DeviceView, error)
	ListDevices(ctx context.Context, kind string, limit int) ([]*DeviceView, error)
	RecordRepair(ctx context.Context, in RecordRepairInput) (*RepairView, error)
	ListRepairs(ctx context.Context, kind string, deviceID uuid.UUID, limit int) ([]*RepairView, error)
}

type CreateDeviceInput struct {
	Kind         string `json:"kind"`
	Model        string `json:"model"`
	Manufacturer string `json:"manufacturer"`
}

type RecordRepairInput struct {
	Kind         string     `json:"kind"`
	DeviceID     uuid.UUID  `json:"device_id"`
	TechnicianID uuid.UUID  `json:"technician_id"`
	RepairedAt   *time.Time `json:"repaired_at,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

type DeviceView struct {
	ID           uuid.UUID `json:"id"`
	Kind         string    `json:"kind"`
	Model        string    `json:"model"`
	Manufacturer string    `json:"manufacturer"`
	CreatedAt    time.Time `json:"created_at"`
}

type RepairView struct {
	ID           uuid.UUID `json:"id"`
	Kind         string    `json:"kind"`
	DeviceID     uuid.UUID `json:"device_id"`
	TechnicianID uuid.UUID `json:"technician_id"`
	RepairedAt   time.Time `json:"repaired_at"`
	Notes        string    `json:"notes,omitempty"`
}

type fleetService struct {
	log *logger.Logger

	laptops       repos.LaptopRepo
	servers       repos.ServerRepo
	routers       repos.RouterRepo
	laptopRepairs repos.LaptopRepairRepo
	serverRepairs repos.ServerRepairRepo
	routerRepairs repos.RouterRepairRepo
	technicians   repos.TechnicianRepo
}

func NewFleetService(
	baseLog *logger.Logger,
	laptops repos.LaptopRepo,
	servers repos.ServerRepo,
	routers repos.RouterRepo,
	laptopRepairs repos.LaptopRepairRepo,
	serverRepairs repos.ServerRepairRepo,
	routerRepairs repos.RouterRepairRepo,
	technicians repos.TechnicianRepo,
) FleetService {
	return &fleetService{
		log:           baseLog.With("service", "FleetService"),
		laptops:       laptops,
		servers:       servers,
		routers:       routers,
		laptopRepairs: laptopRepairs,
		serverRepairs: serverRepairs,
		routerRepairs: routerRepairs,
		technicians:   technicians,
	}
}

func normalizeDeviceKind(op, kind string) (string, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	switch kind {
	case types.DeviceKindLaptop, types.DeviceKindServer, types.DeviceKindRouter:
		return kind, nil
	default:
		return "", domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("unknown device kind %q", kind), nil)
	}
}

func (s *fleetService) CreateDevice(ctx context.Context, in CreateDeviceInput) (*DeviceView, error) {
	const op = "FleetService.CreateDevice"
	if s == nil || s.laptops == nil || s.servers == nil || s.routers == nil {
		return nil, fmt.Errorf("fleet service not configured")
	}
	kind, err := normalizeDeviceKind(op, in.Kind)
	if err != nil {
		return nil, err
	}
	model := strings.TrimSpace(in.Model)
	manufacturer := strings.TrimSpace(in.Manufacturer)
	if model == "" || manufacturer == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing model or manufacturer", nil)
	}

	dbc := dbctx.Context{Ctx: ctx}
	id := uuid.New()
	now := time.Now().UTC()
	switch kind {
	case types.DeviceKindLaptop:
		row := &types.Laptop{ID: id, Model: model, Manufacturer: manufacturer, CreatedAt: now, UpdatedAt: now}
		if _, err := s.laptops.Create(dbc, []*types.Laptop{row}); err != nil {
			return nil, err
		}
	case types.DeviceKindServer:
		row := &types.Server{ID: id, Model: model, Manufacturer: manufacturer, CreatedAt: now, UpdatedAt: now}
		if _, err := s.servers.Create(dbc, []*types.Server{row}); err != nil {
			return nil, err
		}
	case types.DeviceKindRouter:
		row := &types.Router{ID: id, Model: model, Manufacturer: manufacturer, CreatedAt: now, UpdatedAt: now}
		if _, err := s.routers.Create(dbc, []*types.Router{row}); err != nil {
			return nil, err
		}
	}
	return &DeviceView{ID: id, Kind: kind, Model: model, Manufacturer: manufacturer, CreatedAt: now}, nil
}

func (s *fleetService) ListDevices(ctx context.Context, kind string, limit int) ([]*DeviceView, error) {
	const op = "FleetService.ListDevices"
	if s == nil || s.laptops == nil || s.servers == nil || s.routers == nil {
		return nil, fmt.Errorf("fleet service not configured")
	}
	kind, err := normalizeDeviceKind(op, kind)
	if err != nil {
		return nil, err
	}

	dbc := dbctx.Context{Ctx: ctx}
	out := []*DeviceView{}
	switch kind {
	case types.DeviceKindLaptop:
		rows, err := s.laptops.List(dbc, limit)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			out = append(out, &DeviceView{ID: r.ID, Kind: kind, Model: r.Model, Manufacturer: r.Manufacturer, CreatedAt: r.CreatedAt})
		}
	case types.DeviceKindServer:
		rows, err := s.servers.List(dbc, limit)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			out = append(out, &DeviceView{ID: r.ID, Kind: kind, Model: r.Model, Manufacturer: r.Manufacturer, CreatedAt: r.CreatedAt})
		}
	case types.DeviceKindRouter:
		rows, err := s.routers.List(dbc, limit)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			out = append(out, &DeviceView{ID: r.ID, Kind: kind, Model: r.Model, Manufacturer: r.Manufacturer, CreatedAt: r.CreatedAt})
		}
	}
	return out, nil
}

func (s *fleetService) RecordRepair(ctx context.Context, in RecordRepairInput) (*RepairView, error) {
	const op = "FleetService.RecordRepair"
	if s == nil || s.technicians == nil ||
		s.laptopRepairs == nil || s.serverRepairs == nil || s.routerRepairs == nil {
		return nil, fmt.Errorf("fleet service not configured")
	}
	kind, err := normalizeDeviceKind(op, in.Kind)
	if err != nil {
		return nil, err
	}
	if in.DeviceID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing device id", nil)
	}
	if in.TechnicianID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing technician id", nil)
	}

	dbc := dbctx.Context{Ctx: ctx}
	techs, err := s.technicians.GetByIDs(dbc, []uuid.UUID{in.TechnicianID})
	if err != nil {
		return nil, err
	}
	if len(techs) == 0 {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("technician not found: %s", in.TechnicianID.String()), nil)
	}

	repairedAt := time.Now().UTC()
	if in.RepairedAt != nil && !in.RepairedAt.IsZero() {
		repairedAt = in.RepairedAt.UTC()
	}
	id := uuid.New()
	switch kind {
	case types.DeviceKindLaptop:
		device, err := s.laptops.GetByID(dbc, in.DeviceID)
		if err != nil {
			return nil, err
		}
		if device == nil {
			return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("laptop not found: %s", in.DeviceID.String()), nil)
		}
		row := &types.LaptopRepair{ID: id, LaptopID: in.DeviceID, TechnicianID: in.TechnicianID, RepairedAt: repairedAt, Notes: in.Notes}
		if _, err := s.laptopRepairs.Create(dbc, []*types.LaptopRepair{row}); err != nil {
			return nil, err
		}
	case types.DeviceKindServer:
		device, err := s.servers.GetByID(dbc, in.DeviceID)
		if err != nil {
			return nil, err
		}
		if device == nil {
			return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("server not found: %s", in.DeviceID.String()), nil)
		}
		row := &types.ServerRepair{ID: id, ServerID: in.DeviceID, TechnicianID: in.TechnicianID, RepairedAt: repairedAt, Notes: in.Notes}
		if _, err := s.serverRepairs.Create(dbc, []*types.ServerRepair{row}); err != nil {
			return nil, err
		}
	case types.DeviceKindRouter:
		device, err := s.routers.GetByID(dbc, in.DeviceID)
		if err != nil {
			return nil, err
		}
		if device == nil {
			return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("router not found: %s", in.DeviceID.String()), nil)
		}
		row := &types.RouterRepair{ID: id, RouterID: in.DeviceID, TechnicianID: in.TechnicianID, RepairedAt: repairedAt, Notes: in.Notes}
		if _, err := s.routerRepairs.Create(dbc, []*types.RouterRepair{row}); err != nil {
			return nil, err
		}
	}
	return &RepairView{ID: id, Kind: kind, DeviceID: in.DeviceID, TechnicianID: in.TechnicianID, RepairedAt: repairedAt, Notes: in.Notes}, nil
}

func (s *fleetService) ListRepairs(ctx context.Context, kind string, deviceID uuid.UUID, limit int) ([]*RepairView, error) {
	const op = "FleetService.ListRepairs"
	if s == nil || s.laptopRepairs == nil || s.serverRepairs == nil || s.routerRepairs == nil {
		return nil, fmt.Errorf("fleet service not configured")
	}
	kind, err := normalizeDeviceKind(op, kind)
	if err != nil {
		return nil, err
	}
	if deviceID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing device id", nil)
	}

	dbc := dbctx.Context{Ctx: ctx}
	out := []*RepairView{}
	switch kind {
	case types.DeviceKindLaptop:
		rows, err := s.laptopRepairs.ListByDevice(dbc, deviceID, limit)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			out = append(out, &RepairView{ID: r.ID, Kind: kind, DeviceID: r.LaptopID, TechnicianID: r.TechnicianID, RepairedAt: r.RepairedAt, Notes: r.Notes})
		}
	case types.DeviceKindServer:
		rows, err := s.serverRepairs.ListByDevice(dbc, deviceID, limit)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			out = append(out, &RepairView{ID: r.ID, Kind: kind, DeviceID: r.ServerID, TechnicianID: r.TechnicianID, RepairedAt: r.RepairedAt, Notes: r.Notes})
		}
	case types.DeviceKindRouter:
		rows, err := s.routerRepairs.ListByDevice(dbc, deviceID, limit)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			out = append(out, &RepairView{ID: r.ID, Kind: kind, DeviceID: r.RouterID, TechnicianID: r.TechnicianID, RepairedAt: r.RepairedAt, Notes: r.Notes})
		}
	}
	return out, nil
}
