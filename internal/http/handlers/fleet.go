package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/webcomtel/webcom-backend/internal/http/response"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
	"github.com/webcomtel/webcom-backend/internal/services"
)

type FleetHandler struct {
	log   *logger.Logger
	fleet services.FleetService
}

func NewFleetHandler(log *logger.Logger, fleet services.FleetService) *FleetHandler {
	return &FleetHandler{
		log:   log.With("handler", "FleetHandler"),
		fleet: fleet,
	}
}

// POST /devices/:kind
// body: { "model": "...", "manufacturer": "..." }
func (h *FleetHandler) CreateDevice(c *gin.Context) {
	var req struct {
		Model        string `json:"model"`
		Manufacturer string `json:"manufacturer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	device, err := h.fleet.CreateDevice(c.Request.Context(), services.CreateDeviceInput{
		Kind:         c.Param("kind"),
		Model:        req.Model,
		Manufacturer: req.Manufacturer,
	})
	if err != nil {
		h.log.Error("CreateDevice failed", "error", err, "kind", c.Param("kind"))
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, device)
}

// GET /devices/:kind?limit=N
func (h *FleetHandler) ListDevices(c *gin.Context) {
	limit := 100
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	devices, err := h.fleet.ListDevices(c.Request.Context(), c.Param("kind"), limit)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"devices": devices})
}

// POST /devices/:kind/:id/repairs
// body: { "technician_id": "...", "repaired_at": "...", "notes": "..." }
func (h *FleetHandler) RecordRepair(c *gin.Context) {
	deviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_device_id", err)
		return
	}
	var req struct {
		TechnicianID uuid.UUID  `json:"technician_id"`
		RepairedAt   *time.Time `json:"repaired_at"`
		Notes        string     `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	repair, err := h.fleet.RecordRepair(c.Request.Context(), services.RecordRepairInput{
		Kind:         c.Param("kind"),
		DeviceID:     deviceID,
		TechnicianID: req.TechnicianID,
		RepairedAt:   req.RepairedAt,
		Notes:        req.Notes,
	})
	if err != nil {
		h.log.Error("RecordRepair failed", "error", err, "kind", c.Param("kind"), "device_id", deviceID)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, repair)
}

// GET /devices/:kind/:id/repairs?limit=N
func (h *FleetHandler) ListRepairs(c *gin.Context) {
	deviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_device_id", err)
		return
	}
	limit := 100
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	repairs, err := h.fleet.ListRepairs(c.Request.Context(), c.Param("kind"), deviceID, limit)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"repairs": repairs})
}
