package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"github.com/webcomtel/webcom-backend/internal/domain/money"
	"github.com/webcomtel/webcom-backend/internal/http/response"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
	"github.com/webcomtel/webcom-backend/internal/services"
)

type CatalogHandler struct {
	log     *logger.Logger
	catalog services.CatalogService
}

func NewCatalogHandler(log *logger.Logger, catalog services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		log:     log.With("handler", "CatalogHandler"),
		catalog: catalog,
	}
}

// POST /services
// body: { "name": "tv-basic", "price": 15.00, "currency": "USD" }
func (h *CatalogHandler) Create(c *gin.Context) {
	var req struct {
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Currency string  `json:"currency"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	res, err := h.catalog.Create(c.Request.Context(), domainagg.CreateServiceInput{
		Name:  req.Name,
		Price: money.FromFloat(req.Price, req.Currency),
	})
	if err != nil {
		h.log.Error("Create service failed", "error", err, "name", req.Name)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"service_id": res.ServiceID,
		"created_at": res.CreatedAt,
	})
}

// GET /services?limit=N
func (h *CatalogHandler) List(c *gin.Context) {
	limit := 100
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	svcs, err := h.catalog.List(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("List services failed", "error", err)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"services": svcs})
}

// GET /services/:id
func (h *CatalogHandler) Get(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_service_id", err)
		return
	}
	view, err := h.catalog.Get(c.Request.Context(), serviceID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, view)
}

// PUT /services/:id
// body: { "name": "tv-basic", "price": 18.00, "currency": "USD" }
func (h *CatalogHandler) Save(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_service_id", err)
		return
	}
	var req struct {
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Currency string  `json:"currency"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	res, err := h.catalog.Save(c.Request.Context(), domainagg.SaveServiceInput{
		ServiceID: serviceID,
		Name:      req.Name,
		Price:     money.FromFloat(req.Price, req.Currency),
	})
	if err != nil {
		h.log.Error("Save service failed", "error", err, "service_id", serviceID)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"service_id": res.ServiceID,
		"saved_at":   res.SavedAt,
	})
}

// DELETE /services/:id
func (h *CatalogHandler) Delete(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_service_id", err)
		return
	}
	res, err := h.catalog.Delete(c.Request.Context(), serviceID)
	if err != nil {
		h.log.Error("Delete service failed", "error", err, "service_id", serviceID)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"service_id": res.ServiceID,
		"deleted_at": res.DeletedAt,
	})
}

// GET /services/:id/total-price
func (h *CatalogHandler) TotalPrice(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_service_id", err)
		return
	}
	total, err := h.catalog.TotalPrice(c.Request.Context(), serviceID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"service_id": serviceID, "total_price": total})
}

// PUT /services/:id/inclusions
// body: { "include_ids": ["...", "..."] }
func (h *CatalogHandler) SetInclusions(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_service_id", err)
		return
	}
	var req struct {
		IncludeIDs []uuid.UUID `json:"include_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	res, err := h.catalog.SetInclusions(c.Request.Context(), domainagg.SetServiceInclusionsInput{
		ServiceID:  serviceID,
		IncludeIDs: req.IncludeIDs,
	})
	if err != nil {
		h.log.Error("SetInclusions failed", "error", err, "service_id", serviceID)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"service_id":  res.ServiceID,
		"include_ids": res.IncludeIDs,
		"updated_at":  res.UpdatedAt,
	})
}

// POST /services/:id/validate
func (h *CatalogHandler) Validate(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_service_id", err)
		return
	}
	if err := h.catalog.Validate(c.Request.Context(), serviceID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"service_id": serviceID, "valid": true})
}
