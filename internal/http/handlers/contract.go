package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"github.com/webcomtel/webcom-backend/internal/http/response"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
	"github.com/webcomtel/webcom-backend/internal/services"
)

type ContractHandler struct {
	log       *logger.Logger
	contracts services.ContractService
}

func NewContractHandler(log *logger.Logger, contracts services.ContractService) *ContractHandler {
	return &ContractHandler{
		log:       log.With("handler", "ContractHandler"),
		contracts: contracts,
	}
}

// POST /addenda
// body: { "service_ids": [...], "created_at": "...",
//         "regular_contract_id" | "business_contract_id": "..." }
func (h *ContractHandler) CreateAddendum(c *gin.Context) {
	var req struct {
		ServiceIDs         []uuid.UUID `json:"service_ids"`
		CreatedAt          *time.Time  `json:"created_at"`
		RegularContractID  *uuid.UUID  `json:"regular_contract_id"`
		BusinessContractID *uuid.UUID  `json:"business_contract_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	in := domainagg.CreateAddendumInput{
		ServiceIDs:         req.ServiceIDs,
		RegularContractID:  req.RegularContractID,
		BusinessContractID: req.BusinessContractID,
	}
	if req.CreatedAt != nil {
		in.CreatedAt = *req.CreatedAt
	}

	res, err := h.contracts.CreateAddendum(c.Request.Context(), in)
	if err != nil {
		h.log.Error("CreateAddendum failed", "error", err)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"addendum_id": res.AddendumID,
		"created_at":  res.CreatedAt,
	})
}

// POST /addenda/:id/attach
// body: { "regular_contract_id" | "business_contract_id": "..." }
func (h *ContractHandler) AttachAddendum(c *gin.Context) {
	addendumID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_addendum_id", err)
		return
	}
	var req struct {
		RegularContractID  *uuid.UUID `json:"regular_contract_id"`
		BusinessContractID *uuid.UUID `json:"business_contract_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	res, err := h.contracts.AttachAddendum(c.Request.Context(), domainagg.AttachAddendumInput{
		AddendumID:         addendumID,
		RegularContractID:  req.RegularContractID,
		BusinessContractID: req.BusinessContractID,
	})
	if err != nil {
		h.log.Error("AttachAddendum failed", "error", err, "addendum_id", addendumID)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"addendum_id":   res.AddendumID,
		"contract_id":   res.ContractID,
		"contract_kind": res.ContractKind,
		"attached_at":   res.AttachedAt,
	})
}

// GET /contracts/:kind/:id/current-addendum
func (h *ContractHandler) CurrentAddendum(c *gin.Context) {
	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_contract_id", err)
		return
	}
	view, err := h.contracts.CurrentAddendum(c.Request.Context(), c.Param("kind"), contractID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, view)
}
