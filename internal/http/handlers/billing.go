package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/webcomtel/webcom-backend/internal/http/response"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
	"github.com/webcomtel/webcom-backend/internal/services"
)

type BillingHandler struct {
	log     *logger.Logger
	billing services.BillingService
}

func NewBillingHandler(log *logger.Logger, billing services.BillingService) *BillingHandler {
	return &BillingHandler{
		log:     log.With("handler", "BillingHandler"),
		billing: billing,
	}
}

// POST /accounts/:id/pay
// The charge is derived from the contract's current addendum, so the
// request carries no body.
func (h *BillingHandler) Pay(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_account_id", err)
		return
	}
	res, err := h.billing.Pay(c.Request.Context(), accountID)
	if err != nil {
		h.log.Error("Pay failed", "error", err, "account_id", accountID)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"account_id":  res.AccountID,
		"payment_id":  res.PaymentID,
		"addendum_id": res.AddendumID,
		"amount":      res.Amount,
		"balance":     res.Balance,
		"paid_at":     res.PaidAt,
	})
}

// GET /accounts/:id
func (h *BillingHandler) Get(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_account_id", err)
		return
	}
	account, err := h.billing.Get(c.Request.Context(), accountID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"account": account})
}

// GET /accounts/:id/payments?limit=N
func (h *BillingHandler) Payments(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_account_id", err)
		return
	}
	limit := 100
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	payments, err := h.billing.Payments(c.Request.Context(), accountID, limit)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"payments": payments})
}

// DELETE /accounts/:id
func (h *BillingHandler) Delete(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_account_id", err)
		return
	}
	res, err := h.billing.DeleteAccount(c.Request.Context(), accountID)
	if err != nil {
		h.log.Error("Delete account failed", "error", err, "account_id", accountID)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"account_id": res.AccountID,
		"deleted_at": res.DeletedAt,
	})
}
