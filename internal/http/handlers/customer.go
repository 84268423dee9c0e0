package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/webcomtel/webcom-backend/internal/domain"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"github.com/webcomtel/webcom-backend/internal/domain/money"
	"github.com/webcomtel/webcom-backend/internal/http/response"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
	"github.com/webcomtel/webcom-backend/internal/services"
)

type CustomerHandler struct {
	log       *logger.Logger
	customers services.CustomerService
}

func NewCustomerHandler(log *logger.Logger, customers services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		log:       log.With("handler", "CustomerHandler"),
		customers: customers,
	}
}

// contractPayload is the wire form of contract terms, shared by the
// create and set-contract endpoints. The kind is carried outside it.
type contractPayload struct {
	ApprovalDate         time.Time  `json:"approval_date"`
	TerminationDate      *time.Time `json:"termination_date"`
	TerminationDelayDays int        `json:"termination_delay_days"`
	PayTermDays          int        `json:"pay_term_days"`
	Status               string     `json:"status"`
	DurationType         string     `json:"duration_type"`
}

func (p contractPayload) regular() *types.RegularContract {
	return &types.RegularContract{
		ApprovalDate:         p.ApprovalDate,
		TerminationDate:      p.TerminationDate,
		TerminationDelayDays: p.TerminationDelayDays,
		PayTermDays:          p.PayTermDays,
		Status:               p.Status,
		DurationType:         p.DurationType,
	}
}

func (p contractPayload) business() *types.BusinessContract {
	return &types.BusinessContract{
		ApprovalDate:         p.ApprovalDate,
		TerminationDate:      p.TerminationDate,
		TerminationDelayDays: p.TerminationDelayDays,
		PayTermDays:          p.PayTermDays,
		Status:               p.Status,
		DurationType:         p.DurationType,
	}
}

// POST /customers
// body: { "type": "regular|business", "email", "phone", "account": {...},
//         "contract": {...}, "regular_profile": {...} | "business_profile": {...} }
func (h *CustomerHandler) Create(c *gin.Context) {
	var req struct {
		Type    string `json:"type"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Account struct {
			Number         string  `json:"number"`
			OpeningBalance float64 `json:"opening_balance"`
			Currency       string  `json:"currency"`
		} `json:"account"`
		Contract       *contractPayload `json:"contract"`
		RegularProfile *struct {
			FirstName       string     `json:"first_name"`
			LastName        string     `json:"last_name"`
			ApartmentNumber string     `json:"apartment_number"`
			AddressID       *uuid.UUID `json:"address_id"`
		} `json:"regular_profile"`
		BusinessProfile *struct {
			CompanyName string `json:"company_name"`
			CompanyID   string `json:"company_id"`
		} `json:"business_profile"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	in := domainagg.CreateCustomerInput{
		Type:  req.Type,
		Email: req.Email,
		Phone: req.Phone,
		Account: domainagg.AccountInput{
			Number:         req.Account.Number,
			OpeningBalance: money.FromFloat(req.Account.OpeningBalance, req.Account.Currency),
		},
	}
	if req.Contract != nil {
		switch strings.ToLower(strings.TrimSpace(req.Type)) {
		case types.CustomerTypeBusiness:
			in.BusinessContract = req.Contract.business()
		default:
			in.RegularContract = req.Contract.regular()
		}
	}
	if req.RegularProfile != nil {
		in.RegularProfile = &types.RegularCustomerProfile{
			FirstName:       req.RegularProfile.FirstName,
			LastName:        req.RegularProfile.LastName,
			ApartmentNumber: req.RegularProfile.ApartmentNumber,
			AddressID:       req.RegularProfile.AddressID,
		}
	}
	if req.BusinessProfile != nil {
		in.BusinessProfile = &types.BusinessCustomerProfile{
			CompanyName: req.BusinessProfile.CompanyName,
			CompanyID:   req.BusinessProfile.CompanyID,
		}
	}

	res, err := h.customers.Create(c.Request.Context(), in)
	if err != nil {
		h.log.Error("Create customer failed", "error", err, "email", req.Email)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"customer_id": res.CustomerID,
		"account_id":  res.AccountID,
		"contract_id": res.ContractID,
		"profile_id":  res.ProfileID,
		"created_at":  res.CreatedAt,
	})
}

// GET /customers?type=regular|business&limit=N
func (h *CustomerHandler) List(c *gin.Context) {
	limit := 100
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	customers, err := h.customers.ListByType(c.Request.Context(), c.Query("type"), limit)
	if err != nil {
		h.log.Error("List customers failed", "error", err)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"customers": customers})
}

// GET /customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_customer_id", err)
		return
	}
	view, err := h.customers.Get(c.Request.Context(), customerID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, view)
}

// PUT /customers/:id
// body: { "customer": {...}, "account": {...}, plus the variant
//         contract and profile rows to persist }
func (h *CustomerHandler) Save(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_customer_id", err)
		return
	}
	var req struct {
		Customer         types.Customer                 `json:"customer"`
		Account          types.Account                  `json:"account"`
		RegularContract  *types.RegularContract         `json:"regular_contract"`
		BusinessContract *types.BusinessContract        `json:"business_contract"`
		RegularProfile   *types.RegularCustomerProfile  `json:"regular_profile"`
		BusinessProfile  *types.BusinessCustomerProfile `json:"business_profile"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	req.Customer.ID = customerID

	res, err := h.customers.Save(c.Request.Context(), domainagg.SaveCustomerInput{
		Customer:         req.Customer,
		Account:          req.Account,
		RegularContract:  req.RegularContract,
		BusinessContract: req.BusinessContract,
		RegularProfile:   req.RegularProfile,
		BusinessProfile:  req.BusinessProfile,
	})
	if err != nil {
		h.log.Error("Save customer failed", "error", err, "customer_id", customerID)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"customer_id": res.CustomerID,
		"version":     res.Version,
		"saved_at":    res.SavedAt,
	})
}

// DELETE /customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_customer_id", err)
		return
	}
	res, err := h.customers.Delete(c.Request.Context(), customerID)
	if err != nil {
		h.log.Error("Delete customer failed", "error", err, "customer_id", customerID)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"customer_id": res.CustomerID,
		"deleted_at":  res.DeletedAt,
	})
}

// GET /customers/:id/fields/:name
func (h *CustomerHandler) Field(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_customer_id", err)
		return
	}
	name := c.Param("name")
	value, err := h.customers.Field(c.Request.Context(), customerID, name)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"field": name, "value": value})
}

// PUT /customers/:id/contract
// body: { "kind": "regular|business", "contract": {...} }
func (h *CustomerHandler) SetContract(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_customer_id", err)
		return
	}
	var req struct {
		Kind     string          `json:"kind"`
		Contract contractPayload `json:"contract"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	in := domainagg.SetContractInput{CustomerID: customerID}
	switch strings.ToLower(strings.TrimSpace(req.Kind)) {
	case types.ContractKindRegular:
		in.RegularContract = req.Contract.regular()
	case types.ContractKindBusiness:
		in.BusinessContract = req.Contract.business()
	default:
		response.RespondError(c, http.StatusBadRequest, "invalid_contract_kind", nil)
		return
	}

	res, err := h.customers.SetContract(c.Request.Context(), in)
	if err != nil {
		h.log.Error("SetContract failed", "error", err, "customer_id", customerID)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"customer_id": res.CustomerID,
		"contract_id": res.ContractID,
		"kind":        res.Kind,
		"replaced":    res.Replaced,
	})
}
