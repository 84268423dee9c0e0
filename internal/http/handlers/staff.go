package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/webcomtel/webcom-backend/internal/domain"
	"github.com/webcomtel/webcom-backend/internal/domain/money"
	"github.com/webcomtel/webcom-backend/internal/http/response"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
	"github.com/webcomtel/webcom-backend/internal/services"
)

type StaffHandler struct {
	log   *logger.Logger
	staff services.StaffService
}

func NewStaffHandler(log *logger.Logger, staff services.StaffService) *StaffHandler {
	return &StaffHandler{
		log:   log.With("handler", "StaffHandler"),
		staff: staff,
	}
}

// staffPayload is the shared wire form for both fixed-role staff kinds.
type staffPayload struct {
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	ApartmentNumber string     `json:"apartment_number"`
	AddressID       *uuid.UUID `json:"address_id"`
	Salary          float64    `json:"salary"`
	Currency        string     `json:"currency"`
	Seniority       int        `json:"seniority"`
	WorkExperience  string     `json:"work_experience"`
	SoftSkills      string     `json:"soft_skills"`
}

// POST /staff/client-managers
func (h *StaffHandler) CreateClientManager(c *gin.Context) {
	var req staffPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	created, err := h.staff.CreateClientManager(c.Request.Context(), types.ClientManager{
		Email:           req.Email,
		Phone:           req.Phone,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ApartmentNumber: req.ApartmentNumber,
		AddressID:       req.AddressID,
		Salary:          money.FromFloat(req.Salary, req.Currency),
		Seniority:       req.Seniority,
		WorkExperience:  req.WorkExperience,
		SoftSkills:      req.SoftSkills,
	})
	if err != nil {
		h.log.Error("CreateClientManager failed", "error", err, "email", req.Email)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"client_manager": created})
}

// GET /staff/client-managers?limit=N
func (h *StaffHandler) ListClientManagers(c *gin.Context) {
	limit := 100
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	managers, err := h.staff.ListClientManagers(c.Request.Context(), limit)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"client_managers": managers})
}

// DELETE /staff/client-managers/:id
func (h *StaffHandler) DeleteClientManager(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_staff_id", err)
		return
	}
	if err := h.staff.DeleteClientManager(c.Request.Context(), id); err != nil {
		h.log.Error("DeleteClientManager failed", "error", err, "id", id)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

// POST /staff/accountants
func (h *StaffHandler) CreateAccountant(c *gin.Context) {
	var req staffPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	created, err := h.staff.CreateAccountant(c.Request.Context(), types.Accountant{
		Email:           req.Email,
		Phone:           req.Phone,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ApartmentNumber: req.ApartmentNumber,
		AddressID:       req.AddressID,
		Salary:          money.FromFloat(req.Salary, req.Currency),
		Seniority:       req.Seniority,
		WorkExperience:  req.WorkExperience,
		SoftSkills:      req.SoftSkills,
	})
	if err != nil {
		h.log.Error("CreateAccountant failed", "error", err, "email", req.Email)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"accountant": created})
}

// GET /staff/accountants?limit=N
func (h *StaffHandler) ListAccountants(c *gin.Context) {
	limit := 100
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	accountants, err := h.staff.ListAccountants(c.Request.Context(), limit)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"accountants": accountants})
}

// DELETE /staff/accountants/:id
func (h *StaffHandler) DeleteAccountant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_staff_id", err)
		return
	}
	if err := h.staff.DeleteAccountant(c.Request.Context(), id); err != nil {
		h.log.Error("DeleteAccountant failed", "error", err, "id", id)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}
