package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/webcomtel/webcom-backend/internal/domain"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"github.com/webcomtel/webcom-backend/internal/domain/money"
	"github.com/webcomtel/webcom-backend/internal/http/response"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
	"github.com/webcomtel/webcom-backend/internal/services"
)

type EmployeeHandler struct {
	log       *logger.Logger
	employees services.EmployeeService
}

func NewEmployeeHandler(log *logger.Logger, employees services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		log:       log.With("handler", "EmployeeHandler"),
		employees: employees,
	}
}

// POST /employees
// body: { "email", "phone", "first_name", "last_name", "apartment_number",
//         "address_id", "salary", "currency", "seniority", "employee_type" }
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req struct {
		Email           string     `json:"email"`
		Phone           string     `json:"phone"`
		FirstName       string     `json:"first_name"`
		LastName        string     `json:"last_name"`
		ApartmentNumber string     `json:"apartment_number"`
		AddressID       *uuid.UUID `json:"address_id"`
		Salary          float64    `json:"salary"`
		Currency        string     `json:"currency"`
		Seniority       int        `json:"seniority"`
		EmployeeType    string     `json:"employee_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	res, err := h.employees.Create(c.Request.Context(), domainagg.CreateEmployeeInput{
		Employee: types.TechnicalEmployee{
			Email:           req.Email,
			Phone:           req.Phone,
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			ApartmentNumber: req.ApartmentNumber,
			AddressID:       req.AddressID,
			Salary:          money.FromFloat(req.Salary, req.Currency),
			Seniority:       req.Seniority,
			EmployeeType:    req.EmployeeType,
		},
	})
	if err != nil {
		h.log.Error("Create employee failed", "error", err, "email", req.Email)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"employee_id": res.EmployeeID,
		"role_row_id": res.RoleRowID,
		"created_at":  res.CreatedAt,
	})
}

// GET /employees?limit=N
func (h *EmployeeHandler) List(c *gin.Context) {
	limit := 100
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	employees, err := h.employees.List(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("List employees failed", "error", err)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"employees": employees})
}

// GET /employees/:id
func (h *EmployeeHandler) Get(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_employee_id", err)
		return
	}
	view, err := h.employees.Get(c.Request.Context(), employeeID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, view)
}

// PUT /employees/:id
// body: { "employee": {...} }
func (h *EmployeeHandler) Save(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_employee_id", err)
		return
	}
	var req struct {
		Employee types.TechnicalEmployee `json:"employee"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	req.Employee.ID = employeeID

	res, err := h.employees.Save(c.Request.Context(), domainagg.SaveEmployeeInput{Employee: req.Employee})
	if err != nil {
		h.log.Error("Save employee failed", "error", err, "employee_id", employeeID)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"employee_id": res.EmployeeID,
		"version":     res.Version,
		"saved_at":    res.SavedAt,
	})
}

// PUT /employees/:id/type
// body: { "new_type": "technician|sysadmin", "expected_version": 3 }
func (h *EmployeeHandler) SwitchType(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_employee_id", err)
		return
	}
	var req struct {
		NewType         string `json:"new_type"`
		ExpectedVersion *int   `json:"expected_version"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	res, err := h.employees.SwitchType(c.Request.Context(), domainagg.SwitchEmployeeTypeInput{
		EmployeeID:      employeeID,
		NewType:         req.NewType,
		ExpectedVersion: req.ExpectedVersion,
	})
	if err != nil {
		h.log.Error("SwitchType failed", "error", err, "employee_id", employeeID, "new_type", req.NewType)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"employee_id":   res.EmployeeID,
		"employee_type": res.EmployeeType,
		"switched":      res.Switched,
		"version":       res.Version,
		"switched_at":   res.SwitchedAt,
	})
}

// DELETE /employees/:id
func (h *EmployeeHandler) Delete(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_employee_id", err)
		return
	}
	res, err := h.employees.Delete(c.Request.Context(), employeeID)
	if err != nil {
		h.log.Error("Delete employee failed", "error", err, "employee_id", employeeID)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"employee_id": res.EmployeeID,
		"deleted_at":  res.DeletedAt,
	})
}

// GET /employees/:id/bonus
func (h *EmployeeHandler) Bonus(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_employee_id", err)
		return
	}
	bonus, err := h.employees.Bonus(c.Request.Context(), employeeID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"employee_id": employeeID, "bonus": bonus})
}
