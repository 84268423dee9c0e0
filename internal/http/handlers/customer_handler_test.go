package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/webcomtel/webcom-backend/internal/domain"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"github.com/webcomtel/webcom-backend/internal/platform/logger"
	"github.com/webcomtel/webcom-backend/internal/services"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

type stubCustomerService struct {
	create     func(context.Context, domainagg.CreateCustomerInput) (domainagg.CreateCustomerResult, error)
	get        func(context.Context, uuid.UUID) (*services.CustomerView, error)
	listByType func(context.Context, string, int) ([]*types.Customer, error)
}

func (s *stubCustomerService) Create(ctx context.Context, in domainagg.CreateCustomerInput) (domainagg.CreateCustomerResult, error) {
	if s.create != nil {
		return s.create(ctx, in)
	}
	return domainagg.CreateCustomerResult{}, nil
}

func (s *stubCustomerService) Save(ctx context.Context, in domainagg.SaveCustomerInput) (domainagg.SaveCustomerResult, error) {
	return domainagg.SaveCustomerResult{}, nil
}

func (s *stubCustomerService) Delete(ctx context.Context, customerID uuid.UUID) (domainagg.DeleteCustomerResult, error) {
	return domainagg.DeleteCustomerResult{}, nil
}

func (s *stubCustomerService) SetContract(ctx context.Context, in domainagg.SetContractInput) (domainagg.SetContractResult, error) {
	return domainagg.SetContractResult{}, nil
}

func (s *stubCustomerService) Get(ctx context.Context, customerID uuid.UUID) (*services.CustomerView, error) {
	if s.get != nil {
		return s.get(ctx, customerID)
	}
	return &services.CustomerView{}, nil
}

func (s *stubCustomerService) ListByType(ctx context.Context, customerType string, limit int) ([]*types.Customer, error) {
	if s.listByType != nil {
		return s.listByType(ctx, customerType, limit)
	}
	return nil, nil
}

func (s *stubCustomerService) Field(ctx context.Context, customerID uuid.UUID, field string) (string, error) {
	return "", nil
}

func newCustomerRouter(t *testing.T, svc services.CustomerService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewCustomerHandler(newTestLogger(t), svc)
	r := gin.New()
	r.POST("/customers", h.Create)
	r.GET("/customers", h.List)
	r.GET("/customers/:id", h.Get)
	return r
}

func TestCustomerHandlerCreateWrapsResultInDataEnvelope(t *testing.T) {
	t.Parallel()
	customerID := uuid.New()
	svc := &stubCustomerService{
		create: func(_ context.Context, in domainagg.CreateCustomerInput) (domainagg.CreateCustomerResult, error) {
			if in.Type != types.CustomerTypeRegular {
				t.Fatalf("unexpected type: %q", in.Type)
			}
			if in.Account.Number != "ACC-100" {
				t.Fatalf("unexpected account number: %q", in.Account.Number)
			}
			return domainagg.CreateCustomerResult{CustomerID: customerID}, nil
		},
	}
	r := newCustomerRouter(t, svc)

	body := `{
		"type": "regular",
		"email": "ada@webcom.test",
		"phone": "555-0101",
		"account": {"number": "ACC-100", "opening_balance": 25, "currency": "USD"},
		"regular_profile": {"first_name": "Ada", "last_name": "Lovelace", "apartment_number": "12b"}
	}`
	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: got=%d want=%d body=%s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var envelope struct {
		Data struct {
			CustomerID uuid.UUID `json:"customer_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.CustomerID != customerID {
		t.Fatalf("customer id: want=%s got=%s", customerID, envelope.Data.CustomerID)
	}
}

func TestCustomerHandlerGetRejectsMalformedID(t *testing.T) {
	t.Parallel()
	r := newCustomerRouter(t, &stubCustomerService{})

	req := httptest.NewRequest(http.MethodGet, "/customers/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != "invalid_customer_id" {
		t.Fatalf("error code: want=%q got=%q", "invalid_customer_id", envelope.Error.Code)
	}
}

func TestCustomerHandlerGetMapsNotFoundToStatus404(t *testing.T) {
	t.Parallel()
	svc := &stubCustomerService{
		get: func(_ context.Context, id uuid.UUID) (*services.CustomerView, error) {
			return nil, domainagg.NewError(domainagg.CodeNotFound, "CustomerAggregate.Get", "customer not found", nil)
		},
	}
	r := newCustomerRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/customers/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got=%d want=%d body=%s", rec.Code, http.StatusNotFound, rec.Body.String())
	}
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(domainagg.CodeNotFound) {
		t.Fatalf("error code: want=%q got=%q", domainagg.CodeNotFound, envelope.Error.Code)
	}
}

func TestCustomerHandlerListPassesTypeFilterAndLimit(t *testing.T) {
	t.Parallel()
	var gotType string
	var gotLimit int
	svc := &stubCustomerService{
		listByType: func(_ context.Context, customerType string, limit int) ([]*types.Customer, error) {
			gotType = customerType
			gotLimit = limit
			return []*types.Customer{}, nil
		},
	}
	r := newCustomerRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/customers?type=business&limit=7", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	if gotType != types.CustomerTypeBusiness {
		t.Fatalf("type filter: want=%q got=%q", types.CustomerTypeBusiness, gotType)
	}
	if gotLimit != 7 {
		t.Fatalf("limit: want=7 got=%d", gotLimit)
	}
}
