package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/webcomtel/webcom-backend/internal/platform/ctxutil"
)

func TestAttachTraceContextGeneratesIDs(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/api/v1/customers", func(c *gin.Context) {
		td := ctxutil.GetTraceData(c.Request.Context())
		if td == nil || td.TraceID == "" || td.RequestID == "" {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	if rec.Header().Get("X-Trace-Id") == "" {
		t.Fatal("expected X-Trace-Id response header")
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected X-Request-Id response header")
	}
}

func TestAttachTraceContextHonorsInboundIDs(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/api/v1/services", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/services", nil)
	req.Header.Set("X-Trace-Id", "trace-from-client")
	req.Header.Set("X-Request-Id", "req-from-client")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Trace-Id"); got != "trace-from-client" {
		t.Fatalf("unexpected trace id: got=%q", got)
	}
	if got := rec.Header().Get("X-Request-Id"); got != "req-from-client" {
		t.Fatalf("unexpected request id: got=%q", got)
	}
}
