package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
)

type APIError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

type DataEnvelope struct {
	Data any `json:"data"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	})
}

// RespondDomainError maps an aggregate/service error onto the HTTP status
// its code implies. Errors without a code are treated as internal.
func RespondDomainError(c *gin.Context, err error) {
	code := domainagg.CodeOf(err)
	if code == "" {
		code = domainagg.CodeInternal
	}
	RespondError(c, StatusForCode(code), string(code), err)
}

func StatusForCode(code domainagg.ErrorCode) int {
	switch code {
	case domainagg.CodeValidation:
		return http.StatusBadRequest
	case domainagg.CodeNotFound:
		return http.StatusNotFound
	case domainagg.CodeConflict, domainagg.CodeInvariantViolation:
		return http.StatusConflict
	case domainagg.CodePreconditionFailed:
		return http.StatusPreconditionFailed
	case domainagg.CodeRetryable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, DataEnvelope{Data: payload})
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, DataEnvelope{Data: payload})
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
