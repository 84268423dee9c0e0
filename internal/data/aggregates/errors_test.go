package aggregates

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	domainagg "github.com/webcomtel/webcom-backend/internal/domain/aggregates"
	"gorm.io/gorm"
)

func TestMapError_Validation(t *testing.T) {
	err := MapError("op", ValidationError("bad input"))
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_Conflict(t *testing.T) {
	err := MapError("op", ConflictError("stale"))
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_NotFound(t *testing.T) {
	err := MapError("op", gorm.ErrRecordNotFound)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not_found code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_PostgresCodes(t *testing.T) {
	cases := []struct {
		pgCode string
		want   domainagg.ErrorCode
	}{
		{"23505", domainagg.CodeConflict},
		{"23503", domainagg.CodePreconditionFailed},
		{"40001", domainagg.CodeRetryable},
		{"40P01", domainagg.CodeRetryable},
		{"55P03", domainagg.CodeRetryable},
	}
	for _, tc := range cases {
		err := MapError("op", &pgconn.PgError{Code: tc.pgCode})
		if !domainagg.IsCode(err, tc.want) {
			t.Fatalf("pg code %s: expected %s, got %q (%v)", tc.pgCode, tc.want, domainagg.CodeOf(err), err)
		}
	}
}

func TestMapError_PassthroughAggregateError(t *testing.T) {
	in := domainagg.NewError(domainagg.CodeRetryable, "op", "retry", errors.New("boom"))
	out := MapError("other", in)
	if out != in {
		t.Fatalf("expected passthrough aggregate error")
	}
}

func TestMapError_PassthroughKeepsRuleReason(t *testing.T) {
	in := domainagg.NewRuleError(domainagg.CodeConflict, domainagg.ReasonAlreadyAssigned, "op", "addendum is bound")
	out := MapError("other", in)
	if !domainagg.IsReason(out, domainagg.ReasonAlreadyAssigned) {
		t.Fatalf("rule reason lost: %v", out)
	}
}
