package catalog

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/webcomtel/webcom-backend/internal/domain/money"
)

func usd(f float64) money.Money { return money.FromFloat(f, "USD") }

func TestValidateLeafAndBundle(t *testing.T) {
	s := NewSnapshot()
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()
	s.AddService(a, "internet-100", usd(10))
	s.AddService(b, "static-ip", usd(5))
	s.AddService(c, "router-rent", usd(5))
	s.AddInclusion(a, b)
	s.AddInclusion(a, c)

	if err := s.Validate(a); err != nil {
		t.Fatalf("valid bundle rejected: %v", err)
	}
	if err := s.Validate(b); err != nil {
		t.Fatalf("leaf rejected: %v", err)
	}
}

func TestValidateSelfInclusion(t *testing.T) {
	s := NewSnapshot()
	a := uuid.New()
	s.AddService(a, "internet-100", usd(10))
	s.AddInclusion(a, a)

	if err := s.Validate(a); !errors.Is(err, ErrSelfInclusion) {
		t.Fatalf("want ErrSelfInclusion got %v", err)
	}
}

func TestValidateTooManyInclusions(t *testing.T) {
	s := NewSnapshot()
	a := uuid.New()
	s.AddService(a, "mega-bundle", usd(1))
	for i := 0; i < MaxInclusions+1; i++ {
		child := uuid.New()
		s.AddService(child, "leaf", usd(1))
		s.AddInclusion(a, child)
	}

	if err := s.Validate(a); !errors.Is(err, ErrTooManyInclusions) {
		t.Fatalf("want ErrTooManyInclusions got %v", err)
	}
}

func TestValidateNestedBundle(t *testing.T) {
	s := NewSnapshot()
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()
	s.AddService(a, "internet-100", usd(10))
	s.AddService(b, "static-ip", usd(5))
	s.AddService(c, "router-rent", usd(5))
	s.AddInclusion(a, b)
	s.AddInclusion(a, c)
	s.AddInclusion(b, c)

	if err := s.Validate(a); !errors.Is(err, ErrNestedBundle) {
		t.Fatalf("want ErrNestedBundle got %v", err)
	}
	// B itself is a one-level bundle and stays valid.
	if err := s.Validate(b); err != nil {
		t.Fatalf("b should validate: %v", err)
	}
}

func TestValidateUnknownService(t *testing.T) {
	s := NewSnapshot()
	if err := s.Validate(uuid.New()); !errors.Is(err, ErrUnknownService) {
		t.Fatalf("want ErrUnknownService got %v", err)
	}

	a := uuid.New()
	s.AddService(a, "internet-100", usd(10))
	s.AddInclusion(a, uuid.New())
	if err := s.Validate(a); !errors.Is(err, ErrUnknownService) {
		t.Fatalf("want ErrUnknownService for dangling edge got %v", err)
	}
}

func TestTotalPriceSumsBundle(t *testing.T) {
	s := NewSnapshot()
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()
	s.AddService(a, "internet-100", usd(10))
	s.AddService(b, "static-ip", usd(5))
	s.AddService(c, "router-rent", usd(5))
	s.AddInclusion(a, b)
	s.AddInclusion(a, c)

	total, err := s.TotalPrice(a)
	if err != nil {
		t.Fatalf("TotalPrice: %v", err)
	}
	if want := usd(20); !total.Equal(want) {
		t.Fatalf("want=%v got=%v", want, total)
	}

	leaf, err := s.TotalPrice(b)
	if err != nil {
		t.Fatalf("TotalPrice leaf: %v", err)
	}
	if want := usd(5); !leaf.Equal(want) {
		t.Fatalf("want=%v got=%v", want, leaf)
	}
}

func TestTotalPriceUnknownService(t *testing.T) {
	s := NewSnapshot()
	a := uuid.New()
	s.AddService(a, "internet-100", usd(10))
	s.AddInclusion(a, uuid.New())

	if _, err := s.TotalPrice(a); !errors.Is(err, ErrUnknownService) {
		t.Fatalf("want ErrUnknownService got %v", err)
	}
}

func TestAddInclusionDeduplicates(t *testing.T) {
	s := NewSnapshot()
	a := uuid.New()
	b := uuid.New()
	s.AddService(a, "internet-100", usd(10))
	s.AddService(b, "static-ip", usd(5))
	s.AddInclusion(a, b)
	s.AddInclusion(a, b)

	if got := len(s.Inclusions(a)); got != 1 {
		t.Fatalf("want 1 inclusion got %d", got)
	}
	total, err := s.TotalPrice(a)
	if err != nil {
		t.Fatalf("TotalPrice: %v", err)
	}
	if want := usd(15); !total.Equal(want) {
		t.Fatalf("want=%v got=%v", want, total)
	}
}
