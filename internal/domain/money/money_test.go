package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAddIsExactForCents(t *testing.T) {
	a := FromFloat(0.10, "USD")
	b := FromFloat(0.20, "USD")
	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if want := FromFloat(0.30, "USD"); !sum.Equal(want) {
		t.Fatalf("want=%v got=%v", want, sum)
	}
}

func TestAddRejectsCurrencyMismatch(t *testing.T) {
	_, err := FromFloat(1, "USD").Add(FromFloat(1, "EUR"))
	if !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("want ErrCurrencyMismatch got %v", err)
	}
}

func TestSubGoesNegative(t *testing.T) {
	bal := FromFloat(5, "USD")
	debit := FromFloat(7.50, "USD")
	got, err := bal.Sub(debit)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if !got.IsNegative() {
		t.Fatalf("want negative got %v", got)
	}
	if want := FromFloat(-2.50, "USD"); !got.Equal(want) {
		t.Fatalf("want=%v got=%v", want, got)
	}
}

func TestMulFloat(t *testing.T) {
	salary := FromFloat(2500, "USD")
	bonus := salary.MulFloat(0.1)
	if want := FromFloat(250, "USD"); !bonus.Equal(want) {
		t.Fatalf("want=%v got=%v", want, bonus)
	}
}

func TestFromString(t *testing.T) {
	m, err := FromString("19.99", "")
	if err != nil {
		t.Fatalf("FromString: %v", err)
	}
	if m.Currency != DefaultCurrency {
		t.Fatalf("want default currency got %q", m.Currency)
	}
	if !m.Amount.Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("want 19.99 got %v", m.Amount)
	}
	if _, err := FromString("not-a-number", "USD"); err == nil {
		t.Fatalf("want parse error got nil")
	}
}

func TestString(t *testing.T) {
	if got := FromFloat(10.5, "USD").String(); got != "10.50 USD" {
		t.Fatalf("want %q got %q", "10.50 USD", got)
	}
}
