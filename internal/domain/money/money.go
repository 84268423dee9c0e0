// Package money provides the exact-decimal amount used for balances,
// prices, salaries and payments. Amounts are decimal.Decimal so cent
// arithmetic is exact; every amount carries a currency tag and mixed
// currency arithmetic is an error rather than a silent conversion.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const DefaultCurrency = "USD"

var ErrCurrencyMismatch = errors.New("money: currency mismatch")

// Money is embeddable into gorm models via
// `gorm:"embedded;embeddedPrefix:<field>_"`.
type Money struct {
	Amount   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"amount"`
	Currency string          `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
}

func New(amount decimal.Decimal, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{Amount: amount, Currency: currency}
}

func FromString(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("money: parse %q: %w", amount, err)
	}
	return New(d, currency), nil
}

func FromFloat(amount float64, currency string) Money {
	return New(decimal.NewFromFloat(amount), currency)
}

func Zero(currency string) Money {
	return New(decimal.Zero, currency)
}

func (m Money) Add(o Money) (Money, error) {
	if err := m.sameCurrency(o); err != nil {
		return Money{}, err
	}
	return New(m.Amount.Add(o.Amount), m.Currency), nil
}

func (m Money) Sub(o Money) (Money, error) {
	if err := m.sameCurrency(o); err != nil {
		return Money{}, err
	}
	return New(m.Amount.Sub(o.Amount), m.Currency), nil
}

// Mul scales the amount by a dimensionless factor.
func (m Money) Mul(factor decimal.Decimal) Money {
	return New(m.Amount.Mul(factor), m.Currency)
}

func (m Money) MulFloat(factor float64) Money {
	return m.Mul(decimal.NewFromFloat(factor))
}

func (m Money) Cmp(o Money) (int, error) {
	if err := m.sameCurrency(o); err != nil {
		return 0, err
	}
	return m.Amount.Cmp(o.Amount), nil
}

func (m Money) Equal(o Money) bool {
	return m.Currency == o.Currency && m.Amount.Equal(o.Amount)
}

func (m Money) IsZero() bool { return m.Amount.IsZero() }

func (m Money) IsNegative() bool { return m.Amount.IsNegative() }

func (m Money) String() string {
	return m.Amount.StringFixed(2) + " " + m.Currency
}

func (m Money) sameCurrency(o Money) error {
	if m.Currency != o.Currency {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, o.Currency)
	}
	return nil
}
