package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date form used on the wire and in forms.
const DateLayout = "2006-01-02"

type (
	// Amount is a fixed-point currency value. The backend is allowed to
	// transport amounts either as a JSON number or as a quoted string;
	// Amount accepts both and always re-encodes as a string with two
	// decimals.
	Amount struct {
		decimal.Decimal
	}

	// Expense is one tracked spending entry as returned by the backend.
	// ID is server-assigned and immutable once created.
	Expense struct {
		ID          int64  `json:"id"`
		Title       string `json:"title"`
		Amount      Amount `json:"amount"`
		Date        string `json:"date"`
		Description string `json:"description"`
	}

	// Draft carries the mutable fields of an expense for create and
	// update requests.
	Draft struct {
		Title       string `json:"title"`
		Amount      Amount `json:"amount"`
		Date        string `json:"date"`
		Description string `json:"description"`
	}
)

var (
	ErrEmptyTitle     = errors.New("empty title")
	ErrNegativeAmount = errors.New("negative amount")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidIncome  = errors.New("income must be a positive number")
)

// NewAmount builds an Amount from a decimal string such as "12.50".
func NewAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return Amount{Decimal: d}, nil
}

// MarshalJSON encodes the amount as a quoted fixed two-decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.StringFixed(2) + `"`), nil
}

// UnmarshalJSON accepts both `"12.50"` and `12.5`.
func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.Decimal.UnmarshalJSON(data)
}

// ValidDate reports whether s is a well-formed calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	if d.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !ValidDate(d.Date) {
		return ErrInvalidDate
	}
	return nil
}
