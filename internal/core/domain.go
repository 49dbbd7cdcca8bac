package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// DateLayout is the ISO 8601 calendar-date layout used in the ledger.
	DateLayout = "2006-01-02"

	// MaxCategoryLength is the longest category, in runes, a record may carry.
	MaxCategoryLength = 100
)

type (
	// Date is a calendar day in UTC.
	Date struct {
		time.Time
	}

	// ExpenseRecord is a single ledger row: what was spent, how much, and when.
	ExpenseRecord struct {
		Category string
		Amount   Amount
		Date     Date
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrAmountOutOfRange = fmt.Errorf("%w: out of range", ErrInvalidAmount)
	ErrEmptyCategory    = errors.New("empty category")
	ErrCategoryTooLong  = fmt.Errorf("category exceeds %d characters", MaxCategoryLength)
	ErrZeroDate         = errors.New("date cannot be zero")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today truncates t to its UTC calendar day.
func Today(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, int(m), d)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// NewExpenseRecord builds a validated record.
func NewExpenseRecord(category string, amount Amount, date Date) (ExpenseRecord, error) {
	r := ExpenseRecord{Category: strings.TrimSpace(category), Amount: amount, Date: date}
	if err := r.Validate(); err != nil {
		return ExpenseRecord{}, err
	}
	return r, nil
}

func (r ExpenseRecord) Validate() error {
	category := strings.TrimSpace(r.Category)
	if category == "" {
		return ErrEmptyCategory
	}
	if utf8.RuneCountInString(category) > MaxCategoryLength {
		return ErrCategoryTooLong
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	return r.Date.Validate()
}
