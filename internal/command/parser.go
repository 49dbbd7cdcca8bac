package command

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"expensebot/internal/core"
)

const (
	// DefaultPrefix marks a message as a command.
	DefaultPrefix = "!"
	// AddExpenseToken follows the prefix for the add-expense command.
	AddExpenseToken = "add expense:"
)

// Parser is a pure function of the message text and the current day.
type Parser struct {
	Prefix string
	Now    func() time.Time
}

// NewParser returns a parser using prefix (DefaultPrefix when empty) and the
// system clock.
func NewParser(prefix string) *Parser {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Parser{Prefix: prefix, Now: time.Now}
}

// FormatGuidance is the reply for text without the prefix.
func (p *Parser) FormatGuidance() string {
	return fmt.Sprintf("Please use the format: `%s%s <category>, <amount>, <date>`", p.prefix(), AddExpenseToken)
}

// Usage is the short command synopsis embedded in rejection replies.
func (p *Parser) Usage() string {
	return fmt.Sprintf("`%s%s <category>, <amount>`", p.prefix(), AddExpenseToken)
}

// InvalidFormat is the reply for a missing category or amount.
func (p *Parser) InvalidFormat() string {
	return "Invalid format. Use: " + p.Usage()
}

// InvalidAmount is the reply for an unparseable, non-positive or out of range
// amount.
const InvalidAmount = "Please provide a valid amount."

// Parse classifies text. Leading and trailing whitespace is ignored.
func (p *Parser) Parse(text string) Command {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, p.prefix()) {
		return Malformed{Reason: p.FormatGuidance(), Err: ErrMissingPrefix}
	}

	body := strings.TrimSpace(strings.TrimPrefix(text, p.prefix()))
	if !strings.HasPrefix(body, AddExpenseToken) {
		return Unrecognized{}
	}

	args := strings.TrimSpace(strings.TrimPrefix(body, AddExpenseToken))
	category, amountStr := splitArgs(args)
	if category == "" || amountStr == "" {
		return Malformed{Reason: p.InvalidFormat(), Err: ErrMissingField}
	}

	amount, err := core.ParsePositiveAmount(amountStr)
	if err != nil {
		return Malformed{Reason: InvalidAmount, Err: err}
	}

	record, err := core.NewExpenseRecord(category, amount, core.Today(p.now()))
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		return Malformed{Reason: InvalidAmount, Err: err}
	case err != nil:
		return Malformed{Reason: p.InvalidFormat(), Err: err}
	}

	return AddExpense{Record: record}
}

// splitArgs returns the first two comma-separated fields, trimmed. Extra
// fields are ignored.
func splitArgs(s string) (category, amount string) {
	fields := strings.Split(s, ",")
	category = strings.TrimSpace(fields[0])
	if len(fields) > 1 {
		amount = strings.TrimSpace(fields[1])
	}
	return category, amount
}

func (p *Parser) prefix() string {
	if p.Prefix == "" {
		return DefaultPrefix
	}
	return p.Prefix
}

func (p *Parser) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}
