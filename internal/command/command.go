// Package command turns a chat message body into a structured Command.
package command

import (
	"errors"

	"expensebot/internal/core"
)

// Command is the parse result of a message body. It is one of
// AddExpense, Malformed or Unrecognized.
type Command interface {
	command()
}

type (
	// AddExpense asks for Record to be appended to the ledger.
	AddExpense struct {
		Record core.ExpenseRecord
	}

	// Malformed is a command the user got wrong. Reason is the reply text.
	Malformed struct {
		Reason string
		Err    error
	}

	// Unrecognized carries the prefix but names no known command.
	Unrecognized struct{}
)

func (AddExpense) command()   {}
func (Malformed) command()    {}
func (Unrecognized) command() {}

var (
	ErrMissingPrefix = errors.New("missing command prefix")
	ErrMissingField  = errors.New("missing category or amount")
)
