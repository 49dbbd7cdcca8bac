package bot

import (
	"fmt"

	"expensebot/internal/core"
)

const (
	// SaveFailed is the reply when the ledger append fails.
	SaveFailed = "Failed to save expense. Please try again later."
	// CurrencySymbol prefixes every amount in replies.
	CurrencySymbol = "₹"
)

// UnknownCommand is the reply for a prefixed message naming no command.
func UnknownCommand(usage string) string {
	return "Unknown command. Use " + usage
}

// Saved confirms r and reports the running total.
func Saved(r core.ExpenseRecord, total core.Amount) string {
	return fmt.Sprintf("Expense saved: %s, %s%s, %s\nTotal spent: %s%s",
		r.Category, CurrencySymbol, r.Amount, r.Date, CurrencySymbol, total)
}
