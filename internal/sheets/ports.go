package sheets

import (
	"context"

	"expensebot/internal/core"
)

// Ports for outbound adapters.
type (
	// RowAppender writes one ledger row at the end of the sheet.
	RowAppender interface {
		AppendRow(ctx context.Context, r core.ExpenseRecord) (rowRef string, err error)
	}

	// AmountReader returns every raw value of the amount column, header
	// included. Parsing is left to the caller.
	AmountReader interface {
		ReadAmounts(ctx context.Context) ([]string, error)
	}

	// Ledger is the full store used by the bot.
	Ledger interface {
		RowAppender
		AmountReader
	}
)
