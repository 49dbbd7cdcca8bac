// Package ledger appends expense rows to the remote sheet and recomputes the
// running total from its amount column.
package ledger

import (
	"context"
	"time"

	"expensebot/internal/core"
	"expensebot/internal/log"
	"expensebot/internal/sheets"
)

// Client wraps the two remote ledger operations. Writes fail loudly, total
// reads degrade to zero.
type Client struct {
	appender sheets.RowAppender
	reader   sheets.AmountReader
	logger   *log.Logger
}

func New(store sheets.Ledger, logger *log.Logger) *Client {
	return NewWithPorts(store, store, logger)
}

func NewWithPorts(appender sheets.RowAppender, reader sheets.AmountReader, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Client{
		appender: appender,
		reader:   reader,
		logger:   logger.WithComponent(log.ComponentLedger),
	}
}

// AppendRow writes r as (category, amount, date). Any failure is returned as
// a *WriteError; callers must not assume the row was or was not written.
func (c *Client) AppendRow(ctx context.Context, r core.ExpenseRecord) error {
	start := time.Now()
	ref, err := c.appender.AppendRow(ctx, r)
	fields := log.NewFields().WithOperation(log.OpAppend).WithExpense(r)
	fields[log.FieldDuration] = time.Since(start).Milliseconds()
	if err != nil {
		c.logger.ErrorContext(ctx, "Failed to append expense to ledger",
			fields.WithError(err, log.ErrorTypeNetwork).ToSlice()...)
		return &WriteError{Err: err}
	}
	fields[log.FieldRowRef] = ref
	c.logger.InfoContext(ctx, "Expense appended to ledger", fields.ToSlice()...)
	return nil
}

// Total sums the amount column, returning a *ReadError on transport failure.
func (c *Client) Total(ctx context.Context) (core.Amount, error) {
	values, err := c.reader.ReadAmounts(ctx)
	if err != nil {
		return core.ZeroAmount, &ReadError{Err: err}
	}
	return SumAmounts(values), nil
}

// ComputeTotal is Total with read failures logged and reported as zero, so
// a transient outage still yields a reply.
func (c *Client) ComputeTotal(ctx context.Context) core.Amount {
	total, err := c.Total(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "Failed to read ledger total, reporting zero",
			log.NewFields().WithOperation(log.OpReadTotal).WithError(err, log.ErrorTypeNetwork).ToSlice()...)
		return core.ZeroAmount
	}
	c.logger.DebugContext(ctx, "Ledger total computed", log.FieldTotal, total.String())
	return total
}

// SumAmounts adds every value that parses as a decimal. Anything else, such
// as a header cell, is skipped.
func SumAmounts(values []string) core.Amount {
	total := core.ZeroAmount
	for _, v := range values {
		a, err := core.ParseAmount(v)
		if err != nil {
			continue
		}
		total = total.Add(a)
	}
	return total
}
