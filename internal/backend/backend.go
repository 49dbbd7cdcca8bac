// Package backend builds the ledger store and the optional event publisher
// selected by configuration.
package backend

import (
	"context"
	"errors"
	"fmt"

	"expensebot/internal/amqp"
	"expensebot/internal/config"
	"expensebot/internal/core"
	"expensebot/internal/log"
	"expensebot/internal/sheets"
	gsheet "expensebot/internal/sheets/google"
	"expensebot/internal/sheets/memory"
)

// Type represents the type of ledger backend
type Type string

const (
	SheetsBackend Type = config.BackendSheets
	MemoryBackend Type = config.BackendMemory
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Publisher announces recorded expenses.
type Publisher interface {
	PublishExpenseRecorded(ctx context.Context, r core.ExpenseRecord, total core.Amount) error
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result holds what the bot needs from the outside world. Publisher is nil
// when AMQP is disabled or unreachable.
type Result struct {
	Ledger    sheets.Ledger
	Publisher Publisher
	Cleanup   CleanupFunc
}

// Factory creates backends based on configuration
type Factory struct {
	logger    *log.Logger
	newSheets func(ctx context.Context, opts gsheet.Options) (sheets.Ledger, error)
	newAMQP   func(url, exchange, queue string) (*amqp.Client, error)
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) *Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Factory{
		logger: logger.WithComponent(log.ComponentApp),
		newSheets: func(ctx context.Context, opts gsheet.Options) (sheets.Ledger, error) {
			c, err := gsheet.New(ctx, opts)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
		newAMQP: amqp.NewClient,
	}
}

// Create builds the ledger for cfg.LedgerBackend and, when configured, the
// AMQP publisher. A publisher that cannot connect is logged and skipped.
func (f *Factory) Create(ctx context.Context, cfg *config.Config) (*Result, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	t := Type(cfg.LedgerBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", t)
	}

	res := &Result{Cleanup: func() error { return nil }}

	switch t {
	case SheetsBackend:
		store, err := f.newSheets(ctx, gsheet.Options{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsFile: cfg.GoogleServiceAccountFile,
			CredentialsJSON: cfg.GoogleServiceAccountJSON,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
		}
		res.Ledger = store
		f.logger.Info("Initialized Google Sheets backend",
			"spreadsheet_id", cfg.GoogleSpreadsheetID,
			"sheet", cfg.GoogleSheetName)
	case MemoryBackend:
		res.Ledger = memory.New()
		f.logger.Warn("Initialized memory backend, expenses are lost on restart")
	}

	if cfg.AMQPEnabled() {
		client, err := f.newAMQP(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			f.logger.WithComponent(log.ComponentAMQP).Warn("Failed to initialize AMQP client, continuing without events",
				log.NewFields().WithError(err, log.ErrorTypeNetwork).ToSlice()...)
		} else {
			res.Publisher = client
			res.Cleanup = client.Close
			f.logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	return res, nil
}
