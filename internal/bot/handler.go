// Package bot reacts to private chat messages: it parses expense commands,
// records them in the ledger and composes the reply.
package bot

import (
	"context"
	"strings"

	"expensebot/internal/command"
	"expensebot/internal/core"
	"expensebot/internal/log"
)

// Message is an inbound chat message, independent of the platform.
type Message struct {
	ChatID    int64
	MessageID int
	UserID    int64
	Username  string
	FromBot   bool
	Private   bool
	Text      string
}

// Ledger is what the handler needs from the ledger client.
type Ledger interface {
	AppendRow(ctx context.Context, r core.ExpenseRecord) error
	ComputeTotal(ctx context.Context) core.Amount
}

// Publisher announces recorded expenses. Optional.
type Publisher interface {
	PublishExpenseRecorded(ctx context.Context, r core.ExpenseRecord, total core.Amount) error
}

type Handler struct {
	parser    *command.Parser
	ledger    Ledger
	publisher Publisher
	logger    *log.Logger
}

// NewHandler wires the parser and ledger. publisher may be nil.
func NewHandler(parser *command.Parser, ledger Ledger, publisher Publisher, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Handler{
		parser:    parser,
		ledger:    ledger,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentBot),
	}
}

// Handle returns the reply for m. ok is false when m is ignored: it came
// from a bot or outside a private chat.
func (h *Handler) Handle(ctx context.Context, m Message) (reply string, ok bool) {
	if m.FromBot || !m.Private {
		return "", false
	}

	logger := h.loggerFrom(ctx)
	switch cmd := h.parser.Parse(strings.TrimSpace(m.Text)).(type) {
	case command.Malformed:
		logger.DebugContext(ctx, "Rejected command",
			log.FieldOperation, log.OpParse,
			log.FieldError, cmd.Err,
			log.FieldErrorType, log.ErrorTypeValidation)
		return cmd.Reason, true
	case command.Unrecognized:
		return UnknownCommand(h.parser.Usage()), true
	case command.AddExpense:
		return h.addExpense(ctx, cmd.Record), true
	default:
		logger.ErrorContext(ctx, "Unhandled command type", log.FieldErrorType, log.ErrorTypeInternal)
		return UnknownCommand(h.parser.Usage()), true
	}
}

func (h *Handler) addExpense(ctx context.Context, r core.ExpenseRecord) string {
	if err := h.ledger.AppendRow(ctx, r); err != nil {
		// Already logged by the ledger client; no detail reaches the user.
		return SaveFailed
	}

	total := h.ledger.ComputeTotal(ctx)

	if h.publisher != nil {
		if err := h.publisher.PublishExpenseRecorded(ctx, r, total); err != nil {
			h.loggerFrom(ctx).WarnContext(ctx, "Failed to publish expense recorded event",
				log.NewFields().WithOperation(log.OpPublish).WithExpense(r).WithError(err, log.ErrorTypeNetwork).ToSlice()...)
		}
	}

	return Saved(r, total)
}

// loggerFrom prefers the per-message logger the transport put in ctx.
func (h *Handler) loggerFrom(ctx context.Context) *log.Logger {
	return log.FromContext(ctx, h.logger).WithComponent(log.ComponentBot)
}
