package log

import "expensebot/internal/core"

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldErrorType = "error_type"
	FieldOperation = "operation"
	FieldChatID    = "chat_id"
	FieldUserID    = "user_id"
	FieldUsername  = "username"
	FieldMessageID = "message_id"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldDate      = "date"
	FieldTotal     = "total"
	FieldRowRef    = "row_ref"
	FieldDuration  = "duration_ms"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentBot      = "bot"
	ComponentTelegram = "telegram"
	ComponentLedger   = "ledger"
	ComponentAMQP     = "amqp"
)

// Operations defines standard operation names
const (
	OpAppend    = "append"
	OpReadTotal = "read_total"
	OpParse     = "parse"
	OpReply     = "reply"
	OpPublish   = "publish"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeNetwork       = "network_error"
	ErrorTypeInternal      = "internal_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithError adds error and error type fields
func (f LogFields) WithError(err error, errorType string) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
		f[FieldErrorType] = errorType
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithExpense adds the record's category, amount and date
func (f LogFields) WithExpense(r core.ExpenseRecord) LogFields {
	f[FieldCategory] = r.Category
	f[FieldAmount] = r.Amount.String()
	f[FieldDate] = r.Date.String()
	return f
}

// WithChat adds the chat and sender identifiers
func (f LogFields) WithChat(chatID, userID int64, username string) LogFields {
	f[FieldChatID] = chatID
	f[FieldUserID] = userID
	if username != "" {
		f[FieldUsername] = username
	}
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
