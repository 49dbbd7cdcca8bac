package amqp

import (
	"encoding/json"
	"time"

	"expensebot/internal/core"
)

// ExpenseRecordedMessage announces a row appended to the ledger together with
// the total reported to the user.
type ExpenseRecordedMessage struct {
	Category  string    `json:"category"`
	Amount    string    `json:"amount"`
	Date      string    `json:"date"`
	Total     string    `json:"total"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseRecordedMessage builds the message for r and total.
func NewExpenseRecordedMessage(r core.ExpenseRecord, total core.Amount) *ExpenseRecordedMessage {
	return &ExpenseRecordedMessage{
		Category:  r.Category,
		Amount:    r.Amount.String(),
		Date:      r.Date.String(),
		Total:     total.String(),
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

