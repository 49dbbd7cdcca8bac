package bot

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensebot/internal/command"
	"expensebot/internal/core"
	"expensebot/internal/ledger"
	"expensebot/internal/log"
	"expensebot/internal/sheets/memory"
)

type fakeLedger struct {
	mu         sync.Mutex
	appendErr  error
	total      core.Amount
	appended   []core.ExpenseRecord
	totalCalls int
}

func (f *fakeLedger) AppendRow(_ context.Context, r core.ExpenseRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, r)
	f.total = f.total.Add(r.Amount)
	return nil
}

func (f *fakeLedger) ComputeTotal(context.Context) core.Amount {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.totalCalls++
	return f.total
}

type fakePublisher struct {
	err    error
	events []core.ExpenseRecord
}

func (f *fakePublisher) PublishExpenseRecorded(_ context.Context, r core.ExpenseRecord, _ core.Amount) error {
	f.events = append(f.events, r)
	return f.err
}

func mustAmount(t *testing.T, s string) core.Amount {
	t.Helper()
	a, err := core.ParseAmount(s)
	require.NoError(t, err)
	return a
}

func newTestHandler(l Ledger, p Publisher) *Handler {
	parser := command.NewParser("")
	parser.Now = func() time.Time { return time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC) }
	return NewHandler(parser, l, p, nil)
}

func dm(text string) Message {
	return Message{ChatID: 1, MessageID: 7, UserID: 42, Private: true, Text: text}
}

func TestHandle_Scenario1_SavesAndReportsTotal(t *testing.T) {
	l := &fakeLedger{total: mustAmount(t, "100")}
	h := newTestHandler(l, nil)

	reply, ok := h.Handle(context.Background(), dm("!add expense: Food, 250.50"))

	require.True(t, ok)
	assert.Equal(t, "Expense saved: Food, ₹250.5, 2024-01-15\nTotal spent: ₹350.5", reply)
	require.Len(t, l.appended, 1)
	assert.Equal(t, "Food", l.appended[0].Category)
	assert.Equal(t, "250.5", l.appended[0].Amount.String())
	assert.Equal(t, "2024-01-15", l.appended[0].Date.String())
}

func TestHandle_Scenario2_InvalidAmountNeverTouchesLedger(t *testing.T) {
	for _, in := range []string{"!add expense: Food, -5", "!add expense: Food, 0", "!add expense: Food, abc"} {
		l := &fakeLedger{}
		h := newTestHandler(l, nil)

		reply, ok := h.Handle(context.Background(), dm(in))

		require.True(t, ok)
		assert.Equal(t, "Please provide a valid amount.", reply, in)
		assert.Empty(t, l.appended, in)
		assert.Zero(t, l.totalCalls, in)
	}
}

func TestHandle_ExponentAmountsRejectedQuickly(t *testing.T) {
	for _, in := range []string{"!add expense: Food, 1e400", "!add expense: Food, 1e30000000"} {
		store := memory.New()
		h := newTestHandler(ledger.New(store, nil), nil)

		start := time.Now()
		reply, ok := h.Handle(context.Background(), dm(in))

		require.True(t, ok)
		assert.Equal(t, "Please provide a valid amount.", reply, in)
		assert.Empty(t, store.Records(), in)
		assert.Less(t, time.Since(start), time.Second, in)
	}
}

func TestHandle_LongCategoryRejected(t *testing.T) {
	l := &fakeLedger{}
	h := newTestHandler(l, nil)

	reply, ok := h.Handle(context.Background(), dm("!add expense: "+strings.Repeat("a", core.MaxCategoryLength+1)+", 10"))

	require.True(t, ok)
	assert.Equal(t, "Invalid format. Use: `!add expense: <category>, <amount>`", reply)
	assert.Empty(t, l.appended)
	assert.Zero(t, l.totalCalls)
}

func TestHandle_UsesLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	msgLogger := log.New(log.Config{Level: slog.LevelDebug, Output: &buf}).With(log.FieldChatID, int64(99))
	h := newTestHandler(&fakeLedger{}, nil)

	_, _ = h.Handle(log.WithLogger(context.Background(), msgLogger), dm("!add expense: Food, abc"))

	out := buf.String()
	assert.Contains(t, out, "Rejected command")
	assert.Contains(t, out, "chat_id=99")
	assert.Contains(t, out, "component=bot")
}

func TestHandle_Scenario3_NoPrefix(t *testing.T) {
	l := &fakeLedger{}
	h := newTestHandler(l, nil)

	reply, ok := h.Handle(context.Background(), dm("hello"))

	require.True(t, ok)
	assert.Equal(t, "Please use the format: `!add expense: <category>, <amount>, <date>`", reply)
	assert.Empty(t, l.appended)
	assert.Zero(t, l.totalCalls)
}

func TestHandle_Scenario4_UnknownCommand(t *testing.T) {
	h := newTestHandler(&fakeLedger{}, nil)

	reply, ok := h.Handle(context.Background(), dm("!foo"))

	require.True(t, ok)
	assert.Equal(t, "Unknown command. Use `!add expense: <category>, <amount>`", reply)
}

func TestHandle_Scenario5_WriteFailureSkipsTotal(t *testing.T) {
	l := &fakeLedger{appendErr: &ledger.WriteError{Err: errors.New("503")}}
	p := &fakePublisher{}
	h := newTestHandler(l, p)

	reply, ok := h.Handle(context.Background(), dm("!add expense: Food, 10"))

	require.True(t, ok)
	assert.Equal(t, "Failed to save expense. Please try again later.", reply)
	assert.Zero(t, l.totalCalls)
	assert.Empty(t, p.events)
}

func TestHandle_MissingField(t *testing.T) {
	h := newTestHandler(&fakeLedger{}, nil)

	reply, ok := h.Handle(context.Background(), dm("  !add expense: Food  "))

	require.True(t, ok)
	assert.Equal(t, "Invalid format. Use: `!add expense: <category>, <amount>`", reply)
}

func TestHandle_IgnoresBotsAndGroupChats(t *testing.T) {
	l := &fakeLedger{}
	h := newTestHandler(l, nil)

	fromBot := dm("!add expense: Food, 1")
	fromBot.FromBot = true
	group := dm("!add expense: Food, 1")
	group.Private = false

	for _, m := range []Message{fromBot, group} {
		reply, ok := h.Handle(context.Background(), m)
		assert.False(t, ok)
		assert.Empty(t, reply)
	}
	assert.Empty(t, l.appended)
}

func TestHandle_PublishesAfterSave(t *testing.T) {
	p := &fakePublisher{err: errors.New("broker down")}
	h := newTestHandler(&fakeLedger{}, p)

	reply, ok := h.Handle(context.Background(), dm("!add expense: Taxi, 80"))

	require.True(t, ok)
	assert.Equal(t, "Expense saved: Taxi, ₹80, 2024-01-15\nTotal spent: ₹80", reply)
	require.Len(t, p.events, 1)
	assert.Equal(t, "Taxi", p.events[0].Category)
}

func TestHandle_WithMemoryLedger(t *testing.T) {
	store := memory.New()
	h := newTestHandler(ledger.New(store, nil), nil)

	_, _ = h.Handle(context.Background(), dm("!add expense: Food, 100"))
	reply, _ := h.Handle(context.Background(), dm("!add expense: Food, 250.50"))

	assert.Equal(t, "Expense saved: Food, ₹250.5, 2024-01-15\nTotal spent: ₹350.5", reply)
	assert.Len(t, store.Records(), 2)
}
