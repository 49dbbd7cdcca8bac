package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"

	"expensebot/internal/core"
)

type fakeChannel struct {
	exchange, key string
	published     []amqp091.Publishing
	err           error
	closed        bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.exchange, f.key = exchange, key
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func testRecord(t *testing.T) core.ExpenseRecord {
	t.Helper()
	a, err := core.ParsePositiveAmount("250.50")
	if err != nil {
		t.Fatal(err)
	}
	return core.ExpenseRecord{Category: "Food", Amount: a, Date: core.NewDate(2024, 1, 15)}
}

func TestPublishExpenseRecorded(t *testing.T) {
	ch := &fakeChannel{}
	c := &Client{channel: ch, exchangeName: "expensebot", queueName: "expenses_recorded"}
	total, _ := core.ParseAmount("350.5")

	if err := c.PublishExpenseRecorded(context.Background(), testRecord(t), total); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if ch.exchange != "expensebot" || ch.key != "expenses_recorded" {
		t.Fatalf("unexpected routing %s/%s", ch.exchange, ch.key)
	}
	if len(ch.published) != 1 {
		t.Fatalf("expected one message, got %d", len(ch.published))
	}
	p := ch.published[0]
	if p.ContentType != "application/json" || p.DeliveryMode != amqp091.Persistent {
		t.Errorf("unexpected publishing %+v", p)
	}
	var msg ExpenseRecordedMessage
	if err := json.Unmarshal(p.Body, &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Category != "Food" || msg.Amount != "250.5" || msg.Date != "2024-01-15" || msg.Total != "350.5" {
		t.Errorf("unexpected message %+v", msg)
	}
}

func TestPublishExpenseRecorded_Error(t *testing.T) {
	c := &Client{channel: &fakeChannel{err: errors.New("channel closed")}}
	if err := c.PublishExpenseRecorded(context.Background(), testRecord(t), core.ZeroAmount); err == nil {
		t.Fatal("expected error")
	}
}

func TestClose_NilConnection(t *testing.T) {
	ch := &fakeChannel{}
	c := &Client{channel: ch}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !ch.closed {
		t.Fatal("channel not closed")
	}
}

