package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"checkout-service/internal/service"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

type fakeReader struct {
	mu   sync.Mutex
	msgs []kafka.Message
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.msgs) == 0 {
		r.mu.Unlock()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	r.mu.Unlock()
	return m, nil
}

func (r *fakeReader) pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

func (r *fakeReader) Close() error { return nil }

type recordingMailer struct {
	sent []Notification
	err  error
}

func (m *recordingMailer) Send(n Notification) error {
	m.sent = append(m.sent, n)
	return m.err
}

func sampleEvent() service.OrderPlacedEvent {
	return service.OrderPlacedEvent{
		OrderID:         uuid.New(),
		OrderNumber:     "ORD-AB12CD34EF",
		UserID:          uuid.New(),
		Email:           "buyer@example.com",
		Currency:        "USD",
		Subtotal:        "25.00",
		TaxAmount:       "2.00",
		ShippingAmount:  "0.00",
		DiscountAmount:  "0.00",
		Total:           "27.00",
		ShippingAddress: "221B Baker St",
		City:            "Toronto",
		Items: []service.OrderLineEvent{
			{ProductName: "Tea Pot", Quantity: 2, UnitPrice: "10.00", TaxAmount: "2.00", LineTotal: "22.00"},
			{ProductName: "Spoon", Quantity: 1, UnitPrice: "5.00", TaxAmount: "0.00", LineTotal: "5.00"},
		},
		PlacedAt: time.Now(),
	}
}

func TestKafkaNotifier_PublishesConfirmation(t *testing.T) {
	w := &fakeWriter{}
	n := newKafkaNotifier(w, nil)

	require.NoError(t, n.SendOrderConfirmation(context.Background(), sampleEvent()))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "ORD-AB12CD34EF", string(w.msgs[0].Key))

	var msg EmailMessage
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &msg))
	assert.Len(t, msg.ID, 26)
	assert.Equal(t, "buyer@example.com", msg.To)
	assert.Equal(t, TemplateOrderConfirmation, msg.Template)
	assert.Equal(t, "27.00", msg.Data["total"])
	assert.Len(t, msg.Data["items"], 2)
}

func TestKafkaNotifier_Failures(t *testing.T) {
	ev := sampleEvent()
	ev.Email = ""
	n := newKafkaNotifier(&fakeWriter{}, nil)
	err := n.SendOrderConfirmation(context.Background(), ev)
	require.ErrorIs(t, err, ErrNotification)
	require.ErrorIs(t, err, ErrNoRecipient)

	broken := errors.New("broker unavailable")
	n = newKafkaNotifier(&fakeWriter{err: broken}, nil)
	err = n.SendOrderConfirmation(context.Background(), sampleEvent())
	require.ErrorIs(t, err, ErrNotification)
	require.ErrorIs(t, err, broken)
}

func TestNopNotifier(t *testing.T) {
	assert.NoError(t, NopNotifier{}.SendOrderConfirmation(context.Background(), sampleEvent()))
}

func confirmationData(t *testing.T) map[string]any {
	t.Helper()
	msg, err := confirmationMessage(sampleEvent())
	require.NoError(t, err)
	return msg.Data
}

func TestEmailSender_BuildsBuiltinTemplate(t *testing.T) {
	s := NewEmailSender(SMTPConfig{From: "shop@example.com"})
	m, err := s.Build(Notification{
		To:       "buyer@example.com",
		Subject:  "Order ORD-AB12CD34EF confirmed",
		Template: TemplateOrderConfirmation,
		Data:     confirmationData(t),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "ORD-AB12CD34EF")
	assert.Contains(t, out, "Tea Pot x2")
	assert.Contains(t, out, "27.00 USD")
	assert.Contains(t, out, "text/html")
}

func TestEmailSender_TemplateDirOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "order_confirmation.txt"), []byte("custom {{.order_number}}"), 0o600))

	s := NewEmailSender(SMTPConfig{From: "shop@example.com", TMPLDir: dir})
	plain, err := s.renderPlain(TemplateOrderConfirmation, confirmationData(t))
	require.NoError(t, err)
	assert.Equal(t, "custom ORD-AB12CD34EF", plain)

	// html falls back to the built-in template
	html, err := s.renderHTML(TemplateOrderConfirmation, confirmationData(t))
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>Total: 27.00 USD</strong>")

	_, err = s.renderPlain("missing", nil)
	require.Error(t, err)
}

func TestConsumer_DeliversAndSkipsBadRecords(t *testing.T) {
	good, err := json.Marshal(EmailMessage{ID: "1", To: "a@example.com", Subject: "s", Template: TemplateOrderConfirmation, Data: map[string]any{}})
	require.NoError(t, err)
	noRecipient, err := json.Marshal(EmailMessage{ID: "2", Template: TemplateOrderConfirmation})
	require.NoError(t, err)

	r := &fakeReader{msgs: []kafka.Message{
		{Value: []byte("{not json")},
		{Value: noRecipient},
		{Value: good},
	}}
	mailer := &recordingMailer{}
	c := newConsumer(r, mailer, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	require.Eventually(t, func() bool { return r.pending() == 0 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "a@example.com", mailer.sent[0].To)
}

func TestConsumer_HandleReportsSendFailure(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("smtp down")}
	c := newConsumer(&fakeReader{}, mailer, nil)
	value, err := json.Marshal(EmailMessage{To: "a@example.com", Template: TemplateOrderConfirmation})
	require.NoError(t, err)
	require.ErrorIs(t, c.handle(kafka.Message{Value: value}), ErrNotification)
}
