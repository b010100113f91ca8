package notifier

import (
	"context"
	"encoding/json"
	"time"

	"checkout-service/internal/service"

	"github.com/oklog/ulid/v2"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const writeTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes order confirmations to the e-mail topic; cmd/notifier delivers them.
type KafkaNotifier struct {
	writer messageWriter
	log    *zap.Logger
}

func NewKafkaNotifier(brokers []string, topic string, log *zap.Logger) *KafkaNotifier {
	return newKafkaNotifier(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
	}, log)
}

func newKafkaNotifier(w messageWriter, log *zap.Logger) *KafkaNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &KafkaNotifier{writer: w, log: log}
}

func (p *KafkaNotifier) SendOrderConfirmation(ctx context.Context, e service.OrderPlacedEvent) error {
	if e.Email == "" {
		return notificationError(ErrNoRecipient)
	}

	msg, err := confirmationMessage(e)
	if err != nil {
		return notificationError(err)
	}
	value, err := json.Marshal(msg)
	if err != nil {
		return notificationError(err)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.OrderNumber),
		Value: value,
	}); err != nil {
		return notificationError(err)
	}

	p.log.Debug("order confirmation queued", zap.String("order_number", e.OrderNumber), zap.String("message_id", msg.ID))
	return nil
}

func (p *KafkaNotifier) Close() error {
	return p.writer.Close()
}

func confirmationMessage(e service.OrderPlacedEvent) (EmailMessage, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return EmailMessage{}, err
	}
	data := map[string]any{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return EmailMessage{}, err
	}
	return EmailMessage{
		ID:       ulid.Make().String(),
		To:       e.Email,
		Subject:  "Order " + e.OrderNumber + " confirmed",
		Template: TemplateOrderConfirmation,
		Data:     data,
	}, nil
}

// NopNotifier is used when no broker is configured.
type NopNotifier struct {
	Log *zap.Logger
}

func (n NopNotifier) SendOrderConfirmation(_ context.Context, e service.OrderPlacedEvent) error {
	if n.Log != nil {
		n.Log.Debug("order confirmation skipped: notifier disabled", zap.String("order_number", e.OrderNumber))
	}
	return nil
}
