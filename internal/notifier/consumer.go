package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Consumer reads EmailMessage records and hands them to a Mailer. Bad records are logged and skipped.
type Consumer struct {
	reader messageReader
	mailer Mailer
	log    *zap.Logger
}

func NewConsumer(brokers []string, groupID, topic string, mailer Mailer, log *zap.Logger) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		MinBytes:          10e3,
		MaxBytes:          10e6,
		CommitInterval:    time.Second,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	})
	return newConsumer(r, mailer, log)
}

func newConsumer(r messageReader, mailer Mailer, log *zap.Logger) *Consumer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Consumer{reader: r, mailer: mailer, log: log}
}

func (c *Consumer) Run(ctx context.Context) error {
	c.log.Info("kafka consumer started")
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			c.log.Error("read message", zap.Error(err))
			continue
		}
		_ = c.handle(m)
	}
}

func (c *Consumer) handle(m kafka.Message) error {
	var em EmailMessage
	if err := json.Unmarshal(m.Value, &em); err != nil {
		c.log.Error("unmarshal email message", zap.ByteString("value", m.Value), zap.Error(err))
		return err
	}
	if em.To == "" || em.Template == "" {
		c.log.Warn("invalid email message", zap.String("id", em.ID), zap.String("template", em.Template))
		return ErrNoRecipient
	}
	if err := c.mailer.Send(Notification{To: em.To, Subject: em.Subject, Template: em.Template, Data: em.Data}); err != nil {
		c.log.Error("send email failed", zap.String("id", em.ID), zap.String("to", em.To), zap.String("template", em.Template), zap.Error(err))
		return notificationError(err)
	}
	c.log.Info("email sent", zap.String("id", em.ID), zap.String("to", em.To), zap.String("template", em.Template))
	return nil
}

func (c *Consumer) Close() error { return c.reader.Close() }
