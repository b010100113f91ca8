package notifier

import (
	"errors"
	"fmt"
)

const TemplateOrderConfirmation = "order_confirmation"

// ErrNotification marks every delivery failure. Callers log it and move on.
var ErrNotification = errors.New("notification failed")

var ErrNoRecipient = errors.New("no recipient address")

// EmailMessage is the payload on the e-mail topic.
type EmailMessage struct {
	ID       string         `json:"id"`
	To       string         `json:"to"`
	Subject  string         `json:"subject"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

func notificationError(err error) error {
	return fmt.Errorf("%w: %w", ErrNotification, err)
}
