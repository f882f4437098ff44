// Package notify delivers the rendered monthly report.
package notify

import (
	"context"
	"errors"
)

// ErrDelivery indicates the report could not be handed to the transport.
// Delivery failures never roll back persisted snapshots or rendered charts.
var ErrDelivery = errors.New("delivery failed")

// Attachment is an inline file sent with a report.
type Attachment struct {
	Filename  string
	MIMEType  string
	ContentID string
	Data      []byte
}

// Notifier sends a rendered report to its recipient.
type Notifier interface {
	Send(ctx context.Context, subject, htmlBody string, attachment *Attachment) error
}
