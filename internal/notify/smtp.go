package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
)

// SMTPConfig carries the mail transport settings.
type SMTPConfig struct {
	Host      string
	Port      int
	Sender    string
	Recipient string
	Password  string // app password for the sender account
}

// SMTPNotifier sends reports over SMTP with STARTTLS and plain auth, the
// setup Gmail app passwords expect.
type SMTPNotifier struct {
	cfg SMTPConfig
}

// NewSMTPNotifier validates the transport settings and returns a notifier.
func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	if cfg.Host == "" || cfg.Sender == "" || cfg.Recipient == "" {
		return nil, fmt.Errorf("smtp notifier: host, sender and recipient are required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPNotifier{cfg: cfg}, nil
}

// Send delivers an HTML report, optionally with one inline attachment.
func (n *SMTPNotifier) Send(ctx context.Context, subject, htmlBody string, attachment *Attachment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := buildMessage(n.cfg.Sender, n.cfg.Recipient, subject, htmlBody, attachment)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	auth := smtp.PlainAuth("", n.cfg.Sender, n.cfg.Password, n.cfg.Host)
	if err := smtp.SendMail(addr, auth, n.cfg.Sender, []string{n.cfg.Recipient}, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return nil
}

// buildMessage assembles a multipart/related MIME message: the HTML body
// plus the base64-encoded inline attachment.
func buildMessage(sender, recipient, subject, htmlBody string, attachment *Attachment) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", sender)
	fmt.Fprintf(&buf, "To: %s\r\n", recipient)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/related; boundary=%q\r\n\r\n", writer.Boundary())

	htmlPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := htmlPart.Write([]byte(htmlBody)); err != nil {
		return nil, err
	}

	if attachment != nil {
		header := textproto.MIMEHeader{
			"Content-Type":              {attachment.MIMEType},
			"Content-Transfer-Encoding": {"base64"},
			"Content-ID":                {"<" + attachment.ContentID + ">"},
			"Content-Disposition":       {fmt.Sprintf("inline; filename=%q", attachment.Filename)},
		}
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, err
		}
		if err := writeBase64(part, attachment.Data); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeBase64 encodes data in RFC 2045 76-column lines.
func writeBase64(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 0 {
		n := 76
		if len(encoded) < n {
			n = len(encoded)
		}
		if _, err := fmt.Fprintf(w, "%s\r\n", encoded[:n]); err != nil {
			return err
		}
		encoded = encoded[n:]
	}
	return nil
}
