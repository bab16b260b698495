package notification

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Line prefixes written by the built-in channels.
const (
	EmailPrefix = "Email sent: "
	SMSPrefix   = "SMS sent: "
)

// Channel names of the built-in variants.
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// lineChannel writes one tagged line per message to an output sink.
type lineChannel struct {
	name   string
	prefix string
	out    io.Writer
	logger *slog.Logger
}

func newLineChannel(name, prefix string, out io.Writer, logger *slog.Logger) lineChannel {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return lineChannel{name: name, prefix: prefix, out: out, logger: logger}
}

// deliver writes the whole line in a single Write so that concurrent senders
// sharing a synchronized sink never interleave partial lines.
func (c lineChannel) deliver(message string) error {
	if _, err := io.WriteString(c.out, c.prefix+message+"\n"); err != nil {
		return fmt.Errorf("writing %s line: %w", c.name, err)
	}
	return nil
}

func (c lineChannel) send(message string) {
	if err := c.deliver(message); err != nil {
		c.logger.Warn("notification delivery failed",
			slog.String("channel", c.name),
			slog.Any("error", err),
		)
	}
}

// EmailNotifier delivers messages over the email-like channel.
type EmailNotifier struct {
	ch lineChannel
}

// NewEmailNotifier creates an EmailNotifier writing to out. A nil out writes
// to standard output; a nil logger uses slog.Default().
func NewEmailNotifier(out io.Writer, logger *slog.Logger) *EmailNotifier {
	return &EmailNotifier{ch: newLineChannel(ChannelEmail, EmailPrefix, out, logger)}
}

// Name returns the channel identifier.
func (n *EmailNotifier) Name() string { return ChannelEmail }

// Send emits "Email sent: <message>".
func (n *EmailNotifier) Send(message string) { n.ch.send(message) }

// Deliver emits the same line as Send and returns any sink error.
func (n *EmailNotifier) Deliver(message string) error { return n.ch.deliver(message) }

// SMSNotifier delivers messages over the SMS-like channel.
type SMSNotifier struct {
	ch lineChannel
}

// NewSMSNotifier creates an SMSNotifier writing to out. A nil out writes to
// standard output; a nil logger uses slog.Default().
func NewSMSNotifier(out io.Writer, logger *slog.Logger) *SMSNotifier {
	return &SMSNotifier{ch: newLineChannel(ChannelSMS, SMSPrefix, out, logger)}
}

// Name returns the channel identifier.
func (n *SMSNotifier) Name() string { return ChannelSMS }

// Send emits "SMS sent: <message>".
func (n *SMSNotifier) Send(message string) { n.ch.send(message) }

// Deliver emits the same line as Send and returns any sink error.
func (n *SMSNotifier) Deliver(message string) error { return n.ch.deliver(message) }
