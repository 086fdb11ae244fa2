// Package mailer delivers rendered email content over SMTP. Substack ingests
// posts through a per-publication email address, so "publishing" there is
// sending one HTML message with the cover image embedded inline.
package mailer

import (
	"context"
	"fmt"

	mail "github.com/wneessen/go-mail"

	"github.com/goliatone/go-postkit/internal/logging"
	"github.com/goliatone/go-postkit/internal/normalize"
	"github.com/goliatone/go-postkit/pkg/interfaces"
)

// DefaultPort is the SMTP submission port.
const DefaultPort = 587

// Config holds SMTP delivery settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// Sender delivers a prepared message. Satisfied by *mail.Client; tests swap
// in a recorder.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Publisher sends email content to the configured inbox.
type Publisher struct {
	cfg    Config
	sender Sender
	logger interfaces.Logger
}

// Option configures the publisher.
type Option func(*Publisher)

// WithSender overrides the SMTP client, mainly for tests.
func WithSender(sender Sender) Option {
	return func(p *Publisher) {
		if sender != nil {
			p.sender = sender
		}
	}
}

// WithLogger injects the component logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPublisher constructs the email publisher. The SMTP client is created
// lazily so a dry run never dials the server.
func NewPublisher(cfg Config, opts ...Option) *Publisher {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	p := &Publisher{
		cfg:    cfg,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name identifies the publisher backend.
func (p *Publisher) Name() string { return "mailer" }

// Platforms lists the platforms this publisher serves.
func (p *Publisher) Platforms() []string {
	return []string{interfaces.PlatformSubstack}
}

// Publish sends the email bundle. Errors are captured in the result, never
// propagated, so the other platforms' outcomes stand on their own.
func (p *Publisher) Publish(ctx context.Context, content *interfaces.NormalizedContent) []interfaces.PlatformResult {
	result := interfaces.PlatformResult{
		Platform: interfaces.PlatformSubstack,
		Status:   interfaces.StatusPublished,
	}

	msg, err := p.buildMessage(content)
	if err != nil {
		p.logger.Error("mailer.build.failed", "error", err)
		result.Status = interfaces.StatusFailed
		result.Error = err.Error()
		return []interfaces.PlatformResult{result}
	}

	sender := p.sender
	if sender == nil {
		client, err := p.newClient()
		if err != nil {
			result.Status = interfaces.StatusFailed
			result.Error = err.Error()
			return []interfaces.PlatformResult{result}
		}
		sender = client
	}

	if err := sender.DialAndSendWithContext(ctx, msg); err != nil {
		p.logger.Error("mailer.send.failed", "error", err, "to", p.cfg.To)
		result.Status = interfaces.StatusFailed
		result.Error = fmt.Sprintf("send email to %s: %v", p.cfg.To, err)
		return []interfaces.PlatformResult{result}
	}

	p.logger.Info("mailer.send.ok", "to", p.cfg.To, "subject", content.Email.Subject)
	return []interfaces.PlatformResult{result}
}

func (p *Publisher) buildMessage(content *interfaces.NormalizedContent) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(p.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid from address %q: %w", p.cfg.From, err)
	}
	if err := msg.To(p.cfg.To); err != nil {
		return nil, fmt.Errorf("invalid to address %q: %w", p.cfg.To, err)
	}

	msg.Subject(content.Email.Subject)
	msg.SetBodyString(mail.TypeTextHTML, content.Email.HTML)

	if content.Email.Media.HasImage() {
		msg.EmbedFile(content.Email.Media.ImagePath, mail.WithFileContentID(normalize.CoverImageCID))
	}
	return msg, nil
}

func (p *Publisher) newClient() (*mail.Client, error) {
	client, err := mail.NewClient(p.cfg.Host,
		mail.WithPort(p.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(p.cfg.Username),
		mail.WithPassword(p.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client %s:%d: %w", p.cfg.Host, p.cfg.Port, err)
	}
	return client, nil
}
