package notification

import (
	"context"
	"fmt"
	"strings"

	"go-ems/internal/config"
	"go-ems/internal/shared/apperror"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

//go:generate mockgen -source=sender.go -destination=mock/sender_mock.go -package=mock
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// mailDialer is satisfied by *mail.Client.
type mailDialer interface {
	DialAndSendWithContext(ctx context.Context, msgs ...*mail.Msg) error
}

type smtpSender struct {
	client mailDialer
	from   string
	logger *zap.Logger
}

func NewSMTPSender(cfg config.SMTP, logger ...*zap.Logger) (Sender, error) {
	l := zap.L().Named("notification.smtp")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.smtp")
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &smtpSender{client: client, from: from, logger: l}, nil
}

func (s *smtpSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return apperror.Dependency(err, "Failed to send email")
	}
	if err := msg.To(strings.TrimSpace(to)); err != nil {
		return apperror.Dependency(err, "Failed to send email")
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		s.logger.Error("send mail failed", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return apperror.Dependency(err, "Failed to send email")
	}

	s.logger.Info("mail sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

type nopSender struct {
	logger *zap.Logger
}

// NewNopSender logs and drops every message. Used when SMTP is not configured.
func NewNopSender(logger ...*zap.Logger) Sender {
	l := zap.L().Named("notification.nop")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.nop")
	}
	return &nopSender{logger: l}
}

func (s *nopSender) Send(_ context.Context, to, subject, _ string) error {
	s.logger.Warn("smtp not configured, mail dropped", zap.String("to", to), zap.String("subject", subject))
	return nil
}
