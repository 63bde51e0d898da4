// Package mailer delivers plain-text email over SMTP.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"calendar-booking/internal/infra"
	"calendar-booking/internal/pkg/config"
	"calendar-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const implicitTLSPort = 465

// SMTPSender speaks implicit TLS on port 465 and upgrades with STARTTLS on
// any other port when the server offers it.
type SMTPSender struct {
	host        string
	addr        string
	user        string
	pass        string
	from        string
	implicitTLS bool
	dialTimeout time.Duration
	logger      *slog.Logger
}

func NewSMTPSender(cfg config.SMTPConfig, logger *slog.Logger) *SMTPSender {
	return &SMTPSender{
		host:        strings.TrimSpace(cfg.Host),
		addr:        cfg.Addr(),
		user:        cfg.User,
		pass:        cfg.Pass,
		from:        strings.TrimSpace(cfg.Sender()),
		implicitTLS: cfg.Port == implicitTLSPort,
		dialTimeout: cfg.Dial,
		logger:      logger.With(slog.String("component", "smtp")),
	}
}

func (s *SMTPSender) Enabled() bool { return s.host != "" }

// Send returns the Message-ID header written into the delivered message.
func (s *SMTPSender) Send(ctx context.Context, msg shared.Message) (string, error) {
	if strings.TrimSpace(msg.To) == "" {
		return "", infra.WrapGatewayErr(s.logger, infra.KindMalformed, "message has no recipient", nil)
	}

	conn, err := s.dial(ctx)
	if err != nil {
		return "", infra.WrapGatewayErr(s.logger, infra.KindDeliveryFailure, "dial smtp server", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		_ = conn.Close()
		return "", infra.WrapGatewayErr(s.logger, infra.KindDeliveryFailure, "smtp handshake", err)
	}
	defer client.Close()

	messageID := NewMessageID(s.from)
	if err := s.deliver(client, msg, messageID); err != nil {
		return "", infra.WrapGatewayErr(s.logger, infra.KindDeliveryFailure, "smtp delivery", err)
	}
	// The server accepted the message once DATA closed.
	if err := client.Quit(); err != nil {
		s.logger.Warn("smtp quit failed", slog.String("message_id", messageID), slog.String("error", err.Error()))
	}
	return messageID, nil
}

func (s *SMTPSender) dial(ctx context.Context) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: s.dialTimeout}
	if s.implicitTLS {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: &tls.Config{ServerName: s.host, MinVersion: tls.VersionTLS12}}
		return tlsDialer.DialContext(ctx, "tcp", s.addr)
	}
	return dialer.DialContext(ctx, "tcp", s.addr)
}

func (s *SMTPSender) deliver(client *smtp.Client, msg shared.Message, messageID string) error {
	if !s.implicitTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: s.host, MinVersion: tls.VersionTLS12}); err != nil {
				return fmt.Errorf("starttls: %w", err)
			}
		}
	}
	if s.user != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(smtp.PlainAuth("", s.user, s.pass, s.host)); err != nil {
				return fmt.Errorf("auth: %w", err)
			}
		}
	}
	if err := client.Mail(s.from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write([]byte(BuildMessage(messageID, s.from, msg.To, msg.Subject, msg.Body))); err != nil {
		_ = w.Close()
		return fmt.Errorf("write body: %w", err)
	}
	return w.Close()
}

// NewMessageID returns a bracketed Message-ID in the sender's domain.
func NewMessageID(from string) string {
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domainOf(from))
}

// BuildMessage renders a minimal RFC 5322 text/plain message. The subject is
// Q-encoded so non-ASCII punctuation survives any relay.
func BuildMessage(messageID, from, to, subject, body string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\r\n", from)
	fmt.Fprintf(&sb, "To: %s\r\n", to)
	fmt.Fprintf(&sb, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&sb, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&sb, "Message-ID: %s\r\n", messageID)
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	sb.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	sb.WriteString(strings.ReplaceAll(strings.ReplaceAll(body, "\r\n", "\n"), "\n", "\r\n"))
	sb.WriteString("\r\n")
	return sb.String()
}

func domainOf(addr string) string {
	if i := strings.LastIndexByte(addr, '@'); i >= 0 && i < len(addr)-1 {
		return strings.Trim(addr[i+1:], "> ")
	}
	return "localhost"
}

// NopSender is used when SMTP is not configured. Messages are logged and
// dropped.
type NopSender struct {
	logger *slog.Logger
}

func NewNopSender(logger *slog.Logger) *NopSender {
	return &NopSender{logger: logger}
}

func (s *NopSender) Enabled() bool { return false }

func (s *NopSender) Send(_ context.Context, msg shared.Message) (string, error) {
	s.logger.Info("SMTP not configured, dropping email", slog.String("kind", msg.Kind), slog.String("to", msg.To))
	return "", nil
}

// New picks the sender for cfg.
func New(cfg config.SMTPConfig, logger *slog.Logger) shared.MailSender {
	if !cfg.Enabled() {
		return NewNopSender(logger)
	}
	return NewSMTPSender(cfg, logger)
}
