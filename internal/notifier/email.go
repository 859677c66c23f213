package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/chumbawanba/Stock-agent-ai/internal/model"
)

// EmailNotifier sends the actionable rows of a report as an HTML email
// over SMTP.
type EmailNotifier struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string

	logger *zap.Logger
}

var _ Notifier = (*EmailNotifier)(nil)

func NewEmailNotifier(host string, port int, username, password, from string, to []string, logger *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
		To:       to,
		logger:   logger,
	}
}

func (e *EmailNotifier) Name() string { return "email" }

// Notify sends the report by email. Reports without Buy or Sell rows
// are skipped without contacting the server.
func (e *EmailNotifier) Notify(ctx context.Context, report *model.Report) error {
	body := FormatEmailHTML(report)
	if body == "" {
		e.logger.Info("No actionable signals, skipping email")
		return nil
	}

	subject := fmt.Sprintf("Stock signals %s: %d actionable", report.GeneratedAt.Format("2006-01-02"), len(report.Actionable()))
	msg := buildMessage(e.From, e.To, subject, body)

	addr := fmt.Sprintf("%s:%d", e.Host, e.Port)
	var auth smtp.Auth
	if e.Username != "" {
		auth = smtp.PlainAuth("", e.Username, e.Password, e.Host)
	}
	if err := smtp.SendMail(addr, auth, e.From, e.To, msg); err != nil {
		return fmt.Errorf("send email via %s: %w", addr, err)
	}

	e.logger.Info("Email notification sent",
		zap.Int("recipients", len(e.To)),
		zap.String("subject", subject))
	return nil
}

// buildMessage assembles an RFC 5322 message with an HTML body.
func buildMessage(from string, to []string, subject, htmlBody string) []byte {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ", ")))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}
