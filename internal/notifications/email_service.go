package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"time"
)

// EmailSender delivers a formatted ticket notification
type EmailSender interface {
	SendTicketEmail(ctx context.Context, notification *TicketNotification) error
}

// SMTPConfig holds SMTP configuration
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

const ticketEmailTemplate = `
<html>
<body>
	<h2>Your queue token at {{.FacilityName}}</h2>
	<p>Hello {{.RecipientName}},</p>
	<p>Your token number is <strong>{{.TokenNumber}}</strong>.</p>
	<p>Please arrive during your time slot: <strong>{{.TimeRange}}</strong>.</p>
	<p>You are number {{.PositionInSlot}} in your slot; estimated wait after
	the slot opens is about {{.EstimatedWaitMinutes}} minutes.</p>
</body>
</html>`

// SMTPEmailSender sends ticket emails over SMTP
type SMTPEmailSender struct {
	config   *SMTPConfig
	template *template.Template
}

func NewSMTPEmailSender(config *SMTPConfig) (*SMTPEmailSender, error) {
	if config == nil || config.Host == "" {
		return nil, fmt.Errorf("SMTP configuration is required: missing host")
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	tmpl, err := template.New("ticket_assigned").Parse(ticketEmailTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ticket email template: %w", err)
	}

	return &SMTPEmailSender{
		config:   config,
		template: tmpl,
	}, nil
}

func (s *SMTPEmailSender) SendTicketEmail(ctx context.Context, notification *TicketNotification) error {
	if notification.RecipientEmail == "" {
		// Walk-ins without an email still get their token on screen.
		log.Printf("📧 No recipient email for token %d, skipping delivery", notification.TokenNumber)
		return nil
	}

	var body bytes.Buffer
	if err := s.template.Execute(&body, notification); err != nil {
		return fmt.Errorf("failed to render ticket email: %w", err)
	}

	msg := buildMIMEMessage(s.config.FromName, s.config.FromEmail,
		notification.RecipientEmail,
		fmt.Sprintf("Your queue token #%d at %s", notification.TokenNumber, notification.FacilityName),
		body.String())

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{notification.RecipientEmail}, msg); err != nil {
		return fmt.Errorf("failed to send ticket email: %w", err)
	}

	log.Printf("📧 Ticket email sent to %s for token %d", notification.RecipientEmail, notification.TokenNumber)
	return nil
}

func buildMIMEMessage(fromName, fromEmail, to, subject, htmlBody string) []byte {
	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", fromName, fromEmail))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)
	return msg.Bytes()
}

// LogEmailSender is the fallback when SMTP is unconfigured: the notification
// pipeline keeps working, delivery is just a structured log line.
type LogEmailSender struct{}

func NewLogEmailSender() *LogEmailSender {
	return &LogEmailSender{}
}

func (s *LogEmailSender) SendTicketEmail(ctx context.Context, notification *TicketNotification) error {
	log.Printf("📧 [dry-run] token=%d facility=%s slot=%s recipient=%s",
		notification.TokenNumber, notification.FacilityName,
		notification.TimeRange, notification.RecipientEmail)
	return nil
}
