package mailer

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer defines contract for the outbound mail transport. Send reports a
// success/failure signal only; there is no delivery guarantee and no retry.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates an SMTP-backed Mailer from SMTP_HOST, SMTP_PORT,
// SMTP_USERNAME, SMTP_PASSWORD and MAIL_FROM environment variables.
func NewSMTPMailer() (Mailer, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil, fmt.Errorf("SMTP_HOST is not set")
	}

	port := 587
	if p := os.Getenv("SMTP_PORT"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", p, err)
		}
		port = parsed
	}

	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")

	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "noreply@raindropsacademy.com"
	}

	return &smtpMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}, nil
}

func (m *smtpMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	return nil
}

// consoleMailer prints messages to the log instead of delivering them.
// Used in development when SMTP is not configured.
type consoleMailer struct{}

func NewConsoleMailer() Mailer {
	return consoleMailer{}
}

func (consoleMailer) Send(to, subject, htmlBody string) error {
	log.Printf("[mail] to=%s subject=%q body=%d bytes", to, subject, len(htmlBody))
	return nil
}
