package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Mailer sends plain-text mail over SMTP. With no host configured it only
// logs the message, which is what local development wants.
type Mailer struct {
	host string
	port string
	user string
	pass string
	from string
	log  *slog.Logger
}

func New(host, port, user, pass, from string, log *slog.Logger) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass, from: from, log: log}
}

func (m *Mailer) Send(to, subject, body string) error {
	if to == "" {
		return nil
	}
	if m.host == "" {
		m.log.Info("mail (smtp disabled)", "to", to, "subject", subject)
		return nil
	}

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		m.log.Error("mail send failed", "to", to, "subject", subject, "err", err)
		return err
	}
	return nil
}
