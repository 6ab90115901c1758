package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/voidrp/community-backend/internal/config"
)

// Mailer sends transactional email.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer wraps a gomail dialer and the community mail template.
type SMTPMailer struct {
	cfg    config.MailConfig
	dialer *gomail.Dialer
}

// NewSMTPMailer builds the mailer from SMTP settings.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Send wraps the body in the site layout and delivers it.
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", wrapTemplate(subject, htmlBody))
	return m.dialer.DialAndSend(msg)
}

func wrapTemplate(subject, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="de">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s</title>
</head>
<body>
  <header style="background-color: #007BFF; padding: 10px; text-align: center; color: #ffffff; border-top-left-radius: 8px; border-top-right-radius: 8px;">
    <h2>%s</h2>
  </header>
  <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; padding: 20px; border-radius: 8px; box-shadow: 0 0 10px rgba(0, 0, 0, 0.1); margin-top: 20px;">
    %s
  </div>
  <div style="margin-top: 20px; padding: 10px; border-top: 1px solid #dddddd; text-align: center; color: #777777;">
    <p>Void Roleplay | <a href="https://voidroleplay.de" target="_blank" style="color: #007BFF; text-decoration: none;">www.voidroleplay.de</a></p>
  </div>
</body>
</html>`, subject, subject, body)
}
