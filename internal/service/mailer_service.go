package service

import (
	"calmseek-backend/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Mailer delivers transactional email. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type smtpMailer struct {
	cfg config.MailConfig
	log *logrus.Logger
}

func NewSMTPMailer(cfg config.MailConfig, log *logrus.Logger) Mailer {
	return &smtpMailer{cfg: cfg, log: log}
}

func (m *smtpMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		m.log.Warnf("Failed to send email to %s: %+v", to, err)
		return err
	}
	return nil
}
