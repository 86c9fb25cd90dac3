package services

import (
	"gopkg.in/gomail.v2"

	"github.com/yeremiapane/pizzeria-app/config"
	"github.com/yeremiapane/pizzeria-app/utils"
)

// MailSender delivers a single message. Controllers depend on the interface
// so tests can swap in a recorder.
type MailSender interface {
	Send(to, subject, body string) error
}

// Mailer sends through SMTP. Delivery is best-effort: a failure is reported
// as ErrMailDelivery and never retried.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.MailFrom,
	}
}

func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		utils.ErrorLogger.Printf("Mail delivery to %s failed: %v", to, err)
		return utils.ErrMailDelivery
	}
	return nil
}
