package service

import (
	"fmt"

	"gerisafe/config"

	"gopkg.in/gomail.v2"
)

const confirmationSubject = "Confirmation Email for Database for Medication Safety in Geriatric Population Patients"

// Sender delivers outbound mail. Satisfied by SMTPSender in production and
// by capture fakes in tests.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends mail through the transport configured in the
// environment.
type SMTPSender struct {
	smtp config.SMTP
}

func NewSMTPSender() *SMTPSender {
	return &SMTPSender{smtp: config.GetSMTP()}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.smtp.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.smtp.Host, s.smtp.Port, s.smtp.Username, s.smtp.Password)
	return d.DialAndSend(m)
}

// SendConfirmation emails the registration confirmation link.
func SendConfirmation(sender Sender, to, link string) error {
	body := fmt.Sprintf("You have registered for an account for Database for Medication Safety in Geriatric Population Patients. Please click on this link %s to confirm your registration.", link)
	return sender.Send(to, confirmationSubject, body)
}
