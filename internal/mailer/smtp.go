package mailer

import "gopkg.in/gomail.v2"

// SMTPSender delivers mail through an SMTP relay via gomail.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (s *SMTPSender) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)
	return dialer.DialAndSend(msg)
}
