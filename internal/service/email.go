package service

import (
	"context"

	"gopkg.in/gomail.v2"
)

// smtpEmailService delivers mail through a plain SMTP relay.
type smtpEmailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPEmailService(host string, port int, username, password, from string) EmailService {
	return &smtpEmailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *smtpEmailService) Send(ctx context.Context, toEmail, toName, subject, plainText, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetAddressHeader("To", toEmail, toName)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainText)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	return d.DialAndSend(m)
}
