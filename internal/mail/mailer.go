// Package mail is the outbound mail boundary. Delivery failures are
// the caller's to log; nothing here ever blocks a request, callers
// dispatch Send on its own goroutine.
package mail

import (
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewSMTPMailer(host string, port int, user, pass, from string) Mailer {
	return &smtpMailer{host: host, port: port, user: user, pass: pass, from: from}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	return d.DialAndSend(msg)
}

// logMailer stands in when no SMTP host is configured (local
// development): the message is logged instead of delivered.
type logMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) Send(to, subject, body string) error {
	m.logger.Info("mail transport disabled, logging message",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body))
	return nil
}
