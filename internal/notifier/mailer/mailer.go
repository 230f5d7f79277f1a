// Package mailer sends order status emails over SMTP. The original platform
// notifies customers from a restaurant Gmail account; host, sender and
// password come from config.
package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/Kennyy02/Samgyupmasaya/internal/config"
	"github.com/Kennyy02/Samgyupmasaya/pkg/logger"
)

type Mailer struct {
	host     string
	port     string
	from     string
	password string
	mylog    *logger.Logger
}

func New(cfg *config.Mail, mylog *logger.Logger) *Mailer {
	return &Mailer{
		host:     cfg.Host,
		port:     cfg.Port,
		from:     cfg.From,
		password: cfg.Password,
		mylog:    mylog,
	}
}

func (m *Mailer) Send(to string, orderID int64, status string) error {
	if m.from == "" || m.password == "" {
		return fmt.Errorf("mail credentials not configured")
	}

	subject := fmt.Sprintf("Samgyupmasaya: order #%d is now %s", orderID, status)
	body := fmt.Sprintf("Hi!\r\n\r\nYour order #%d is now %s.\r\n\r\nThank you for ordering with Samgyupmasaya!\r\n", orderID, status)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		m.from, to, subject, body))

	auth := smtp.PlainAuth("", m.from, m.password, m.host)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	return smtp.SendMail(addr, auth, m.from, []string{to}, msg)
}
