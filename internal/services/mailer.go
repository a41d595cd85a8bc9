package services

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

// Mailer delivers notification emails.
type Mailer interface {
	SendNotification(to string, n NotificationMail) error
}

type NotificationMail struct {
	Title   string
	Message string
	Link    string
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, password, from string) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (m *smtpMailer) SendNotification(to string, n NotificationMail) error {
	msg := buildNotificationMessage(m.from, to, n)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	return nil
}

func buildNotificationMessage(from, to string, n NotificationMail) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", n.Title)

	body := fmt.Sprintf("<h3>%s</h3>\n<p>%s</p>\n", html.EscapeString(n.Title), html.EscapeString(n.Message))
	if n.Link != "" {
		body += fmt.Sprintf("<p><a href=\"%s\">Open in studio</a></p>\n", html.EscapeString(n.Link))
	}
	msg.SetBody("text/html", body)
	msg.AddAlternative("text/plain", n.Title+"\n\n"+n.Message)
	return msg
}
