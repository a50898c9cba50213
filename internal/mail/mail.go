package mail

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Notifier sends best-effort notification mails for contact and registration
// submissions. A nil *Notifier (SMTP not configured) silently drops mail;
// form submissions never fail because of the mailer.
type Notifier struct {
	addr string
	auth smtp.Auth
	from string
}

func New(host, port, user, password, from string) *Notifier {
	if host == "" {
		return nil
	}
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, password, host)
	}
	return &Notifier{
		addr: host + ":" + port,
		auth: auth,
		from: from,
	}
}

// Send delivers a plain-text mail. Callers run it in a goroutine; errors are
// logged, never propagated.
func (n *Notifier) Send(to []string, subject, body string) {
	if n == nil || len(to) == 0 {
		return
	}

	msg := strings.Join([]string{
		"From: " + n.from,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(n.addr, n.auth, n.from, to, []byte(msg)); err != nil {
		log.Printf("mail send failed (subject %q): %v", subject, err)
	}
}

// ContactReceived notifies the admin inbox and thanks the sender.
func (n *Notifier) ContactReceived(adminEmail, senderEmail, senderName, subject, inquiryType, message string) {
	if n == nil {
		return
	}
	n.Send([]string{adminEmail},
		fmt.Sprintf("New contact enquiry: %s", subject),
		fmt.Sprintf("Name: %s\nEmail: %s\nInquiry type: %s\n\n%s", senderName, senderEmail, inquiryType, message))
	n.Send([]string{senderEmail},
		"Thank you for contacting StackSkills",
		fmt.Sprintf("Hi %s,\n\nWe've received your message and will get back to you within 24 hours.\n\nThe StackSkills Team", senderName))
}

// RegistrationReceived notifies the admin inbox about a new enrollment form.
func (n *Notifier) RegistrationReceived(adminEmail, kind, name, email string) {
	if n == nil {
		return
	}
	n.Send([]string{adminEmail},
		fmt.Sprintf("New %s registration: %s", kind, name),
		fmt.Sprintf("%s registration submitted.\nName: %s\nEmail: %s", kind, name, email))
}
