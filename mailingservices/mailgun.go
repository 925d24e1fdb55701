package mailingservices

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mailgun/mailgun-go/v4"
)

type Mailgun struct {
	Client *mailgun.MailgunImpl
	From   string
}

func (m *Mailgun) Init() {
	domain := os.Getenv("MG_DOMAIN")
	apiKey := os.Getenv("MG_PRIVATE_API_KEY")
	m.Client = mailgun.NewMailgun(domain, apiKey)
	m.From = os.Getenv("EMAIL_FROM")
	log.Println("Mailgun client initialized")
}

func (m *Mailgun) send(to, subject, body string) error {
	message := m.Client.NewMessage(m.From, subject, body, to)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	_, _, err := m.Client.Send(ctx, message)
	return err
}

func (m *Mailgun) SendPasswordResetEmail(to, resetLink string) error {
	body := fmt.Sprintf("We received a request to reset your TalentBridge password.\n\n"+
		"Follow this link to choose a new one:\n%s\n\n"+
		"If you didn't ask for this, you can ignore this email.", resetLink)
	return m.send(to, "Reset your TalentBridge password", body)
}

func (m *Mailgun) SendInvitationEmail(to, companyName, role, customMessage string) error {
	body := fmt.Sprintf("%s has invited you to join their team on TalentBridge", companyName)
	if role != "" {
		body += fmt.Sprintf(" as %s", role)
	}
	body += ".\n"
	if customMessage != "" {
		body += "\n" + customMessage + "\n"
	}
	body += "\nSign up at https://talentbridge.dev to get started."
	return m.send(to, fmt.Sprintf("%s invited you to TalentBridge", companyName), body)
}
