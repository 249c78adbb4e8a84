// utils/mailer.go
package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// sendEmail delivers a message through the configured SMTP server. When
// SMTP_HOST is unset the mail is skipped silently so local setups work
// without a mail server.
func sendEmail(to, subject, body string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	if smtpHost == "" {
		log.Printf("SMTP not configured, skipping email to %s (%s)", to, subject)
		return nil
	}

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		smtpPort = 587
	}
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASSWORD")

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = smtpUser
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	return d.DialAndSend(m)
}

// SendRequestConfirmation notifies a client that their service request was
// received. Errors are logged, never surfaced to the caller.
func SendRequestConfirmation(clientEmail, clientName, serviceType, city string) {
	body := fmt.Sprintf(
		"<p>Bonjour %s,</p>"+
			"<p>Votre demande de service (%s à %s) a bien été enregistrée. "+
			"Un artisan vous contactera dans les plus brefs délais.</p>"+
			"<p>L'équipe Hrayfi</p>",
		clientName, serviceType, city)

	if err := sendEmail(clientEmail, "Votre demande a été enregistrée", body); err != nil {
		log.Printf("Error sending request confirmation to %s: %v", clientEmail, err)
	}
}

// SendArtisanWelcome greets a newly registered artisan.
func SendArtisanWelcome(email, firstName string) {
	body := fmt.Sprintf(
		"<p>Bonjour %s,</p>"+
			"<p>Bienvenue sur Hrayfi ! Votre profil artisan est maintenant en ligne "+
			"et visible par les clients.</p>"+
			"<p>L'équipe Hrayfi</p>",
		firstName)

	if err := sendEmail(email, "Bienvenue sur Hrayfi", body); err != nil {
		log.Printf("Error sending welcome email to %s: %v", email, err)
	}
}
