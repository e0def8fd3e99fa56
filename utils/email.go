package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendEmail sends an HTML email through the configured SMTP server.
// When SMTP_HOST is unset the send is skipped so local development does
// not require a mail server.
func SendEmail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		LogDebug("SMTP not configured, skipping email to %s", to)
		return nil
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	username := os.Getenv("SMTP_USER")
	password := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = username
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

// SendWelcomeEmail sends the post-registration greeting
func SendWelcomeEmail(to, username string) error {
	body := fmt.Sprintf(`
		<h2>Welcome to StyleNest, %s!</h2>
		<p>Your account has been created. Check in daily to earn spins and win vouchers.</p>
	`, username)
	return SendEmail(to, "Welcome to StyleNest", body)
}
