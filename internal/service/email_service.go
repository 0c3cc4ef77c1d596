package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/techgear-vn/techgear-api/internal/config"
	"github.com/techgear-vn/techgear-api/internal/constants"
	"github.com/techgear-vn/techgear-api/internal/models"
)

// EmailService sends transactional mail over SMTP.
type EmailService struct {
	cfg  *config.EmailConfig
	site *config.SiteConfig
}

// NewEmailService creates the email service.
func NewEmailService(cfg *config.EmailConfig, site *config.SiteConfig) *EmailService {
	return &EmailService{cfg: cfg, site: site}
}

// OrderStatusEmailInput is the status notification content.
type OrderStatusEmailInput struct {
	OrderNo string
	Status  string
	Amount  models.Money
}

// SendOrderStatusEmail notifies the buyer about a status change.
func (s *EmailService) SendOrderStatusEmail(toEmail string, input OrderStatusEmailInput) error {
	subject, body := buildOrderStatusContent(input, s.siteName())
	return s.sendTextEmail(toEmail, subject, body)
}

// SendVerificationEmail sends the account verification link.
func (s *EmailService) SendVerificationEmail(toEmail, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", s.siteBaseURL(), token)
	subject := fmt.Sprintf("Verify your %s account", s.siteName())
	body := fmt.Sprintf("Welcome to %s.\n\nConfirm your email address by opening this link:\n%s\n\nThe link expires in 24 hours.", s.siteName(), link)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendResetPasswordEmail sends the password reset link.
func (s *EmailService) SendResetPasswordEmail(toEmail, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", s.siteBaseURL(), token)
	subject := fmt.Sprintf("Reset your %s password", s.siteName())
	body := fmt.Sprintf("A password reset was requested for this address.\n\nSet a new password here:\n%s\n\nIf you did not request this, ignore this email.", link)
	return s.sendTextEmail(toEmail, subject, body)
}

func (s *EmailService) siteName() string {
	if s.site != nil && strings.TrimSpace(s.site.Name) != "" {
		return strings.TrimSpace(s.site.Name)
	}
	return "TechGear"
}

func (s *EmailService) siteBaseURL() string {
	if s.site != nil && strings.TrimSpace(s.site.BaseURL) != "" {
		return strings.TrimRight(strings.TrimSpace(s.site.BaseURL), "/")
	}
	return "http://localhost:3000"
}

func buildOrderStatusContent(input OrderStatusEmailInput, siteName string) (string, string) {
	statusLabel := orderStatusLabel(input.Status)
	subject := fmt.Sprintf("%s order %s: %s", siteName, input.OrderNo, statusLabel)
	var body string
	switch strings.ToUpper(strings.TrimSpace(input.Status)) {
	case constants.OrderStatusShipping:
		body = fmt.Sprintf("Your order %s is on its way.\n\nOrder total: %s VND", input.OrderNo, input.Amount.String())
	case constants.OrderStatusDelivered:
		body = fmt.Sprintf("Your order %s has been delivered.\n\nOrder total: %s VND\n\nThank you for shopping with %s.", input.OrderNo, input.Amount.String(), siteName)
	case constants.OrderStatusCancelled:
		body = fmt.Sprintf("Your order %s has been cancelled.\n\nOrder total: %s VND", input.OrderNo, input.Amount.String())
	default:
		body = fmt.Sprintf("Your order %s is now %s.\n\nOrder total: %s VND", input.OrderNo, strings.ToLower(statusLabel), input.Amount.String())
	}
	return subject, body
}

func orderStatusLabel(status string) string {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case constants.OrderStatusPending:
		return "Pending"
	case constants.OrderStatusProcessing:
		return "Processing"
	case constants.OrderStatusShipping:
		return "Shipping"
	case constants.OrderStatusDelivered:
		return "Delivered"
	case constants.OrderStatusCancelled:
		return "Cancelled"
	case constants.OrderStatusSuccess:
		return "Completed"
	default:
		return status
	}
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseSSL {
		return normalizeEmailSendError(sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
	}
	if s.cfg.UseTLS {
		return normalizeEmailSendError(sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
	}
	return normalizeEmailSendError(sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}
	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	if isEmailRecipientRejected(err) {
		return ErrEmailRecipientRejected
	}
	return err
}

func isEmailRecipientRejected(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	if message == "" {
		return false
	}
	directKeywords := []string{
		"no such recipient",
		"no such user",
		"recipient not found",
		"recipient address rejected",
		"invalid recipient",
		"user unknown",
		"unknown user",
		"unknown mailbox",
		"mailbox unavailable",
	}
	for _, keyword := range directKeywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	if strings.Contains(message, "550") {
		hints := []string{"recipient", "user", "mailbox", "address", "rcpt"}
		for _, hint := range hints {
			if strings.Contains(message, hint) {
				return true
			}
		}
	}
	return false
}
