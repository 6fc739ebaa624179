// Package mailer implements the domain.Notifier port: HTML messages for
// email verification and password reset, delivered over SMTP. A log-only
// variant backs local development where no SMTP relay is configured.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/FirstOnDie/authforge/config"
)

type SMTPMailer struct {
	addr    string
	auth    smtp.Auth
	from    string
	appName string
	appURL  string
	log     *slog.Logger
}

func NewSMTPMailer(cfg *config.Config, log *slog.Logger) *SMTPMailer {
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}

	return &SMTPMailer{
		addr:    cfg.SMTPHost + ":" + cfg.SMTPPort,
		auth:    auth,
		from:    cfg.FromEmail,
		appName: cfg.AppName,
		appURL:  cfg.AppURL,
		log:     log,
	}
}

func (m *SMTPMailer) SendVerificationMessage(_ context.Context, email, token string) error {
	verifyURL := m.appURL + "?verify=" + token
	subject := m.appName + " — Verify Your Email"
	body := buildHTMLBody(m.appName,
		"Verify Your Email",
		"Thank you for registering! Click the button below to verify your email address.",
		verifyURL,
		"Verify Email")

	return m.send(email, subject, body)
}

func (m *SMTPMailer) SendPasswordResetMessage(_ context.Context, email, token string) error {
	resetURL := m.appURL + "?reset=" + token
	subject := m.appName + " — Password Reset"
	body := buildHTMLBody(m.appName,
		"Reset Your Password",
		"We received a request to reset your password. Click the button below to proceed.",
		resetURL,
		"Reset Password")

	return m.send(email, subject, body)
}

func (m *SMTPMailer) send(to, subject, html string) error {
	var msg strings.Builder
	msg.WriteString("From: " + m.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(html)

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	m.log.Info("email sent", "to", to)
	return nil
}

func buildHTMLBody(appName, title, message, actionURL, buttonText string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="margin:0;padding:0;background:#0a0a1a;font-family:'Inter',sans-serif;">
<div style="max-width:500px;margin:40px auto;background:#14142a;border-radius:16px;border:1px solid rgba(139,92,246,0.15);padding:40px;">
	<h1 style="color:#8B5CF6;font-size:28px;margin:0 0 8px;">🔐 %s</h1>
	<h2 style="color:#F1F5F9;font-size:20px;margin:0 0 20px;">%s</h2>
	<p style="color:#94A3B8;font-size:15px;line-height:1.6;margin:0 0 30px;">%s</p>
	<a href="%s" style="display:inline-block;background:linear-gradient(135deg,#8B5CF6,#6D28D9);color:#fff;text-decoration:none;padding:14px 32px;border-radius:10px;font-weight:700;font-size:15px;">%s</a>
	<p style="color:#64748B;font-size:12px;margin-top:30px;">If you didn't request this, please ignore this email.</p>
</div>
</body>
</html>`, appName, title, message, actionURL, buttonText)
}

// LogMailer writes the delivery links to the log instead of sending mail.
type LogMailer struct {
	appURL string
	log    *slog.Logger
}

func NewLogMailer(cfg *config.Config, log *slog.Logger) *LogMailer {
	return &LogMailer{appURL: cfg.AppURL, log: log}
}

func (m *LogMailer) SendVerificationMessage(_ context.Context, email, token string) error {
	m.log.Info("verification link", "to", email, "url", m.appURL+"?verify="+token)
	return nil
}

func (m *LogMailer) SendPasswordResetMessage(_ context.Context, email, token string) error {
	m.log.Info("password reset link", "to", email, "url", m.appURL+"?reset="+token)
	return nil
}
