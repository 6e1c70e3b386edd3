package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/vanshwebstep/screeningstar-admin-api/pkg/config"
)

// Mailer dispatches templated portal mail. Services depend on this interface;
// tests substitute a recording fake.
type Mailer interface {
	Send(ctx context.Context, template string, data map[string]string, recipients []string) error
}

// Template names understood by the registry.
const (
	TemplateTwoFactorOTP   = "two_factor_otp"
	TemplateForgotPassword = "forgot_password"
	TemplateAdminWelcome   = "admin_welcome"
)

// SMTPMailer sends template-filled mail over SMTP with STARTTLS (port 587).
type SMTPMailer struct {
	cfg config.MailConfig
	app config.AppInfoConfig
}

// NewSMTP constructs an SMTP mailer.
func NewSMTP(cfg config.MailConfig, app config.AppInfoConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, app: app}
}

// Send renders the named template with data and dispatches it.
func (m *SMTPMailer) Send(_ context.Context, template string, data map[string]string, recipients []string) error {
	if !m.cfg.Enabled {
		return nil
	}
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients")
	}

	subject, body, err := m.render(template, data)
	if err != nil {
		return err
	}

	msg := []byte(
		fmt.Sprintf("From: %s <%s>\r\n", m.app.Name, m.cfg.From) +
			fmt.Sprintf("To: %s\r\n", strings.Join(recipients, ", ")) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, m.cfg.From, recipients, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// render fills the named template. Data keys match what the services pass:
// "Name", "OTP", "ExpiryMinutes", "Link", "Username", "Password".
func (m *SMTPMailer) render(template string, data map[string]string) (subject, body string, err error) {
	switch template {
	case TemplateTwoFactorOTP:
		subject = fmt.Sprintf("%s - Login Verification Code", m.app.Name)
		body = wrap(m.app.Name, fmt.Sprintf(
			"<p>Hello %s,</p><p>Your one-time verification code is <b>%s</b>. It expires in %s minutes.</p>",
			data["Name"], data["OTP"], data["ExpiryMinutes"]))
	case TemplateForgotPassword:
		subject = fmt.Sprintf("%s - Password Reset", m.app.Name)
		body = wrap(m.app.Name, fmt.Sprintf(
			"<p>Hello %s,</p><p>Use the link below to reset your password. The link expires in %s minutes.</p><p><a href=\"%s\">Reset password</a></p>",
			data["Name"], data["ExpiryMinutes"], data["Link"]))
	case TemplateAdminWelcome:
		subject = fmt.Sprintf("Welcome to %s", m.app.Name)
		body = wrap(m.app.Name, fmt.Sprintf(
			"<p>Hello %s,</p><p>Your admin account has been created. Sign in at <a href=\"%s\">%s</a> with username <b>%s</b> and temporary password <b>%s</b>.</p>",
			data["Name"], m.app.PortalURL, m.app.PortalURL, data["Username"], data["Password"]))
	default:
		return "", "", fmt.Errorf("unknown mail template %q", template)
	}
	return subject, body, nil
}

func wrap(appName, content string) string {
	return fmt.Sprintf(
		`<html><body style="font-family: Arial, sans-serif;">`+
			`<div style="max-width:600px;margin:auto;">`+
			`<div style="background:#1a2b4c;color:#fff;padding:16px;font-size:20px;">%s</div>`+
			`<div style="padding:16px;">%s</div>`+
			`<div style="padding:12px;color:#888;font-size:12px;">This is an automated message, please do not reply.</div>`+
			`</div></body></html>`,
		appName, content)
}
