package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshwebstep/screeningstar-admin-api/pkg/config"
)

func testMailer() *SMTPMailer {
	return NewSMTP(config.MailConfig{From: "noreply@example.com"}, config.AppInfoConfig{
		Name:      "Screening Star",
		PortalURL: "https://portal.example.com",
	})
}

func TestRenderTwoFactorOTP(t *testing.T) {
	m := testMailer()

	subject, body, err := m.render(TemplateTwoFactorOTP, map[string]string{
		"Name":          "Jordan",
		"OTP":           "123456",
		"ExpiryMinutes": "10",
	})
	require.NoError(t, err)
	assert.Contains(t, subject, "Login Verification Code")
	assert.Contains(t, body, "Hello Jordan")
	assert.Contains(t, body, "<b>123456</b>")
	assert.Contains(t, body, "10 minutes")
}

func TestRenderForgotPasswordUsesProvidedLink(t *testing.T) {
	m := testMailer()

	link := "https://portal.example.com/reset-password?token=abc.def.ghi"
	_, body, err := m.render(TemplateForgotPassword, map[string]string{
		"Name":          "Jordan",
		"Link":          link,
		"ExpiryMinutes": "15",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Hello Jordan")
	assert.Contains(t, body, `href="`+link+`"`)
	assert.Contains(t, body, "15 minutes")
}

func TestRenderAdminWelcome(t *testing.T) {
	m := testMailer()

	_, body, err := m.render(TemplateAdminWelcome, map[string]string{
		"Name":     "Jordan",
		"Username": "jordan.q",
		"Password": "initial-pass",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Hello Jordan")
	assert.Contains(t, body, "<b>jordan.q</b>")
	assert.Contains(t, body, "<b>initial-pass</b>")
	assert.Contains(t, body, "https://portal.example.com")
}

func TestRenderUnknownTemplate(t *testing.T) {
	m := testMailer()

	_, _, err := m.render("no_such_template", nil)
	require.Error(t, err)
}
