package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPSender(t *testing.T) {
	t.Run("host is required", func(t *testing.T) {
		_, err := NewSMTPSender(SMTPConfig{Port: 587})
		assert.Error(t, err)
	})

	t.Run("from defaults to username", func(t *testing.T) {
		sender, err := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "noreply@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "noreply@example.com", sender.cfg.From)
		assert.Len(t, sender.clientOptions(), 5)
	})

	t.Run("no auth without username", func(t *testing.T) {
		sender, err := NewSMTPSender(SMTPConfig{Host: "localhost", Port: 25, From: "events@example.com"})
		require.NoError(t, err)
		assert.Len(t, sender.clientOptions(), 2)
	})
}

func TestRenderRegistration(t *testing.T) {
	html, err := RenderRegistration(RegistrationData{
		MemberName:  "Asha",
		TeamName:    "<Pixel & Co>",
		CollegeName: "City College",
		Role:        "Team Member 3",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Dear <strong>Asha</strong>")
	assert.Contains(t, html, "Team Member 3")
	assert.Contains(t, html, "City College")
	assert.Contains(t, html, "&lt;Pixel &amp; Co&gt;")
	assert.NotContains(t, html, "<Pixel & Co>")
}

func TestRenderRegistrationWithoutCollege(t *testing.T) {
	html, err := RenderRegistration(RegistrationData{MemberName: "Ben", TeamName: "Solo", Role: "Team Leader"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<strong>College:</strong>")
}
