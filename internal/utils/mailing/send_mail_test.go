package mailing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMailerEnabled(t *testing.T) {
	assert.False(t, NewMailer(MailConfig{}).Enabled())
	assert.True(t, NewMailer(MailConfig{SMTPHost: "smtp.example.com", SMTPPort: "587"}).Enabled())
}

func TestSendMailRejectsInvalidPort(t *testing.T) {
	m := NewMailer(MailConfig{SMTPHost: "smtp.example.com", SMTPPort: "not-a-port", SMTPEmail: "noreply@example.com"})
	assert.Error(t, m.SendMail("friend@example.com", "subject", "<p>body</p>"))
}
