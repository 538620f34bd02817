package service

import (
	"testing"

	"pocketledger/config"

	"github.com/stretchr/testify/assert"
)

func newTestEmailService() *EmailService {
	return NewEmailService(&config.EmailConfig{})
}

func TestGenerateWelcomeEmailBody(t *testing.T) {
	s := newTestEmailService()
	body := s.generateWelcomeEmailBody("ana<script>@example.com")
	assert.Contains(t, body, "Pocket Ledger")
	assert.Contains(t, body, "ana&lt;script&gt;@example.com")
	assert.NotContains(t, body, "<script>")
}

func TestEmailDisabled(t *testing.T) {
	s := newTestEmailService()
	assert.False(t, s.Enabled())
	assert.ErrorIs(t, s.SendWelcomeEmail("a@b.com"), ErrEmailDisabled)
	assert.ErrorIs(t, s.SendTestEmail("a@b.com"), ErrEmailDisabled)

	var nilService *EmailService
	assert.False(t, nilService.Enabled())

	assert.True(t, NewEmailService(&config.EmailConfig{Enabled: true}).Enabled())
}
