package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOTPTemplate(t *testing.T) {
	body, err := RenderTemplate(TemplateOTP, map[string]interface{}{"emailOtp": "123456"})
	require.NoError(t, err)
	assert.Contains(t, body, "123456")
	assert.Contains(t, body, "15 minutes")
}

func TestRenderOnboardingTemplate(t *testing.T) {
	body, err := RenderTemplate(TemplateOnboarding, map[string]interface{}{})
	require.NoError(t, err)
	assert.Contains(t, body, "Welcome to Pinpoint!")
}

func TestRenderPasswordResetTemplate(t *testing.T) {
	body, err := RenderTemplate(TemplatePasswordReset, map[string]interface{}{"name": "Ada"})
	require.NoError(t, err)
	assert.Contains(t, body, "Ada")
	assert.Contains(t, body, "Password Reset")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := RenderTemplate("nonexistent", nil)
	assert.Error(t, err)
}

func TestTemplatesEscapePayload(t *testing.T) {
	body, err := RenderTemplate(TemplatePasswordReset, map[string]interface{}{
		"name": "<script>alert(1)</script>",
	})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}
