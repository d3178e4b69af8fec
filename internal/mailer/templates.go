package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

const (
	TemplateOTP           = "otp"
	TemplateOnboarding    = "onboarding"
	TemplatePasswordReset = "password_reset"
)

const otpTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>OTP Code</title>
    <style>
        body { font-family: Arial, sans-serif; }
        .header { background-color: blue; padding: 20px; text-align: center; }
        .content { padding: 20px; }
        .footer { background-color: blue; padding: 10px; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <h1>OTP Code</h1>
    </div>
    <div class="content">
        <p>Your OTP code is: <strong>{{.emailOtp}}</strong></p>
        <p>This OTP expires in <strong>15 minutes</strong>.</p>
        <p>If you did not request this OTP, please ignore this email.</p>
        <p>Best regards,</p>
        <p>Pinpoint Team.</p>
    </div>
    <div class="footer">
        <p>Pinpoint</p>
    </div>
</body>
</html>`

const onboardingTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>Welcome</title>
    <style>
        body { font-family: Arial, sans-serif; }
        .header { background-color: blue; padding: 20px; text-align: center; }
        .content { padding: 20px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Welcome to Pinpoint!</h1>
    </div>
    <div class="content">
        <p>We are thrilled to have you on board.</p>
        <p>At Pinpoint, we strive to provide the best service possible. We hope you enjoy your experience with us.</p>
        <p>If you have any questions or need assistance, feel free to reach out to us.</p>
        <p>Best regards,</p>
        <p>Pinpoint Team.</p>
    </div>
</body>
</html>`

const passwordResetTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>Password Reset</title>
    <style>
        body { font-family: Arial, sans-serif; }
        .header { background-color: blue; padding: 20px; text-align: center; }
        .content { padding: 20px; }
        .footer { background-color: blue; padding: 10px; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Password Reset</h1>
    </div>
    <div class="content">
        <p>Dear {{.name}},</p>
        <p>Your password was reset successfully!</p>
        <p>If you didn't make this action, feel free to reach out to us.</p>
        <p>Best regards,</p>
        <p>Pinpoint Team.</p>
    </div>
    <div class="footer">
        <p>Pinpoint</p>
    </div>
</body>
</html>`

var templates = template.Must(template.New(TemplateOTP).Parse(otpTemplate))

func init() {
	template.Must(templates.New(TemplateOnboarding).Parse(onboardingTemplate))
	template.Must(templates.New(TemplatePasswordReset).Parse(passwordResetTemplate))
}

// RenderTemplate renders a registered mail template with the given payload.
func RenderTemplate(templateID string, data map[string]interface{}) (string, error) {
	t := templates.Lookup(templateID)
	if t == nil {
		return "", fmt.Errorf("unknown mail template: %s", templateID)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", templateID, err)
	}

	return buf.String(), nil
}
