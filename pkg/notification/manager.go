package notification

import "fmt"

// Manager routes notices to a registered notifier with a registered
// template. Delivery is a collaborator concern: flows that use the
// manager treat send failures as best effort.
type Manager struct {
	notifier  Notifier
	templates map[NoticeType]NoticeTemplate
}

// NewManager creates a manager with the default notice templates
func NewManager(notifier Notifier) *Manager {
	return &Manager{
		notifier: notifier,
		templates: map[NoticeType]NoticeTemplate{
			EmailVerifyNotice: {
				Subject: "Verify your email address",
				Text:    "Hello {{.DisplayName}},\n\nPlease verify your email within {{.ExpiryMinutes}} minutes: {{.VerificationLink}}\n",
			},
			ResetOtpNotice: {
				Subject: "Your password reset code",
				Text:    "Hello {{.DisplayName}},\n\nYour one-time code is {{.Otp}}. It expires in {{.ExpiryMinutes}} minutes.\n",
			},
		},
	}
}

// RegisterTemplate adds or replaces the template for a notice type
func (m *Manager) RegisterTemplate(noticeType NoticeType, template NoticeTemplate) {
	m.templates[noticeType] = template
}

// Send renders the registered template and delivers the notice
func (m *Manager) Send(noticeType NoticeType, notification NotificationData) error {
	if m.notifier == nil {
		return fmt.Errorf("no notifier registered")
	}

	template, exists := m.templates[noticeType]
	if !exists {
		return fmt.Errorf("no template registered for notice type: %s", noticeType)
	}

	return m.notifier.Send(noticeType, notification, template)
}
