package notification

// NoticeType represents a kind of notification (e.g. "email_verification")
type NoticeType string

const (
	EmailVerifyNotice NoticeType = "email_verification"
	ResetOtpNotice    NoticeType = "password_reset_otp"
)

// NoticeTemplate holds the subject and text template for a notice.
// Templates are rendered with text/template against NotificationData.Data.
type NoticeTemplate struct {
	Subject string
	Text    string
}

// NotificationData carries the recipient and the template values
type NotificationData struct {
	To   string            // Recipient identifier (e.g., email address)
	Data map[string]string // Template values
}

// Notifier sends a rendered notice over one delivery channel
type Notifier interface {
	Send(noticeType NoticeType, notification NotificationData, template NoticeTemplate) error
}
