package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerSend(t *testing.T) {
	t.Run("DeliversRegisteredNotice", func(t *testing.T) {
		mock := &MockNotifier{}
		manager := NewManager(mock)

		err := manager.Send(ResetOtpNotice, NotificationData{
			To:   "a@x.com",
			Data: map[string]string{"Otp": "123456", "ExpiryMinutes": "15"},
		})
		require.NoError(t, err)
		require.Len(t, mock.SentNotifications, 1)
		assert.Equal(t, "a@x.com", mock.SentNotifications[0].To)
	})

	t.Run("UnknownNoticeType", func(t *testing.T) {
		manager := NewManager(&MockNotifier{})
		err := manager.Send(NoticeType("unknown"), NotificationData{To: "a@x.com"})
		assert.Error(t, err)
	})

	t.Run("NoNotifier", func(t *testing.T) {
		manager := NewManager(nil)
		err := manager.Send(ResetOtpNotice, NotificationData{To: "a@x.com"})
		assert.Error(t, err)
	})
}
