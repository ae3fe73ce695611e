package notification

import (
	"context"

	"github.com/Azarenkov/aitu-web-app/models"
	"github.com/Azarenkov/aitu-web-app/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCMProducer sends notifications through Firebase Cloud Messaging.
type FCMProducer struct{}

func NewFCMProducer() *FCMProducer {
	return &FCMProducer{}
}

// Produce sends one push message. Send failures are logged and dropped; the
// next polling pass re-detects the change if the snapshot was not persisted.
func (p *FCMProducer) Produce(ctx context.Context, notification *models.Notification) {
	logger := utils.GetLogger()

	msg := &messaging.Message{
		Token: notification.DeviceToken,
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound: "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	response, err := utils.FCMClient.Send(ctx, msg)
	if err != nil {
		logger.Error("failed to send FCM message",
			zap.String("title", notification.Title),
			zap.Error(err))
		return
	}

	logger.Debug("sent FCM message",
		zap.String("title", notification.Title),
		zap.String("response", response))
}
