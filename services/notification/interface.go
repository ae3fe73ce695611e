package notification

import (
	"context"

	"github.com/Azarenkov/aitu-web-app/models"
)

// EventProducer delivers a single push notification to one device.
// Delivery is fire-and-forget: failures are logged, never returned, and
// never retried here.
type EventProducer interface {
	Produce(ctx context.Context, notification *models.Notification)
}
