package models

// Notification is a single outbound push message for one device. It is
// never persisted.
type Notification struct {
	DeviceToken string `json:"device_token"`
	Title       string `json:"title"`
	Body        string `json:"body"`
}

func NewNotification(deviceToken, title, body string) *Notification {
	return &Notification{DeviceToken: deviceToken, Title: title, Body: body}
}
