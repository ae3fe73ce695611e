package models

// Token pairs a registered Moodle webservice token with the device it
// notifies. An empty DeviceToken routes the account through the
// notification-free resync path.
type Token struct {
	Token       string `json:"token" bson:"_id" binding:"required"`
	DeviceToken string `json:"device_token,omitempty" bson:"device_token,omitempty"`
}

func NewToken(token, deviceToken string) *Token {
	return &Token{Token: token, DeviceToken: deviceToken}
}
