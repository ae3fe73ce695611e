package models

import "fmt"

// User is the Moodle site profile for one account. It is fully overwritten
// on update, never merged.
type User struct {
	UserID   int64  `json:"userid" bson:"userid"`
	Username string `json:"username" bson:"username"`
	FullName string `json:"fullname" bson:"fullname"`
}

func (u User) Equal(other User) bool {
	return u == other
}

// BodyMessage renders the profile for a push notification body.
func (u User) BodyMessage() string {
	return fmt.Sprintf("Username: %s\nFull name: %s", u.Username, u.FullName)
}
