package models

import "time"

// User represents a platform user (the booking customer).
type User struct {
	ID                 string    `bson:"id" json:"id"`
	Name               string    `bson:"name" json:"name"`
	Email              string    `bson:"email" json:"email"`
	PasswordHash       string    `bson:"password_hash" json:"-"`
	PhoneNumber        string    `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	ProfileAddress     string    `bson:"profile_address,omitempty" json:"profile_address,omitempty"`
	AlternativeAddress string    `bson:"alternative_address,omitempty" json:"alternative_address,omitempty"`
	DarkMode           bool      `bson:"dark_mode" json:"dark_mode"`
	TokenHash          string    `bson:"token_hash,omitempty" json:"-"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time `bson:"updated_at" json:"updated_at"`
}
