package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Roles assignable to a user account.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a user account in the authentication system.
// One-time codes live directly on the document, scoped by purpose:
// verification codes gate the unverified->verified transition, reset
// codes gate password replacement. Both are cleared once consumed.
type User struct {
	ID                        bson.ObjectID `bson:"_id,omitempty"         json:"id"`
	Name                      string        `bson:"name"                  json:"name"`
	Age                       int           `bson:"age"                   json:"age"`
	Email                     string        `bson:"email"                 json:"email"`
	Gender                    string        `bson:"gender"                json:"gender"`
	PasswordHash              string        `bson:"password_hash"         json:"-"`
	Role                      string        `bson:"role"                  json:"role"`
	Verified                  bool          `bson:"verified"              json:"isVerified"`
	VerificationCode          string        `bson:"verification_code,omitempty"            json:"-"`
	VerificationCodeExpiresAt time.Time     `bson:"verification_code_expires_at,omitempty" json:"-"`
	ResetCode                 string        `bson:"reset_code,omitempty"                   json:"-"`
	ResetCodeExpiresAt        time.Time     `bson:"reset_code_expires_at,omitempty"        json:"-"`
	CreatedAt                 time.Time     `bson:"created_at"            json:"createdAt"`
	UpdatedAt                 time.Time     `bson:"updated_at"            json:"updatedAt"`
}
