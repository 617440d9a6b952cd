package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// AccountStatus is the lifecycle state of a user account.
type AccountStatus string

const (
	StatusCreated   AccountStatus = "CREATED"
	StatusActive    AccountStatus = "ACTIVE"
	StatusInactive  AccountStatus = "INACTIVE"
	StatusSuspended AccountStatus = "SUSPENDED"
	StatusDeleted   AccountStatus = "DELETED"
)

// User represents a registered account. Password holds the bcrypt hash
// once the user has been persisted, never the plaintext.
type User struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	FirstName     string        `bson:"first_name"`
	LastName      string        `bson:"last_name,omitempty"`
	Email         string        `bson:"email"`
	Password      string        `bson:"password,omitempty"`
	AccountStatus AccountStatus `bson:"account_status"`
	CreatedAt     time.Time     `bson:"created_at"`
	ModifiedAt    time.Time     `bson:"modified_at"`
}

// UserPatch carries the fields an update may change. Empty fields are
// left untouched; anything outside this set is ignored.
type UserPatch struct {
	FirstName     string
	LastName      string
	Email         string
	Password      string
	AccountStatus AccountStatus
}
