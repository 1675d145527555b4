package models

import "time"

// Admin is a document in the admins collection, keyed by the auth account
// id. Its mere presence is the authorization check for dashboard access.
type Admin struct {
	ID        string    `bson:"_id" json:"id"`
	Email     string    `bson:"email" json:"email"`
	Role      string    `bson:"role" json:"role"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
