// internal/models/user.go
package models

import "time"

// User is an account row. HashedPassword never leaves the auth package.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	EmailVerified  time.Time `json:"emailVerified,omitempty"`
	Image          string    `json:"image,omitempty"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
}
