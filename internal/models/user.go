package models

import (
	"time"

	"github.com/google/uuid"
)

// User owns subscriptions and recommendation interactions.
// PasswordHash holds a bcrypt hash, never the plain password.
type User struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
