package entity

import (
	"time"
)

// User is the sole aggregate in this service.
// Password always holds a bcrypt hash once the record leaves the
// application layer; plaintext never reaches the repository.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
