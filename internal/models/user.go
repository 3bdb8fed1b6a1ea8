// ABOUTME: User model for registered accounts.
// ABOUTME: Holds identity fields and the stored password hash.
package models

// User is a registered account. Users are created on registration and
// never updated or deleted.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// NewUser creates a User that has not been stored yet.
func NewUser(name, email, passwordHash string) *User {
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
}
