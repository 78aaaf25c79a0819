package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Admin is the single operator account configured through the environment.
type Admin struct {
	Email        string
	PasswordHash string
}

// Authenticate reports whether email and password match the account. An
// account without a hash never authenticates.
func (a Admin) Authenticate(email, password string) bool {
	if a.PasswordHash == "" || !strings.EqualFold(strings.TrimSpace(email), a.Email) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

func (a Admin) Identity() Identity {
	return Identity{Email: a.Email, Role: RoleAdmin}
}

// HashPassword produces a value suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
