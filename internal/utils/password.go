package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Administrator credentials are verified at most once per sign-in, so the
// default cost is enough; raising it only slows the login endpoint.
const credentialHashCost = bcrypt.DefaultCost

// HashPassword derives the bcrypt digest stored for an administrator
// credential. Google-provisioned accounts get a random secret hashed the
// same way so every row carries a digest.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), credentialHashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash credential: %w", err)
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether a sign-in attempt matches the stored
// digest.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
