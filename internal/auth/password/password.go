// Package password wraps bcrypt hashing for admin credentials.
package password

import "golang.org/x/crypto/bcrypt"

const hashCost = 12

// Hash returns the bcrypt hash of a plaintext password.
func Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare reports whether plain matches the stored bcrypt hash.
func Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
