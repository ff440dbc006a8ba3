package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"net/mail"
)

const saltSize = 16

// HashPassword derives a salted password digest: SHA-256 over
// password-bytes || salt-bytes with a fresh random 16-byte salt.
func HashPassword(password string) (hash, salt []byte, err error) {
	salt = make([]byte, saltSize)
	if _, err = rand.Read(salt); err != nil {
		return nil, nil, err
	}
	return hashWithSalt([]byte(password), salt), salt, nil
}

// CheckPassword recomputes the digest with the stored salt and compares it in
// constant time.
func CheckPassword(password string, hash, salt []byte) bool {
	calculated := hashWithSalt([]byte(password), salt)
	return subtle.ConstantTimeCompare(hash, calculated) == 1
}

func hashWithSalt(password, salt []byte) []byte {
	combined := make([]byte, 0, len(password)+len(salt))
	combined = append(combined, password...)
	combined = append(combined, salt...)
	sum := sha256.Sum256(combined)
	return sum[:]
}

// IsEmail returns true if the string is a valid email address.
func IsEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
