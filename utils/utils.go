package utils

import (
	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = 14

// HashPassword генерирует bcrypt-хеш для SITE_PASSWORD_HASH / ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
