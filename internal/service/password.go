package service

import "golang.org/x/crypto/bcrypt"

// dummyHash keeps the login timing equal for unknown usernames.
var dummyHash, _ = HashPassword("unused-password-for-timing")

// HashPassword is the single place account passwords are hashed, for
// registration and profile updates alike.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
