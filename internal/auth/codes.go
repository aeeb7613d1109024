package auth

import "golang.org/x/crypto/bcrypt"

// HashCode hashes an admin enrollment code for storage.
func HashCode(code string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(code), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CompareCode verifies a presented code against its stored hash.
func CompareCode(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
