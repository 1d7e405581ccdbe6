package password

import "golang.org/x/crypto/bcrypt"

// Hash generates a salted bcrypt hash of the plaintext. The salt is random
// per call and embedded in the returned string.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether the plaintext matches the stored hash. Any failure,
// including a malformed hash, is just a mismatch.
func Verify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
