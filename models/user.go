package models

// User is an account document. Password holds the bcrypt hash and is never
// serialized; the issued tokens live in their own table.
type User struct {
	ID       string `json:"_id"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

// Credentials is the body of signup and login requests.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
