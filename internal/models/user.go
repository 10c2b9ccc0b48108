package models

// User is a stored credential record. The password is kept in plaintext to
// stay wire- and file-compatible with the original deployment; this is
// insecure by design and documented as such.
type User struct {
	Email    string `json:"email" bson:"email"`
	Password string `json:"password" bson:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  string `json:"user"`
}
