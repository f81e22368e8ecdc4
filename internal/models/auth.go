package models

// AuthResult is what the session issuer returns after a successful
// registration or login: the signed token plus the public identity.
type AuthResult struct {
	Token    string
	UserID   int64
	Username string
	Role     string
}
