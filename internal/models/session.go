package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Session is the authenticated identity held client-side after login.
// Either all four fields are set (authenticated) or none are (anonymous).
type Session struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Valid reports whether a bearer token is present. It does not check
// expiry; an expired token is detected by the server rejecting a call.
func (s Session) Valid() bool {
	return s.Token != ""
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
