package domain

import "time"

// Role determines what a user is allowed to do with catalog records.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEditor || r == RoleViewer
}

// CanMutate reports whether a principal with this role may add, edit or
// delete catalog records. Read access requires only an authenticated
// principal, regardless of role.
func (r Role) CanMutate() bool {
	return r == RoleAdmin || r == RoleEditor
}

// User models an account in the users collection. PasswordHash is a bcrypt
// hash; plaintext passwords are never stored.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	ID       string
	Username string
	Role     Role
}

// Session is the server-side record of an established login, keyed by a
// random session id. Username and Role are the snapshot taken at login time;
// the resolved Principal always reflects the current user document.
type Session struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
	IssuedAt time.Time `json:"issued_at"`
}
