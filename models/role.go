package models

// Role is the access level carried in a session token. There are no user
// accounts, only two shared passwords.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleViewer
}
