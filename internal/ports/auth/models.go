package auth

import "time"

// Roles que emite el backend en el token.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// Claims representa la información extraída del token del backend.
type Claims struct {
	UserID    string
	Email     string
	Role      string
	ExpiresAt time.Time

	// Token crudo; los handlers lo reenvían al backend como Bearer.
	Token string
}

func (c Claims) IsAdmin() bool { return c.Role == RoleAdmin }

// CanModerate: admins y moderadores gestionan el catálogo.
func (c Claims) CanModerate() bool { return c.Role == RoleAdmin || c.Role == RoleModerator }
