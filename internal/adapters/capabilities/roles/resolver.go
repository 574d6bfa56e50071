package roles

import (
	"context"
	"errors"
	"strings"

	"med-reminder/internal/ports/auth"
	"med-reminder/internal/ports/capabilities"
)

var ErrUnknownCapability = errors.New("unknown capability")

// Resolver resuelve capabilities con una tabla estática por rol.
// El backend es quien hace cumplir los permisos; acá solo evitamos llamadas inútiles.
type Resolver struct {
	table    map[string]map[capabilities.Capability]bool
	allowAll bool
}

// NewResolver crea el resolver. allowAll=true (modo dev) responde true a todo.
func NewResolver(allowAll bool) *Resolver {
	return &Resolver{
		allowAll: allowAll,
		table: map[string]map[capabilities.Capability]bool{
			auth.RoleAdmin: {
				capabilities.CatalogWrite: true,
				capabilities.UsersManage:  true,
				capabilities.AuditRead:    true,
				capabilities.LogsRead:     true,
				capabilities.StatsRead:    true,
			},
			auth.RoleModerator: {
				capabilities.CatalogWrite: true,
				capabilities.StatsRead:    true,
			},
			auth.RoleUser: {},
		},
	}
}

func (r *Resolver) Has(_ context.Context, role string, c capabilities.Capability) (bool, error) {
	if strings.TrimSpace(string(c)) == "" {
		return false, errors.New("capability required")
	}
	if !known(c) {
		return false, ErrUnknownCapability
	}
	if r.allowAll {
		return true, nil
	}
	return r.table[strings.ToLower(strings.TrimSpace(role))][c], nil
}

func known(c capabilities.Capability) bool {
	switch c {
	case capabilities.CatalogWrite, capabilities.UsersManage, capabilities.AuditRead,
		capabilities.LogsRead, capabilities.StatsRead:
		return true
	}
	return false
}
