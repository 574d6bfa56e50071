package capabilities

import "context"

type Capability string

const (
	CatalogWrite Capability = "catalog:write"
	UsersManage  Capability = "users:manage"
	AuditRead    Capability = "audit:read"
	LogsRead     Capability = "logs:read"
	StatsRead    Capability = "stats:read"
)

// Resolver decide si un rol tiene una capability.
type Resolver interface {
	Has(ctx context.Context, role string, c Capability) (bool, error)
}
