// Package permission backs authorization.Checker with a casbin RBAC enforcer.
package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

// rbacModel grants a capability to a role and, through g, to every role that
// inherits from it.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

var _ authorization.Checker = (*Enforcer)(nil)

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer persists policies in the casbin_rule table through the gorm
// adapter and seeds the default grants on first start.
func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	e := &Enforcer{enforcer: enforcer, logger: log}
	if err := e.SeedDefaults(); err != nil {
		return nil, err
	}
	return e, nil
}

// NewInMemoryEnforcer keeps policies in memory only.
func NewInMemoryEnforcer(log logger.Interface) (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	e := &Enforcer{enforcer: enforcer, logger: log}
	if err := e.SeedDefaults(); err != nil {
		return nil, err
	}
	return e, nil
}

// SeedDefaults adds the built-in grants and the admin -> agent -> end_user
// inheritance. Existing rules are left alone, so it is safe on every start.
func (e *Enforcer) SeedDefaults() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	added := 0
	for role, capabilities := range authorization.DefaultGrants() {
		for _, capability := range capabilities {
			resource, action := capability.Split()
			ok, err := e.enforcer.AddPolicy(role.String(), resource, action)
			if err != nil {
				e.logger.Errorw("failed to add permission policy",
					"error", err,
					"role", role,
					"resource", resource,
					"action", action)
				return fmt.Errorf("failed to add policy [%s, %s, %s]: %w", role, resource, action, err)
			}
			if ok {
				added++
			}
		}
	}

	inheritance := [][2]authorization.UserRole{
		{authorization.RoleAdmin, authorization.RoleAgent},
		{authorization.RoleAgent, authorization.RoleEndUser},
	}
	for _, pair := range inheritance {
		ok, err := e.enforcer.AddGroupingPolicy(pair[0].String(), pair[1].String())
		if err != nil {
			return fmt.Errorf("failed to add role inheritance %s -> %s: %w", pair[0], pair[1], err)
		}
		if ok {
			added++
		}
	}

	if added > 0 {
		e.logger.Infow("permission policies seeded", "added", added)
	}
	return nil
}

// Can denies on enforcement errors.
func (e *Enforcer) Can(role authorization.UserRole, capability authorization.Capability) bool {
	if !role.IsValid() {
		return false
	}
	resource, action := capability.Split()

	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(role.String(), resource, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "resource", resource, "action", action)
		return false
	}
	return allowed
}
