package authz

import (
	"fmt"
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Role is the closed set of roles the system knows. Authorization decisions
// are made only against this type, never against raw strings.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleHR         Role = "HR"
	RoleManager    Role = "MANAGER"
	RoleFinance    Role = "FINANCE"
	RoleUser       Role = "USER"
)

// ParseRole maps a header value onto the closed set; unknown input falls back
// to the least-privileged role.
func ParseRole(s string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleSuperAdmin:
		return RoleSuperAdmin
	case RoleAdmin:
		return RoleAdmin
	case RoleHR:
		return RoleHR
	case RoleManager:
		return RoleManager
	case RoleFinance:
		return RoleFinance
	default:
		return RoleUser
	}
}

type Capability struct {
	Resource string
	Action   string
}

// capabilities is the full role -> permitted-actions table. It replaces the
// scattered per-endpoint role comparisons of the legacy authorization layer:
// hard delete stays admin-only, approval requires manager level or above, and
// finance roles get the transaction surface without approval power.
var capabilities = map[Role][]Capability{
	RoleSuperAdmin: {
		{"transfers", "read"}, {"transfers", "create"}, {"transfers", "update"},
		{"transfers", "approve"}, {"transfers", "reject"}, {"transfers", "process"},
		{"transfers", "delete"}, {"transfers", "purge"},
		{"rates", "read"}, {"rates", "manage"},
		{"employees", "read"}, {"employees", "manage"},
		{"glref", "read"}, {"glref", "manage"},
		{"audit", "read"},
	},
	RoleAdmin: {
		{"transfers", "read"}, {"transfers", "create"}, {"transfers", "update"},
		{"transfers", "approve"}, {"transfers", "reject"}, {"transfers", "process"},
		{"transfers", "delete"}, {"transfers", "purge"},
		{"rates", "read"}, {"rates", "manage"},
		{"employees", "read"}, {"employees", "manage"},
		{"glref", "read"}, {"glref", "manage"},
		{"audit", "read"},
	},
	RoleManager: {
		{"transfers", "read"}, {"transfers", "create"}, {"transfers", "update"},
		{"transfers", "approve"}, {"transfers", "reject"}, {"transfers", "process"},
		{"transfers", "delete"},
		{"rates", "read"},
		{"employees", "read"},
		{"audit", "read"},
	},
	RoleFinance: {
		{"transfers", "read"}, {"transfers", "create"}, {"transfers", "update"},
		{"transfers", "delete"},
		{"rates", "read"},
		{"glref", "read"}, {"glref", "manage"},
		{"audit", "read"},
	},
	RoleHR: {
		{"rates", "read"}, {"rates", "manage"},
		{"employees", "read"}, {"employees", "manage"},
	},
	RoleUser: {
		{"transfers", "read"},
		{"rates", "read"},
	},
}

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

//go:generate mockgen -source=authz.go -destination=mock/authz_mock.go -package=mock
type Service interface {
	Authorize(role Role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

// NewService builds an enforcer preloaded with the static capability table.
func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for role, caps := range capabilities {
		for _, cap := range caps {
			if _, err := enforcer.AddPolicy(string(role), cap.Resource, cap.Action); err != nil {
				return nil, fmt.Errorf("load capability %s %s:%s: %w", role, cap.Resource, cap.Action, err)
			}
		}
	}

	return &service{enforcer: enforcer}, nil
}

// Authorize is the single authorization chokepoint for the whole API.
func (s *service) Authorize(role Role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(string(role), resource, action)
}
