package auth

import "strings"

// Role is the closed set of role strings stored on a member row. Authorization
// is plain string equality against per-entity tables: there is no hierarchy,
// so "super admin" does not inherit any "admin"-gated action.
type Role string

const (
	RoleUser       Role = "user"
	RoleGuest      Role = "guest"
	RoleAdmin      Role = "admin"
	RoleKeuangan   Role = "keuangan"
	RoleSuperAdmin Role = "super admin"

	// Referenced by the policy tables even though the member form never
	// assigns them. Kept distinct from the roles above: "keuangan" and
	// "bendahara" are different literals, which is why the keuangan role
	// cannot create kas entries.
	RoleBendahara Role = "bendahara"
	RoleAnggota   Role = "anggota"
)

// NormalizeRole is the single boundary mapping for raw role strings: it
// lowercases, collapses whitespace, and folds the "financial" spelling used by
// the board-assignment form into "keuangan". Unknown strings pass through
// unchanged and simply match nothing in the tables.
func NormalizeRole(raw string) Role {
	r := strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	if r == "financial" {
		return RoleKeuangan
	}
	return Role(r)
}

type Action string

const (
	ActionViewAny     Action = "viewAny"
	ActionView        Action = "view"
	ActionCreate      Action = "create"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionDeleteAny   Action = "deleteAny"
	ActionRestore     Action = "restore"
	ActionForceDelete Action = "forceDelete"
)

type Entity string

const (
	EntityKas      Entity = "kas"
	EntityIncome   Entity = "income"
	EntityExpense  Entity = "expense"
	EntityActivity Entity = "activity"
	EntityMember   Entity = "member"
	EntityReport   Entity = "monthly_report"
)

// ViewRule carries an explicit per-entity default so that default-allow (kas)
// and default-deny (member) co-exist without a global constant. Except inverts
// the default for the listed roles.
type ViewRule struct {
	Default bool
	Except  []Role
}

func (v ViewRule) allows(role Role) bool {
	for _, r := range v.Except {
		if r == role {
			return !v.Default
		}
	}
	return v.Default
}

// EntityPolicy is one entity's rule table. Delete covers delete and deleteAny;
// both are admin-only everywhere but stay separate actions at the call sites.
type EntityPolicy struct {
	View        ViewRule
	Create      []Role
	Update      []Role
	Delete      []Role
	Restore     []Role
	ForceDelete []Role
}

var adminOnly = []Role{RoleAdmin}

var policies = map[Entity]EntityPolicy{
	EntityKas: {
		View:        ViewRule{Default: true},
		Create:      []Role{RoleAdmin, RoleBendahara},
		Update:      adminOnly,
		Delete:      adminOnly,
		Restore:     adminOnly,
		ForceDelete: adminOnly,
	},
	EntityIncome: {
		View:        ViewRule{Default: true, Except: []Role{RoleAnggota}},
		Create:      []Role{RoleAdmin, RoleBendahara},
		Update:      []Role{RoleAdmin, RoleBendahara},
		Delete:      adminOnly,
		Restore:     adminOnly,
		ForceDelete: adminOnly,
	},
	EntityExpense: {
		View:        ViewRule{Default: true, Except: []Role{RoleAnggota}},
		Create:      []Role{RoleAdmin, RoleBendahara},
		Update:      []Role{RoleAdmin, RoleBendahara},
		Delete:      adminOnly,
		Restore:     adminOnly,
		ForceDelete: adminOnly,
	},
	EntityActivity: {
		View:        ViewRule{Default: true},
		Create:      adminOnly,
		Update:      adminOnly,
		Delete:      adminOnly,
		Restore:     adminOnly,
		ForceDelete: adminOnly,
	},
	EntityMember: {
		View:        ViewRule{Default: false, Except: []Role{RoleAdmin, RoleSuperAdmin}},
		Create:      adminOnly,
		Update:      adminOnly,
		Delete:      adminOnly,
		Restore:     adminOnly,
		ForceDelete: adminOnly,
	},
	EntityReport: {
		View:        ViewRule{Default: false, Except: []Role{RoleAdmin, RoleBendahara, RoleKeuangan}},
		Create:      []Role{RoleAdmin, RoleBendahara},
		Update:      []Role{RoleAdmin, RoleBendahara},
		Delete:      adminOnly,
		Restore:     adminOnly,
		ForceDelete: adminOnly,
	},
}

// Authorize is the pure decision function: no state, no storage, no side
// effects. Mutating actions on an unknown role or entity fall through to deny;
// view follows the entity's default flag.
func Authorize(role Role, action Action, entity Entity) bool {
	p, ok := policies[entity]
	if !ok {
		return false
	}

	switch action {
	case ActionViewAny, ActionView:
		return p.View.allows(role)
	case ActionCreate:
		return containsRole(p.Create, role)
	case ActionUpdate:
		return containsRole(p.Update, role)
	case ActionDelete, ActionDeleteAny:
		return containsRole(p.Delete, role)
	case ActionRestore:
		return containsRole(p.Restore, role)
	case ActionForceDelete:
		return containsRole(p.ForceDelete, role)
	default:
		return false
	}
}

func containsRole(roles []Role, role Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
