package perms

import (
	"sort"
	"time"

	"go-modguard/internal/logging"
)

// WildcardGrant is the grant value that allows every command.
const WildcardGrant = "admin"

// publicCommands are always allowed, for any actor.
var publicCommands = map[string]struct{}{
	"help":        {},
	"pic":         {},
	"banner":      {},
	"snipe":       {},
	"serverinfo":  {},
	"userinfo":    {},
	"channelinfo": {},
}

// IsPublic reports whether a command belongs to the fixed public set.
func IsPublic(command string) bool {
	_, ok := publicCommands[command]
	return ok
}

// Member is the actor attempting a command.
type Member struct {
	ID      string
	GuildID string
	IsOwner bool
	IsAdmin bool
	// RoleIDs the member holds, paired with their hierarchy position so the
	// highest role can be identified for constraint lookups.
	Roles []Role
}

type Role struct {
	ID       string
	Position int
}

// GrantStore answers which commands a role has been granted.
type GrantStore interface {
	PermissionsForRole(guildID, roleID string) ([]string, error)
}

// ConstraintStore answers numeric ceilings attached to grants.
type ConstraintStore interface {
	PermissionConstraint(roleID, command, kind string) (int64, bool, error)
}

// Authorizer makes the allow/deny decision for command invocations.
type Authorizer struct {
	grants      GrantStore
	constraints ConstraintStore
}

func NewAuthorizer(grants GrantStore, constraints ConstraintStore) *Authorizer {
	return &Authorizer{grants: grants, constraints: constraints}
}

// Authorize decides whether the member may run the command. Rules apply in
// strict order, short-circuiting on the first match:
//  1. public commands always allow
//  2. guild owner or administrator always allows
//  3. any held role granted the wildcard or the command allows
//
// Role order does not affect the outcome; the check is a set union.
func (a *Authorizer) Authorize(m Member, command string) (bool, error) {
	if IsPublic(command) {
		return true, nil
	}

	if m.IsOwner || m.IsAdmin {
		return true, nil
	}

	for _, role := range rolesHighestFirst(m.Roles) {
		granted, err := a.grants.PermissionsForRole(m.GuildID, role.ID)
		if err != nil {
			return false, err
		}
		for _, cmd := range granted {
			if cmd == WildcardGrant || cmd == command {
				return true, nil
			}
		}
	}

	return false, nil
}

// CheckMaxDuration enforces the max_duration ceiling for the member's
// highest role. Owners and administrators are not subject to ceilings. The
// first result is whether the request passes; the second is the ceiling that
// rejected it (zero when unlimited).
func (a *Authorizer) CheckMaxDuration(m Member, command string, requested time.Duration) (bool, time.Duration) {
	if m.IsOwner || m.IsAdmin {
		return true, 0
	}

	top, ok := highestRole(m.Roles)
	if !ok {
		return true, 0
	}

	ceiling, found, err := a.constraints.PermissionConstraint(top.ID, command, "max_duration")
	if err != nil {
		logging.Warn("constraint lookup failed for role %s command %s: %v", top.ID, command, err)
		return true, 0
	}
	if !found {
		return true, 0 // no constraint means unlimited
	}

	limit := time.Duration(ceiling) * time.Second
	if requested > limit {
		return false, limit
	}
	return true, limit
}

// CheckMaxAmount enforces the max_amount ceiling the same way.
func (a *Authorizer) CheckMaxAmount(m Member, command string, requested int64) (bool, int64) {
	if m.IsOwner || m.IsAdmin {
		return true, 0
	}

	top, ok := highestRole(m.Roles)
	if !ok {
		return true, 0
	}

	ceiling, found, err := a.constraints.PermissionConstraint(top.ID, command, "max_amount")
	if err != nil {
		logging.Warn("constraint lookup failed for role %s command %s: %v", top.ID, command, err)
		return true, 0
	}
	if !found {
		return true, 0
	}

	if requested > ceiling {
		return false, ceiling
	}
	return true, ceiling
}

func rolesHighestFirst(roles []Role) []Role {
	sorted := make([]Role, len(roles))
	copy(sorted, roles)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Position > sorted[j].Position
	})
	return sorted
}

func highestRole(roles []Role) (Role, bool) {
	if len(roles) == 0 {
		return Role{}, false
	}
	top := roles[0]
	for _, r := range roles[1:] {
		if r.Position > top.Position {
			top = r
		}
	}
	return top, true
}
