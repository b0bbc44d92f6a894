package perms

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeGrants struct {
	byRole map[string][]string
	err    error
}

func (f *fakeGrants) PermissionsForRole(guildID, roleID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byRole[roleID], nil
}

type fakeConstraints struct {
	ceilings map[string]int64 // "role:command:kind" -> ceiling
	err      error
}

func (f *fakeConstraints) PermissionConstraint(roleID, command, kind string) (int64, bool, error) {
	if f.err != nil {
		return 0, false, f.err
	}
	v, ok := f.ceilings[roleID+":"+command+":"+kind]
	return v, ok, nil
}

func newTestAuthorizer(byRole map[string][]string, ceilings map[string]int64) *Authorizer {
	return NewAuthorizer(&fakeGrants{byRole: byRole}, &fakeConstraints{ceilings: ceilings})
}

func TestPublicCommandsAllowAnyone(t *testing.T) {
	a := newTestAuthorizer(nil, nil)
	m := Member{ID: "u1", GuildID: "g1"}

	for _, cmd := range []string{"help", "pic", "banner", "snipe", "serverinfo", "userinfo", "channelinfo"} {
		ok, err := a.Authorize(m, cmd)
		assert.NoError(t, err)
		assert.True(t, ok, "%s must be allowed without any grant", cmd)
	}
}

func TestOwnerAndAdminBypassGrants(t *testing.T) {
	a := newTestAuthorizer(nil, nil)

	ok, err := a.Authorize(Member{ID: "u1", GuildID: "g1", IsOwner: true}, "ban")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.Authorize(Member{ID: "u2", GuildID: "g1", IsAdmin: true}, "ban")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestRoleGrantAllows(t *testing.T) {
	a := newTestAuthorizer(map[string][]string{"r1": {"kick", "ban"}}, nil)
	m := Member{ID: "u1", GuildID: "g1", Roles: []Role{{ID: "r1", Position: 1}}}

	ok, err := a.Authorize(m, "ban")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.Authorize(m, "warn")
	assert.NoError(t, err)
	assert.False(t, ok, "ungranted command must be denied")
}

func TestWildcardGrantAllowsEverything(t *testing.T) {
	a := newTestAuthorizer(map[string][]string{"r1": {"admin"}}, nil)
	m := Member{ID: "u1", GuildID: "g1", Roles: []Role{{ID: "r1", Position: 1}}}

	for _, cmd := range []string{"ban", "kick", "timeout", "secur", "permissions"} {
		ok, err := a.Authorize(m, cmd)
		assert.NoError(t, err)
		assert.True(t, ok, "wildcard must allow %s", cmd)
	}
}

func TestGrantsAreUnionAcrossRoles(t *testing.T) {
	a := newTestAuthorizer(map[string][]string{
		"low":  {"kick"},
		"high": {"warn"},
	}, nil)
	m := Member{ID: "u1", GuildID: "g1", Roles: []Role{
		{ID: "low", Position: 1},
		{ID: "high", Position: 5},
	}}

	// Either role's grant suffices regardless of hierarchy position.
	ok, _ := a.Authorize(m, "kick")
	assert.True(t, ok)
	ok, _ = a.Authorize(m, "warn")
	assert.True(t, ok)
	ok, _ = a.Authorize(m, "ban")
	assert.False(t, ok)
}

func TestNoRolesDenied(t *testing.T) {
	a := newTestAuthorizer(nil, nil)
	ok, err := a.Authorize(Member{ID: "u1", GuildID: "g1"}, "ban")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthorizeStoreErrorPropagates(t *testing.T) {
	a := NewAuthorizer(&fakeGrants{err: errors.New("db closed")}, &fakeConstraints{})
	m := Member{ID: "u1", GuildID: "g1", Roles: []Role{{ID: "r1", Position: 1}}}

	ok, err := a.Authorize(m, "ban")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestMaxDurationAgainstHighestRole(t *testing.T) {
	a := newTestAuthorizer(nil, map[string]int64{
		"high:timeout:max_duration": 3600,
	})
	m := Member{ID: "u1", GuildID: "g1", Roles: []Role{
		{ID: "low", Position: 1},
		{ID: "high", Position: 9},
	}}

	ok, limit := a.CheckMaxDuration(m, "timeout", 30*time.Minute)
	assert.True(t, ok)
	assert.Equal(t, time.Hour, limit)

	ok, limit = a.CheckMaxDuration(m, "timeout", 2*time.Hour)
	assert.False(t, ok, "request over the ceiling must be rejected")
	assert.Equal(t, time.Hour, limit)
}

func TestMaxDurationUnlimitedWhenAbsent(t *testing.T) {
	a := newTestAuthorizer(nil, nil)
	m := Member{ID: "u1", GuildID: "g1", Roles: []Role{{ID: "r1", Position: 1}}}

	ok, limit := a.CheckMaxDuration(m, "timeout", 240*time.Hour)
	assert.True(t, ok)
	assert.Equal(t, time.Duration(0), limit)
}

func TestMaxDurationSkippedForOwnerAdmin(t *testing.T) {
	a := newTestAuthorizer(nil, map[string]int64{
		"r1:timeout:max_duration": 60,
	})

	ok, _ := a.CheckMaxDuration(Member{IsOwner: true, Roles: []Role{{ID: "r1"}}}, "timeout", time.Hour)
	assert.True(t, ok)
	ok, _ = a.CheckMaxDuration(Member{IsAdmin: true, Roles: []Role{{ID: "r1"}}}, "timeout", time.Hour)
	assert.True(t, ok)
}

func TestMaxAmountCeiling(t *testing.T) {
	a := newTestAuthorizer(nil, map[string]int64{
		"r1:purge:max_amount": 50,
	})
	m := Member{ID: "u1", GuildID: "g1", Roles: []Role{{ID: "r1", Position: 1}}}

	ok, ceiling := a.CheckMaxAmount(m, "purge", 25)
	assert.True(t, ok)
	assert.Equal(t, int64(50), ceiling)

	ok, _ = a.CheckMaxAmount(m, "purge", 100)
	assert.False(t, ok)
}
