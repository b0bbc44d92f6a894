package sweeper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-modguard/internal/models"
)

type fakeStore struct {
	expired    []*models.Sanction
	inactive   []int64
	stashed    map[string][]string // "guild:user" -> roles, consumed on read
	listErr    error
	markErr    error
	restoreErr error
}

func (f *fakeStore) ExpiredSanctions(now time.Time) ([]*models.Sanction, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.expired, nil
}

func (f *fakeStore) MarkSanctionInactive(id int64) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.inactive = append(f.inactive, id)
	return nil
}

func (f *fakeStore) RestoreUserRoles(guildID, userID string) ([]string, error) {
	if f.restoreErr != nil {
		return nil, f.restoreErr
	}
	key := guildID + ":" + userID
	roles := f.stashed[key]
	delete(f.stashed, key)
	return roles, nil
}

type call struct {
	op     string
	guild  string
	user   string
	roleID string
}

type fakeActions struct {
	calls []call
	fail  map[string]error // op -> error
}

func (f *fakeActions) record(op, guild, user, roleID string) error {
	f.calls = append(f.calls, call{op: op, guild: guild, user: user, roleID: roleID})
	if f.fail != nil {
		return f.fail[op]
	}
	return nil
}

func (f *fakeActions) Unban(g, u string) error         { return f.record("unban", g, u, "") }
func (f *fakeActions) ClearTimeout(g, u string) error  { return f.record("cleartimeout", g, u, "") }
func (f *fakeActions) RemoveRole(g, u, r string) error { return f.record("removerole", g, u, r) }
func (f *fakeActions) AddRole(g, u, r string) error    { return f.record("addrole", g, u, r) }

func expiredAt(id int64, t models.SanctionType, roleID string) *models.Sanction {
	return &models.Sanction{
		ID:      id,
		GuildID: "g1",
		UserID:  "u1",
		Type:    t,
		RoleID:  roleID,
		Active:  true,
		EndTime: time.Unix(100, 0),
	}
}

func TestSweepReversesExpiredBan(t *testing.T) {
	store := &fakeStore{expired: []*models.Sanction{expiredAt(1, models.SanctionBan, "")}}
	actions := &fakeActions{}

	New(store, actions).Sweep(context.Background(), time.Unix(200, 0))

	assert.Equal(t, []call{{op: "unban", guild: "g1", user: "u1"}}, actions.calls)
	assert.Equal(t, []int64{1}, store.inactive)
}

func TestSweepClearsTimeoutAndRemovesTemprole(t *testing.T) {
	store := &fakeStore{expired: []*models.Sanction{
		expiredAt(1, models.SanctionTimeout, ""),
		expiredAt(2, models.SanctionTemprole, "r9"),
	}}
	actions := &fakeActions{}

	New(store, actions).Sweep(context.Background(), time.Unix(200, 0))

	assert.Equal(t, []call{
		{op: "cleartimeout", guild: "g1", user: "u1"},
		{op: "removerole", guild: "g1", user: "u1", roleID: "r9"},
	}, actions.calls)
	assert.Equal(t, []int64{1, 2}, store.inactive)
}

func TestSweepReleasesPrisonAndRestoresRoles(t *testing.T) {
	store := &fakeStore{
		expired: []*models.Sanction{expiredAt(7, models.SanctionPrison, "prison-role")},
		stashed: map[string][]string{"g1:u1": {"r1", "r2"}},
	}
	actions := &fakeActions{}

	New(store, actions).Sweep(context.Background(), time.Unix(200, 0))

	assert.Equal(t, []call{
		{op: "removerole", guild: "g1", user: "u1", roleID: "prison-role"},
		{op: "addrole", guild: "g1", user: "u1", roleID: "r1"},
		{op: "addrole", guild: "g1", user: "u1", roleID: "r2"},
	}, actions.calls)
	assert.Equal(t, []int64{7}, store.inactive)
	assert.Empty(t, store.stashed, "stash must be consumed")
}

func TestSweepRowIsolationOnFailure(t *testing.T) {
	store := &fakeStore{expired: []*models.Sanction{
		expiredAt(1, models.SanctionBan, ""),
		expiredAt(2, models.SanctionTimeout, ""),
	}}
	actions := &fakeActions{fail: map[string]error{"unban": errors.New("missing permission")}}

	New(store, actions).Sweep(context.Background(), time.Unix(200, 0))

	// The failed ban stays active; the timeout is still reversed.
	assert.Equal(t, []int64{2}, store.inactive)
}

func TestSweepSecondPassIsIdempotent(t *testing.T) {
	store := &fakeStore{expired: []*models.Sanction{expiredAt(1, models.SanctionBan, "")}}
	actions := &fakeActions{}
	s := New(store, actions)

	s.Sweep(context.Background(), time.Unix(200, 0))
	// The next listing no longer returns the closed row.
	store.expired = nil
	s.Sweep(context.Background(), time.Unix(260, 0))

	assert.Len(t, actions.calls, 1)
	assert.Equal(t, []int64{1}, store.inactive)
}

func TestSweepWarnAndKickJustClose(t *testing.T) {
	store := &fakeStore{expired: []*models.Sanction{
		expiredAt(1, models.SanctionWarn, ""),
	}}
	actions := &fakeActions{}

	New(store, actions).Sweep(context.Background(), time.Unix(200, 0))

	assert.Empty(t, actions.calls)
	assert.Equal(t, []int64{1}, store.inactive)
}

func TestSweepListErrorAborts(t *testing.T) {
	store := &fakeStore{listErr: errors.New("db closed")}
	actions := &fakeActions{}

	New(store, actions).Sweep(context.Background(), time.Unix(200, 0))

	assert.Empty(t, actions.calls)
	assert.Empty(t, store.inactive)
}

func TestSweepHonorsContextCancellation(t *testing.T) {
	store := &fakeStore{expired: []*models.Sanction{
		expiredAt(1, models.SanctionBan, ""),
		expiredAt(2, models.SanctionBan, ""),
	}}
	actions := &fakeActions{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	New(store, actions).Sweep(ctx, time.Unix(200, 0))

	assert.Empty(t, actions.calls)
}
