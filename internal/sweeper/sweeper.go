package sweeper

import (
	"context"
	"time"

	"go-modguard/internal/logging"
	"go-modguard/internal/models"
)

// Store is the sanction persistence the sweeper reads and updates.
type Store interface {
	ExpiredSanctions(now time.Time) ([]*models.Sanction, error)
	MarkSanctionInactive(id int64) error
	RestoreUserRoles(guildID, userID string) ([]string, error)
}

// Actions performs the Discord-side reversal for each sanction type.
type Actions interface {
	Unban(guildID, userID string) error
	ClearTimeout(guildID, userID string) error
	RemoveRole(guildID, userID, roleID string) error
	AddRole(guildID, userID, roleID string) error
}

// Sweeper deactivates expired sanctions and reverses their effects. A row is
// only marked inactive after its reversal succeeds, so a transient Discord
// failure leaves the sanction active for the next pass to retry.
type Sweeper struct {
	store   Store
	actions Actions
}

func New(store Store, actions Actions) *Sweeper {
	return &Sweeper{store: store, actions: actions}
}

// Sweep runs one pass over every expired, still-active sanction. Each row is
// handled in isolation; one failure never blocks the rest of the batch.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) {
	expired, err := s.store.ExpiredSanctions(now)
	if err != nil {
		logging.Error("[SWEEP] listing expired sanctions failed: %v", err)
		return
	}
	if len(expired) == 0 {
		return
	}

	logging.Debug("[SWEEP] %d expired sanction(s) to reverse", len(expired))
	for _, sanction := range expired {
		select {
		case <-ctx.Done():
			return
		default:
		}
		s.reverse(sanction)
	}
}

func (s *Sweeper) reverse(sanction *models.Sanction) {
	var err error

	switch sanction.Type {
	case models.SanctionBan:
		err = s.actions.Unban(sanction.GuildID, sanction.UserID)
	case models.SanctionTimeout:
		err = s.actions.ClearTimeout(sanction.GuildID, sanction.UserID)
	case models.SanctionTemprole:
		err = s.actions.RemoveRole(sanction.GuildID, sanction.UserID, sanction.RoleID)
	case models.SanctionPrison:
		err = s.release(sanction)
	default:
		// warn/kick carry no standing effect; just close the row.
	}

	if err != nil {
		logging.Warn("[SWEEP] reversing %s sanction #%d for %s in %s failed: %v",
			sanction.Type, sanction.ID, sanction.UserID, sanction.GuildID, err)
		return
	}

	if err := s.store.MarkSanctionInactive(sanction.ID); err != nil {
		logging.Error("[SWEEP] marking sanction #%d inactive failed: %v", sanction.ID, err)
		return
	}
	logging.Info("[SWEEP] reversed %s sanction #%d for %s in %s",
		sanction.Type, sanction.ID, sanction.UserID, sanction.GuildID)
}

// release takes a member out of prison: remove the prison role, then restore
// whatever roles were stashed when they went in. Restore failures on
// individual roles are logged and skipped so one deleted role cannot keep a
// member imprisoned.
func (s *Sweeper) release(sanction *models.Sanction) error {
	if sanction.RoleID != "" {
		if err := s.actions.RemoveRole(sanction.GuildID, sanction.UserID, sanction.RoleID); err != nil {
			return err
		}
	}

	stashed, err := s.store.RestoreUserRoles(sanction.GuildID, sanction.UserID)
	if err != nil {
		return err
	}
	entry := logging.WithField("guild", sanction.GuildID).WithField("user", sanction.UserID)
	for _, roleID := range stashed {
		if err := s.actions.AddRole(sanction.GuildID, sanction.UserID, roleID); err != nil {
			entry.Warnf("[SWEEP] restoring role %s failed: %v", roleID, err)
		}
	}
	return nil
}
