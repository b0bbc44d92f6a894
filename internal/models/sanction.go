package models

import "time"

// SanctionType names the kind of recorded punitive action.
type SanctionType string

const (
	SanctionBan      SanctionType = "ban"
	SanctionKick     SanctionType = "kick"
	SanctionWarn     SanctionType = "warn"
	SanctionTimeout  SanctionType = "timeout"
	SanctionTemprole SanctionType = "temprole"
	SanctionPrison   SanctionType = "prison"
	SanctionDerank   SanctionType = "derank"
)

// Sanction is a punitive action on record. EndTime is zero for permanent
// sanctions; an active sanction whose EndTime has passed is expired and must
// be reversed exactly once by the sweeper.
type Sanction struct {
	ID          int64
	GuildID     string
	UserID      string
	ModeratorID string
	Type        SanctionType
	Reason      string
	StartTime   time.Time
	EndTime     time.Time
	Active      bool
	RoleID      string // temprole and prison
}

// Expired reports whether the sanction has a deadline that already passed.
func (s *Sanction) Expired(now time.Time) bool {
	return s.Active && !s.EndTime.IsZero() && !s.EndTime.After(now)
}
