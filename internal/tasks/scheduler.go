package tasks

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"

	"go-modguard/internal/config"
	"go-modguard/internal/database"
	"go-modguard/internal/logging"
	"go-modguard/internal/sweeper"
)

// Scheduler owns the background jobs: sanction expiry sweeps, stat channel
// refreshes and presence role syncs.
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	sweeper *sweeper.Sweeper
	session *discordgo.Session
	db      *database.Database
}

func NewScheduler(session *discordgo.Session, db *database.Database, sw *sweeper.Sweeper) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:    cron.New(),
		ctx:     ctx,
		cancel:  cancel,
		sweeper: sw,
		session: session,
		db:      db,
	}
}

// Start registers every job and kicks off the cron loop. Jobs run until Stop.
func (s *Scheduler) Start(cfg *config.Config) error {
	if _, err := s.cron.AddFunc(cfg.Tasks.SweepInterval, func() {
		s.sweeper.Sweep(s.ctx, time.Now())
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc(cfg.Tasks.StatsInterval, func() {
		RefreshStatChannels(s.session, cfg.Stats)
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc(cfg.Tasks.PresenceInterval, func() {
		SyncSupportRoles(s.session, s.db)
	}); err != nil {
		return err
	}

	s.cron.Start()
	logging.Info("[TASKS] scheduler started (sweep %s, stats %s, presence %s)",
		cfg.Tasks.SweepInterval, cfg.Tasks.StatsInterval, cfg.Tasks.PresenceInterval)
	return nil
}

// Stop halts the cron loop and cancels any in-flight sweep.
func (s *Scheduler) Stop() {
	s.cancel()
	ctx := s.cron.Stop()
	<-ctx.Done()
	logging.Info("[TASKS] scheduler stopped")
}
