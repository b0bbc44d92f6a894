package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"go-modguard/internal/bot"
	"go-modguard/internal/commands"
	"go-modguard/internal/config"
	"go-modguard/internal/database"
	"go-modguard/internal/dispatcher"
	"go-modguard/internal/guard"
	"go-modguard/internal/logging"
	"go-modguard/internal/notifier"
	"go-modguard/internal/perms"
	"go-modguard/internal/sweeper"
	"go-modguard/internal/tasks"
	"go-modguard/internal/watchdog"
)

func main() {
	fmt.Println("Starting modguard")

	// Missing .env is fine; the environment may carry the token directly.
	_ = godotenv.Load()

	cfg := config.LoadOrDefault("config.json")
	if cfg.Bot.Token == "" {
		fmt.Println("DISCORD_TOKEN is not set")
		os.Exit(1)
	}

	if err := logging.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		panic(err)
	}

	if err := database.Initialize(cfg.Database.Path); err != nil {
		panic(err)
	}
	db := database.GetDB()
	logging.Info("Database ready at %s", cfg.Database.Path)

	if err := bot.Initialize(cfg.Bot.Token); err != nil {
		panic(err)
	}
	session := bot.GetSession()

	components := startComponents(cfg, db, session)

	handlers := bot.NewHandlers(components.detector, components.punisher, db)
	handlers.Setup(session)

	if err := session.Connect(); err != nil {
		panic(err)
	}
	notifier.SetSession(session.GetDiscord())

	authorizer := perms.NewAuthorizer(db, db)
	if err := commands.Initialize(session, db, authorizer); err != nil {
		panic(err)
	}

	scheduler := tasks.NewScheduler(session.GetDiscord(), db, components.sweeper)
	if err := scheduler.Start(cfg); err != nil {
		panic(err)
	}

	dog := watchdog.New(components.jobQueue, jobQueueSize, session.GetDiscord(),
		components.detector.Tracker(), 30*time.Second)
	dog.Start()

	logging.Info("All components started successfully")

	waitForShutdown()

	dog.Stop()
	scheduler.Stop()
	stopComponents(components)
	session.Close()
	database.Close()

	logging.Info("Shutdown complete")
}

type Components struct {
	jobQueue *dispatcher.JobQueue
	httpPool *dispatcher.HTTPPool
	detector *guard.Detector
	punisher *guard.Punisher
	sweeper  *sweeper.Sweeper

	cancel  context.CancelFunc
	workers sync.WaitGroup
}

const jobQueueSize = 4096

func startComponents(cfg *config.Config, db *database.Database, session *bot.Session) *Components {
	jobQueue := dispatcher.NewJobQueue(jobQueueSize)

	httpPool := dispatcher.NewHTTPPool(cfg.Guard.HTTPPoolSize)
	httpPool.Warmup("https://discord.com/api/v10")

	tracker := guard.NewTracker(cfg.Guard.TrackerCapacity)
	detector := guard.NewDetector(db, db, tracker)
	punisher := guard.NewPunisher(jobQueue, session.GetDiscord(), db)

	executor := dispatcher.NewRequestExecutor(httpPool, cfg.Bot.Token)

	ctx, cancel := context.WithCancel(context.Background())
	components := &Components{
		jobQueue: jobQueue,
		httpPool: httpPool,
		detector: detector,
		punisher: punisher,
		sweeper:  sweeper.New(db, sweeper.NewDiscordActions(session.GetDiscord())),
		cancel:   cancel,
	}

	// A failed punishment lifts the in-flight mark so the next breach retries.
	onDone := func(job *dispatcher.Job, err error) {
		if err != nil {
			punisher.Clear(job.GuildID, job.UserID)
		}
	}

	for i := 0; i < cfg.Guard.WorkerCount; i++ {
		worker := dispatcher.NewRESTWorker(jobQueue, executor, i, onDone)
		components.workers.Add(1)
		go worker.Run(ctx, &components.workers)
	}
	logging.Info("Started %d REST workers", cfg.Guard.WorkerCount)

	return components
}

func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	fmt.Println("\nShutdown signal received")
}

func stopComponents(components *Components) {
	components.cancel()
	components.workers.Wait()
}
