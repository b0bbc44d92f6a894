package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"go-modguard/internal/logging"
)

type Session struct {
	discord *discordgo.Session
	token   string
	BotID   string
}

var globalSession *Session

// Initialize creates the Discord session with the intents the guard needs.
func Initialize(token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentsAll
	dg.State.TrackPresences = true
	dg.State.TrackMembers = true

	globalSession = &Session{
		discord: dg,
		token:   token,
	}

	return nil
}

// GetSession returns the global Discord session wrapper.
func GetSession() *Session {
	return globalSession
}

// GetDiscord returns the underlying discordgo session.
func (s *Session) GetDiscord() *discordgo.Session {
	return s.discord
}

// Connect opens the Discord websocket connection.
func (s *Session) Connect() error {
	if err := s.discord.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if s.discord.State.User != nil {
		s.BotID = s.discord.State.User.ID
		logging.Info("Bot ID: %s", s.BotID)
	}

	logging.Info("Discord bot connected successfully")
	return nil
}

// Close closes the Discord connection.
func (s *Session) Close() error {
	if s.discord != nil {
		return s.discord.Close()
	}
	return nil
}

// RegisterCommands registers all slash commands with Discord.
func (s *Session) RegisterCommands(commands []*discordgo.ApplicationCommand) error {
	logging.Info("Registering %d slash commands...", len(commands))

	for _, cmd := range commands {
		_, err := s.discord.ApplicationCommandCreate(s.discord.State.User.ID, "", cmd)
		if err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
		logging.Info("Registered command: /%s", cmd.Name)
	}

	return nil
}

// AddHandler adds an event handler to the Discord session.
func (s *Session) AddHandler(handler interface{}) {
	s.discord.AddHandler(handler)
}
