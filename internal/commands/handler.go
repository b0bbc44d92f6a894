package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"go-modguard/internal/bot"
	"go-modguard/internal/database"
	"go-modguard/internal/logging"
	"go-modguard/internal/perms"
)

// Handler manages all command interactions
type Handler struct {
	session    *bot.Session
	db         *database.Database
	authorizer *perms.Authorizer
}

var globalHandler *Handler

// Initialize creates and initializes the command handler
func Initialize(session *bot.Session, db *database.Database, authorizer *perms.Authorizer) error {
	globalHandler = &Handler{
		session:    session,
		db:         db,
		authorizer: authorizer,
	}

	session.AddHandler(globalHandler.handleInteraction)

	commands := GetAllCommands()
	if err := session.RegisterCommands(commands); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	logging.Info("Command handler initialized with %d commands", len(commands))
	return nil
}

// GetHandler returns the global command handler
func GetHandler() *Handler {
	return globalHandler
}

func (h *Handler) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	h.handleCommand(s, i)
}

// handleCommand gates every invocation through the blacklist and the
// authorizer, then routes to the handler.
func (h *Handler) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()

	member, err := h.memberFromInteraction(s, i)
	if err != nil {
		respondError(s, i, "could not resolve your membership")
		return
	}

	if blacklisted, _ := h.db.IsBlacklisted(member.ID); blacklisted {
		respondError(s, i, "you are not allowed to use this bot")
		return
	}

	// Bot-owner commands are global; they carry their own gate instead of
	// the per-guild authorizer.
	if data.Name == "owner" || data.Name == "blacklist" {
		if err := h.handleOwnerCommand(s, i, member); err != nil {
			logging.Error("Command error [%s]: %v", data.Name, err)
			respondError(s, i, err.Error())
		}
		return
	}

	allowed, err := h.authorizer.Authorize(member, data.Name)
	if err != nil {
		logging.Error("Authorization error [%s]: %v", data.Name, err)
		respondError(s, i, "authorization check failed")
		return
	}
	if !allowed {
		respondError(s, i, fmt.Sprintf("you do not have permission to use /%s", data.Name))
		return
	}

	switch data.Name {
	case "permissions":
		err = h.handlePermissions(s, i)
	case "secur":
		err = h.handleSecur(s, i)
	case "kick":
		err = h.handleKick(s, i, member)
	case "ban":
		err = h.handleBan(s, i, member)
	case "unban":
		err = h.handleUnban(s, i, member)
	case "timeout":
		err = h.handleTimeout(s, i, member)
	case "untimeout":
		err = h.handleUntimeout(s, i, member)
	case "warn":
		err = h.handleWarn(s, i, member)
	case "prison":
		err = h.handlePrison(s, i, member)
	case "unprison":
		err = h.handleUnprison(s, i, member)
	case "role":
		err = h.handleRole(s, i, member)
	case "sanctions":
		err = h.handleSanctions(s, i)
	case "welcome":
		err = h.handleWelcome(s, i)
	case "help":
		err = handleHelp(s, i)
	case "ping":
		err = handlePing(s, i)
	case "status":
		err = h.handleStatus(s, i)
	case "stats":
		err = handleStats(s, i)
	case "snipe":
		err = handleSnipe(s, i)
	case "pic":
		err = handlePic(s, i)
	case "banner":
		err = handleBanner(s, i)
	case "serverinfo":
		err = handleServerInfo(s, i)
	case "userinfo":
		err = handleUserInfo(s, i)
	case "channelinfo":
		err = handleChannelInfo(s, i)
	default:
		err = fmt.Errorf("unknown command: %s", data.Name)
	}

	if err != nil {
		logging.Error("Command error [%s]: %v", data.Name, err)
		respondError(s, i, err.Error())
	}
}

// memberFromInteraction builds the authorization view of the invoker.
func (h *Handler) memberFromInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) (perms.Member, error) {
	if i.Member == nil || i.Member.User == nil {
		return perms.Member{}, fmt.Errorf("interaction without member")
	}

	member := perms.Member{
		ID:      i.Member.User.ID,
		GuildID: i.GuildID,
		IsAdmin: i.Member.Permissions&discordgo.PermissionAdministrator != 0,
	}

	guild, err := s.State.Guild(i.GuildID)
	if err != nil {
		guild, err = s.Guild(i.GuildID)
		if err != nil {
			return member, err
		}
	}
	member.IsOwner = guild.OwnerID == member.ID

	for _, roleID := range i.Member.Roles {
		for _, role := range guild.Roles {
			if role.ID == roleID {
				member.Roles = append(member.Roles, perms.Role{ID: role.ID, Position: role.Position})
				break
			}
		}
	}

	return member, nil
}

// respondError sends an ephemeral error message
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ Error: %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// respondText sends a plain ephemeral confirmation
func respondText(s *discordgo.Session, i *discordgo.InteractionCreate, message string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// respondEmbed sends a public embed response
func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// Option lookup helpers. Interactions nest options one level per subcommand,
// so handlers pass the slice they are working at.

func optValue(options []*discordgo.ApplicationCommandInteractionDataOption, name string) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range options {
		if opt.Name == name {
			return opt
		}
	}
	return nil
}

func optString(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt := optValue(options, name); opt != nil {
		return opt.StringValue()
	}
	return ""
}

func optInt(options []*discordgo.ApplicationCommandInteractionDataOption, name string) int64 {
	if opt := optValue(options, name); opt != nil {
		return opt.IntValue()
	}
	return 0
}

func optBool(options []*discordgo.ApplicationCommandInteractionDataOption, name string) bool {
	if opt := optValue(options, name); opt != nil {
		return opt.BoolValue()
	}
	return false
}

func optUserID(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt := optValue(options, name); opt != nil {
		if v, ok := opt.Value.(string); ok {
			return v
		}
	}
	return ""
}

func optRoleID(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	return optUserID(options, name)
}

func optChannelID(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	return optUserID(options, name)
}

// parseUserDuration parses moderator-facing durations like "30s", "10m",
// "1h", "7d".
func parseUserDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil || days <= 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

func formatUserDuration(d time.Duration) string {
	if d >= 24*time.Hour && d%(24*time.Hour) == 0 {
		return fmt.Sprintf("%dd", int(d.Hours())/24)
	}
	return d.String()
}
