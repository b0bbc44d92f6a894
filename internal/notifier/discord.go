package notifier

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"go-modguard/internal/logging"
)

var discordSession *discordgo.Session

// SetSession sets the Discord session used for log emission.
func SetSession(session *discordgo.Session) {
	discordSession = session
}

// SendRaidAlert posts a raid-detection embed to the configured raid log
// channel. Best effort: failures are logged, never propagated.
func SendRaidAlert(channelID, category, actorID, punishment, reason string, pingRoleID string) {
	if discordSession == nil || channelID == "" {
		return
	}

	content := ""
	if pingRoleID != "" {
		content = fmt.Sprintf("<@&%s>", pingRoleID)
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🚨 Raid protection triggered (%s)", category),
		Color:       0xED4245,
		Description: fmt.Sprintf("**Punishment:** %s\n**Reason:** %s", punishment, reason),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "👤 Actor",
				Value:  fmt.Sprintf("<@%s> (`%s`)", actorID, actorID),
				Inline: true,
			},
			{
				Name:   "🕐 Timestamp",
				Value:  fmt.Sprintf("<t:%d:F>", time.Now().Unix()),
				Inline: true,
			},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	go func() {
		_, err := discordSession.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
			Content: content,
			Embed:   embed,
		})
		if err != nil {
			logging.Warn("[NOTIFY] raid alert send failed for channel %s: %v", channelID, err)
		}
	}()
}

// SendModLog posts a moderation-action embed to the configured mod log
// channel.
func SendModLog(channelID, title string, color int, userID, moderatorID, reason, duration string) {
	if discordSession == nil || channelID == "" {
		return
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Member", Value: fmt.Sprintf("<@%s> (`%s`)", userID, userID)},
		{Name: "Moderator", Value: fmt.Sprintf("<@%s>", moderatorID)},
		{Name: "Reason", Value: reason},
	}
	if duration != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Duration", Value: duration})
	}

	embed := &discordgo.MessageEmbed{
		Title:     title,
		Color:     color,
		Fields:    fields,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	go func() {
		if _, err := discordSession.ChannelMessageSendEmbed(channelID, embed); err != nil {
			logging.Warn("[NOTIFY] mod log send failed for channel %s: %v", channelID, err)
		}
	}()
}
