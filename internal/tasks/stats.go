package tasks

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"go-modguard/internal/config"
	"go-modguard/internal/logging"
)

// RefreshStatChannels renames the configured counter channels with current
// guild figures. Rename failures are per-channel and never abort the pass;
// Discord rate limits channel renames hard, hence the long cadence.
func RefreshStatChannels(session *discordgo.Session, stats map[string]config.StatsChannels) {
	if session == nil {
		return
	}

	for guildID, channels := range stats {
		guild, err := session.State.Guild(guildID)
		if err != nil {
			guild, err = session.Guild(guildID)
			if err != nil {
				logging.Warn("[STATS] guild %s unavailable: %v", guildID, err)
				continue
			}
		}

		rename(session, channels.Members, fmt.Sprintf("Members: %d", guild.MemberCount))
		rename(session, channels.Online, fmt.Sprintf("Online: %d", countOnline(guild)))
		rename(session, channels.Voice, fmt.Sprintf("In Voice: %d", len(guild.VoiceStates)))
		rename(session, channels.Boosts, fmt.Sprintf("Boosts: %d", guild.PremiumSubscriptionCount))
	}
}

func rename(session *discordgo.Session, channelID, name string) {
	if channelID == "" {
		return
	}
	if _, err := session.ChannelEdit(channelID, &discordgo.ChannelEdit{Name: name}); err != nil {
		logging.Warn("[STATS] rename of channel %s failed: %v", channelID, err)
	}
}

func countOnline(guild *discordgo.Guild) int {
	online := 0
	for _, presence := range guild.Presences {
		if presence.Status != discordgo.StatusOffline && presence.Status != discordgo.StatusInvisible {
			online++
		}
	}
	return online
}
