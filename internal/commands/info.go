package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"go-modguard/internal/bot"
)

func handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	embed := &discordgo.MessageEmbed{
		Title: "📖 Command overview",
		Color: colorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "🛡️ Protection",
				Value: "`/secur set` `/secur punishment` `/secur sensitivity`\n" +
					"`/secur whitelist` `/secur creation_limit` `/secur logs`\n" +
					"`/secur prison` `/secur support`",
			},
			{
				Name: "🔨 Moderation",
				Value: "`/kick` `/ban` `/unban` `/timeout` `/untimeout` `/warn`\n" +
					"`/prison` `/unprison` `/role add|remove|temprole`\n" +
					"`/sanctions list|delete`",
			},
			{
				Name:  "🔑 Permissions",
				Value: "`/permissions grant|revoke|set_limit|view`",
			},
			{
				Name: "ℹ️ Everyone",
				Value: "`/help` `/pic` `/banner` `/snipe` `/serverinfo`\n" +
					"`/userinfo` `/channelinfo`",
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Roles need a grant for non-public commands; 'admin' grants everything.",
		},
	}
	return respondEmbed(s, i, embed)
}

func handleSnipe(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	msg, ok := bot.LastDeleted(i.ChannelID)
	if !ok {
		return respondText(s, i, "Nothing to snipe in this channel.")
	}

	embed := &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{
			Name: msg.AuthorName,
		},
		Description: msg.Content,
		Color:       colorBlue,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Deleted",
		},
		Timestamp: msg.DeletedAt.Format(time.RFC3339),
	}
	return respondEmbed(s, i, embed)
}

// targetUser resolves the optional user option, defaulting to the invoker.
func targetUser(s *discordgo.Session, i *discordgo.InteractionCreate) (*discordgo.User, error) {
	data := i.ApplicationCommandData()
	if userID := optUserID(data.Options, "user"); userID != "" {
		return s.User(userID)
	}
	if i.Member != nil {
		return i.Member.User, nil
	}
	return i.User, nil
}

func handlePic(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	user, err := targetUser(s, i)
	if err != nil {
		return err
	}
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s's avatar", user.Username),
		Color: colorBlue,
		Image: &discordgo.MessageEmbedImage{URL: user.AvatarURL("1024")},
	}
	return respondEmbed(s, i, embed)
}

func handleBanner(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	user, err := targetUser(s, i)
	if err != nil {
		return err
	}
	// Banners are only present on a full user fetch.
	full, err := s.User(user.ID)
	if err != nil {
		return err
	}
	if full.Banner == "" {
		return respondText(s, i, fmt.Sprintf("%s has no banner.", full.Username))
	}
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s's banner", full.Username),
		Color: colorBlue,
		Image: &discordgo.MessageEmbedImage{URL: full.BannerURL("1024")},
	}
	return respondEmbed(s, i, embed)
}

func handleServerInfo(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	guild, err := s.State.Guild(i.GuildID)
	if err != nil {
		guild, err = s.Guild(i.GuildID)
		if err != nil {
			return err
		}
	}

	created, _ := discordgo.SnowflakeTimestamp(guild.ID)
	embed := &discordgo.MessageEmbed{
		Title: guild.Name,
		Color: colorBlue,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: guild.IconURL("256"),
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Owner", Value: fmt.Sprintf("<@%s>", guild.OwnerID), Inline: true},
			{Name: "Members", Value: fmt.Sprintf("%d", guild.MemberCount), Inline: true},
			{Name: "Roles", Value: fmt.Sprintf("%d", len(guild.Roles)), Inline: true},
			{Name: "Channels", Value: fmt.Sprintf("%d", len(guild.Channels)), Inline: true},
			{Name: "Boosts", Value: fmt.Sprintf("%d", guild.PremiumSubscriptionCount), Inline: true},
			{Name: "Created", Value: fmt.Sprintf("<t:%d:F>", created.Unix()), Inline: true},
		},
	}
	return respondEmbed(s, i, embed)
}

func handleUserInfo(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	user, err := targetUser(s, i)
	if err != nil {
		return err
	}

	created, _ := discordgo.SnowflakeTimestamp(user.ID)
	fields := []*discordgo.MessageEmbedField{
		{Name: "ID", Value: fmt.Sprintf("`%s`", user.ID), Inline: true},
		{Name: "Bot", Value: fmt.Sprintf("%t", user.Bot), Inline: true},
		{Name: "Created", Value: fmt.Sprintf("<t:%d:F>", created.Unix()), Inline: true},
	}

	if member, err := s.State.Member(i.GuildID, user.ID); err == nil {
		if !member.JoinedAt.IsZero() {
			fields = append(fields, &discordgo.MessageEmbedField{
				Name: "Joined", Value: fmt.Sprintf("<t:%d:F>", member.JoinedAt.Unix()), Inline: true,
			})
		}
		if len(member.Roles) > 0 {
			mentions := make([]string, 0, len(member.Roles))
			for _, roleID := range member.Roles {
				mentions = append(mentions, fmt.Sprintf("<@&%s>", roleID))
			}
			fields = append(fields, &discordgo.MessageEmbedField{
				Name: "Roles", Value: strings.Join(mentions, " "),
			})
		}
	}

	embed := &discordgo.MessageEmbed{
		Title: user.Username,
		Color: colorBlue,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: user.AvatarURL("256"),
		},
		Fields: fields,
	}
	return respondEmbed(s, i, embed)
}

func handleChannelInfo(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	channel, err := s.Channel(i.ChannelID)
	if err != nil {
		return err
	}

	created, _ := discordgo.SnowflakeTimestamp(channel.ID)
	embed := &discordgo.MessageEmbed{
		Title: "#" + channel.Name,
		Color: colorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ID", Value: fmt.Sprintf("`%s`", channel.ID), Inline: true},
			{Name: "Type", Value: fmt.Sprintf("%d", channel.Type), Inline: true},
			{Name: "NSFW", Value: fmt.Sprintf("%t", channel.NSFW), Inline: true},
			{Name: "Created", Value: fmt.Sprintf("<t:%d:F>", created.Unix()), Inline: true},
		},
	}
	if channel.Topic != "" {
		embed.Description = channel.Topic
	}
	return respondEmbed(s, i, embed)
}
