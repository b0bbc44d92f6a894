package commands

import "github.com/bwmarrin/discordgo"

func categoryChoices() []*discordgo.ApplicationCommandOptionChoice {
	names := []string{
		"antiban", "antichannel", "antirole", "antiwebhook", "antiunban",
		"antibot", "antieveryone", "antideco", "antiupdate",
	}
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(names))
	for _, name := range names {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name})
	}
	return choices
}

func punishmentChoices() []*discordgo.ApplicationCommandOptionChoice {
	return []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Ban", Value: "ban"},
		{Name: "Kick", Value: "kick"},
		{Name: "Derank", Value: "derank"},
	}
}

// GetAllCommands returns all application commands
func GetAllCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "permissions",
			Description: "Manage role command permissions",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "grant",
					Description: "Grant a command to a role ('admin' grants everything)",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "role", Description: "Role to grant to", Type: discordgo.ApplicationCommandOptionRole, Required: true},
						{Name: "command", Description: "Command name or 'admin'", Type: discordgo.ApplicationCommandOptionString, Required: true},
					},
				},
				{
					Name:        "revoke",
					Description: "Revoke a command from a role",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "role", Description: "Role to revoke from", Type: discordgo.ApplicationCommandOptionRole, Required: true},
						{Name: "command", Description: "Command name", Type: discordgo.ApplicationCommandOptionString, Required: true},
					},
				},
				{
					Name:        "set_limit",
					Description: "Attach a numeric ceiling to an existing grant",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "role", Description: "Role the grant belongs to", Type: discordgo.ApplicationCommandOptionRole, Required: true},
						{Name: "command", Description: "Granted command", Type: discordgo.ApplicationCommandOptionString, Required: true},
						{
							Name: "type", Description: "Ceiling type", Type: discordgo.ApplicationCommandOptionString, Required: true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "Max duration (seconds)", Value: "max_duration"},
								{Name: "Max amount", Value: "max_amount"},
							},
						},
						{Name: "value", Description: "Ceiling value", Type: discordgo.ApplicationCommandOptionInteger, Required: true},
					},
				},
				{
					Name:        "view",
					Description: "View a role's grants and ceilings",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "role", Description: "Role to inspect", Type: discordgo.ApplicationCommandOptionRole, Required: true},
					},
				},
			},
		},
		{
			Name:        "secur",
			Description: "Configure raid protection",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "set",
					Description: "Enable or disable protection",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "enabled", Description: "On or off", Type: discordgo.ApplicationCommandOptionBoolean, Required: true},
						{
							Name: "category", Description: "Single category (omit for all)",
							Type: discordgo.ApplicationCommandOptionString, Required: false, Choices: categoryChoices(),
						},
					},
				},
				{
					Name:        "punishment",
					Description: "Set the punishment for a category",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "category", Description: "Category", Type: discordgo.ApplicationCommandOptionString, Required: true, Choices: categoryChoices()},
						{Name: "punishment", Description: "Punishment type", Type: discordgo.ApplicationCommandOptionString, Required: true, Choices: punishmentChoices()},
					},
				},
				{
					Name:        "sensitivity",
					Description: "Set the rate threshold for a category",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "category", Description: "Category", Type: discordgo.ApplicationCommandOptionString, Required: true, Choices: categoryChoices()},
						{Name: "limit", Description: "Max actions allowed", Type: discordgo.ApplicationCommandOptionInteger, Required: true},
						{Name: "seconds", Description: "Window in seconds", Type: discordgo.ApplicationCommandOptionInteger, Required: true},
					},
				},
				{
					Name:        "whitelist",
					Description: "Manage the raid-immunity whitelist",
					Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "add",
							Description: "Whitelist a user",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Options: []*discordgo.ApplicationCommandOption{
								{Name: "user", Description: "User to whitelist", Type: discordgo.ApplicationCommandOptionUser, Required: true},
							},
						},
						{
							Name:        "remove",
							Description: "Remove a user from the whitelist",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Options: []*discordgo.ApplicationCommandOption{
								{Name: "user", Description: "User to remove", Type: discordgo.ApplicationCommandOptionUser, Required: true},
							},
						},
						{
							Name:        "view",
							Description: "View all whitelisted users",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
						},
					},
				},
				{
					Name:        "creation_limit",
					Description: "Kick joining accounts younger than this age",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "seconds", Description: "Minimum account age in seconds (0 disables)", Type: discordgo.ApplicationCommandOptionInteger, Required: true},
					},
				},
				{
					Name:        "logs",
					Description: "Set a log channel",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name: "kind", Description: "Which log", Type: discordgo.ApplicationCommandOptionString, Required: true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "Moderation log", Value: "modlog"},
								{Name: "Raid log", Value: "raidlog"},
							},
						},
						{Name: "channel", Description: "Channel to send logs to", Type: discordgo.ApplicationCommandOptionChannel, Required: true},
					},
				},
				{
					Name:        "prison",
					Description: "Set the prison role and channel",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "role", Description: "Prison role", Type: discordgo.ApplicationCommandOptionRole, Required: true},
						{Name: "channel", Description: "Prison channel", Type: discordgo.ApplicationCommandOptionChannel, Required: true},
					},
				},
				{
					Name:        "support",
					Description: "Grant a role to members advertising the server in their status",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "role", Description: "Support role", Type: discordgo.ApplicationCommandOptionRole, Required: true},
						{Name: "text", Description: "Status text to look for", Type: discordgo.ApplicationCommandOptionString, Required: true},
					},
				},
			},
		},
		{
			Name:        "kick",
			Description: "Kick a member",
			Options: []*discordgo.ApplicationCommandOption{
				{Name: "user", Description: "Member to kick", Type: discordgo.ApplicationCommandOptionUser, Required: true},
				{Name: "reason", Description: "Reason", Type: discordgo.ApplicationCommandOptionString, Required: false},
			},
		},
		{
			Name:        "ban",
			Description: "Ban a member, optionally for a limited time",
			Options: []*discordgo.ApplicationCommandOption{
				{Name: "user", Description: "Member to ban", Type: discordgo.ApplicationCommandOptionUser, Required: true},
				{Name: "duration", Description: "Duration like 1h, 7d (omit for permanent)", Type: discordgo.ApplicationCommandOptionString, Required: false},
				{Name: "reason", Description: "Reason", Type: discordgo.ApplicationCommandOptionString, Required: false},
			},
		},
		{
			Name:        "unban",
			Description: "Unban a user by ID",
			Options: []*discordgo.ApplicationCommandOption{
				{Name: "user_id", Description: "User ID to unban", Type: discordgo.ApplicationCommandOptionString, Required: true},
			},
		},
		{
			Name:        "timeout",
			Description: "Time a member out",
			Options: []*discordgo.ApplicationCommandOption{
				{Name: "user", Description: "Member to time out", Type: discordgo.ApplicationCommandOptionUser, Required: true},
				{Name: "duration", Description: "Duration like 10m, 1h", Type: discordgo.ApplicationCommandOptionString, Required: true},
				{Name: "reason", Description: "Reason", Type: discordgo.ApplicationCommandOptionString, Required: false},
			},
		},
		{
			Name:        "untimeout",
			Description: "Lift a member's timeout",
			Options: []*discordgo.ApplicationCommandOption{
				{Name: "user", Description: "Member to release", Type: discordgo.ApplicationCommandOptionUser, Required: true},
			},
		},
		{
			Name:        "warn",
			Description: "Warn a member",
			Options: []*discordgo.ApplicationCommandOption{
				{Name: "user", Description: "Member to warn", Type: discordgo.ApplicationCommandOptionUser, Required: true},
				{Name: "reason", Description: "Reason", Type: discordgo.ApplicationCommandOptionString, Required: true},
			},
		},
		{
			Name:        "prison",
			Description: "Imprison a member (roles are stashed and restored on release)",
			Options: []*discordgo.ApplicationCommandOption{
				{Name: "user", Description: "Member to imprison", Type: discordgo.ApplicationCommandOptionUser, Required: true},
				{Name: "duration", Description: "Duration like 1h, 7d (omit for indefinite)", Type: discordgo.ApplicationCommandOptionString, Required: false},
				{Name: "reason", Description: "Reason", Type: discordgo.ApplicationCommandOptionString, Required: false},
			},
		},
		{
			Name:        "unprison",
			Description: "Release a member from prison",
			Options: []*discordgo.ApplicationCommandOption{
				{Name: "user", Description: "Member to release", Type: discordgo.ApplicationCommandOptionUser, Required: true},
			},
		},
		{
			Name:        "role",
			Description: "Manage member roles",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "add",
					Description: "Add a role to a member",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "user", Description: "Member", Type: discordgo.ApplicationCommandOptionUser, Required: true},
						{Name: "role", Description: "Role to add", Type: discordgo.ApplicationCommandOptionRole, Required: true},
					},
				},
				{
					Name:        "remove",
					Description: "Remove a role from a member",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "user", Description: "Member", Type: discordgo.ApplicationCommandOptionUser, Required: true},
						{Name: "role", Description: "Role to remove", Type: discordgo.ApplicationCommandOptionRole, Required: true},
					},
				},
				{
					Name:        "temprole",
					Description: "Add a role that expires after a duration",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "user", Description: "Member", Type: discordgo.ApplicationCommandOptionUser, Required: true},
						{Name: "role", Description: "Role to add", Type: discordgo.ApplicationCommandOptionRole, Required: true},
						{Name: "duration", Description: "Duration like 1h, 7d", Type: discordgo.ApplicationCommandOptionString, Required: true},
					},
				},
			},
		},
		{
			Name:        "sanctions",
			Description: "Inspect sanction history",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "list",
					Description: "List a member's sanctions",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "user", Description: "Member", Type: discordgo.ApplicationCommandOptionUser, Required: true},
					},
				},
				{
					Name:        "delete",
					Description: "Delete a sanction record by ID",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "id", Description: "Sanction ID", Type: discordgo.ApplicationCommandOptionInteger, Required: true},
					},
				},
			},
		},
		{
			Name:        "welcome",
			Description: "Configure join/leave messages and autorole",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "set",
					Description: "Set the welcome channel and message",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "channel", Description: "Welcome channel", Type: discordgo.ApplicationCommandOptionChannel, Required: true},
						{Name: "message", Description: "Message ({user}, {username} substituted)", Type: discordgo.ApplicationCommandOptionString, Required: true},
					},
				},
				{
					Name:        "leave",
					Description: "Set the leave channel and message",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "channel", Description: "Leave channel", Type: discordgo.ApplicationCommandOptionChannel, Required: true},
						{Name: "message", Description: "Message ({user}, {username} substituted)", Type: discordgo.ApplicationCommandOptionString, Required: true},
					},
				},
				{
					Name:        "autorole",
					Description: "Role given to every new member",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "role", Description: "Role to assign", Type: discordgo.ApplicationCommandOptionRole, Required: true},
					},
				},
			},
		},
		{
			Name:        "owner",
			Description: "Manage the bot's co-owners (bot owners only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "add",
					Description: "Add a co-owner",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "user", Description: "User to add", Type: discordgo.ApplicationCommandOptionUser, Required: true},
					},
				},
				{
					Name:        "remove",
					Description: "Remove a co-owner",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "user", Description: "User to remove", Type: discordgo.ApplicationCommandOptionUser, Required: true},
					},
				},
				{
					Name:        "list",
					Description: "List the bot's owners",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
			},
		},
		{
			Name:        "blacklist",
			Description: "Manage the global blacklist (bot owners only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "add",
					Description: "Bar a user from every command",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "user_id", Description: "User ID to blacklist", Type: discordgo.ApplicationCommandOptionString, Required: true},
						{Name: "reason", Description: "Reason", Type: discordgo.ApplicationCommandOptionString, Required: true},
					},
				},
				{
					Name:        "remove",
					Description: "Remove a user from the blacklist",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "user_id", Description: "User ID to remove", Type: discordgo.ApplicationCommandOptionString, Required: true},
					},
				},
			},
		},
		{
			Name:        "help",
			Description: "Show available commands",
		},
		{
			Name:        "ping",
			Description: "Check Discord API latency and connection quality",
		},
		{
			Name:        "status",
			Description: "Show protection status for this server",
		},
		{
			Name:        "stats",
			Description: "Show host and runtime statistics",
		},
		{
			Name:        "snipe",
			Description: "Show the last deleted message in this channel",
		},
		{
			Name:        "pic",
			Description: "Show a user's avatar",
			Options: []*discordgo.ApplicationCommandOption{
				{Name: "user", Description: "User (defaults to you)", Type: discordgo.ApplicationCommandOptionUser, Required: false},
			},
		},
		{
			Name:        "banner",
			Description: "Show a user's banner",
			Options: []*discordgo.ApplicationCommandOption{
				{Name: "user", Description: "User (defaults to you)", Type: discordgo.ApplicationCommandOptionUser, Required: false},
			},
		},
		{
			Name:        "serverinfo",
			Description: "Show information about this server",
		},
		{
			Name:        "userinfo",
			Description: "Show information about a user",
			Options: []*discordgo.ApplicationCommandOption{
				{Name: "user", Description: "User (defaults to you)", Type: discordgo.ApplicationCommandOptionUser, Required: false},
			},
		},
		{
			Name:        "channelinfo",
			Description: "Show information about this channel",
		},
	}
}
