package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// registerCommands registers all slash commands with Discord. When a guild
// ID is configured the commands are scoped to it, which makes them appear
// immediately instead of waiting on global propagation.
func (b *Bot) registerCommands() error {
	var minLimit, minOffset float64 = 1, 0

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "blackjack",
			Description: "Play a hand of blackjack against the dealer",
		},
		{
			Name:        "balance",
			Description: "Check your coin balance, level and rank",
		},
		{
			Name:        "daily",
			Description: "Claim your daily coin and XP reward",
		},
		{
			Name:        "weekly",
			Description: "Claim your weekly coin and XP reward",
		},
		{
			Name:        "baltop",
			Description: "Show the richest players",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "limit",
					Description: "Number of players to show (max 25)",
					Required:    false,
					MinValue:    &minLimit,
					MaxValue:    25,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "offset",
					Description: "Number of players to skip",
					Required:    false,
					MinValue:    &minOffset,
				},
			},
		},
		{
			Name:        "xptop",
			Description: "Show the most experienced players",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "limit",
					Description: "Number of players to show (max 25)",
					Required:    false,
					MinValue:    &minLimit,
					MaxValue:    25,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "offset",
					Description: "Number of players to skip",
					Required:    false,
					MinValue:    &minOffset,
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
