package blackjack

import (
	"cantina/blackjack"

	"github.com/bwmarrin/discordgo"
)

// buildComponents returns the table's button row. During a round the game
// actions are live and Play Again is greyed out; once the round settles
// the actions flip.
func buildComponents(status blackjack.Status) []discordgo.MessageComponent {
	inProgress := status == blackjack.StatusInProgress

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Hit",
					Style:    discordgo.PrimaryButton,
					CustomID: "blackjack_hit",
					Emoji:    &discordgo.ComponentEmoji{Name: "🃏"},
					Disabled: !inProgress,
				},
				discordgo.Button{
					Label:    "Stand",
					Style:    discordgo.SecondaryButton,
					CustomID: "blackjack_stand",
					Emoji:    &discordgo.ComponentEmoji{Name: "✋"},
					Disabled: !inProgress,
				},
				discordgo.Button{
					Label:    "Double",
					Style:    discordgo.SuccessButton,
					CustomID: "blackjack_double",
					Emoji:    &discordgo.ComponentEmoji{Name: "⏫"},
					Disabled: !inProgress,
				},
				discordgo.Button{
					Label:    "Play Again",
					Style:    discordgo.PrimaryButton,
					CustomID: "blackjack_again",
					Emoji:    &discordgo.ComponentEmoji{Name: "🔄"},
					Disabled: inProgress,
				},
			},
		},
	}
}
