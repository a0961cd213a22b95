package blackjack

import (
	"fmt"

	"cantina/blackjack"
	"cantina/bot/common"

	"github.com/bwmarrin/discordgo"
)

const embedColorGold = 0xB8860B

// buildEmbed renders the table. The dealer's hole card stays hidden until
// the round settles.
func buildEmbed(game *blackjack.Game, balance int64, footer string) *discordgo.MessageEmbed {
	revealDealer := game.Status != blackjack.StatusInProgress

	dealerValue := fmt.Sprintf("%s ❓", game.Dealer[0])
	if revealDealer {
		dealerValue = fmt.Sprintf("%s\n**Value:** %d", game.Dealer, game.Dealer.Value())
	}

	embed := &discordgo.MessageEmbed{
		Title: "🎰 Blackjack",
		Color: embedColorGold,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "💰 Balance",
				Value: common.FormatBalance(balance),
			},
			{
				Name:  "🧑 You",
				Value: fmt.Sprintf("%s\n**Value:** %d", game.Player, game.Player.Value()),
			},
			{
				Name:  "🤖 Dealer",
				Value: dealerValue,
			},
		},
	}

	if footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: footer}
	}

	return embed
}

// resultText is the footer shown when a round settles
func resultText(outcome blackjack.Outcome, doubled bool) string {
	switch outcome {
	case blackjack.OutcomePlayerBust:
		if doubled {
			return "💥 You busted on double!"
		}
		return "💥 You busted!"
	case blackjack.OutcomePlayerWin:
		if doubled {
			return "🎉 You win (double)!"
		}
		return "🎉 You win!"
	case blackjack.OutcomeDealerWin:
		return "😞 Dealer wins."
	default:
		return "🤝 Push."
	}
}
