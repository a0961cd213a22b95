package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cantina/bot/common"
	"cantina/models"
	"cantina/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const (
	embedColorGold  = 0xF1C40F
	embedColorGreen = 0x2ECC71

	defaultLimit = 10
	maxLimit     = 25
)

func (f *Feature) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate, metric models.LeaderboardMetric) {
	ctx := context.Background()

	limit, offset := pageOptions(i)

	users, err := f.userService.Leaderboard(ctx, metric, limit, offset)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMetric) {
			common.RespondWithError(s, i, "Unknown leaderboard metric.")
			return
		}
		log.Errorf("Error fetching %s leaderboard: %v", metric, err)
		common.RespondWithError(s, i, "Unable to fetch the leaderboard. Please try again.")
		return
	}

	var description strings.Builder
	for pos, user := range users {
		switch metric {
		case models.MetricExperience:
			fmt.Fprintf(&description, "**%d.** <@%d> — %s XP (Level %d, %s coins)\n",
				offset+pos+1, user.DiscordID,
				common.FormatBalance(user.Experience), user.Level, common.FormatBalance(user.Balance))
		default:
			fmt.Fprintf(&description, "**%d.** <@%d> — %s coins (Level %d, %s XP)\n",
				offset+pos+1, user.DiscordID,
				common.FormatBalance(user.Balance), user.Level, common.FormatBalance(user.Experience))
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       "💰 Balance Leaderboard",
		Color:       embedColorGold,
		Description: description.String(),
	}
	if metric == models.MetricExperience {
		embed.Title = "🧩 Experience Leaderboard"
		embed.Color = embedColorGreen
	}
	if embed.Description == "" {
		embed.Description = "No users yet"
	}

	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to leaderboard command: %v", err)
	}
}

// pageOptions reads the optional limit and offset command options
func pageOptions(i *discordgo.InteractionCreate) (limit, offset int) {
	limit = defaultLimit
	offset = 0

	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "limit":
			limit = int(opt.IntValue())
		case "offset":
			offset = int(opt.IntValue())
		}
	}

	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
