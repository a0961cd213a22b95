package balance

import (
	"context"
	"fmt"
	"strconv"

	"cantina/bot/common"
	"cantina/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const embedColorBlurple = 0x5865F2

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	user, err := f.userService.GetUser(ctx, discordID)
	if err != nil {
		log.Errorf("Error getting user %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to retrieve balance. Please try again.")
		return
	}

	balanceRank, err := f.userService.Rank(ctx, discordID, models.MetricBalance)
	if err != nil {
		log.Errorf("Error getting balance rank for user %d: %v", discordID, err)
		balanceRank = 0
	}

	experienceRank, err := f.userService.Rank(ctx, discordID, models.MetricExperience)
	if err != nil {
		log.Errorf("Error getting experience rank for user %d: %v", discordID, err)
		experienceRank = 0
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("💰 %s's Balance", i.Member.User.Username),
		Color: embedColorBlurple,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Coins", Value: common.FormatBalance(user.Balance), Inline: true},
			{Name: "Level", Value: fmt.Sprintf("%d", user.Level), Inline: true},
			{Name: "XP", Value: common.FormatBalance(user.Experience), Inline: true},
		},
	}

	if balanceRank > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Rank", Value: fmt.Sprintf("#%d by coins", balanceRank), Inline: true,
		})
	}
	if experienceRank > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "XP Rank", Value: fmt.Sprintf("#%d by XP", experienceRank), Inline: true,
		})
	}

	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to balance command: %v", err)
	}
}
