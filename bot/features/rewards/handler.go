package rewards

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"cantina/bot/common"
	"cantina/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const (
	embedColorGold  = 0xF1C40F
	embedColorGreen = 0x2ECC71
)

func (f *Feature) handleClaim(s *discordgo.Session, i *discordgo.InteractionCreate, kind service.RewardKind) {
	ctx := context.Background()

	discordID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	user, reward, err := f.rewardService.Claim(ctx, discordID, kind)
	if err != nil {
		var cooldownErr *service.CooldownError
		if errors.As(err, &cooldownErr) {
			f.respondOnCooldown(s, i, cooldownErr)
			return
		}
		log.Errorf("Error claiming %s reward for user %d: %v", kind, discordID, err)
		common.RespondWithError(s, i, "Unable to claim your reward. Please try again.")
		return
	}

	granted := fmt.Sprintf("You received **%s coins** and **%s XP**.",
		common.FormatBalance(reward.Coins), common.FormatBalance(reward.Experience))

	var embed *discordgo.MessageEmbed
	switch kind {
	case service.RewardWeekly:
		embed = &discordgo.MessageEmbed{
			Title:       "🏆 Weekly Reward Claimed!",
			Description: granted,
			Color:       embedColorGreen,
		}
	default:
		embed = &discordgo.MessageEmbed{
			Title:       "✅ Daily Reward Claimed!",
			Description: granted,
			Color:       embedColorGold,
		}
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "New Balance", Value: common.FormatBalance(user.Balance) + " coins", Inline: true},
		{Name: "Level", Value: fmt.Sprintf("%d", user.Level), Inline: true},
		{Name: "XP", Value: common.FormatBalance(user.Experience), Inline: true},
	}

	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to %s command: %v", kind, err)
	}
}

func (f *Feature) respondOnCooldown(s *discordgo.Session, i *discordgo.InteractionCreate, cooldownErr *service.CooldownError) {
	readyAt := time.Now().Add(cooldownErr.Remaining)
	message := fmt.Sprintf("⏳ You can claim your %s reward in %s (%s).",
		cooldownErr.Reward, common.FormatCooldown(cooldownErr.Remaining),
		common.FormatDiscordTimestamp(readyAt, "R"))

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
		},
	})
	if err != nil {
		log.Errorf("Error responding with cooldown message: %v", err)
	}
}
