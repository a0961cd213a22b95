package rewards

import (
	"cantina/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	rewardService service.RewardService
}

func New(rewardService service.RewardService) *Feature {
	return &Feature{
		rewardService: rewardService,
	}
}

// HandleDaily handles the /daily slash command
func (f *Feature) HandleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleClaim(s, i, service.RewardDaily)
}

// HandleWeekly handles the /weekly slash command
func (f *Feature) HandleWeekly(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleClaim(s, i, service.RewardWeekly)
}
