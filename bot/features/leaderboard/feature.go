package leaderboard

import (
	"cantina/models"
	"cantina/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	userService service.UserService
}

func New(userService service.UserService) *Feature {
	return &Feature{
		userService: userService,
	}
}

// HandleBalanceTop handles the /baltop slash command
func (f *Feature) HandleBalanceTop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleLeaderboard(s, i, models.MetricBalance)
}

// HandleExperienceTop handles the /xptop slash command
func (f *Feature) HandleExperienceTop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleLeaderboard(s, i, models.MetricExperience)
}
