package bot

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	gameengine "cantina/blackjack"
	"cantina/bot/common"
	"cantina/bot/features/balance"
	"cantina/bot/features/blackjack"
	"cantina/bot/features/leaderboard"
	"cantina/bot/features/rewards"
	"cantina/events"
	"cantina/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token            string
	GuildID          string
	BlackjackStake   int64
	BlackjackTimeout time.Duration
}

type Bot struct {
	config      Config
	session     *discordgo.Session
	userService service.UserService
	eventBus    *events.Bus

	balanceFeature     *balance.Feature
	blackjackFeature   *blackjack.Feature
	rewardsFeature     *rewards.Feature
	leaderboardFeature *leaderboard.Feature
}

func New(config Config, userService service.UserService, rewardService service.RewardService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	newDeck := func() gameengine.CardSource {
		return gameengine.NewDeck(rand.NewSource(time.Now().UnixNano()))
	}

	bot := &Bot{
		config:      config,
		session:     dg,
		userService: userService,
		eventBus:    eventBus,

		balanceFeature: balance.New(userService),
		blackjackFeature: blackjack.New(userService, blackjack.Config{
			Stake:   config.BlackjackStake,
			Timeout: config.BlackjackTimeout,
		}, newDeck),
		rewardsFeature:     rewards.New(rewardService),
		leaderboardFeature: leaderboard.New(userService),
	}

	// Register slash command and component handlers
	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleComponents)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Surface level-ups in the logs for operators
	eventBus.Subscribe(events.EventTypeLevelUp, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.LevelUpEvent); ok {
			log.WithFields(log.Fields{
				"userID":   e.DiscordID,
				"oldLevel": e.OldLevel,
				"newLevel": e.NewLevel,
			}).Info("User leveled up")
		}
	})

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// handleCommands routes slash commands. Every command touches the ledger,
// so the invoking user's record is ensured once here rather than in each
// handler.
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	if !b.ensureUser(s, i) {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "blackjack":
		b.blackjackFeature.HandleCommand(s, i)
	case "balance":
		b.balanceFeature.HandleCommand(s, i)
	case "daily":
		b.rewardsFeature.HandleDaily(s, i)
	case "weekly":
		b.rewardsFeature.HandleWeekly(s, i)
	case "baltop":
		b.leaderboardFeature.HandleBalanceTop(s, i)
	case "xptop":
		b.leaderboardFeature.HandleExperienceTop(s, i)
	}
}

// handleComponents routes button presses to the feature owning them
func (b *Bot) handleComponents(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	b.blackjackFeature.HandleComponent(s, i)
}

// ensureUser lazily creates the invoking user's economy record. Reports
// false when the interaction cannot be attributed to a guild member.
func (b *Bot) ensureUser(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if i.Member == nil || i.Member.User == nil {
		common.RespondWithError(s, i, "Commands only work inside a server.")
		return false
	}

	discordID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return false
	}

	if _, err := b.userService.GetOrCreateUser(context.Background(), discordID); err != nil {
		log.Errorf("Error ensuring user %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return false
	}

	return true
}
