package blackjack

import (
	"strings"
	"sync"
	"time"

	"cantina/blackjack"
	"cantina/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds the blackjack table settings
type Config struct {
	Stake   int64         // Base stake settled per round; doubled on Double
	Timeout time.Duration // Idle time before a table is closed
}

// Feature owns the blackjack tables: one live game per user, bound to the
// interaction that spawned it.
type Feature struct {
	userService service.UserService
	config      Config
	newDeck     func() blackjack.CardSource

	mu     sync.Mutex
	tables map[int64]*table
}

// New creates the blackjack feature
func New(userService service.UserService, config Config, newDeck func() blackjack.CardSource) *Feature {
	return &Feature{
		userService: userService,
		config:      config,
		newDeck:     newDeck,
		tables:      make(map[int64]*table),
	}
}

// HandleCommand handles the /blackjack slash command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleStart(s, i)
}

// HandleComponent routes blackjack button presses
func (f *Feature) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	customID := i.MessageComponentData().CustomID
	if !strings.HasPrefix(customID, "blackjack_") {
		return false
	}

	f.handleAction(s, i, customID)
	return true
}
