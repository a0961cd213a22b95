package blackjack

import (
	"sync"
	"time"

	"cantina/blackjack"
	"cantina/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// table binds one live game to the interaction that created it. Only the
// owning user may act on it, and only through the message it was dealt on.
type table struct {
	userID      int64
	game        *blackjack.Game
	interaction *discordgo.Interaction
	messageID   string
	timer       *time.Timer

	mu          sync.Mutex // serializes actions on this table
	closed      bool
	finalStatus blackjack.Status // frozen by close for the final render
}

// close marks the table dead, stops its timer and freezes the game status.
// An action already holding mu finishes first; any action locking after
// close sees the closed flag and is rejected, so finalStatus never changes
// once set.
func (t *table) close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.closed = true
	t.timer.Stop()
	t.finalStatus = t.game.Status
}

// openTable registers a table for the user, closing and returning any
// table it replaced. The replaced table is closed without settlement;
// rendering its final message state is the caller's job.
func (f *Feature) openTable(s *discordgo.Session, t *table) *table {
	t.timer = time.AfterFunc(f.config.Timeout, func() {
		f.expireTable(s, t)
	})

	f.mu.Lock()
	old := f.tables[t.userID]
	f.tables[t.userID] = t
	f.mu.Unlock()

	if old != nil {
		old.close()
	}
	return old
}

// lookupTable returns the user's table if the interaction targets its
// current message
func (f *Feature) lookupTable(userID int64, messageID string) *table {
	f.mu.Lock()
	defer f.mu.Unlock()

	t := f.tables[userID]
	if t == nil || t.messageID != messageID {
		return nil
	}
	return t
}

// touchTable restarts the idle timer after a player action. Reports false
// when the timer already fired, in which case the table is gone and the
// action loses the race.
func (f *Feature) touchTable(t *table) bool {
	if !t.timer.Stop() {
		return false
	}
	t.timer.Reset(f.config.Timeout)
	return true
}

// removeTable unregisters the table if it is still the user's current one
func (f *Feature) removeTable(t *table) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.tables[t.userID] != t {
		return false
	}
	delete(f.tables, t.userID)
	return true
}

// expireTable closes an idle table. The round is abandoned, not settled:
// the ledger is never touched on timeout.
func (f *Feature) expireTable(s *discordgo.Session, t *table) {
	if !f.removeTable(t) {
		return
	}

	t.close()

	log.WithFields(log.Fields{
		"userID":    t.userID,
		"messageID": t.messageID,
	}).Info("Blackjack table expired")

	f.disableMessage(s, t)
}

// disableMessage greys out every button on a closed table's message
func (f *Feature) disableMessage(s *discordgo.Session, t *table) {
	components := common.DisableComponents(buildComponents(t.finalStatus))
	_, err := s.InteractionResponseEdit(t.interaction, &discordgo.WebhookEdit{
		Components: &components,
	})
	if err != nil {
		log.Errorf("Error disabling blackjack message %s: %v", t.messageID, err)
	}
}
