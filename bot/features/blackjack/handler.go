package blackjack

import (
	"context"
	"strconv"

	"cantina/blackjack"
	"cantina/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// interactionUserID extracts the invoking guild member's ID. Reports false
// when the interaction carries no member or a malformed ID.
func interactionUserID(i *discordgo.InteractionCreate) (int64, bool) {
	if i.Member == nil || i.Member.User == nil {
		return 0, false
	}

	id, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		return 0, false
	}
	return id, true
}

// handleStart deals a fresh round for the invoking user and binds it to
// the response message
func (f *Feature) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, ok := interactionUserID(i)
	if !ok {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	user, err := f.userService.GetUser(ctx, discordID)
	if err != nil {
		log.Errorf("Error getting user %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to start a game. Please try again.")
		return
	}

	game := blackjack.NewGame(discordID, f.config.Stake, f.newDeck())

	embed := buildEmbed(game, user.Balance, "")
	if err := common.RespondWithEmbed(s, i, embed, buildComponents(game.Status), false); err != nil {
		log.Errorf("Error responding to blackjack command: %v", err)
		return
	}

	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		log.Errorf("Error fetching blackjack response message: %v", err)
		return
	}

	if old := f.openTable(s, &table{
		userID:      discordID,
		game:        game,
		interaction: i.Interaction,
		messageID:   msg.ID,
	}); old != nil {
		f.disableMessage(s, old)
	}
}

// handleAction applies a button press to the presser's own live table
func (f *Feature) handleAction(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	discordID, ok := interactionUserID(i)
	if !ok {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	tbl := f.lookupTable(discordID, i.Message.ID)
	if tbl == nil {
		common.RespondWithError(s, i, "This isn't your blackjack table, or it has expired.")
		return
	}

	// The idle timer races this action; if it already fired the table is
	// closed and the press is too late.
	if !f.touchTable(tbl) {
		common.RespondWithError(s, i, "This blackjack table has expired.")
		return
	}

	tbl.mu.Lock()
	defer tbl.mu.Unlock()

	// A replacement or expiry may have closed the table between lookup
	// and lock; a closed table accepts no further actions.
	if tbl.closed {
		common.RespondWithError(s, i, "This blackjack table has expired.")
		return
	}

	switch customID {
	case "blackjack_hit":
		result, err := tbl.game.Hit()
		if err != nil {
			common.RespondWithError(s, i, "This round is already over.")
			return
		}
		if result == nil {
			f.refreshTable(s, i, tbl, "")
			return
		}
		f.settle(s, i, tbl, result, false)

	case "blackjack_stand":
		result, err := tbl.game.Stand()
		if err != nil {
			common.RespondWithError(s, i, "This round is already over.")
			return
		}
		f.settle(s, i, tbl, result, false)

	case "blackjack_double":
		result, err := tbl.game.Double()
		if err != nil {
			common.RespondWithError(s, i, "This round is already over.")
			return
		}
		f.settle(s, i, tbl, result, true)

	case "blackjack_again":
		if err := tbl.game.Reset(); err != nil {
			common.RespondWithError(s, i, "Finish the current round first.")
			return
		}
		f.refreshTable(s, i, tbl, "")
	}
}

// settle applies the round's payout to the ledger and reveals the dealer.
// The table stays open so the player can go again.
func (f *Feature) settle(s *discordgo.Session, i *discordgo.InteractionCreate, tbl *table, result *blackjack.Result, doubled bool) {
	ctx := context.Background()

	if result.Payout != 0 {
		if err := f.userService.AdjustBalance(ctx, tbl.userID, result.Payout); err != nil {
			log.WithFields(log.Fields{
				"userID": tbl.userID,
				"payout": result.Payout,
			}).Errorf("Error settling blackjack round: %v", err)
			common.RespondWithError(s, i, "Unable to settle the round. Please try again.")
			return
		}
	}

	log.WithFields(log.Fields{
		"userID":  tbl.userID,
		"outcome": result.Outcome,
		"payout":  result.Payout,
	}).Info("Blackjack round settled")

	f.refreshTable(s, i, tbl, resultText(result.Outcome, doubled))
}

// refreshTable redraws the table message with the current game state
func (f *Feature) refreshTable(s *discordgo.Session, i *discordgo.InteractionCreate, tbl *table, footer string) {
	ctx := context.Background()

	balance := int64(0)
	if user, err := f.userService.GetUser(ctx, tbl.userID); err == nil {
		balance = user.Balance
	} else {
		log.Errorf("Error getting user %d for blackjack embed: %v", tbl.userID, err)
	}

	embed := buildEmbed(tbl.game, balance, footer)
	if err := common.UpdateWithEmbed(s, i, embed, buildComponents(tbl.game.Status)); err != nil {
		log.Errorf("Error updating blackjack message: %v", err)
	}
}
