package blackjack

import "errors"

// Status is the lifecycle state of a round
type Status int

const (
	StatusInProgress Status = iota
	StatusPlayerBust
	StatusResolved
)

// Outcome is how a settled round ended for the player
type Outcome int

const (
	OutcomePlayerBust Outcome = iota
	OutcomePlayerWin
	OutcomeDealerWin
	OutcomePush
)

var (
	// ErrRoundOver is returned when a game action is taken on a settled round
	ErrRoundOver = errors.New("round is already settled")

	// ErrRoundInProgress is returned when Reset is called before the round settled
	ErrRoundInProgress = errors.New("round is still in progress")
)

// Result is the settlement of a round. Payout is the signed balance change
// for the player: -stake on a loss, +stake on a win, 0 on a push, doubled
// when the round was doubled.
type Result struct {
	Outcome Outcome
	Payout  int64
}

// Game is a single blackjack round for one player. It holds pure game data
// and transitions; ownership checks, timeouts and ledger settlement belong
// to the caller.
type Game struct {
	OwnerID int64
	Player  Hand
	Dealer  Hand
	Status  Status
	Stake   int64

	deck CardSource
}

// NewGame deals two cards each to player and dealer and starts the round
func NewGame(ownerID int64, stake int64, deck CardSource) *Game {
	g := &Game{
		OwnerID: ownerID,
		Stake:   stake,
		deck:    deck,
	}
	g.deal()
	return g
}

func (g *Game) deal() {
	g.Player = Hand{g.deck.Draw(), g.deck.Draw()}
	g.Dealer = Hand{g.deck.Draw(), g.deck.Draw()}
	g.Status = StatusInProgress
}

// Hit deals one card to the player. A nil result means the round continues;
// a bust settles at -stake.
func (g *Game) Hit() (*Result, error) {
	if g.Status != StatusInProgress {
		return nil, ErrRoundOver
	}

	g.Player = append(g.Player, g.deck.Draw())

	if g.Player.Value() > 21 {
		g.Status = StatusPlayerBust
		return &Result{Outcome: OutcomePlayerBust, Payout: -g.Stake}, nil
	}

	return nil, nil
}

// Stand plays out the dealer and settles the round at the base stake
func (g *Game) Stand() (*Result, error) {
	if g.Status != StatusInProgress {
		return nil, ErrRoundOver
	}

	return g.settle(g.Stake), nil
}

// Double deals the player one final card and settles at twice the stake.
// A push still pays zero regardless of doubling.
func (g *Game) Double() (*Result, error) {
	if g.Status != StatusInProgress {
		return nil, ErrRoundOver
	}

	g.Player = append(g.Player, g.deck.Draw())

	if g.Player.Value() > 21 {
		g.Status = StatusPlayerBust
		return &Result{Outcome: OutcomePlayerBust, Payout: -2 * g.Stake}, nil
	}

	return g.settle(2 * g.Stake), nil
}

// settle draws the dealer to at least 17 and compares hands. Every draw
// adds at least 1 to the dealer's total, so the loop terminates even
// against an adversarial card source.
func (g *Game) settle(stake int64) *Result {
	for g.Dealer.Value() < 17 {
		g.Dealer = append(g.Dealer, g.deck.Draw())
	}

	g.Status = StatusResolved

	p, d := g.Player.Value(), g.Dealer.Value()
	switch {
	case d > 21 || p > d:
		return &Result{Outcome: OutcomePlayerWin, Payout: stake}
	case d > p:
		return &Result{Outcome: OutcomeDealerWin, Payout: -stake}
	default:
		return &Result{Outcome: OutcomePush, Payout: 0}
	}
}

// Reset re-deals both hands for a new round at the same stake. It is only
// legal once the previous round settled.
func (g *Game) Reset() error {
	if g.Status == StatusInProgress {
		return ErrRoundInProgress
	}
	g.deal()
	return nil
}
