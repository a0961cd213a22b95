package blackjack

import (
	"math/rand"
	"strings"
)

// Rank is a card rank (A, 2-10, J, Q, K)
type Rank string

// Suit is a card suit symbol
type Suit string

var ranks = []Rank{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

var suits = []Suit{"♠", "♥", "♦", "♣"}

var rankValues = map[Rank]int{
	"A": 11, "2": 2, "3": 3, "4": 4, "5": 5, "6": 6,
	"7": 7, "8": 8, "9": 9, "10": 10, "J": 10, "Q": 10, "K": 10,
}

// Card is an immutable rank/suit pair
type Card struct {
	Rank Rank
	Suit Suit
}

func (c Card) String() string {
	return string(c.Rank) + string(c.Suit)
}

// CardSource deals cards to a game. The production implementation is Deck;
// tests substitute scripted sources.
type CardSource interface {
	Draw() Card
}

// Deck deals cards with replacement: every draw is an independent uniform
// pick over the 13 ranks and 4 suits. There is no finite shoe to exhaust,
// so a draw can never fail.
type Deck struct {
	rng *rand.Rand
}

// NewDeck creates a deck backed by the given random source
func NewDeck(src rand.Source) *Deck {
	return &Deck{rng: rand.New(src)}
}

// Draw deals one card
func (d *Deck) Draw() Card {
	return Card{
		Rank: ranks[d.rng.Intn(len(ranks))],
		Suit: suits[d.rng.Intn(len(suits))],
	}
}

// Hand is an ordered sequence of cards. Its value is always derived from
// the cards, never stored.
type Hand []Card

// Value scores the hand: aces count 11, faces 10, numerics their face
// value; aces are demoted to 1 one at a time while the total exceeds 21.
func (h Hand) Value() int {
	value := 0
	aces := 0
	for _, c := range h {
		value += rankValues[c.Rank]
		if c.Rank == "A" {
			aces++
		}
	}
	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}
	return value
}

func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
