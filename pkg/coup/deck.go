package coup

import "math/rand"

// Deck is the reserve of cards used for deals, challenge redraws, and
// ambassador exchanges.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a shuffled deck holding each copies of every card kind.
func NewDeck(each int, rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, each*len(cardNames)),
		rng:   rng,
	}
	for _, c := range Cards() {
		for i := 0; i < each; i++ {
			d.cards = append(d.cards, c)
		}
	}
	d.Shuffle()
	return d
}

// Stacked creates a deck with exactly the given cards in the given order.
// It is not shuffled until a game event calls for a shuffle.
func Stacked(rng *rand.Rand, cards ...Card) *Deck {
	d := &Deck{
		cards: make([]Card, len(cards)),
		rng:   rng,
	}
	copy(d.cards, cards)
	return d
}

// Shuffle randomizes the order of the remaining cards.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card. Drawing from an empty deck is a
// bug in the caller, never a reachable game state, so it panics.
func (d *Deck) Draw() Card {
	if len(d.cards) == 0 {
		panic("coup: draw from empty deck")
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c
}

// Return puts a card back on the bottom of the deck.
func (d *Deck) Return(c Card) {
	d.cards = append(d.cards, c)
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int { return len(d.cards) }

// Count returns how many copies of c remain in the deck.
func (d *Deck) Count(c Card) int {
	n := 0
	for _, dc := range d.cards {
		if dc == c {
			n++
		}
	}
	return n
}

// Cards returns a copy of the remaining cards in order.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
