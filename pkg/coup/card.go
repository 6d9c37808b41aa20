// Package coup models the cards, actions, and table state of a Coup game.
package coup

// Card is one of the five character kinds in the deck.
type Card int

const (
	Duke Card = iota
	Contessa
	Assassin
	Captain
	Ambassador
)

// cardNames maps each kind to its wire name.
var cardNames = [...]string{
	Duke:       "duke",
	Contessa:   "contessa",
	Assassin:   "assassin",
	Captain:    "captain",
	Ambassador: "ambassador",
}

// String returns the card's wire name.
func (c Card) String() string {
	if c < 0 || int(c) >= len(cardNames) {
		return "unknown"
	}
	return cardNames[c]
}

// CardNamed looks up a card kind by its wire name.
func CardNamed(name string) (Card, bool) {
	for i, n := range cardNames {
		if n == name {
			return Card(i), true
		}
	}
	return 0, false
}

// Cards returns every card kind in declaration order.
func Cards() []Card {
	return []Card{Duke, Contessa, Assassin, Captain, Ambassador}
}
