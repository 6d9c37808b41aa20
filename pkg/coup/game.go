package coup

import "math/rand"

// Game holds the table state for one match: every seat, the turn ring of
// living players, the deck, and the pile of publicly revealed discards.
// It carries no I/O; the engine drives all mutation from the turn loop.
type Game struct {
	players  []*Player
	ring     []*Player // turn order; front acts next
	deck     *Deck
	discards []Card
	rng      *rand.Rand
	violated bool
}

// NewGame creates a table of numPlayers empty seats over the given deck.
func NewGame(numPlayers int, deck *Deck, rng *rand.Rand) *Game {
	if numPlayers < 2 {
		panic("coup: must have at least 2 players")
	}
	g := &Game{
		players: make([]*Player, numPlayers),
		ring:    make([]*Player, 0, numPlayers),
		deck:    deck,
		rng:     rng,
	}
	for i := range g.players {
		p := NewPlayer(i)
		g.players[i] = p
		g.ring = append(g.ring, p)
	}
	return g
}

// Player returns the seat with the given number.
func (g *Game) Player(num int) *Player {
	if num < 0 || num >= len(g.players) {
		panic("coup: no such player")
	}
	return g.players[num]
}

// Players returns every seat by number, dead or alive.
func (g *Game) Players() []*Player {
	out := make([]*Player, len(g.players))
	copy(out, g.players)
	return out
}

// Valid reports whether num names a seat at this table.
func (g *Game) Valid(num int) bool {
	return num >= 0 && num < len(g.players)
}

// Alive returns the living players in turn order.
func (g *Game) Alive() []*Player {
	out := make([]*Player, 0, len(g.ring))
	for _, p := range g.ring {
		if p.Alive() {
			out = append(out, p)
		}
	}
	return out
}

// AliveCount returns the number of players still in the turn ring.
func (g *Game) AliveCount() int { return len(g.ring) }

// IsAlive reports whether the player is in the ring and still holds cards.
// Players killed mid-turn drop out of every poll immediately, before the
// end-of-turn sweep removes them from the ring.
func (g *Game) IsAlive(num int) bool {
	for _, p := range g.ring {
		if p.Number == num {
			return p.Alive()
		}
	}
	return false
}

// Actor returns the front of the turn ring.
func (g *Game) Actor() *Player { return g.ring[0] }

// Opponents returns the living players other than num, in ring order.
func (g *Game) Opponents(num int) []*Player {
	out := make([]*Player, 0, len(g.ring))
	for _, p := range g.ring {
		if p.Number != num && p.Alive() {
			out = append(out, p)
		}
	}
	return out
}

// Rotate moves the front of the ring to the back.
func (g *Game) Rotate() {
	if len(g.ring) < 2 {
		return
	}
	front := g.ring[0]
	copy(g.ring, g.ring[1:])
	g.ring[len(g.ring)-1] = front
}

// RemoveDead drops card-less players from the ring and returns them in
// ring order. Each death is reported exactly once across the whole game.
func (g *Game) RemoveDead() []*Player {
	var dead []*Player
	kept := g.ring[:0]
	for _, p := range g.ring {
		if p.Alive() {
			kept = append(kept, p)
		} else {
			dead = append(dead, p)
		}
	}
	g.ring = kept
	return dead
}

// Winner returns the last player standing once only one remains.
func (g *Game) Winner() (*Player, bool) {
	if len(g.ring) != 1 {
		return nil, false
	}
	return g.ring[0], true
}

// Deck returns the game's deck.
func (g *Game) Deck() *Deck { return g.deck }

// RNG returns the game's random source, shared by the deck and the
// engine's poll-order shuffles.
func (g *Game) RNG() *rand.Rand { return g.rng }

// Discard adds a publicly revealed card to the discard pile.
func (g *Game) Discard(c Card) {
	g.discards = append(g.discards, c)
}

// Discards returns a copy of the publicly revealed cards in reveal order.
func (g *Game) Discards() []Card {
	out := make([]Card, len(g.discards))
	copy(out, g.discards)
	return out
}

// MarkViolation records that some player broke protocol during the game.
func (g *Game) MarkViolation() { g.violated = true }

// Violated reports whether any rule violation occurred.
func (g *Game) Violated() bool { return g.violated }

// CardCensus counts every card across the deck, all hands, and the
// discard pile. The total per kind is constant for the whole game.
func (g *Game) CardCensus() map[Card]int {
	census := make(map[Card]int, len(cardNames))
	for _, c := range g.deck.Cards() {
		census[c]++
	}
	for _, p := range g.players {
		for _, c := range p.Cards() {
			census[c]++
		}
	}
	for _, c := range g.discards {
		census[c]++
	}
	return census
}
