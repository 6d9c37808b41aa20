package coup

// Player is the server-side view of one seat: identity, hidden hand, and
// coins. The hand is unexported because its contents are private to the
// owning client; everything the engine broadcasts about it is derived
// through the methods here.
type Player struct {
	Number int
	Name   string

	cards    []Card
	money    int
	violator bool
}

// NewPlayer creates an empty seat with the given stable number.
func NewPlayer(number int) *Player {
	return &Player{Number: number}
}

// Alive reports whether the player still holds at least one card and has
// not been thrown out for breaking protocol.
func (p *Player) Alive() bool { return len(p.cards) > 0 && !p.violator }

// MarkViolator permanently removes the player from play. Unlike a card
// loss this cannot be undone by drawing new cards, which matters when a
// player is thrown out before the deal.
func (p *Player) MarkViolator() { p.violator = true }

// Violator reports whether the player was thrown out for breaking
// protocol.
func (p *Player) Violator() bool { return p.violator }

// Cards returns a copy of the hand in order.
func (p *Player) Cards() []Card {
	out := make([]Card, len(p.cards))
	copy(out, p.cards)
	return out
}

// CardCount returns the number of cards in hand.
func (p *Player) CardCount() int { return len(p.cards) }

// Money returns the player's coin count.
func (p *Player) Money() int { return p.money }

// GiveCard appends a card to the hand.
func (p *Player) GiveCard(c Card) {
	p.cards = append(p.cards, c)
}

// TakeCard removes the first copy of c from the hand and reports whether
// a copy was held.
func (p *Player) TakeCard(c Card) bool {
	for i, pc := range p.cards {
		if pc == c {
			p.cards = append(p.cards[:i], p.cards[i+1:]...)
			return true
		}
	}
	return false
}

// HasCard reports whether the hand holds at least one copy of c.
func (p *Player) HasCard(c Card) bool {
	for _, pc := range p.cards {
		if pc == c {
			return true
		}
	}
	return false
}

// HasPair reports whether the hand holds a and b together, counting
// multiplicity: HasPair(x, x) needs two copies of x.
func (p *Player) HasPair(a, b Card) bool {
	if a != b {
		return p.HasCard(a) && p.HasCard(b)
	}
	n := 0
	for _, pc := range p.cards {
		if pc == a {
			n++
		}
	}
	return n >= 2
}

// GiveMoney adjusts the player's coins by m, which may be negative.
func (p *Player) GiveMoney(m int) {
	p.money += m
	if p.money < 0 {
		panic("coup: player money below zero")
	}
}
