package client

import (
	"sort"

	"github.com/coupnet/coup/pkg/coup"
)

// Opponent is what this player can see of another seat.
type Opponent struct {
	Number int
	Name   string
	Money  int
	Alive  bool
	Lost   []coup.Card // cards this opponent has revealed and lost
}

// View mirrors the game as seen from one seat: the private hand plus
// everything the server has broadcast. The runtime keeps it in sync; a
// Strategy reads it to make decisions.
type View struct {
	Number    int
	Name      string
	Cards     []coup.Card
	Money     int
	Alive     bool
	Opponents map[int]*Opponent
	Discards  []coup.Card // every card publicly lost, in reveal order
}

func newView() *View {
	return &View{
		Number:    -1,
		Alive:     true,
		Opponents: make(map[int]*Opponent),
	}
}

// reset clears hand and table state for a fresh game, keeping the seat
// number and the opponent roster.
func (v *View) reset() {
	v.Cards = nil
	v.Money = 0
	v.Alive = true
	v.Discards = nil
	for _, o := range v.Opponents {
		o.Money = 0
		o.Alive = true
		o.Lost = nil
	}
}

// HasCard reports whether the hand holds at least one c.
func (v *View) HasCard(c coup.Card) bool {
	for _, held := range v.Cards {
		if held == c {
			return true
		}
	}
	return false
}

// LivingOpponents returns the opponents still in the game, ordered by
// seat number so strategies behave deterministically.
func (v *View) LivingOpponents() []*Opponent {
	nums := make([]int, 0, len(v.Opponents))
	for n, o := range v.Opponents {
		if o.Alive {
			nums = append(nums, n)
		}
	}
	sort.Ints(nums)
	out := make([]*Opponent, len(nums))
	for i, n := range nums {
		out[i] = v.Opponents[n]
	}
	return out
}

// Opponent returns the seat with the given number, or nil for the
// player's own number.
func (v *View) Opponent(num int) *Opponent { return v.Opponents[num] }

func (v *View) addCard(c coup.Card) { v.Cards = append(v.Cards, c) }

func (v *View) removeCard(c coup.Card) {
	for i, held := range v.Cards {
		if held == c {
			v.Cards = append(v.Cards[:i], v.Cards[i+1:]...)
			return
		}
	}
}

// markDead records that a seat is out, whether by losing its last card
// or by being thrown out for a violation.
func (v *View) markDead(num int) {
	if num == v.Number {
		v.Alive = false
		return
	}
	if o := v.Opponents[num]; o != nil {
		o.Alive = false
	}
}
