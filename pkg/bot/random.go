package bot

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/coupnet/coup/pkg/client"
	"github.com/coupnet/coup/pkg/coup"
	"github.com/coupnet/coup/pkg/wire"
)

// Random plays legal moves at random, and with probability WrongChance
// answers a prompt with something broken instead: garbage records,
// responses of the wrong shape, unaffordable actions, impossible
// targets. It exists to stress the server's enforcement, so the breakage
// catalog is deliberately varied.
type Random struct {
	PlayerName  string
	WrongChance float64

	// OnlyOneWrong keeps wrong answers from ever coming back to back, so
	// every retried prompt succeeds and the bot stays inside any retry
	// budget of at least two.
	OnlyOneWrong bool

	rng          *rand.Rand
	lastWasWrong bool
}

// NewRandom returns a Random strategy driven by the given seed.
func NewRandom(name string, seed int64, wrongChance float64, onlyOneWrong bool) *Random {
	return &Random{
		PlayerName:   name,
		WrongChance:  wrongChance,
		OnlyOneWrong: onlyOneWrong,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

func (r *Random) Name() string { return r.PlayerName }

// correct decides whether this answer will be honest. After a wrong
// answer with OnlyOneWrong set, the next one is forced honest.
func (r *Random) correct() bool {
	if r.lastWasWrong {
		r.lastWasWrong = false
		return true
	}
	correct := r.rng.Float64() > r.WrongChance
	if !correct && r.OnlyOneWrong {
		r.lastWasWrong = true
	}
	return correct
}

// oneInAll spreads a 50% table-wide probability across the opponents, so
// that a full poll says yes about half the time no matter the seat
// count.
func (r *Random) oneInAll(v *client.View) bool {
	return r.rng.Float64() > math.Pow(0.5, 1/float64(len(v.Opponents)))
}

func pick[T any](rng *rand.Rand, xs []T) T {
	return xs[rng.Intn(len(xs))]
}

func (r *Random) randomCard() coup.Card {
	return pick(r.rng, coup.Cards())
}

func (r *Random) TakeTurn(v *client.View) wire.Response {
	if !r.correct() {
		return pick(r.rng, []wire.Response{
			wire.StealDecision{Target: len(v.Opponents)},
			wire.Raw{Name: "steal_decision", Fields: []string{"no"}},
			wire.CardMessage{Card: coup.Ambassador},
			wire.CoupDecision{Target: v.Number},
			wire.Raw{Name: "steal_decision"},
		})
	}

	opps := v.LivingOpponents()
	if len(opps) == 0 {
		return wire.IncomeDecision{}
	}
	target := pick(r.rng, opps).Number

	if v.Money >= coup.ForcedCoupMoney {
		return wire.CoupDecision{Target: target}
	}
	choices := []wire.Response{
		wire.IncomeDecision{},
		wire.ForeignAidDecision{},
		wire.TaxDecision{},
		wire.StealDecision{Target: target},
		wire.AmbassadateDecision{},
	}
	if v.Money >= coup.Assassinate.Cost() {
		choices = append(choices, wire.AssassinateDecision{Target: target})
	}
	if v.Money >= coup.Coup.Cost() {
		choices = append(choices, wire.CoupDecision{Target: target})
	}
	return pick(r.rng, choices)
}

func (r *Random) CardToKill(v *client.View) wire.Response {
	if !r.correct() {
		return pick(r.rng, []wire.Response{
			wire.CardMessage{Card: r.randomCard()},
			wire.Raw{Name: "card_message", Fields: []string{"no"}},
			wire.Raw{Name: "block", Fields: []string{"no"}},
			wire.Raw{Name: "card_message"},
		})
	}
	return wire.CardMessage{Card: pick(r.rng, v.Cards)}
}

func (r *Random) AmbassadorCards(v *client.View) wire.Response {
	if !r.correct() {
		return pick(r.rng, []wire.Response{
			wire.AmbassadorCardMessage{First: r.randomCard(), Second: r.randomCard()},
			wire.Raw{Name: "ambassador_card_message", Fields: []string{"1", "None"}},
			wire.IncomeDecision{},
			wire.Raw{Name: "ambassador_card_message", Fields: []string{coup.Ambassador.String()}},
		})
	}
	hand := make([]coup.Card, len(v.Cards))
	copy(hand, v.Cards)
	r.rng.Shuffle(len(hand), func(i, j int) { hand[i], hand[j] = hand[j], hand[i] })
	return wire.AmbassadorCardMessage{First: hand[0], Second: hand[1]}
}

func (r *Random) Block(v *client.View, m wire.DoYouBlock) wire.Response {
	if !r.correct() {
		return pick(r.rng, []wire.Response{
			wire.Raw{Name: "block", Fields: []string{strconv.Itoa(len(coup.Cards()))}},
			wire.Raw{Name: "block"},
		})
	}
	blockers := m.Action.BlockedBy()
	if m.Action.Targeted() {
		if r.rng.Float64() > 0.5 {
			return wire.Block{Card: pick(r.rng, blockers)}
		}
		return wire.NoBlock{}
	}
	if r.oneInAll(v) {
		return wire.Block{Card: pick(r.rng, blockers)}
	}
	return wire.NoBlock{}
}

func (r *Random) ChallengeAction(v *client.View, m wire.DoYouChallengeAction) wire.Response {
	if !r.correct() {
		return wire.IncomeDecision{}
	}
	if r.oneInAll(v) {
		return wire.Challenge{}
	}
	return wire.Allow{}
}

func (r *Random) ChallengeBlock(v *client.View, m wire.DoYouChallengeBlock) wire.Response {
	if !r.correct() {
		return wire.IncomeDecision{}
	}
	if r.oneInAll(v) {
		return wire.Challenge{}
	}
	return wire.Allow{}
}

func (r *Random) ActionChallenged(v *client.View, m wire.YourActionIsChallenged) wire.Response {
	if !r.correct() {
		return wire.Raw{Name: "nothing"}
	}
	if card, claims := m.Action.RequiredCard(); claims && v.HasCard(card) {
		return wire.RevealCard{}
	}
	return wire.Concede{}
}

func (r *Random) BlockChallenged(v *client.View, m wire.YourBlockIsChallenged) wire.Response {
	if !r.correct() {
		return pick(r.rng, []wire.Response{
			wire.Raw{Name: "coup_decision", Fields: []string{"None"}},
			wire.Raw{Name: "nothing"},
		})
	}
	if v.HasCard(m.BlockCard) {
		return wire.RevealCard{}
	}
	return wire.Concede{}
}
