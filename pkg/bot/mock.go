package bot

import (
	"github.com/coupnet/coup/pkg/client"
	"github.com/coupnet/coup/pkg/coup"
	"github.com/coupnet/coup/pkg/wire"
)

// Mock is a scripted strategy for tests. Its answers are fixed by its
// fields, so a test can choreograph an exact turn: who acts, who blocks,
// who challenges. Tests mutate the fields between turns to play longer
// scenarios.
type Mock struct {
	PlayerName string

	// Action and Target are proposed on every turn.
	Action coup.Action
	Target int

	// ChallengeActions makes the mock challenge every action claim;
	// ChallengeBlocks every block claim.
	ChallengeActions bool
	ChallengeBlocks  bool

	// Blocks makes the mock block whenever asked. It blocks with BlockCard
	// when set, otherwise with the first card that can stop the action,
	// whether or not the hand holds it.
	Blocks    bool
	BlockCard *coup.Card

	// WrongFirst makes the very first answer of the game gibberish. The
	// repeated prompt is then answered normally.
	WrongFirst bool
	wronged    bool
}

// NewMock returns a mock that takes income and never interferes.
func NewMock(name string) *Mock {
	return &Mock{PlayerName: name, Action: coup.Income, Target: wire.NoTarget}
}

func (m *Mock) Name() string { return m.PlayerName }

// misbehave reports whether this answer should be the scripted wrong one.
func (m *Mock) misbehave() bool {
	if m.WrongFirst && !m.wronged {
		m.wronged = true
		return true
	}
	return false
}

func (m *Mock) TakeTurn(v *client.View) wire.Response {
	if m.misbehave() {
		return wire.Raw{Name: "banana"}
	}
	switch m.Action {
	case coup.ForeignAid:
		return wire.ForeignAidDecision{}
	case coup.Tax:
		return wire.TaxDecision{}
	case coup.Steal:
		return wire.StealDecision{Target: m.Target}
	case coup.Assassinate:
		return wire.AssassinateDecision{Target: m.Target}
	case coup.Coup:
		return wire.CoupDecision{Target: m.Target}
	case coup.Ambassadate:
		return wire.AmbassadateDecision{}
	default:
		return wire.IncomeDecision{}
	}
}

// CardToKill always gives up the newest card.
func (m *Mock) CardToKill(v *client.View) wire.Response {
	if m.misbehave() {
		return wire.Raw{Name: "banana"}
	}
	return wire.CardMessage{Card: v.Cards[len(v.Cards)-1]}
}

// AmbassadorCards returns the two newest cards, which are the two just
// drawn.
func (m *Mock) AmbassadorCards(v *client.View) wire.Response {
	if m.misbehave() {
		return wire.Raw{Name: "banana"}
	}
	n := len(v.Cards)
	return wire.AmbassadorCardMessage{First: v.Cards[n-2], Second: v.Cards[n-1]}
}

func (m *Mock) Block(v *client.View, prompt wire.DoYouBlock) wire.Response {
	if m.misbehave() {
		return wire.Raw{Name: "banana"}
	}
	if !m.Blocks {
		return wire.NoBlock{}
	}
	if m.BlockCard != nil {
		return wire.Block{Card: *m.BlockCard}
	}
	return wire.Block{Card: prompt.Action.BlockedBy()[0]}
}

func (m *Mock) ChallengeAction(v *client.View, prompt wire.DoYouChallengeAction) wire.Response {
	if m.misbehave() {
		return wire.Raw{Name: "banana"}
	}
	if m.ChallengeActions {
		return wire.Challenge{}
	}
	return wire.Allow{}
}

func (m *Mock) ChallengeBlock(v *client.View, prompt wire.DoYouChallengeBlock) wire.Response {
	if m.misbehave() {
		return wire.Raw{Name: "banana"}
	}
	if m.ChallengeBlocks {
		return wire.Challenge{}
	}
	return wire.Allow{}
}

// ActionChallenged reveals when the hand can prove the claim and
// concedes otherwise.
func (m *Mock) ActionChallenged(v *client.View, prompt wire.YourActionIsChallenged) wire.Response {
	if m.misbehave() {
		return wire.Raw{Name: "banana"}
	}
	if card, claims := prompt.Action.RequiredCard(); claims && v.HasCard(card) {
		return wire.RevealCard{}
	}
	return wire.Concede{}
}

func (m *Mock) BlockChallenged(v *client.View, prompt wire.YourBlockIsChallenged) wire.Response {
	if m.misbehave() {
		return wire.Raw{Name: "banana"}
	}
	if v.HasCard(prompt.BlockCard) {
		return wire.RevealCard{}
	}
	return wire.Concede{}
}
