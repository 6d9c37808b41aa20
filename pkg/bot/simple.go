// Package bot provides Strategy implementations for unattended play: a
// predictable honest player, a randomized player that can deliberately
// misbehave, and a scripted player for driving tests.
package bot

import (
	"github.com/coupnet/coup/pkg/client"
	"github.com/coupnet/coup/pkg/coup"
	"github.com/coupnet/coup/pkg/wire"
)

// Simple is an honest strategy: it only claims cards it holds, blocks
// whenever it legitimately can, and challenges only what it can prove
// impossible from its own hand and the public discards.
type Simple struct {
	PlayerName string
}

// NewSimple returns a Simple strategy introducing itself as name.
func NewSimple(name string) *Simple { return &Simple{PlayerName: name} }

func (s *Simple) Name() string { return s.PlayerName }

// TakeTurn coups when it must or can, assassinates when armed and
// funded, otherwise milks its own cards and falls back to income.
func (s *Simple) TakeTurn(v *client.View) wire.Response {
	opps := v.LivingOpponents()
	if len(opps) == 0 {
		return wire.IncomeDecision{}
	}
	target := opps[0].Number

	if v.Money >= coup.Coup.Cost() {
		return wire.CoupDecision{Target: target}
	}
	if v.HasCard(coup.Assassin) && v.Money >= coup.Assassinate.Cost() {
		return wire.AssassinateDecision{Target: target}
	}
	if v.HasCard(coup.Duke) {
		return wire.TaxDecision{}
	}
	if v.HasCard(coup.Captain) {
		if t := richest(opps); t != nil && t.Money > 0 {
			return wire.StealDecision{Target: t.Number}
		}
	}
	return wire.IncomeDecision{}
}

func richest(opps []*client.Opponent) *client.Opponent {
	var best *client.Opponent
	for _, o := range opps {
		if best == nil || o.Money > best.Money {
			best = o
		}
	}
	return best
}

// CardToKill gives up the newest card in the hand.
func (s *Simple) CardToKill(v *client.View) wire.Response {
	if len(v.Cards) == 0 {
		return wire.Concede{}
	}
	return wire.CardMessage{Card: v.Cards[len(v.Cards)-1]}
}

// AmbassadorCards returns the two cards just drawn, keeping the original
// hand.
func (s *Simple) AmbassadorCards(v *client.View) wire.Response {
	n := len(v.Cards)
	return wire.AmbassadorCardMessage{First: v.Cards[n-2], Second: v.Cards[n-1]}
}

// Block blocks with any held card that stops the action.
func (s *Simple) Block(v *client.View, m wire.DoYouBlock) wire.Response {
	for _, c := range m.Action.BlockedBy() {
		if v.HasCard(c) {
			return wire.Block{Card: c}
		}
	}
	return wire.NoBlock{}
}

// ChallengeAction challenges only claims it can prove false: every copy
// of the claimed card is already in its own hand or face up on the
// table.
func (s *Simple) ChallengeAction(v *client.View, m wire.DoYouChallengeAction) wire.Response {
	card, claims := m.Action.RequiredCard()
	if claims && s.allCopiesVisible(v, card) {
		return wire.Challenge{}
	}
	return wire.Allow{}
}

// ChallengeBlock applies the same proof standard to block claims.
func (s *Simple) ChallengeBlock(v *client.View, m wire.DoYouChallengeBlock) wire.Response {
	if s.allCopiesVisible(v, m.BlockCard) {
		return wire.Challenge{}
	}
	return wire.Allow{}
}

// allCopiesVisible reports whether every copy of c this player can see
// accounts for the whole deck's supply, assuming the standard three
// copies per kind.
func (s *Simple) allCopiesVisible(v *client.View, c coup.Card) bool {
	seen := 0
	for _, held := range v.Cards {
		if held == c {
			seen++
		}
	}
	for _, lost := range v.Discards {
		if lost == c {
			seen++
		}
	}
	return seen >= 3
}

// ActionChallenged reveals the claimed card when the hand backs it up
// and concedes otherwise. Simple never bluffs an action, so a challenge
// against it is normally bad news for the challenger.
func (s *Simple) ActionChallenged(v *client.View, m wire.YourActionIsChallenged) wire.Response {
	card, claims := m.Action.RequiredCard()
	if claims && v.HasCard(card) {
		return wire.RevealCard{}
	}
	return wire.Concede{}
}

// BlockChallenged reveals the block card when held and concedes
// otherwise.
func (s *Simple) BlockChallenged(v *client.View, m wire.YourBlockIsChallenged) wire.Response {
	if v.HasCard(m.BlockCard) {
		return wire.RevealCard{}
	}
	return wire.Concede{}
}
