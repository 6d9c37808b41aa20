package engine

import (
	"fmt"

	"github.com/coupnet/coup/pkg/coup"
	"github.com/coupnet/coup/pkg/wire"
)

// turn carries the state of one turn through its phases.
type turn struct {
	e         *Engine
	actor     *coup.Player
	action    coup.Action
	target    *coup.Player
	blocker   *coup.Player
	blockCard coup.Card
}

// stateFn runs one phase of a turn and returns the next phase, or nil
// when the turn is over.
type stateFn func(*turn) stateFn

// targetNum returns the wire representation of the turn's target.
func (t *turn) targetNum() int {
	if t.target == nil {
		return wire.NoTarget
	}
	return t.target.Number
}

// statePropose asks the actor for an action and validates it: the action
// must be affordable, a player sitting on a forced-coup pile of coins may
// only coup, and a targeted action needs a living opponent as its target.
func statePropose(t *turn) stateFn {
	e := t.e
	resp, ok := askFor(e, t.actor, wire.TakeTurn{}, func(m wire.ActionDecision) string {
		action, targetNum := m.Decision()
		if t.actor.Money() >= coup.ForcedCoupMoney && action != coup.Coup {
			return fmt.Sprintf("with %d coins you must coup", t.actor.Money())
		}
		if action.Cost() > t.actor.Money() {
			return fmt.Sprintf("%s costs %d coins and you have %d", action, action.Cost(), t.actor.Money())
		}
		if action.Targeted() {
			if targetNum == t.actor.Number {
				return "you cannot target yourself"
			}
			if _, ok := e.livingTarget(targetNum); !ok {
				return fmt.Sprintf("player %d is not in the game", targetNum)
			}
		}
		return ""
	})
	if !ok {
		return nil
	}

	action, targetNum := resp.Decision()
	t.action = action
	if action.Targeted() {
		t.target = e.game.Player(targetNum)
	}
	e.log.Debugf("player %d proposes %s (target %d)", t.actor.Number, t.action, t.targetNum())

	if _, claims := t.action.RequiredCard(); claims {
		return stateChallenge
	}
	return statePayCost
}

// stateChallenge offers every living opponent the chance to call the
// actor's character claim a bluff. The target, if any, is asked first;
// the rest are polled in random order. The first challenge settles the
// matter for everyone.
func stateChallenge(t *turn) stateFn {
	e := t.e
	card, _ := t.action.RequiredCard()
	for _, o := range e.pollOrder(t.actor, t.target) {
		prompt := wire.DoYouChallengeAction{Action: t.action, Doer: t.actor.Number, Target: t.targetNum()}
		resp, ok := askFor[wire.ChallengeDecision](e, o, prompt, nil)
		if !ok {
			continue
		}
		if _, challenges := resp.(wire.Challenge); !challenges {
			continue
		}
		e.log.Debugf("player %d challenges the %s", o.Number, t.action)

		proved := e.settleChallenge(t.actor, card, o, wire.YourActionIsChallenged{
			Action:     t.action,
			Target:     t.targetNum(),
			Challenger: o.Number,
		})
		e.broadcast(wire.ActionWasChallenged{
			Action:     t.action,
			Doer:       t.actor.Number,
			Target:     t.targetNum(),
			Challenger: o.Number,
			Success:    !proved,
		})
		if !proved {
			return nil
		}
		return statePayCost
	}
	return statePayCost
}

// statePayCost charges the action's cost. The cost is due once the claim
// has survived every challenge, even if a block later stops the action.
// If the target fell defending a challenge there is nothing left to aim
// at and the turn ends before any coins change hands.
func statePayCost(t *turn) stateFn {
	if t.target != nil && !t.target.Alive() {
		return nil
	}
	t.e.adjustMoney(t.actor, -t.action.Cost())
	if t.action.Blockable() {
		return stateBlock
	}
	return stateApply
}

// stateBlock offers a block. A targeted action can only be blocked by its
// target; foreign aid can be blocked by any living opponent, polled in
// random order. The block card must be one that stops this action, but
// the blocker does not have to hold it.
func stateBlock(t *turn) stateFn {
	e := t.e
	prompt := wire.DoYouBlock{Action: t.action, Doer: t.actor.Number}

	var pool []*coup.Player
	if t.target != nil {
		pool = []*coup.Player{t.target}
	} else {
		pool = e.pollOrder(t.actor, nil)
	}

	for _, o := range pool {
		resp, ok := askFor(e, o, prompt, func(m wire.BlockDecision) string {
			if b, blocks := m.(wire.Block); blocks && !t.action.CanBeBlockedBy(b.Card) {
				return fmt.Sprintf("%s does not block %s", b.Card, t.action)
			}
			return ""
		})
		if !ok {
			continue
		}
		if b, blocks := resp.(wire.Block); blocks {
			t.blocker = o
			t.blockCard = b.Card
			e.log.Debugf("player %d blocks with %s", o.Number, b.Card)
			return stateBlockChallenge
		}
	}
	return stateApply
}

// stateBlockChallenge polls everyone except the blocker, the actor
// included, for a challenge against the block. An unchallenged or proven
// block ends the turn; a bluffed block lets the action through.
func stateBlockChallenge(t *turn) stateFn {
	e := t.e
	for _, o := range e.pollOrder(t.blocker, nil) {
		prompt := wire.DoYouChallengeBlock{
			Action:    t.action,
			Doer:      t.actor.Number,
			Target:    t.targetNum(),
			BlockCard: t.blockCard,
			Blocker:   t.blocker.Number,
		}
		resp, ok := askFor[wire.ChallengeDecision](e, o, prompt, nil)
		if !ok {
			continue
		}
		if _, challenges := resp.(wire.Challenge); !challenges {
			continue
		}
		e.log.Debugf("player %d challenges the block", o.Number)

		proved := e.settleChallenge(t.blocker, t.blockCard, o, wire.YourBlockIsChallenged{
			Action:     t.action,
			Doer:       t.actor.Number,
			BlockCard:  t.blockCard,
			Challenger: o.Number,
		})
		e.broadcast(wire.BlockWasChallenged{
			Action:     t.action,
			Doer:       t.actor.Number,
			Target:     t.targetNum(),
			BlockCard:  t.blockCard,
			Blocker:    t.blocker.Number,
			Challenger: o.Number,
			Success:    !proved,
		})
		if proved {
			return logBlocked
		}
		return stateApply
	}
	return logBlocked
}

// logBlocked announces a standing block and ends the turn.
func logBlocked(t *turn) stateFn {
	t.e.broadcast(wire.ActionWasBlocked{
		Action:    t.action,
		Doer:      t.actor.Number,
		Target:    t.targetNum(),
		BlockCard: t.blockCard,
		Blocker:   t.blocker.Number,
	})
	return nil
}

// stateApply carries out the action and announces it. A kill aimed at a
// player who already fell earlier in the turn fizzles silently; a steal
// still collects from a fallen target's remaining coins.
func stateApply(t *turn) stateFn {
	e := t.e
	switch t.action {
	case coup.Income:
		e.adjustMoney(t.actor, 1)
	case coup.ForeignAid:
		e.adjustMoney(t.actor, 2)
	case coup.Tax:
		e.adjustMoney(t.actor, 3)
	case coup.Steal:
		loot := t.target.Money()
		if loot > 2 {
			loot = 2
		}
		e.adjustMoney(t.target, -loot)
		e.adjustMoney(t.actor, loot)
	case coup.Assassinate, coup.Coup:
		if !t.target.Alive() {
			return nil
		}
		e.chooseCardLoss(t.target)
	case coup.Ambassadate:
		if !t.exchangeCards() {
			return nil
		}
	}
	e.broadcast(wire.ActionWasTaken{Action: t.action, Doer: t.actor.Number, Target: t.targetNum()})
	return nil
}

// exchangeCards runs the ambassador exchange: the actor draws two cards
// from the deck into its hand and gives two of its choice back. Returned
// cards go to the bottom of the deck without a shuffle. The return value
// reports whether the actor survived the exchange.
func (t *turn) exchangeCards() bool {
	e := t.e
	deck := e.game.Deck()

	first, second := deck.Draw(), deck.Draw()
	t.actor.GiveCard(first)
	t.actor.GiveCard(second)
	e.send(t.actor, wire.AddCard{Card: first})
	e.send(t.actor, wire.AddCard{Card: second})

	resp, ok := askFor(e, t.actor, wire.ChooseAmbassadorCards{}, func(m wire.AmbassadorCardMessage) string {
		if !t.actor.HasPair(m.First, m.Second) {
			return fmt.Sprintf("you do not hold both a %s and a %s", m.First, m.Second)
		}
		return ""
	})
	if !ok {
		return false
	}

	for _, c := range []coup.Card{resp.First, resp.Second} {
		t.actor.TakeCard(c)
		e.send(t.actor, wire.RemoveCard{Card: c})
		deck.Return(c)
	}
	return true
}
