package engine

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"github.com/coupnet/coup/pkg/coup"
	"github.com/coupnet/coup/pkg/wire"
)

// askFor prompts p and waits for a response of type T that passes valid,
// which returns the empty string for a good answer and a reason for a bad
// one. A reply of the wrong shape, or one rejected by valid, is charged
// against the retry budget and the prompt is re-issued together with a
// debug message naming the problem. A timeout, a broken connection, or an
// exhausted budget removes p from the game on the spot. The boolean
// reports whether a valid response was obtained; when it is false, p is
// out.
func askFor[T wire.Response](e *Engine, p *coup.Player, prompt wire.Command, valid func(T) string) (T, bool) {
	var zero T
	for attempt := 0; attempt < e.tolerance; attempt++ {
		if err := e.send(p, prompt); err != nil {
			e.emergencyKill(p, fmt.Sprintf("unreachable: %v", err))
			return zero, false
		}
		record, err := e.conns[p.Number].Receive()
		if err != nil {
			e.emergencyKill(p, fmt.Sprintf("no answer to %s: %v", prompt.MsgName(), err))
			return zero, false
		}
		resp, ok := wire.DecodeResponse(record)
		if !ok {
			e.complain(p, fmt.Sprintf("cannot make sense of %q", record))
			continue
		}
		t, ok := resp.(T)
		if !ok {
			e.log.Tracef("rejected answer from player %d: %s", p.Number, spew.Sdump(resp))
			e.complain(p, fmt.Sprintf("%s does not answer %s", resp.MsgName(), prompt.MsgName()))
			continue
		}
		if valid != nil {
			if reason := valid(t); reason != "" {
				e.log.Tracef("rejected answer from player %d: %s", p.Number, spew.Sdump(resp))
				e.complain(p, reason)
				continue
			}
		}
		return t, true
	}
	e.emergencyKill(p, fmt.Sprintf("no valid answer to %s in %d tries", prompt.MsgName(), e.tolerance))
	return zero, false
}

// complain tells p what was wrong with its last reply.
func (e *Engine) complain(p *coup.Player, reason string) {
	e.log.Debugf("player %d: %s", p.Number, reason)
	e.send(p, wire.DebugMsg{Text: reason})
}

// emergencyKill throws p out of the game for breaking protocol. Every
// card left in the hand is revealed and discarded, then the violation is
// announced to the table. The death announcement follows at the next
// end-of-turn sweep like any other death.
func (e *Engine) emergencyKill(p *coup.Player, reason string) {
	if e.crash {
		panic(fmt.Sprintf("coup: player %d broke protocol: %s", p.Number, reason))
	}
	e.log.Warnf("throwing out player %d (%s): %s", p.Number, p.Name, reason)
	e.game.MarkViolation()
	p.MarkViolator()
	for _, c := range p.Cards() {
		e.loseCard(p, c)
	}
	e.broadcast(wire.RulesViolation{Player: p.Number})
}

// settleChallenge resolves challenger's claim that p does not hold card.
// prompt is the reveal-or-concede question put to p. Claiming to reveal a
// card the hand does not contain is a violation, so a reveal that comes
// back is always honest: the card is recycled through the deck and the
// challenger loses a card of its choice. A concession, or p dropping out
// of the game, costs p instead and stops the challenged move. The return
// value reports whether p proved the claim.
func (e *Engine) settleChallenge(p *coup.Player, card coup.Card, challenger *coup.Player, prompt wire.Command) bool {
	resp, ok := askFor(e, p, prompt, func(m wire.RevealDecision) string {
		if _, reveals := m.(wire.RevealCard); reveals && !p.HasCard(card) {
			return fmt.Sprintf("you cannot reveal a %s you do not hold", card)
		}
		return ""
	})
	if !ok {
		return false
	}
	if _, conceded := resp.(wire.Concede); conceded {
		e.chooseCardLoss(p)
		return false
	}
	e.recycleCard(p, card)
	e.chooseCardLoss(challenger)
	return true
}
