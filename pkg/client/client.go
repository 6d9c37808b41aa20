// Package client implements the table-following side of the wire
// protocol. A Runtime keeps a local View in sync with the server's
// broadcasts and delegates every decision prompt to a Strategy; the
// server remains the only authority on the rules.
package client

import (
	"fmt"

	"github.com/decred/slog"

	"github.com/coupnet/coup/pkg/conn"
	"github.com/coupnet/coup/pkg/wire"
)

// Strategy decides this player's answers to the server's prompts. Every
// method returns the response to send back. Nothing checks the response
// locally: sending something the server rejects is allowed, and is how
// the fault-injecting strategies exercise the server's enforcement.
type Strategy interface {
	Name() string
	TakeTurn(v *View) wire.Response
	CardToKill(v *View) wire.Response
	AmbassadorCards(v *View) wire.Response
	Block(v *View, m wire.DoYouBlock) wire.Response
	ChallengeAction(v *View, m wire.DoYouChallengeAction) wire.Response
	ChallengeBlock(v *View, m wire.DoYouChallengeBlock) wire.Response
	ActionChallenged(v *View, m wire.YourActionIsChallenged) wire.Response
	BlockChallenged(v *View, m wire.YourBlockIsChallenged) wire.Response
}

// Notifier observes every server command just after it has been applied
// to the view. The console client renders the game from these; bots
// leave it nil.
type Notifier interface {
	Notify(v *View, cmd wire.Command)
}

// Config parametrizes a Runtime.
type Config struct {
	Strategy Strategy
	Notifier Notifier
	Logger   slog.Logger
}

// Runtime runs one seat: it reads server commands off the connection,
// updates the view, and answers prompts until the server shuts the game
// down.
type Runtime struct {
	conn     *conn.Conn
	strategy Strategy
	notify   Notifier
	log      slog.Logger
	view     *View
}

// New builds a runtime over an established connection.
func New(c *conn.Conn, cfg Config) *Runtime {
	if cfg.Strategy == nil {
		panic("client: a Strategy is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Disabled
	}
	return &Runtime{
		conn:     c,
		strategy: cfg.Strategy,
		notify:   cfg.Notifier,
		log:      cfg.Logger,
		view:     newView(),
	}
}

// View returns the runtime's live view of the game.
func (r *Runtime) View() *View { return r.view }

// Run follows the game to its end. It returns nil after a clean server
// shutdown and the transport error otherwise.
func (r *Runtime) Run() error {
	for {
		record, err := r.conn.Receive()
		if err != nil {
			return fmt.Errorf("connection lost: %w", err)
		}
		cmd, ok := wire.DecodeCommand(record)
		if !ok {
			return fmt.Errorf("cannot decode server command %q", record)
		}
		done, err := r.apply(cmd)
		if err != nil {
			return err
		}
		if r.notify != nil {
			r.notify.Notify(r.view, cmd)
		}
		if done {
			return nil
		}
	}
}

// apply folds one server command into the view, answering it if it is a
// prompt. It reports whether the game is over.
func (r *Runtime) apply(cmd wire.Command) (bool, error) {
	v := r.view
	switch m := cmd.(type) {
	case wire.DebugMsg:
		r.log.Debugf("server: %s", m.Text)

	case wire.Shutdown:
		return true, nil

	case wire.AskName:
		v.Name = r.strategy.Name()
		return false, r.send(wire.NameResponse{Name: v.Name})

	case wire.SetPlayerNumber:
		v.Number = m.Number

	case wire.AddOpponent:
		v.Opponents[m.Number] = &Opponent{Number: m.Number, Name: m.Name, Alive: true}

	case wire.NewGame:
		v.reset()

	case wire.AddCard:
		v.addCard(m.Card)

	case wire.RemoveCard:
		v.removeCard(m.Card)

	case wire.ChangeMoney:
		v.Money += m.Amount

	case wire.MoneyChanged:
		// Own deltas already arrived on the private channel.
		if m.Player != v.Number {
			if o := v.Opponents[m.Player]; o != nil {
				o.Money += m.Amount
			}
		}

	case wire.PlayerLostACard:
		v.Discards = append(v.Discards, m.Card)
		if o := v.Opponents[m.Player]; o != nil {
			o.Lost = append(o.Lost, m.Card)
		}

	case wire.APlayerIsDead:
		v.markDead(m.Player)

	case wire.RulesViolation:
		v.markDead(m.Player)

	case wire.TakeTurn:
		return false, r.send(r.strategy.TakeTurn(v))

	case wire.ChooseCardToKill:
		return false, r.send(r.strategy.CardToKill(v))

	case wire.ChooseAmbassadorCards:
		return false, r.send(r.strategy.AmbassadorCards(v))

	case wire.DoYouBlock:
		return false, r.send(r.strategy.Block(v, m))

	case wire.DoYouChallengeAction:
		return false, r.send(r.strategy.ChallengeAction(v, m))

	case wire.DoYouChallengeBlock:
		return false, r.send(r.strategy.ChallengeBlock(v, m))

	case wire.YourActionIsChallenged:
		return false, r.send(r.strategy.ActionChallenged(v, m))

	case wire.YourBlockIsChallenged:
		return false, r.send(r.strategy.BlockChallenged(v, m))

	case wire.ActionWasTaken, wire.ActionWasBlocked, wire.ActionWasChallenged, wire.BlockWasChallenged:
		// Public log entries carry no state the view does not already
		// track through the private and per-event commands.
	}
	return false, nil
}

func (r *Runtime) send(resp wire.Response) error {
	if resp == nil {
		return fmt.Errorf("strategy returned no response")
	}
	return r.conn.Send(resp)
}
