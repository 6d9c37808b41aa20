// Package engine runs the authoritative server side of a Coup game: it
// owns the deck and every hand, prompts players over their connections,
// enforces the rules against misbehaving or unresponsive clients, and
// broadcasts the public event log.
package engine

import (
	"math/rand"
	"time"

	"github.com/decred/slog"

	"github.com/coupnet/coup/pkg/conn"
	"github.com/coupnet/coup/pkg/coup"
	"github.com/coupnet/coup/pkg/wire"
)

// Defaults for Config fields left zero.
const (
	DefaultEachCardInDeck = 3
	DefaultStartMoney     = 2
	DefaultStartCards     = 2
	DefaultTolerance      = 5
)

// Everyone is the seat a Recorder sees for broadcast commands.
const Everyone = -1

// Recorder observes the engine's outbound traffic: private commands with
// the receiving seat, broadcasts once with seat Everyone. Implementations
// must be fast; the engine calls them synchronously from the turn loop.
type Recorder interface {
	Record(player int, cmd wire.Command)
}

// Config parametrizes one game.
type Config struct {
	EachCardInDeck   int        // copies of each card kind in the deck
	StartMoney       int        // coins dealt to each player
	StartCards       int        // cards dealt to each player
	Tolerance        int        // wrong answers a player may give per prompt
	CrashOnViolation bool       // panic on a violation instead of removing the player
	Seed             int64      // deterministic games when nonzero
	Deck             *coup.Deck // replaces the standard shuffled deck, mainly for tests
	Logger           slog.Logger
	Recorder         Recorder
}

// Engine drives one game over a fixed set of player connections. It is
// strictly single-threaded: every prompt blocks the turn until the
// response arrives or times out.
type Engine struct {
	log   slog.Logger
	rng   *rand.Rand
	game  *coup.Game
	conns []*conn.Conn

	startMoney int
	startCards int
	tolerance  int
	crash      bool
	rec        Recorder
}

// New builds an engine over the given player connections. Connection i
// belongs to player number i.
func New(conns []*conn.Conn, cfg Config) *Engine {
	if len(conns) < 2 {
		panic("coup: must have at least 2 players")
	}
	if cfg.EachCardInDeck == 0 {
		cfg.EachCardInDeck = DefaultEachCardInDeck
	}
	if cfg.StartMoney == 0 {
		cfg.StartMoney = DefaultStartMoney
	}
	if cfg.StartCards == 0 {
		cfg.StartCards = DefaultStartCards
	}
	if cfg.Tolerance == 0 {
		cfg.Tolerance = DefaultTolerance
	}
	// Every client gets to correct at least one wrong answer, whatever
	// the configuration says.
	if cfg.Tolerance < 2 {
		cfg.Tolerance = 2
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Disabled
	}

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	deck := cfg.Deck
	if deck == nil {
		deck = coup.NewDeck(cfg.EachCardInDeck, rng)
	}

	return &Engine{
		log:        cfg.Logger,
		rng:        rng,
		game:       coup.NewGame(len(conns), deck, rng),
		conns:      conns,
		startMoney: cfg.StartMoney,
		startCards: cfg.StartCards,
		tolerance:  cfg.Tolerance,
		crash:      cfg.CrashOnViolation,
		rec:        cfg.Recorder,
	}
}

// Game exposes the table state, mainly to tests and the hosting server.
func (e *Engine) Game() *coup.Game { return e.game }

// Setup names every player, tells each about its opponents, and deals the
// opening hands and coins. It must run once before the first turn.
func (e *Engine) Setup() {
	for _, p := range e.game.Players() {
		resp, ok := askFor[wire.NameResponse](e, p, wire.AskName{}, nil)
		if ok {
			p.Name = resp.Name
			e.log.Debugf("player %d is %q", p.Number, p.Name)
		}
		e.send(p, wire.SetPlayerNumber{Number: p.Number})
	}

	for _, p := range e.game.Players() {
		for _, other := range e.game.Players() {
			if other.Number != p.Number {
				e.send(p, wire.AddOpponent{Number: other.Number, Name: other.Name})
			}
		}
	}

	e.broadcast(wire.NewGame{})

	for _, p := range e.game.Players() {
		if p.Violator() {
			continue
		}
		for i := 0; i < e.startCards; i++ {
			c := e.game.Deck().Draw()
			p.GiveCard(c)
			e.send(p, wire.AddCard{Card: c})
		}
		e.adjustMoney(p, e.startMoney)
	}
	e.sweepDead()

	e.log.Infof("game starts with %d players", e.game.AliveCount())
}

// Run plays turns until a single player remains, announces the shutdown,
// and returns the winner.
func (e *Engine) Run() *coup.Player {
	for e.game.AliveCount() > 1 {
		e.RunTurn()
	}
	winner, ok := e.game.Winner()
	if ok {
		e.log.Infof("player %d (%s) wins", winner.Number, winner.Name)
	}
	e.shutdown()
	return winner
}

// RunTurn plays a single turn: the front of the ring acts, new deaths are
// announced, and the ring rotates.
func (e *Engine) RunTurn() {
	if e.game.AliveCount() < 2 {
		return
	}
	actor := e.game.Actor()
	e.log.Debugf("turn of player %d", actor.Number)

	t := &turn{e: e, actor: actor}
	for state := statePropose; state != nil; {
		state = state(t)
	}

	e.sweepDead()
	if e.game.Actor() == actor {
		e.game.Rotate()
	}
}

// sweepDead drops dead players from the turn ring, announcing each death
// exactly once.
func (e *Engine) sweepDead() {
	for _, p := range e.game.RemoveDead() {
		e.log.Infof("player %d (%s) is out", p.Number, p.Name)
		e.broadcast(wire.APlayerIsDead{Player: p.Number})
	}
}

// shutdown tells every client the game is over and closes the wires.
func (e *Engine) shutdown() {
	e.broadcast(wire.Shutdown{})
	for _, c := range e.conns {
		c.Close()
	}
}

// send delivers one command to a player. Failures are logged, not fatal:
// a peer that stops reading is dealt with when its next prompt times out.
func (e *Engine) send(p *coup.Player, cmd wire.Command) error {
	if e.rec != nil {
		e.rec.Record(p.Number, cmd)
	}
	return e.transmit(p, cmd)
}

// broadcast sends cmd to every seat, dead or alive. A Recorder sees the
// command once, addressed to Everyone.
func (e *Engine) broadcast(cmd wire.Command) {
	if e.rec != nil {
		e.rec.Record(Everyone, cmd)
	}
	for _, p := range e.game.Players() {
		e.transmit(p, cmd)
	}
}

func (e *Engine) transmit(p *coup.Player, cmd wire.Command) error {
	err := e.conns[p.Number].Send(cmd)
	if err != nil {
		e.log.Debugf("send %s to player %d: %v", cmd.MsgName(), p.Number, err)
	}
	return err
}

// adjustMoney applies a coin delta and announces it, privately to the
// affected player and publicly to the table.
func (e *Engine) adjustMoney(p *coup.Player, amount int) {
	if amount == 0 {
		return
	}
	p.GiveMoney(amount)
	e.send(p, wire.ChangeMoney{Amount: amount})
	e.broadcast(wire.MoneyChanged{Player: p.Number, Amount: amount})
}

// loseCard permanently takes c from p's hand and reveals it to the table.
func (e *Engine) loseCard(p *coup.Player, c coup.Card) {
	p.TakeCard(c)
	e.game.Discard(c)
	e.send(p, wire.RemoveCard{Card: c})
	e.broadcast(wire.PlayerLostACard{Player: p.Number, Card: c})
}

// recycleCard returns a successfully revealed card to the deck and draws
// a replacement, so the table learns nothing lasting about the hand.
func (e *Engine) recycleCard(p *coup.Player, c coup.Card) {
	p.TakeCard(c)
	e.send(p, wire.RemoveCard{Card: c})

	deck := e.game.Deck()
	deck.Return(c)
	deck.Shuffle()
	drawn := deck.Draw()

	p.GiveCard(drawn)
	e.send(p, wire.AddCard{Card: drawn})
}

// chooseCardLoss lets p pick which of its own cards to lose.
func (e *Engine) chooseCardLoss(p *coup.Player) {
	resp, ok := askFor(e, p, wire.ChooseCardToKill{}, func(m wire.CardMessage) string {
		if !p.HasCard(m.Card) {
			return "you do not hold a " + m.Card.String()
		}
		return ""
	})
	if !ok {
		return
	}
	e.loseCard(p, resp.Card)
}

// pollOrder returns the living opponents of p in a random order. When
// first is among them it is moved to the front of the poll.
func (e *Engine) pollOrder(p *coup.Player, first *coup.Player) []*coup.Player {
	opps := e.game.Opponents(p.Number)
	e.rng.Shuffle(len(opps), func(i, j int) { opps[i], opps[j] = opps[j], opps[i] })
	if first != nil {
		for i, o := range opps {
			if o == first {
				opps[0], opps[i] = opps[i], opps[0]
				break
			}
		}
	}
	return opps
}

// livingTarget resolves a target number against the table.
func (e *Engine) livingTarget(num int) (*coup.Player, bool) {
	if !e.game.Valid(num) || !e.game.IsAlive(num) {
		return nil, false
	}
	return e.game.Player(num), true
}
