package engine

import (
	"bufio"
	"math/rand"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coupnet/coup/pkg/bot"
	"github.com/coupnet/coup/pkg/client"
	"github.com/coupnet/coup/pkg/conn"
	"github.com/coupnet/coup/pkg/coup"
	"github.com/coupnet/coup/pkg/wire"
)

// recorder captures the engine's outbound traffic in order: private
// commands with their seat, broadcasts once with seat Everyone.
type recorder struct {
	sent []sentCmd
}

type sentCmd struct {
	seat int
	cmd  wire.Command
}

func (r *recorder) Record(seat int, cmd wire.Command) {
	r.sent = append(r.sent, sentCmd{seat, cmd})
}

// find returns the first recorded command with the given wire name.
func (r *recorder) find(name string) (wire.Command, bool) {
	for _, s := range r.sent {
		if s.cmd.MsgName() == name {
			return s.cmd, true
		}
	}
	return nil, false
}

// count tallies commands with the given wire name sent to one seat.
func (r *recorder) count(seat int, name string) int {
	n := 0
	for _, s := range r.sent {
		if s.seat == seat && s.cmd.MsgName() == name {
			n++
		}
	}
	return n
}

// table wires an engine to scripted clients over in-memory pipes.
type table struct {
	engine *Engine
	rec    *recorder
}

// newTable builds a game whose seats are played by the given strategies,
// each behind its own client runtime.
func newTable(t *testing.T, cfg Config, strategies ...client.Strategy) *table {
	t.Helper()
	rec := &recorder{}
	cfg.Recorder = rec
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}

	conns := make([]*conn.Conn, len(strategies))
	for i, s := range strategies {
		srv, cli := net.Pipe()
		conns[i] = conn.New(srv, time.Second)
		rt := client.New(conn.New(cli, 0), client.Config{Strategy: s})
		go rt.Run()
	}

	e := New(conns, cfg)
	t.Cleanup(func() {
		for _, c := range e.conns {
			c.Close()
		}
	})
	return &table{engine: e, rec: rec}
}

func stackedDeck(cards ...coup.Card) *coup.Deck {
	return coup.Stacked(rand.New(rand.NewSource(1)), cards...)
}

func TestQuietAssassination(t *testing.T) {
	doer := bot.NewMock("doer")
	doer.Action = coup.Assassinate
	doer.Target = 1
	victim := bot.NewMock("victim")

	deck := stackedDeck(coup.Assassin, coup.Duke, coup.Contessa, coup.Captain)
	tb := newTable(t, Config{StartMoney: 3, Deck: deck}, doer, victim)
	e := tb.engine
	e.Setup()

	before := e.Game().CardCensus()
	e.RunTurn()

	p0, p1 := e.Game().Player(0), e.Game().Player(1)
	assert.Equal(t, 0, p0.Money(), "assassination costs three coins")
	assert.Equal(t, []coup.Card{coup.Contessa}, p1.Cards(), "victim loses its newest card")
	assert.Equal(t, []coup.Card{coup.Captain}, e.Game().Discards())
	assert.True(t, e.Game().IsAlive(1))
	assert.Equal(t, before, e.Game().CardCensus())

	cmd, ok := tb.rec.find("log_action_was_taken")
	require.True(t, ok)
	assert.Equal(t, wire.ActionWasTaken{Action: coup.Assassinate, Doer: 0, Target: 1}, cmd)

	_, blocked := tb.rec.find("log_action_was_blocked")
	assert.False(t, blocked)

	assert.Equal(t, 1, e.Game().Actor().Number, "turn passes on")
}

func TestConcededChallengeCostsNoCoins(t *testing.T) {
	bluffer := bot.NewMock("bluffer")
	bluffer.Action = coup.Assassinate
	bluffer.Target = 1
	sceptic := bot.NewMock("sceptic")
	sceptic.ChallengeActions = true

	// The bluffer holds no assassin and must concede the challenge.
	deck := stackedDeck(coup.Duke, coup.Duke, coup.Contessa, coup.Captain)
	tb := newTable(t, Config{StartMoney: 3, Deck: deck}, bluffer, sceptic)
	e := tb.engine
	e.Setup()
	e.RunTurn()

	p0, p1 := e.Game().Player(0), e.Game().Player(1)
	assert.Equal(t, 3, p0.Money(), "a stopped action costs nothing")
	assert.Equal(t, []coup.Card{coup.Duke}, p0.Cards(), "bluffer pays a card")
	assert.Equal(t, 2, p1.CardCount())

	cmd, ok := tb.rec.find("log_action_was_challenged")
	require.True(t, ok)
	assert.Equal(t, wire.ActionWasChallenged{
		Action: coup.Assassinate, Doer: 0, Target: 1, Challenger: 1, Success: true,
	}, cmd)

	_, taken := tb.rec.find("log_action_was_taken")
	assert.False(t, taken, "a conceded action never happens")
}

func TestWrongChallengeCostsTheChallenger(t *testing.T) {
	duke := bot.NewMock("duke")
	duke.Action = coup.Tax
	sceptic := bot.NewMock("sceptic")
	sceptic.ChallengeActions = true

	deck := stackedDeck(coup.Duke, coup.Contessa, coup.Captain, coup.Captain,
		coup.Assassin, coup.Assassin)
	tb := newTable(t, Config{Deck: deck}, duke, sceptic)
	e := tb.engine
	e.Setup()

	before := e.Game().CardCensus()
	e.RunTurn()

	p0, p1 := e.Game().Player(0), e.Game().Player(1)
	assert.Equal(t, 5, p0.Money(), "tax still pays out after the challenge fails")
	assert.Equal(t, 2, p0.CardCount(), "a proven claim costs no cards")
	assert.Equal(t, 1, p1.CardCount(), "the wrong challenger pays one")
	assert.Equal(t, before, e.Game().CardCensus(), "the revealed duke is recycled")

	cmd, ok := tb.rec.find("log_action_was_challenged")
	require.True(t, ok)
	assert.Equal(t, wire.ActionWasChallenged{
		Action: coup.Tax, Doer: 0, Target: wire.NoTarget, Challenger: 1, Success: false,
	}, cmd)

	_, taken := tb.rec.find("log_action_was_taken")
	assert.True(t, taken)
}

func TestBlockedAssassinationStillCosts(t *testing.T) {
	doer := bot.NewMock("doer")
	doer.Action = coup.Assassinate
	doer.Target = 1
	blocker := bot.NewMock("blocker")
	blocker.Blocks = true

	deck := stackedDeck(coup.Assassin, coup.Duke, coup.Contessa, coup.Captain)
	tb := newTable(t, Config{StartMoney: 3, Deck: deck}, doer, blocker)
	e := tb.engine
	e.Setup()
	e.RunTurn()

	p0, p1 := e.Game().Player(0), e.Game().Player(1)
	assert.Equal(t, 0, p0.Money(), "the contract is paid even when blocked")
	assert.Equal(t, 2, p1.CardCount())

	cmd, ok := tb.rec.find("log_action_was_blocked")
	require.True(t, ok)
	assert.Equal(t, wire.ActionWasBlocked{
		Action: coup.Assassinate, Doer: 0, Target: 1, BlockCard: coup.Contessa, Blocker: 1,
	}, cmd)

	_, taken := tb.rec.find("log_action_was_taken")
	assert.False(t, taken)
}

func TestBluffedBlockIsCalledOut(t *testing.T) {
	thief := bot.NewMock("thief")
	thief.Action = coup.Steal
	thief.Target = 1
	thief.ChallengeBlocks = true
	liar := bot.NewMock("liar")
	liar.Blocks = true

	// The liar blocks the steal claiming a captain it does not hold.
	deck := stackedDeck(coup.Captain, coup.Contessa, coup.Duke, coup.Duke)
	tb := newTable(t, Config{Deck: deck}, thief, liar)
	e := tb.engine
	e.Setup()
	e.RunTurn()

	p0, p1 := e.Game().Player(0), e.Game().Player(1)
	assert.Equal(t, 4, p0.Money(), "the steal goes through after the bluff falls")
	assert.Equal(t, 0, p1.Money())
	assert.Equal(t, 1, p1.CardCount(), "the bluffed block costs a card")

	cmd, ok := tb.rec.find("log_block_was_challenged")
	require.True(t, ok)
	assert.Equal(t, wire.BlockWasChallenged{
		Action: coup.Steal, Doer: 0, Target: 1, BlockCard: coup.Captain,
		Blocker: 1, Challenger: 0, Success: true,
	}, cmd)

	cmd, ok = tb.rec.find("log_action_was_taken")
	require.True(t, ok)
	assert.Equal(t, wire.ActionWasTaken{Action: coup.Steal, Doer: 0, Target: 1}, cmd)
}

func TestStealTakesWhatIsThere(t *testing.T) {
	for _, tc := range []struct {
		name       string
		startMoney int
		want       int
	}{
		{"two from two", 2, 2},
		{"one from one", 1, 1},
		{"nothing from a pauper", 0, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			thief := bot.NewMock("thief")
			thief.Action = coup.Steal
			thief.Target = 1
			victim := bot.NewMock("victim")

			deck := stackedDeck(coup.Captain, coup.Contessa, coup.Duke, coup.Duke)
			tb := newTable(t, Config{StartMoney: tc.startMoney, Deck: deck}, thief, victim)
			e := tb.engine
			e.Setup()
			e.RunTurn()

			assert.Equal(t, tc.startMoney+tc.want, e.Game().Player(0).Money())
			assert.Equal(t, tc.startMoney-tc.want, e.Game().Player(1).Money())

			_, taken := tb.rec.find("log_action_was_taken")
			assert.True(t, taken)
		})
	}
}

func TestAmbassadorExchangeLeavesDeckUnshuffled(t *testing.T) {
	trader := bot.NewMock("trader")
	trader.Action = coup.Ambassadate
	other := bot.NewMock("other")

	deck := stackedDeck(coup.Ambassador, coup.Duke, coup.Captain, coup.Captain,
		coup.Assassin, coup.Assassin)
	tb := newTable(t, Config{Deck: deck}, trader, other)
	e := tb.engine
	e.Setup()
	e.RunTurn()

	p0 := e.Game().Player(0)
	assert.Equal(t, []coup.Card{coup.Ambassador, coup.Duke}, p0.Cards(),
		"the mock returns exactly the two cards it drew")
	assert.Equal(t, []coup.Card{coup.Assassin, coup.Assassin}, e.Game().Deck().Cards(),
		"returned cards go to the bottom without a shuffle")

	cmd, ok := tb.rec.find("log_action_was_taken")
	require.True(t, ok)
	assert.Equal(t, wire.ActionWasTaken{Action: coup.Ambassadate, Doer: 0, Target: wire.NoTarget}, cmd)
}

func TestTargetOfChallengeDiesBeforePaying(t *testing.T) {
	doer := bot.NewMock("doer")
	doer.Action = coup.Assassinate
	doer.Target = 1
	sceptic := bot.NewMock("sceptic")
	sceptic.ChallengeActions = true

	// One card each: the wrong challenge costs the target its whole game,
	// leaving nobody to assassinate and nothing to pay for.
	deck := stackedDeck(coup.Assassin, coup.Duke)
	tb := newTable(t, Config{StartMoney: 3, StartCards: 1, Deck: deck}, doer, sceptic)
	e := tb.engine
	e.Setup()
	e.RunTurn()

	p0 := e.Game().Player(0)
	assert.Equal(t, 3, p0.Money(), "no target left, no fee paid")
	assert.Equal(t, 1, p0.CardCount())
	assert.False(t, e.Game().IsAlive(1))

	_, taken := tb.rec.find("log_action_was_taken")
	assert.False(t, taken)

	winner, ok := e.Game().Winner()
	require.True(t, ok)
	assert.Equal(t, 0, winner.Number)
}

func TestForeignAidBlockedByAnyDuke(t *testing.T) {
	beggar := bot.NewMock("beggar")
	beggar.Action = coup.ForeignAid
	bystander := bot.NewMock("bystander")
	royalist := bot.NewMock("royalist")
	royalist.Blocks = true

	deck := stackedDeck(coup.Contessa, coup.Contessa, coup.Captain, coup.Captain,
		coup.Duke, coup.Duke)
	tb := newTable(t, Config{Deck: deck}, beggar, bystander, royalist)
	e := tb.engine
	e.Setup()
	e.RunTurn()

	assert.Equal(t, 2, e.Game().Player(0).Money(), "blocked foreign aid pays nothing")

	cmd, ok := tb.rec.find("log_action_was_blocked")
	require.True(t, ok)
	assert.Equal(t, wire.ActionWasBlocked{
		Action: coup.ForeignAid, Doer: 0, Target: wire.NoTarget,
		BlockCard: coup.Duke, Blocker: 2,
	}, cmd)

	_, taken := tb.rec.find("log_action_was_taken")
	assert.False(t, taken)
}

func TestTargetIsAskedFirstAboutChallenges(t *testing.T) {
	thief := bot.NewMock("thief")
	thief.Action = coup.Steal
	thief.Target = 2
	sceptic1 := bot.NewMock("sceptic1")
	sceptic1.ChallengeActions = true
	sceptic2 := bot.NewMock("sceptic2")
	sceptic2.ChallengeActions = true

	deck := stackedDeck(coup.Duke, coup.Duke, coup.Contessa, coup.Contessa,
		coup.Contessa, coup.Captain)
	tb := newTable(t, Config{Deck: deck}, thief, sceptic1, sceptic2)
	e := tb.engine
	e.Setup()
	e.RunTurn()

	cmd, ok := tb.rec.find("log_action_was_challenged")
	require.True(t, ok)
	assert.Equal(t, 2, cmd.(wire.ActionWasChallenged).Challenger,
		"the target gets the first say")
}

func TestIllegalBlockCardExhaustsPatience(t *testing.T) {
	thief := bot.NewMock("thief")
	thief.Action = coup.Steal
	thief.Target = 1
	confused := bot.NewMock("confused")
	confused.Blocks = true
	duke := coup.Duke
	confused.BlockCard = &duke // a duke does not stop a steal

	deck := stackedDeck(coup.Captain, coup.Contessa, coup.Duke, coup.Duke)
	tb := newTable(t, Config{Deck: deck}, thief, confused)
	e := tb.engine
	e.Setup()
	e.RunTurn()

	assert.False(t, e.Game().IsAlive(1))
	assert.True(t, e.Game().Player(1).Violator())
	assert.True(t, e.Game().Violated())
	assert.Equal(t, DefaultTolerance, tb.rec.count(1, "debug_msg"))

	// The steal still resolves against what the violator left behind.
	assert.Equal(t, 4, e.Game().Player(0).Money())
	_, taken := tb.rec.find("log_action_was_taken")
	assert.True(t, taken)
}

func TestForcedCoupIsEnforced(t *testing.T) {
	hoarder := bot.NewMock("hoarder")
	hoarder.Action = coup.Tax
	other := bot.NewMock("other")

	deck := stackedDeck(coup.Duke, coup.Duke, coup.Contessa, coup.Contessa)
	tb := newTable(t, Config{StartMoney: coup.ForcedCoupMoney, Deck: deck}, hoarder, other)
	e := tb.engine
	e.Setup()
	e.RunTurn()

	assert.False(t, e.Game().IsAlive(0))
	assert.True(t, e.Game().Violated())
	assert.Equal(t, DefaultTolerance, tb.rec.count(0, "debug_msg"))
	assert.Len(t, e.Game().Discards(), 2, "the whole hand is revealed on the way out")

	_, violation := tb.rec.find("rules_violation")
	assert.True(t, violation)

	winner := e.Run()
	require.NotNil(t, winner)
	assert.Equal(t, 1, winner.Number)
}

func TestSingleWrongAnswerIsTolerated(t *testing.T) {
	clumsy := bot.NewMock("clumsy")
	clumsy.WrongFirst = true
	other := bot.NewMock("other")

	deck := stackedDeck(coup.Duke, coup.Duke, coup.Contessa, coup.Contessa)
	tb := newTable(t, Config{CrashOnViolation: true, Deck: deck}, clumsy, other)
	e := tb.engine
	e.Setup()

	require.NotPanics(t, func() { e.RunTurn() })

	assert.Equal(t, 3, e.Game().Player(0).Money(), "the retried income lands")
	assert.True(t, e.Game().IsAlive(0))
	assert.False(t, e.Game().Violated())
	assert.Equal(t, 1, tb.rec.count(0, "debug_msg"))
}

func TestCrashOnViolationPanicsAtTheKill(t *testing.T) {
	hoarder := bot.NewMock("hoarder")
	hoarder.Action = coup.Tax
	other := bot.NewMock("other")

	deck := stackedDeck(coup.Duke, coup.Duke, coup.Contessa, coup.Contessa)
	tb := newTable(t, Config{
		StartMoney:       coup.ForcedCoupMoney,
		CrashOnViolation: true,
		Deck:             deck,
	}, hoarder, other)
	e := tb.engine
	e.Setup()

	assert.Panics(t, func() { e.RunTurn() })
}

func TestSilentPlayerIsThrownOutImmediately(t *testing.T) {
	srv0, cli0 := net.Pipe()
	srv1, cli1 := net.Pipe()
	conns := []*conn.Conn{
		conn.New(srv0, time.Second),
		conn.New(srv1, 50*time.Millisecond),
	}
	t.Cleanup(func() {
		for _, c := range conns {
			c.Close()
		}
	})

	go client.New(conn.New(cli0, 0), client.Config{Strategy: bot.NewMock("ok")}).Run()

	// Seat one reads everything and never answers.
	go func() {
		sc := bufio.NewScanner(cli1)
		for sc.Scan() {
		}
	}()

	rec := &recorder{}
	e := New(conns, Config{Seed: 1, Recorder: rec})
	e.Setup()

	assert.False(t, e.Game().IsAlive(1))
	assert.True(t, e.Game().Player(1).Violator(), "a violator stays out even with no cards dealt yet")
	assert.Equal(t, 0, rec.count(1, "debug_msg"), "a timeout is not retried")

	winner := e.Run()
	require.NotNil(t, winner)
	assert.Equal(t, 0, winner.Number)
	assert.True(t, e.Game().Violated())
}

func TestRandomGamesAlwaysFinish(t *testing.T) {
	games := 40
	if testing.Short() {
		games = 8
	}

	for _, players := range []int{2, 4} {
		for i := 0; i < games; i++ {
			seed := int64(players*1000 + i + 1)
			strategies := make([]client.Strategy, players)
			for p := range strategies {
				strategies[p] = bot.NewRandom("random", seed+int64(p)*17, 0.25, false)
			}

			tb := newTable(t, Config{Seed: seed}, strategies...)
			e := tb.engine
			e.Setup()

			before := e.Game().CardCensus()
			winner := e.Run()

			require.NotNil(t, winner, "seed %d with %d players", seed, players)
			assert.Equal(t, before, e.Game().CardCensus(),
				"cards conserved, seed %d with %d players", seed, players)
		}
	}
}

// Four honest random players, many seeds, with the census checked at
// every turn boundary rather than only at the end. CrashOnViolation turns
// any illegal answer a bot might produce into an immediate panic.
func TestHonestStressGamesConserveTheDeck(t *testing.T) {
	games := 500
	if testing.Short() {
		games = 25
	}

	for i := 0; i < games; i++ {
		seed := int64(i + 1)
		strategies := make([]client.Strategy, 4)
		for p := range strategies {
			strategies[p] = bot.NewRandom("random", seed+int64(p)*17, 0, false)
		}

		tb := newTable(t, Config{Seed: seed, CrashOnViolation: true}, strategies...)
		e := tb.engine
		e.Setup()

		want := e.Game().CardCensus()
		for e.Game().AliveCount() > 1 {
			e.RunTurn()
			require.Equal(t, want, e.Game().CardCensus(),
				"census drifted mid-game, seed %d", seed)
		}
		winner, ok := e.Game().Winner()
		require.True(t, ok, "seed %d", seed)
		require.NotNil(t, winner)
		assert.False(t, e.Game().Violated(), "seed %d", seed)
		e.shutdown()

		// Hidden state stays off the broadcast channel.
		for _, s := range tb.rec.sent {
			if s.seat != Everyone {
				continue
			}
			switch s.cmd.(type) {
			case wire.NewGame, wire.Shutdown, wire.MoneyChanged,
				wire.PlayerLostACard, wire.APlayerIsDead, wire.RulesViolation,
				wire.ActionWasTaken, wire.ActionWasBlocked,
				wire.ActionWasChallenged, wire.BlockWasChallenged:
			default:
				t.Fatalf("private command %s broadcast to the table, seed %d",
					s.cmd.MsgName(), seed)
			}
		}
	}
}

func TestHonestGameRunsToAWinner(t *testing.T) {
	deck := stackedDeck(coup.Contessa, coup.Contessa, coup.Contessa, coup.Contessa,
		coup.Duke, coup.Duke)
	tb := newTable(t, Config{Deck: deck}, bot.NewSimple("a"), bot.NewSimple("b"))
	e := tb.engine
	e.Setup()

	winner := e.Run()
	require.NotNil(t, winner)
	assert.False(t, e.Game().Violated())

	_, ok := tb.rec.find("shutdown")
	assert.True(t, ok)
}
