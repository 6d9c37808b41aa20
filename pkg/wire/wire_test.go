package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coupnet/coup/pkg/coup"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		msg  Message
		want string
	}{
		{AskName{}, "ask_name\n"},
		{AddOpponent{Number: 1, Name: "bob"}, "add_opponent;1;bob\n"},
		{AddCard{Card: coup.Duke}, "add_card;duke\n"},
		{ChangeMoney{Amount: -3}, "change_money;-3\n"},
		{MoneyChanged{Player: 2, Amount: 2}, "money_changed;2;2\n"},
		{ActionWasTaken{Action: coup.Income, Doer: 0, Target: NoTarget}, "log_action_was_taken;income;0;-1\n"},
		{BlockWasChallenged{
			Action: coup.ForeignAid, Doer: 0, Target: NoTarget,
			BlockCard: coup.Duke, Blocker: 1, Challenger: 0, Success: true,
		}, "log_block_was_challenged;foreign_aid;0;-1;duke;1;0;True\n"},
		{StealDecision{Target: 3}, "steal_decision;3\n"},
		{Block{Card: coup.Contessa}, "block;contessa\n"},
		{AmbassadorCardMessage{First: coup.Captain, Second: coup.Captain}, "ambassador_card_message;captain;captain\n"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Encode(tt.msg), "encoding %s", tt.msg.MsgName())
	}
}

func TestEncodeCleansSeparators(t *testing.T) {
	got := Encode(NameResponse{Name: "a;b\nc"})
	assert.Equal(t, "name_response;a,b,c\n", got)

	got = Encode(DebugMsg{Text: "one;two"})
	assert.Equal(t, "debug_msg;one,two\n", got)
}

func TestCommandRoundTrip(t *testing.T) {
	cmds := []Command{
		Shutdown{},
		AskName{},
		NewGame{},
		TakeTurn{},
		ChooseCardToKill{},
		ChooseAmbassadorCards{},
		DebugMsg{Text: "hello there"},
		AddOpponent{Number: 2, Name: "eve"},
		SetPlayerNumber{Number: 1},
		AddCard{Card: coup.Ambassador},
		RemoveCard{Card: coup.Assassin},
		ChangeMoney{Amount: 7},
		MoneyChanged{Player: 0, Amount: -7},
		PlayerLostACard{Player: 1, Card: coup.Contessa},
		APlayerIsDead{Player: 1},
		RulesViolation{Player: 3},
		YourActionIsChallenged{Action: coup.Tax, Target: NoTarget, Challenger: 2},
		YourBlockIsChallenged{Action: coup.Steal, Doer: 0, BlockCard: coup.Captain, Challenger: 0},
		DoYouBlock{Action: coup.Assassinate, Doer: 0},
		DoYouChallengeAction{Action: coup.Ambassadate, Doer: 1, Target: NoTarget},
		DoYouChallengeBlock{Action: coup.ForeignAid, Doer: 0, Target: NoTarget, BlockCard: coup.Duke, Blocker: 2},
		ActionWasTaken{Action: coup.Coup, Doer: 0, Target: 1},
		ActionWasBlocked{Action: coup.Steal, Doer: 2, Target: 0, BlockCard: coup.Ambassador, Blocker: 0},
		ActionWasChallenged{Action: coup.Assassinate, Doer: 0, Target: 1, Challenger: 1, Success: false},
		BlockWasChallenged{Action: coup.Assassinate, Doer: 0, Target: 1, BlockCard: coup.Contessa, Blocker: 1, Challenger: 0, Success: true},
	}
	for _, cmd := range cmds {
		got, ok := DecodeCommand(Encode(cmd))
		require.True(t, ok, "decoding %s", cmd.MsgName())
		assert.Equal(t, cmd, got)
	}
}

func TestResponseRoundTrip(t *testing.T) {
	resps := []Response{
		NameResponse{Name: "alice"},
		IncomeDecision{},
		ForeignAidDecision{},
		TaxDecision{},
		AmbassadateDecision{},
		StealDecision{Target: 1},
		AssassinateDecision{Target: 0},
		CoupDecision{Target: 2},
		RevealCard{},
		Concede{},
		Challenge{},
		Allow{},
		Block{Card: coup.Duke},
		NoBlock{},
		CardMessage{Card: coup.Captain},
		AmbassadorCardMessage{First: coup.Duke, Second: coup.Contessa},
	}
	for _, resp := range resps {
		got, ok := DecodeResponse(Encode(resp))
		require.True(t, ok, "decoding %s", resp.MsgName())
		assert.Equal(t, resp, got)
	}
}

func TestDecisionTargets(t *testing.T) {
	action, target := StealDecision{Target: 2}.Decision()
	assert.Equal(t, coup.Steal, action)
	assert.Equal(t, 2, target)

	action, target = TaxDecision{}.Decision()
	assert.Equal(t, coup.Tax, action)
	assert.Equal(t, NoTarget, target)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	bad := []string{
		"",
		"\n",
		";;;",
		"not_a_message",
		"block",                     // missing card
		"block;joker",               // unknown card
		"steal_decision",            // missing target
		"steal_decision;one",        // unparsable target
		"ambassador_card_message;duke", // second card missing
		"log_action_was_challenged;tax;0;-1;2;yes", // bad bool
		"do_you_block;dance;0",                     // unknown action
	}
	for _, record := range bad {
		_, ok := DecodeResponse(record)
		assert.False(t, ok, "response %q should not decode", record)
		_, ok = DecodeCommand(record)
		assert.False(t, ok, "command %q should not decode", record)
	}
}

func TestDecodeIgnoresExtraFields(t *testing.T) {
	cmd, ok := DecodeCommand("take_turn;spurious\n")
	require.True(t, ok)
	assert.Equal(t, TakeTurn{}, cmd)

	resp, ok := DecodeResponse("block;duke;extra;fields")
	require.True(t, ok)
	assert.Equal(t, Block{Card: coup.Duke}, resp)
}

func TestSplit(t *testing.T) {
	records := Split("take_turn\nincome_decision\n")
	assert.Equal(t, []string{"take_turn", "income_decision"}, records)

	records = Split("\n\nask_name\n")
	assert.Equal(t, []string{"ask_name"}, records)

	assert.Empty(t, Split(""))
	assert.Empty(t, Split("\n"))
}

func TestRawEncodesVerbatim(t *testing.T) {
	raw := Raw{Name: "no_such_message", Fields: []string{"1", "duke"}}
	assert.Equal(t, "no_such_message;1;duke\n", Encode(raw))

	_, ok := DecodeResponse(Encode(raw))
	assert.False(t, ok)
}
