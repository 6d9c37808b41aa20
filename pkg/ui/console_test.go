package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coupnet/coup/pkg/client"
	"github.com/coupnet/coup/pkg/coup"
	"github.com/coupnet/coup/pkg/wire"
)

func TestLegalActionsRespectMoney(t *testing.T) {
	v := &client.View{Money: 2}
	legal := legalActions(v)
	assert.Contains(t, legal, coup.Income)
	assert.Contains(t, legal, coup.Steal)
	assert.NotContains(t, legal, coup.Assassinate)
	assert.NotContains(t, legal, coup.Coup)
}

func TestLegalActionsForceTheCoup(t *testing.T) {
	v := &client.View{Money: coup.ForcedCoupMoney}
	assert.Equal(t, []coup.Action{coup.Coup}, legalActions(v))
}

func TestActionLabelsNameCostAndClaim(t *testing.T) {
	assert.Equal(t, "income", actionLabel(coup.Income))
	assert.Equal(t, "tax (claims duke)", actionLabel(coup.Tax))
	assert.Equal(t, "coup (7 coins)", actionLabel(coup.Coup))
	assert.Equal(t, "assassinate (3 coins, claims assassin)", actionLabel(coup.Assassinate))
}

func TestRemoveOneDropsASingleCopy(t *testing.T) {
	hand := []coup.Card{coup.Duke, coup.Contessa, coup.Duke}
	assert.Equal(t, []coup.Card{coup.Contessa, coup.Duke}, removeOne(hand, coup.Duke))
	assert.Equal(t, hand, removeOne(hand, coup.Captain))
}

func TestWhoSpeaksFromTheSeat(t *testing.T) {
	c := NewConsole("eve")
	v := &client.View{
		Number: 0,
		Opponents: map[int]*client.Opponent{
			1: {Number: 1, Name: "bob"},
			2: {Number: 2},
		},
	}
	assert.Equal(t, "you", c.who(v, 0))
	assert.Equal(t, "bob (player 1)", c.who(v, 1))
	assert.Equal(t, "player 2", c.who(v, 2))
	assert.Equal(t, "", c.targetPhrase(v, wire.NoTarget))
	assert.Equal(t, " against bob (player 1)", c.targetPhrase(v, 1))
}
