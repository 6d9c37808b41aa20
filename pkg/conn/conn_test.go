package conn

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coupnet/coup/pkg/coup"
	"github.com/coupnet/coup/pkg/wire"
)

func pipePair(t *testing.T, timeout time.Duration) (*Conn, *Conn) {
	t.Helper()
	a, b := net.Pipe()
	ca := New(a, timeout)
	cb := New(b, timeout)
	t.Cleanup(func() {
		ca.Close()
		cb.Close()
	})
	return ca, cb
}

func TestSendReceive(t *testing.T) {
	server, client := pipePair(t, time.Second)

	require.NoError(t, server.Send(wire.TakeTurn{}))
	rec, err := client.Receive()
	require.NoError(t, err)
	cmd, ok := wire.DecodeCommand(rec)
	require.True(t, ok)
	assert.Equal(t, wire.TakeTurn{}, cmd)

	require.NoError(t, client.Send(wire.CoupDecision{Target: 1}))
	rec, err = server.Receive()
	require.NoError(t, err)
	resp, ok := wire.DecodeResponse(rec)
	require.True(t, ok)
	assert.Equal(t, wire.CoupDecision{Target: 1}, resp)
}

func TestReceiveBuffersEarlyRecords(t *testing.T) {
	server, client := pipePair(t, time.Second)

	require.NoError(t, server.Send(wire.AddCard{Card: coup.Duke}))
	require.NoError(t, server.Send(wire.AddCard{Card: coup.Contessa}))
	require.NoError(t, server.Send(wire.ChangeMoney{Amount: 2}))

	for _, want := range []string{"add_card;duke", "add_card;contessa", "change_money;2"} {
		rec, err := client.Receive()
		require.NoError(t, err)
		assert.Equal(t, want, rec)
	}
}

func TestReceiveSplitsChunkedWrites(t *testing.T) {
	a, b := net.Pipe()
	c := New(b, time.Second)
	t.Cleanup(func() {
		a.Close()
		c.Close()
	})

	go func() {
		io.WriteString(a, "take_turn\n\nincome_decision\n")
	}()

	rec, err := c.Receive()
	require.NoError(t, err)
	assert.Equal(t, "take_turn", rec)

	rec, err = c.Receive()
	require.NoError(t, err)
	assert.Equal(t, "income_decision", rec)
}

func TestSendAndReceivePrompts(t *testing.T) {
	server, client := pipePair(t, time.Second)

	go func() {
		if _, err := client.Receive(); err == nil {
			client.Send(wire.IncomeDecision{})
		}
	}()

	rec, err := server.SendAndReceive(wire.TakeTurn{})
	require.NoError(t, err)
	assert.Equal(t, "income_decision", rec)
}

func TestReceiveTimeout(t *testing.T) {
	server, _ := pipePair(t, 20*time.Millisecond)

	_, err := server.Receive()
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestReceiveAfterPeerClose(t *testing.T) {
	server, client := pipePair(t, time.Second)

	require.NoError(t, client.Close())
	_, err := server.Receive()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestReceiveAfterLocalClose(t *testing.T) {
	server, _ := pipePair(t, time.Second)

	require.NoError(t, server.Close())
	_, err := server.Receive()
	assert.ErrorIs(t, err, ErrClosed)

	assert.NoError(t, server.Close())
}

func TestSendAfterCloseFails(t *testing.T) {
	server, _ := pipePair(t, time.Second)

	require.NoError(t, server.Close())
	assert.Error(t, server.Send(wire.Shutdown{}))
}
