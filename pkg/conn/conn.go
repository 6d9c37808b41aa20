// Package conn frames wire records over a byte stream.
package conn

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/coupnet/coup/pkg/wire"
)

var (
	// ErrTimeout is returned by Receive when no record arrives in time.
	ErrTimeout = errors.New("conn: receive timed out")
	// ErrClosed is returned once the connection has been closed locally.
	ErrClosed = errors.New("conn: connection closed")
)

// recvBuffer bounds how many unread records the read loop holds before it
// stops pulling from the stream.
const recvBuffer = 32

// Conn sends and receives wire records over an io.ReadWriteCloser. A
// background goroutine reads the stream so that records sent early are
// not lost, and so Receive can give up after a timeout while the stream
// read stays pending.
type Conn struct {
	rwc     io.ReadWriteCloser
	timeout time.Duration

	wmu  sync.Mutex
	recv chan string

	err  error // set before recv is closed
	once sync.Once
	done chan struct{}
}

// New wraps rwc and starts reading records from it. A timeout of zero
// makes Receive block until a record or stream end.
func New(rwc io.ReadWriteCloser, timeout time.Duration) *Conn {
	c := &Conn{
		rwc:     rwc,
		timeout: timeout,
		recv:    make(chan string, recvBuffer),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c
}

// Dial opens a TCP connection to addr and wraps it.
func Dial(addr string, timeout time.Duration) (*Conn, error) {
	nc, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %v", addr, err)
	}
	return New(nc, timeout), nil
}

func (c *Conn) readLoop() {
	scanner := bufio.NewScanner(c.rwc)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		select {
		case c.recv <- line:
		case <-c.done:
			c.err = ErrClosed
			close(c.recv)
			return
		}
	}

	switch {
	case c.closed():
		c.err = ErrClosed
	case scanner.Err() != nil:
		c.err = scanner.Err()
	default:
		c.err = io.EOF
	}
	close(c.recv)
}

func (c *Conn) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Send encodes m and writes it to the stream.
func (c *Conn) Send(m wire.Message) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if _, err := io.WriteString(c.rwc, wire.Encode(m)); err != nil {
		return fmt.Errorf("failed to send %s: %v", m.MsgName(), err)
	}
	return nil
}

// Receive returns the next record. It returns ErrTimeout when nothing
// arrives within the configured timeout, ErrClosed after a local Close,
// and the underlying read error once the stream ends.
func (c *Conn) Receive() (string, error) {
	var timeout <-chan time.Time
	if c.timeout > 0 {
		t := time.NewTimer(c.timeout)
		defer t.Stop()
		timeout = t.C
	}

	select {
	case rec, ok := <-c.recv:
		if !ok {
			return "", c.err
		}
		return rec, nil
	case <-timeout:
		return "", ErrTimeout
	}
}

// SendAndReceive writes m and waits for the next inbound record, the
// shape of every prompt.
func (c *Conn) SendAndReceive(m wire.Message) (string, error) {
	if err := c.Send(m); err != nil {
		return "", err
	}
	return c.Receive()
}

// Close tears down the connection. It is safe to call more than once and
// unblocks any pending Receive.
func (c *Conn) Close() error {
	var err error
	c.once.Do(func() {
		close(c.done)
		err = c.rwc.Close()
	})
	return err
}
