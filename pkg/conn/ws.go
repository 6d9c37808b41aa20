package conn

import (
	"io"
	"time"

	"github.com/gorilla/websocket"
)

// wsrwc adapts a websocket connection to the io.ReadWriteCloser the
// record framing expects. Each Write becomes one text message and Reads
// drain incoming messages in order.
//
// adapted from https://github.com/gorilla/websocket/issues/282
type wsrwc struct {
	*websocket.Conn
	r io.Reader
}

func (c *wsrwc) Write(p []byte) (int, error) {
	if err := c.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *wsrwc) Read(p []byte) (int, error) {
	for {
		if c.r == nil {
			// Advance to the next message.
			var err error
			_, c.r, err = c.NextReader()
			if err != nil {
				return 0, err
			}
		}
		n, err := c.r.Read(p)
		if err == io.EOF {
			c.r = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

// NewWS wraps an established websocket connection.
func NewWS(ws *websocket.Conn, timeout time.Duration) *Conn {
	return New(&wsrwc{Conn: ws}, timeout)
}

// DialWS connects to a websocket endpoint, such as ws://host:port/ws,
// and wraps it.
func DialWS(url string, timeout time.Duration) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return NewWS(ws, timeout), nil
}
