package web

import (
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/pkg/emulator"
)

// client is a websocket connection watching the stream.
type client struct {
	id      uint8
	conn    *websocket.Conn
	send    chan []byte
	latency atomic.Uint32 // smoothed round trip time in ms

	driver *webDriver
}

// button returns the joypad button numbered b.
func button(b uint8) (joypad.Button, bool) {
	if b > joypad.ButtonDown {
		return 0, false
	}
	return b, true
}

// readPump handles messages from the client until the connection
// is closed.
func (c *client) readPump() {
	defer func() {
		c.driver.leave(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) == 0 {
			continue
		}

		switch message[0] {
		case Control:
			if len(message) == 3 {
				c.driver.setControl(message[1], message[2])
			}
		case Command:
			// clients may not close the emulator for everyone
			if len(message) == 2 && emulator.Command(message[1]) != emulator.CommandClose {
				c.driver.emu.SendCommand(emulator.CommandPacket{Command: emulator.Command(message[1])})
			}
		case Closing:
			return
		default:
			if b, ok := button(message[0]); ok && len(message) == 2 {
				c.driver.input(b, message[1] != 0)
			}
		}
	}
}

// writePump writes queued messages to the client, until the send
// channel is closed or a write fails.
func (c *client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			return
		}

		// update average latency
		if rtt, err := latency(c.conn.UnderlyingConn()); err == nil {
			c.latency.Store((c.latency.Load()*9 + uint32(rtt)) / 10)
		}
	}

	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
